package models

// NotificationPreferences controls how triggered events are surfaced in the
// client.
type NotificationPreferences struct {
	SoundEnabled bool `json:"sound_enabled"`
	PopupEnabled bool `json:"popup_enabled"`
}

// UserSettings is a one-per-user document of display and notification
// preferences. It is upserted as a whole; there is no history.
type UserSettings struct {
	// UserID is the owning user's ID.
	UserID string `json:"user_id"`

	// Theme is the UI theme name ("light" or "dark").
	Theme string `json:"theme"`

	// BackgroundColor is an optional custom background; nil means the
	// theme default.
	BackgroundColor *string `json:"background_color"`

	// NotificationPreferences holds the notification toggles.
	NotificationPreferences NotificationPreferences `json:"notification_preferences"`

	// UpdatedAt is the Unix timestamp of the last upsert.
	UpdatedAt int64 `json:"updated_at"`
}

// DefaultSettings returns the settings served for a user who has never
// saved any.
func DefaultSettings() *UserSettings {
	return &UserSettings{
		Theme: "light",
		NotificationPreferences: NotificationPreferences{
			SoundEnabled: true,
			PopupEnabled: true,
		},
	}
}
