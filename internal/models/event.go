package models

// Date and time layouts used for event scheduling fields. Events store their
// schedule as strings so the due-event scanner can match on a plain
// minute prefix without timezone conversions.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Event represents a dated reminder owned by a single user.
//
// An event belongs to exactly one owner for its entire lifetime; every
// user-facing query is filtered by UserID. Triggered is monotonic: once an
// event has fired it never returns to the pending state.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"id"`

	// UserID is the owner's user ID.
	UserID string `json:"user_id"`

	// Title is the short display title (required).
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description"`

	// Category is a free-form grouping tag (e.g. "personal", "work").
	Category string `json:"category"`

	// Date is the scheduled calendar date, formatted as YYYY-MM-DD.
	Date string `json:"date"`

	// Time is the scheduled time of day, formatted as HH:MM:SS.
	// Matching happens at minute granularity.
	Time string `json:"time"`

	// Reminder is the reminder policy tag (e.g. "none", "10min").
	Reminder string `json:"reminder"`

	// SoundType selects the notification sound.
	SoundType string `json:"sound_type"`

	// Color is the display color tag.
	Color string `json:"color"`

	// Photo is an optional photo reference: a static URL or an inline
	// base64 data URL.
	Photo string `json:"photo,omitempty"`

	// Triggered reports whether the event's scheduled minute has been
	// detected by the scanner (or set by the owner). False -> true only.
	Triggered bool `json:"triggered"`

	// TriggeredAt is the Unix timestamp of the trigger transition.
	// Nil while the event is pending.
	TriggeredAt *int64 `json:"triggered_at,omitempty"`

	// CreatedAt / UpdatedAt are Unix timestamps maintained by the store.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// EventPatch describes a partial update to an event. Nil fields are left
// unchanged. Owner and ID are never patchable; Triggered may only move an
// event from pending to triggered, never back.
type EventPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Reminder    *string `json:"reminder"`
	SoundType   *string `json:"sound_type"`
	Color       *string `json:"color"`
	Photo       *string `json:"photo"`
	Triggered   *bool   `json:"triggered"`
}

// EventFilter narrows an owner's event listing.
type EventFilter struct {
	// Category, when non-empty, restricts results to one category.
	Category string

	// DateFrom / DateTo bound the Date field (inclusive, YYYY-MM-DD).
	// Empty means unbounded.
	DateFrom string
	DateTo   string
}

// EventStats aggregates an owner's events for the stats endpoint.
type EventStats struct {
	// Total is the owner's event count across all categories.
	Total int `json:"total"`

	// ByCategory maps category name to event count.
	ByCategory map[string]int `json:"by_category"`
}
