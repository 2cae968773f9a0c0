package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chronoflow/chronoflow/internal/models"
)

// GetSettings retrieves the user's settings.
// Returns (nil, nil) if the user has never saved any.
func (s *SQLiteStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	query := `
		SELECT user_id, theme, background_color, sound_enabled, popup_enabled, updated_at
		FROM user_settings
		WHERE user_id = ?
	`

	settings := &models.UserSettings{}
	var background sql.NullString

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.Theme,
		&background,
		&settings.NotificationPreferences.SoundEnabled,
		&settings.NotificationPreferences.PopupEnabled,
		&settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // No saved settings
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if background.Valid {
		settings.BackgroundColor = &background.String
	}

	return settings, nil
}

// PutSettings inserts or replaces the user's settings.
func (s *SQLiteStore) PutSettings(ctx context.Context, settings *models.UserSettings) error {
	settings.UpdatedAt = time.Now().Unix()

	var background any
	if settings.BackgroundColor != nil {
		background = *settings.BackgroundColor
	}

	query := `
		INSERT INTO user_settings (user_id, theme, background_color, sound_enabled, popup_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			theme = excluded.theme,
			background_color = excluded.background_color,
			sound_enabled = excluded.sound_enabled,
			popup_enabled = excluded.popup_enabled,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		settings.UserID,
		settings.Theme,
		background,
		settings.NotificationPreferences.SoundEnabled,
		settings.NotificationPreferences.PopupEnabled,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}
