package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chronoflow/chronoflow/internal/models"
)

const eventColumns = `id, user_id, title, description, category, date, time,
	reminder, sound_type, color, photo, triggered, triggered_at, created_at, updated_at`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var (
		photo       sql.NullString
		triggeredAt sql.NullInt64
	)

	err := row.Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.Description,
		&event.Category,
		&event.Date,
		&event.Time,
		&event.Reminder,
		&event.SoundType,
		&event.Color,
		&photo,
		&event.Triggered,
		&triggeredAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if photo.Valid {
		event.Photo = photo.String
	}
	if triggeredAt.Valid {
		event.TriggeredAt = &triggeredAt.Int64
	}

	return event, nil
}

func nullablePhoto(photo string) any {
	if photo == "" {
		return nil
	}
	return photo
}

// CreateEvent persists a new event to the database.
// ID, CreatedAt and UpdatedAt are assigned here if unset.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if event.CreatedAt == 0 {
		event.CreatedAt = now
	}
	if event.UpdatedAt == 0 {
		event.UpdatedAt = now
	}

	query := `
		INSERT INTO events (id, user_id, title, description, category, date, time,
			reminder, sound_type, color, photo, triggered, triggered_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NULL, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Title,
		event.Description,
		event.Category,
		event.Date,
		event.Time,
		event.Reminder,
		event.SoundType,
		event.Color,
		nullablePhoto(event.Photo),
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// ListEvents returns the owner's events matching the filter, sorted by date.
func (s *SQLiteStore) ListEvents(ctx context.Context, ownerID string, filter models.EventFilter) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = ?`
	args := []any{ownerID}

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.DateFrom != "" {
		query += ` AND date >= ?`
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += ` AND date <= ?`
		args = append(args, filter.DateTo)
	}
	query += ` ORDER BY date ASC, time ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// GetEvent retrieves one of the owner's events by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, ownerID, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ? AND user_id = ?`

	event, err := scanEvent(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil // Not found or not owned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// UpdateEvent applies a partial update to one of the owner's events and
// returns the updated record. Returns (nil, nil) if the event does not exist
// or is not owned. A patch can set triggered pending -> triggered but never
// the reverse.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, ownerID, id string, patch models.EventPatch) (*models.Event, error) {
	existing, err := s.GetEvent(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now().Unix()}

	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		appendSet("title", strings.TrimSpace(*patch.Title))
	}
	if patch.Description != nil {
		appendSet("description", strings.TrimSpace(*patch.Description))
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.Date != nil {
		appendSet("date", *patch.Date)
	}
	if patch.Time != nil {
		appendSet("time", *patch.Time)
	}
	if patch.Reminder != nil {
		appendSet("reminder", *patch.Reminder)
	}
	if patch.SoundType != nil {
		appendSet("sound_type", *patch.SoundType)
	}
	if patch.Color != nil {
		appendSet("color", *patch.Color)
	}
	if patch.Photo != nil {
		appendSet("photo", nullablePhoto(*patch.Photo))
	}
	// Triggered is monotonic: a patch may fire a pending event but an
	// already-triggered event stays triggered.
	if patch.Triggered != nil && *patch.Triggered && !existing.Triggered {
		appendSet("triggered", 1)
		appendSet("triggered_at", time.Now().Unix())
	}

	query := `UPDATE events SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	args = append(args, id, ownerID)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.GetEvent(ctx, ownerID, id)
}

// DeleteEvent removes one of the owner's events.
// Returns false if the event does not exist or is not owned.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, ownerID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE id = ? AND user_id = ?",
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}

// EventStats returns the owner's total and per-category event counts.
func (s *SQLiteStore) EventStats(ctx context.Context, ownerID string) (*models.EventStats, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM events WHERE user_id = ? GROUP BY category",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event stats: %w", err)
	}
	defer rows.Close()

	stats := &models.EventStats{ByCategory: make(map[string]int)}
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.ByCategory[category] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats: %w", err)
	}

	return stats, nil
}

// FindDueEvents returns all untriggered events scheduled for the given date
// whose time falls within the given minute. The minute is an HH:MM string
// and matches the stored HH:MM:SS time by prefix, so the window is the whole
// wall-clock minute rather than an exact second.
func (s *SQLiteStore) FindDueEvents(ctx context.Context, date, minute string) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE triggered = 0 AND date = ? AND time LIKE ? || '%'`

	rows, err := s.db.QueryContext(ctx, query, date, minute)
	if err != nil {
		return nil, fmt.Errorf("failed to find due events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate due events: %w", err)
	}

	return events, nil
}

// MarkTriggered conditionally transitions an event to triggered. The guard
// on triggered = 0 makes the write a compare-and-set: if the event was
// deleted or already triggered between the scanner's read and this write,
// no row is affected and false is returned.
func (s *SQLiteStore) MarkTriggered(ctx context.Context, id string, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE events SET triggered = 1, triggered_at = ?, updated_at = ? WHERE id = ? AND triggered = 0",
		at.Unix(), at.Unix(), id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark event triggered: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read trigger result: %w", err)
	}

	return affected > 0, nil
}
