// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/chronoflow/chronoflow/internal/models"
)

// UserStore defines user persistence operations.
type UserStore interface {
	// CreateUser persists a new user record.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UsernameOrEmailTaken reports whether any user already holds the
	// given username or email.
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
}

// EventStore defines event persistence operations. All user-facing
// operations are owner-scoped: an event is only visible to and mutable by
// its owner. FindDueEvents and MarkTriggered are used by the due-event
// scanner, which acts process-wide without an owner filter.
type EventStore interface {
	// CreateEvent persists a new event and assigns its ID and timestamps.
	CreateEvent(ctx context.Context, event *models.Event) error

	// ListEvents returns the owner's events matching the filter, sorted
	// by date ascending.
	ListEvents(ctx context.Context, ownerID string, filter models.EventFilter) ([]*models.Event, error)

	// GetEvent retrieves one of the owner's events by ID.
	// Returns (nil, nil) if the event does not exist or is not owned.
	GetEvent(ctx context.Context, ownerID, id string) (*models.Event, error)

	// UpdateEvent applies a partial update to one of the owner's events
	// and returns the updated record. Returns (nil, nil) if the event
	// does not exist or is not owned. The patch can never move an event
	// from triggered back to pending.
	UpdateEvent(ctx context.Context, ownerID, id string, patch models.EventPatch) (*models.Event, error)

	// DeleteEvent removes one of the owner's events. Returns false if the
	// event does not exist or is not owned.
	DeleteEvent(ctx context.Context, ownerID, id string) (bool, error)

	// EventStats returns the owner's total and per-category event counts.
	EventStats(ctx context.Context, ownerID string) (*models.EventStats, error)

	// FindDueEvents returns all untriggered events scheduled for the
	// given date (YYYY-MM-DD) whose time falls in the given minute
	// (HH:MM prefix match).
	FindDueEvents(ctx context.Context, date, minute string) ([]*models.Event, error)

	// MarkTriggered conditionally transitions an event to triggered,
	// recording the trigger time. The write is guarded by the event
	// still being untriggered at write time (compare-and-set); it
	// returns false if the event was already triggered or deleted.
	MarkTriggered(ctx context.Context, id string, at time.Time) (bool, error)
}

// SettingsStore defines per-user settings persistence.
type SettingsStore interface {
	// GetSettings retrieves the user's settings.
	// Returns (nil, nil) if the user has never saved any.
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)

	// PutSettings inserts or replaces the user's settings.
	PutSettings(ctx context.Context, settings *models.UserSettings) error
}

// Store is the combined persistence interface consumed by the HTTP surface
// and the scanner. This abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing handler or scanner code.
type Store interface {
	UserStore
	EventStore
	SettingsStore

	// Ping verifies the underlying database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
