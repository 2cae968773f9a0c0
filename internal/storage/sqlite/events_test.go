package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/chronoflow/chronoflow/internal/models"
)

func createTestUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := models.NewUser(username, username+"@example.com", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func createTestEvent(t *testing.T, store *SQLiteStore, ownerID string, ev models.Event) *models.Event {
	t.Helper()

	ev.UserID = ownerID
	if ev.Title == "" {
		ev.Title = "test event"
	}
	if ev.Category == "" {
		ev.Category = "personal"
	}
	if ev.Time == "" {
		ev.Time = "00:00:00"
	}
	if ev.Reminder == "" {
		ev.Reminder = "none"
	}
	if ev.SoundType == "" {
		ev.SoundType = "default"
	}
	if ev.Color == "" {
		ev.Color = "default"
	}
	if err := store.CreateEvent(context.Background(), &ev); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return &ev
}

func strPtr(s string) *string { return &s }

func TestEventCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, store, "dana")

	t.Run("CreateEvent assigns ID and timestamps", func(t *testing.T) {
		event := createTestEvent(t, store, owner.ID, models.Event{
			Title: "Dentist",
			Date:  "2026-09-01",
			Time:  "09:30:00",
		})

		if event.ID == "" {
			t.Error("Expected event ID to be generated")
		}
		if event.CreatedAt == 0 || event.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}

		got, err := store.GetEvent(ctx, owner.ID, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected event, got nil")
		}
		if got.Title != "Dentist" || got.Date != "2026-09-01" || got.Time != "09:30:00" {
			t.Errorf("Unexpected event: %+v", got)
		}
		if got.Triggered {
			t.Error("New event must start untriggered")
		}
		if got.TriggeredAt != nil {
			t.Error("New event must have nil TriggeredAt")
		}
	})

	t.Run("ListEvents filters by category and date range", func(t *testing.T) {
		lister := createTestUser(t, store, "lister")
		createTestEvent(t, store, lister.ID, models.Event{Title: "a", Category: "work", Date: "2026-01-10"})
		createTestEvent(t, store, lister.ID, models.Event{Title: "b", Category: "personal", Date: "2026-01-15"})
		createTestEvent(t, store, lister.ID, models.Event{Title: "c", Category: "work", Date: "2026-02-01"})

		all, err := store.ListEvents(ctx, lister.ID, models.EventFilter{})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("Expected 3 events, got %d", len(all))
		}
		if all[0].Title != "a" || all[2].Title != "c" {
			t.Error("Expected events sorted by date ascending")
		}

		work, err := store.ListEvents(ctx, lister.ID, models.EventFilter{Category: "work"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(work) != 2 {
			t.Errorf("Expected 2 work events, got %d", len(work))
		}

		ranged, err := store.ListEvents(ctx, lister.ID, models.EventFilter{DateFrom: "2026-01-11", DateTo: "2026-01-31"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(ranged) != 1 || ranged[0].Title != "b" {
			t.Errorf("Expected only event b in range, got %d events", len(ranged))
		}
	})

	t.Run("UpdateEvent patches only provided fields", func(t *testing.T) {
		event := createTestEvent(t, store, owner.ID, models.Event{
			Title:       "Original",
			Description: "keep me",
			Date:        "2026-09-02",
		})

		updated, err := store.UpdateEvent(ctx, owner.ID, event.ID, models.EventPatch{
			Title: strPtr("  Renamed  "),
			Color: strPtr("blue"),
		})
		if err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("Title mismatch: got %q", updated.Title)
		}
		if updated.Color != "blue" {
			t.Errorf("Color mismatch: got %q", updated.Color)
		}
		if updated.Description != "keep me" {
			t.Errorf("Description should be unchanged, got %q", updated.Description)
		}
	})

	t.Run("triggered is monotonic through updates", func(t *testing.T) {
		event := createTestEvent(t, store, owner.ID, models.Event{Date: "2026-09-03"})

		fire := true
		updated, err := store.UpdateEvent(ctx, owner.ID, event.ID, models.EventPatch{Triggered: &fire})
		if err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}
		if !updated.Triggered || updated.TriggeredAt == nil {
			t.Fatal("Expected event to be triggered with TriggeredAt set")
		}

		// A patch carrying triggered=false must not reset the state
		unfire := false
		updated, err = store.UpdateEvent(ctx, owner.ID, event.ID, models.EventPatch{Triggered: &unfire})
		if err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}
		if !updated.Triggered {
			t.Error("Triggered must never transition back to false")
		}
	})

	t.Run("DeleteEvent", func(t *testing.T) {
		event := createTestEvent(t, store, owner.ID, models.Event{Date: "2026-09-04"})

		deleted, err := store.DeleteEvent(ctx, owner.ID, event.ID)
		if err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
		if !deleted {
			t.Error("Expected delete to report success")
		}

		deleted, err = store.DeleteEvent(ctx, owner.ID, event.ID)
		if err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
		if deleted {
			t.Error("Second delete should report not found")
		}
	})

	t.Run("EventStats groups by category", func(t *testing.T) {
		counter := createTestUser(t, store, "counter")
		createTestEvent(t, store, counter.ID, models.Event{Category: "work", Date: "2026-03-01"})
		createTestEvent(t, store, counter.ID, models.Event{Category: "work", Date: "2026-03-02"})
		createTestEvent(t, store, counter.ID, models.Event{Category: "personal", Date: "2026-03-03"})

		stats, err := store.EventStats(ctx, counter.ID)
		if err != nil {
			t.Fatalf("EventStats failed: %v", err)
		}
		if stats.Total != 3 {
			t.Errorf("Total mismatch: got %d, want 3", stats.Total)
		}
		if stats.ByCategory["work"] != 2 || stats.ByCategory["personal"] != 1 {
			t.Errorf("ByCategory mismatch: %+v", stats.ByCategory)
		}
	})
}

func TestEventOwnershipScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	mallory := createTestUser(t, store, "mallory")

	event := createTestEvent(t, store, alice.ID, models.Event{Title: "Private", Date: "2026-09-10"})

	got, err := store.GetEvent(ctx, mallory.ID, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got != nil {
		t.Error("Another user must not read a foreign event")
	}

	updated, err := store.UpdateEvent(ctx, mallory.ID, event.ID, models.EventPatch{Title: strPtr("stolen")})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated != nil {
		t.Error("Another user must not update a foreign event")
	}

	deleted, err := store.DeleteEvent(ctx, mallory.ID, event.ID)
	if err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if deleted {
		t.Error("Another user must not delete a foreign event")
	}

	// The owner still sees the untouched event
	got, err = store.GetEvent(ctx, alice.ID, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got == nil || got.Title != "Private" {
		t.Errorf("Owner's event was affected: %+v", got)
	}
}

func TestFindDueEventsAndMarkTriggered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, store, "erin")

	due1 := createTestEvent(t, store, owner.ID, models.Event{Title: "due-1", Date: "2026-01-01", Time: "09:30:00"})
	due2 := createTestEvent(t, store, owner.ID, models.Event{Title: "due-2", Date: "2026-01-01", Time: "09:30:45"})
	createTestEvent(t, store, owner.ID, models.Event{Title: "later", Date: "2026-01-01", Time: "09:31:00"})
	createTestEvent(t, store, owner.ID, models.Event{Title: "other-day", Date: "2026-01-02", Time: "09:30:00"})

	t.Run("matches whole minute on the given date", func(t *testing.T) {
		due, err := store.FindDueEvents(ctx, "2026-01-01", "09:30")
		if err != nil {
			t.Fatalf("FindDueEvents failed: %v", err)
		}
		if len(due) != 2 {
			t.Fatalf("Expected 2 due events, got %d", len(due))
		}
	})

	t.Run("MarkTriggered is a compare-and-set", func(t *testing.T) {
		at := time.Date(2026, 1, 1, 9, 30, 7, 0, time.UTC)

		applied, err := store.MarkTriggered(ctx, due1.ID, at)
		if err != nil {
			t.Fatalf("MarkTriggered failed: %v", err)
		}
		if !applied {
			t.Fatal("Expected first trigger write to apply")
		}

		got, err := store.GetEvent(ctx, owner.ID, due1.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if !got.Triggered {
			t.Error("Expected event to be triggered")
		}
		if got.TriggeredAt == nil || *got.TriggeredAt != at.Unix() {
			t.Errorf("TriggeredAt mismatch: %v", got.TriggeredAt)
		}

		// Second write fails the precondition
		applied, err = store.MarkTriggered(ctx, due1.ID, at.Add(time.Second))
		if err != nil {
			t.Fatalf("MarkTriggered failed: %v", err)
		}
		if applied {
			t.Error("Second trigger write must not apply")
		}
	})

	t.Run("triggered events leave the due set", func(t *testing.T) {
		due, err := store.FindDueEvents(ctx, "2026-01-01", "09:30")
		if err != nil {
			t.Fatalf("FindDueEvents failed: %v", err)
		}
		if len(due) != 1 || due[0].ID != due2.ID {
			t.Errorf("Expected only due-2 to remain, got %d events", len(due))
		}
	})

	t.Run("MarkTriggered on deleted event returns false", func(t *testing.T) {
		if _, err := store.DeleteEvent(ctx, owner.ID, due2.ID); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}

		applied, err := store.MarkTriggered(ctx, due2.ID, time.Now())
		if err != nil {
			t.Fatalf("MarkTriggered failed: %v", err)
		}
		if applied {
			t.Error("Trigger write on a deleted event must not apply")
		}
	})
}
