package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chronoflow/chronoflow/internal/middleware"
	"github.com/chronoflow/chronoflow/internal/models"
)

// createEventRequest accepts both snake_case and the legacy camelCase keys
// used by older clients (soundType, bgColor).
type createEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reminder     string `json:"reminder"`
	SoundType    string `json:"sound_type"`
	SoundTypeAlt string `json:"soundType"`
	Color        string `json:"color"`
	BgColor      string `json:"bgColor"`
	Photo        string `json:"photo"`
}

type updateEventRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Reminder     *string `json:"reminder"`
	SoundType    *string `json:"sound_type"`
	SoundTypeAlt *string `json:"soundType"`
	Color        *string `json:"color"`
	BgColor      *string `json:"bgColor"`
	Photo        *string `json:"photo"`
	Triggered    *bool   `json:"triggered"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CreateEvent creates a new event owned by the authenticated user.
func (h *Handler) CreateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	title := strings.TrimSpace(req.Title)
	category := firstNonEmpty(req.Category, "personal")
	if title == "" || req.Date == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, date, and category are required"})
		return
	}

	event := &models.Event{
		UserID:      user.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Date:        req.Date,
		Time:        firstNonEmpty(req.Time, "00:00:00"),
		Reminder:    firstNonEmpty(req.Reminder, "none"),
		SoundType:   firstNonEmpty(req.SoundType, req.SoundTypeAlt, "default"),
		Color:       firstNonEmpty(req.Color, req.BgColor, "default"),
		Photo:       req.Photo,
	}

	if err := h.store.CreateEvent(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to create event", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   event,
	})
}

// ListEvents returns the authenticated user's events, optionally filtered
// by category and date range.
func (h *Handler) ListEvents(c *gin.Context) {
	user := middleware.CurrentUser(c)

	filter := models.EventFilter{
		Category: c.Query("category"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	events, err := h.store.ListEvents(c.Request.Context(), user.ID, filter)
	if err != nil {
		h.logger.Error("Failed to list events", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve events"})
		return
	}
	if events == nil {
		events = []*models.Event{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Events retrieved successfully",
		"events":  events,
		"count":   len(events),
	})
}

// UpdateEvent applies a partial update to one of the user's events.
func (h *Handler) UpdateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event ID"})
		return
	}

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	patch := models.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
		Reminder:    req.Reminder,
		SoundType:   req.SoundType,
		Color:       req.Color,
		Photo:       req.Photo,
		Triggered:   req.Triggered,
	}
	if patch.SoundType == nil {
		patch.SoundType = req.SoundTypeAlt
	}
	if patch.Color == nil {
		patch.Color = req.BgColor
	}

	event, err := h.store.UpdateEvent(c.Request.Context(), user.ID, eventID, patch)
	if err != nil {
		h.logger.Error("Failed to update event", "user_id", user.ID, "event_id", eventID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully",
		"event":   event,
	})
}

// DeleteEvent removes one of the user's events.
func (h *Handler) DeleteEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event ID"})
		return
	}

	deleted, err := h.store.DeleteEvent(c.Request.Context(), user.ID, eventID)
	if err != nil {
		h.logger.Error("Failed to delete event", "user_id", user.ID, "event_id", eventID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete event"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// EventStats returns the user's total and per-category event counts.
func (h *Handler) EventStats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.store.EventStats(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to get event stats", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statistics retrieved successfully",
		"stats":   stats,
	})
}
