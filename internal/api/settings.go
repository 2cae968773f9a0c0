package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronoflow/chronoflow/internal/middleware"
	"github.com/chronoflow/chronoflow/internal/models"
)

type settingsRequest struct {
	Theme                   *string                         `json:"theme"`
	BackgroundColor         *string                         `json:"background_color"`
	NotificationPreferences *models.NotificationPreferences `json:"notification_preferences"`
}

// GetSettings returns the user's saved settings, or defaults if none have
// been saved yet.
func (h *Handler) GetSettings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	settings, err := h.store.GetSettings(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to get settings", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve settings"})
		return
	}
	if settings == nil {
		settings = models.DefaultSettings()
		settings.UserID = user.ID
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings retrieved successfully",
		"settings": settings,
	})
}

// UpdateSettings upserts the user's settings. Omitted fields keep their
// previously saved (or default) values.
func (h *Handler) UpdateSettings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	settings, err := h.store.GetSettings(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to load settings", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update settings"})
		return
	}
	if settings == nil {
		settings = models.DefaultSettings()
	}
	settings.UserID = user.ID

	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.BackgroundColor != nil {
		settings.BackgroundColor = req.BackgroundColor
	}
	if req.NotificationPreferences != nil {
		settings.NotificationPreferences = *req.NotificationPreferences
	}

	if err := h.store.PutSettings(c.Request.Context(), settings); err != nil {
		h.logger.Error("Failed to save settings", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}
