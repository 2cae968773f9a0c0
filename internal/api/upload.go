package api

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronoflow/chronoflow/internal/middleware"
)

// allowedExtensions lists the accepted photo file extensions (without dot).
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename strips path components and unsafe characters so the
// stored name is safe to join under the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Upload stores an event photo and returns both a static URL and an inline
// base64 data URL, so clients can reference the photo either way.
func (h *Handler) Upload(c *gin.Context) {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file provided"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file selected"})
		return
	}
	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file type"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		h.logger.Error("Failed to create upload directory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save file"})
		return
	}

	// Timestamp prefix keeps repeated uploads of the same name unique.
	filename := time.Now().Format("20060102150405") + "_" + sanitizeFilename(file.Filename)
	path := filepath.Join(h.uploadDir, filename)

	if err := c.SaveUploadedFile(file, path); err != nil {
		h.logger.Error("Failed to save upload", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save file"})
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		h.logger.Error("Failed to read saved upload", "path", path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save file"})
		return
	}

	h.logger.Info("File uploaded", "user_id", user.ID, "filename", filename, "bytes", len(data))
	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"url":      "/static/uploads/" + filename,
		"base64":   "data:image/" + ext + ";base64," + base64.StdEncoding.EncodeToString(data),
		"filename": filename,
	})
}
