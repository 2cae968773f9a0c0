// Package api implements the REST surface of the ChronoFlow backend. All
// scheduling logic lives in the scanner and the store; handlers only
// translate requests into store and auth operations.
package api

import (
	"log/slog"

	"github.com/chronoflow/chronoflow/internal/auth"
	"github.com/chronoflow/chronoflow/internal/storage"
)

// Handler bundles the collaborators shared by all route handlers.
type Handler struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger

	uploadDir      string
	maxUploadBytes int64
}

// NewHandler creates the route handler set.
func NewHandler(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger, uploadDir string, maxUploadBytes int64) *Handler {
	return &Handler{
		store:          store,
		authenticator:  authenticator,
		jwtManager:     jwtManager,
		logger:         logger,
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
	}
}
