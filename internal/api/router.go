package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chronoflow/chronoflow/internal/auth"
	"github.com/chronoflow/chronoflow/internal/middleware"
)

// RouterConfig holds the routing-relevant settings.
type RouterConfig struct {
	CORSOrigin string
	StaticDir  string
	UploadDir  string
}

// NewRouter wires the handlers into a gin engine with logging, CORS and
// auth middleware applied.
func NewRouter(h *Handler, jwtManager *auth.JWTManager, users auth.UserStorage, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(jwtManager, users)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/signup", h.Signup)
		api.POST("/login", h.Login)
		api.POST("/logout", requireAuth, h.Logout)
		api.GET("/me", requireAuth, h.Me)

		api.POST("/events", requireAuth, h.CreateEvent)
		api.GET("/events", requireAuth, h.ListEvents)
		api.GET("/events/stats", requireAuth, h.EventStats)
		api.PUT("/events/:id", requireAuth, h.UpdateEvent)
		api.DELETE("/events/:id", requireAuth, h.DeleteEvent)

		api.GET("/settings", requireAuth, h.GetSettings)
		api.PUT("/settings", requireAuth, h.UpdateSettings)

		api.POST("/upload", requireAuth, h.Upload)
	}

	// Uploaded photos are always served; the frontend bundle only when a
	// static dir is configured.
	router.Static("/static/uploads", cfg.UploadDir)
	if cfg.StaticDir != "" {
		router.StaticFile("/", cfg.StaticDir+"/index.html")
		router.StaticFile("/service-worker.js", cfg.StaticDir+"/service-worker.js")
	}

	return router
}
