package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/identity"
	"resumind-backend/internal/resumes"
	"resumind-backend/internal/shared/config"
	"resumind-backend/internal/shared/metrics"
	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers into router construction.
type RouterDeps struct {
	Config        config.Config
	Sessions      identity.Sessions
	ResumeHandler *resumes.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(deps.Sessions))
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.ResumeHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
