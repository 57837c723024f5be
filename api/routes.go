package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/podradio/api/episodes"
	"github.com/killallgit/podradio/api/health"
	"github.com/killallgit/podradio/api/languages"
	"github.com/killallgit/podradio/api/types"
	"github.com/killallgit/podradio/api/version"
	_ "github.com/killallgit/podradio/docs/swagger"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// Fallback limits when no rate limiting config is supplied
const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	rps, burst, enabled := float64(defaultRequestsPerSecond), defaultBurst, true
	if cfg := deps.Config; cfg != nil {
		enabled = cfg.RateLimiting.Enabled
		if cfg.RateLimiting.RequestsPerSecond > 0 {
			rps = cfg.RateLimiting.RequestsPerSecond
		}
		if cfg.RateLimiting.Burst > 0 {
			burst = cfg.RateLimiting.Burst
		}
	}
	if enabled {
		v1.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
	}

	episodes.RegisterRoutes(v1.Group("/episodes"), deps)
	languages.RegisterRoutes(v1.Group("/languages"), deps)

	return nil
}

// NotFoundHandler answers unknown routes with a NOT_FOUND error
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendAppError(c, apperrors.NotFound("endpoint", c.Request.URL.Path))
	}
}
