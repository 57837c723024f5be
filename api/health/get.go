package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podradio/api/types"
)

// Get handles health check requests
// @Summary Health check
// @Description Reports service liveness and, when a database is configured, its connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Failure 503 {object} types.HealthResponse
// @Router /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
		}

		code := http.StatusOK
		if response.Database["status"] == "unhealthy" {
			response.Status = types.StatusError
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) map[string]string {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return map[string]string{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return map[string]string{"status": "unhealthy", "error": err.Error()}
	}

	return map[string]string{"status": "healthy"}
}
