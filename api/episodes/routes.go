package episodes

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/podradio/api/types"
)

// RegisterRoutes registers episode routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/episodes/random
	router.GET("/random", GetRandom(deps))
}
