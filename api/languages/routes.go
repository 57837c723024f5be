package languages

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/podradio/api/types"
)

// RegisterRoutes registers language routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
}
