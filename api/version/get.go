package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podradio/api/types"
)

// Get handles version requests
// @Summary Service version
// @Tags health
// @Produce json
// @Success 200 {object} types.VersionResponse
// @Router / [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := types.VersionResponse{
			Name:        "podradio",
			Version:     "dev",
			Commit:      "unknown",
			Description: "Random podcast episode sampler",
			Status:      "running",
		}
		if deps != nil {
			if deps.Build.Version != "" {
				resp.Version = deps.Build.Version
			}
			if deps.Build.Commit != "" {
				resp.Commit = deps.Build.Commit
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
