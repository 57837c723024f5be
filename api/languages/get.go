package languages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podradio/api/types"
	"github.com/killallgit/podradio/internal/registry"
)

// Get lists the supported content languages
// @Summary List supported languages
// @Description Returns every language the registries can be keyed by, plus the default used for unknown codes.
// @Tags languages
// @Produce json
// @Success 200 {object} types.LanguagesResponse "Supported languages"
// @Router /api/v1/languages [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		langs := make([]types.LanguageInfo, 0, len(registry.AllLanguages))
		for _, l := range registry.AllLanguages {
			langs = append(langs, types.LanguageInfo{Code: string(l), Name: registry.LanguageName(l)})
		}

		c.JSON(http.StatusOK, types.LanguagesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Languages:    langs,
			Default:      string(deps.DefaultLanguage()),
		})
	}
}
