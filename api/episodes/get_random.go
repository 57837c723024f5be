package episodes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/podradio/api/types"
	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/registry"
	episodesService "github.com/killallgit/podradio/internal/services/episodes"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// GetRandom returns a random selection of playable episodes
// @Summary Get random episodes
// @Description Samples episodes from the feed and singles registries of a language.
// @Description Always returns at least one episode for a positive count; when no source yields anything a fixed fallback episode is returned.
// @Tags episodes
// @Produce json
// @Param count query int false "Number of episodes to return (capped at the configured maximum)" default(3) minimum(1)
// @Param time query string false "Time preference" Enums(all, new) default(all)
// @Param lang query string false "Language code; unknown codes fall back to the default language" Enums(zh, en, ja, es, de, pt, fr)
// @Success 200 {object} types.RandomEpisodesResponse "Sampled episodes"
// @Failure 400 {object} types.ErrorResponse "Invalid count or time preference"
// @Failure 503 {object} types.ErrorResponse "Sampler not configured"
// @Router /api/v1/episodes/random [get]
func GetRandom(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Sampler == nil {
			types.SendAppError(c, apperrors.New(apperrors.ErrCodeServiceDown, "episode sampler is not configured"))
			return
		}

		def, limit := deps.CountLimits()
		count, err := episodesService.ParseCount(c.Query("count"), def, limit)
		if err != nil {
			types.SendAppError(c, toAppError(err))
			return
		}

		preference, err := models.ParseTimePreference(c.Query("time"))
		if err != nil {
			types.SendAppError(c, apperrors.ValidationError("time", "must be all or new").WithCause(err))
			return
		}

		lang := registry.ResolveLanguage(c.Query("lang"), deps.DefaultLanguage())

		selected := deps.Sampler.SelectEpisodes(c.Request.Context(), count, preference, lang)

		c.JSON(http.StatusOK, types.RandomEpisodesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Episodes:     selected,
			Count:        len(selected),
			Language:     string(lang),
			Preference:   string(preference),
		})
	}
}

func toAppError(err error) error {
	var ve episodesService.ValidationError
	if errors.As(err, &ve) {
		return apperrors.ValidationError(ve.Field, ve.Message).WithCause(err)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid request")
}
