package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/services/episodes"
	"github.com/killallgit/podradio/pkg/config"
)

func decodeEpisodes(t *testing.T, out string) []models.Episode {
	t.Helper()
	var eps []models.Episode
	require.NoError(t, json.Unmarshal([]byte(out), &eps), out)
	return eps
}

func TestSampleCommand(t *testing.T) {
	env := newTestEnv(t, config.RegistrySourceFiles)

	tests := []struct {
		name      string
		args      []string
		wantLen   int
		wantIDs   string
		wantError bool
	}{
		{
			name:    "singles only language",
			args:    []string{"--count", "2", "--lang", "en"},
			wantLen: 2,
			wantIDs: episodes.SingleIDPrefix,
		},
		{
			name:    "default language from config",
			args:    []string{"--count", "5"},
			wantLen: 2,
			wantIDs: episodes.SingleIDPrefix,
		},
		{
			name:    "empty language yields fallback",
			args:    []string{"--lang", "ja"},
			wantLen: 1,
			wantIDs: episodes.FallbackEpisodeID,
		},
		{
			name:    "old singles are not new",
			args:    []string{"--lang", "en", "--time", "new"},
			wantLen: 1,
			wantIDs: episodes.FallbackEpisodeID,
		},
		{
			name:      "invalid time preference",
			args:      []string{"--time", "recent"},
			wantError: true,
		},
		{
			name:      "negative count",
			args:      []string{"--count", "-1"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"sample", "--config", env.configPath}, tt.args...)
			out, err := execute(t, args...)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			eps := decodeEpisodes(t, out)
			require.Len(t, eps, tt.wantLen)
			for _, ep := range eps {
				assert.True(t, strings.HasPrefix(ep.ID, tt.wantIDs), ep.ID)
			}
		})
	}
}
