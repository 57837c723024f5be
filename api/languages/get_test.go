package languages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podradio/api/types"
	"github.com/killallgit/podradio/pkg/config"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		deps        *types.Dependencies
		wantDefault string
	}{
		{name: "built-in default", deps: &types.Dependencies{}, wantDefault: "zh"},
		{
			name:        "configured default",
			deps:        &types.Dependencies{Config: &config.Config{Registry: config.RegistryConfig{DefaultLanguage: "fr"}}},
			wantDefault: "fr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Get(tt.deps)(c)

			require.Equal(t, http.StatusOK, w.Code)
			var resp types.LanguagesResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			assert.Equal(t, types.StatusOK, resp.Status)
			assert.Equal(t, tt.wantDefault, resp.Default)
			require.Len(t, resp.Languages, 7)
			assert.Equal(t, "zh", resp.Languages[0].Code)
			assert.NotEmpty(t, resp.Languages[0].Name)
			assert.Equal(t, "fr", resp.Languages[6].Code)
		})
	}
}
