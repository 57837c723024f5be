package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/killallgit/podradio/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings.yaml",
			setup: func(t *testing.T) {
				ConfigFile = writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8081
sampling:
  default_count: 4
  recent_days_cutoff: 14
registry:
  content_dir: "/srv/content"
  default_language: "en"
`)
			},
			check: func(t *testing.T) {
				assert.Equal(t, 8081, GetInt("server.port"))
				assert.Equal(t, "127.0.0.1", GetString("server.host"))
				assert.Equal(t, 4, GetInt("sampling.default_count"))
				assert.Equal(t, 14, GetInt("sampling.recent_days_cutoff"))
				assert.Equal(t, "/srv/content", GetString("registry.content_dir"))
				assert.Equal(t, "en", GetString("registry.default_language"))
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T) {
				ConfigFile = writeConfig(t, "server:\n  port: 8080\n")
				t.Setenv("PODRADIO_SERVER_PORT", "9090")
				t.Setenv("PODRADIO_SAMPLING_FETCH_TIMEOUT", "3s")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
				assert.Equal(t, 3*time.Second, GetDuration("sampling.fetch_timeout"))
			},
		},
		{
			name: "missing config file with defaults",
			setup: func(t *testing.T) {
				ConfigFile = filepath.Join(t.TempDir(), "absent.yaml")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, 3, GetInt("sampling.default_count"))
				assert.Equal(t, 10, GetInt("sampling.max_count"))
				assert.Equal(t, 15*time.Second, GetDuration("sampling.fetch_timeout"))
				assert.Equal(t, 30, GetInt("sampling.recent_days_cutoff"))
				assert.Equal(t, 3, GetInt("sampling.max_attempts"))
				assert.Equal(t, 5, GetInt("sampling.max_feeds_per_attempt"))
				assert.Equal(t, RegistrySourceFiles, GetString("registry.source"))
				assert.Equal(t, "zh", GetString("registry.default_language"))
				assert.True(t, GetBool("rate_limiting.enabled"))
				assert.True(t, IsInitialized())
			},
		},
		{
			name: "out-of-range sampling values are corrected",
			setup: func(t *testing.T) {
				ConfigFile = writeConfig(t, `
sampling:
  default_count: 50
  max_count: 0
  max_attempts: -1
  max_feeds_per_attempt: 0
rate_limiting:
  requests_per_second: 0
`)
			},
			check: func(t *testing.T) {
				assert.Equal(t, 10, GetInt("sampling.max_count"))
				assert.Equal(t, 3, GetInt("sampling.default_count"))
				assert.Equal(t, 3, GetInt("sampling.max_attempts"))
				assert.Equal(t, 5, GetInt("sampling.max_feeds_per_attempt"))
				assert.Equal(t, 5.0, GetFloat64("rate_limiting.requests_per_second"))
			},
		},
		{
			name: "invalid port",
			setup: func(t *testing.T) {
				ConfigFile = writeConfig(t, "server:\n  port: 70000\n")
			},
			wantErr: true,
		},
		{
			name: "invalid registry source",
			setup: func(t *testing.T) {
				ConfigFile = writeConfig(t, "registry:\n  source: s3\n")
			},
			wantErr: true,
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T) {
				ConfigFile = writeConfig(t, "server: [unclosed\n")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			defer Reset()
			tt.setup(t)

			err := Init()
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsInitialized())
				return
			}
			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	Reset()
	defer Reset()
	ConfigFile = filepath.Join(t.TempDir(), "absent.yaml")
	require.NoError(t, Init())

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Sampling.DefaultCount)
	assert.Equal(t, 15*time.Second, cfg.Sampling.FetchTimeout)
	assert.Equal(t, int64(10<<20), cfg.Sampling.MaxFeedBytes)
	assert.Contains(t, cfg.Sampling.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "./content", cfg.Registry.ContentDir)
	assert.Equal(t, time.Minute, cfg.Registry.CacheTTL)
	assert.Equal(t, 5.0, cfg.RateLimiting.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimiting.Burst)
	assert.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "valid config",
			config: &Config{
				Server:   ServerConfig{Host: "localhost", Port: 8080},
				Registry: RegistryConfig{Source: RegistrySourceFiles},
				Sampling: SamplingConfig{DefaultCount: 3, MaxCount: 10},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server:   ServerConfig{Host: "localhost", Port: 0},
				Registry: RegistryConfig{Source: RegistrySourceFiles},
			},
			wantErr: true,
		},
		{
			name: "database source needs a path",
			config: &Config{
				Server:   ServerConfig{Port: 8080},
				Registry: RegistryConfig{Source: RegistrySourceDatabase},
			},
			wantErr: true,
		},
		{
			name: "unknown source",
			config: &Config{
				Server:   ServerConfig{Port: 8080},
				Registry: RegistryConfig{Source: "ftp"},
			},
			wantErr: true,
		},
		{
			name: "zero sampling values are defaulted",
			config: &Config{
				Server:   ServerConfig{Port: 8080},
				Registry: RegistryConfig{Source: RegistrySourceDatabase},
				Database: DatabaseConfig{Path: ":memory:"},
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 10, c.Sampling.MaxCount)
				assert.Equal(t, 3, c.Sampling.DefaultCount)
				assert.Equal(t, 3, c.Sampling.MaxAttempts)
				assert.Equal(t, 5, c.Sampling.MaxFeedsPerAttempt)
				assert.Equal(t, 30, c.Sampling.RecentDaysCutoff)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, tt.config)
			}
		})
	}
}

func TestRegistrySourceErrorsAreConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		key    string
	}{
		{
			name:   "unknown source",
			config: &Config{Server: ServerConfig{Port: 8080}, Registry: RegistryConfig{Source: "ftp"}},
			key:    "registry.source",
		},
		{
			name:   "database source without a path",
			config: &Config{Server: ServerConfig{Port: 8080}, Registry: RegistryConfig{Source: RegistrySourceDatabase}},
			key:    "database.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigInvalid))

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.key, appErr.Details["key"])
		})
	}

	t.Run("Init wraps the same error", func(t *testing.T) {
		Reset()
		defer Reset()
		ConfigFile = writeConfig(t, "registry:\n  source: s3\n")

		err := Init()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigInvalid))
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
