package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/killallgit/podradio/internal/logging"
	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// DefaultConfigFile is read by Init when present
const DefaultConfigFile = "./config/settings.yaml"

var (
	once        sync.Once
	initErr     error
	initialized bool

	// ConfigFile may be changed before Init, e.g. from a CLI flag
	ConfigFile = DefaultConfigFile
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("PODRADIO")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean(ConfigFile)
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing file means defaults and env vars only
			if !errors.Is(err, fs.ErrNotExist) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}
		initialized = true
	})

	return initErr
}

// IsInitialized reports whether Init completed successfully
func IsInitialized() bool {
	return initialized
}

// Reset clears viper state so Init can run again. Intended for tests.
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
	initialized = false
	ConfigFile = DefaultConfigFile
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float64 config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if err := checkRegistrySource(viper.GetString("registry.source"), viper.GetString("database.path")); err != nil {
		return err
	}

	// Auto-correct out-of-range sampling values
	if viper.GetInt("sampling.max_count") <= 0 {
		logging.Warn("sampling.max_count must be positive, using default", "value", viper.GetInt("sampling.max_count"))
		viper.Set("sampling.max_count", 10)
	}
	if c := viper.GetInt("sampling.default_count"); c <= 0 || c > viper.GetInt("sampling.max_count") {
		logging.Warn("sampling.default_count out of range, clamping", "value", c)
		viper.Set("sampling.default_count", min(3, viper.GetInt("sampling.max_count")))
	}
	if viper.GetInt("sampling.max_attempts") <= 0 {
		viper.Set("sampling.max_attempts", 3)
	}
	if viper.GetInt("sampling.max_feeds_per_attempt") <= 0 {
		viper.Set("sampling.max_feeds_per_attempt", 5)
	}
	if viper.GetInt("sampling.recent_days_cutoff") <= 0 {
		viper.Set("sampling.recent_days_cutoff", 30)
	}
	if viper.GetDuration("sampling.fetch_timeout") <= 0 {
		viper.Set("sampling.fetch_timeout", 15*time.Second)
	}
	if viper.GetInt64("sampling.max_feed_bytes") <= 0 {
		viper.Set("sampling.max_feed_bytes", 10<<20)
	}

	if viper.GetFloat64("rate_limiting.requests_per_second") <= 0 {
		viper.Set("rate_limiting.requests_per_second", 5)
	}
	if viper.GetInt("rate_limiting.burst") <= 0 {
		viper.Set("rate_limiting.burst", 10)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := checkRegistrySource(c.Registry.Source, c.Database.Path); err != nil {
		return err
	}

	if c.Sampling.MaxCount <= 0 {
		c.Sampling.MaxCount = 10
	}
	if c.Sampling.DefaultCount <= 0 || c.Sampling.DefaultCount > c.Sampling.MaxCount {
		c.Sampling.DefaultCount = min(3, c.Sampling.MaxCount)
	}
	if c.Sampling.MaxAttempts <= 0 {
		c.Sampling.MaxAttempts = 3
	}
	if c.Sampling.MaxFeedsPerAttempt <= 0 {
		c.Sampling.MaxFeedsPerAttempt = 5
	}
	if c.Sampling.RecentDaysCutoff <= 0 {
		c.Sampling.RecentDaysCutoff = 30
	}

	return nil
}

// checkRegistrySource rejects unknown sources and a database source without a path
func checkRegistrySource(source, dbPath string) error {
	switch source {
	case RegistrySourceFiles:
		return nil
	case RegistrySourceDatabase:
		if dbPath == "" {
			return apperrors.ConfigError("database.path", "required when registry.source is database")
		}
		return nil
	default:
		return apperrors.ConfigError("registry.source",
			fmt.Sprintf("%q is not %q or %q", source, RegistrySourceFiles, RegistrySourceDatabase))
	}
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Sampling defaults
	viper.SetDefault("sampling.default_count", 3)
	viper.SetDefault("sampling.max_count", 10)
	viper.SetDefault("sampling.fetch_timeout", 15*time.Second)
	viper.SetDefault("sampling.recent_days_cutoff", 30)
	viper.SetDefault("sampling.max_attempts", 3)
	viper.SetDefault("sampling.max_feeds_per_attempt", 5)
	viper.SetDefault("sampling.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("sampling.max_feed_bytes", 10<<20)

	// Registry defaults
	viper.SetDefault("registry.source", RegistrySourceFiles)
	viper.SetDefault("registry.content_dir", "./content")
	viper.SetDefault("registry.default_language", "zh")
	viper.SetDefault("registry.cache_ttl", time.Minute)

	// Database defaults
	viper.SetDefault("database.path", "./data/podradio.db")
	viper.SetDefault("database.verbose", false)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 5)
	viper.SetDefault("rate_limiting.burst", 10)

	// Security defaults
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
