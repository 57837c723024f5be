package config

import "time"

// Registry sources
const (
	RegistrySourceFiles    = "files"
	RegistrySourceDatabase = "database"
)

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Sampling     SamplingConfig  `mapstructure:"sampling"`
	Registry     RegistryConfig  `mapstructure:"registry"`
	Database     DatabaseConfig  `mapstructure:"database"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Security     SecurityConfig  `mapstructure:"security"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// SamplingConfig tunes the episode sampler and the feed fetcher
type SamplingConfig struct {
	DefaultCount       int           `mapstructure:"default_count"`
	MaxCount           int           `mapstructure:"max_count"`
	FetchTimeout       time.Duration `mapstructure:"fetch_timeout"`
	RecentDaysCutoff   int           `mapstructure:"recent_days_cutoff"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	MaxFeedsPerAttempt int           `mapstructure:"max_feeds_per_attempt"`
	UserAgent          string        `mapstructure:"user_agent"`
	MaxFeedBytes       int64         `mapstructure:"max_feed_bytes"`
}

// RegistryConfig selects where feeds and singles are read from
type RegistryConfig struct {
	Source          string        `mapstructure:"source"`
	ContentDir      string        `mapstructure:"content_dir"`
	DefaultLanguage string        `mapstructure:"default_language"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"` // 0 disables the server-side registry cache
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
