package types

import "github.com/killallgit/podradio/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// RandomEpisodesResponse for the random episodes endpoint
type RandomEpisodesResponse struct {
	BaseResponse
	Episodes   []models.Episode `json:"episodes"`
	Count      int              `json:"count"`
	Language   string           `json:"language"`
	Preference string           `json:"preference"`
}

// LanguageInfo describes one supported content language
type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguagesResponse lists the supported content languages
type LanguagesResponse struct {
	BaseResponse
	Languages []LanguageInfo `json:"languages"`
	Default   string         `json:"default"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Database  map[string]string `json:"database"`
}

// VersionResponse for the root endpoint
type VersionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
