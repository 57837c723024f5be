package feeds

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrFetchFailed = errors.New("feed fetch failed")
	ErrInvalidURL  = errors.New("invalid feed url")
)

// Fetch stages reported by FetchError
const (
	StageRequest = "request"
	StageStatus  = "status"
	StageParse   = "parse"
)

// FetchError describes why one feed could not be retrieved or parsed
type FetchError struct {
	URL        string
	Stage      string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Stage == StageStatus {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s (%s): %v", e.URL, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewFetchError creates a new FetchError
func NewFetchError(url, stage string, err error) error {
	return &FetchError{
		URL:   url,
		Stage: stage,
		Err:   err,
	}
}

// NewStatusError creates a FetchError for a non-2xx response
func NewStatusError(url string, statusCode int) error {
	return &FetchError{
		URL:        url,
		Stage:      StageStatus,
		StatusCode: statusCode,
	}
}

// IsFetchError checks if an error came from a feed fetch
func IsFetchError(err error) bool {
	if err == nil {
		return false
	}
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) || errors.Is(err, ErrFetchFailed)
}
