package feeds

import "context"

// Fetcher retrieves and parses a single feed URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}
