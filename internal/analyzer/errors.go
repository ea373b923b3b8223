package analyzer

import "errors"

var (
	// ErrScrapeFailed is returned when the target page cannot be retrieved
	ErrScrapeFailed = errors.New("failed to scrape website content")
)
