package fetcher

import "errors"

var (
	// ErrRequestFailed is returned when the outbound page request fails
	ErrRequestFailed = errors.New("page request failed")
	// ErrBadStatus is returned when the target responds with a non-success status
	ErrBadStatus = errors.New("page returned non-success status")
	// ErrParseFailed is returned when the response body cannot be parsed as HTML
	ErrParseFailed = errors.New("failed to parse page HTML")
)
