package genai

import "errors"

var (
	// ErrMissingAPIKey is returned when the Gemini API key is not configured
	ErrMissingAPIKey = errors.New("gemini API key is required")
	// ErrMissingModel is returned when no model identifier is provided
	ErrMissingModel = errors.New("model identifier is required")
	// ErrRequestFailed is returned when a Gemini API request fails
	ErrRequestFailed = errors.New("gemini API request failed")
	// ErrUnexpectedStatus is returned when the Gemini API returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected gemini API response status")
	// ErrNoCandidates is returned when the model returns no candidates
	ErrNoCandidates = errors.New("no candidates returned from the model")
	// ErrContentBlocked is returned when the top candidate was blocked by safety ratings
	ErrContentBlocked = errors.New("response was blocked due to safety ratings")
	// ErrEmptyContent is returned when the candidate text is empty after concatenation
	ErrEmptyContent = errors.New("generated content is empty")
)
