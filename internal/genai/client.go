// Package genai provides a minimal client for the Gemini generateContent API.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// defaultBaseURL is the root endpoint for the Gemini API
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// defaultRequestTimeout is the default timeout for Gemini API requests.
	// Long-form analysis of a full page of HTML can take well over a minute
	// on the larger models, so this must be generous.
	defaultRequestTimeout = 2 * time.Minute
)

// Client provides access to the Gemini generateContent API
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Gemini client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default Gemini API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// New creates a new Gemini client with the provided API key
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// apiURL constructs the generateContent URL for a given model
func (c *Client) apiURL(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))
}

// GenerateContent sends a single prompt to the given model and returns the
// text of the top candidate. Safety filtering is configured to BLOCK_NONE
// across all harm categories so that security-research prompts are not
// rejected; the caller owns appropriate use. Extra generation parameters
// (temperature, maxOutputTokens, ...) are forwarded to the API verbatim.
//
// Failures are classified with sentinel errors: transport or HTTP failures
// (ErrRequestFailed, ErrUnexpectedStatus), an empty candidate list
// (ErrNoCandidates), a top candidate with any blocked safety rating
// (ErrContentBlocked), and candidate text that is empty after concatenation
// (ErrEmptyContent).
func (c *Client) GenerateContent(ctx context.Context, model, prompt string, params map[string]any) (string, error) {
	if model == "" {
		return "", ErrMissingModel
	}

	body := generateRequest{
		Contents: []promptContent{
			{Parts: []textPart{{Text: prompt}}},
		},
		SafetySettings:   permissiveSafetySettings(),
		GenerationConfig: params,
	}

	out, err := c.postGenerate(ctx, model, body)
	if err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	top := out.Candidates[0]

	for _, rating := range top.SafetyRatings {
		if rating.Blocked {
			return "", fmt.Errorf("%w: %s", ErrContentBlocked, rating.Category)
		}
	}

	text := top.Content.text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}

	return text, nil
}
