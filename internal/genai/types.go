package genai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/theopenlane/httpsling"
)

// generateRequest is the request body for the generateContent endpoint
type generateRequest struct {
	Contents         []promptContent `json:"contents"`
	SafetySettings   []safetySetting `json:"safetySettings,omitempty"`
	GenerationConfig map[string]any  `json:"generationConfig,omitempty"`
}

// promptContent is a single prompt content block
type promptContent struct {
	Parts []textPart `json:"parts"`
}

// textPart is a single text fragment within a content block
type textPart struct {
	Text string `json:"text"`
}

// safetySetting sets the block threshold for one harm category
type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// blockNone disables filtering for a harm category
const blockNone = "BLOCK_NONE"

// harmCategories are the categories the API filters on
var harmCategories = []string{
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// permissiveSafetySettings sets every harm category to the least restrictive
// threshold, allowing red-team style prompts through the content filter
func permissiveSafetySettings() []safetySetting {
	settings := make([]safetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		settings = append(settings, safetySetting{Category: category, Threshold: blockNone})
	}

	return settings
}

// generateResponse is the generateContent API response wrapper
type generateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a single generated completion
type Candidate struct {
	Content       CandidateContent `json:"content"`
	SafetyRatings []SafetyRating   `json:"safetyRatings,omitempty"`
	FinishReason  string           `json:"finishReason,omitempty"`
}

// CandidateContent holds candidate output. The API exposes either a parts
// list or a bare text field depending on the model; both shapes decode here
// and text resolves them into one canonical string.
type CandidateContent struct {
	Parts []textPart `json:"parts,omitempty"`
	Text  string     `json:"text,omitempty"`
}

// text concatenates all part fragments, falling back to the bare text field
// when no parts are present
func (c CandidateContent) text() string {
	if len(c.Parts) == 0 {
		return c.Text
	}

	var b strings.Builder
	for _, part := range c.Parts {
		b.WriteString(part.Text)
	}

	return b.String()
}

// SafetyRating is a per-category content policy verdict on a candidate
type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability,omitempty"`
	Blocked     bool   `json:"blocked,omitempty"`
}

// postGenerate performs the generateContent HTTP exchange
func (c *Client) postGenerate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	requester := httpsling.MustNew(
		httpsling.URL(c.apiURL(model)),
		httpsling.Post(),
		httpsling.Body(body),
		httpsling.WithDoer(c.httpClient),
	)

	var out generateResponse

	resp, err := requester.ReceiveWithContext(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return &out, nil
}
