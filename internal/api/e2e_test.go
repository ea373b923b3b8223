package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CloudCorpRecords/RedTeamGemini/internal/analyzer"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/fetcher"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/genai"
)

// geminiStub replays canned completions, answering the assessment pass when
// the prompt carries the assessment instruction and the findings pass otherwise
func geminiStub(t *testing.T, findings, assessment string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotEmpty(t, req.Contents[0].Parts)

		text := findings
		if strings.Contains(req.Contents[0].Parts[0].Text, "threat level assessment") {
			text = assessment
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + mustMarshal(t, text) + `}]}}]}`))
	}))
}

func mustMarshal(t *testing.T, s string) string {
	t.Helper()

	b, err := json.Marshal(s)
	require.NoError(t, err)

	return string(b)
}

// TestGenerate_EndToEnd wires the real fetcher, Gemini client, and analyzer
// behind the router, with only the network endpoints stubbed
func TestGenerate_EndToEnd(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer page.Close()

	modelText := "Found an XSS vector. This is medium risk."

	gemini := geminiStub(t, modelText, modelText)
	defer gemini.Close()

	client, err := genai.New("test-key", genai.WithBaseURL(gemini.URL))
	require.NoError(t, err)

	a := analyzer.New(client, fetcher.New())
	handler := NewRouter(RouterConfig{Analyzer: a})

	w := postGenerate(t, handler, GenerateRequest{URL: page.URL})

	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, modelText, resp.Text)
	assert.Equal(t, modelText, resp.Analysis)
	assert.Equal(t, "Medium", resp.ThreatLevel)
}

// TestGenerate_EndToEnd_FetchFailure verifies the scrape failure path with
// no generation call attempted
func TestGenerate_EndToEnd_FetchFailure(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	page.Close() // target is unreachable

	geminiCalled := false

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geminiCalled = true
		w.WriteHeader(http.StatusOK)
	}))
	defer gemini.Close()

	client, err := genai.New("test-key", genai.WithBaseURL(gemini.URL))
	require.NoError(t, err)

	a := analyzer.New(client, fetcher.New())
	handler := NewRouter(RouterConfig{Analyzer: a})

	w := postGenerate(t, handler, GenerateRequest{URL: page.URL})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to scrape website content", decodeError(t, w).Error)
	assert.False(t, geminiCalled, "no generation call should be made after a fetch failure")
}
