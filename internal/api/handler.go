// Package api provides the HTTP surface for the red-team analysis service.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/CloudCorpRecords/RedTeamGemini/internal/analyzer"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/genai"
	"github.com/CloudCorpRecords/RedTeamGemini/internal/notify"
)

// defaultVulnerability is used when a request does not name a category
const defaultVulnerability = "Cross-Site Scripting (XSS)"

// AnalyzerService runs the analysis pipeline for one request
type AnalyzerService interface {
	Analyze(ctx context.Context, req analyzer.Request) (*analyzer.Result, error)
}

// Notifier sends threat alerts
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Handler manages API endpoints
type Handler struct {
	analyzer    AnalyzerService
	notifier    Notifier
	maxBodySize int64
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "redteam-gemini",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// GenerateRequest represents an analysis request
type GenerateRequest struct {
	// URL is the target page to analyze; required
	URL string `json:"url"`
	// Vulnerability is the category to hunt for; defaults to XSS
	Vulnerability string `json:"vulnerability,omitempty"`
	// Model overrides the findings-pass model
	Model string `json:"model,omitempty"`
	// Parameters holds extra generation options forwarded to the API verbatim
	Parameters map[string]any `json:"parameters,omitempty"`
}

// GenerateResponse represents a successful analysis response
type GenerateResponse struct {
	// Text is the vulnerability findings from the first model pass
	Text string `json:"text"`
	// Analysis is the threat assessment rationale from the second pass
	Analysis string `json:"analysis"`
	// ThreatLevel is the derived severity label
	ThreatLevel string `json:"threat_level"`
}

// handleGenerate processes analysis requests: validate the body, normalize
// the URL, run the pipeline, and map every failure to a status and error body
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req GenerateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.URL == "" {
		respondError(w, http.StatusBadRequest, ErrMissingURL.Error())
		return
	}

	targetURL := normalizeURL(req.URL)

	vulnerability := req.Vulnerability
	if vulnerability == "" {
		vulnerability = defaultVulnerability
	}

	result, err := h.analyzer.Analyze(r.Context(), analyzer.Request{
		URL:           targetURL,
		Vulnerability: vulnerability,
		Model:         req.Model,
		Parameters:    req.Parameters,
	})
	if err != nil {
		log.Error().Err(err).Str("url", targetURL).Msg("analysis failed")
		status, message := classifyAnalysisError(err)
		respondError(w, status, message)

		return
	}

	h.notifyHighThreat(r.Context(), targetURL, vulnerability, result)

	writeJSON(w, http.StatusOK, GenerateResponse{
		Text:        lo.Ternary(result.Findings != "", result.Findings, "No output"),
		Analysis:    lo.Ternary(result.Analysis != "", result.Analysis, "No content to analyze"),
		ThreatLevel: lo.Ternary(result.ThreatLevel != "", result.ThreatLevel, "N/A"),
	})
}

// classifyAnalysisError maps pipeline failures to an HTTP status and a
// message per failure cause. Unrecognized errors surface their own text,
// matching the service's deliberately transparent error contract.
func classifyAnalysisError(err error) (int, string) {
	switch {
	case errors.Is(err, analyzer.ErrScrapeFailed):
		return http.StatusInternalServerError, "Failed to scrape website content"
	case errors.Is(err, genai.ErrNoCandidates):
		return http.StatusInternalServerError, "No candidates returned from the model"
	case errors.Is(err, genai.ErrContentBlocked):
		return http.StatusInternalServerError, "Response was blocked due to safety ratings"
	case errors.Is(err, genai.ErrEmptyContent):
		return http.StatusInternalServerError, "Generated analysis is empty"
	case errors.Is(err, genai.ErrRequestFailed), errors.Is(err, genai.ErrUnexpectedStatus):
		return http.StatusInternalServerError, "Failed to generate content"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// notifyHighThreat sends a Slack alert for high-threat results. Send
// failures are logged and never surfaced to the caller.
func (h *Handler) notifyHighThreat(ctx context.Context, targetURL, vulnerability string, result *analyzer.Result) {
	if h.notifier == nil || result.ThreatLevel != analyzer.ThreatLevelHigh {
		return
	}

	msg := notify.ThreatAlert(targetURL, vulnerability, result.ThreatLevel, result.Findings)

	if err := h.notifier.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("url", targetURL).Msg("threat notification failed")
	}
}

// normalizeURL prefixes bare host URLs with http://. This is a permissive
// best-effort normalization, not full URL validation.
func normalizeURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}

	return url
}
