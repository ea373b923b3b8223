// Package analyzer runs the red-team analysis pipeline: fetch the target
// page, ask the model for vulnerability findings, then ask it again for a
// threat level assessment of those findings.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/CloudCorpRecords/RedTeamGemini/internal/genai"
)

// Generator produces model completions
type Generator interface {
	GenerateContent(ctx context.Context, model, prompt string, params map[string]any) (string, error)
}

// PageFetcher retrieves target page content
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Request describes a single analysis run
type Request struct {
	// URL is the normalized target URL
	URL string
	// Vulnerability is the vulnerability category to hunt for
	Vulnerability string
	// Model is the model for the findings pass; empty selects the default
	Model string
	// Parameters holds extra generation options forwarded to the API verbatim
	Parameters map[string]any
}

// Result holds the combined output of both model passes
type Result struct {
	// Findings is the free-text vulnerability analysis from the first pass
	Findings string
	// Analysis is the rationale from the threat assessment pass
	Analysis string
	// ThreatLevel is the label derived from the assessment text
	ThreatLevel string
}

// Analyzer orchestrates the per-request pipeline
type Analyzer struct {
	generator       Generator
	fetcher         PageFetcher
	findingsModel   string
	assessmentModel string
}

// Option configures the Analyzer
type Option func(*Analyzer)

// WithFindingsModel sets the default model for the findings pass
func WithFindingsModel(model string) Option {
	return func(a *Analyzer) {
		if model != "" {
			a.findingsModel = model
		}
	}
}

// WithAssessmentModel sets the fixed model for the threat assessment pass
func WithAssessmentModel(model string) Option {
	return func(a *Analyzer) {
		if model != "" {
			a.assessmentModel = model
		}
	}
}

// defaultModel is used for both passes unless overridden
const defaultModel = "gemini-1.5-flash"

// New creates a new Analyzer over the given generator and fetcher
func New(generator Generator, fetcher PageFetcher, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator:       generator,
		fetcher:         fetcher,
		findingsModel:   defaultModel,
		assessmentModel: defaultModel,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze runs the full pipeline for one request. The three outbound calls
// are strictly sequential: the findings pass needs the fetched page and the
// assessment pass needs the findings. A fetch or findings failure fails the
// whole run; the assessment pass degrades to sentinel values instead, since
// findings are the primary deliverable and the threat label is best-effort
// enrichment.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	content, err := a.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScrapeFailed, err)
	}

	log.Debug().Str("url", req.URL).Int("content_bytes", len(content)).Msg("scraped target page")

	model := req.Model
	if model == "" {
		model = a.findingsModel
	}

	prompt := buildRedTeamPrompt(req.Vulnerability, req.URL, content)

	findings, err := a.generator.GenerateContent(ctx, model, prompt, req.Parameters)
	if err != nil {
		return nil, fmt.Errorf("generating findings: %w", err)
	}

	level, analysis := a.assessThreat(ctx, findings)

	log.Debug().Str("url", req.URL).Str("threat_level", level).Msg("analysis complete")

	return &Result{
		Findings:    findings,
		Analysis:    analysis,
		ThreatLevel: level,
	}, nil
}

// assessThreat runs the second model pass over the findings and derives a
// threat label. It never fails the request: absent or empty output yields
// the unknown sentinel pair, and a call failure yields the Error label with
// the failure text as the rationale.
func (a *Analyzer) assessThreat(ctx context.Context, findings string) (level, analysis string) {
	if strings.TrimSpace(findings) == "" {
		return ThreatLevelUnknown, noAnalysisAvailable
	}

	text, err := a.generator.GenerateContent(ctx, a.assessmentModel, buildAssessmentPrompt(findings), nil)
	if err != nil {
		log.Error().Err(err).Msg("threat assessment failed")

		if errors.Is(err, genai.ErrNoCandidates) || errors.Is(err, genai.ErrEmptyContent) || errors.Is(err, genai.ErrContentBlocked) {
			return ThreatLevelUnknown, noAnalysisAvailable
		}

		return ThreatLevelError, err.Error()
	}

	return deriveThreatLevel(text), text
}
