package analyzer

import "strings"

// Threat level labels attached to an assessment
const (
	// ThreatLevelHigh indicates the assessment text mentions high risk
	ThreatLevelHigh = "High"
	// ThreatLevelMedium is the fallback label when no risk phrase matches
	ThreatLevelMedium = "Medium"
	// ThreatLevelLow indicates the assessment text mentions low risk
	ThreatLevelLow = "Low"
	// ThreatLevelUnknown is the sentinel label when assessment degrades
	ThreatLevelUnknown = "Unable to determine threat level"
	// ThreatLevelError is the label when the assessment call itself fails
	ThreatLevelError = "Error"
)

// noAnalysisAvailable is the sentinel rationale paired with ThreatLevelUnknown
const noAnalysisAvailable = "No detailed analysis available"

// deriveThreatLevel labels assessment text by case-insensitive substring
// search. Medium is the fallback for any non-matching text, not positive
// evidence of medium risk; the heuristic is fragile against model phrasing
// variance and is kept for contract compatibility.
func deriveThreatLevel(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "high risk"):
		return ThreatLevelHigh
	case strings.Contains(lower, "low risk"):
		return ThreatLevelLow
	default:
		return ThreatLevelMedium
	}
}
