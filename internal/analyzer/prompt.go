package analyzer

import "strings"

// maxPromptContent is the hard cutoff, in bytes, applied to scraped page
// content before it is embedded in a prompt. This bounds outbound payload
// size; no sentence-aware summarization is attempted.
const maxPromptContent = 5000

// assessmentPromptPrefix is the fixed instruction for the threat assessment pass
const assessmentPromptPrefix = "Analyze the following content for vulnerabilities and provide a threat level assessment. " +
	"Explain the findings and give your thoughts on the potential risks:\n\n"

// buildRedTeamPrompt composes the findings instruction from the vulnerability
// category, the normalized target URL, and the truncated page content
func buildRedTeamPrompt(vulnerability, targetURL, content string) string {
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}

	var b strings.Builder
	b.WriteString("You are an expert red-team specialist. ")
	b.WriteString("Attempt to find the following vulnerability: ")
	b.WriteString(vulnerability)
	b.WriteString(". Target URL: ")
	b.WriteString(targetURL)
	b.WriteString(". Analyze the following website content for vulnerabilities:\n")
	b.WriteString(content)

	return b.String()
}

// buildAssessmentPrompt composes the threat assessment instruction from the
// findings produced by the first pass
func buildAssessmentPrompt(findings string) string {
	return assessmentPromptPrefix + findings
}
