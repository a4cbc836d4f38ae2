// Package textscan extracts structured fields from freeform model output by
// line and keyword scanning. The model is not asked for JSON; whatever prose
// it returns is reshaped here on a best-effort basis.
package textscan

import (
	"strconv"
	"strings"
)

const (
	maxElements     = 10
	maxIssues       = 5
	maxSuggestions  = 5
	maxCorrelations = 3
	maxRootCauses   = 3
)

// Fallback entries used when a scan finds nothing, mirrored in the rendered
// output
const (
	NoElementsFound     = "No specific elements identified"
	NoIssuesFound       = "No specific issues identified"
	NoSuggestionsFound  = "No specific suggestions identified"
	NoCorrelationsFound = "No specific correlations identified"
	NoRootCauseFound    = "Root cause not specifically identified"
	NoSummaryFound      = "No summary available"
)

// Issue is a single issue pulled out of a code analysis response
type Issue struct {
	Description string
	Details     string
	Solution    string
}

var issueKeywords = []string{"error", "issue", "problem", "bug", "warning", "fail"}

var suggestionKeywords = []string{"suggest", "recommend", "improv", "should", "could", "better"}

var rootCauseKeywords = []string{"root cause", "caused by", "due to", "because", "reason for"}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Elements extracts key elements (components, UI elements, list entries)
// mentioned in the analysis text
func Elements(text string) []string {
	var elements []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.Contains(trimmed, ":") && !strings.HasSuffix(trimmed, ":"),
			strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "*"),
			strings.HasPrefix(trimmed, strconv.Itoa(len(elements)+1)+"."),
			containsAny(trimmed, []string{"component", "element"}):
			elements = append(elements, trimmed)
		}
		if len(elements) >= maxElements {
			break
		}
	}
	if len(elements) == 0 {
		return []string{NoElementsFound}
	}
	return elements
}

// Issues extracts lines that mention errors, problems or failures
func Issues(text string) []string {
	var issues []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && containsAny(trimmed, issueKeywords) {
			issues = append(issues, trimmed)
		}
		if len(issues) >= maxIssues {
			break
		}
	}
	if len(issues) == 0 {
		return []string{NoIssuesFound}
	}
	return issues
}

// CodeIssues extracts issues with more structure: paragraph-level blocks that
// mention an issue become a description/details pair, and a nearby line
// mentioning a solution is attached when present
func CodeIssues(text string) []Issue {
	var issues []Issue

	for _, section := range strings.Split(text, "\n\n") {
		if !containsAny(section, []string{"issue", "bug", "error", "problem"}) {
			continue
		}
		lines := strings.Split(strings.TrimSpace(section), "\n")
		if len(lines) < 2 {
			continue
		}
		issue := Issue{
			Description: strings.TrimSpace(lines[0]),
			Details:     strings.TrimSpace(strings.Join(lines[1:], "\n")),
		}
		for _, line := range lines[1:] {
			if containsAny(line, []string{"solution"}) {
				issue.Solution = strings.TrimSpace(line)
				break
			}
		}
		issues = append(issues, issue)
		if len(issues) >= maxIssues {
			break
		}
	}

	// Fall back to single-line extraction when no block matched
	if len(issues) == 0 {
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && containsAny(trimmed, []string{"issue", "bug", "error", "problem"}) {
				issues = append(issues, Issue{Description: trimmed})
			}
			if len(issues) >= maxIssues {
				break
			}
		}
	}

	if len(issues) == 0 {
		return []Issue{{Description: NoIssuesFound}}
	}
	return issues
}

// Suggestions extracts lines that read like recommendations
func Suggestions(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && containsAny(trimmed, suggestionKeywords) {
			suggestions = append(suggestions, trimmed)
		}
		if len(suggestions) >= maxSuggestions {
			break
		}
	}
	if len(suggestions) == 0 {
		return []string{NoSuggestionsFound}
	}
	return suggestions
}

// Summary returns the paragraph that labels itself a summary, or the first
// substantial paragraph
func Summary(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	for _, para := range paragraphs {
		trimmed := strings.TrimSpace(para)
		if len(trimmed) > 50 && strings.Contains(strings.ToLower(trimmed), "summary") {
			return trimmed
		}
	}
	if len(paragraphs) > 0 {
		if first := strings.TrimSpace(paragraphs[0]); len(first) > 30 {
			return first
		}
	}
	return NoSummaryFound
}

// Correlations extracts sentences connecting visual observations to code
func Correlations(text string) []string {
	var correlations []string
	flat := strings.ReplaceAll(text, "\n", " ")
	for _, sentence := range strings.Split(flat, ". ") {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		visual := containsAny(trimmed, []string{"image", "screen", "visual"})
		code := containsAny(trimmed, []string{"code", "function", "variable"})
		if visual && code {
			correlations = append(correlations, strings.TrimSuffix(trimmed, ".")+".")
		}
		if len(correlations) >= maxCorrelations {
			break
		}
	}
	if len(correlations) == 0 {
		return []string{NoCorrelationsFound}
	}
	return correlations
}

// RootCauses extracts lines using root-cause language
func RootCauses(text string) []string {
	var causes []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && containsAny(trimmed, rootCauseKeywords) {
			causes = append(causes, trimmed)
		}
		if len(causes) >= maxRootCauses {
			break
		}
	}
	if len(causes) == 0 {
		return []string{NoRootCauseFound}
	}
	return causes
}
