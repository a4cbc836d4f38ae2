package model

import (
	"fmt"
	"time"

	"techlens/pkg/domain/types"
)

// Analysis is the envelope returned by every analyze endpoint and persisted
// by the repository. Result holds one of ImageResult, CodeResult or
// CombinedResult; readers treat its fields as optional.
type Analysis struct {
	ID              types.AnalysisID   `json:"analysis_id" firestore:"analysis_id"`
	Type            types.AnalysisType `json:"type" firestore:"type"`
	Result          any                `json:"result" firestore:"result"`
	Recommendations []string           `json:"recommendations" firestore:"recommendations"`
	CreatedAt       time.Time          `json:"timestamp" firestore:"created_at"`
}

// AnalysisResult is implemented by the per-endpoint result shapes. The
// returned recommendations cover only the structured fields; the use case
// layer adds text-scan fallbacks when this comes back empty.
type AnalysisResult interface {
	Recommendations() []string
}

// CodeIssue is a single issue found in uploaded code, either by the static
// scan or extracted from the model response
type CodeIssue struct {
	Description string `json:"description" firestore:"description"`
	Details     string `json:"details,omitempty" firestore:"details,omitempty"`
	Solution    string `json:"solution,omitempty" firestore:"solution,omitempty"`
}

// ImageResult is the result shape of POST /api/analyze/image
type ImageResult struct {
	Description      string   `json:"description" firestore:"description"`
	DetectedElements []string `json:"detected_elements" firestore:"detected_elements"`
	PotentialIssues  []string `json:"potential_issues" firestore:"potential_issues"`
}

// Recommendations derives one recommendation per potential issue
func (r *ImageResult) Recommendations() []string {
	var recs []string
	for _, issue := range r.PotentialIssues {
		recs = append(recs, fmt.Sprintf("Address the issue: %s", issue))
	}
	return recs
}

// CodeResult is the result shape of POST /api/analyze/code
type CodeResult struct {
	Language     string      `json:"language" firestore:"language"`
	Summary      string      `json:"summary" firestore:"summary"`
	Issues       []CodeIssue `json:"issues" firestore:"issues"`
	Suggestions  []string    `json:"suggestions" firestore:"suggestions"`
	FullAnalysis string      `json:"full_analysis" firestore:"full_analysis"`
}

// Recommendations derives recommendations from issue solutions and explicit
// suggestions, in that order
func (r *CodeResult) Recommendations() []string {
	var recs []string
	for _, issue := range r.Issues {
		if issue.Solution != "" {
			recs = append(recs, issue.Solution)
		} else if issue.Description != "" {
			recs = append(recs, fmt.Sprintf("Fix the issue: %s", issue.Description))
		}
	}
	recs = append(recs, r.Suggestions...)
	return recs
}

// CombinedResult is the result shape of POST /api/analyze/combined
type CombinedResult struct {
	CombinedAnalysis string      `json:"combined_analysis" firestore:"combined_analysis"`
	ImageElements    []string    `json:"image_elements" firestore:"image_elements"`
	CodeIssues       []CodeIssue `json:"code_issues" firestore:"code_issues"`
	Correlations     []string    `json:"correlations" firestore:"correlations"`
	RootCauses       []string    `json:"root_causes" firestore:"root_causes"`
}

// Recommendations derives recommendations from root causes and code issue
// solutions
func (r *CombinedResult) Recommendations() []string {
	var recs []string
	for _, issue := range r.CodeIssues {
		if issue.Solution != "" {
			recs = append(recs, issue.Solution)
		} else if issue.Description != "" {
			recs = append(recs, fmt.Sprintf("Fix the issue: %s", issue.Description))
		}
	}
	for _, cause := range r.RootCauses {
		recs = append(recs, fmt.Sprintf("Resolve root cause: %s", cause))
	}
	return recs
}
