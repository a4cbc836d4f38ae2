package types

// Version is the application version, overridden at build time via ldflags
var Version = "0.1.0"

// AnalysisID identifies a single analysis request and its stored result
type AnalysisID string

// String returns the raw ID string
func (id AnalysisID) String() string {
	return string(id)
}

// AnalysisType distinguishes the three analysis endpoints
type AnalysisType string

const (
	AnalysisTypeImage    AnalysisType = "image"
	AnalysisTypeCode     AnalysisType = "code"
	AnalysisTypeCombined AnalysisType = "combined"
)
