package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrAnalysisNotFound is returned when no stored analysis matches the requested ID
	ErrAnalysisNotFound = goerr.New("analysis not found")

	// ErrInvalidUpload is returned when a required upload field is missing or unreadable
	ErrInvalidUpload = goerr.New("invalid upload")
)
