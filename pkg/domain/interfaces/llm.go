package interfaces

import (
	"context"

	"techlens/pkg/domain/model"
)

// CompletionRequest is a single chat completion request against the model API.
// Images are sent as inline data URL content parts alongside the prompt.
type CompletionRequest struct {
	System    string
	Prompt    string
	Images    []*model.ImageAttachment
	Model     string
	MaxTokens int
}

// LLMClient abstracts the external multimodal model API
type LLMClient interface {
	// Complete sends one completion request and returns the raw response text
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}
