// Package groq implements the LLM client against Groq's OpenAI-compatible
// chat completions API.
package groq

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"techlens/pkg/domain/interfaces"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint
const DefaultBaseURL = "https://api.groq.com/openai/v1"

type client struct {
	oai openai.Client
}

// New creates a Groq-backed LLM client
func New(apiKey, baseURL string) (interfaces.LLMClient, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &client{
		oai: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
	}, nil
}

// Complete sends one chat completion request. Images are attached as data URL
// content parts of the user message.
func (c *client) Complete(ctx context.Context, req *interfaces.CompletionRequest) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}

	if len(req.Images) > 0 {
		parts := []openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.Prompt),
		}
		for _, img := range req.Images {
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: img.DataURL(),
			}))
		}
		messages = append(messages, openai.UserMessage(parts))
	} else {
		messages = append(messages, openai.UserMessage(req.Prompt))
	}

	resp, err := c.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(req.Model),
		Messages:  messages,
		MaxTokens: openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		return "", goerr.Wrap(err, "chat completion request failed", goerr.V("model", req.Model))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.New("no choices in model response", goerr.V("model", req.Model))
	}

	return resp.Choices[0].Message.Content, nil
}
