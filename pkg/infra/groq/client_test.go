package groq_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/model"
	"techlens/pkg/infra/groq"
)

func TestNew(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := groq.New("", "")
		gt.Error(t, err)
	})

	t.Run("accepts key with default base URL", func(t *testing.T) {
		c, err := groq.New("gsk-test", "")
		gt.NoError(t, err)
		gt.NotNil(t, c)
	})
}

// completionStub serves a fixed OpenAI-compatible chat completion response and
// records the request body
func completionStub(t *testing.T, content string) (*httptest.Server, *[]byte) {
	t.Helper()

	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read request body: %v", err)
		}
		captured = body

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func TestComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("text-only request", func(t *testing.T) {
		stub, captured := completionStub(t, "the analysis text")
		c, err := groq.New("gsk-test", stub.URL)
		gt.NoError(t, err)

		text, err := c.Complete(ctx, &interfaces.CompletionRequest{
			System:    "you are a code reviewer",
			Prompt:    "review this snippet",
			Model:     "llama3-70b-8192",
			MaxTokens: 128,
		})
		gt.NoError(t, err)
		gt.Value(t, text).Equal("the analysis text")

		body := string(*captured)
		gt.String(t, body).Contains("you are a code reviewer")
		gt.String(t, body).Contains("review this snippet")
		gt.String(t, body).Contains("llama3-70b-8192")
	})

	t.Run("image request attaches a data URL part", func(t *testing.T) {
		stub, captured := completionStub(t, "image description")
		c, err := groq.New("gsk-test", stub.URL)
		gt.NoError(t, err)

		text, err := c.Complete(ctx, &interfaces.CompletionRequest{
			Prompt: "describe this image",
			Images: []*model.ImageAttachment{
				{MIME: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}},
			},
			Model:     "llama3-70b-8192-vision",
			MaxTokens: 128,
		})
		gt.NoError(t, err)
		gt.Value(t, text).Equal("image description")

		gt.String(t, string(*captured)).Contains("data:image/jpeg;base64,")
	})

	t.Run("upstream error is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"model not found"}}`, http.StatusBadRequest)
		}))
		t.Cleanup(server.Close)

		c, err := groq.New("gsk-test", server.URL)
		gt.NoError(t, err)

		_, err = c.Complete(ctx, &interfaces.CompletionRequest{
			Prompt: "anything",
			Model:  "llama3-70b-8192",
		})
		gt.Error(t, err)
	})
}
