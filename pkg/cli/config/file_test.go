package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"techlens/pkg/cli/config"
)

func TestLoadFile(t *testing.T) {
	t.Run("empty path returns zero overrides", func(t *testing.T) {
		f, err := config.LoadFile("")
		gt.NoError(t, err)
		gt.Value(t, f.Groq.VisionModel).Equal("")
		gt.Number(t, int(f.MaxUploadSize())).Equal(0)
	})

	t.Run("parses TOML overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "techlens.toml")
		content := `
[groq]
vision_model = "custom-vision"
text_model = "custom-text"
max_tokens = 512

[limits]
max_upload_mb = 4
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600))

		f, err := config.LoadFile(path)
		gt.NoError(t, err)
		gt.Value(t, f.Groq.VisionModel).Equal("custom-vision")
		gt.Value(t, f.Groq.TextModel).Equal("custom-text")
		gt.Number(t, f.Groq.MaxTokens).Equal(512)
		gt.Number(t, int(f.MaxUploadSize())).Equal(4 << 20)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := config.LoadFile("/nonexistent/techlens.toml")
		gt.Error(t, err)
	})

	t.Run("malformed TOML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.toml")
		gt.NoError(t, os.WriteFile(path, []byte("[groq\nbroken"), 0600))

		_, err := config.LoadFile(path)
		gt.Error(t, err)
	})
}
