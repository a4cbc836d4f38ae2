package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File holds optional TOML overrides for settings that rarely change per
// deployment. Flags and environment variables cover everything else.
type File struct {
	Groq struct {
		VisionModel string `toml:"vision_model"`
		TextModel   string `toml:"text_model"`
		MaxTokens   int    `toml:"max_tokens"`
	} `toml:"groq"`
	Limits struct {
		MaxUploadMB int64 `toml:"max_upload_mb"`
	} `toml:"limits"`
}

// LoadFile reads a TOML overrides file. An empty path returns zero overrides.
func LoadFile(path string) (*File, error) {
	var f File
	if path == "" {
		return &f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// MaxUploadSize returns the configured upload limit in bytes, or 0 when unset
func (f *File) MaxUploadSize() int64 {
	if f.Limits.MaxUploadMB > 0 {
		return f.Limits.MaxUploadMB << 20
	}
	return 0
}
