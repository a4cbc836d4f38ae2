package config

import "github.com/urfave/cli/v3"

// Groq holds configuration for the model API
type Groq struct {
	APIKey      string `masq:"secret"`
	BaseURL     string
	VisionModel string
	TextModel   string
}

// Flags returns CLI flags for model API configuration
func (c *Groq) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "groq-api-key",
			Usage:       "Groq API key",
			Required:    true,
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("GROQ_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "groq-api-base",
			Usage:       "Groq API base URL",
			Value:       "https://api.groq.com/openai/v1",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("GROQ_API_BASE"),
		},
		&cli.StringFlag{
			Name:        "groq-vision-model",
			Usage:       "Model used for image and combined analyses",
			Destination: &c.VisionModel,
			Sources:     cli.EnvVars("TECHLENS_VISION_MODEL"),
		},
		&cli.StringFlag{
			Name:        "groq-text-model",
			Usage:       "Model used for code analyses",
			Destination: &c.TextModel,
			Sources:     cli.EnvVars("TECHLENS_TEXT_MODEL"),
		},
	}
}
