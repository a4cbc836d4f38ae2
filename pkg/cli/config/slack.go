package config

import "github.com/urfave/cli/v3"

// Slack holds failure notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Enabled reports whether Slack notification is configured
func (c *Slack) Enabled() bool {
	return c.WebhookURL != ""
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook for analysis failure notification (disabled when empty)",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("TECHLENS_SLACK_WEBHOOK_URL"),
		},
	}
}
