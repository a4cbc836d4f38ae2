package config

import "github.com/urfave/cli/v3"

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Enabled reports whether Sentry reporting is configured
func (c *Sentry) Enabled() bool {
	return c.DSN != ""
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error reporting disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("TECHLENS_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment tag",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("TECHLENS_SENTRY_ENV"),
		},
	}
}
