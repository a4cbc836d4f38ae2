package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr       string
	AuthSecret string `masq:"secret"`
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("TECHLENS_ADDR"),
		},
		&cli.StringFlag{
			Name:        "auth-secret",
			Usage:       "HS256 secret for API bearer tokens (auth disabled when empty)",
			Destination: &c.AuthSecret,
			Sources:     cli.EnvVars("TECHLENS_AUTH_SECRET"),
		},
	}
}
