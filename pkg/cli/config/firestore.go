package config

import "github.com/urfave/cli/v3"

// Firestore holds analysis persistence configuration. When no project ID is
// set the service falls back to the in-memory store.
type Firestore struct {
	ProjectID  string
	Collection string
}

// Enabled reports whether Firestore persistence is configured
func (c *Firestore) Enabled() bool {
	return c.ProjectID != ""
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project for analysis persistence (in-memory store when empty)",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("TECHLENS_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection for analyses",
			Value:       "analyses",
			Destination: &c.Collection,
			Sources:     cli.EnvVars("TECHLENS_FIRESTORE_COLLECTION"),
		},
	}
}
