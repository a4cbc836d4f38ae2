package config

import "github.com/urfave/cli/v3"

// Storage holds upload archiving configuration. Archiving is disabled when no
// bucket is set.
type Storage struct {
	Bucket string
}

// Enabled reports whether upload archiving is configured
func (c *Storage) Enabled() bool {
	return c.Bucket != ""
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for raw upload archiving (disabled when empty)",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("TECHLENS_STORAGE_BUCKET"),
		},
	}
}
