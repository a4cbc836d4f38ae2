package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"techlens/pkg/cli"
)

func main() {
	// Local development convenience; a missing .env is not an error
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
