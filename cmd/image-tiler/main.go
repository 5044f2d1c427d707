package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"imagetiler/internal/cli"
	"imagetiler/internal/core/domain"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, environment variables might be set manually
		log.Println("No .env file found")
	}

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if domain.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
