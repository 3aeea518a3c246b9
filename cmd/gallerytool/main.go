// Command gallerytool is the operator CLI: it initializes the storage backend,
// exports and restores backups and prints dashboard statistics.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
