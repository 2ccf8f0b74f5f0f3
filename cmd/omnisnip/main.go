// Package main provides the omnisnip CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omnisnip/omnisnip/internal/config"
	"github.com/omnisnip/omnisnip/internal/index"
	"github.com/omnisnip/omnisnip/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// storageDir is the --dir flag value; empty means resolve from
// environment, global config, or the default ~/.omnisnip.
var storageDir string

func main() {
	// Pick up OMNISNIP_DIR from a .env file if present
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "omnisnip",
	Short: "Personal code-snippet manager",
	Long: `omnisnip is a personal code-snippet manager CLI.

Core features:
  - Add, view, update, and delete code snippets
  - Filter by language, category, tags, and favorites
  - Substring search across title, description, and code
  - Optional SQLite full-text index for fast search
  - Copy snippet code straight to the clipboard

Snippets are stored as a single JSON file (default ~/.omnisnip/snippets.json)
that is safe to back up, version, or sync with any file-based tool.
All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&storageDir, "dir", "", "Storage directory (default: OMNISNIP_DIR, config snippets_dir, or ~/.omnisnip)")
	rootCmd.Version = Version
}

// openStore resolves the storage directory and returns a store handle.
func openStore() *storage.Store {
	return storage.New(config.ResolveDir(storageDir))
}

// mustOpenIndex opens the SQLite search index for the given store,
// creating the cache directory if needed. Exits on error.
func mustOpenIndex(store *storage.Store) *index.DB {
	cacheDir := config.CachePath(store.Dir())
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		exitWithError(ExitConfigError, "creating cache directory: %v", err)
	}

	db, err := index.Open(config.IndexDBPath(store.Dir()))
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return db
}
