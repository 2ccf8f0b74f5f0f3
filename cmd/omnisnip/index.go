package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexSearchLimit int

func init() {
	indexSearchCmd.Flags().IntVar(&indexSearchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexSearchCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite search index",
	Long: `Manage the full-text search index.

The JSON snippets file is always the source of truth; the index is an
ephemeral SQLite cache rebuilt from it on demand. A stale or deleted
index never loses data.`,
}

// IndexRebuildResult is the response for index rebuild.
type IndexRebuildResult struct {
	Status  string `json:"status"`
	Indexed int    `json:"indexed"`
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from the snippets file",
	RunE:  runIndexRebuild,
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	store := openStore()

	snippets, err := store.GetAll()
	if err != nil {
		exitStorageError("reading snippets", err)
	}

	db := mustOpenIndex(store)
	defer db.Close()

	count, err := db.Rebuild(snippets)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d snippets\n", count)
	} else {
		outputJSON(IndexRebuildResult{Status: "rebuilt", Indexed: count})
	}

	return nil
}

// IndexStatusResult is the response for index status.
type IndexStatusResult struct {
	Indexed   int       `json:"indexed"`
	Snippets  int       `json:"snippets"`
	InSync    bool      `json:"in_sync"`
	RebuiltAt time.Time `json:"rebuilt_at,omitempty"`
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index freshness",
	RunE:  runIndexStatus,
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	store := openStore()

	total, err := store.Count()
	if err != nil {
		exitStorageError("reading snippets", err)
	}

	db := mustOpenIndex(store)
	defer db.Close()

	indexed, err := db.Count()
	if err != nil {
		exitWithError(ExitDataError, "reading index: %v", err)
	}
	rebuiltAt, err := db.RebuiltAt()
	if err != nil {
		exitWithError(ExitDataError, "reading index: %v", err)
	}

	// Count parity is a cheap staleness signal; content drift still
	// requires a rebuild to detect.
	inSync := indexed == total

	if humanOutput {
		fmt.Printf("Snippets: %d\n", total)
		fmt.Printf("Indexed:  %d\n", indexed)
		if !rebuiltAt.IsZero() {
			fmt.Printf("Rebuilt:  %s\n", formatTime(rebuiltAt))
		}
		if !inSync {
			fmt.Println("Index is out of date; run 'omnisnip index rebuild'")
		}
	} else {
		outputJSON(IndexStatusResult{
			Indexed:   indexed,
			Snippets:  total,
			InSync:    inSync,
			RebuiltAt: rebuiltAt,
		})
	}

	return nil
}

var indexSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search using the index",
	Long: `Search snippets with SQLite FTS5 term matching. Faster than the
linear 'omnisnip search' on large collections, but only as fresh as the
last rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	store := openStore()

	db := mustOpenIndex(store)
	defer db.Close()

	snippets, err := db.Search(args[0], indexSearchLimit)
	if err != nil {
		exitWithError(ExitDataError, "searching index: %v", err)
	}

	printSnippetList(snippets, "No snippets found")
	return nil
}
