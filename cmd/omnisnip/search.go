package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search snippets by substring",
	Long: `Search snippets with a case-insensitive substring match against
title, description, and code. Equivalent to 'list --query'.

For full-text search over an indexed collection, see 'omnisnip index
search'.

Examples:
  omnisnip search "http client"
  omnisnip search backoff --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store := openStore()

	snippets, err := store.Search(args[0])
	if err != nil {
		exitStorageError("searching snippets", err)
	}

	printSnippetList(snippets, "No snippets found")
	return nil
}
