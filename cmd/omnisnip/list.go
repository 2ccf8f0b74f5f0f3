package main

import (
	"github.com/spf13/cobra"

	"github.com/omnisnip/omnisnip/internal/snippet"
)

var (
	listQuery     string
	listLanguage  string
	listCategory  string
	listTags      []string
	listFavorite  bool
	listSortBy    string
	listSortOrder string
)

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Substring match against title, description, or code")
	listCmd.Flags().StringVarP(&listLanguage, "language", "l", "", "Filter by language")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringArrayVar(&listTags, "tag", nil, "Filter by tag (repeatable, OR logic)")
	listCmd.Flags().BoolVar(&listFavorite, "favorite", false, "Only favorites")
	listCmd.Flags().StringVar(&listSortBy, "sort", "", "Sort field: createdAt, updatedAt, title, language, category, favorite")
	listCmd.Flags().StringVar(&listSortOrder, "order", "asc", "Sort order: asc or desc")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List snippets with optional filters",
	Long: `List snippets, optionally filtered and sorted.

All supplied filters combine with AND logic. Tag filters use OR logic
among themselves: a snippet matches if it carries at least one of the
given tags. Without --sort, insertion order is preserved.

Examples:
  omnisnip list
  omnisnip list -l go --tag http --tag net
  omnisnip list --favorite --sort updatedAt --order desc`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	f := snippet.Filter{
		Query:    listQuery,
		Language: snippet.Language(listLanguage),
		Category: snippet.Category(listCategory),
		Tags:     listTags,
	}

	if cmd.Flags().Changed("favorite") {
		f.Favorite = &listFavorite
	}

	if listSortBy != "" {
		field := snippet.SortField(listSortBy)
		if !field.IsValid() {
			exitWithError(ExitError, "invalid sort field %q", listSortBy)
		}
		f.SortBy = field
	}
	switch listSortOrder {
	case "", string(snippet.SortAsc):
		f.SortOrder = snippet.SortAsc
	case string(snippet.SortDesc):
		f.SortOrder = snippet.SortDesc
	default:
		exitWithError(ExitError, "invalid sort order %q (use asc or desc)", listSortOrder)
	}

	store := openStore()
	snippets, err := store.Filter(f)
	if err != nil {
		exitStorageError("listing snippets", err)
	}

	printSnippetList(snippets, "No snippets found")
	return nil
}
