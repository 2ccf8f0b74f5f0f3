package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/omnisnip/omnisnip/internal/snippet"
	"github.com/omnisnip/omnisnip/internal/storage"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for index search results

	ListTitleMaxLen   = 50 // Used in list command output
	SearchTitleMaxLen = 70 // Used in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitStorageError maps a store failure to an exit code by error kind,
// so failures stay distinguishable at the shell.
func exitStorageError(op string, err error) {
	switch {
	case errors.Is(err, storage.ErrDirectory):
		exitWithError(ExitConfigError, "%s: %v", op, err)
	case errors.Is(err, storage.ErrRead), errors.Is(err, storage.ErrWrite):
		exitWithError(ExitDataError, "%s: %v", op, err)
	default:
		exitWithError(ExitError, "%s: %v", op, err)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Path   string `json:"path,omitempty"`
}

// SnippetListResult is the response for list and search commands.
type SnippetListResult struct {
	Snippets []snippet.Snippet `json:"snippets"`
	Count    int               `json:"count"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatTime formats a timestamp for human output.
func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// printSnippetSummary prints a one-entry summary for list/search output.
func printSnippetSummary(num int, s snippet.Snippet) {
	marker := " "
	if s.Favorite {
		marker = "*"
	}
	fmt.Printf("[%d]%s %s\n", num, marker, s.ID)
	fmt.Printf("    %s\n", truncateString(s.Title, ListTitleMaxLen))
	fmt.Printf("    %s/%s", s.Language, s.Category)
	if len(s.Tags) > 0 {
		fmt.Printf("  [%s]", strings.Join(s.Tags, ", "))
	}
	fmt.Printf("  %s\n\n", formatTime(s.UpdatedAt))
}

// printSnippetDetail prints a full snippet for get output.
func printSnippetDetail(s *snippet.Snippet) {
	fmt.Println(s.ID)
	fmt.Printf("  Title:       %s\n", s.Title)
	fmt.Printf("  Description: %s\n", s.Description)
	fmt.Printf("  Language:    %s\n", s.Language)
	fmt.Printf("  Category:    %s\n", s.Category)
	if len(s.Tags) > 0 {
		fmt.Printf("  Tags:        %s\n", strings.Join(s.Tags, ", "))
	}
	fmt.Printf("  Favorite:    %v\n", s.Favorite)
	fmt.Printf("  Created:     %s\n", formatTime(s.CreatedAt))
	fmt.Printf("  Updated:     %s\n", formatTime(s.UpdatedAt))
	fmt.Println()
	fmt.Println(s.Code)
}

// printSnippetList prints snippets in the requested format.
func printSnippetList(snippets []snippet.Snippet, emptyMessage string) {
	if humanOutput {
		if len(snippets) == 0 {
			fmt.Println(emptyMessage)
			return
		}
		for i, s := range snippets {
			printSnippetSummary(i+1, s)
		}
		fmt.Printf("Total: %d snippets\n", len(snippets))
	} else {
		if snippets == nil {
			snippets = []snippet.Snippet{}
		}
		outputJSON(SnippetListResult{
			Snippets: snippets,
			Count:    len(snippets),
		})
	}
}

// parseTagList splits a comma-separated tag string, trimming whitespace.
func parseTagList(raw string) []string {
	if raw == "" {
		return nil
	}
	tags := strings.Split(raw, ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	return tags
}
