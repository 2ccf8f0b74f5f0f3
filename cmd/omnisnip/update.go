package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omnisnip/omnisnip/internal/snippet"
)

func init() {
	updateCmd.Flags().StringP("title", "t", "", "New title")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("language", "l", "", "New language")
	updateCmd.Flags().StringP("category", "c", "", "New category")
	updateCmd.Flags().String("tags", "", "New comma-separated tags (replaces existing)")
	updateCmd.Flags().Bool("favorite", false, "Set favorite flag")
	updateCmd.Flags().StringP("file", "f", "", "Replace code with file contents")
	updateCmd.Flags().String("code", "", "Replace code with the given text")
	rootCmd.AddCommand(updateCmd)
}

// UpdateResult is the response for the update command.
type UpdateResult struct {
	Status  string          `json:"status"`
	Snippet snippet.Snippet `json:"snippet"`
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a snippet",
	Long: `Update an existing snippet. Only fields whose flags are supplied
change; everything else keeps its prior value. The creation timestamp
never changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	var in snippet.UpdateInput
	changed := false

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		in.Title = &v
		changed = true
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		in.Description = &v
		changed = true
	}
	if cmd.Flags().Changed("language") {
		v, _ := cmd.Flags().GetString("language")
		lang := snippet.Language(v)
		in.Language = &lang
		changed = true
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		cat := snippet.Category(v)
		in.Category = &cat
		changed = true
	}
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetString("tags")
		tags := parseTagList(v)
		if tags == nil {
			tags = []string{}
		}
		in.Tags = &tags
		changed = true
	}
	if cmd.Flags().Changed("favorite") {
		v, _ := cmd.Flags().GetBool("favorite")
		in.Favorite = &v
		changed = true
	}
	if cmd.Flags().Changed("file") {
		path, _ := cmd.Flags().GetString("file")
		data, err := os.ReadFile(path)
		if err != nil {
			exitWithError(ExitError, "reading code file: %v", err)
		}
		code := string(data)
		in.Code = &code
		changed = true
	} else if cmd.Flags().Changed("code") {
		v, _ := cmd.Flags().GetString("code")
		in.Code = &v
		changed = true
	}

	if !changed {
		exitWithError(ExitDataError, "no update flags provided (use --title, --description, --language, --category, --tags, --favorite, --code, or --file)")
	}

	if err := in.Validate(); err != nil {
		exitWithError(ExitDataError, "invalid update: %v", err)
	}

	store := openStore()
	updated, err := store.Update(args[0], in)
	if err != nil {
		exitStorageError("updating snippet", err)
	}
	if updated == nil {
		exitWithError(ExitNotFound, "snippet %q not found", args[0])
	}

	if humanOutput {
		fmt.Printf("Updated snippet: %s\n", updated.ID)
		fmt.Printf("  Title: %s\n", updated.Title)
		fmt.Printf("  Updated: %s\n", formatTime(updated.UpdatedAt))
	} else {
		outputJSON(UpdateResult{
			Status:  "updated",
			Snippet: *updated,
		})
	}

	return nil
}
