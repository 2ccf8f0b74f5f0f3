package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omnisnip/omnisnip/internal/snippet"
)

var (
	addTitle       string
	addDescription string
	addLanguage    string
	addCategory    string
	addTags        string
	addFavorite    bool
	addFile        string
)

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Snippet title (required)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Snippet description (required)")
	addCmd.Flags().StringVarP(&addLanguage, "language", "l", "", "Language tag (required)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", string(snippet.CategorySnippet), "Category tag")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags")
	addCmd.Flags().BoolVar(&addFavorite, "favorite", false, "Mark as favorite")
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "Read code from file instead of argument")
	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("description")
	addCmd.MarkFlagRequired("language")
	rootCmd.AddCommand(addCmd)
}

// AddResult is the response for the add command.
type AddResult struct {
	Status  string          `json:"status"`
	Snippet snippet.Snippet `json:"snippet"`
}

var addCmd = &cobra.Command{
	Use:   "add [code]",
	Short: "Add a new snippet",
	Long: `Add a new code snippet to the collection.

The code comes from the positional argument, from --file, or from stdin
when the argument is "-".

Examples:
  omnisnip add -t "Map keys" -d "Collect map keys into a slice" -l go 'keys := maps.Keys(m)'
  omnisnip add -t "Retry loop" -d "Exponential backoff" -l python --file retry.py --tags retry,http
  cat snip.sh | omnisnip add -t "Disk usage" -d "Largest dirs" -l shell -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	code, err := readCode(args)
	if err != nil {
		exitWithError(ExitError, "reading code: %v", err)
	}

	in := snippet.CreateInput{
		Title:       addTitle,
		Description: addDescription,
		Code:        code,
		Language:    snippet.Language(addLanguage),
		Category:    snippet.Category(addCategory),
		Tags:        parseTagList(addTags),
		Favorite:    addFavorite,
	}

	if err := in.Validate(); err != nil {
		exitWithError(ExitDataError, "invalid snippet: %v", err)
	}

	store := openStore()
	created, err := store.Add(in)
	if err != nil {
		exitStorageError("adding snippet", err)
	}

	if humanOutput {
		fmt.Printf("Created snippet: %s\n", created.ID)
		fmt.Printf("  Title: %s\n", created.Title)
		fmt.Printf("  Language: %s\n", created.Language)
	} else {
		outputJSON(AddResult{
			Status:  "created",
			Snippet: *created,
		})
	}

	return nil
}

// readCode resolves the snippet code from --file, stdin ("-"), or the
// positional argument, in that order of precedence.
func readCode(args []string) (string, error) {
	if addFile != "" {
		data, err := os.ReadFile(addFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if len(args) == 1 {
		return args[0], nil
	}

	return "", fmt.Errorf("no code supplied (pass an argument, --file, or \"-\" for stdin)")
}
