package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omnisnip/omnisnip/internal/clipboard"
)

func init() {
	rootCmd.AddCommand(copyCmd)
}

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy snippet code to the clipboard",
	Long:  `Copy the code of the given snippet to the system clipboard.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	store := openStore()

	s, err := store.GetByID(args[0])
	if err != nil {
		exitStorageError("reading snippet", err)
	}
	if s == nil {
		exitWithError(ExitNotFound, "snippet %q not found", args[0])
	}

	if !clipboard.IsAvailable() {
		exitWithError(ExitError, "no clipboard command available (install xclip, xsel, or wl-copy)")
	}
	if err := clipboard.Copy(s.Code); err != nil {
		exitWithError(ExitError, "copying to clipboard: %v", err)
	}

	if humanOutput {
		fmt.Printf("Copied %q to clipboard\n", s.Title)
	} else {
		outputJSON(StatusResponse{Status: "copied", ID: s.ID})
	}

	return nil
}
