package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCodeOnly bool

func init() {
	getCmd.Flags().BoolVar(&getCodeOnly, "code", false, "Print only the snippet code")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a snippet by ID",
	Long:  `Retrieve a snippet by its identifier.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	store := openStore()

	s, err := store.GetByID(args[0])
	if err != nil {
		exitStorageError("reading snippet", err)
	}
	if s == nil {
		exitWithError(ExitNotFound, "snippet %q not found", args[0])
	}

	if getCodeOnly {
		fmt.Print(s.Code)
		if len(s.Code) > 0 && s.Code[len(s.Code)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}

	if humanOutput {
		printSnippetDetail(s)
	} else {
		outputJSON(s)
	}

	return nil
}
