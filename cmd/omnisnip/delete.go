package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteAll   bool
	deleteForce bool
)

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every snippet in the collection")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Required to confirm --all")
	rootCmd.AddCommand(deleteCmd)
}

// DeleteResult is the response for the delete command.
type DeleteResult struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Deleted int    `json:"deleted"`
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a snippet, or the whole collection with --all",
	Long: `Delete the snippet with the given identifier.

With --all --force, wipe the entire collection. Deleting an unknown
identifier is reported as not found, not as a failure of the store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	store := openStore()

	if deleteAll {
		if len(args) > 0 {
			exitWithError(ExitError, "cannot combine --all with an id")
		}
		if !deleteForce {
			exitWithError(ExitError, "refusing to delete every snippet without --force")
		}

		count, err := store.Count()
		if err != nil {
			exitStorageError("reading snippets", err)
		}
		if err := store.DeleteAll(); err != nil {
			exitStorageError("deleting snippets", err)
		}

		if humanOutput {
			fmt.Printf("Deleted %d snippets\n", count)
		} else {
			outputJSON(DeleteResult{Status: "deleted", Deleted: count})
		}
		return nil
	}

	if len(args) != 1 {
		exitWithError(ExitError, "an id is required unless --all is given")
	}

	removed, err := store.Delete(args[0])
	if err != nil {
		exitStorageError("deleting snippet", err)
	}
	if !removed {
		exitWithError(ExitNotFound, "snippet %q not found", args[0])
	}

	if humanOutput {
		fmt.Printf("Deleted snippet %q\n", args[0])
	} else {
		outputJSON(DeleteResult{Status: "deleted", ID: args[0], Deleted: 1})
	}

	return nil
}
