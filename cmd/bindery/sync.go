package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bindery"
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the corpus with its remote",
	Long: `Synchronize the local corpus with its remote repository: pull and
rebase the remote history, then push local document commits. Without a
configured remote the command is a no-op.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		fmt.Println("Syncing corpus...")
		if err := bindery.Sync(cwd,
			bindery.WithAdapter(adapter),
			bindery.WithVersioning(!gitless),
			bindery.WithLogger(slog.Default()),
		); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Sync failed: %v\n", err)
			fmt.Println("Tip: check that a remote is configured ('git remote add origin <url>') and reachable.")
			fmt.Println("Rebase conflicts between local and remote document edits must be resolved in the repository itself.")
			os.Exit(1)
		}

		fmt.Println("Corpus in sync.")
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
