package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bindery"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document from the corpus",
	Long:  `Delete permanently removes a document from the corpus and stages the deletion in Git.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		root, err := bindery.FindCorpusRoot(wd)
		if err != nil {
			fatal("Not a bindery corpus", err)
		}

		service, err := bindery.New(root,
			bindery.WithAdapter(adapter),
			bindery.WithVersioning(!gitless),
			bindery.WithMustExist(true),
			bindery.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize bindery", err)
		}

		if err := service.DeleteBinding(context.Background(), id); err != nil {
			fatal("Failed to delete document", err)
		}

		fmt.Printf("Document deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
