package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bindery"
	"github.com/spf13/cobra"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Read a document",
	Long:  `Read a document by its ID. Outputs raw markdown content by default, or a JSON object with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		service, err := bindery.New(wd,
			bindery.WithAdapter(adapter),
			bindery.WithVersioning(!gitless),
			bindery.WithMustExist(true),
			bindery.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize bindery", err)
		}

		doc, err := service.GetBinding(context.Background(), id)
		if err != nil {
			fatal("Failed to read document", err)
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Print(doc.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
