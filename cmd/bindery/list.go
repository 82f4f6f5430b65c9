package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bindery"
	"github.com/aretw0/bindery/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	filterTenet string
	listTenets  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the corpus",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
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

		docs, err := service.ListBindings(context.Background())
		if err != nil {
			fatal("Failed to list documents", err)
		}

		var filtered []core.Binding
		for _, doc := range docs {
			if listTenets != doc.IsTenet() {
				continue
			}
			if filterTenet != "" {
				fm := core.FrontmatterOf(doc.Metadata)
				if core.TenetID(fm.DerivedFrom) != core.TenetID(filterTenet) {
					continue
				}
			}
			filtered = append(filtered, doc)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, doc := range filtered {
			fm := core.FrontmatterOf(doc.Metadata)
			line := doc.ID
			if fm.Version != "" {
				line = fmt.Sprintf("%s (v%s)", line, fm.Version)
			}
			if fm.DerivedFrom != "" {
				line = fmt.Sprintf("%s <- %s", line, fm.DerivedFrom)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTenet, "tenet", "", "Only bindings derived from the given tenet")
	listCmd.Flags().BoolVar(&listTenets, "tenets", false, "List tenets instead of bindings")
}
