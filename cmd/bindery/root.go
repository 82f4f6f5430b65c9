package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	gitless bool
	adapter string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bindery",
	Short: "A versioned store and linter for binding documents",
	Long: `Bindery manages a corpus of binding documents: Markdown files with
YAML front matter, cross-linked to each other and derived from tenets.
It orchestrates filesystem writes and Git commits, keeps an index of
the corpus, and lints documents against the corpus conventions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&gitless, "gitless", false, "Operate without Git versioning")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter to use")
}
