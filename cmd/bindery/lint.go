package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/bindery"
	"github.com/aretw0/bindery/internal/platform"
	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/lint"
	_ "github.com/aretw0/bindery/pkg/lint/rules/all"
	"github.com/spf13/cobra"
)

var (
	lintFormat  string
	lintFailOn  string
	lintWatch   bool
	lintInclude []string
	lintExclude []string
	lintDisable []string
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the corpus against its conventions",
	Long: `Lint checks every document in the corpus: required front matter keys,
version and date formats, resolvable cross-references, and document
structure. Defaults can be set in bindery.yaml; flags override it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		root, err := bindery.FindCorpusRoot(wd)
		if err != nil {
			root = wd
		}

		cfg, err := platform.LoadConfig(root)
		if err != nil {
			fatal("Failed to load config", err)
		}

		opts := lint.Options{
			Include:  cfg.Lint.Include,
			Exclude:  cfg.Lint.Exclude,
			Disabled: cfg.Lint.Disabled,
			Logger:   slog.Default(),
		}
		if len(lintInclude) > 0 {
			opts.Include = lintInclude
		}
		if len(lintExclude) > 0 {
			opts.Exclude = lintExclude
		}
		if len(lintDisable) > 0 {
			opts.Disabled = lintDisable
		}

		failName := cfg.Lint.FailOn
		if lintFailOn != "" {
			failName = lintFailOn
		}
		failOn, err := lint.ParseSeverity(failName)
		if err != nil {
			fatal("Invalid --fail-on value", err)
		}

		repo, err := bindery.Init(root,
			bindery.WithAdapter(adapter),
			bindery.WithVersioning(!gitless),
			bindery.WithMustExist(true),
			bindery.WithReadOnly(true),
			bindery.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open corpus", err)
		}

		ctx := context.Background()
		if lintWatch {
			runLintWatch(ctx, repo, opts, failOn)
			return
		}

		failed, err := runLintOnce(ctx, repo, opts, failOn)
		if err != nil {
			fatal("Lint failed", err)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func runLintOnce(ctx context.Context, repo core.Repository, opts lint.Options, failOn lint.Severity) (bool, error) {
	report, err := lint.RunRepository(ctx, repo, opts)
	if err != nil {
		return false, err
	}

	switch lintFormat {
	case "json":
		if err := report.WriteJSON(os.Stdout); err != nil {
			return false, err
		}
	case "text", "":
		if err := report.WriteText(os.Stdout); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown format %q", lintFormat)
	}

	return report.Failed(failOn), nil
}

// runLintWatch re-runs the linter whenever the corpus changes on disk.
// Exit status is not tied to findings in watch mode; it is an editing aid.
func runLintWatch(ctx context.Context, repo core.Repository, opts lint.Options, failOn lint.Severity) {
	watchable, ok := repo.(core.Watchable)
	if !ok {
		fatal("Watch not supported", core.ErrNoWatch)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := watchable.Watch(ctx, "**/*")
	if err != nil {
		fatal("Failed to watch corpus", err)
	}

	if _, err := runLintOnce(ctx, repo, opts, failOn); err != nil {
		fatal("Lint failed", err)
	}

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")
	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(os.Stderr, "\n%s %s, re-linting\n", ev.Type, ev.ID)
			if _, err := runLintOnce(ctx, repo, opts, failOn); err != nil {
				fmt.Fprintf(os.Stderr, "Lint failed: %v\n", err)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().StringVar(&lintFormat, "format", "text", "Output format: text or json")
	lintCmd.Flags().StringVar(&lintFailOn, "fail-on", "", "Lowest severity that fails the run: warning or error")
	lintCmd.Flags().BoolVar(&lintWatch, "watch", false, "Re-lint whenever the corpus changes")
	lintCmd.Flags().StringSliceVar(&lintInclude, "include", nil, "Only lint documents matching these globs")
	lintCmd.Flags().StringSliceVar(&lintExclude, "exclude", nil, "Skip documents matching these globs")
	lintCmd.Flags().StringSliceVar(&lintDisable, "disable", nil, "Rule IDs to skip")
}
