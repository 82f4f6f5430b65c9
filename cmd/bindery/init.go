package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bindery"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a bindery corpus (git init)",
	Long:  `Initialize a new corpus in the current directory. This effectively runs 'git init'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		if gitless {
			fatal("Cannot initialize corpus in gitless mode", fmt.Errorf("git is required for init"))
		}

		_, err = bindery.Init(cwd,
			bindery.WithAdapter(adapter),
			bindery.WithAutoInit(true),
			bindery.WithVersioning(!gitless),
			bindery.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize corpus", err)
		}

		fmt.Println("Initialized empty bindery corpus in", cwd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
