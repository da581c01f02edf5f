package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dbFlag string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schedtrace",
	Short: "schedtrace inspects recorded event-scheduler traces.",
	Long: `schedtrace inspects the SQLite trace databases recorded by a running ` +
		`driver. It can list the recorded tables and print the individual ` +
		`handler firings.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&dbFlag, "db",
		os.Getenv("SCHEDTRACE_DB"),
		"path to the trace database (defaults to $SCHEDTRACE_DB)")
}
