package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Erk-/songbird/datarecording"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables recorded in a trace database.",
	Run: func(cmd *cobra.Command, args []string) {
		if dbFlag == "" {
			fmt.Fprintln(os.Stderr, "no trace database given, use --db")
			os.Exit(1)
		}

		reader := datarecording.NewReader(dbFlag)
		defer reader.Close()

		reader.MapTable(datarecording.FireLogTable, datarecording.FireRecord{})

		for _, t := range reader.ListTables() {
			fmt.Println(t)
		}
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
