package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Erk-/songbird/datarecording"
)

var (
	storeFlag string
	limitFlag int
)

var firesCmd = &cobra.Command{
	Use:   "fires",
	Short: "Print the handler firings recorded in a trace database.",
	Run: func(cmd *cobra.Command, args []string) {
		if dbFlag == "" {
			fmt.Fprintln(os.Stderr, "no trace database given, use --db")
			os.Exit(1)
		}

		reader := datarecording.NewReader(dbFlag)
		defer reader.Close()

		reader.MapTable(datarecording.FireLogTable, datarecording.FireRecord{})

		params := datarecording.QueryParams{
			OrderBy: "WallTime",
			Limit:   limitFlag,
		}
		if storeFlag != "" {
			params.Where = "Store = ?"
			params.Args = []any{storeFlag}
		}

		results, total, err := reader.Query(
			context.Background(), datarecording.FireLogTable, params)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for _, r := range results {
			record := r.(*datarecording.FireRecord)

			sec := int64(record.WallTime)
			nsec := int64((record.WallTime - float64(sec)) * 1e9)
			stamp := time.Unix(sec, nsec).Format(time.RFC3339Nano)

			fmt.Printf("%s, %s, %s, %s, %s, fire %d\n",
				stamp, record.Store, record.EntryID,
				record.Descriptor, record.Context, record.FireCount)
		}

		fmt.Printf("%d of %d firings shown\n", len(results), total)
	},
}

func init() {
	firesCmd.Flags().StringVar(&storeFlag, "store", "",
		"only show firings of this store")
	firesCmd.Flags().IntVar(&limitFlag, "limit", 100,
		"maximum number of firings to show")

	rootCmd.AddCommand(firesCmd)
}
