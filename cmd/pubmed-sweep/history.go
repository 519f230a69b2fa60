// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-sweep/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.Open(loadConfig().History)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s  %-7s  %-7s  %-7s  %-7s  %s\n",
			"When", "Chunks", "Fetched", "Kept", "Removed", "Query")
		for _, r := range runs {
			q := r.Query
			if len(q) > 60 {
				q = q[:57] + "..."
			}
			fmt.Fprintf(w, "%-20s  %-7d  %-7d  %-7d  %-7d  %s\n",
				r.Timestamp.Format("2006-01-02 15:04:05"), r.Chunks, r.Fetched, r.Kept, r.Removed, q)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
