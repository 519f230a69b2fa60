// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-sweep/internal/dedup"
	"github.com/pdiddy/pubmed-sweep/internal/report"
	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Re-run deduplication over a previously exported records file",
	Long: `Dedup reads an all-records CSV produced by a previous run and
repeats the deduplication pass, writing a fresh set of output files. Useful
for trying a different similarity threshold without re-querying PubMed.

When --threshold is not given, the threshold recorded in the run file next
to the input is reused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		threshold, _ := cmd.Flags().GetInt("threshold")

		if in == "" {
			return fmt.Errorf("--in must not be empty")
		}
		if out == "" {
			return fmt.Errorf("--out must not be empty")
		}
		if !cmd.Flags().Changed("threshold") {
			base := strings.TrimSuffix(in, ".csv")
			if rf, err := report.ReadRunFile(base + "_run.yaml"); err == nil && rf.Threshold > 0 {
				threshold = rf.Threshold
				fmt.Fprintf(os.Stderr, "using threshold %d from %s_run.yaml\n", threshold, base)
			}
		}
		if threshold <= 0 || threshold > 100 {
			return fmt.Errorf("--threshold must be between 1 and 100")
		}

		records, err := report.ReadRecords(in)
		if err != nil {
			return err
		}

		res := dedup.Dedup(records, threshold)

		files, err := report.WriteFiles(out, records, res)
		if err != nil {
			return err
		}

		summary := types.RunSummary{
			Query:      fmt.Sprintf("dedup of %s", in),
			Fetched:    len(records),
			Kept:       len(res.Kept),
			Removed:    len(res.Removed),
			OutputBase: out,
			Timestamp:  time.Now(),
		}
		if _, err := report.WriteSummaryFile(out, summary, files); err != nil {
			return err
		}
		report.PrintSummary(cmd.OutOrStdout(), summary, files)
		return nil
	},
}

func init() {
	dedupCmd.Flags().String("in", "", "all-records CSV from a previous run")
	dedupCmd.Flags().String("out", "rededup", "output base filename (without .csv)")
	dedupCmd.Flags().Int("threshold", dedup.DefaultThreshold, "fuzzy similarity threshold (1-100)")

	rootCmd.AddCommand(dedupCmd)
}
