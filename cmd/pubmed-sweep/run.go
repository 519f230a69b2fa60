// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-sweep/internal/dedup"
	"github.com/pdiddy/pubmed-sweep/internal/history"
	"github.com/pdiddy/pubmed-sweep/internal/pubmed"
	"github.com/pdiddy/pubmed-sweep/internal/query"
	"github.com/pdiddy/pubmed-sweep/internal/report"
	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search PubMed, fetch records, deduplicate, and export CSV files",
	Long: `Run executes the full pipeline: the query (optionally restricted to
the last N years) is split into chunks if it exceeds the server's length
limit, each chunk is searched and its records fetched in batches, the
combined records are deduplicated by PMID/DOI and fuzzy title similarity,
and three CSV files plus a summary are written.

A fetch or write failure aborts the run without writing any output files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		terms, _ := cmd.Flags().GetString("query")
		yearsBack, _ := cmd.Flags().GetInt("years-back")
		maxRecords, _ := cmd.Flags().GetInt("max-records")
		out, _ := cmd.Flags().GetString("out")

		if terms == "" {
			return fmt.Errorf("--query must not be empty")
		}
		if yearsBack < 0 {
			return fmt.Errorf("--years-back must not be negative")
		}
		if maxRecords <= 0 {
			return fmt.Errorf("--max-records must be positive")
		}

		cfg := loadConfig()
		full := query.Build(terms, yearsBack, time.Now())

		chunks, err := query.Split(full, cfg.Fetch.MaxQueryLen)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "searching PubMed with query: %s\n", full)
		if len(chunks) > 1 {
			fmt.Fprintf(os.Stderr, "query exceeds %d characters, split into %d chunks\n",
				cfg.Fetch.MaxQueryLen, len(chunks))
		}

		client := pubmed.New(cfg.Fetch, os.Stderr)
		raw, stats, err := client.FetchAll(cmd.Context(), chunks, maxRecords)
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			fmt.Fprintln(os.Stderr, "no records retrieved; check the query and try again")
			return nil
		}

		records := make([]types.Record, len(raw))
		for i, art := range raw {
			records[i] = pubmed.ExtractRecord(art)
		}

		res := dedup.Dedup(records, cfg.Dedup.Threshold)

		files, err := report.WriteFiles(out, records, res)
		if err != nil {
			return err
		}

		summary := types.RunSummary{
			Query:      full,
			Chunks:     stats,
			Fetched:    len(records),
			Kept:       len(res.Kept),
			Removed:    len(res.Removed),
			OutputBase: out,
			Timestamp:  time.Now(),
		}
		if _, err := report.WriteSummaryFile(out, summary, files); err != nil {
			return err
		}
		if _, err := report.WriteRunFile(out, report.RunFile{
			Query:      terms,
			YearsBack:  yearsBack,
			MaxRecords: maxRecords,
			Threshold:  cfg.Dedup.Threshold,
			Summary:    summary,
		}); err != nil {
			return err
		}

		recordRun(cfg.History, summary)
		report.PrintSummary(cmd.OutOrStdout(), summary, files)
		return nil
	},
}

// recordRun stores the run in the history database. History is a
// convenience; failures warn rather than abort a run whose outputs are
// already on disk.
func recordRun(cfg types.HistoryConfig, summary types.RunSummary) {
	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open run history: %v\n", err)
		return
	}
	defer store.Close()
	if _, err := store.Record(summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
	}
}

func init() {
	runCmd.Flags().String("query", "", "PubMed search query (MeSH terms and boolean operators allowed)")
	runCmd.Flags().Int("years-back", 0, "restrict to publications from the last N years (0 = all years)")
	runCmd.Flags().Int("max-records", 5000, "maximum number of records to retrieve")
	runCmd.Flags().String("out", "results", "output base filename (without .csv)")

	rootCmd.AddCommand(runCmd)
}
