// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderSummary formats the run summary as plain text, the same block
// that goes into "<base>_summary.txt".
func RenderSummary(s types.RunSummary, files Files) string {
	var b strings.Builder
	fmt.Fprintln(&b, "PubMed Sweep Summary")
	fmt.Fprintln(&b, "====================")
	fmt.Fprintf(&b, "Query: %s\n\n", s.Query)

	if len(s.Chunks) > 1 {
		fmt.Fprintf(&b, "Query split into %d chunks:\n", len(s.Chunks))
	}
	for i, c := range s.Chunks {
		fmt.Fprintf(&b, "  chunk %d: %d matched, %d fetched\n", i+1, c.Matched, c.Fetched)
	}
	fmt.Fprintf(&b, "\nTotal records collected: %d\n", s.Fetched)
	fmt.Fprintf(&b, "Duplicate records removed: %d\n", s.Removed)
	fmt.Fprintf(&b, "Final unique records: %d\n\n", s.Kept)

	fmt.Fprintf(&b, "Original data saved to: %s\n", files.All)
	fmt.Fprintf(&b, "Deduplicated data saved to: %s\n", files.Kept)
	fmt.Fprintf(&b, "Removed duplicates saved to: %s\n", files.Duplicates)
	return b.String()
}

// WriteSummaryFile persists the summary block next to the record files.
func WriteSummaryFile(base string, s types.RunSummary, files Files) (string, error) {
	path := strings.TrimSuffix(base, ".csv") + "_summary.txt"
	if err := os.WriteFile(path, []byte(RenderSummary(s, files)), 0o644); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}

// PrintSummary writes a styled version of the summary to w for the
// terminal.
func PrintSummary(w io.Writer, s types.RunSummary, files Files) {
	fmt.Fprintln(w, headingStyle.Render("PubMed Sweep Summary"))
	for i, c := range s.Chunks {
		fmt.Fprintf(w, "  chunk %d: %s matched, %s fetched\n",
			i+1, countStyle.Render(fmt.Sprintf("%d", c.Matched)), countStyle.Render(fmt.Sprintf("%d", c.Fetched)))
	}
	fmt.Fprintf(w, "Collected %s records, removed %s duplicates, kept %s.\n",
		countStyle.Render(fmt.Sprintf("%d", s.Fetched)),
		countStyle.Render(fmt.Sprintf("%d", s.Removed)),
		countStyle.Render(fmt.Sprintf("%d", s.Kept)))
	for _, p := range []string{files.All, files.Kept, files.Duplicates} {
		fmt.Fprintf(w, "  wrote %s\n", pathStyle.Render(p))
	}
}
