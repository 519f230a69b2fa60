// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists run output: delimited record files, a YAML run
// file, and the human-readable summary.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pubmed-sweep/internal/dedup"
	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

// WriteError reports a failed output write. No output file is left behind
// when a write fails; the run produces all files or none.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// recordHeader is the column set shared by all three record files.
var recordHeader = []string{
	"pmid", "doi", "title", "authors", "journal",
	"publication_year", "full_publication_date",
	"volume", "issue", "pages",
	"article_type", "language", "abstract", "keywords", "grants",
	"publication_status", "pubmed_link", "pmc_id",
}

// duplicateHeader extends recordHeader with the duplicate origin columns.
var duplicateHeader = append(append([]string{}, recordHeader...), "duplicate_of", "reason")

const listSep = "; "

// Files holds the paths of a completed run's record files.
type Files struct {
	All        string
	Kept       string
	Duplicates string
}

// WriteFiles writes all three record files for base: "<base>.csv" with
// every extracted record, "<base>_deduplicated.csv" with the kept set, and
// "<base>_duplicates.csv" with removed records and their origins. Files
// are written to temporaries and renamed only after every write succeeds,
// so a failure leaves no partial output.
func WriteFiles(base string, all []types.Record, res dedup.Result) (Files, error) {
	base = strings.TrimSuffix(base, ".csv")
	files := Files{
		All:        base + ".csv",
		Kept:       base + "_deduplicated.csv",
		Duplicates: base + "_duplicates.csv",
	}

	type pending struct {
		tmp, final string
	}
	var done []pending
	cleanup := func() {
		for _, p := range done {
			os.Remove(p.tmp)
		}
	}

	writes := []struct {
		path  string
		write func(w *csv.Writer) error
	}{
		{files.All, func(w *csv.Writer) error { return writeRecords(w, all) }},
		{files.Kept, func(w *csv.Writer) error { return writeRecords(w, res.Kept) }},
		{files.Duplicates, func(w *csv.Writer) error { return writeDuplicates(w, res.Removed) }},
	}

	for _, wr := range writes {
		tmp := wr.path + ".tmp"
		if err := writeCSVFile(tmp, wr.write); err != nil {
			cleanup()
			return Files{}, &WriteError{Path: wr.path, Err: err}
		}
		done = append(done, pending{tmp: tmp, final: wr.path})
	}

	for _, p := range done {
		if err := os.Rename(p.tmp, p.final); err != nil {
			cleanup()
			return Files{}, &WriteError{Path: p.final, Err: err}
		}
	}
	return files, nil
}

func writeCSVFile(path string, write func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRecords(w *csv.Writer, records []types.Record) error {
	if err := w.Write(recordHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(recordRow(rec)); err != nil {
			return err
		}
	}
	return nil
}

func writeDuplicates(w *csv.Writer, dups []dedup.Duplicate) error {
	if err := w.Write(duplicateHeader); err != nil {
		return err
	}
	for _, d := range dups {
		row := append(recordRow(d.Record), d.DuplicateOf, d.Reason)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func recordRow(rec types.Record) []string {
	authors := make([]string, len(rec.Authors))
	for i, a := range rec.Authors {
		authors[i] = a.Display()
	}
	return []string{
		rec.PMID,
		rec.DOI,
		rec.Title,
		strings.Join(authors, listSep),
		rec.Journal,
		rec.Year,
		rec.PubDate,
		rec.Volume,
		rec.Issue,
		rec.Pages,
		strings.Join(rec.ArticleTypes, listSep),
		rec.Language,
		rec.Abstract,
		strings.Join(rec.Keywords, listSep),
		strings.Join(rec.Grants, listSep),
		rec.PublicationStatus,
		rec.Link,
		rec.PMCID,
	}
}

// ReadRecords loads an all-records file written by WriteFiles, for
// re-running deduplication without re-querying the API.
func ReadRecords(path string) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []types.Record
	for _, row := range rows[1:] {
		rec := types.Record{
			PMID:              field(row, "pmid"),
			DOI:               field(row, "doi"),
			Title:             field(row, "title"),
			Authors:           parseAuthors(field(row, "authors")),
			Journal:           field(row, "journal"),
			Year:              field(row, "publication_year"),
			PubDate:           field(row, "full_publication_date"),
			Volume:            field(row, "volume"),
			Issue:             field(row, "issue"),
			Pages:             field(row, "pages"),
			ArticleTypes:      splitList(field(row, "article_type")),
			Language:          field(row, "language"),
			Abstract:          field(row, "abstract"),
			Keywords:          splitList(field(row, "keywords")),
			Grants:            splitList(field(row, "grants")),
			PublicationStatus: field(row, "publication_status"),
			Link:              field(row, "pubmed_link"),
			PMCID:             field(row, "pmc_id"),
		}
		records = append(records, rec)
	}
	return records, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

// parseAuthors reverses Author.Display: "Name (Affiliation)" or "Name".
func parseAuthors(s string) []types.Author {
	var authors []types.Author
	for _, part := range splitList(s) {
		a := types.Author{Name: part}
		if open := strings.LastIndex(part, " ("); open >= 0 && strings.HasSuffix(part, ")") {
			a.Name = part[:open]
			a.Affiliation = part[open+2 : len(part)-1]
		}
		authors = append(authors, a)
	}
	return authors
}
