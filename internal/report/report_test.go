// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-sweep/internal/dedup"
	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{
			PMID:    "100",
			DOI:     "10.1/a",
			Title:   "Alpha study",
			Authors: []types.Author{{Name: "Garcia M", Affiliation: "University of Barcelona"}, {Name: "Chen W"}},
			Journal: "The Lancet",
			Year:    "2023",
			PubDate: "2023 Jan 15",
			Volume:  "401", Issue: "3", Pages: "123-131",
			ArticleTypes:      []string{"Journal Article", "Review"},
			Language:          "eng",
			Abstract:          "BACKGROUND: text.",
			Keywords:          []string{"back pain", "exercise"},
			Grants:            []string{"R01-123 (NIH)"},
			PublicationStatus: "ppublish",
			Link:              "https://pubmed.ncbi.nlm.nih.gov/100/",
			PMCID:             "PMC1",
		},
		{PMID: "200", Title: "Beta study"},
	}
}

func sampleResult(records []types.Record) dedup.Result {
	return dedup.Result{
		Kept: records[:1],
		Removed: []dedup.Duplicate{
			{Record: records[1], DuplicateOf: "100", Reason: "fuzzy match (95%)"},
		},
	}
}

func TestWriteFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")
	records := sampleRecords()

	files, err := WriteFiles(base, records, sampleResult(records))
	require.NoError(t, err)

	assert.Equal(t, base+".csv", files.All)
	assert.Equal(t, base+"_deduplicated.csv", files.Kept)
	assert.Equal(t, base+"_duplicates.csv", files.Duplicates)

	for _, path := range []string{files.All, files.Kept, files.Duplicates} {
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected %s to exist", path)
		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err), "temp file %s.tmp must not remain", path)
	}

	dups, err := os.ReadFile(files.Duplicates)
	require.NoError(t, err)
	assert.Contains(t, string(dups), "duplicate_of")
	assert.Contains(t, string(dups), "fuzzy match (95%)")
	assert.Contains(t, string(dups), "100")
}

func TestWriteFilesTrimsCSVSuffix(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results.csv")
	records := sampleRecords()

	files, err := WriteFiles(base, records, sampleResult(records))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(base, ".csv")+".csv", files.All)
}

func TestWriteFilesFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "missing", "results")
	records := sampleRecords()

	_, err := WriteFiles(base, records, sampleResult(records))

	var we *WriteError
	require.ErrorAs(t, err, &we)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no partial output may remain after a failed write")
}

func TestReadRecordsRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")
	records := sampleRecords()

	files, err := WriteFiles(base, records, sampleResult(records))
	require.NoError(t, err)

	got, err := ReadRecords(files.All)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	assert.Equal(t, records[0].PMID, got[0].PMID)
	assert.Equal(t, records[0].DOI, got[0].DOI)
	assert.Equal(t, records[0].Title, got[0].Title)
	assert.Equal(t, records[0].Authors, got[0].Authors)
	assert.Equal(t, records[0].Year, got[0].Year)
	assert.Equal(t, records[0].PubDate, got[0].PubDate)
	assert.Equal(t, records[0].ArticleTypes, got[0].ArticleTypes)
	assert.Equal(t, records[0].Keywords, got[0].Keywords)
	assert.Equal(t, records[0].Grants, got[0].Grants)
	assert.Equal(t, records[1].PMID, got[1].PMID)
	assert.Empty(t, got[1].Authors)
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []types.Author
	}{
		{"empty", "", nil},
		{"name only", "Chen W", []types.Author{{Name: "Chen W"}}},
		{
			"with affiliation",
			"Garcia M (University of Barcelona)",
			[]types.Author{{Name: "Garcia M", Affiliation: "University of Barcelona"}},
		},
		{
			"mixed",
			"Garcia M (University of Barcelona); Chen W",
			[]types.Author{{Name: "Garcia M", Affiliation: "University of Barcelona"}, {Name: "Chen W"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAuthors(tt.in))
		})
	}
}

func TestRenderSummary(t *testing.T) {
	s := types.RunSummary{
		Query: "aspirin AND stroke",
		Chunks: []types.ChunkStats{
			{Query: "aspirin", Matched: 120, Fetched: 100},
			{Query: "stroke", Matched: 80, Fetched: 50},
		},
		Fetched:   150,
		Kept:      130,
		Removed:   20,
		Timestamp: time.Now(),
	}
	files := Files{All: "out.csv", Kept: "out_deduplicated.csv", Duplicates: "out_duplicates.csv"}

	text := RenderSummary(s, files)

	assert.Contains(t, text, "Total records collected: 150")
	assert.Contains(t, text, "Duplicate records removed: 20")
	assert.Contains(t, text, "Final unique records: 130")
	assert.Contains(t, text, "split into 2 chunks")
	assert.Contains(t, text, "chunk 1: 120 matched, 100 fetched")
	assert.Contains(t, text, "out_deduplicated.csv")
}

func TestWriteSummaryFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")
	s := types.RunSummary{Query: "q", Fetched: 1, Kept: 1}

	path, err := WriteSummaryFile(base, s, Files{})
	require.NoError(t, err)
	assert.Equal(t, base+"_summary.txt", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total records collected: 1")
}

func TestRunFileRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")
	rf := RunFile{
		Query:      "aspirin AND stroke",
		YearsBack:  5,
		MaxRecords: 500,
		Threshold:  90,
		Summary: types.RunSummary{
			Query:   "aspirin AND stroke AND (2021/01/01:2026/01/01[Date - Publication])",
			Fetched: 10, Kept: 8, Removed: 2,
			Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}

	path, err := WriteRunFile(base, rf)
	require.NoError(t, err)
	assert.Equal(t, base+"_run.yaml", path)

	got, err := ReadRunFile(path)
	require.NoError(t, err)
	assert.Equal(t, rf.Query, got.Query)
	assert.Equal(t, rf.YearsBack, got.YearsBack)
	assert.Equal(t, rf.MaxRecords, got.MaxRecords)
	assert.Equal(t, rf.Threshold, got.Threshold)
	assert.Equal(t, rf.Summary.Kept, got.Summary.Kept)
	assert.True(t, rf.Summary.Timestamp.Equal(got.Summary.Timestamp))
}
