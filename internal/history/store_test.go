// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Record(types.RunSummary{
		Query:      "aspirin AND stroke",
		Chunks:     []types.ChunkStats{{Query: "aspirin"}, {Query: "stroke"}},
		Fetched:    150,
		Kept:       130,
		Removed:    20,
		OutputBase: "results",
		Timestamp:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "aspirin AND stroke", r.Query)
	assert.Equal(t, 2, r.Chunks)
	assert.Equal(t, 150, r.Fetched)
	assert.Equal(t, 130, r.Kept)
	assert.Equal(t, 20, r.Removed)
	assert.Equal(t, "results", r.OutputBase)
	assert.True(t, r.Timestamp.Equal(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)))
}

func TestRecentNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Record(types.RunSummary{
			Query:     "q",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].Timestamp.After(runs[1].Timestamp))
	assert.True(t, runs[1].Timestamp.After(runs[2].Timestamp))
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Record(types.RunSummary{
			Query:     "q",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/history"
	s, err := Open(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Record(types.RunSummary{Query: "q"})
	assert.NoError(t, err)
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Record(types.RunSummary{Query: "q"})
	require.NoError(t, err)

	runs, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Timestamp.IsZero())
}
