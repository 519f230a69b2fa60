// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		terms     string
		yearsBack int
		want      string
	}{
		{
			name:  "no look-back leaves query unchanged",
			terms: `"back pain"[MeSH] AND physiotherapy`,
			want:  `"back pain"[MeSH] AND physiotherapy`,
		},
		{
			name:      "five years appends date clause",
			terms:     "cancer immunotherapy",
			yearsBack: 5,
			want:      "cancer immunotherapy AND (2021/03/16:2026/03/15[Date - Publication])",
		},
		{
			name:      "negative look-back ignored",
			terms:     "cancer",
			yearsBack: -1,
			want:      "cancer",
		},
		{
			name:      "whitespace trimmed",
			terms:     "  diabetes  ",
			yearsBack: 0,
			want:      "diabetes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.terms, tt.yearsBack, now); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitWithinLimit(t *testing.T) {
	q := "aspirin AND (stroke OR infarction)"
	chunks, err := Split(q, 2000)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 || chunks[0] != q {
		t.Errorf("Split() = %v, want single unchanged chunk", chunks)
	}
}

func TestSplitAtTopLevelConnectives(t *testing.T) {
	// 600-character query with a top-level AND near the middle; limit 400
	// forces exactly two chunks.
	left := strings.Repeat("a", 295)
	right := strings.Repeat("b", 300)
	q := left + " AND " + right

	chunks, err := Split(q, 400)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 400 {
			t.Errorf("chunk %d length = %d, exceeds limit", i, len(c))
		}
	}
	if chunks[0] != left || chunks[1] != right {
		t.Errorf("chunks = %q, %q; want the two top-level terms", chunks[0], chunks[1])
	}
}

func TestSplitNeverCutsGroups(t *testing.T) {
	group := "(" + strings.Repeat("x", 20) + " AND " + strings.Repeat("y", 20) + ")"
	phrase := `"chronic low back pain management"`
	var terms []string
	for i := 0; i < 10; i++ {
		terms = append(terms, group, phrase)
	}
	q := strings.Join(terms, " OR ")

	chunks, err := Split(q, 100)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d length = %d, exceeds limit", i, len(c))
		}
		if strings.Count(c, "(") != strings.Count(c, ")") {
			t.Errorf("chunk %d has unbalanced parentheses: %q", i, c)
		}
		if strings.Count(c, `"`)%2 != 0 {
			t.Errorf("chunk %d has an unterminated quoted phrase: %q", i, c)
		}
	}
}

func TestSplitGreedyPacking(t *testing.T) {
	// Three 30-char terms with a 70-char limit: first two fit together.
	a, b, c := strings.Repeat("a", 30), strings.Repeat("b", 30), strings.Repeat("c", 30)
	q := a + " OR " + b + " OR " + c

	chunks, err := Split(q, 70)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if chunks[0] != a+" OR "+b {
		t.Errorf("chunks[0] = %q, want first two terms packed", chunks[0])
	}
	if chunks[1] != c {
		t.Errorf("chunks[1] = %q, want %q", chunks[1], c)
	}
}

func TestSplitUnsplittableSegment(t *testing.T) {
	tests := []struct {
		name string
		q    string
	}{
		{"single long quoted phrase", `"` + strings.Repeat("q", 120) + `"`},
		{"long parenthesized group", "(" + strings.Repeat("p", 60) + " AND " + strings.Repeat("r", 60) + ")"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.q, 100)
			var tooComplex *QueryTooComplexError
			if !errors.As(err, &tooComplex) {
				t.Fatalf("Split() error = %v, want *QueryTooComplexError", err)
			}
			if tooComplex.MaxLen != 100 {
				t.Errorf("MaxLen = %d, want 100", tooComplex.MaxLen)
			}
		})
	}
}

func TestSplitConnectiveInsideQuoteIsLiteral(t *testing.T) {
	q := `"rock AND roll therapy" OR ` + strings.Repeat("z", 40)
	chunks, err := Split(q, 45)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2", len(chunks))
	}
	if chunks[0] != `"rock AND roll therapy"` {
		t.Errorf("chunks[0] = %q, quoted phrase should stay whole", chunks[0])
	}
}
