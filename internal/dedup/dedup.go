// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup partitions extracted records into kept and removed sets
// using exact identifier matching followed by fuzzy text similarity.
package dedup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

// DefaultThreshold is the fuzzy similarity cutoff on a 0-100 scale.
const DefaultThreshold = 90

// Duplicate is a removed record together with the kept record it
// duplicates and a human-readable reason.
type Duplicate struct {
	Record types.Record

	// DuplicateOf is the PMID of the surviving record. Survivors are
	// always drawn from the kept set, so origins never form chains.
	DuplicateOf string

	Reason string
}

// Result is a complete partition of the input: every record appears in
// exactly one of Kept and Removed, both in original retrieval order.
type Result struct {
	Kept    []types.Record
	Removed []Duplicate
}

// Dedup classifies records in retrieval order; the first occurrence of a
// duplicate group survives as the canonical record.
//
// Phase one groups by normalized exact keys (PMID, then DOI case-folded
// and trimmed). Phase two compares each remaining record against the
// already-kept records with a token-sort similarity over normalized title
// (and abstract, when both sides have one); the first kept record scoring
// at least threshold wins, not the best-scoring one. Records where both
// title and abstract are blank never fuzzy-match.
func Dedup(records []types.Record, threshold int) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	res := Result{Kept: make([]types.Record, 0, len(records))}
	byKey := make(map[string]string) // normalized key → kept PMID

	for _, rec := range records {
		if origin, reason, ok := match(rec, res.Kept, byKey, threshold); ok {
			res.Removed = append(res.Removed, Duplicate{
				Record:      rec,
				DuplicateOf: origin,
				Reason:      reason,
			})
			continue
		}
		res.Kept = append(res.Kept, rec)
		for _, key := range exactKeys(rec) {
			if _, taken := byKey[key]; !taken {
				byKey[key] = rec.PMID
			}
		}
	}
	return res
}

// match reports whether rec duplicates an already-kept record.
func match(rec types.Record, kept []types.Record, byKey map[string]string, threshold int) (origin, reason string, ok bool) {
	for _, key := range exactKeys(rec) {
		if pmid, found := byKey[key]; found {
			return pmid, "exact match (PMID/DOI)", true
		}
	}

	title := normalize(rec.Title)
	if title == "" && rec.Abstract == "" {
		// Nothing to compare; blank records never fuzzy-match.
		return "", "", false
	}
	for i := range kept {
		otherTitle := normalize(kept[i].Title)
		if otherTitle == "" && kept[i].Abstract == "" {
			continue
		}
		// Abstracts join the comparison only when both sides have one, so
		// a missing abstract cannot dilute (or vacuously inflate) a match.
		a, b := title, otherTitle
		if rec.Abstract != "" && kept[i].Abstract != "" {
			a = strings.TrimSpace(a + " " + normalize(rec.Abstract))
			b = strings.TrimSpace(b + " " + normalize(kept[i].Abstract))
		}
		if a == "" || b == "" {
			continue
		}
		if score := Similarity(a, b); score >= threshold {
			return kept[i].PMID, fmt.Sprintf("fuzzy match (%d%%)", score), true
		}
	}
	return "", "", false
}

// exactKeys returns the normalized identifier keys of a record, skipping
// empty identifiers so blank values never collide.
func exactKeys(rec types.Record) []string {
	var keys []string
	if pmid := strings.TrimSpace(rec.PMID); pmid != "" {
		keys = append(keys, "pmid:"+strings.ToLower(pmid))
	}
	if doi := strings.TrimSpace(rec.DOI); doi != "" {
		keys = append(keys, "doi:"+strings.ToLower(doi))
	}
	return keys
}

// Similarity scores two strings on a 0-100 scale using Levenshtein
// similarity over sorted tokens, matching the token-sort-ratio behavior of
// classic fuzzy matchers: word order does not matter.
func Similarity(a, b string) int {
	sa, sb := tokenSort(a), tokenSort(b)
	if sa == "" && sb == "" {
		return 0
	}
	return int(strutil.Similarity(sa, sb, metrics.NewLevenshtein()) * 100)
}

// normalize lowercases and collapses whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenSort normalizes and sorts the words of s.
func tokenSort(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}
