// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds PubMed search expressions and splits oversized
// queries into server-acceptable chunks.
package query

import (
	"fmt"
	"strings"
	"time"
)

const dateFmt = "2006/01/02"

// Build combines free-text search terms with an optional look-back window.
// When yearsBack is positive the query gains a publication-date clause
// covering the last yearsBack*365 days ending at now.
func Build(terms string, yearsBack int, now time.Time) string {
	q := strings.TrimSpace(terms)
	if yearsBack <= 0 {
		return q
	}
	start := now.AddDate(0, 0, -yearsBack*365)
	return fmt.Sprintf("%s AND (%s:%s[Date - Publication])",
		q, start.Format(dateFmt), now.Format(dateFmt))
}
