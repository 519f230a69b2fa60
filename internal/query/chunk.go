// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"strings"
)

// QueryTooComplexError reports a query segment that cannot be split below
// the server's length limit: the segment contains no boolean connective
// outside parentheses or quoted phrases.
type QueryTooComplexError struct {
	Segment string
	MaxLen  int
}

func (e *QueryTooComplexError) Error() string {
	return fmt.Sprintf("query too complex: segment of length %d exceeds limit %d and has no top-level AND/OR to split on",
		len(e.Segment), e.MaxLen)
}

// segment is one top-level term of the query together with the boolean
// connective that joined it to the previous term.
type segment struct {
	conn string // "AND" or "OR"; empty for the first segment
	text string
}

// Split breaks query into chunks of at most maxLen characters. Queries
// already within the limit are returned unchanged as a single chunk.
// Splits happen only at AND/OR connectives at parenthesis depth zero and
// outside double-quoted phrases, so no parenthesized group or quoted
// phrase is ever cut. Segments are packed greedily left to right, which
// yields the minimum number of chunks for an in-order split.
//
// Split is pure: it performs no I/O and does not modify its input.
func Split(query string, maxLen int) ([]string, error) {
	query = strings.TrimSpace(query)
	if maxLen <= 0 || len(query) <= maxLen {
		return []string{query}, nil
	}

	segments := splitTopLevel(query)

	var chunks []string
	current := ""
	for _, seg := range segments {
		if len(seg.text) > maxLen {
			return nil, &QueryTooComplexError{Segment: seg.text, MaxLen: maxLen}
		}
		if current == "" {
			current = seg.text
			continue
		}
		joined := current + " " + seg.conn + " " + seg.text
		if len(joined) <= maxLen {
			current = joined
			continue
		}
		chunks = append(chunks, current)
		current = seg.text
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks, nil
}

// splitTopLevel cuts the query at AND/OR connectives that sit at
// parenthesis depth zero outside quoted phrases.
func splitTopLevel(query string) []segment {
	var segments []segment
	depth := 0
	inQuote := false
	start := 0
	conn := ""

	i := 0
	for i < len(query) {
		c := query[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			// Connectives and parentheses inside a quoted phrase are literal.
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && c == ' ':
			if op, width := connectiveAt(query, i); op != "" {
				segments = append(segments, segment{
					conn: conn,
					text: strings.TrimSpace(query[start:i]),
				})
				conn = op
				i += width
				start = i
				continue
			}
		}
		i++
	}
	segments = append(segments, segment{conn: conn, text: strings.TrimSpace(query[start:])})
	return segments
}

// connectiveAt reports the boolean operator starting at the space at
// position i, and the width of " AND " or " OR " when present.
func connectiveAt(q string, i int) (string, int) {
	rest := q[i:]
	if strings.HasPrefix(rest, " AND ") {
		return "AND", len(" AND ")
	}
	if strings.HasPrefix(rest, " OR ") {
		return "OR", len(" OR ")
	}
	return "", 0
}
