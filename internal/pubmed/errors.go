// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import "fmt"

// FetchError reports a failed E-utilities call for one query chunk: a
// permanent rejection (bad query, authentication) or a transient failure
// whose retries were exhausted. A FetchError aborts the whole run; partial
// results from earlier chunks are discarded rather than written.
type FetchError struct {
	// Chunk is the query chunk being fetched when the failure occurred.
	Chunk string

	// Op names the failing call: "esearch" or "efetch".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed for chunk %q: %v", e.Op, e.Chunk, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
