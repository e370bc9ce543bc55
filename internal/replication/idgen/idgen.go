// Package idgen hands out the correlation ids that tag every metadata and
// get request (spec.md §6). One Generator is shared by a worker's
// MetadataExchanger and Fetcher so both draw from the same counter.
package idgen

import "sync/atomic"

// Generator is a process-wide-style monotonic counter; the zero value
// starts at 1 after the first call.
type Generator struct {
	next int64
}

// Next returns the next correlation id, starting at 1.
func (g *Generator) Next() int64 {
	return atomic.AddInt64(&g.next, 1)
}
