package acmatch

import (
	"sync/atomic"
)

// searchStats counts search activity. Fields are updated atomically so
// concurrent Matchers may share one automaton.
type searchStats struct {
	searches uint64
	rejected uint64
	skipped  uint64
}

// Stats describes an automaton's structure and search activity.
type Stats struct {
	// Patterns is the number of stored patterns.
	Patterns int

	// States is the number of trie states, including the root.
	States int

	// MaxDepth is the length of the longest trie path.
	MaxDepth int

	// Prepared reports whether failure links are current.
	Prepared bool

	// Searches is the number of completed or stopped traversals.
	Searches uint64

	// Rejected is the number of searches the reject filter answered without
	// traversal.
	Rejected uint64

	// SkippedBytes is the number of input bytes the start-byte prefilter
	// stepped over.
	SkippedBytes uint64
}

// Stats returns a snapshot of the automaton's statistics.
func (a *Automaton[E, P]) Stats() Stats {
	depth := uint32(0)
	for i := range a.nodes {
		depth = max(depth, a.nodes[i].depth)
	}
	return Stats{
		Patterns:     len(a.patterns),
		States:       len(a.nodes),
		MaxDepth:     int(depth),
		Prepared:     a.state == ready,
		Searches:     atomic.LoadUint64(&a.stats.searches),
		Rejected:     atomic.LoadUint64(&a.stats.rejected),
		SkippedBytes: atomic.LoadUint64(&a.stats.skipped),
	}
}

// ResetStats zeroes the search counters.
func (a *Automaton[E, P]) ResetStats() {
	atomic.StoreUint64(&a.stats.searches, 0)
	atomic.StoreUint64(&a.stats.rejected, 0)
	atomic.StoreUint64(&a.stats.skipped, 0)
}
