package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// Reject answers whether a haystack contains any of a fixed set of byte
// patterns, using a byte-specialized Aho-Corasick automaton.
//
// It reports presence only. Positions and the full match set come from the
// caller's own traversal; Reject just lets ranges without any occurrence skip
// that traversal.
type Reject struct {
	auto     *ahocorasick.Automaton
	patterns int
}

// NewReject builds a reject filter over patterns. Empty patterns are ignored.
// Returns an error if the underlying automaton cannot be built, in which case
// callers should run without a reject filter.
func NewReject(patterns [][]byte) (*Reject, error) {
	n := 0
	builder := ahocorasick.NewBuilder()
	for _, p := range patterns {
		if len(p) == 0 {
			continue
		}
		builder.AddPattern(p)
		n++
	}
	if n == 0 {
		return &Reject{}, nil
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Reject{auto: auto, patterns: n}, nil
}

// IsMatch reports whether any pattern occurs in haystack.
func (r *Reject) IsMatch(haystack []byte) bool {
	if r.patterns == 0 {
		return false
	}
	return r.auto.IsMatch(haystack)
}

// Len returns the number of patterns the filter was built from.
func (r *Reject) Len() int {
	return r.patterns
}
