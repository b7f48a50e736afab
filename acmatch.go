// Package acmatch provides an Aho-Corasick automaton for simultaneous
// multi-pattern search.
//
// The automaton recognizes every occurrence of every registered pattern in a
// single left-to-right pass over the input. Search cost is proportional to
// the input length plus the number of reported matches, independent of how
// many patterns are registered.
//
// The automaton is generic over the element type E and the pattern type P.
// Patterns and inputs only need to decompose into the same element type, so
// patterns written as String can be matched against Bytes, Slice[byte], or
// any other Sequence[byte].
//
// Basic usage:
//
//	ac := acmatch.New[byte, acmatch.String]()
//	ac.Add("quick").Add("ck").Add("brown")
//
//	m := ac.Matcher()
//	m.MatchAll(acmatch.String("quick brown"), func(p acmatch.String, start int) bool {
//	    fmt.Printf("Matched %q on position %d\n", p, start)
//	    return false // keep going
//	})
//
// Construction is lazy: Add only extends the trie. Failure links and output
// sets are computed the first time a Matcher is requested or a match runs,
// and recomputed from scratch after any further Add.
//
// Concurrency: Add and the first match after Add mutate the automaton and
// must be serialized by the caller. Once prepared, any number of goroutines
// may search concurrently through their own Matcher values.
package acmatch

import (
	"github.com/coregx/acmatch/internal/conv"
	"github.com/coregx/acmatch/prefilter"
)

// prepState is the preparation state of an automaton.
type prepState uint8

const (
	// stale means failure links and output sets do not reflect the trie.
	stale prepState = iota
	// ready means the automaton may be traversed.
	ready
)

// Automaton is an Aho-Corasick automaton over elements of type E recognizing
// patterns of type P.
//
// The zero value is not usable; create automata with New or NewWithConfig.
type Automaton[E comparable, P Sequence[E]] struct {
	patterns []P   // by pattern ID
	lens     []int // cached P.Len() by pattern ID
	nodes    []node[E]
	state    prepState

	config Config
	accel  *byteAccel // nil unless E is byte and preparation built filters
	stats  searchStats
}

// byteAccel holds the byte-level filters rebuilt on every preparation.
type byteAccel struct {
	starts prefilter.Prefilter // nil when every or no byte starts a pattern
	reject *prefilter.Reject   // nil when disabled or unavailable
}

// New creates an empty automaton with DefaultConfig.
//
// Example:
//
//	ac := acmatch.New[rune, acmatch.Runes]()
func New[E comparable, P Sequence[E]]() *Automaton[E, P] {
	a, _ := NewWithConfig[E, P](DefaultConfig())
	return a
}

// NewWithConfig creates an empty automaton with the given configuration.
// Returns a *ConfigError if the configuration is invalid.
func NewWithConfig[E comparable, P Sequence[E]](config Config) (*Automaton[E, P], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	a := &Automaton[E, P]{
		nodes:  make([]node[E], 1, 16),
		state:  stale,
		config: config,
	}
	a.nodes[rootID] = node[E]{parent: noState, fail: rootID}
	return a, nil
}

// Add registers a pattern and returns the automaton for chaining.
//
// An empty pattern is ignored: it is not stored, tags no state and leaves the
// automaton's preparation state unchanged. Adding a pattern whose elements
// equal an existing one stores both; both are reported at every occurrence,
// in the order they were added.
//
// Add invalidates failure links and output sets. They are rebuilt before the
// next search.
func (a *Automaton[E, P]) Add(p P) *Automaton[E, P] {
	n := p.Len()
	if n == 0 {
		return a
	}

	s := rootID
	for i := 0; i < n; i++ {
		e := p.At(i)
		if next, ok := a.nodes[s].children[e]; ok {
			s = next
			continue
		}
		s = a.addChild(s, e)
	}

	id := conv.IntToUint32(len(a.patterns))
	a.patterns = append(a.patterns, p)
	a.lens = append(a.lens, n)

	terminal := &a.nodes[s]
	terminal.outputs = append(terminal.outputs[:terminal.own], id)
	terminal.own++

	a.state = stale
	return a
}

// AddAll registers each pattern in order. See Add.
func (a *Automaton[E, P]) AddAll(patterns ...P) *Automaton[E, P] {
	for _, p := range patterns {
		a.Add(p)
	}
	return a
}

// Matcher prepares the automaton if needed and returns a search handle.
//
// Matchers are small values; copy them freely.
func (a *Automaton[E, P]) Matcher() Matcher[E, P] {
	a.prepare()
	return Matcher[E, P]{a: a}
}

// Len returns the number of stored patterns. Pattern IDs are 0..Len()-1 in
// the order patterns were added, skipping ignored empty patterns.
func (a *Automaton[E, P]) Len() int {
	return len(a.patterns)
}

// Pattern returns the pattern with the given ID.
func (a *Automaton[E, P]) Pattern(id int) P {
	return a.patterns[id]
}

// Prepared reports whether failure links and output sets are current.
func (a *Automaton[E, P]) Prepared() bool {
	return a.state == ready
}

// Config returns the automaton's configuration.
func (a *Automaton[E, P]) Config() Config {
	return a.config
}
