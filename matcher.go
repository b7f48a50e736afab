package acmatch

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/coregx/acmatch/internal/conv"
	"github.com/coregx/acmatch/internal/sparse"
)

// MatchFunc is called for every match with the matched pattern and the index
// of its first element in the input. Returning true stops the search.
type MatchFunc[P any] func(pattern P, start int) bool

// Match describes one pattern occurrence.
type Match[P any] struct {
	ID      int // pattern ID, see Automaton.Pattern
	Pattern P
	Start   int // index of the first matched element
	End     int // index one past the last matched element
}

// Matcher runs searches over one automaton.
//
// A Matcher holds no search state: every call starts from the root state and
// the input is never copied or retained. Any number of Matchers may share an
// automaton. If patterns were added since the Matcher was created, the next
// search prepares the automaton again before traversing it.
type Matcher[E comparable, P Sequence[E]] struct {
	a *Automaton[E, P]
}

// Automaton returns the automaton the matcher searches with.
func (m Matcher[E, P]) Automaton() *Automaton[E, P] {
	return m.a
}

// Match reports every occurrence of every pattern inside input[begin:end].
//
// Elements are consumed left to right. After each element, fn is called
// once per pattern ending there: patterns ending exactly at the reached state
// first, in the order they were added, then patterns inherited through the
// failure chain. The start index passed to fn is end-of-match minus pattern
// length plus one, relative to input (not to begin). If fn returns true the
// search stops at once.
//
// Panics if begin and end do not form a valid range over input.
//
// Example:
//
//	text := acmatch.Bytes("quick red fox")
//	m.Match(text, 0, text.Len(), func(p acmatch.String, start int) bool {
//	    fmt.Println(p, start)
//	    return false
//	})
func (m Matcher[E, P]) Match(input Sequence[E], begin, end int, fn MatchFunc[P]) {
	a := m.a
	a.prepare()
	a.scan(input, begin, end, func(id uint32, start int) bool {
		return fn(a.patterns[id], start)
	})
}

// MatchAll is Match over the whole input.
func (m Matcher[E, P]) MatchAll(input Sequence[E], fn MatchFunc[P]) {
	m.Match(input, 0, input.Len(), fn)
}

// All returns an iterator over every match in input, in reporting order.
// Breaking out of the loop stops the search.
//
// Example:
//
//	for match := range m.All(acmatch.String("brown house")) {
//	    fmt.Println(match.Pattern, match.Start, match.End)
//	}
func (m Matcher[E, P]) All(input Sequence[E]) iter.Seq[Match[P]] {
	return func(yield func(Match[P]) bool) {
		a := m.a
		a.prepare()
		a.scan(input, 0, input.Len(), func(id uint32, start int) bool {
			return !yield(a.match(id, start))
		})
	}
}

// FindAll returns every match in input, in reporting order.
func (m Matcher[E, P]) FindAll(input Sequence[E]) []Match[P] {
	var matches []Match[P]
	a := m.a
	a.prepare()
	a.scan(input, 0, input.Len(), func(id uint32, start int) bool {
		matches = append(matches, a.match(id, start))
		return false
	})
	return matches
}

// Contains reports whether any pattern occurs in input. It stops at the
// first match.
func (m Matcher[E, P]) Contains(input Sequence[E]) bool {
	found := false
	a := m.a
	a.prepare()
	a.scan(input, 0, input.Len(), func(uint32, int) bool {
		found = true
		return true
	})
	return found
}

// Which returns the IDs of the distinct patterns occurring in input, in the
// order each was first reported. The search stops early once every pattern
// has been seen.
func (m Matcher[E, P]) Which(input Sequence[E]) []int {
	a := m.a
	a.prepare()
	if len(a.patterns) == 0 {
		return nil
	}

	seen := sparse.NewSparseSet(conv.IntToUint32(len(a.patterns)))
	a.scan(input, 0, input.Len(), func(id uint32, _ int) bool {
		seen.Insert(id)
		return seen.Len() == seen.Cap()
	})

	ids := make([]int, seen.Len())
	for i, id := range seen.Values() {
		ids[i] = int(id)
	}
	return ids
}

// match builds the Match for pattern id starting at start.
func (a *Automaton[E, P]) match(id uint32, start int) Match[P] {
	return Match[P]{
		ID:      int(id),
		Pattern: a.patterns[id],
		Start:   start,
		End:     start + a.lens[id],
	}
}

// emitFunc receives a pattern ID and match start; returning true stops.
type emitFunc func(id uint32, start int) bool

// scan drives input[begin:end] through the automaton.
func (a *Automaton[E, P]) scan(input Sequence[E], begin, end int, emit emitFunc) {
	if a.state != ready {
		panic("acmatch: search on an unprepared automaton")
	}
	if n := input.Len(); begin < 0 || end > n || begin > end {
		panic(fmt.Sprintf("acmatch: range [%d:%d] out of bounds with length %d", begin, end, n))
	}
	atomic.AddUint64(&a.stats.searches, 1)

	if a.accel != nil {
		if raw, ok := any(input).(Bytes); ok {
			a.scanBytes(input, raw, begin, end, emit)
			return
		}
	}

	s := rootID
	for i := begin; i < end; i++ {
		s = a.next(s, input.At(i))
		if a.emit(s, i, emit) {
			return
		}
	}
}

// scanBytes is scan for byte automata over Bytes input.
//
// It reports exactly what plain traversal would: the reject filter only
// short-circuits ranges with no occurrence at all, and the start-byte
// prefilter only skips bytes that would leave the root state unchanged.
func (a *Automaton[E, P]) scanBytes(input Sequence[E], raw []byte, begin, end int, emit emitFunc) {
	acc := a.accel
	if acc.reject != nil && end-begin >= a.config.RejectMinLen && !acc.reject.IsMatch(raw[begin:end]) {
		atomic.AddUint64(&a.stats.rejected, 1)
		return
	}

	haystack := raw[:end]
	skipped := 0
	s := rootID
	for i := begin; i < end; i++ {
		if s == rootID && acc.starts != nil {
			j := acc.starts.Find(haystack, i)
			if j < 0 {
				skipped += end - i
				break
			}
			skipped += j - i
			i = j
		}
		s = a.next(s, input.At(i))
		if a.emit(s, i, emit) {
			break
		}
	}
	if skipped > 0 {
		atomic.AddUint64(&a.stats.skipped, uint64(skipped))
	}
}

// emit reports the outputs of state s, entered on the element at index i.
func (a *Automaton[E, P]) emit(s stateID, i int, fn emitFunc) bool {
	for _, id := range a.nodes[s].outputs {
		if fn(id, i-a.lens[id]+1) {
			return true
		}
	}
	return false
}
