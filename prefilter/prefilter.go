// Package prefilter provides fast candidate filtering for byte automata.
//
// A prefilter quickly rejects input that cannot change the automaton's state
// or produce a match, so the full transition function only runs where it can
// matter. Two filters are provided:
//   - Start-byte prefilters find the next byte that begins at least one
//     pattern. While the automaton sits in its root state, every other byte
//     leaves it there, so traversal may jump straight to the candidate.
//   - Reject answers whether a range contains any pattern at all, letting a
//     long range without matches skip traversal entirely.
//
// The start-byte prefilter is selected from the size of the start-byte set:
//   - 1 byte    → Memchr
//   - 2 bytes   → Memchr2
//   - 3 bytes   → Memchr3
//   - 4-255     → 256-entry table scan
//   - 0 or 256  → nil (nothing to skip)
package prefilter

import (
	"github.com/coregx/acmatch/simd"
)

// Prefilter finds candidate positions in a haystack.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if there is none. Start must be >= 0; start >= len(haystack) yields -1.
	Find(haystack []byte, start int) int

	// HeapBytes returns the number of heap bytes held by the prefilter.
	HeapBytes() int
}

// NewStartBytes builds the cheapest prefilter that finds any byte in starts.
// Duplicate entries are ignored. Returns nil when no skipping is possible.
func NewStartBytes(starts []byte) Prefilter {
	var table [256]bool
	var distinct []byte
	for _, b := range starts {
		if !table[b] {
			table[b] = true
			distinct = append(distinct, b)
		}
	}

	switch len(distinct) {
	case 0, 256:
		return nil
	case 1:
		return &memchrPrefilter{needle: distinct[0]}
	case 2:
		return &memchr2Prefilter{needle1: distinct[0], needle2: distinct[1]}
	case 3:
		return &memchr3Prefilter{needle1: distinct[0], needle2: distinct[1], needle3: distinct[2]}
	default:
		return &tablePrefilter{table: table}
	}
}

// memchrPrefilter wraps simd.Memchr.
type memchrPrefilter struct {
	needle byte
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	return offset(start, simd.Memchr(haystack[start:], p.needle))
}

func (p *memchrPrefilter) HeapBytes() int { return 0 }

// memchr2Prefilter wraps simd.Memchr2.
type memchr2Prefilter struct {
	needle1, needle2 byte
}

func (p *memchr2Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	return offset(start, simd.Memchr2(haystack[start:], p.needle1, p.needle2))
}

func (p *memchr2Prefilter) HeapBytes() int { return 0 }

// memchr3Prefilter wraps simd.Memchr3.
type memchr3Prefilter struct {
	needle1, needle2, needle3 byte
}

func (p *memchr3Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	return offset(start, simd.Memchr3(haystack[start:], p.needle1, p.needle2, p.needle3))
}

func (p *memchr3Prefilter) HeapBytes() int { return 0 }

// tablePrefilter scans for any byte marked in a 256-entry table.
type tablePrefilter struct {
	table [256]bool
}

func (p *tablePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	return offset(start, simd.MemchrInTable(haystack[start:], &p.table))
}

func (p *tablePrefilter) HeapBytes() int { return len(p.table) }

// offset converts a relative search result to an absolute position.
func offset(start, idx int) int {
	if idx == -1 {
		return -1
	}
	return start + idx
}
