// Package conv provides checked integer narrowing for automaton indices.
//
// Trie states and pattern IDs are stored as uint32 to keep nodes compact.
// Narrowing panics on overflow, since an automaton with more than 2^32-1
// states or patterns cannot be represented at all.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms cannot overflow the constant.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("acmatch: index out of uint32 range")
	}
	return uint32(n)
}
