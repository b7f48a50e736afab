// Package simd provides word-parallel byte search primitives.
//
// The functions process eight bytes per step using SWAR (SIMD Within A
// Register) on uint64 words, falling back to a byte loop for short inputs and
// tails. They back the automaton's start-byte prefilter, which scans for the
// next byte able to leave the root state.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes marks the high bit of every zero byte in x.
//
// Bits above the lowest marked byte may be spurious (borrow propagation), so
// callers only ever use the lowest set bit.
func zeroBytes(x uint64) uint64 {
	return (x - lo8) & ^x & hi8
}

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. Equivalent to bytes.IndexByte.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o') // 4
func Memchr(haystack []byte, needle byte) int {
	mask := uint64(needle) * lo8

	idx := 0
	for ; idx+8 <= len(haystack); idx += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])
		if z := zeroBytes(chunk ^ mask); z != 0 {
			return idx + bits.TrailingZeros64(z)/8
		}
	}
	for ; idx < len(haystack); idx++ {
		if haystack[idx] == needle {
			return idx
		}
	}
	return -1
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8

	idx := 0
	for ; idx+8 <= len(haystack); idx += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])
		if z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2); z != 0 {
			return idx + bits.TrailingZeros64(z)/8
		}
	}
	for ; idx < len(haystack); idx++ {
		if b := haystack[idx]; b == needle1 || b == needle2 {
			return idx
		}
	}
	return -1
}

// Memchr3 returns the index of the first instance of needle1, needle2 or
// needle3 in haystack, or -1 if none is present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	mask3 := uint64(needle3) * lo8

	idx := 0
	for ; idx+8 <= len(haystack); idx += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])
		z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2) | zeroBytes(chunk^mask3)
		if z != 0 {
			return idx + bits.TrailingZeros64(z)/8
		}
	}
	for ; idx < len(haystack); idx++ {
		if b := haystack[idx]; b == needle1 || b == needle2 || b == needle3 {
			return idx
		}
	}
	return -1
}

// MemchrInTable returns the index of the first byte b in haystack with
// table[b] set, or -1 if there is none.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	if table == nil {
		return -1
	}
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}
