package acmatch

// Sequence is an ordered, indexable run of elements.
//
// Patterns are stored as Sequence values and inputs are consumed through the
// same interface, so a pattern set authored in one representation can be
// matched against input held in another as long as both yield the same
// element type. For example, String patterns match Bytes and Slice[byte]
// input alike.
type Sequence[E comparable] interface {
	// Len returns the number of elements.
	Len() int

	// At returns the element at index i, 0 <= i < Len().
	At(i int) E
}

// String is a Go string viewed as a sequence of bytes.
type String string

// Len implements Sequence.
func (s String) Len() int { return len(s) }

// At implements Sequence.
func (s String) At(i int) byte { return s[i] }

// Bytes is a byte slice viewed as a sequence of bytes.
//
// Byte automata recognize Bytes input and use the byte prefilters on it.
type Bytes []byte

// Len implements Sequence.
func (b Bytes) Len() int { return len(b) }

// At implements Sequence.
func (b Bytes) At(i int) byte { return b[i] }

// Runes is a sequence of Unicode code points.
type Runes []rune

// Len implements Sequence.
func (r Runes) Len() int { return len(r) }

// At implements Sequence.
func (r Runes) At(i int) rune { return r[i] }

// Slice adapts any slice of comparable elements.
type Slice[E comparable] []E

// Len implements Sequence.
func (s Slice[E]) Len() int { return len(s) }

// At implements Sequence.
func (s Slice[E]) At(i int) E { return s[i] }

var (
	_ Sequence[byte] = String("")
	_ Sequence[byte] = Bytes(nil)
	_ Sequence[rune] = Runes(nil)
	_ Sequence[int]  = Slice[int](nil)
)
