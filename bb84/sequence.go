package bb84

import (
	"fmt"
	"strings"

	"github.com/alan-christopher/bb84sim/bb84/bitmap"
)

// Bits is an immutable, ordered sequence of Bit values. Keys, decoded keys and
// shared secrets are all Bits.
type Bits struct {
	d bitmap.Dense
}

// NewBits returns the Bits holding bs, in order. Any non-zero Bit is treated
// as 1.
func NewBits(bs ...Bit) Bits {
	var d bitmap.Dense
	for _, b := range bs {
		d.AppendBit(b != 0)
	}
	return Bits{d: d}
}

// ParseBits parses a string of '0's and '1's, e.g. "0101". Spaces are ignored.
func ParseBits(s string) (Bits, error) {
	d, err := bitmap.FromString(s)
	if err != nil {
		return Bits{}, fmt.Errorf("parsing bits: %w", err)
	}
	return Bits{d: d}, nil
}

// Len returns the number of bits in b.
func (b Bits) Len() int {
	return b.d.Size()
}

// At returns the i-th bit of b.
func (b Bits) At(i int) Bit {
	if b.d.Get(i) {
		return 1
	}
	return 0
}

// Slice returns a copy of b as a slice.
func (b Bits) Slice() []Bit {
	r := make([]Bit, b.Len())
	for i := range r {
		r[i] = b.At(i)
	}
	return r
}

// Equal reports whether b and o hold the same bits.
func (b Bits) Equal(o Bits) bool {
	return bitmap.Equal(b.d, o.d)
}

func (b Bits) String() string {
	return b.d.String()
}

// Bases is an immutable, ordered sequence of Basis choices.
type Bases struct {
	// Set bits mark Diagonal, as in the announcements on the classical
	// channel.
	d bitmap.Dense
}

// NewBases returns the Bases holding bs, in order.
func NewBases(bs ...Basis) Bases {
	var d bitmap.Dense
	for _, b := range bs {
		d.AppendBit(b == Diagonal)
	}
	return Bases{d: d}
}

// ParseBases parses a string of '+' and 'x' characters, e.g. "++xx". Spaces
// are ignored.
func ParseBases(s string) (Bases, error) {
	var d bitmap.Dense
	for _, c := range s {
		switch c {
		case '+':
			d.AppendBit(false)
		case 'x', 'X':
			d.AppendBit(true)
		case ' ':
		default:
			return Bases{}, fmt.Errorf("parsing bases: invalid basis %q in %q", c, s)
		}
	}
	return Bases{d: d}, nil
}

// Len returns the number of bases in b.
func (b Bases) Len() int {
	return b.d.Size()
}

// At returns the i-th basis of b.
func (b Bases) At(i int) Basis {
	if b.d.Get(i) {
		return Diagonal
	}
	return Rectilinear
}

// Slice returns a copy of b as a slice.
func (b Bases) Slice() []Basis {
	r := make([]Basis, b.Len())
	for i := range r {
		r[i] = b.At(i)
	}
	return r
}

// Equal reports whether b and o hold the same bases.
func (b Bases) Equal(o Bases) bool {
	return bitmap.Equal(b.d, o.d)
}

func (b Bases) String() string {
	var sb strings.Builder
	for i := 0; i < b.Len(); i++ {
		sb.WriteString(b.At(i).String())
	}
	return sb.String()
}

// An EncodedSequence is the Sender's view of one transmission: the basis used
// for every key bit and the symbol it produced.
type EncodedSequence struct {
	bases   Bases
	symbols []Symbol
}

// Len returns the number of encoded positions.
func (e EncodedSequence) Len() int {
	return len(e.symbols)
}

// Bases returns the bases the Sender chose.
func (e EncodedSequence) Bases() Bases {
	return e.bases
}

// Symbols returns a copy of the transmitted symbols.
func (e EncodedSequence) Symbols() []Symbol {
	r := make([]Symbol, len(e.symbols))
	copy(r, e.symbols)
	return r
}

// At returns the basis and symbol at position i.
func (e EncodedSequence) At(i int) (Basis, Symbol) {
	return e.bases.At(i), e.symbols[i]
}

// A Measurement is the Receiver's view of one transmission: the basis it
// measured every symbol in and the bit it observed.
type Measurement struct {
	bases Bases
	bits  Bits
}

// Len returns the number of measured positions.
func (m Measurement) Len() int {
	return m.bits.Len()
}

// Bases returns the bases the Receiver chose.
func (m Measurement) Bases() Bases {
	return m.bases
}

// Bits returns the decoded bits.
func (m Measurement) Bits() Bits {
	return m.bits
}
