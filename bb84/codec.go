package bb84

import "fmt"

// A Table maps each basis to the symbols encoding bit 0 and bit 1 in it.
type Table map[Basis][2]Symbol

// DefaultTable is the standard BB84 polarization table.
var DefaultTable = Table{
	Rectilinear: {H, V},
	Diagonal:    {A, D},
}

type codeword struct {
	basis Basis
	bit   Bit
}

// A Codec converts between (bit, basis) pairs and polarization symbols.
type Codec struct {
	table   Table
	reverse map[Symbol]codeword
	src     RandomBitSource
}

// NewCodec returns a Codec for t, or an error if t is not a bijection between
// (basis, bit) pairs and symbols. src supplies measurement outcomes when a
// symbol is decoded in a basis it was not prepared in.
func NewCodec(t Table, src RandomBitSource) (*Codec, error) {
	if src == nil {
		return nil, fmt.Errorf("must provide a random source")
	}
	c := &Codec{
		table:   t,
		reverse: make(map[Symbol]codeword, 4),
		src:     src,
	}
	for _, basis := range []Basis{Rectilinear, Diagonal} {
		syms, ok := t[basis]
		if !ok {
			return nil, fmt.Errorf("table has no entry for basis %v", basis)
		}
		for bit, sym := range syms {
			if !sym.Valid() {
				return nil, fmt.Errorf("table maps (%v, %d): %w: %v", basis, bit, ErrInvalidSymbol, sym)
			}
			if prev, dup := c.reverse[sym]; dup {
				return nil, fmt.Errorf("table maps both (%v, %d) and (%v, %d) to %v",
					prev.basis, prev.bit, basis, bit, sym)
			}
			c.reverse[sym] = codeword{basis: basis, bit: Bit(bit)}
		}
	}
	if len(t) != 2 {
		return nil, fmt.Errorf("table has %d bases, want 2", len(t))
	}
	return c, nil
}

// Encode returns the symbol encoding bit in basis.
func (c *Codec) Encode(bit Bit, basis Basis) Symbol {
	return c.table[basis][bit&1]
}

// Decode measures sym in basis. If sym was prepared in basis, the encoded bit
// is recovered exactly; otherwise the measurement collapses to a uniformly
// random bit drawn from the codec's source.
func (c *Codec) Decode(sym Symbol, basis Basis) (Bit, error) {
	cw, ok := c.reverse[sym]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSymbol, sym)
	}
	if cw.basis == basis {
		return cw.bit, nil
	}
	bit, err := nextBit(c.src)
	if err != nil {
		return 0, fmt.Errorf("measuring %v in basis %v: %w", sym, basis, err)
	}
	return bit, nil
}
