package entropy

import (
	"fmt"

	"github.com/alan-christopher/bb84sim/bb84"
)

// A Scripted source replays fixed sequences of bits and bases, in order. Once
// either script is exhausted, further draws from it fail with
// bb84.ErrSourceUnavailable.
type Scripted struct {
	Bits  []bb84.Bit
	Bases []bb84.Basis
}

// NextBit implements bb84.RandomBitSource.
func (s *Scripted) NextBit() (bb84.Bit, error) {
	if len(s.Bits) == 0 {
		return 0, fmt.Errorf("%w: bit script exhausted", bb84.ErrSourceUnavailable)
	}
	b := s.Bits[0]
	s.Bits = s.Bits[1:]
	return b, nil
}

// NextBasis implements bb84.RandomBitSource.
func (s *Scripted) NextBasis() (bb84.Basis, error) {
	if len(s.Bases) == 0 {
		return 0, fmt.Errorf("%w: basis script exhausted", bb84.ErrSourceUnavailable)
	}
	b := s.Bases[0]
	s.Bases = s.Bases[1:]
	return b, nil
}

// MustScript builds a Scripted source from string forms accepted by
// bb84.ParseBits and bb84.ParseBases. It panics on malformed input and is
// intended for tests and examples.
func MustScript(bits, bases string) *Scripted {
	bs, err := bb84.ParseBits(bits)
	if err != nil {
		panic(err)
	}
	bb, err := bb84.ParseBases(bases)
	if err != nil {
		panic(err)
	}
	return &Scripted{Bits: bs.Slice(), Bases: bb.Slice()}
}
