package bb84

import (
	"errors"
	"testing"
)

// A fixedSource always returns the same bit and basis, or err if set.
type fixedSource struct {
	bit   Bit
	basis Basis
	err   error
}

func (f fixedSource) NextBit() (Bit, error)     { return f.bit, f.err }
func (f fixedSource) NextBasis() (Basis, error) { return f.basis, f.err }

var errBroken = errors.New("broken source")

func mustBits(t *testing.T, s string) Bits {
	b, err := ParseBits(s)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return b
}

func mustBases(t *testing.T, s string) Bases {
	b, err := ParseBases(s)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return b
}
