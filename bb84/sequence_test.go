package bb84

import (
	"reflect"
	"testing"
)

func TestParseBits(t *testing.T) {
	b := mustBits(t, "0110 1")
	if want := []Bit{0, 1, 1, 0, 1}; !reflect.DeepEqual(b.Slice(), want) {
		t.Errorf("Slice() == %v, want %v", b.Slice(), want)
	}
	if _, err := ParseBits("012"); err == nil {
		t.Errorf("ParseBits accepted a 2")
	}
	if !NewBits(0, 1, 1, 0, 1).Equal(b) {
		t.Errorf("NewBits disagrees with ParseBits")
	}
}

func TestParseBases(t *testing.T) {
	b := mustBases(t, "+xX +")
	if want := []Basis{Rectilinear, Diagonal, Diagonal, Rectilinear}; !reflect.DeepEqual(b.Slice(), want) {
		t.Errorf("Slice() == %v, want %v", b.Slice(), want)
	}
	if got := b.String(); got != "+xx+" {
		t.Errorf("String() == %q, want +xx+", got)
	}
	if _, err := ParseBases("+-"); err == nil {
		t.Errorf("ParseBases accepted '-'")
	}
}

func TestSliceIsCopy(t *testing.T) {
	b := mustBits(t, "101")
	s := b.Slice()
	s[0] = 0
	if b.At(0) != 1 {
		t.Errorf("mutating Slice() changed the Bits")
	}
	e := EncodedSequence{bases: mustBases(t, "+"), symbols: []Symbol{H}}
	syms := e.Symbols()
	syms[0] = V
	if _, sym := e.At(0); sym != H {
		t.Errorf("mutating Symbols() changed the EncodedSequence")
	}
}

func TestSymbolString(t *testing.T) {
	if got := D.String(); got != "D" {
		t.Errorf("D.String() == %q", got)
	}
	if got := Symbol('q').String(); got != "Symbol(0x71)" {
		t.Errorf("invalid symbol String() == %q", got)
	}
	if got := Basis(5).String(); got != "Basis(5)" {
		t.Errorf("invalid basis String() == %q", got)
	}
}
