// Package bb84 simulates the sifting phase of the BB84 quantum key
// distribution protocol between a Sender and a Receiver living in one process.
//
// A run draws a random key, encodes each bit as a polarization symbol under a
// randomly chosen basis, measures every symbol under an independently chosen
// basis, and finally sifts: the positions where both parties chose the same
// basis (and so agree on the bit) become the shared secret.
package bb84

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// DefaultKeyBits is the key length used when a Config leaves N unset.
	DefaultKeyBits = 16
	// DefaultPhotonBuffer is the number of symbol batches the simulated
	// quantum channel may hold before Send blocks.
	DefaultPhotonBuffer = 1
)

// A Bit is a single classical bit, 0 or 1.
type Bit uint8

// A Basis is a polarization frame in which a bit is encoded or measured.
type Basis uint8

const (
	// Rectilinear encodes bits as horizontal/vertical polarizations.
	Rectilinear Basis = iota
	// Diagonal encodes bits as diagonal/anti-diagonal polarizations.
	Diagonal
)

// Valid reports whether b is one of the two BB84 bases.
func (b Basis) Valid() bool {
	return b == Rectilinear || b == Diagonal
}

func (b Basis) String() string {
	switch b {
	case Rectilinear:
		return "+"
	case Diagonal:
		return "x"
	}
	return fmt.Sprintf("Basis(%d)", uint8(b))
}

// A Symbol is the observable polarization produced by encoding a Bit under a
// Basis.
type Symbol byte

const (
	H Symbol = 'H' // horizontal, 0°
	V Symbol = 'V' // vertical, 90°
	D Symbol = 'D' // diagonal, 45°
	A Symbol = 'A' // anti-diagonal, 135°
)

// Valid reports whether s is one of the four BB84 polarizations.
func (s Symbol) Valid() bool {
	switch s {
	case H, V, D, A:
		return true
	}
	return false
}

func (s Symbol) String() string {
	if s.Valid() {
		return string(rune(s))
	}
	return fmt.Sprintf("Symbol(%#x)", byte(s))
}

// A RandomBitSource supplies the randomness both parties rely on. Each call is
// independent and uniform over its two-element domain. Implementations report
// exhaustion or failure with an error wrapping ErrSourceUnavailable and never
// substitute non-random values.
type RandomBitSource interface {
	NextBit() (Bit, error)
	NextBasis() (Basis, error)
}

// A Config packages together the parameters of one protocol run. Fields left
// zero-initialized take the defaults documented on each field, except Source,
// which must be provided.
type Config struct {
	// N is the key length in bits. Defaults to DefaultKeyBits.
	N int

	// Source provides the Sender's randomness: key bits and encoding bases.
	// Must be non-nil.
	Source RandomBitSource

	// ReceiverSource provides the Receiver's measurement bases and the
	// outcomes of mismatched measurements. If nil, the Receiver shares Source.
	// NewSession serializes such a shared source itself; NewSender and
	// NewReceiver do not, so callers driving both parties concurrently must
	// pass a source wrapped with Locked. Sharing makes seeded runs depend on
	// goroutine scheduling.
	ReceiverSource RandomBitSource

	// Table is the polarization table used by both parties. Defaults to
	// DefaultTable.
	Table Table

	// PhotonBuffer bounds the simulated quantum channel. Defaults to
	// DefaultPhotonBuffer.
	PhotonBuffer int

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (c Config) withDefaults() (Config, error) {
	if c.Source == nil {
		return c, errors.New("must provide Source")
	}
	if c.N < 0 {
		return c, fmt.Errorf("key length must be positive, got %d", c.N)
	}
	if c.N == 0 {
		c.N = DefaultKeyBits
	}
	if c.ReceiverSource == nil {
		c.ReceiverSource = c.Source
	}
	if c.Table == nil {
		c.Table = DefaultTable
	}
	if c.PhotonBuffer == 0 {
		c.PhotonBuffer = DefaultPhotonBuffer
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c, nil
}
