package bb84

import (
	"errors"
	"fmt"
	"sync"
)

// A syncSource serializes access to a RandomBitSource shared by both parties.
type syncSource struct {
	mu  sync.Mutex
	src RandomBitSource
}

// Locked returns a RandomBitSource serializing every draw from src, so that
// one source may feed a Sender and a Receiver running concurrently. Locking
// an already locked source returns it unchanged.
func Locked(src RandomBitSource) RandomBitSource {
	if s, ok := src.(*syncSource); ok {
		return s
	}
	return &syncSource{src: src}
}

func (s *syncSource) NextBit() (Bit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.NextBit()
}

func (s *syncSource) NextBasis() (Basis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.NextBasis()
}

// sourceErr wraps a failure of a RandomBitSource so that callers can always
// match it against ErrSourceUnavailable.
func sourceErr(op string, err error) error {
	if errors.Is(err, ErrSourceUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrSourceUnavailable, err)
}

func nextBasis(src RandomBitSource) (Basis, error) {
	b, err := src.NextBasis()
	if err != nil {
		return 0, sourceErr("drawing basis", err)
	}
	if !b.Valid() {
		return 0, fmt.Errorf("drawing basis: %w: got %v", ErrSourceUnavailable, b)
	}
	return b, nil
}

func nextBit(src RandomBitSource) (Bit, error) {
	b, err := src.NextBit()
	if err != nil {
		return 0, sourceErr("drawing bit", err)
	}
	if b > 1 {
		return 0, fmt.Errorf("drawing bit: %w: got %d", ErrSourceUnavailable, b)
	}
	return b, nil
}

// GenerateKey draws an n-bit key from src.
func GenerateKey(src RandomBitSource, n int) (Bits, error) {
	if n <= 0 {
		return Bits{}, fmt.Errorf("%w: key length must be positive, got %d", ErrLengthMismatch, n)
	}
	bs := make([]Bit, n)
	for i := range bs {
		b, err := nextBit(src)
		if err != nil {
			return Bits{}, fmt.Errorf("generating key bit %d: %w", i, err)
		}
		bs[i] = b
	}
	return NewBits(bs...), nil
}
