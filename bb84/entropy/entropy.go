// Package entropy provides RandomBitSource implementations for the bb84
// package.
//
// Every source derives a bit from a single random bit of its underlying
// generator, so bits and bases are exactly uniform. None of the sources are
// safe for concurrent use.
package entropy

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/rand"

	"github.com/alan-christopher/bb84sim/bb84"
)

// A byteSource hands out the bits of a byte stream one at a time, least
// significant first. fill reports how many leading bytes of its argument it
// wrote; only those bits are handed out.
type byteSource struct {
	fill func([]byte) (int, error)
	buf  []byte
	end  int
	pos  int
}

func (b *byteSource) next() (bool, error) {
	if b.pos == b.end*8 {
		n, err := b.fill(b.buf)
		if n == 0 && err == nil {
			err = io.ErrNoProgress
		}
		if n == 0 {
			return false, fmt.Errorf("%w: %w", bb84.ErrSourceUnavailable, err)
		}
		b.end, b.pos = n, 0
	}
	bit := b.buf[b.pos/8]&(1<<(b.pos%8)) != 0
	b.pos++
	return bit, nil
}

func (b *byteSource) NextBit() (bb84.Bit, error) {
	v, err := b.next()
	if err != nil {
		return 0, err
	}
	if v {
		return 1, nil
	}
	return 0, nil
}

func (b *byteSource) NextBasis() (bb84.Basis, error) {
	v, err := b.next()
	if err != nil {
		return 0, err
	}
	if v {
		return bb84.Diagonal, nil
	}
	return bb84.Rectilinear, nil
}

func newByteSource(bufBytes int, fill func([]byte) (int, error)) *byteSource {
	return &byteSource{fill: fill, buf: make([]byte, bufBytes)}
}

// Crypto returns a source reading from the operating system's
// cryptographically secure generator.
func Crypto() bb84.RandomBitSource {
	return Reader(crand.Reader)
}

// Reader returns a source consuming the bytes of r. Every byte r yields is
// used; once r is exhausted or fails, draws fail with
// bb84.ErrSourceUnavailable.
func Reader(r io.Reader) bb84.RandomBitSource {
	return newByteSource(64, func(p []byte) (int, error) {
		return io.ReadAtLeast(r, p, 1)
	})
}

// Seeded returns a reproducible pseudo-random source. It is meant for
// experiments and tests; its output is predictable.
func Seeded(seed int64) bb84.RandomBitSource {
	r := rand.New(rand.NewSource(seed))
	return newByteSource(8, r.Read)
}
