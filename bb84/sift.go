package bb84

import (
	"fmt"

	"github.com/alan-christopher/bb84sim/bb84/bitmap"
	"go.uber.org/zap"
)

// A PartyView is what one party contributes to sifting: the bases it chose
// and the bits it holds at each position.
type PartyView struct {
	Bases Bases
	Bits  Bits
}

// Sift returns the bits at the positions where sender and receiver chose the
// same basis and hold the same bit. All four sequences must have equal,
// non-zero length. Sift is pure; it never modifies its arguments.
func Sift(sender, receiver PartyView) (Bits, error) {
	n := sender.Bits.Len()
	if n == 0 {
		return Bits{}, fmt.Errorf("%w: nothing to sift", ErrLengthMismatch)
	}
	for _, l := range []struct {
		name string
		len  int
	}{
		{"sender bases", sender.Bases.Len()},
		{"receiver bases", receiver.Bases.Len()},
		{"receiver bits", receiver.Bits.Len()},
	} {
		if l.len != n {
			return Bits{}, fmt.Errorf("%w: %s has length %d, sender bits %d", ErrLengthMismatch, l.name, l.len, n)
		}
	}
	mask := bitmap.And(
		bitmap.XNor(sender.Bases.d, receiver.Bases.d),
		bitmap.XNor(sender.Bits.d, receiver.Bits.d))
	return Bits{d: bitmap.Select(sender.Bits.d, mask)}, nil
}

// A Reconciler sifts transmissions of a fixed key length.
type Reconciler struct {
	n   int
	log *zap.Logger
}

// NewReconciler returns a Reconciler for cfg.N-bit transmissions. Source is
// not consulted and may be nil.
func NewReconciler(cfg Config) (*Reconciler, error) {
	if cfg.N < 0 {
		return nil, fmt.Errorf("key length must be positive, got %d", cfg.N)
	}
	n := cfg.N
	if n == 0 {
		n = DefaultKeyBits
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{n: n, log: log.Named("reconciler")}, nil
}

// Sift behaves like the package-level Sift, additionally requiring both
// parties' sequences to have the Reconciler's configured length.
func (r *Reconciler) Sift(sender, receiver PartyView) (Bits, error) {
	if sender.Bits.Len() != r.n {
		return Bits{}, fmt.Errorf("%w: sender has %d bits, expected %d", ErrLengthMismatch, sender.Bits.Len(), r.n)
	}
	secret, err := Sift(sender, receiver)
	if err != nil {
		return Bits{}, err
	}
	r.log.Debug("sifted", zap.Int("bits", r.n), zap.Int("secret", secret.Len()))
	return secret, nil
}
