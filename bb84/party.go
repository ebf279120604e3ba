package bb84

import (
	"fmt"

	"go.uber.org/zap"
)

// A Sender owns a key and prepares one polarized symbol per key bit.
type Sender struct {
	key   Bits
	codec *Codec
	src   RandomBitSource
	log   *zap.Logger
}

// A Receiver measures the symbols it is handed, each in a basis of its own
// choosing.
type Receiver struct {
	n     int
	codec *Codec
	src   RandomBitSource
	log   *zap.Logger
}

// NewSender returns a Sender owning key, drawing encoding bases from
// cfg.Source.
func NewSender(key Bits, cfg Config) (*Sender, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if key.Len() == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrLengthMismatch)
	}
	codec, err := NewCodec(cfg.Table, cfg.Source)
	if err != nil {
		return nil, err
	}
	return &Sender{
		key:   key,
		codec: codec,
		src:   cfg.Source,
		log:   cfg.Logger.Named("sender"),
	}, nil
}

// NewReceiver returns a Receiver expecting cfg.N symbols per transmission,
// drawing measurement bases from cfg.ReceiverSource.
func NewReceiver(cfg Config) (*Receiver, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	codec, err := NewCodec(cfg.Table, cfg.ReceiverSource)
	if err != nil {
		return nil, err
	}
	return &Receiver{
		n:     cfg.N,
		codec: codec,
		src:   cfg.ReceiverSource,
		log:   cfg.Logger.Named("receiver"),
	}, nil
}

// Key returns the Sender's key.
func (s *Sender) Key() Bits {
	return s.key
}

// Encode prepares every key bit in a freshly drawn basis. Each call draws new
// bases and returns a new EncodedSequence.
func (s *Sender) Encode() (EncodedSequence, error) {
	n := s.key.Len()
	bases := make([]Basis, n)
	symbols := make([]Symbol, n)
	for i := 0; i < n; i++ {
		basis, err := nextBasis(s.src)
		if err != nil {
			return EncodedSequence{}, fmt.Errorf("encoding bit %d: %w", i, err)
		}
		bases[i] = basis
		symbols[i] = s.codec.Encode(s.key.At(i), basis)
	}
	s.log.Debug("encoded key", zap.Int("bits", n))
	return EncodedSequence{bases: NewBases(bases...), symbols: symbols}, nil
}

// Decode measures each of symbols in an independently drawn basis. The
// number of symbols must equal the Receiver's configured key length.
func (r *Receiver) Decode(symbols []Symbol) (Measurement, error) {
	if len(symbols) == 0 || len(symbols) != r.n {
		return Measurement{}, fmt.Errorf("%w: received %d symbols, expected %d",
			ErrLengthMismatch, len(symbols), r.n)
	}
	bases := make([]Basis, len(symbols))
	bits := make([]Bit, len(symbols))
	for i, sym := range symbols {
		basis, err := nextBasis(r.src)
		if err != nil {
			return Measurement{}, fmt.Errorf("decoding symbol %d: %w", i, err)
		}
		bit, err := r.codec.Decode(sym, basis)
		if err != nil {
			return Measurement{}, fmt.Errorf("decoding symbol %d: %w", i, err)
		}
		bases[i], bits[i] = basis, bit
	}
	r.log.Debug("decoded symbols", zap.Int("symbols", len(symbols)))
	return Measurement{bases: NewBases(bases...), bits: NewBits(bits...)}, nil
}
