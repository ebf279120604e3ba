package bb84

import (
	"context"
	"fmt"
	"net"

	"github.com/alan-christopher/bb84sim/bb84/bitmap"
	"github.com/alan-christopher/bb84sim/bb84/photon"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A Result packages together both parties' views of one run and the secret
// they derived.
type Result struct {
	Key      Bits
	Encoded  EncodedSequence
	Measured Measurement
	Secret   Bits
	Stats    Stats
}

// A Session runs the Sender and Receiver of one configuration against each
// other.
type Session struct {
	cfg Config
	log *zap.Logger
}

// NewSession returns a new Session, configured in accordance with cfg, or an
// error if the options are nonsensical.
func NewSession(cfg Config) (*Session, error) {
	if cfg.ReceiverSource == nil && cfg.Source != nil {
		cfg.Source = Locked(cfg.Source)
		cfg.ReceiverSource = cfg.Source
	}
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if _, err := NewCodec(cfg.Table, cfg.Source); err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, log: cfg.Logger.Named("session")}, nil
}

// Run draws a fresh key from the Sender's source and runs the protocol on it.
func (s *Session) Run(ctx context.Context) (Result, error) {
	key, err := GenerateKey(s.cfg.Source, s.cfg.N)
	if err != nil {
		return Result{}, err
	}
	return s.RunWithKey(ctx, key)
}

// RunWithKey runs the protocol on a caller-supplied key, which must have the
// configured length.
//
// Encoding and decoding proceed concurrently: the Sender transmits symbols
// over a simulated quantum channel, then both parties announce their bases
// over a classical channel. Sifting starts only once both sides are done.
func (s *Session) RunWithKey(ctx context.Context, key Bits) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if key.Len() != s.cfg.N {
		return Result{}, fmt.Errorf("%w: key has %d bits, expected %d", ErrLengthMismatch, key.Len(), s.cfg.N)
	}
	sender, err := NewSender(key, s.cfg)
	if err != nil {
		return Result{}, err
	}
	receiver, err := NewReceiver(s.cfg)
	if err != nil {
		return Result{}, err
	}
	reconciler, err := NewReconciler(s.cfg)
	if err != nil {
		return Result{}, err
	}

	qSend, qRecv := photon.NewSimulatedChannel(s.cfg.PhotonBuffer)
	aConn, bConn := net.Pipe()
	defer aConn.Close()
	defer bConn.Close()

	g, gctx := errgroup.WithContext(ctx)
	// net.Pipe() ignores contexts, so unblock both sides when either fails.
	stop := context.AfterFunc(gctx, func() {
		aConn.Close()
		bConn.Close()
	})
	defer stop()

	var (
		encoded          EncodedSequence
		measured         Measurement
		aStats, bStats   Stats
		announcedReceive Bases
		announcedSend    Bases
	)
	g.Go(func() error {
		var err error
		if encoded, err = sender.Encode(); err != nil {
			return err
		}
		if err := qSend.Send(gctx, symbolsToPulses(encoded.symbols)); err != nil {
			return fmt.Errorf("sending photons: %w", err)
		}
		fa := &framer{rw: aConn}
		if announcedReceive, err = fa.ReadBases(&aStats); err != nil {
			return fmt.Errorf("receiving basis announcement: %w", err)
		}
		if err := fa.WriteBases(encoded.Bases(), &aStats); err != nil {
			return fmt.Errorf("announcing bases: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		pulses, err := qRecv.Receive(gctx)
		if err != nil {
			return fmt.Errorf("receiving photons: %w", err)
		}
		if measured, err = receiver.Decode(pulsesToSymbols(pulses)); err != nil {
			return err
		}
		fb := &framer{rw: bConn}
		if err := fb.WriteBases(measured.Bases(), &bStats); err != nil {
			return fmt.Errorf("announcing bases: %w", err)
		}
		if announcedSend, err = fb.ReadBases(&bStats); err != nil {
			return fmt.Errorf("receiving basis announcement: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if err := confirmAnnouncement(encoded.Bases(), announcedSend); err != nil {
		return Result{}, fmt.Errorf("sender announcement: %w", err)
	}
	if err := confirmAnnouncement(measured.Bases(), announcedReceive); err != nil {
		return Result{}, fmt.Errorf("receiver announcement: %w", err)
	}
	secret, err := reconciler.Sift(
		PartyView{Bases: announcedSend, Bits: key},
		PartyView{Bases: announcedReceive, Bits: measured.Bits()},
	)
	if err != nil {
		return Result{}, fmt.Errorf("sifting: %w", err)
	}
	stats := Stats{
		KeyBits:          key.Len(),
		BasisMatches:     bitmap.CountOnes(bitmap.XNor(encoded.bases.d, measured.bases.d)),
		SecretBits:       secret.Len(),
		MessagesSent:     aStats.MessagesSent + bStats.MessagesSent,
		MessagesReceived: aStats.MessagesReceived + bStats.MessagesReceived,
		BytesSent:        aStats.BytesSent + bStats.BytesSent,
		BytesRead:        aStats.BytesRead + bStats.BytesRead,
	}
	s.log.Debug("run complete",
		zap.Int("key_bits", stats.KeyBits),
		zap.Int("basis_matches", stats.BasisMatches),
		zap.Int("secret_bits", stats.SecretBits))
	return Result{
		Key:      key,
		Encoded:  encoded,
		Measured: measured,
		Secret:   secret,
		Stats:    stats,
	}, nil
}

// confirmAnnouncement checks that the bases a party announced arrived intact
// on the other side of the classical channel.
func confirmAnnouncement(chosen, heard Bases) error {
	if chosen.Len() != heard.Len() {
		return fmt.Errorf("%w: announced %d bases, heard %d", ErrLengthMismatch, chosen.Len(), heard.Len())
	}
	if !chosen.Equal(heard) {
		return fmt.Errorf("%w: announced %v, heard %v", ErrAnnouncementMismatch, chosen, heard)
	}
	return nil
}

func symbolsToPulses(syms []Symbol) []byte {
	r := make([]byte, len(syms))
	for i, s := range syms {
		r[i] = byte(s)
	}
	return r
}

func pulsesToSymbols(pulses []byte) []Symbol {
	r := make([]Symbol, len(pulses))
	for i, p := range pulses {
		r[i] = Symbol(p)
	}
	return r
}
