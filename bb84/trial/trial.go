// Package trial runs many independent BB84 sessions and summarises how much
// key material sifting retains.
package trial

import (
	"context"
	"fmt"

	"github.com/alan-christopher/bb84sim/bb84"
	"github.com/alan-christopher/bb84sim/bb84/entropy"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Options configures a batch of trials.
type Options struct {
	// N is the key length of every trial. Must be positive.
	N int
	// Trials is the number of sessions to run. Must be positive.
	Trials int
	// Sources returns the sender and receiver sources for the i-th trial.
	// Defaults to seeded sources derived from Seed.
	Sources func(i int) (sender, receiver bb84.RandomBitSource)
	// Seed seeds the default Sources.
	Seed int64
	// Logger receives per-trial debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// A Summary packages together statistics over a batch of trials.
type Summary struct {
	N      int
	Trials int

	MeanSecretBits   float64
	StdDevSecretBits float64

	// SecretRatio is MeanSecretBits / N, which tends to 1/2.
	SecretRatio   float64
	MinSecretBits int
	MaxSecretBits int
}

// Run runs opts.Trials sessions and summarises their secret lengths. The
// first failing trial aborts the batch.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.N <= 0 {
		return Summary{}, fmt.Errorf("key length must be positive, got %d", opts.N)
	}
	if opts.Trials <= 0 {
		return Summary{}, fmt.Errorf("trial count must be positive, got %d", opts.Trials)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sources == nil {
		seed := opts.Seed
		opts.Sources = func(i int) (bb84.RandomBitSource, bb84.RandomBitSource) {
			return entropy.Seeded(seed + 2*int64(i)), entropy.Seeded(seed + 2*int64(i) + 1)
		}
	}

	lens := make([]float64, 0, opts.Trials)
	sum := Summary{N: opts.N, Trials: opts.Trials, MinSecretBits: opts.N}
	for i := 0; i < opts.Trials; i++ {
		src, rsrc := opts.Sources(i)
		s, err := bb84.NewSession(bb84.Config{
			N:              opts.N,
			Source:         src,
			ReceiverSource: rsrc,
			Logger:         opts.Logger,
		})
		if err != nil {
			return Summary{}, err
		}
		res, err := s.Run(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("trial %d: %w", i, err)
		}
		l := res.Secret.Len()
		lens = append(lens, float64(l))
		if l < sum.MinSecretBits {
			sum.MinSecretBits = l
		}
		if l > sum.MaxSecretBits {
			sum.MaxSecretBits = l
		}
		opts.Logger.Debug("trial complete", zap.Int("trial", i), zap.Int("secret_bits", l))
	}
	sum.MeanSecretBits, sum.StdDevSecretBits = stat.MeanStdDev(lens, nil)
	sum.SecretRatio = sum.MeanSecretBits / float64(opts.N)
	return sum, nil
}
