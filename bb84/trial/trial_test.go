package trial

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/alan-christopher/bb84sim/bb84"
	"github.com/alan-christopher/bb84sim/bb84/entropy"
)

func TestRunConvergesToHalf(t *testing.T) {
	sum, err := Run(context.Background(), Options{N: 64, Trials: 400, Seed: 11})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The mean of 400 Binomial(64, 1/2) draws has a standard error of 0.2.
	if math.Abs(sum.MeanSecretBits-32) > 1.5 {
		t.Errorf("mean secret length %.2f, want about 32", sum.MeanSecretBits)
	}
	// A single Binomial(64, 1/2) draw has a standard deviation of 4.
	if sum.StdDevSecretBits < 2.5 || sum.StdDevSecretBits > 5.5 {
		t.Errorf("secret length std dev %.2f, want about 4", sum.StdDevSecretBits)
	}
	if sum.MinSecretBits > sum.MaxSecretBits || sum.MaxSecretBits > 64 {
		t.Errorf("implausible range [%d, %d]", sum.MinSecretBits, sum.MaxSecretBits)
	}
	if math.Abs(sum.SecretRatio-0.5) > 0.03 {
		t.Errorf("secret ratio %.3f, want about 0.5", sum.SecretRatio)
	}
}

func TestRunReproducible(t *testing.T) {
	a, err := Run(context.Background(), Options{N: 32, Trials: 10, Seed: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(context.Background(), Options{N: 32, Trials: 10, Seed: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a != b {
		t.Errorf("seeded runs differ: %+v vs %+v", a, b)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(context.Background(), Options{N: 0, Trials: 1}); err == nil {
		t.Errorf("Run accepted N=0")
	}
	if _, err := Run(context.Background(), Options{N: 4, Trials: 0}); err == nil {
		t.Errorf("Run accepted zero trials")
	}
	_, err := Run(context.Background(), Options{
		N:      4,
		Trials: 3,
		Sources: func(i int) (bb84.RandomBitSource, bb84.RandomBitSource) {
			return entropy.MustScript("", ""), entropy.Seeded(1)
		},
	})
	if !errors.Is(err, bb84.ErrSourceUnavailable) {
		t.Errorf("Run with an empty source == %v, want %v", err, bb84.ErrSourceUnavailable)
	}
}
