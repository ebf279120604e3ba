// bb84 runs one simulated BB84 exchange and prints both parties' views of it
// along with the sifted shared secret.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alan-christopher/bb84sim/bb84"
	"github.com/alan-christopher/bb84sim/bb84/entropy"
	"github.com/alan-christopher/bb84sim/bb84/report"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	n       = flag.IntP("n", "n", bb84.DefaultKeyBits, "The length of the key in bits.")
	source  = flag.String("source", "crypto", "The random source: crypto, seeded or qrng.")
	seed    = flag.Int64("seed", 42, "The seed of the seeded source. The receiver uses seed+1.")
	qrngURL = flag.String("qrng-url", "", "The ANU-compatible JSON endpoint of the qrng source. Required with --source=qrng.")
	keyStr  = flag.String("key", "", "A fixed key, e.g. 0110, used instead of a random one. Overrides --n.")
	colored = flag.Bool("color", false, "Highlight the positions where both bases match.")
	angles  = flag.Bool("angles", false, "Show the polarization angle of every photon.")
	stats   = flag.Bool("stats", false, "Print a summary of the run.")
	verbose = flag.BoolP("verbose", "v", false, "Log protocol progress to stderr.")
)

// Exit codes.
const (
	exitOK = iota
	exitError
	exitLengthMismatch
	exitSourceUnavailable
)

func main() {
	flag.Parse()
	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
			os.Exit(exitError)
		}
		log = l
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, log)
	log.Sync()
	stop()
	os.Exit(code)
}

func run(ctx context.Context, log *zap.Logger) int {
	var key bb84.Bits
	if *keyStr != "" {
		k, err := bb84.ParseBits(*keyStr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitError
		}
		key, *n = k, k.Len()
	}
	if *n <= 0 {
		fmt.Fprintf(os.Stderr, "--n must be positive, got %d\n", *n)
		return exitError
	}
	src, rsrc, err := sources()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	s, err := bb84.NewSession(bb84.Config{
		N:              *n,
		Source:         src,
		ReceiverSource: rsrc,
		Logger:         log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	var res bb84.Result
	if key.Len() > 0 {
		res, err = s.RunWithKey(ctx, key)
	} else {
		res, err = s.Run(ctx)
	}
	if err != nil {
		log.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "bb84: %v\n", err)
		return exitCode(err)
	}
	if err := report.Write(os.Stdout, res, report.Options{Color: *colored, Angles: *angles, Stats: *stats}); err != nil {
		fmt.Fprintf(os.Stderr, "writing report: %v\n", err)
		return exitError
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, bb84.ErrLengthMismatch):
		return exitLengthMismatch
	case errors.Is(err, bb84.ErrSourceUnavailable):
		return exitSourceUnavailable
	}
	return exitError
}

func sources() (sender, receiver bb84.RandomBitSource, err error) {
	switch *source {
	case "crypto":
		return entropy.Crypto(), entropy.Crypto(), nil
	case "seeded":
		return entropy.Seeded(*seed), entropy.Seeded(*seed + 1), nil
	case "qrng":
		if *qrngURL == "" {
			return nil, nil, errors.New("--source=qrng needs --qrng-url")
		}
		opts := entropy.QRNGOpts{URL: *qrngURL}
		return entropy.QRNG(opts), entropy.QRNG(opts), nil
	}
	return nil, nil, fmt.Errorf("unknown source %q, want crypto, seeded or qrng", *source)
}
