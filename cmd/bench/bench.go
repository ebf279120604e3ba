// bench.go runs batches of BB84 sessions for each entry in the cartesian
// product of key lengths and trial counts, and outputs a CSV of secret length
// statistics for each combination.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/template"

	"github.com/alan-christopher/bb84sim/bb84/trial"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	ns      = flag.IntSlice("n", []int{16, 64, 256, 1024}, "The key lengths, in bits, to simulate.")
	trials  = flag.IntSlice("trials", []int{1000}, "The number of sessions to run per key length.")
	seed    = flag.Int64("seed", 42, "The base seed for the pseudo-random sources.")
	verbose = flag.BoolP("verbose", "v", false, "Log per-trial progress to stderr.")
)

var columns = []string{"N", "Trials", "MeanSecretBits", "StdDevSecretBits", "SecretRatio",
	"MinSecretBits", "MaxSecretBits"}

func main() {
	flag.Parse()
	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Building logger: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	fmt.Println(header())
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	for _, n := range *ns {
		for _, t := range *trials {
			sum, err := trial.Run(context.Background(), trial.Options{
				N:      n,
				Trials: t,
				Seed:   *seed,
				Logger: logger,
			})
			if err != nil {
				log.Fatalf("Benching (n: %d, trials: %d): %v", n, t, err)
			}
			if err := tmpl.Execute(os.Stdout, sum); err != nil {
				log.Fatalf("BUG: could not fill in line template: %v", err)
			}
		}
	}
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}
