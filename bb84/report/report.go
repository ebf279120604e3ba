// Package report renders a BB84 run as a side-by-side text table.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alan-christopher/bb84sim/bb84"
	"github.com/alan-christopher/bb84sim/bb84/photon"
	"github.com/fatih/color"
)

// Options controls optional parts of a report.
type Options struct {
	// Color highlights the columns where both parties chose the same basis.
	Color bool
	// Angles adds a row of polarization angles for the transmitted photons.
	Angles bool
	// Stats appends a summary of the run.
	Stats bool
}

// Write renders r to w: the Sender's bits, bases and symbols, the Receiver's
// bases and bits, a separator, and the shared secret.
func Write(w io.Writer, r bb84.Result, opts Options) error {
	n := r.Key.Len()
	match := make([]bool, n)
	for i := range match {
		match[i] = r.Encoded.Bases().At(i) == r.Measured.Bases().At(i)
	}
	hl := color.New(color.FgGreen, color.Bold)
	if opts.Color {
		hl.EnableColor()
	} else {
		hl.DisableColor()
	}
	cell := func(i int, s string) string {
		if match[i] {
			return hl.Sprint(s)
		}
		return s
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	row := func(label string, f func(i int) string) {
		cells := make([]string, n)
		for i := range cells {
			cells[i] = cell(i, f(i))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", label, strings.Join(cells, "\t"))
	}
	symbols := r.Encoded.Symbols()
	row("sender bits", func(i int) string { return fmt.Sprint(r.Key.At(i)) })
	row("sender bases", func(i int) string { return r.Encoded.Bases().At(i).String() })
	row("photons", func(i int) string { return symbols[i].String() })
	if opts.Angles {
		row("angles", func(i int) string {
			a, _ := photon.Angle(byte(symbols[i]))
			return fmt.Sprint(a)
		})
	}
	row("receiver bases", func(i int) string { return r.Measured.Bases().At(i).String() })
	row("receiver bits", func(i int) string { return fmt.Sprint(r.Measured.Bits().At(i)) })
	if err := tw.Flush(); err != nil {
		return err
	}

	width := len("receiver bases ") + 2*n
	if opts.Angles {
		width = len("receiver bases ") + 4*n
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", width)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "shared secret  %s\n", spaced(r.Secret.String())); err != nil {
		return err
	}
	if opts.Stats {
		s := r.Stats
		_, err := fmt.Fprintf(w, "\n%d of %d bases matched, %d secret bits, %d classical messages (%d bytes)\n",
			s.BasisMatches, s.KeyBits, s.SecretBits, s.MessagesSent, s.BytesSent)
		return err
	}
	return nil
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
