// Package photon provides a simulated quantum channel carrying linearly
// polarized photons from a Sender to a Receiver.
//
// Photons are identified by their polarization label: 'H' (0°), 'V' (90°),
// 'D' (45°) or 'A' (135°). Only the polarizations travel over the channel;
// the basis each was prepared in stays with the sender.
package photon

import (
	"context"
	"errors"
)

// ErrEmptyBatch is returned when a batch without photons is sent.
var ErrEmptyBatch = errors.New("empty photon batch")

// A Sender sends batches of polarized photons to a Receiver.
type Sender interface {
	Send(ctx context.Context, pulses []byte) error
}

// A Receiver receives batches of polarized photons, in the order they were
// sent.
type Receiver interface {
	Receive(ctx context.Context) ([]byte, error)
}

var angles = map[byte]int{
	'H': 0,
	'D': 45,
	'V': 90,
	'A': 135,
}

// Angle returns the polarization angle of label in degrees, and false if
// label is not a known polarization.
func Angle(label byte) (int, bool) {
	a, ok := angles[label]
	return a, ok
}
