package photon

import (
	"context"
	"fmt"
)

var (
	_ Sender   = (*SimulatedSender)(nil)
	_ Receiver = (*SimulatedReceiver)(nil)
)

// NewSimulatedChannel creates a pair of (Sender, Receiver) structs simulating a
// quantum channel. Each call to Send() is expected to be mirrored by a call to
// Receive(). Send() blocks once bufSize batches are in flight.
func NewSimulatedChannel(bufSize int) (*SimulatedSender, *SimulatedReceiver) {
	pulses := make(chan []byte, bufSize)
	return &SimulatedSender{pulses: pulses}, &SimulatedReceiver{pulses: pulses}
}

// A SimulatedSender is the sending end of a simulated channel.
type SimulatedSender struct {
	pulses chan<- []byte
}

// A SimulatedReceiver is the receiving end of a simulated channel.
type SimulatedReceiver struct {
	pulses <-chan []byte
}

// Send implements the Sender interface. The batch is copied, so callers may
// reuse pulses once Send returns.
func (ss *SimulatedSender) Send(ctx context.Context, pulses []byte) error {
	if len(pulses) == 0 {
		return ErrEmptyBatch
	}
	for i, p := range pulses {
		if _, ok := angles[p]; !ok {
			return fmt.Errorf("pulse %d has unknown polarization %q", i, p)
		}
	}
	batch := make([]byte, len(pulses))
	copy(batch, pulses)
	select {
	case ss.pulses <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no further batches will be sent.
func (ss *SimulatedSender) Close() {
	close(ss.pulses)
}

// Receive implements the Receiver interface.
func (sr *SimulatedReceiver) Receive(ctx context.Context) ([]byte, error) {
	select {
	case batch, ok := <-sr.pulses:
		if !ok {
			return nil, fmt.Errorf("receiving photons: channel closed")
		}
		return batch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
