package bb84

import "errors"

var (
	// ErrSourceUnavailable indicates the random source could not produce a
	// bit or basis.
	ErrSourceUnavailable = errors.New("random source unavailable")

	// ErrLengthMismatch indicates two sequences that must have equal length
	// do not, or that a sequence is empty.
	ErrLengthMismatch = errors.New("sequence length mismatch")

	// ErrInvalidSymbol indicates a symbol outside the polarization table was
	// presented for decoding.
	ErrInvalidSymbol = errors.New("invalid polarization symbol")

	// ErrAnnouncementMismatch indicates the bases one party heard on the
	// classical channel differ from those the other party announced.
	ErrAnnouncementMismatch = errors.New("basis announcement mismatch")
)
