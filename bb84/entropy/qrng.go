package entropy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alan-christopher/bb84sim/bb84"
)

// ErrNoQRNGEndpoint is reported, wrapped in bb84.ErrSourceUnavailable, by a
// QRNG source constructed without a URL.
var ErrNoQRNGEndpoint = errors.New("no QRNG endpoint configured")

var (
	// DefaultQRNGTimeout bounds a single request to the QRNG service.
	DefaultQRNGTimeout = 10 * time.Second
	// DefaultQRNGBatch is the number of bytes fetched per request.
	DefaultQRNGBatch = 128
)

// QRNGOpts configures a source backed by a remote quantum random number
// generator. URL is required and must speak the ANU JSON API
// (?length=N&type=uint8); ANU's own keyless endpoint has been retired, so
// there is no default. Other zero fields take the package defaults.
type QRNGOpts struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Batch   int
}

type qrngResponse struct {
	Type    string `json:"type"`
	Length  int    `json:"length"`
	Data    []int  `json:"data"`
	Success bool   `json:"success"`
}

// QRNG returns a source fetching bytes from an ANU-compatible QRNG service.
// Any transport, HTTP or decoding failure surfaces as
// bb84.ErrSourceUnavailable; the source never falls back to a local
// generator.
func QRNG(opts QRNGOpts) bb84.RandomBitSource {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultQRNGTimeout
	}
	if opts.Batch == 0 {
		opts.Batch = DefaultQRNGBatch
	}
	return newByteSource(opts.Batch, func(p []byte) (int, error) {
		ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
		defer cancel()
		if err := fetchQRNG(ctx, opts, p); err != nil {
			return 0, err
		}
		return len(p), nil
	})
}

func fetchQRNG(ctx context.Context, opts QRNGOpts, p []byte) error {
	if opts.URL == "" {
		return ErrNoQRNGEndpoint
	}
	u, err := url.Parse(opts.URL)
	if err != nil {
		return fmt.Errorf("parsing QRNG URL: %w", err)
	}
	q := u.Query()
	q.Set("length", strconv.Itoa(len(p)))
	q.Set("type", "uint8")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := opts.Client.Do(req)
	if err != nil {
		return fmt.Errorf("querying QRNG: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("querying QRNG: %s", resp.Status)
	}
	var r qrngResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("decoding QRNG response: %w", err)
	}
	if !r.Success {
		return fmt.Errorf("QRNG reported failure")
	}
	if len(r.Data) != len(p) {
		return fmt.Errorf("QRNG returned %d bytes, requested %d", len(r.Data), len(p))
	}
	for i, v := range r.Data {
		if v < 0 || v > 255 {
			return fmt.Errorf("QRNG returned out of range byte %d", v)
		}
		p[i] = byte(v)
	}
	return nil
}
