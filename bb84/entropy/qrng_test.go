package entropy

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alan-christopher/bb84sim/bb84"
)

func TestQRNG(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if got := r.URL.Query().Get("type"); got != "uint8" {
			t.Errorf("requested type %q, want uint8", got)
		}
		n, err := strconv.Atoi(r.URL.Query().Get("length"))
		if err != nil {
			t.Errorf("bad length: %v", err)
		}
		data := make([]string, n)
		for i := range data {
			data[i] = "255"
		}
		fmt.Fprintf(w, `{"type":"uint8","length":%d,"data":[%s],"success":true}`, n, strings.Join(data, ","))
	}))
	defer srv.Close()

	src := QRNG(QRNGOpts{URL: srv.URL, Client: srv.Client(), Batch: 2})
	for i := 0; i < 17; i++ {
		b, err := src.NextBit()
		if err != nil {
			t.Fatalf("NextBit: %v", err)
		}
		if b != 1 {
			t.Fatalf("bit %d == %d, want 1", i, b)
		}
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("made %d requests for 17 bits in 2-byte batches, want 2", n)
	}
}

func TestQRNGUnavailable(t *testing.T) {
	tcs := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>")
		}},
		{"failure", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":false}`)
		}},
		{"short", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"type":"uint8","length":1,"data":[3],"success":true}`)
		}},
		{"out of range", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"type":"uint8","length":2,"data":[3,300],"success":true}`)
		}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			src := QRNG(QRNGOpts{URL: srv.URL, Client: srv.Client(), Batch: 2})
			if _, err := src.NextBasis(); !errors.Is(err, bb84.ErrSourceUnavailable) {
				t.Errorf("NextBasis == %v, want %v", err, bb84.ErrSourceUnavailable)
			}
		})
	}
}

func TestQRNGNoEndpoint(t *testing.T) {
	src := QRNG(QRNGOpts{})
	_, err := src.NextBit()
	if !errors.Is(err, bb84.ErrSourceUnavailable) {
		t.Errorf("NextBit == %v, want %v", err, bb84.ErrSourceUnavailable)
	}
	if !errors.Is(err, ErrNoQRNGEndpoint) {
		t.Errorf("NextBit == %v, want %v", err, ErrNoQRNGEndpoint)
	}
}
