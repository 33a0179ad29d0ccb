//go:build go1.18
// +build go1.18

// Package fuzz contains functions to help fuzz test lazybinary encodings.
package fuzz

import (
	"errors"
	"testing"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/encoding"
)

// Decode fuzzes the decoder of e with arbitrary top-level values.
//
// Decoding must either fail with a malformed input or schema mismatch error,
// or produce a value which encodes and decodes back to itself.
func Decode(f *testing.F, e encoding.Encoding, seeds ...[]byte) {
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		b := e.Type().NewBuilder(1)
		if err := encoding.Decode(e, b, input, 0); err != nil {
			if !errors.Is(err, encoding.ErrMalformedInput) && !errors.Is(err, encoding.ErrSchemaMismatch) {
				t.Fatalf("unexpected error decoding %x: %v", input, err)
			}
			return
		}
		block := b.Build()
		if block.Len() != 1 {
			t.Fatalf("decoding one value produced %d positions", block.Len())
		}
		want := lazybinary.FormatObject(lazybinary.Object(block, 0))

		buf, err := e.Encode(nil, block, 0)
		if err != nil {
			t.Fatalf("encoding %s: %v", want, err)
		}
		b = e.Type().NewBuilder(1)
		if err := encoding.Decode(e, b, buf, 0); err != nil {
			t.Fatalf("decoding %s: %v", want, err)
		}
		if got := lazybinary.FormatObject(lazybinary.Object(b.Build(), 0)); got != want {
			t.Fatalf("value mismatch after re-encoding: want=%s got=%s", want, got)
		}
	})
}
