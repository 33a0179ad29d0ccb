// Package test contains functions to help test lazybinary encodings.
package test

import (
	"fmt"
	"testing"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/encoding"
)

// Column builds a block of the encoding type holding the given values, which
// are converted with lazybinary.Append.
func Column(t testing.TB, enc encoding.Encoding, values ...interface{}) lazybinary.Block {
	t.Helper()
	b := enc.Type().NewBuilder(len(values))
	for i, v := range values {
		if err := lazybinary.Append(b, v); err != nil {
			t.Fatalf("appending value %d to %s column: %v", i, enc, err)
		}
	}
	return b.Build()
}

// RoundTrip encodes a column of the given values with enc, decodes it back
// and fails the test if the decoded values differ from the originals. The
// decoded block is returned.
func RoundTrip(t testing.TB, enc encoding.Encoding, values ...interface{}) lazybinary.Block {
	t.Helper()
	block := Column(t, enc, values...)

	buf, lengths, err := encoding.EncodeColumn(enc, nil, block)
	if err != nil {
		t.Fatalf("encoding %d values: %v", len(values), err)
	}

	b := enc.Type().NewBuilder(len(values))
	if err := encoding.DecodeColumn(enc, b, buf, lengths); err != nil {
		t.Fatalf("decoding %d values: %v", len(values), err)
	}
	res := b.Build()

	if err := assertEqual(lazybinary.Objects(block), lazybinary.Objects(res)); err != nil {
		t.Fatalf("testing %d values of %s: %v", len(values), enc, err)
	}
	return res
}

func assertEqual(want, got []interface{}) error {
	if len(want) != len(got) {
		return fmt.Errorf("number of values mismatch: want=%d got=%d", len(want), len(got))
	}

	for i := range want {
		w, g := lazybinary.FormatObject(want[i]), lazybinary.FormatObject(got[i])
		if w != g {
			return fmt.Errorf("values at index %d/%d mismatch: want=%s got=%s", i, len(want), w, g)
		}
	}

	return nil
}
