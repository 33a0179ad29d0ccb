package test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// AssertBytes fails the test if got differs from want, reporting a unified
// diff of the hex dumps of both byte sequences.
func AssertBytes(t testing.TB, want, got []byte, msgAndArgs ...interface{}) bool {
	t.Helper()
	if bytes.Equal(want, got) {
		return true
	}
	w, g := hex.Dump(want), hex.Dump(got)
	edits := myers.ComputeEdits(span.URIFromPath("want"), w, g)
	diff := fmt.Sprint(gotextdiff.ToUnified("want", "got", w, edits))
	msg := ""
	if len(msgAndArgs) > 0 {
		format, _ := msgAndArgs[0].(string)
		msg = fmt.Sprintf(format, msgAndArgs[1:]...) + "\n"
	}
	t.Errorf("%sbyte sequences differ (want %d bytes, got %d bytes):\n%s", msg, len(want), len(got), diff)
	return false
}

// Bytes builds a byte slice from a mix of bytes, ints, runes, byte slices and
// strings, which keeps expected encodings readable in tests. Ints and runes
// are truncated to their low byte.
func Bytes(parts ...interface{}) []byte {
	var b []byte
	for _, p := range parts {
		switch v := p.(type) {
		case byte:
			b = append(b, v)
		case int:
			b = append(b, byte(v))
		case rune:
			b = append(b, byte(v))
		case []byte:
			b = append(b, v...)
		case string:
			b = append(b, v...)
		default:
			panic(fmt.Sprintf("unsupported byte part %T", p))
		}
	}
	return b
}
