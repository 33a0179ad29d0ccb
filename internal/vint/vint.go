// Package vint implements the Hadoop zero-compressed variable length integer
// encoding used by Hive binary formats.
//
// Values in [-112, 127] are stored in a single byte. Larger values are stored
// as a header byte encoding the sign and number of bytes, followed by the
// magnitude in big-endian order (one's complement for negative values).
package vint

import "errors"

// ErrTruncated is returned when a vint extends past the end of the buffer.
var ErrTruncated = errors.New("vint extends past the end of the buffer")

// MaxLen is the maximum length of an encoded vint.
const MaxLen = 9

// DecodeSize returns the total length of the vint starting with the header
// byte b.
func DecodeSize(b byte) int {
	v := int8(b)
	switch {
	case v >= -112:
		return 1
	case v < -120:
		return -119 - int(v)
	default:
		return -111 - int(v)
	}
}

func isNegative(b byte) bool {
	v := int8(b)
	return v < -120 || (v >= -112 && v < 0)
}

// Size returns the number of bytes needed to encode i.
func Size(i int64) int {
	if i >= -112 && i <= 127 {
		return 1
	}
	if i < 0 {
		i ^= -1
	}
	n := 1
	for ; i != 0; i >>= 8 {
		n++
	}
	return n
}

// Append appends the encoding of i to b.
func Append(b []byte, i int64) []byte {
	if i >= -112 && i <= 127 {
		return append(b, byte(i))
	}

	header := -112
	if i < 0 {
		i ^= -1
		header = -120
	}
	for tmp := i; tmp != 0; tmp >>= 8 {
		header--
	}
	b = append(b, byte(int8(header)))

	var n int
	if header < -120 {
		n = -(header + 120)
	} else {
		n = -(header + 112)
	}
	for ; n != 0; n-- {
		b = append(b, byte(i>>(uint(n-1)*8)))
	}
	return b
}

// Read decodes the vint at offset off of b, returning its value and length.
func Read(b []byte, off int) (int64, int, error) {
	if off < 0 || off >= len(b) {
		return 0, 0, ErrTruncated
	}
	first := b[off]
	n := DecodeSize(first)
	if n == 1 {
		return int64(int8(first)), 1, nil
	}
	if off+n > len(b) {
		return 0, 0, ErrTruncated
	}
	var i int64
	for _, c := range b[off+1 : off+n] {
		i = i<<8 | int64(c)
	}
	if isNegative(first) {
		i ^= -1
	}
	return i, n, nil
}
