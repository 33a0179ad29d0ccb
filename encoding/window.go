package encoding

import (
	"encoding/binary"
	"math"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/vint"
)

// lengthHeaderSize is the size of the big-endian length prefixing structs,
// lists and maps nested in other values.
const lengthHeaderSize = 4

// checkWindow validates that [offset, offset+length) lies within buf and
// returns the end of the window.
func checkWindow(e Encoding, buf []byte, offset, length int) (int, error) {
	if offset < 0 || length < 0 || offset > len(buf) || length > len(buf)-offset {
		return 0, errMalformed(e, "window [%d:+%d] exceeds buffer of %d bytes", offset, length, len(buf))
	}
	return offset + length, nil
}

// valueWindow returns the header size and payload length of the value of
// encoding e starting at offset of buf, checking that the value ends before
// the end of buf.
func valueWindow(e Encoding, buf []byte, offset int) (valueOffset, valueLength int, err error) {
	if valueOffset, err = e.ValueOffset(buf, offset); err != nil {
		return 0, 0, err
	}
	if valueLength, err = e.ValueLength(buf, offset); err != nil {
		return 0, 0, err
	}
	if valueOffset < 0 || valueLength < 0 {
		return 0, 0, errMalformed(e, "negative value size at offset %d", offset)
	}
	if remain := len(buf) - offset; valueOffset > remain || valueLength > remain-valueOffset {
		return 0, 0, errMalformed(e, "value of %d bytes at offset %d exceeds the %d bytes remaining", valueOffset+valueLength, offset, remain)
	}
	return valueOffset, valueLength, nil
}

// readVInt reads the variable length integer at offset of buf.
func readVInt(e Encoding, buf []byte, offset int) (int64, int, error) {
	v, n, err := vint.Read(buf, offset)
	if err != nil {
		return 0, 0, errMalformed(e, "reading vint at offset %d: %v", offset, err)
	}
	return v, n, nil
}

// readLength reads a non-negative length encoded as a variable length integer.
func readLength(e Encoding, buf []byte, offset int) (int, int, error) {
	v, n, err := readVInt(e, buf, offset)
	if err != nil {
		return 0, 0, err
	}
	if v < 0 || v > math.MaxInt32 {
		return 0, 0, errMalformed(e, "invalid length %d at offset %d", v, offset)
	}
	return int(v), n, nil
}

// readLengthHeader reads the 4 bytes length prefixing nested values.
func readLengthHeader(e Encoding, buf []byte, offset int) (int, error) {
	if offset < 0 || offset > len(buf)-lengthHeaderSize {
		return 0, errMalformed(e, "length header at offset %d exceeds buffer of %d bytes", offset, len(buf))
	}
	n := int32(binary.BigEndian.Uint32(buf[offset:]))
	if n < 0 {
		return 0, errMalformed(e, "negative length %d at offset %d", n, offset)
	}
	return int(n), nil
}

// appendWithLengthHeader appends the value produced by encode to dst,
// prefixed with its length.
func appendWithLengthHeader(dst []byte, encode func([]byte) ([]byte, error)) ([]byte, error) {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)
	dst, err := encode(dst)
	if err != nil {
		return dst, err
	}
	binary.BigEndian.PutUint32(dst[start:], uint32(len(dst)-start-lengthHeaderSize))
	return dst, nil
}

// primitiveValue returns the non-null value at position pos of b.
func primitiveValue(e Encoding, b lazybinary.Block, pos int) (lazybinary.Value, error) {
	block, ok := b.(*lazybinary.PrimitiveBlock)
	if !ok || block.Type().Kind() != e.Type().Kind() {
		return lazybinary.Value{}, errMismatch(e, "cannot encode values of %s block", b.Type())
	}
	if err := checkPosition(e, b, pos); err != nil {
		return lazybinary.Value{}, err
	}
	return block.Value(pos), nil
}

// primitiveBuilder returns b as a builder of primitive values of the
// encoding type.
func primitiveBuilder(e Encoding, b lazybinary.BlockBuilder) (*lazybinary.PrimitiveBuilder, error) {
	builder, ok := b.(*lazybinary.PrimitiveBuilder)
	if !ok || builder.Type().Kind() != e.Type().Kind() {
		return nil, errMismatch(e, "cannot decode into %s builder", b.Type())
	}
	return builder, nil
}

func checkPosition(e Encoding, b lazybinary.Block, pos int) error {
	if pos < 0 || pos >= b.Len() {
		return Errorf(e, "%w: position %d out of range [0:%d]", ErrInvalidArgument, pos, b.Len())
	}
	if b.IsNull(pos) {
		return Errorf(e, "%w: null value at position %d", ErrInvalidArgument, pos)
	}
	return nil
}
