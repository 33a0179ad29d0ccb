package encoding

import (
	"encoding/binary"
	"math"

	lazybinary "github.com/segmentio/lazybinary-go"
)

// fixedEncoding encodes values which always occupy the same number of bytes
// and carry no header.
type fixedEncoding struct {
	typ  lazybinary.Type
	size int
	put  func([]byte, lazybinary.Value) []byte
	get  func([]byte) lazybinary.Value
}

func newBoolean(t lazybinary.Type) *fixedEncoding {
	return &fixedEncoding{
		typ:  t,
		size: 1,
		put: func(b []byte, v lazybinary.Value) []byte {
			if v.Boolean() {
				return append(b, 1)
			}
			return append(b, 0)
		},
		get: func(b []byte) lazybinary.Value { return lazybinary.BooleanValue(b[0] != 0) },
	}
}

func newTinyint(t lazybinary.Type) *fixedEncoding {
	return &fixedEncoding{
		typ:  t,
		size: 1,
		put:  func(b []byte, v lazybinary.Value) []byte { return append(b, byte(v.Int64())) },
		get:  func(b []byte) lazybinary.Value { return lazybinary.TinyintValue(int8(b[0])) },
	}
}

func newSmallint(t lazybinary.Type) *fixedEncoding {
	return &fixedEncoding{
		typ:  t,
		size: 2,
		put: func(b []byte, v lazybinary.Value) []byte {
			return binary.BigEndian.AppendUint16(b, uint16(v.Int64()))
		},
		get: func(b []byte) lazybinary.Value {
			return lazybinary.SmallintValue(int16(binary.BigEndian.Uint16(b)))
		},
	}
}

func newReal(t lazybinary.Type) *fixedEncoding {
	return &fixedEncoding{
		typ:  t,
		size: 4,
		put: func(b []byte, v lazybinary.Value) []byte {
			return binary.BigEndian.AppendUint32(b, math.Float32bits(v.Float32()))
		},
		get: func(b []byte) lazybinary.Value {
			return lazybinary.RealValue(math.Float32frombits(binary.BigEndian.Uint32(b)))
		},
	}
}

func newDouble(t lazybinary.Type) *fixedEncoding {
	return &fixedEncoding{
		typ:  t,
		size: 8,
		put: func(b []byte, v lazybinary.Value) []byte {
			return binary.BigEndian.AppendUint64(b, math.Float64bits(v.Float64()))
		},
		get: func(b []byte) lazybinary.Value {
			return lazybinary.DoubleValue(math.Float64frombits(binary.BigEndian.Uint64(b)))
		},
	}
}

func (e *fixedEncoding) String() string { return e.typ.String() }

func (e *fixedEncoding) Type() lazybinary.Type { return e.typ }

func (e *fixedEncoding) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	v, err := primitiveValue(e, b, pos)
	if err != nil {
		return dst, err
	}
	return e.put(dst, v), nil
}

func (e *fixedEncoding) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return e.Encode(dst, b, pos)
}

func (e *fixedEncoding) ValueOffset(buf []byte, offset int) (int, error) { return 0, nil }

func (e *fixedEncoding) ValueLength(buf []byte, offset int) (int, error) { return e.size, nil }

func (e *fixedEncoding) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, err := primitiveBuilder(e, b)
	if err != nil {
		return err
	}
	if _, err := checkWindow(e, buf, offset, length); err != nil {
		return err
	}
	if length < e.size {
		return errMalformed(e, "value of %d bytes at offset %d is shorter than %d bytes", length, offset, e.size)
	}
	builder.Append(e.get(buf[offset : offset+e.size]))
	return nil
}
