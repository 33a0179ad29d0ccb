package encoding

import (
	"math"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/vint"
)

// longEncoding encodes int, bigint and date values as zero-compressed
// variable length integers. Dates are encoded as days since the epoch.
type longEncoding struct {
	typ lazybinary.Type
}

func (e *longEncoding) String() string { return e.typ.String() }

func (e *longEncoding) Type() lazybinary.Type { return e.typ }

func (e *longEncoding) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	v, err := primitiveValue(e, b, pos)
	if err != nil {
		return dst, err
	}
	return vint.Append(dst, v.Int64()), nil
}

func (e *longEncoding) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return e.Encode(dst, b, pos)
}

func (e *longEncoding) ValueOffset(buf []byte, offset int) (int, error) { return 0, nil }

func (e *longEncoding) ValueLength(buf []byte, offset int) (int, error) {
	if offset < 0 || offset >= len(buf) {
		return 0, errMalformed(e, "offset %d exceeds buffer of %d bytes", offset, len(buf))
	}
	return vint.DecodeSize(buf[offset]), nil
}

func (e *longEncoding) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, err := primitiveBuilder(e, b)
	if err != nil {
		return err
	}
	end, err := checkWindow(e, buf, offset, length)
	if err != nil {
		return err
	}
	v, _, err := readVInt(e, buf[:end], offset)
	if err != nil {
		return err
	}

	switch e.typ.Kind() {
	case lazybinary.Integer:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errMismatch(e, "value %d at offset %d overflows int", v, offset)
		}
		builder.Append(lazybinary.IntegerValue(int32(v)))
	case lazybinary.Date:
		builder.Append(lazybinary.DateValue(v))
	default:
		builder.Append(lazybinary.BigintValue(v))
	}
	return nil
}
