package encoding

import (
	"math/big"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/vint"
	"github.com/shopspring/decimal"
)

// decimalEncoding uses the layout of Hive's HiveDecimalWritable: a vint
// holding the scale, a vint holding the byte count of the unscaled value,
// then the unscaled value in big-endian two's complement.
type decimalEncoding struct {
	typ *lazybinary.DecimalType
}

func (e *decimalEncoding) String() string { return e.typ.String() }

func (e *decimalEncoding) Type() lazybinary.Type { return e.typ }

func (e *decimalEncoding) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	v, err := primitiveValue(e, b, pos)
	if err != nil {
		return dst, err
	}
	unscaled := e.rescale(v.Unscaled(), v.Scale())
	if !e.fits(unscaled) {
		return dst, errMismatch(e, "value %s overflows precision %d", v, e.typ.Precision)
	}
	dst = vint.Append(dst, int64(e.typ.Scale))
	size := len(dst)
	dst = lazybinary.AppendTwosComplement(vint.Append(dst, 0), unscaled)
	// the byte count is known only after appending the value, it always fits
	// in the single byte vint reserved above since precision is at most 38
	dst[size] = byte(len(dst) - size - 1)
	return dst, nil
}

func (e *decimalEncoding) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return e.Encode(dst, b, pos)
}

func (e *decimalEncoding) ValueOffset(buf []byte, offset int) (int, error) { return 0, nil }

func (e *decimalEncoding) ValueLength(buf []byte, offset int) (int, error) {
	_, scaleSize, err := readVInt(e, buf, offset)
	if err != nil {
		return 0, err
	}
	n, lengthSize, err := readLength(e, buf, offset+scaleSize)
	if err != nil {
		return 0, err
	}
	return scaleSize + lengthSize + n, nil
}

func (e *decimalEncoding) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, err := primitiveBuilder(e, b)
	if err != nil {
		return err
	}
	end, err := checkWindow(e, buf, offset, length)
	if err != nil {
		return err
	}
	buf = buf[:end]

	scale, scaleSize, err := readVInt(e, buf, offset)
	if err != nil {
		return err
	}
	if scale < 0 || scale > lazybinary.MaxDecimalPrecision {
		return errMalformed(e, "invalid scale %d at offset %d", scale, offset)
	}
	n, lengthSize, err := readLength(e, buf, offset+scaleSize)
	if err != nil {
		return err
	}
	start := offset + scaleSize + lengthSize
	if n > end-start {
		return errMalformed(e, "unscaled value of %d bytes at offset %d exceeds the %d bytes remaining", n, start, end-start)
	}

	unscaled := e.rescale(lazybinary.TwosComplementInt(buf[start:start+n]), int(scale))
	if !e.fits(unscaled) {
		return errMismatch(e, "value at offset %d overflows precision %d", offset, e.typ.Precision)
	}
	builder.Append(lazybinary.UnscaledDecimalValue(unscaled, e.typ.Scale))
	return nil
}

// rescale converts an unscaled value of the given scale to the scale of the
// encoding type, rounding half away from zero.
func (e *decimalEncoding) rescale(unscaled *big.Int, scale int) *big.Int {
	if scale == e.typ.Scale {
		return unscaled
	}
	d := decimal.NewFromBigInt(unscaled, -int32(scale))
	return d.Round(int32(e.typ.Scale)).Coefficient()
}

// fits reports whether unscaled has at most as many digits as the precision
// of the encoding type.
func (e *decimalEncoding) fits(unscaled *big.Int) bool {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e.typ.Precision)), nil)
	return new(big.Int).Abs(unscaled).Cmp(limit) < 0
}
