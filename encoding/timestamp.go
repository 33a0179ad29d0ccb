package encoding

import (
	"encoding/binary"
	"math"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/vint"
)

// timestampEncoding uses the layout of Hive's TimestampWritable:
//
//	seconds word: 4 bytes big-endian, the low 31 bits of the seconds and a
//	              high bit set when a decimal vint follows
//	decimal:      vint holding the nanoseconds with their 9 digits reversed,
//	              stored as -decimal-1 when a second vint follows
//	high seconds: vlong holding seconds >> 31, only present for seconds which
//	              do not fit in 31 bits
type timestampEncoding struct {
	typ lazybinary.Type
}

const (
	decimalOrSecondVIntFlag = 1 << 31
	lowest31BitsMask        = 1<<31 - 1
)

func (e *timestampEncoding) String() string { return e.typ.String() }

func (e *timestampEncoding) Type() lazybinary.Type { return e.typ }

func (e *timestampEncoding) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	v, err := primitiveValue(e, b, pos)
	if err != nil {
		return dst, err
	}
	seconds, nanos := v.Seconds(), v.Nanos()
	if nanos < 0 || nanos > 999999999 {
		return dst, Errorf(e, "%w: nanoseconds %d out of range", ErrInvalidArgument, nanos)
	}

	hasSecondVInt := seconds < 0 || seconds > math.MaxInt32
	decimal := reverseNanos(nanos)

	first := uint32(seconds) & lowest31BitsMask
	if decimal != 0 || hasSecondVInt {
		first |= decimalOrSecondVIntFlag
	}
	dst = binary.BigEndian.AppendUint32(dst, first)

	if hasSecondVInt {
		dst = vint.Append(dst, int64(-decimal-1))
		dst = vint.Append(dst, seconds>>31)
	} else if decimal != 0 {
		dst = vint.Append(dst, int64(decimal))
	}
	return dst, nil
}

func (e *timestampEncoding) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return e.Encode(dst, b, pos)
}

func (e *timestampEncoding) ValueOffset(buf []byte, offset int) (int, error) { return 0, nil }

func (e *timestampEncoding) ValueLength(buf []byte, offset int) (int, error) {
	_, _, n, err := e.read(buf, offset)
	return n, err
}

func (e *timestampEncoding) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, err := primitiveBuilder(e, b)
	if err != nil {
		return err
	}
	end, err := checkWindow(e, buf, offset, length)
	if err != nil {
		return err
	}
	seconds, nanos, _, err := e.read(buf[:end], offset)
	if err != nil {
		return err
	}
	builder.Append(lazybinary.TimestampValueOf(seconds, nanos))
	return nil
}

// read decodes the timestamp at offset of buf, returning its seconds, nanos
// and encoded length.
func (e *timestampEncoding) read(buf []byte, offset int) (seconds int64, nanos, length int, err error) {
	if offset < 0 || offset > len(buf)-4 {
		return 0, 0, 0, errMalformed(e, "timestamp at offset %d exceeds buffer of %d bytes", offset, len(buf))
	}
	first := binary.BigEndian.Uint32(buf[offset:])
	seconds = int64(first & lowest31BitsMask)
	length = 4

	if first&decimalOrSecondVIntFlag == 0 {
		return seconds, 0, length, nil
	}

	decimal, n, err := readVInt(e, buf, offset+length)
	if err != nil {
		return 0, 0, 0, err
	}
	length += n

	if decimal < 0 {
		decimal = -decimal - 1
		high, n, err := readVInt(e, buf, offset+length)
		if err != nil {
			return 0, 0, 0, err
		}
		length += n
		seconds |= high << 31
	}

	if decimal > 999999999 {
		return 0, 0, 0, errMalformed(e, "invalid nanoseconds %d at offset %d", decimal, offset)
	}
	return seconds, unreverseNanos(int(decimal)), length, nil
}

// reverseNanos reverses the 9 decimal digits of nanos, so that trailing zeros
// become leading zeros and the value encodes in fewer bytes.
func reverseNanos(nanos int) int {
	decimal := 0
	if nanos != 0 {
		for i := 0; i < 9; i++ {
			decimal = decimal*10 + nanos%10
			nanos /= 10
		}
	}
	return decimal
}

// unreverseNanos is the inverse of reverseNanos. The digits of decimal are
// reversed then scaled back to 9 digits.
func unreverseNanos(decimal int) int {
	if decimal == 0 {
		return 0
	}
	digits, nanos := 0, 0
	for ; decimal != 0; decimal /= 10 {
		nanos = nanos*10 + decimal%10
		digits++
	}
	for ; digits < 9; digits++ {
		nanos *= 10
	}
	return nanos
}
