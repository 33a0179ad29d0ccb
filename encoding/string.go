package encoding

import (
	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/vint"
)

// stringEncoding encodes string and binary values as a variable length
// integer holding the byte count, followed by the bytes.
type stringEncoding struct {
	typ lazybinary.Type
	// maximum number of characters of varchar(n) values, zero if unbounded
	length int
}

func newString(t lazybinary.Type) *stringEncoding {
	e := &stringEncoding{typ: t}
	if bounded, ok := t.(interface{ Length() int }); ok {
		e.length = bounded.Length()
	}
	return e
}

func (e *stringEncoding) String() string { return e.typ.String() }

func (e *stringEncoding) Type() lazybinary.Type { return e.typ }

func (e *stringEncoding) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	v, err := primitiveValue(e, b, pos)
	if err != nil {
		return dst, err
	}
	data := v.ByteArray()
	dst = vint.Append(dst, int64(len(data)))
	return append(dst, data...), nil
}

func (e *stringEncoding) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return e.Encode(dst, b, pos)
}

func (e *stringEncoding) ValueOffset(buf []byte, offset int) (int, error) {
	if offset < 0 || offset >= len(buf) {
		return 0, errMalformed(e, "offset %d exceeds buffer of %d bytes", offset, len(buf))
	}
	return vint.DecodeSize(buf[offset]), nil
}

func (e *stringEncoding) ValueLength(buf []byte, offset int) (int, error) {
	n, _, err := readLength(e, buf, offset)
	return n, err
}

func (e *stringEncoding) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, err := primitiveBuilder(e, b)
	if err != nil {
		return err
	}
	end, err := checkWindow(e, buf, offset, length)
	if err != nil {
		return err
	}
	data := append([]byte{}, buf[offset:end]...)

	if e.typ.Kind() == lazybinary.Varbinary {
		builder.Append(lazybinary.VarbinaryValue(data))
		return nil
	}
	if e.length > 0 {
		data = truncateChars(data, e.length)
	}
	builder.Append(lazybinary.VarcharValue(string(data)))
	return nil
}

// truncateChars truncates b to at most n UTF-8 characters.
func truncateChars(b []byte, n int) []byte {
	for i := range string(b) {
		if n == 0 {
			return b[:i]
		}
		n--
	}
	return b
}
