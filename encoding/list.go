package encoding

import (
	"fmt"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/vint"
)

// List is the encoding of array values: a vint holding the element count,
// one null byte per 8 elements where bit i%8 of byte i/8 is set if element i
// is present, then the encoding of each present element.
type List struct {
	typ  *lazybinary.ArrayType
	elem Encoding
}

// NewList constructs the encoding of arrays of type typ, using elem to encode
// the elements.
func NewList(typ *lazybinary.ArrayType, elem Encoding) *List {
	return &List{typ: typ, elem: elem}
}

func (e *List) String() string { return e.typ.String() }

func (e *List) Type() lazybinary.Type { return e.typ }

func (e *List) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	list, ok := b.(*lazybinary.ArrayBlock)
	if !ok {
		return dst, errMismatch(e, "cannot encode values of %s block", b.Type())
	}
	if err := checkPosition(e, b, pos); err != nil {
		return dst, err
	}
	elements, offset, length := list.Elements(pos)

	dst = vint.Append(dst, int64(length))
	dst = appendNullBytes(dst, length, func(i int) bool {
		return !elements.IsNull(offset + i)
	})

	for i := 0; i < length; i++ {
		if elements.IsNull(offset + i) {
			continue
		}
		var err error
		if dst, err = e.elem.EncodeValue(dst, elements, offset+i); err != nil {
			return dst, fmt.Errorf("encoding element %d: %w", i, err)
		}
	}
	return dst, nil
}

func (e *List) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return appendWithLengthHeader(dst, func(dst []byte) ([]byte, error) {
		return e.Encode(dst, b, pos)
	})
}

func (e *List) ValueOffset(buf []byte, offset int) (int, error) { return lengthHeaderSize, nil }

func (e *List) ValueLength(buf []byte, offset int) (int, error) {
	return readLengthHeader(e, buf, offset)
}

func (e *List) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, ok := b.(*lazybinary.ArrayBuilder)
	if !ok {
		return errMismatch(e, "cannot decode into %s builder", b.Type())
	}
	end, err := checkWindow(e, buf, offset, length)
	if err != nil {
		return err
	}
	buf = buf[:end]

	count, n, err := readLength(e, buf, offset)
	if err != nil {
		return err
	}
	nullBytes := offset + n
	elementOffset := nullBytes + (count+7)/8
	if elementOffset > end {
		return errMalformed(e, "null bytes of %d elements at offset %d exceed the window", count, nullBytes)
	}

	entry := builder.BeginEntry()
	defer entry.Commit()
	elements := entry.Elements()

	for i := 0; i < count; i++ {
		if buf[nullBytes+i/8]&(1<<(i%8)) == 0 {
			elements.AppendNull()
			continue
		}
		valueOffset, valueLength, err := valueWindow(e.elem, buf, elementOffset)
		if err != nil {
			return fmt.Errorf("decoding element %d at offset %d: %w", i, elementOffset, err)
		}
		if err := e.elem.DecodeValue(elements, buf, elementOffset+valueOffset, valueLength); err != nil {
			return fmt.Errorf("decoding element %d at offset %d: %w", i, elementOffset, err)
		}
		elementOffset += valueOffset + valueLength
	}
	return nil
}

// appendNullBytes appends ceil(n/8) bytes where bit i%8 of byte i/8 is set
// if present(i) is true.
func appendNullBytes(dst []byte, n int, present func(int) bool) []byte {
	for batchStart := 0; batchStart < n; batchStart += 8 {
		nullByte := byte(0)
		for i := batchStart; i < batchStart+8 && i < n; i++ {
			if present(i) {
				nullByte |= 1 << (i % 8)
			}
		}
		dst = append(dst, nullByte)
	}
	return dst
}

var _ Encoding = (*List)(nil)
