package encoding

import (
	"fmt"

	lazybinary "github.com/segmentio/lazybinary-go"
)

// EncodeColumn appends the top-level encoding of every position of b to dst,
// returning the extended buffer and the length of each encoded value.
//
// Null positions occupy no bytes and have a length of zero. Since a struct
// with no fields also encodes to zero bytes, such values cannot be told apart
// from nulls in column form.
func EncodeColumn(e Encoding, dst []byte, b lazybinary.Block) ([]byte, []int, error) {
	lengths := make([]int, b.Len())

	for pos := range lengths {
		if b.IsNull(pos) {
			continue
		}
		start := len(dst)
		var err error
		if dst, err = e.Encode(dst, b, pos); err != nil {
			return dst[:start], lengths[:pos], fmt.Errorf("encoding position %d: %w", pos, err)
		}
		lengths[pos] = len(dst) - start
	}

	return dst, lengths, nil
}

// DecodeColumn is the inverse of EncodeColumn: it decodes the values stored
// back to back in data, where the length of each value is given by lengths,
// and appends them to b. Zero lengths decode as null.
func DecodeColumn(e Encoding, b lazybinary.BlockBuilder, data []byte, lengths []int) error {
	offset := 0

	for pos, length := range lengths {
		if length < 0 || length > len(data)-offset {
			return fmt.Errorf("decoding position %d: %w", pos,
				errMalformed(e, "value of %d bytes at offset %d exceeds buffer of %d bytes", length, offset, len(data)))
		}
		if length == 0 {
			b.AppendNull()
			continue
		}
		if err := Decode(e, b, data[:offset+length], offset); err != nil {
			return fmt.Errorf("decoding position %d: %w", pos, err)
		}
		offset += length
	}

	return nil
}

// Decode decodes the top-level value which spans from offset to the end of
// buf and appends it to b.
//
// Structs, lists and maps are written without their length header at the top
// level, their payload is the whole window. Other values carry their own
// header which must cover the window exactly.
func Decode(e Encoding, b lazybinary.BlockBuilder, buf []byte, offset int) error {
	if offset < 0 || offset > len(buf) {
		return errMalformed(e, "offset %d exceeds buffer of %d bytes", offset, len(buf))
	}
	switch e.(type) {
	case *Struct, *List, *Map:
		return e.DecodeValue(b, buf, offset, len(buf)-offset)
	}
	valueOffset, valueLength, err := valueWindow(e, buf, offset)
	if err != nil {
		return err
	}
	if size := valueOffset + valueLength; size != len(buf)-offset {
		return errMalformed(e, "value of %d bytes at offset %d does not fill its %d bytes window", size, offset, len(buf)-offset)
	}
	return e.DecodeValue(b, buf, offset+valueOffset, valueLength)
}
