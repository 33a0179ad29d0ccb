package encoding

import (
	"fmt"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/debug"
	"github.com/segmentio/lazybinary-go/internal/vint"
)

// Map is the encoding of map values: a vint holding the entry count, one null
// byte per 4 entries where bit 2i%8 of byte 2i/8 is set if the key of entry i
// is present and bit (2i+1)%8 if its value is present, then the present keys
// and values of each entry in order.
//
// Entries with a null key are not representable in maps; they are skipped
// when decoding.
type Map struct {
	typ   *lazybinary.MapType
	key   Encoding
	value Encoding
}

// NewMap constructs the encoding of maps of type typ, using key and value to
// encode the keys and values of entries.
func NewMap(typ *lazybinary.MapType, key, value Encoding) *Map {
	return &Map{typ: typ, key: key, value: value}
}

func (e *Map) String() string { return e.typ.String() }

func (e *Map) Type() lazybinary.Type { return e.typ }

func (e *Map) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	m, ok := b.(*lazybinary.MapBlock)
	if !ok {
		return dst, errMismatch(e, "cannot encode values of %s block", b.Type())
	}
	if err := checkPosition(e, b, pos); err != nil {
		return dst, err
	}
	keys, values, offset, length := m.Entries(pos)

	dst = vint.Append(dst, int64(length))
	dst = appendNullBytes(dst, 2*length, func(i int) bool {
		if i%2 == 0 {
			return !keys.IsNull(offset + i/2)
		}
		return !values.IsNull(offset + i/2)
	})

	for i := 0; i < length; i++ {
		var err error
		if !keys.IsNull(offset + i) {
			if dst, err = e.key.EncodeValue(dst, keys, offset+i); err != nil {
				return dst, fmt.Errorf("encoding key of entry %d: %w", i, err)
			}
		}
		if !values.IsNull(offset + i) {
			if dst, err = e.value.EncodeValue(dst, values, offset+i); err != nil {
				return dst, fmt.Errorf("encoding value of entry %d: %w", i, err)
			}
		}
	}
	return dst, nil
}

func (e *Map) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return appendWithLengthHeader(dst, func(dst []byte) ([]byte, error) {
		return e.Encode(dst, b, pos)
	})
}

func (e *Map) ValueOffset(buf []byte, offset int) (int, error) { return lengthHeaderSize, nil }

func (e *Map) ValueLength(buf []byte, offset int) (int, error) {
	return readLengthHeader(e, buf, offset)
}

func (e *Map) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, ok := b.(*lazybinary.MapBuilder)
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
	elementOffset := nullBytes + (2*count+7)/8
	if elementOffset > end {
		return errMalformed(e, "null bytes of %d entries at offset %d exceed the window", count, nullBytes)
	}

	entry := builder.BeginEntry()
	defer entry.Commit()
	keys, values := entry.Keys(), entry.Values()
	skipped := 0

	for i := 0; i < count; i++ {
		keyBit, valueBit := 2*i, 2*i+1
		hasKey := buf[nullBytes+keyBit/8]&(1<<(keyBit%8)) != 0
		hasValue := buf[nullBytes+valueBit/8]&(1<<(valueBit%8)) != 0

		if !hasKey {
			if hasValue {
				valueOffset, valueLength, err := valueWindow(e.value, buf, elementOffset)
				if err != nil {
					return fmt.Errorf("skipping value of entry %d at offset %d: %w", i, elementOffset, err)
				}
				elementOffset += valueOffset + valueLength
			}
			skipped++
			continue
		}

		valueOffset, valueLength, err := valueWindow(e.key, buf, elementOffset)
		if err != nil {
			return fmt.Errorf("decoding key of entry %d at offset %d: %w", i, elementOffset, err)
		}
		if err := e.key.DecodeValue(keys, buf, elementOffset+valueOffset, valueLength); err != nil {
			return fmt.Errorf("decoding key of entry %d at offset %d: %w", i, elementOffset, err)
		}
		elementOffset += valueOffset + valueLength

		if !hasValue {
			values.AppendNull()
			continue
		}
		valueOffset, valueLength, err = valueWindow(e.value, buf, elementOffset)
		if err != nil {
			return fmt.Errorf("decoding value of entry %d at offset %d: %w", i, elementOffset, err)
		}
		if err := e.value.DecodeValue(values, buf, elementOffset+valueOffset, valueLength); err != nil {
			return fmt.Errorf("decoding value of entry %d at offset %d: %w", i, elementOffset, err)
		}
		elementOffset += valueOffset + valueLength
	}

	if skipped > 0 {
		debug.Do(func() {
			debug.Log(debug.Fields{
				"type":    e.typ.String(),
				"offset":  offset,
				"entries": count,
				"skipped": skipped,
			}, "map entries with null keys were dropped")
		})
	}
	return nil
}

var _ Encoding = (*Map)(nil)
