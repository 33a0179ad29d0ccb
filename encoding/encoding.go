// Package encoding implements the Hive LazyBinary encoding of column values.
//
// Each Encoding is bound to a single type and converts values between the
// binary layout and lazybinary blocks. Encodings of nested types are built by
// composition: a struct encoding holds one encoding per field, list and map
// encodings hold the encodings of their elements, keys and values.
//
// Encodings hold no mutable state and are safe to use concurrently, as long as
// each call uses its own output buffer or block builder.
package encoding

import (
	"fmt"

	lazybinary "github.com/segmentio/lazybinary-go"
)

// Encoding is the interface implemented by the encoders and decoders of each
// column type.
type Encoding interface {
	// Returns a human-readable name for the encoding.
	fmt.Stringer

	// Type returns the type of values that the encoding supports.
	Type() lazybinary.Type

	// Encode appends the top-level encoding of the value at position pos of
	// b to dst and returns the extended buffer. The value must not be null,
	// callers are responsible for tracking null values.
	Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error)

	// EncodeValue is like Encode but appends the form used when the value is
	// nested in a struct, list or map. Nested structs, lists and maps are
	// prefixed with a 4 bytes big-endian length, other values are encoded the
	// same way as with Encode.
	EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error)

	// ValueOffset returns the number of header bytes preceding the payload of
	// the nested value starting at offset of buf.
	ValueOffset(buf []byte, offset int) (int, error)

	// ValueLength returns the length of the payload of the nested value
	// starting at offset of buf, without decoding it.
	ValueLength(buf []byte, offset int) (int, error)

	// DecodeValue decodes the length bytes starting at offset of buf into one
	// new position of b.
	//
	// Implementations never read past the end of buf; callers slice the
	// buffer to bound the region that the decoder may access.
	DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error
}

// For returns the encoding of values of type t.
func For(t lazybinary.Type) (Encoding, error) {
	switch t.Kind() {
	case lazybinary.Boolean:
		return newBoolean(t), nil
	case lazybinary.Tinyint:
		return newTinyint(t), nil
	case lazybinary.Smallint:
		return newSmallint(t), nil
	case lazybinary.Integer, lazybinary.Bigint, lazybinary.Date:
		return &longEncoding{typ: t}, nil
	case lazybinary.Real:
		return newReal(t), nil
	case lazybinary.Double:
		return newDouble(t), nil
	case lazybinary.Decimal:
		decimalType, ok := t.(*lazybinary.DecimalType)
		if !ok {
			break
		}
		return &decimalEncoding{typ: decimalType}, nil
	case lazybinary.Varchar, lazybinary.Varbinary:
		return newString(t), nil
	case lazybinary.Timestamp:
		return &timestampEncoding{typ: t}, nil
	case lazybinary.Array:
		arrayType, ok := t.(*lazybinary.ArrayType)
		if !ok {
			break
		}
		elem, err := For(arrayType.Elem)
		if err != nil {
			return nil, err
		}
		return NewList(arrayType, elem), nil
	case lazybinary.Map:
		mapType, ok := t.(*lazybinary.MapType)
		if !ok {
			break
		}
		key, err := For(mapType.Key)
		if err != nil {
			return nil, err
		}
		value, err := For(mapType.Value)
		if err != nil {
			return nil, err
		}
		return NewMap(mapType, key, value), nil
	case lazybinary.Row:
		rowType, ok := t.(*lazybinary.RowType)
		if !ok {
			break
		}
		fields := make([]Encoding, len(rowType.Fields))
		for i, f := range rowType.Fields {
			e, err := For(f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", rowType.FieldName(i), err)
			}
			fields[i] = e
		}
		return NewStruct(rowType, fields), nil
	}
	return nil, fmt.Errorf("type %s: %w", t, ErrNotSupported)
}

// MustFor is like For but panics if the type is not supported.
func MustFor(t lazybinary.Type) Encoding {
	e, err := For(t)
	if err != nil {
		panic(err)
	}
	return e
}
