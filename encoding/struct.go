package encoding

import (
	"fmt"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/debug"
)

// Struct is the encoding of row values.
//
// Fields are written in schema order, in batches of 8. Each batch starts with
// a null byte where bit i%8 is set if field i is present, followed by the
// encoding of each present field of the batch. Null fields occupy no bytes.
//
//	struct := batch(0) batch(1) ... batch(k)
//	batch  := null_byte field*
//
// The encoding carries neither a length nor a field count; the end of the
// value is determined by the enclosing window. Rows written with fewer
// trailing fields than the schema decode with nulls for the missing fields.
type Struct struct {
	typ    *lazybinary.RowType
	fields []Encoding
}

// NewStruct constructs the encoding of rows of type typ, using the encodings
// in fields for each field. The slice is copied and never modified. It panics
// if the number of encodings differs from the number of fields of typ.
func NewStruct(typ *lazybinary.RowType, fields []Encoding) *Struct {
	if len(fields) != len(typ.Fields) {
		panic(fmt.Sprintf("struct of %d fields constructed with %d encodings", len(typ.Fields), len(fields)))
	}
	return &Struct{
		typ:    typ,
		fields: append([]Encoding{}, fields...),
	}
}

func (e *Struct) String() string { return e.typ.String() }

func (e *Struct) Type() lazybinary.Type { return e.typ }

// NumFields returns the number of fields of the struct.
func (e *Struct) NumFields() int { return len(e.fields) }

// Field returns the encoding of field i.
func (e *Struct) Field(i int) Encoding { return e.fields[i] }

func (e *Struct) Encode(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	row, ok := b.(*lazybinary.RowBlock)
	if !ok || row.NumFields() != len(e.fields) {
		return dst, errMismatch(e, "cannot encode values of %s block", b.Type())
	}
	if err := checkPosition(e, b, pos); err != nil {
		return dst, err
	}

	for batchStart := 0; batchStart < len(e.fields); batchStart += 8 {
		batchEnd := batchStart + 8
		if batchEnd > len(e.fields) {
			batchEnd = len(e.fields)
		}

		nullByte := byte(0)
		for fieldID := batchStart; fieldID < batchEnd; fieldID++ {
			if !row.Field(fieldID).IsNull(pos) {
				nullByte |= 1 << (fieldID % 8)
			}
		}
		dst = append(dst, nullByte)

		for fieldID := batchStart; fieldID < batchEnd; fieldID++ {
			field := row.Field(fieldID)
			if field.IsNull(pos) {
				continue
			}
			var err error
			if dst, err = e.fields[fieldID].EncodeValue(dst, field, pos); err != nil {
				return dst, fmt.Errorf("encoding field %d (%s): %w", fieldID, e.typ.FieldName(fieldID), err)
			}
		}
	}

	return dst, nil
}

func (e *Struct) EncodeValue(dst []byte, b lazybinary.Block, pos int) ([]byte, error) {
	return appendWithLengthHeader(dst, func(dst []byte) ([]byte, error) {
		return e.Encode(dst, b, pos)
	})
}

func (e *Struct) ValueOffset(buf []byte, offset int) (int, error) { return lengthHeaderSize, nil }

func (e *Struct) ValueLength(buf []byte, offset int) (int, error) {
	return readLengthHeader(e, buf, offset)
}

// DecodeValue decodes one row into b, which must be a *lazybinary.RowBuilder
// of the struct type.
//
// The row entry is committed whether decoding succeeds or not. When an error
// is returned, the fields which were not decoded are null and the content of
// the row is unspecified; callers must discard the builder.
func (e *Struct) DecodeValue(b lazybinary.BlockBuilder, buf []byte, offset, length int) error {
	builder, ok := b.(*lazybinary.RowBuilder)
	if !ok || len(builder.Type().(*lazybinary.RowType).Fields) != len(e.fields) {
		return errMismatch(e, "cannot decode into %s builder", b.Type())
	}
	end, err := checkWindow(e, buf, offset, length)
	if err != nil {
		return err
	}
	buf = buf[:end]

	entry := builder.BeginEntry()
	defer entry.Commit()

	fieldID := 0
	nullByte := byte(0)
	elementOffset := offset

	for fieldID < len(e.fields) && elementOffset < end {
		field := e.fields[fieldID]

		// null byte prefixes every 8 fields
		if fieldID%8 == 0 {
			nullByte = buf[elementOffset]
			elementOffset++
		}

		if nullByte&(1<<(fieldID%8)) != 0 {
			valueOffset, valueLength, err := valueWindow(field, buf, elementOffset)
			if err != nil {
				return e.fieldError(fieldID, elementOffset, err)
			}
			if err := field.DecodeValue(entry.Field(fieldID), buf, elementOffset+valueOffset, valueLength); err != nil {
				return e.fieldError(fieldID, elementOffset, err)
			}
			elementOffset += valueOffset + valueLength
		} else {
			entry.Field(fieldID).AppendNull()
		}

		fieldID++
	}

	if fieldID < len(e.fields) {
		decoded := fieldID
		debug.Do(func() {
			debug.Log(debug.Fields{
				"type":    e.typ.String(),
				"offset":  offset,
				"length":  length,
				"decoded": decoded,
			}, "struct value ends before its last field, filling missing fields with nulls")
		})

		for ; fieldID < len(e.fields); fieldID++ {
			entry.Field(fieldID).AppendNull()
		}
	}

	return nil
}

func (e *Struct) fieldError(fieldID, offset int, err error) error {
	return &DecodeError{
		Field:  fieldID,
		Name:   e.typ.FieldName(fieldID),
		Offset: offset,
		Err:    err,
	}
}

var _ Encoding = (*Struct)(nil)
