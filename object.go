package lazybinary

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KeyValue is the go representation of a map entry, see Object.
type KeyValue struct {
	Key   interface{} `json:"key"`
	Value interface{} `json:"value"`
}

// Objects returns the go representation of every value of b.
func Objects(b Block) []interface{} {
	objects := make([]interface{}, b.Len())
	for i := range objects {
		objects[i] = Object(b, i)
	}
	return objects
}

// Object returns the go representation of the value at position i of b.
//
// Nulls are nil, scalars are bool, int8, int16, int32, int64, float32,
// float64, decimal.Decimal, string, []byte or time.Time, arrays and rows are
// []interface{} and maps are []KeyValue in insertion order.
func Object(b Block, i int) interface{} {
	if b.IsNull(i) {
		return nil
	}
	switch block := b.(type) {
	case *PrimitiveBlock:
		return valueObject(block.Value(i))
	case *ArrayBlock:
		elements, offset, length := block.Elements(i)
		list := make([]interface{}, length)
		for j := range list {
			list[j] = Object(elements, offset+j)
		}
		return list
	case *MapBlock:
		keys, values, offset, length := block.Entries(i)
		entries := make([]KeyValue, length)
		for j := range entries {
			entries[j] = KeyValue{
				Key:   Object(keys, offset+j),
				Value: Object(values, offset+j),
			}
		}
		return entries
	case *RowBlock:
		fields := make([]interface{}, block.NumFields())
		for j := range fields {
			fields[j] = Object(block.Field(j), i)
		}
		return fields
	default:
		panic(fmt.Sprintf("unsupported block type %T", b))
	}
}

func valueObject(v Value) interface{} {
	switch v.Kind() {
	case Boolean:
		return v.Boolean()
	case Tinyint:
		return int8(v.Int64())
	case Smallint:
		return int16(v.Int64())
	case Integer:
		return int32(v.Int64())
	case Bigint:
		return v.Int64()
	case Real:
		return v.Float32()
	case Double:
		return v.Float64()
	case Decimal:
		return v.Decimal()
	case Varchar:
		return string(v.ByteArray())
	case Varbinary:
		return v.ByteArray()
	default:
		return v.Time()
	}
}

// Append appends the go value v to b, the inverse of Object. Numbers and
// strings are converted to the builder type when the conversion is lossless,
// which allows appending values decoded from JSON.
func Append(b BlockBuilder, v interface{}) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch builder := b.(type) {
	case *PrimitiveBuilder:
		value, err := convertValue(builder.Type(), v)
		if err != nil {
			return err
		}
		builder.Append(value)
		return nil
	case *ArrayBuilder:
		return appendArray(builder, v)
	case *MapBuilder:
		return appendMap(builder, v)
	case *RowBuilder:
		return appendRow(builder, v)
	default:
		return fmt.Errorf("unsupported builder type %T", b)
	}
}

func appendArray(b *ArrayBuilder, v interface{}) error {
	r := reflect.ValueOf(v)
	if r.Kind() != reflect.Slice && r.Kind() != reflect.Array {
		return errCannotAppend(b.Type(), v)
	}
	entry := b.BeginEntry()
	defer entry.Commit()
	for i := 0; i < r.Len(); i++ {
		if err := Append(entry.Elements(), r.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func appendMap(b *MapBuilder, v interface{}) error {
	var entries []KeyValue

	switch m := v.(type) {
	case []KeyValue:
		entries = m
	case []interface{}:
		// the JSON form of []KeyValue
		entries = make([]KeyValue, len(m))
		for i, e := range m {
			kv, ok := e.(map[string]interface{})
			if !ok {
				return fmt.Errorf("entry %d: %w", i, errCannotAppend(b.Type(), e))
			}
			entries[i] = KeyValue{Key: kv["key"], Value: kv["value"]}
		}
	default:
		r := reflect.ValueOf(v)
		if r.Kind() != reflect.Map {
			return errCannotAppend(b.Type(), v)
		}
		entries = make([]KeyValue, 0, r.Len())
		iter := r.MapRange()
		for iter.Next() {
			entries = append(entries, KeyValue{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
		}
		sort.Slice(entries, func(i, j int) bool {
			return fmt.Sprint(entries[i].Key) < fmt.Sprint(entries[j].Key)
		})
	}

	entry := b.BeginEntry()
	defer entry.Commit()
	for i, kv := range entries {
		if kv.Key == nil {
			return fmt.Errorf("entry %d: map keys cannot be null", i)
		}
		if err := Append(entry.Keys(), kv.Key); err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
		if err := Append(entry.Values(), kv.Value); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return nil
}

func appendRow(b *RowBuilder, v interface{}) error {
	typ := b.Type().(*RowType)

	switch row := v.(type) {
	case map[string]interface{}:
		entry := b.BeginEntry()
		defer entry.Commit()
		for i := range typ.Fields {
			if err := Append(entry.Field(i), row[typ.FieldName(i)]); err != nil {
				return fmt.Errorf("field %s: %w", typ.FieldName(i), err)
			}
		}
		return nil
	}

	r := reflect.ValueOf(v)
	if r.Kind() != reflect.Slice && r.Kind() != reflect.Array {
		return errCannotAppend(b.Type(), v)
	}
	if r.Len() > len(typ.Fields) {
		return fmt.Errorf("cannot append row of %d values to %s", r.Len(), typ)
	}
	entry := b.BeginEntry()
	defer entry.Commit()
	for i := 0; i < r.Len(); i++ {
		if err := Append(entry.Field(i), r.Index(i).Interface()); err != nil {
			return fmt.Errorf("field %s: %w", typ.FieldName(i), err)
		}
	}
	return nil
}

func convertValue(t Type, v interface{}) (Value, error) {
	if value, ok := v.(Value); ok {
		if value.IsNull() || value.Kind() == t.Kind() {
			return value, nil
		}
		return Value{}, errCannotAppend(t, v)
	}

	switch t.Kind() {
	case Boolean:
		if b, ok := v.(bool); ok {
			return BooleanValue(b), nil
		}
	case Tinyint:
		if i, ok := toInt64(v); ok && i >= math.MinInt8 && i <= math.MaxInt8 {
			return TinyintValue(int8(i)), nil
		}
	case Smallint:
		if i, ok := toInt64(v); ok && i >= math.MinInt16 && i <= math.MaxInt16 {
			return SmallintValue(int16(i)), nil
		}
	case Integer:
		if i, ok := toInt64(v); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
			return IntegerValue(int32(i)), nil
		}
	case Bigint:
		if i, ok := toInt64(v); ok {
			return BigintValue(i), nil
		}
	case Real:
		if f, ok := toFloat64(v); ok {
			return RealValue(float32(f)), nil
		}
	case Double:
		if f, ok := toFloat64(v); ok {
			return DoubleValue(f), nil
		}
	case Decimal:
		if d, ok := toDecimal(v); ok {
			return DecimalValue(d, t.(*DecimalType).Scale), nil
		}
	case Varchar:
		switch s := v.(type) {
		case string:
			return VarcharValue(s), nil
		case []byte:
			return VarcharValue(string(s)), nil
		case uuid.UUID:
			return VarcharValue(s.String()), nil
		}
	case Varbinary:
		switch s := v.(type) {
		case string:
			return VarbinaryValue([]byte(s)), nil
		case []byte:
			return VarbinaryValue(s), nil
		case uuid.UUID:
			return ValueOf(s), nil
		}
	case Date:
		switch d := v.(type) {
		case time.Time:
			return DateValueOf(d), nil
		case string:
			if tm, err := time.Parse("2006-01-02", d); err == nil {
				return DateValueOf(tm), nil
			}
			if tm, ok := parseTimestamp(d); ok {
				return DateValueOf(tm), nil
			}
		default:
			if i, ok := toInt64(v); ok {
				return DateValue(i), nil
			}
		}
	case Timestamp:
		switch tm := v.(type) {
		case time.Time:
			return TimestampValue(tm), nil
		case string:
			if parsed, ok := parseTimestamp(tm); ok {
				return TimestampValue(parsed), nil
			}
		}
	}

	return Value{}, errCannotAppend(t, v)
}

var timestampLayouts = [...]string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// number is implemented by json.Number, which decoders produce to retain the
// precision of large integers.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func toInt64(v interface{}) (int64, bool) {
	if n, ok := v.(number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return r.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := r.Uint()
		return int64(u), u <= math.MaxInt64
	case reflect.Float32, reflect.Float64:
		f := r.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	if n, ok := v.(number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Float32, reflect.Float64:
		return r.Float(), true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, true
	case string:
		parsed, err := decimal.NewFromString(d)
		return parsed, err == nil
	case float64:
		return decimal.NewFromFloat(d), true
	case float32:
		return decimal.NewFromFloat32(d), true
	case number:
		parsed, err := decimal.NewFromString(d.String())
		return parsed, err == nil
	}
	if i, ok := toInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Decimal{}, false
}

func errCannotAppend(t Type, v interface{}) error {
	return fmt.Errorf("cannot append value of type %T to column of type %s", v, t)
}
