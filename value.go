package lazybinary

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value holds a single scalar value of a primitive column.
//
// The zero-value of Value is a null value.
type Value struct {
	// data
	ptr []byte
	u64 uint64
	// type
	kind int8 // XOR(Kind) so the zero-value is <nil>
}

// ValueOf constructs a value from a go value. It panics if the go type has no
// corresponding column kind.
func ValueOf(v interface{}) Value {
	switch value := v.(type) {
	case nil:
		return Value{}
	case Value:
		return value
	case uuid.UUID:
		return makeValueBytes(Varbinary, value[:])
	case time.Time:
		return TimestampValue(value)
	case decimal.Decimal:
		scale := -int(value.Exponent())
		if scale < 0 {
			scale = 0
		}
		return DecimalValue(value, scale)
	}

	t := reflect.TypeOf(v)
	r := reflect.ValueOf(v)

	switch t.Kind() {
	case reflect.Bool:
		return BooleanValue(r.Bool())
	case reflect.Int8:
		return TinyintValue(int8(r.Int()))
	case reflect.Int16:
		return SmallintValue(int16(r.Int()))
	case reflect.Int32:
		return IntegerValue(int32(r.Int()))
	case reflect.Int64, reflect.Int:
		return BigintValue(r.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return BigintValue(int64(r.Uint()))
	case reflect.Float32:
		return RealValue(float32(r.Float()))
	case reflect.Float64:
		return DoubleValue(r.Float())
	case reflect.String:
		return VarcharValue(r.String())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return VarbinaryValue(r.Bytes())
		}
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			b := make([]byte, r.Len())
			reflect.Copy(reflect.ValueOf(b), r)
			return makeValueBytes(Varbinary, b)
		}
	}

	panic("cannot create value from go value of type " + t.String())
}

func BooleanValue(value bool) Value {
	v := Value{kind: ^int8(Boolean)}
	if value {
		v.u64 = 1
	}
	return v
}

func TinyintValue(value int8) Value { return makeValueInt(Tinyint, int64(value)) }

func SmallintValue(value int16) Value { return makeValueInt(Smallint, int64(value)) }

func IntegerValue(value int32) Value { return makeValueInt(Integer, int64(value)) }

func BigintValue(value int64) Value { return makeValueInt(Bigint, value) }

func RealValue(value float32) Value {
	return Value{kind: ^int8(Real), u64: uint64(math.Float32bits(value))}
}

func DoubleValue(value float64) Value {
	return Value{kind: ^int8(Double), u64: math.Float64bits(value)}
}

func VarcharValue(value string) Value { return makeValueBytes(Varchar, []byte(value)) }

func VarbinaryValue(value []byte) Value { return makeValueBytes(Varbinary, value) }

// DateValue constructs a date from a number of days since 1970-01-01.
func DateValue(days int64) Value { return makeValueInt(Date, days) }

// DateValueOf constructs a date from the calendar day of t.
func DateValueOf(t time.Time) Value {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	return DateValue(floorDiv(u, secondsPerDay))
}

// TimestampValue constructs a timestamp from t. Timestamps carry no zone, the
// value is the instant of t in UTC.
func TimestampValue(t time.Time) Value {
	return TimestampValueOf(t.Unix(), t.Nanosecond())
}

// TimestampValueOf constructs a timestamp from seconds since the epoch and a
// nanosecond adjustment in the range [0, 1e9).
func TimestampValueOf(seconds int64, nanos int) Value {
	return Value{
		kind: ^int8(Timestamp),
		u64:  uint64(seconds),
		ptr:  []byte{byte(nanos >> 24), byte(nanos >> 16), byte(nanos >> 8), byte(nanos)},
	}
}

// DecimalValue constructs a decimal with the given scale. The value is rounded
// half away from zero when it has more fractional digits than scale.
func DecimalValue(value decimal.Decimal, scale int) Value {
	unscaled := value.Round(int32(scale)).Coefficient()
	return makeValueDecimal(unscaled, scale)
}

// UnscaledDecimalValue constructs a decimal from its unscaled integer value.
func UnscaledDecimalValue(unscaled *big.Int, scale int) Value {
	return makeValueDecimal(unscaled, scale)
}

func makeValueDecimal(unscaled *big.Int, scale int) Value {
	return Value{
		kind: ^int8(Decimal),
		u64:  uint64(scale),
		ptr:  AppendTwosComplement(nil, unscaled),
	}
}

func makeValueInt(kind Kind, value int64) Value {
	return Value{kind: ^int8(kind), u64: uint64(value)}
}

func makeValueBytes(kind Kind, value []byte) Value {
	if value == nil {
		value = []byte{}
	}
	return Value{kind: ^int8(kind), ptr: value}
}

func (v Value) Kind() Kind { return ^Kind(v.kind) }

func (v Value) IsNull() bool { return v.kind == 0 }

func (v Value) Boolean() bool { return v.u64 != 0 }

func (v Value) Int64() int64 { return int64(v.u64) }

func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.u64)) }

func (v Value) Float64() float64 { return math.Float64frombits(v.u64) }

func (v Value) ByteArray() []byte { return v.ptr }

// Scale returns the number of fractional digits of a decimal value.
func (v Value) Scale() int { return int(v.u64) }

// Unscaled returns the unscaled integer of a decimal value.
func (v Value) Unscaled() *big.Int { return TwosComplementInt(v.ptr) }

func (v Value) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(v.Unscaled(), -int32(v.Scale()))
}

// Seconds returns the seconds since the epoch of a timestamp value.
func (v Value) Seconds() int64 { return int64(v.u64) }

// Nanos returns the nanosecond adjustment of a timestamp value.
func (v Value) Nanos() int {
	if len(v.ptr) != 4 {
		return 0
	}
	return int(v.ptr[0])<<24 | int(v.ptr[1])<<16 | int(v.ptr[2])<<8 | int(v.ptr[3])
}

// Time returns the instant of a timestamp value, or midnight UTC of a date.
func (v Value) Time() time.Time {
	switch v.Kind() {
	case Date:
		return time.Unix(v.Int64()*secondsPerDay, 0).UTC()
	default:
		return time.Unix(v.Seconds(), int64(v.Nanos())).UTC()
	}
}

func (v Value) Clone() Value {
	if v.ptr != nil {
		v.ptr = append([]byte{}, v.ptr...)
	}
	return v
}

func (v Value) Format(w fmt.State, r rune) {
	switch r {
	case 'q':
		switch v.Kind() {
		case Varchar, Varbinary:
			fmt.Fprintf(w, "%q", v.ByteArray())
		default:
			fmt.Fprintf(w, `"%s"`, v)
		}

	case 's', 'v':
		if v.IsNull() {
			io.WriteString(w, "<null>")
			return
		}
		switch v.Kind() {
		case Boolean:
			fmt.Fprint(w, v.Boolean())
		case Tinyint, Smallint, Integer, Bigint:
			fmt.Fprint(w, v.Int64())
		case Real:
			fmt.Fprint(w, v.Float32())
		case Double:
			fmt.Fprint(w, v.Float64())
		case Decimal:
			io.WriteString(w, v.Decimal().StringFixed(int32(v.Scale())))
		case Varchar, Varbinary:
			w.Write(v.ByteArray())
		case Date:
			io.WriteString(w, v.Time().Format("2006-01-02"))
		case Timestamp:
			io.WriteString(w, v.Time().Format("2006-01-02 15:04:05.999999999"))
		}
	}
}

func (v Value) String() string {
	return fmt.Sprint(v)
}

// Equal reports whether v1 and v2 hold the same kind and value.
func Equal(v1, v2 Value) bool {
	if v1.kind != v2.kind {
		return false
	}
	if v1.IsNull() {
		return true
	}
	switch v1.Kind() {
	case Real:
		return v1.Float32() == v2.Float32()
	case Double:
		return v1.Float64() == v2.Float64()
	default:
		return v1.u64 == v2.u64 && bytes.Equal(v1.ptr, v2.ptr)
	}
}

const secondsPerDay = 86400

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

var (
	_ fmt.Formatter = Value{}
	_ fmt.Stringer  = Value{}
)
