// Package quick generates random columns of values for property based tests
// of the encodings.
package quick

import (
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	lazybinary "github.com/segmentio/lazybinary-go"
)

// Check is inspired by the standard quick.Check package, but generates
// values of a lazybinary type and tests columns of larger sizes, crossing the
// boundaries of null bytes.
//
// Values are in the representation returned by lazybinary.Object, roughly
// one in eight values is null.
func Check(t lazybinary.Type, f func([]interface{}) bool) error {
	r := rand.New(rand.NewSource(0))

	for _, n := range [...]int{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
		10, 15, 16, 17, 23, 24, 25,
		31, 32, 33, 63, 64, 65,
		99, 100, 101,
		127, 128, 129,
		255, 256, 257,
	} {
		for i := 0; i < 3; i++ {
			in := MakeColumn(r, t, n)
			if !f(in) {
				return fmt.Errorf("test #%d: failed on input of size %d: %s\n", i+1, n, lazybinary.FormatObject(in))
			}
		}
	}
	return nil
}

// MakeColumn returns n random values of type t.
func MakeColumn(r *rand.Rand, t lazybinary.Type, n int) []interface{} {
	column := make([]interface{}, n)
	for i := range column {
		if r.Intn(8) != 0 {
			column[i] = MakeValue(r, t)
		}
	}
	return column
}

// MakeValue returns a random non-null value of type t.
func MakeValue(r *rand.Rand, t lazybinary.Type) interface{} {
	switch t.Kind() {
	case lazybinary.Boolean:
		return r.Intn(2) == 1
	case lazybinary.Tinyint:
		return int8(r.Uint32())
	case lazybinary.Smallint:
		return int16(r.Uint32())
	case lazybinary.Integer:
		return int32(r.Uint32())
	case lazybinary.Bigint:
		return int64(r.Uint64())
	case lazybinary.Real:
		return (r.Float32() - 0.5) * 1e6
	case lazybinary.Double:
		return r.NormFloat64() * 1e12
	case lazybinary.Decimal:
		return makeDecimal(r, t.(*lazybinary.DecimalType))
	case lazybinary.Varchar:
		length := 20
		if v, ok := t.(interface{ Length() int }); ok && v.Length() > 0 && v.Length() < length {
			length = v.Length()
		}
		return makeString(r, r.Intn(length+1))
	case lazybinary.Varbinary:
		b := make([]byte, r.Intn(20))
		r.Read(b)
		return b
	case lazybinary.Date:
		days := r.Int63n(200000) - 100000
		return time.Unix(days*86400, 0).UTC()
	case lazybinary.Timestamp:
		seconds := r.Int63n(2e11) - 1e11
		nanos := int64(0)
		switch r.Intn(3) {
		case 1:
			nanos = r.Int63n(1e3) * 1e6
		case 2:
			nanos = r.Int63n(1e9)
		}
		return time.Unix(seconds, nanos).UTC()
	case lazybinary.Array:
		return MakeColumn(r, t.(*lazybinary.ArrayType).Elem, r.Intn(12))
	case lazybinary.Map:
		m := t.(*lazybinary.MapType)
		entries := make([]lazybinary.KeyValue, r.Intn(12))
		for i := range entries {
			entries[i].Key = MakeValue(r, m.Key)
			if r.Intn(8) != 0 {
				entries[i].Value = MakeValue(r, m.Value)
			}
		}
		return entries
	case lazybinary.Row:
		fields := t.(*lazybinary.RowType).Fields
		row := make([]interface{}, len(fields))
		for i, f := range fields {
			if r.Intn(8) != 0 {
				row[i] = MakeValue(r, f.Type)
			}
		}
		return row
	default:
		panic("cannot generate values of type " + t.String())
	}
}

func makeDecimal(r *rand.Rand, t *lazybinary.DecimalType) decimal.Decimal {
	digits := make([]byte, 1+r.Intn(t.Precision))
	for i := range digits {
		digits[i] = byte('0' + r.Intn(10))
	}
	unscaled, _ := new(big.Int).SetString(string(digits), 10)
	if r.Intn(2) == 0 {
		unscaled.Neg(unscaled)
	}
	return decimal.NewFromBigInt(unscaled, -int32(t.Scale))
}

var alphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789 éß日本語🙂")

func makeString(r *rand.Rand, n int) string {
	s := make([]rune, n)
	for i := range s {
		s[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(s)
}
