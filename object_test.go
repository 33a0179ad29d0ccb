package lazybinary_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lazybinary "github.com/segmentio/lazybinary-go"
)

func appendObjects(t *testing.T, typ lazybinary.Type, values ...interface{}) []interface{} {
	t.Helper()
	b := typ.NewBuilder(len(values))
	for _, v := range values {
		require.NoError(t, lazybinary.Append(b, v))
	}
	return lazybinary.Objects(b.Build())
}

func TestAppendConversions(t *testing.T) {
	id := uuid.MustParse("a6b4e3c2-1f4d-4c8e-9a3b-2d1e0f9c8b7a")

	tests := []struct {
		scenario string
		typ      lazybinary.Type
		input    interface{}
		output   interface{}
	}{
		{"json number to tinyint", lazybinary.TinyintType, float64(-3), int8(-3)},
		{"json number to int", lazybinary.IntegerType, float64(42), int32(42)},
		{"int to bigint", lazybinary.BigintType, 42, int64(42)},
		{"int to double", lazybinary.DoubleType, 3, float64(3)},
		{"string to decimal", lazybinary.DecimalOf(5, 2), "1.5", decimal.RequireFromString("1.50")},
		{"number to decimal", lazybinary.DecimalOf(5, 2), 2.25, decimal.RequireFromString("2.25")},
		{"string to date", lazybinary.DateType, "2020-01-02", time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"number to date", lazybinary.DateType, float64(1), time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 timestamp", lazybinary.TimestampType, "2021-03-04T05:06:07.5Z", time.Date(2021, 3, 4, 5, 6, 7, 5e8, time.UTC)},
		{"hive timestamp", lazybinary.TimestampType, "2021-03-04 05:06:07", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)},
		{"uuid to string", lazybinary.VarcharType, id, id.String()},
		{"uuid to binary", lazybinary.VarbinaryType, id, id[:]},
		{"string to binary", lazybinary.VarbinaryType, "ab", []byte("ab")},
		{"bytes to string", lazybinary.VarcharType, []byte("ab"), "ab"},
		{"value", lazybinary.IntegerType, lazybinary.IntegerValue(3), int32(3)},
		{"json.Number to bigint", lazybinary.BigintType, json.Number("9007199254740993"), int64(9007199254740993)},
		{"json.Number to double", lazybinary.DoubleType, json.Number("0.25"), 0.25},
		{"json.Number to decimal", lazybinary.DecimalOf(20, 1), json.Number("12345678901234567.5"), decimal.RequireFromString("12345678901234567.5")},
		{"json entries to map", lazybinary.MapOf(lazybinary.VarcharType, lazybinary.IntegerType),
			[]interface{}{map[string]interface{}{"key": "b", "value": float64(1)}, map[string]interface{}{"key": "a"}},
			[]lazybinary.KeyValue{{Key: "b", Value: int32(1)}, {Key: "a", Value: nil}}},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			objects := appendObjects(t, test.typ, test.input)
			switch want := test.output.(type) {
			case decimal.Decimal:
				assert.True(t, want.Equal(objects[0].(decimal.Decimal)), "%v", objects[0])
			case time.Time:
				assert.True(t, want.Equal(objects[0].(time.Time)), "%v", objects[0])
			default:
				assert.Equal(t, test.output, objects[0])
			}
		})
	}
}

func TestAppendErrors(t *testing.T) {
	tests := []struct {
		scenario string
		typ      lazybinary.Type
		input    interface{}
	}{
		{"fractional int", lazybinary.IntegerType, 1.5},
		{"tinyint overflow", lazybinary.TinyintType, 128},
		{"int overflow", lazybinary.IntegerType, float64(1 << 40)},
		{"string to int", lazybinary.IntegerType, "1"},
		{"bad date", lazybinary.DateType, "01/02/2020"},
		{"bad decimal", lazybinary.DecimalOf(5, 2), "abc"},
		{"scalar to array", lazybinary.ArrayOf(lazybinary.IntegerType), 1},
		{"scalar to map", lazybinary.MapOf(lazybinary.IntegerType, lazybinary.IntegerType), 1},
		{"json.Number fraction to int", lazybinary.IntegerType, json.Number("1.5")},
		{"json entry is not an object", lazybinary.MapOf(lazybinary.IntegerType, lazybinary.IntegerType), []interface{}{1}},
		{"null map key", lazybinary.MapOf(lazybinary.IntegerType, lazybinary.IntegerType), []lazybinary.KeyValue{{Key: nil, Value: 1}}},
		{"row too long", lazybinary.MustParseType("struct<a:int>"), []interface{}{1, 2}},
		{"bad row field", lazybinary.MustParseType("struct<a:int>"), []interface{}{"x"}},
		{"value kind", lazybinary.IntegerType, lazybinary.BigintValue(1)},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			b := test.typ.NewBuilder(1)
			assert.Error(t, lazybinary.Append(b, test.input))
			assert.LessOrEqual(t, b.Len(), 1)
		})
	}
}

func TestAppendNested(t *testing.T) {
	typ := lazybinary.MustParseType("struct<id:bigint,tags:array<string>,attrs:map<string,int>,pos:struct<x:double,y:double>>")

	objects := appendObjects(t, typ,
		map[string]interface{}{
			"id":    float64(1),
			"tags":  []interface{}{"a", nil},
			"attrs": map[string]interface{}{"b": float64(2), "a": float64(1)},
			"pos":   []interface{}{1.5, -1.5},
		},
		[]interface{}{2},
		nil,
	)

	assert.Equal(t, []interface{}{
		[]interface{}{
			int64(1),
			[]interface{}{"a", nil},
			[]lazybinary.KeyValue{{Key: "a", Value: int32(1)}, {Key: "b", Value: int32(2)}},
			[]interface{}{1.5, -1.5},
		},
		[]interface{}{int64(2), nil, nil, nil},
		nil,
	}, objects)
}
