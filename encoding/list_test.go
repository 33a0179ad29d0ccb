package encoding_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/encoding"
	"github.com/segmentio/lazybinary-go/encoding/test"
	lbtest "github.com/segmentio/lazybinary-go/internal/test"
)

func TestListEncoding(t *testing.T) {
	e := encoding.MustFor(lazybinary.ArrayOf(lazybinary.IntegerType))

	tests := []struct {
		scenario string
		value    []interface{}
		bytes    []byte
	}{
		{
			scenario: "empty",
			value:    []interface{}{},
			bytes:    lbtest.Bytes(0),
		},

		{
			scenario: "null elements",
			value:    []interface{}{1, nil, 3},
			bytes:    lbtest.Bytes(3, 0b101, 1, 3),
		},

		{
			scenario: "second null byte",
			value:    []interface{}{0, 1, 2, 3, 4, 5, 6, 7, nil},
			bytes:    lbtest.Bytes(9, 0xFF, 0x00, 0, 1, 2, 3, 4, 5, 6, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			buf, err := e.Encode(nil, test.Column(t, e, tt.value), 0)
			require.NoError(t, err)
			lbtest.AssertBytes(t, tt.bytes, buf)

			b := e.Type().NewBuilder(1)
			require.NoError(t, e.DecodeValue(b, buf, 0, len(buf)))
			got := lazybinary.Object(b.Build(), 0).([]interface{})
			require.Len(t, got, len(tt.value))
			for i, v := range tt.value {
				if v == nil {
					assert.Nil(t, got[i])
				} else {
					assert.Equal(t, int32(v.(int)), got[i])
				}
			}
		})
	}
}

func TestListOfStruct(t *testing.T) {
	e := encoding.MustFor(lazybinary.MustParseType("array<struct<a:int,b:string>>"))

	value := []interface{}{
		[]interface{}{1, "x"},
		nil,
		[]interface{}{nil, "y"},
	}
	buf, err := e.Encode(nil, test.Column(t, e, value), 0)
	require.NoError(t, err)
	lbtest.AssertBytes(t, lbtest.Bytes(
		3, 0b101,
		0, 0, 0, 4, 0b11, 1, 1, "x",
		0, 0, 0, 3, 0b10, 1, "y",
	), buf)

	test.RoundTrip(t, e, value, nil, []interface{}{}, []interface{}{nil, nil})
}

func TestListEmbeddedForm(t *testing.T) {
	e := encoding.MustFor(lazybinary.MustParseType("struct<l:array<string>,n:int>"))

	buf, err := e.Encode(nil, test.Column(t, e, []interface{}{[]interface{}{"a"}, 2}), 0)
	require.NoError(t, err)
	lbtest.AssertBytes(t, lbtest.Bytes(0b11, 0, 0, 0, 4, 1, 0b1, 1, "a", 2), buf)
}

func TestListMalformed(t *testing.T) {
	e := encoding.MustFor(lazybinary.ArrayOf(lazybinary.BigintType))

	tests := []struct {
		scenario string
		bytes    []byte
	}{
		{"null bytes past the window", lbtest.Bytes(9, 0xFF)},
		{"element past the window", lbtest.Bytes(2, 0b11, 1)},
		{"negative count", lbtest.Bytes(0xFF)},
		{"empty input", nil},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			b := e.Type().NewBuilder(1)
			err := e.DecodeValue(b, tt.bytes, 0, len(tt.bytes))
			assert.True(t, errors.Is(err, encoding.ErrMalformedInput), "%v", err)
		})
	}
}

func TestListNestedDecodeError(t *testing.T) {
	e := encoding.MustFor(lazybinary.MustParseType("array<struct<a:string>>"))

	// the string of the second element claims 7 bytes
	buf := lbtest.Bytes(2, 0b11, 0, 0, 0, 3, 0b1, 1, "x", 0, 0, 0, 2, 0b1, 7)
	b := e.Type().NewBuilder(1)
	err := e.DecodeValue(b, buf, 0, len(buf))

	var decodeErr *encoding.DecodeError
	require.True(t, errors.As(err, &decodeErr), "%v", err)
	assert.Equal(t, "a", decodeErr.Name)
	assert.True(t, errors.Is(err, encoding.ErrMalformedInput))

	block := b.Build().(*lazybinary.ArrayBlock)
	assert.Equal(t, 1, block.Len())
	elements, offset, length := block.Elements(0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 2, length)
	assert.Equal(t, 2, elements.(*lazybinary.RowBlock).Field(0).Len())
}
