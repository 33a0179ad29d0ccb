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

func TestEncodeColumn(t *testing.T) {
	e := encoding.MustFor(lazybinary.MustParseType("struct<a:int,b:string>"))
	block := test.Column(t, e,
		[]interface{}{1, "x"},
		nil,
		[]interface{}{nil, nil},
	)

	buf, lengths, err := encoding.EncodeColumn(e, []byte{0xAA}, block)
	require.NoError(t, err)
	lbtest.AssertBytes(t, lbtest.Bytes(0xAA, 0b11, 1, 1, "x", 0b00), buf)
	assert.Equal(t, []int{4, 0, 1}, lengths)

	b := e.Type().NewBuilder(3)
	require.NoError(t, encoding.DecodeColumn(e, b, buf[1:], lengths))
	assert.Equal(t, []interface{}{
		[]interface{}{int32(1), "x"},
		nil,
		[]interface{}{nil, nil},
	}, lazybinary.Objects(b.Build()))
}

func TestEncodeColumnError(t *testing.T) {
	e := encoding.MustFor(lazybinary.DecimalOf(2, 0))
	block := test.Column(t, e, 1, 100, 2)

	buf, lengths, err := encoding.EncodeColumn(e, nil, block)
	assert.True(t, errors.Is(err, encoding.ErrSchemaMismatch), "%v", err)
	assert.Equal(t, []int{3}, lengths)
	lbtest.AssertBytes(t, lbtest.Bytes(0, 1, 1), buf)
}

func TestDecodeColumnMalformed(t *testing.T) {
	e := encoding.MustFor(lazybinary.VarcharType)

	tests := []struct {
		scenario string
		data     []byte
		lengths  []int
	}{
		{"length past the data", lbtest.Bytes(1, "a"), []int{3}},
		{"negative length", lbtest.Bytes(1, "a"), []int{-1}},
		{"value shorter than its length", lbtest.Bytes(1, "a", 0), []int{3}},
		{"value longer than its length", lbtest.Bytes(2, "ab"), []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			err := encoding.DecodeColumn(e, e.Type().NewBuilder(1), tt.data, tt.lengths)
			assert.True(t, errors.Is(err, encoding.ErrMalformedInput), "%v", err)
		})
	}
}
