package lazybinary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lazybinary "github.com/segmentio/lazybinary-go"
)

func TestPrimitiveBuilder(t *testing.T) {
	b := lazybinary.IntegerType.NewBuilder(0).(*lazybinary.PrimitiveBuilder)
	b.Append(lazybinary.IntegerValue(1))
	b.AppendNull()
	b.Append(lazybinary.Value{})

	block := b.Build().(*lazybinary.PrimitiveBlock)
	assert.Equal(t, 3, block.Len())
	assert.False(t, block.IsNull(0))
	assert.True(t, block.IsNull(1))
	assert.True(t, block.IsNull(2))
	assert.Equal(t, int64(1), block.Value(0).Int64())

	assert.Panics(t, func() { b.Append(lazybinary.BigintValue(1)) })
}

func TestArrayBuilder(t *testing.T) {
	b := lazybinary.ArrayOf(lazybinary.IntegerType).NewBuilder(0).(*lazybinary.ArrayBuilder)

	entry := b.BeginEntry()
	elements := entry.Elements().(*lazybinary.PrimitiveBuilder)
	elements.Append(lazybinary.IntegerValue(1))
	elements.Append(lazybinary.IntegerValue(2))
	assert.Panics(t, func() { b.BeginEntry() })
	assert.Panics(t, func() { b.AppendNull() })
	entry.Commit()
	entry.Commit()

	b.AppendNull()
	b.BeginEntry().Commit()

	block := b.Build().(*lazybinary.ArrayBlock)
	require.Equal(t, 3, block.Len())
	assert.True(t, block.IsNull(1))

	_, offset, length := block.Elements(0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 2, length)

	_, offset, length = block.Elements(2)
	assert.Equal(t, 2, offset)
	assert.Equal(t, 0, length)
}

func TestMapBuilderPadsEntries(t *testing.T) {
	b := lazybinary.MapOf(lazybinary.VarcharType, lazybinary.IntegerType).NewBuilder(0).(*lazybinary.MapBuilder)

	entry := b.BeginEntry()
	entry.Keys().(*lazybinary.PrimitiveBuilder).Append(lazybinary.VarcharValue("a"))
	entry.Keys().(*lazybinary.PrimitiveBuilder).Append(lazybinary.VarcharValue("b"))
	entry.Values().(*lazybinary.PrimitiveBuilder).Append(lazybinary.IntegerValue(1))
	entry.Commit()

	block := b.Build().(*lazybinary.MapBlock)
	keys, values, offset, length := block.Entries(0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 2, length)
	assert.Equal(t, 2, keys.Len())
	assert.Equal(t, 2, values.Len())
	assert.True(t, values.IsNull(1))
}

func TestRowBuilder(t *testing.T) {
	typ := lazybinary.MustParseType("struct<a:int,b:string,c:array<int>>")
	b := typ.NewBuilder(0).(*lazybinary.RowBuilder)

	entry := b.BeginEntry()
	assert.Equal(t, 3, entry.NumFields())
	entry.Field(0).(*lazybinary.PrimitiveBuilder).Append(lazybinary.IntegerValue(7))
	assert.Panics(t, func() { b.Build() })
	entry.Commit()
	entry.Commit()

	b.AppendNull()

	block := b.Build().(*lazybinary.RowBlock)
	require.Equal(t, 2, block.Len())
	assert.Equal(t, 3, block.NumFields())
	for i := 0; i < block.NumFields(); i++ {
		assert.Equal(t, 2, block.Field(i).Len(), "field %d", i)
		assert.True(t, block.Field(i).IsNull(1), "field %d", i)
	}
	assert.False(t, block.IsNull(0))
	assert.True(t, block.IsNull(1))
	assert.True(t, block.Field(1).IsNull(0))
	assert.True(t, block.Field(2).IsNull(0))
	assert.Equal(t, []interface{}{int32(7), nil, nil}, lazybinary.Object(block, 0))
}
