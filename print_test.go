package lazybinary_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lazybinary "github.com/segmentio/lazybinary-go"
)

func TestPrintType(t *testing.T) {
	tests := []struct {
		typ   lazybinary.Type
		print string
	}{
		{
			typ: lazybinary.MustParseType("struct<on:boolean>"),
			print: `struct Test {
	on boolean;
}`,
		},

		{
			typ:   lazybinary.RowOf(),
			print: `struct Test {}`,
		},

		{
			typ:   lazybinary.MustParseType("map<string,decimal(10,2)>"),
			print: `Test map<string,decimal(10,2)>;`,
		},

		{
			typ: lazybinary.MustParseType("struct<a:int,b:struct<c:string>,d:array<int>>"),
			print: `struct Test {
	a int;
	struct b {
		c string;
	}
	d array<int>;
}`,
		},

		{
			typ: lazybinary.AnonymousRowOf(lazybinary.BigintType, lazybinary.VarcharOf(8)),
			print: `struct Test {
	_col0 bigint;
	_col1 varchar(8);
}`,
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			buf := new(strings.Builder)

			if err := lazybinary.PrintType(buf, "Test", test.typ); err != nil {
				t.Fatal(err)
			}

			if buf.String() != test.print {
				t.Errorf("\nexpected:\n\n%s\n\nfound:\n\n%s\n", test.print, buf.String())
			}
		})
	}
}

func TestPrintTypeIndent(t *testing.T) {
	buf := new(strings.Builder)
	require.NoError(t, lazybinary.PrintTypeIndent(buf, "", lazybinary.MustParseType("struct<a:int,b:string>"), "", " "))
	assert.Equal(t, "struct { a int; b string; }", buf.String())
}

func TestPrint(t *testing.T) {
	typ := lazybinary.MustParseType("struct<id:bigint,name:string,tags:array<string>>")
	b := typ.NewBuilder(3)
	require.NoError(t, lazybinary.Append(b, []interface{}{1, "alice", []interface{}{"a", "b"}}))
	require.NoError(t, lazybinary.Append(b, []interface{}{2, nil, nil}))
	require.NoError(t, lazybinary.Append(b, nil))

	buf := new(strings.Builder)
	require.NoError(t, lazybinary.Print(buf, b.Build()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7, out)
	for _, s := range []string{"id", "name", "tags", "alice", `["a", "b"]`} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, 3, strings.Count(lines[5], "NULL"), out)
}

func TestPrintPrimitiveBlock(t *testing.T) {
	b := lazybinary.DateType.NewBuilder(2)
	require.NoError(t, lazybinary.Append(b, "2020-01-02"))
	require.NoError(t, lazybinary.Append(b, nil))

	buf := new(strings.Builder)
	require.NoError(t, lazybinary.Print(buf, b.Build()))
	assert.Contains(t, buf.String(), "date")
	assert.Contains(t, buf.String(), "2020-01-02")
	assert.Contains(t, buf.String(), "NULL")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestPrintWriteError(t *testing.T) {
	err := lazybinary.PrintType(failingWriter{}, "Test", lazybinary.IntegerType)
	assert.EqualError(t, err, "write failed")
}

func TestFormatObject(t *testing.T) {
	tests := []struct {
		value  interface{}
		format string
	}{
		{nil, "NULL"},
		{int32(42), "42"},
		{"plain", "plain"},
		{[]byte{0xde, 0xad}, "0xdead"},
		{decimal.RequireFromString("12.34"), "12.34"},
		{time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), "2020-01-02"},
		{time.Date(2021, 3, 4, 5, 6, 7, 5e8, time.UTC), "2021-03-04 05:06:07.5"},
		{[]interface{}{int32(1), "a", nil}, `[1, "a", NULL]`},
		{[]lazybinary.KeyValue{{Key: "k", Value: int64(1)}, {Key: "n", Value: nil}}, `{"k": 1, "n": NULL}`},
	}

	for _, test := range tests {
		assert.Equal(t, test.format, lazybinary.FormatObject(test.value))
	}
}
