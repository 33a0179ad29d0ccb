//go:build go1.18
// +build go1.18

package encoding_test

import (
	"testing"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/encoding"
	"github.com/segmentio/lazybinary-go/encoding/fuzz"
)

func FuzzStruct(f *testing.F) {
	e := encoding.MustFor(lazybinary.MustParseType(
		"struct<a:int,b:string,c:array<bigint>,d:map<varchar(4),double>,e:struct<x:timestamp,y:decimal(12,3)>>",
	))
	fuzz.Decode(f, e,
		nil,
		[]byte{0x01, 0x05},
		[]byte{0x1F, 0x01, 0x01, 'x', 0, 0, 0, 2, 1, 0x00, 0, 0, 0, 1, 0, 0, 0, 0, 5, 0x01, 0, 0, 0, 1},
	)
}

func FuzzList(f *testing.F) {
	fuzz.Decode(f, encoding.MustFor(lazybinary.MustParseType("array<struct<a:smallint,b:binary>>")),
		[]byte{0x00},
		[]byte{0x02, 0x01, 0, 0, 0, 4, 0x03, 0, 1, 0},
	)
}

func FuzzMap(f *testing.F) {
	fuzz.Decode(f, encoding.MustFor(lazybinary.MustParseType("map<int,date>")),
		[]byte{0x00},
		[]byte{0x02, 0x0E, 0x05, 0x01, 0x02},
	)
}

func FuzzTimestamp(f *testing.F) {
	fuzz.Decode(f, encoding.MustFor(lazybinary.TimestampType),
		[]byte{0x80, 0x00, 0x00, 0x01, 0x8E, 0x01, 0x41},
		[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	)
}

func FuzzDecimal(f *testing.F) {
	fuzz.Decode(f, encoding.MustFor(lazybinary.DecimalOf(38, 6)),
		[]byte{0x02, 0x02, 0x04, 0xD2},
	)
}
