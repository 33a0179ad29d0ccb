package lazybinary

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the logical type of a column.
type Kind int8

const (
	Boolean Kind = iota
	Tinyint
	Smallint
	Integer
	Bigint
	Real
	Double
	Decimal
	Varchar
	Varbinary
	Date
	Timestamp
	Array
	Map
	Row
)

var kindNames = [...]string{
	Boolean:   "BOOLEAN",
	Tinyint:   "TINYINT",
	Smallint:  "SMALLINT",
	Integer:   "INTEGER",
	Bigint:    "BIGINT",
	Real:      "REAL",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	Varchar:   "VARCHAR",
	Varbinary: "VARBINARY",
	Date:      "DATE",
	Timestamp: "TIMESTAMP",
	Array:     "ARRAY",
	Map:       "MAP",
	Row:       "ROW",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNDEFINED"
}

// Type is the logical type of a column. The string form of a type uses the
// Hive type syntax and can be parsed back with ParseType.
type Type interface {
	fmt.Stringer

	// Kind returns the kind of values held by columns of this type.
	Kind() Kind

	// NewBuilder returns a builder accumulating values of this type.
	NewBuilder(capacity int) BlockBuilder
}

var (
	BooleanType   Type = booleanType{}
	TinyintType   Type = tinyintType{}
	SmallintType  Type = smallintType{}
	IntegerType   Type = integerType{}
	BigintType    Type = bigintType{}
	RealType      Type = realType{}
	DoubleType    Type = doubleType{}
	VarcharType   Type = VarcharOf(0)
	VarbinaryType Type = varbinaryType{}
	DateType      Type = dateType{}
	TimestampType Type = timestampType{}
)

type booleanType struct{}

func (t booleanType) String() string { return "boolean" }

func (t booleanType) Kind() Kind { return Boolean }

func (t booleanType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type tinyintType struct{}

func (t tinyintType) String() string { return "tinyint" }

func (t tinyintType) Kind() Kind { return Tinyint }

func (t tinyintType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type smallintType struct{}

func (t smallintType) String() string { return "smallint" }

func (t smallintType) Kind() Kind { return Smallint }

func (t smallintType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type integerType struct{}

func (t integerType) String() string { return "int" }

func (t integerType) Kind() Kind { return Integer }

func (t integerType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type bigintType struct{}

func (t bigintType) String() string { return "bigint" }

func (t bigintType) Kind() Kind { return Bigint }

func (t bigintType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type realType struct{}

func (t realType) String() string { return "float" }

func (t realType) Kind() Kind { return Real }

func (t realType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type doubleType struct{}

func (t doubleType) String() string { return "double" }

func (t doubleType) Kind() Kind { return Double }

func (t doubleType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type varbinaryType struct{}

func (t varbinaryType) String() string { return "binary" }

func (t varbinaryType) Kind() Kind { return Varbinary }

func (t varbinaryType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type dateType struct{}

func (t dateType) String() string { return "date" }

func (t dateType) Kind() Kind { return Date }

func (t dateType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

type timestampType struct{}

func (t timestampType) String() string { return "timestamp" }

func (t timestampType) Kind() Kind { return Timestamp }

func (t timestampType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

// VarcharOf returns a string type bounded to length characters. A length of
// zero means unbounded.
func VarcharOf(length int) Type { return varcharType{length: length} }

type varcharType struct{ length int }

func (t varcharType) String() string {
	if t.length <= 0 {
		return "string"
	}
	return "varchar(" + strconv.Itoa(t.length) + ")"
}

func (t varcharType) Kind() Kind { return Varchar }

// Length returns the maximum number of characters of values, zero if
// unbounded.
func (t varcharType) Length() int { return t.length }

func (t varcharType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

// DecimalType is the type of fixed precision decimal numbers.
type DecimalType struct {
	Precision int
	Scale     int
}

// MaxDecimalPrecision is the largest precision supported by decimal columns.
const MaxDecimalPrecision = 38

// DecimalOf constructs a decimal type. It panics if the precision or scale are
// out of range.
func DecimalOf(precision, scale int) *DecimalType {
	if precision <= 0 || precision > MaxDecimalPrecision {
		panic("decimal precision out of range: " + strconv.Itoa(precision))
	}
	if scale < 0 || scale > precision {
		panic("decimal scale out of range: " + strconv.Itoa(scale))
	}
	return &DecimalType{Precision: precision, Scale: scale}
}

func (t *DecimalType) String() string {
	return "decimal(" + strconv.Itoa(t.Precision) + "," + strconv.Itoa(t.Scale) + ")"
}

func (t *DecimalType) Kind() Kind { return Decimal }

func (t *DecimalType) NewBuilder(capacity int) BlockBuilder { return newPrimitiveBuilder(t, capacity) }

// ArrayType is the type of variable length lists of a single element type.
type ArrayType struct {
	Elem Type
}

func ArrayOf(elem Type) *ArrayType { return &ArrayType{Elem: elem} }

func (t *ArrayType) String() string { return "array<" + t.Elem.String() + ">" }

func (t *ArrayType) Kind() Kind { return Array }

func (t *ArrayType) NewBuilder(capacity int) BlockBuilder { return newArrayBuilder(t, capacity) }

// MapType is the type of key/value associations.
type MapType struct {
	Key   Type
	Value Type
}

func MapOf(key, value Type) *MapType { return &MapType{Key: key, Value: value} }

func (t *MapType) String() string {
	return "map<" + t.Key.String() + "," + t.Value.String() + ">"
}

func (t *MapType) Kind() Kind { return Map }

func (t *MapType) NewBuilder(capacity int) BlockBuilder { return newMapBuilder(t, capacity) }

// RowField is a named member of a row type. Anonymous rows leave Name empty.
type RowField struct {
	Name string
	Type Type
}

func NewField(name string, typ Type) RowField { return RowField{Name: name, Type: typ} }

// RowType is the type of fixed schema tuples (structs).
type RowType struct {
	Fields []RowField
}

// RowOf constructs a row type from the list of fields. The slice is copied so
// the returned type is never affected by later changes to the argument.
func RowOf(fields ...RowField) *RowType {
	return &RowType{Fields: append([]RowField{}, fields...)}
}

// AnonymousRowOf constructs a row type with unnamed fields of the given types.
func AnonymousRowOf(types ...Type) *RowType {
	fields := make([]RowField, len(types))
	for i, t := range types {
		fields[i] = RowField{Type: t}
	}
	return &RowType{Fields: fields}
}

func (t *RowType) String() string {
	s := new(strings.Builder)
	s.WriteString("struct<")
	for i, f := range t.Fields {
		if i != 0 {
			s.WriteString(",")
		}
		name := f.Name
		if name == "" {
			name = "_col" + strconv.Itoa(i)
		}
		s.WriteString(name)
		s.WriteString(":")
		s.WriteString(f.Type.String())
	}
	s.WriteString(">")
	return s.String()
}

func (t *RowType) Kind() Kind { return Row }

func (t *RowType) NewBuilder(capacity int) BlockBuilder { return newRowBuilder(t, capacity) }

// FieldName returns the name of field i, or a positional name when the field
// is anonymous.
func (t *RowType) FieldName(i int) string {
	if name := t.Fields[i].Name; name != "" {
		return name
	}
	return "_col" + strconv.Itoa(i)
}
