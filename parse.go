package lazybinary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidType is returned by ParseType when the input is not a valid type
// string. It is wrapped with the position of the problem.
var ErrInvalidType = errors.New("invalid type")

// ParseType parses a Hive type string such as
//
//	struct<id:bigint,tags:array<string>,attrs:map<string,decimal(10,2)>>
//
// Type names are case insensitive.
func ParseType(s string) (Type, error) {
	p := &typeParser{input: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected %q after type", p.input[p.pos:])
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) errorf(msg string, args ...interface{}) error {
	return fmt.Errorf("%w: %s at offset %d of %q", ErrInvalidType, fmt.Sprintf(msg, args...), p.pos, p.input)
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *typeParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *typeParser) identifier() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *typeParser) integer() (int, error) {
	s := p.identifier()
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("expected integer but found %q", s)
	}
	return n, nil
}

// parameters parses an optional list of integer parameters in parenthesis.
func (p *typeParser) parameters() ([]int, error) {
	if p.peek() != '(' {
		return nil, nil
	}
	p.pos++
	var params []int
	for {
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		params = append(params, n)
		if p.peek() == ',' {
			p.pos++
			continue
		}
		return params, p.expect(')')
	}
}

func (p *typeParser) parseType() (Type, error) {
	name := strings.ToLower(p.identifier())

	switch name {
	case "boolean":
		return BooleanType, nil
	case "tinyint":
		return TinyintType, nil
	case "smallint":
		return SmallintType, nil
	case "int", "integer":
		return IntegerType, nil
	case "bigint":
		return BigintType, nil
	case "float", "real":
		return RealType, nil
	case "double":
		return DoubleType, nil
	case "string":
		return VarcharType, nil
	case "binary":
		return VarbinaryType, nil
	case "date":
		return DateType, nil
	case "timestamp":
		return TimestampType, nil
	case "varchar", "char":
		params, err := p.parameters()
		if err != nil {
			return nil, err
		}
		if len(params) != 1 || params[0] <= 0 {
			return nil, p.errorf("%s requires a positive length", name)
		}
		return VarcharOf(params[0]), nil
	case "decimal":
		params, err := p.parameters()
		if err != nil {
			return nil, err
		}
		precision, scale := 10, 0
		switch len(params) {
		case 0:
		case 1:
			precision = params[0]
		case 2:
			precision, scale = params[0], params[1]
		default:
			return nil, p.errorf("decimal takes at most two parameters")
		}
		if precision <= 0 || precision > MaxDecimalPrecision || scale < 0 || scale > precision {
			return nil, p.errorf("invalid decimal(%d,%d)", precision, scale)
		}
		return DecimalOf(precision, scale), nil
	case "array":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ArrayOf(elem), p.expect('>')
	case "map":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return MapOf(key, value), p.expect('>')
	case "struct":
		return p.parseStruct()
	case "":
		return nil, p.errorf("expected type name")
	default:
		return nil, p.errorf("unknown type %q", name)
	}
}

func (p *typeParser) parseStruct() (Type, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	fields := []RowField{}
	if p.peek() == '>' {
		p.pos++
		return &RowType{Fields: fields}, nil
	}
	for {
		name := p.identifier()
		if name == "" {
			return nil, p.errorf("expected field name")
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, RowField{Name: name, Type: typ})
		if p.peek() == ',' {
			p.pos++
			continue
		}
		return &RowType{Fields: fields}, p.expect('>')
	}
}
