package lazybinary

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// PrintType writes the layout of type t to w, one field per line with nested
// rows indented.
func PrintType(w io.Writer, name string, t Type) error {
	return PrintTypeIndent(w, name, t, "\t", "\n")
}

func PrintTypeIndent(w io.Writer, name string, t Type, pattern, newline string) error {
	pw := &printWriter{writer: w}
	pi := &printIndent{
		pattern: pattern,
		newline: newline,
	}
	printWithIndent(pw, name, t, pi)
	return pw.err
}

func printWithIndent(w io.StringWriter, name string, t Type, indent *printIndent) {
	indent.writeTo(w)

	row, ok := t.(*RowType)
	if !ok {
		if name != "" {
			w.WriteString(name)
			w.WriteString(" ")
		}
		w.WriteString(t.String())
		w.WriteString(";")
		return
	}

	w.WriteString("struct")
	if name != "" {
		w.WriteString(" ")
		w.WriteString(name)
	}
	w.WriteString(" {")

	if len(row.Fields) > 0 {
		indent.writeNewLine(w)
		indent.push()

		for i, f := range row.Fields {
			printWithIndent(w, row.FieldName(i), f.Type, indent)
			indent.writeNewLine(w)
		}

		indent.pop()
		indent.writeTo(w)
	}

	w.WriteString("}")
}

// Print writes the values of b to w as a table. Row blocks get one column per
// field, other blocks are printed in a single column.
func Print(w io.Writer, b Block) error {
	pw := &printWriter{writer: w}
	table := tablewriter.NewWriter(pw)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	switch block := b.(type) {
	case *RowBlock:
		typ := block.Type().(*RowType)
		header := make([]string, block.NumFields())
		for i := range header {
			header[i] = typ.FieldName(i)
		}
		table.SetHeader(header)

		for i := 0; i < block.Len(); i++ {
			cells := make([]string, block.NumFields())
			for j := range cells {
				if block.IsNull(i) {
					cells[j] = "NULL"
				} else {
					cells[j] = FormatObject(Object(block.Field(j), i))
				}
			}
			table.Append(cells)
		}

	default:
		table.SetHeader([]string{b.Type().String()})
		for i := 0; i < b.Len(); i++ {
			table.Append([]string{FormatObject(Object(b, i))})
		}
	}

	table.Render()
	return pw.err
}

// FormatObject returns a human readable representation of a value returned
// by Object.
func FormatObject(v interface{}) string {
	s := new(strings.Builder)
	formatObject(s, v, false)
	return s.String()
}

func formatObject(w *strings.Builder, v interface{}, quote bool) {
	switch value := v.(type) {
	case nil:
		w.WriteString("NULL")
	case string:
		if quote {
			fmt.Fprintf(w, "%q", value)
		} else {
			w.WriteString(value)
		}
	case []byte:
		w.WriteString("0x")
		w.WriteString(hex.EncodeToString(value))
	case decimal.Decimal:
		w.WriteString(value.String())
	case time.Time:
		if value.Hour() == 0 && value.Minute() == 0 && value.Second() == 0 && value.Nanosecond() == 0 {
			w.WriteString(value.Format("2006-01-02"))
		} else {
			w.WriteString(value.Format("2006-01-02 15:04:05.999999999"))
		}
	case []interface{}:
		w.WriteString("[")
		for i, elem := range value {
			if i != 0 {
				w.WriteString(", ")
			}
			formatObject(w, elem, true)
		}
		w.WriteString("]")
	case []KeyValue:
		w.WriteString("{")
		for i, kv := range value {
			if i != 0 {
				w.WriteString(", ")
			}
			formatObject(w, kv.Key, true)
			w.WriteString(": ")
			formatObject(w, kv.Value, true)
		}
		w.WriteString("}")
	default:
		fmt.Fprint(w, value)
	}
}

type printIndent struct {
	pattern string
	newline string
	repeat  int
}

func (i *printIndent) push() {
	i.repeat++
}

func (i *printIndent) pop() {
	i.repeat--
}

func (i *printIndent) writeTo(w io.StringWriter) {
	if i.pattern != "" {
		for n := i.repeat; n > 0; n-- {
			w.WriteString(i.pattern)
		}
	}
}

func (i *printIndent) writeNewLine(w io.StringWriter) {
	if i.newline != "" {
		w.WriteString(i.newline)
	}
}

type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.writer.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *printWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.writer, s)
	if err != nil {
		w.err = err
	}
	return n, err
}

var (
	_ io.StringWriter = (*printWriter)(nil)
)
