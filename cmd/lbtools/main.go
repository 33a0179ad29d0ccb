// Command lbtools reads and writes streams of rows in the Hive LazyBinary
// encoding.
//
// Streams are sequences of frames, each frame holding the length of a row as
// a variable length integer followed by the row encoded as a struct of the
// schema given with --schema.
//
//	lbtools encode --schema 'struct<id:bigint,name:string>' rows.json > rows.lb
//	lbtools cat --schema 'struct<id:bigint,name:string>' rows.lb
//
// * --debug outputs diagnostics on stderr, including rows which were shorter
//   than the schema and decoded with trailing nulls.
package main

import (
	"fmt"
	"os"
	"strings"

	color "github.com/logrusorgru/aurora/v3"
	"github.com/spf13/cobra"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/internal/debug"
)

type config struct {
	Schema string
	Debug  bool
}

// rowType parses the --schema flag, which must describe a struct.
func (c *config) rowType() (*lazybinary.RowType, error) {
	if c.Schema == "" {
		return nil, fmt.Errorf("missing --schema")
	}
	t, err := lazybinary.ParseType(c.Schema)
	if err != nil {
		return nil, err
	}
	row, ok := t.(*lazybinary.RowType)
	if !ok {
		return nil, fmt.Errorf("schema must be a struct type but got %s", t)
	}
	return row, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		perrorf("error: %s", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := new(config)

	root := &cobra.Command{
		Use:   "lbtools",
		Short: "Tools for streams of LazyBinary rows",
		Long: `lbtools converts between JSON values and framed streams of rows
encoded in the Hive LazyBinary format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Toggle(cfg.Debug)
		},
	}

	root.PersistentFlags().StringVarP(&cfg.Schema, "schema", "s", "", "struct type of the rows, in Hive syntax")
	root.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "display debugging logs")

	root.AddCommand(newCatCommand(cfg))
	root.AddCommand(newEncodeCommand(cfg))
	return root
}

func perrorf(format string, args ...interface{}) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	_, _ = fmt.Fprintf(os.Stderr, color.Red(format).String(), args...)
}

func pdebugf(format string, args ...interface{}) {
	debug.Format(color.Gray(12, format).String(), args...)
}
