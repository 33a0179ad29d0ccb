package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/encoding"
)

func newEncodeCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode JSON values to a stream of rows",
		Long: `Encode a sequence of JSON values to a framed LazyBinary stream written to
stdout. Each value is either an array holding the fields of a row in schema
order, or an object mapping field names to values. Values are read from stdin
when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return encodeCommand(cmd, cfg, args)
		},
	}
}

func encodeCommand(cmd *cobra.Command, cfg *config, args []string) error {
	typ, err := cfg.rowType()
	if err != nil {
		return err
	}
	enc, err := encoding.For(typ)
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	decoder := json.NewDecoder(input)
	decoder.UseNumber()
	output := bufio.NewWriter(cmd.OutOrStdout())

	var row, frame []byte

	for rows := 0; ; rows++ {
		var value interface{}
		if err := decoder.Decode(&value); err != nil {
			if err == io.EOF {
				pdebugf("encoded %d rows", rows)
				break
			}
			return fmt.Errorf("row %d: %w", rows, err)
		}
		if value == nil {
			return fmt.Errorf("row %d: rows cannot be null", rows)
		}

		builder := typ.NewBuilder(1)
		if err := lazybinary.Append(builder, value); err != nil {
			return fmt.Errorf("row %d: %w", rows, err)
		}
		if row, err = enc.Encode(row[:0], builder.Build(), 0); err != nil {
			return fmt.Errorf("row %d: %w", rows, err)
		}

		frame = appendFrame(frame[:0], row)
		if _, err := output.Write(frame); err != nil {
			return err
		}
	}

	return output.Flush()
}
