package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	lazybinary "github.com/segmentio/lazybinary-go"
	"github.com/segmentio/lazybinary-go/encoding"
)

type catFlags struct {
	JSON       bool
	CPUProfile string
	MemProfile string
}

func newCatCommand(cfg *config) *cobra.Command {
	flags := new(catFlags)

	cmd := &cobra.Command{
		Use:   "cat [file]",
		Short: "Dump the rows of a stream to stdout",
		Long: `Dump the rows of a framed LazyBinary stream to stdout, as a table or as
JSON values. The stream is read from stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return catCommand(cmd, cfg, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.JSON, "json", "j", false, "output one JSON array per row")
	cmd.Flags().StringVar(&flags.CPUProfile, "cpu-profile", "", "record a pprof CPU profile to the given file")
	cmd.Flags().StringVar(&flags.MemProfile, "mem-profile", "", "record a pprof memory profile to the given file")
	return cmd
}

func catCommand(cmd *cobra.Command, cfg *config, flags *catFlags, args []string) error {
	typ, err := cfg.rowType()
	if err != nil {
		return err
	}
	enc, err := encoding.For(typ)
	if err != nil {
		return err
	}

	if flags.CPUProfile != "" {
		f, err := os.Create(flags.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				perrorf("could not close CPU profile: %s", err)
			}
		}()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		pdebugf("started CPU profile to %s", flags.CPUProfile)
		defer pprof.StopCPUProfile()
	}

	input, closeInput, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	builder := typ.NewBuilder(64)
	frames := newFrameReader(input)

	for rows := 0; ; rows++ {
		row, err := frames.next()
		if err == io.EOF {
			pdebugf("decoded %d rows", rows)
			break
		}
		if err != nil {
			return err
		}
		if err := encoding.Decode(enc, builder, row, 0); err != nil {
			return fmt.Errorf("row %d: %w", rows, err)
		}
	}

	output := bufio.NewWriter(cmd.OutOrStdout())
	block := builder.Build()

	if flags.JSON {
		jsonEncoder := json.NewEncoder(output)
		for i := 0; i < block.Len(); i++ {
			if err := jsonEncoder.Encode(lazybinary.Object(block, i)); err != nil {
				return err
			}
		}
	} else if err := lazybinary.Print(output, block); err != nil {
		return err
	}

	if err := output.Flush(); err != nil {
		return err
	}

	if flags.MemProfile != "" {
		f, err := os.Create(flags.MemProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				perrorf("could not close memory profile: %s", err)
			}
		}()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
		pdebugf("wrote memory profile at %s", flags.MemProfile)
	}

	return nil
}

// openInput opens the file named by args, or returns stdin when args is
// empty.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("could not open file: %w", err)
	}
	return file, func() {
		if err := file.Close(); err != nil {
			perrorf("could not close file: %s", err)
		}
	}, nil
}
