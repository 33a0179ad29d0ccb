package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/segmentio/lazybinary-go/internal/vint"
)

// appendFrame appends row to dst, prefixed with its length.
func appendFrame(dst, row []byte) []byte {
	return append(vint.Append(dst, int64(len(row))), row...)
}

type frameReader struct {
	reader *bufio.Reader
	buffer []byte
	offset int64
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{reader: bufio.NewReader(r)}
}

// next returns the next row of the stream, or io.EOF at the end of the
// stream. The returned slice is only valid until the next call.
func (f *frameReader) next() ([]byte, error) {
	first, err := f.reader.ReadByte()
	if err != nil {
		return nil, err
	}

	size := vint.DecodeSize(first)
	f.buffer = append(f.buffer[:0], first)
	f.buffer = f.grow(size)
	if _, err := io.ReadFull(f.reader, f.buffer[1:size]); err != nil {
		return nil, f.truncated(err)
	}

	n, _, err := vint.Read(f.buffer, 0)
	if err != nil {
		return nil, fmt.Errorf("frame at offset %d: %w", f.offset, err)
	}
	if n < 0 || n > math.MaxInt32 {
		return nil, fmt.Errorf("frame at offset %d: invalid length %d", f.offset, n)
	}

	f.buffer = f.grow(int(n))
	if _, err := io.ReadFull(f.reader, f.buffer); err != nil {
		return nil, f.truncated(err)
	}
	f.offset += int64(size) + n
	return f.buffer, nil
}

func (f *frameReader) grow(size int) []byte {
	if cap(f.buffer) < size {
		b := make([]byte, size)
		copy(b, f.buffer)
		return b
	}
	return f.buffer[:size]
}

func (f *frameReader) truncated(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("frame at offset %d: %w", f.offset, err)
}
