package encoding

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMalformedInput is returned when decoding bytes which do not form a
	// valid value, for example a length which reaches past the end of the
	// buffer or an invalid variable length integer.
	//
	// This error is always wrapped with positional information, applications
	// must use errors.Is rather than equality comparisons to test the error
	// values returned by decoders.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSchemaMismatch is returned when the bytes or blocks given to an
	// encoding are inconsistent with the type it is bound to.
	//
	// As with ErrMalformedInput, this error may be wrapped with specific
	// information about the problem and applications are expected to use
	// errors.Is for comparisons.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidArgument is an error returned when one or more arguments
	// passed to the encoding functions are incorrect, such as encoding a null
	// value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotSupported is returned by For when no encoding exists for a type.
	ErrNotSupported = errors.New("encoding not supported")
)

// Error constructs an error which wraps err and indicates that it originated
// from the given encoding.
func Error(e Encoding, err error) error {
	return fmt.Errorf("%s: %w", e, err)
}

// Errorf is like Error but constructs the error message from the given format
// and arguments.
func Errorf(e Encoding, msg string, args ...interface{}) error {
	return Error(e, fmt.Errorf(msg, args...))
}

// DecodeError is returned when decoding a struct field fails. It records the
// position of the field in the struct and the offset of the field in the
// buffer, which helps locating corruptions in source files.
//
// Errors of nested structs are chained, errors.As returns the outermost one.
type DecodeError struct {
	// Index of the field in the struct.
	Field int
	// Name of the field, or a positional name for anonymous fields.
	Name string
	// Offset of the first byte of the field in the buffer.
	Offset int
	// The cause of the decoding failure.
	Err error
}

func (e *DecodeError) Error() string {
	return "decoding field " + strconv.Itoa(e.Field) + " (" + e.Name + ") at offset " + strconv.Itoa(e.Offset) + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func errMalformed(e Encoding, msg string, args ...interface{}) error {
	return Errorf(e, "%w: %s", ErrMalformedInput, fmt.Sprintf(msg, args...))
}

func errMismatch(e Encoding, msg string, args ...interface{}) error {
	return Errorf(e, "%w: %s", ErrSchemaMismatch, fmt.Sprintf(msg, args...))
}
