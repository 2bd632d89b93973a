package qda

import (
	"errors"
	"fmt"
)

// ErrHeaderSpace is returned by UniqueHeaders when the requested count
// exceeds the A..ZZZ label space.
var ErrHeaderSpace = errors.New("qda: unique header space exhausted")

// FormatError reports a stream that is not recognizable as a QDA file: an
// unknown file identifier, an out-of-range column count, or a row count no
// valid writer could have produced.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string {
	return "qda: " + e.msg
}

func formatErrf(format string, args ...interface{}) error {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

// UnsupportedTypeError reports type tag values outside the known set. Codes
// holds every offending raw wire value in column order.
type UnsupportedTypeError struct {
	Codes []int16
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("qda: file contains data of unsupported type %v", e.Codes)
}

// ValidationError reports inconsistent arguments to NewTable.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return "qda: " + e.msg
}

func validationErrf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// EncodingError reports a Table that cannot be serialized: a header longer
// than its fixed-width slot, or structurally inconsistent field lengths.
type EncodingError struct {
	msg string
}

func (e *EncodingError) Error() string {
	return "qda: " + e.msg
}

func encodingErrf(format string, args ...interface{}) error {
	return &EncodingError{msg: fmt.Sprintf(format, args...)}
}
