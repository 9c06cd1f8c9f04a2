package regmap

import (
	"errors"
	"fmt"
)

// ErrNoRegisters is returned for a document with an empty register list.
var ErrNoRegisters = errors.New("no registers defined")

// FormatError reports a definition document that could not be used because
// of its content. I/O failures are never wrapped in a FormatError.
type FormatError struct {
	// Source is the document path or label.
	Source string

	Err error
}

func (e *FormatError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid definition document: %v", e.Err)
	}
	return fmt.Sprintf("invalid definition document %s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
