package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyData is returned when an envelope that should hold one record holds none.
var ErrEmptyData = errors.New("response data is empty")

// DecodeError reports a payload that does not match the declared shape.
type DecodeError struct {
	// Path is the dotted JSON path of the offending field, e.g.
	// "data[0].attributes.slug". Empty when the document itself is malformed.
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		if e.Err != nil {
			return fmt.Sprintf("schema: %s: %v", e.Reason, e.Err)
		}
		return fmt.Sprintf("schema: %s", e.Reason)
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsMissing reports whether the error is a required field absent from the payload.
func (e *DecodeError) IsMissing() bool {
	return e.Reason == "missing required field"
}
