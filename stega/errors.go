package stega

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is wrapped by every *FormatError.
	ErrFormat = errors.New("stega: invalid encoded data")

	// ErrEncodingRange is wrapped by every *EncodingRangeError.
	ErrEncodingRange = errors.New("stega: character outside encodable range")
)

// FormatError reports a payload block that cannot be decoded: a bad
// length, a missing null marker, a foreign symbol, or text that is not
// valid JSON.
type FormatError struct {
	Reason  string
	Payload string // the offending payload, ASCII escaped
	Err     error  // underlying JSON error, if any
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrFormat.Error(), e.Reason)
	if e.Payload != "" {
		msg += " " + e.Payload
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// EncodingRangeError reports a character of the escaped JSON text that
// does not fit in one byte. ASCII escaping makes this unreachable for
// well-formed input.
type EncodingRangeError struct {
	Char rune
	Pos  int
}

func (e *EncodingRangeError) Error() string {
	return fmt.Sprintf("%s: %q (U+%04X) at %d", ErrEncodingRange.Error(), e.Char, e.Char, e.Pos)
}

func (e *EncodingRangeError) Unwrap() error {
	return ErrEncodingRange
}

func formatError(reason, payload string, err error) *FormatError {
	return &FormatError{Reason: reason, Payload: payload, Err: err}
}
