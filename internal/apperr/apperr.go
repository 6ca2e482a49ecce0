// Package apperr defines the error kinds shared by every component of
// the aggregator. Operations report failures as one of a small fixed
// set of kinds so that callers can branch on the kind without parsing
// messages.
package apperr

import "fmt"

type Kind int

const (
	KindNotFound Kind = iota
	KindAlreadyExists
	KindInvalidPath
	KindIO
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindInvalidPath:
		return "invalid path"
	case KindIO:
		return "io error"
	case KindParse:
		return "parse error"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel values for use with errors.Is.
var (
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrAlreadyExists = &Error{Kind: KindAlreadyExists}
	ErrInvalidPath   = &Error{Kind: KindInvalidPath}
	ErrIO            = &Error{Kind: KindIO}
	ErrParse         = &Error{Kind: KindParse}
)

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

func InvalidPath(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidPath, Message: fmt.Sprintf(format, args...)}
}

func IO(message string, err error) *Error {
	return &Error{Kind: KindIO, Message: message, Err: err}
}

func Parse(message string, err error) *Error {
	return &Error{Kind: KindParse, Message: message, Err: err}
}
