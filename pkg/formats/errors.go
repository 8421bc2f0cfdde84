package formats

import (
	"errors"
	"fmt"
)

// Parse error sentinels. Every *ParseError matches exactly one of them via errors.Is.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	KindFileNotFound ErrorKind = iota
	KindMalformedRecord
	KindIndexOutOfRange
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindFileNotFound:
		return "FileNotFound"
	case KindMalformedRecord:
		return "MalformedRecord"
	case KindIndexOutOfRange:
		return "IndexOutOfRange"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFileNotFound:
		return ErrFileNotFound
	case KindIndexOutOfRange:
		return ErrIndexOutOfRange
	default:
		return ErrMalformedRecord
	}
}

// ParseError describes a problem found while reading a text asset.
// Line is 1-based; zero means the error is not tied to a line.
type ParseError struct {
	Kind ErrorKind
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	s := fmt.Sprintf("%s: %s", where, e.Kind.sentinel())
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// ErrorHandler decides what happens to a recoverable record error.
// Returning nil skips the offending record and continues; returning an error aborts the parse.
type ErrorHandler func(*ParseError) error

// handle applies h, treating a nil handler as fail-fast.
func (h ErrorHandler) handle(err *ParseError) error {
	if h == nil {
		return err
	}
	return h(err)
}

func malformed(line int, format string, args ...any) *ParseError {
	return &ParseError{Kind: KindMalformedRecord, Line: line, Msg: fmt.Sprintf(format, args...)}
}
