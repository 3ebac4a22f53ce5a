package fread

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("parse error")
	ErrDecode            = errors.New("decode error")
)

// ParseError reports malformed input. It matches [ErrParse] with errors.Is
// and also unwraps to the underlying cause.
type ParseError struct {
	Path string // file being read, empty when parsing a bare io.Reader
	Line int    // 1-based line, 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(ErrParse.Error())
	if e.Path != "" || e.Line > 0 {
		b.WriteString(": ")
		b.WriteString(e.Path)
		if e.Line > 0 {
			if e.Path != "" {
				b.WriteString(":")
			} else {
				b.WriteString("line ")
			}
			fmt.Fprintf(&b, "%d", e.Line)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// withPath stamps path onto parse and decode failures. I/O errors pass
// through untouched.
func withPath(path string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
		return pe
	}
	if errors.Is(err, ErrDecode) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return err
}
