package fread

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textReader wraps src so that it yields UTF-8. With a nil enc the input
// must already be UTF-8; a leading byte order mark is dropped and invalid
// sequences fail with encoding.ErrInvalidUTF8.
func textReader(src io.Reader, enc encoding.Encoding) io.Reader {
	if enc != nil {
		return transform.NewReader(src, enc.NewDecoder())
	}
	// Validate before the BOM decoder, which would otherwise replace bad
	// bytes with U+FFFD.
	return transform.NewReader(src, transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()))
}

// decodeError maps a transform failure onto ErrDecode. Other errors are
// returned as is.
func decodeError(err error) error {
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return err
}

// charsetReader resolves the encoding named in an XML declaration.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("%w: charset %q: %w", ErrDecode, label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: charset %q has no decoder", ErrDecode, label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
