package fread

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Dispatcher routes a path to the first registered [Reader] that claims it.
// Apart from its reader list it holds no state, so one instance can be
// reused for any number of sequential reads.
type Dispatcher struct {
	readers []Reader
	logger  *slog.Logger
}

// NewDispatcher returns a dispatcher consulting readers in the given order.
// Nil readers are ignored.
func NewDispatcher(readers ...Reader) *Dispatcher {
	d := &Dispatcher{logger: slog.New(slog.DiscardHandler)}
	for _, r := range readers {
		if r != nil {
			d.readers = append(d.readers, r)
		}
	}
	return d
}

// Default returns a dispatcher for ".csv", ".tsv", and ".xml" files.
func Default() *Dispatcher {
	return NewDispatcher(NewCSVReader(), NewTSVReader(), NewXMLReader())
}

// WithLogger returns a copy of d that logs routing decisions to logger at
// debug level.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	c := *d
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger
	return &c
}

// Readers returns the registered readers in dispatch order.
func (d *Dispatcher) Readers() []Reader {
	out := make([]Reader, len(d.readers))
	copy(out, d.readers)
	return out
}

// ReaderFor validates path and returns the first reader that handles it.
func (d *Dispatcher) ReaderFor(path string) (Reader, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	for _, r := range d.readers {
		if r.Handles(path) {
			return r, nil
		}
	}
	return nil, unsupported(path)
}

// ReadFile reads path with the first reader that handles it.
func (d *Dispatcher) ReadFile(path string) (Result, error) {
	r, err := d.ReaderFor(path)
	if err != nil {
		d.logger.Debug("dispatch rejected", "path", path, "error", err)
		return Result{}, err
	}
	d.logger.Debug("dispatching", "path", path, "reader", fmt.Sprintf("%T", r))
	res, err := r.Read(path)
	if err != nil {
		return Result{}, err
	}
	d.logger.Debug("read complete", "path", path, "kind", res.Kind())
	return res, nil
}

// ReadValue is ReadFile for dynamically typed input such as decoded config
// values. Anything other than a string fails with [ErrInvalidArgument]
// before any reader is consulted.
func (d *Dispatcher) ReadValue(v any) (Result, error) {
	path, ok := v.(string)
	if !ok {
		return Result{}, fmt.Errorf("%w: path must be a string, got %T", ErrInvalidArgument, v)
	}
	return d.ReadFile(path)
}

// ValidatePath rejects paths that cannot name a file: the empty string and
// strings that are not valid UTF-8 text or contain NUL.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return fmt.Errorf("%w: path is empty", ErrInvalidArgument)
	case !utf8.ValidString(path):
		return fmt.Errorf("%w: path %q is not valid text", ErrInvalidArgument, path)
	case strings.ContainsRune(path, 0):
		return fmt.Errorf("%w: path %q contains NUL", ErrInvalidArgument, path)
	}
	return nil
}

func unsupported(path string) error {
	ext := filepath.Ext(path)
	if ext == "" {
		return fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	return fmt.Errorf("%w: %q (extension %q)", ErrUnsupportedFormat, path, ext)
}
