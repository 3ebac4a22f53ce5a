package fread

// Reader claims a file-extension convention and parses matching files.
type Reader interface {
	// Handles reports whether the reader owns path. It must not touch the
	// filesystem.
	Handles(path string) bool

	// Read parses the file at path. On failure the returned Result is the
	// zero value.
	Read(path string) (Result, error)
}

// ReaderFunc adapts a pair of functions to the [Reader] interface.
type ReaderFunc struct {
	HandlesFunc func(path string) bool
	ReadFunc    func(path string) (Result, error)
}

func (f ReaderFunc) Handles(path string) bool         { return f.HandlesFunc(path) }
func (f ReaderFunc) Read(path string) (Result, error) { return f.ReadFunc(path) }
