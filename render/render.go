package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bjaus/fread"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format represents a record output format.
type Format string

const (
	Fields   Format = "fields"
	Table    Format = "table"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	ENV      Format = "env"
	HTML     Format = "html"
	List     Format = "list"
	Plain    Format = "plain"
)

const goTemplatePrefix = "go-template="

var formats = []Format{Fields, Table, Markdown, CSV, TSV, JSON, JSONL, YAML, ENV, HTML, List, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all static record format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each item with a Go text/template.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// IsSupported reports whether type T implements the interfaces required by
// format f.
func IsSupported[T any](f Format) bool {
	if strings.HasPrefix(string(f), goTemplatePrefix) {
		return true
	}
	var zero T
	v := any(zero)
	switch f {
	case JSON, YAML, JSONL, Plain:
		return true
	case Table, CSV, TSV, HTML:
		_, ok := v.(Rower)
		return ok
	case Markdown:
		_, rower := v.(Rower)
		_, headed := v.(Headed)
		return rower && headed
	case Fields, ENV:
		_, ok := v.(Mappable)
		return ok
	case List:
		_, ok := v.(Lister)
		return ok
	default:
		return false
	}
}

// --- Core Format Interfaces ---

// Rower provides row data. Required for Table, CSV, TSV, HTML, and Markdown.
type Rower interface {
	Row() []string
}

// Mappable provides ordered key-value pairs. Required for Fields and ENV.
type Mappable interface {
	Pairs() []KeyValue
}

// Lister provides a flat list of strings. Required for List.
type Lister interface {
	List() []string
}

// KeyValue is a single key-value pair. It is the same type as a record
// field so records satisfy [Mappable] directly.
type KeyValue = fread.Field

// --- Optional Interfaces ---

// Headed provides column headers for Table, CSV, TSV, HTML, and Markdown.
type Headed interface {
	Header() []string
}

// Indented controls JSON/YAML indentation.
type Indented interface {
	Indent() string
}

// Titled renders a title above the table. An empty title is skipped.
type Titled interface {
	Title() string
}

// Captioned renders a line below the table. An empty caption is skipped.
type Captioned interface {
	Caption() string
}

// Numbered prepends a row number column headed by NumberHeader.
// An empty header disables numbering.
type Numbered interface {
	NumberHeader() string
}

// Bordered controls the table border style. Default: BorderRounded.
type Bordered interface {
	Border() BorderStyle
}

// Aligned sets per-column alignment for Table, Markdown, and HTML.
type Aligned interface {
	Alignments() []Alignment
}

// Truncated sets maximum column widths for Table. Cells over the limit are
// cut with "...". Zero means no limit.
type Truncated interface {
	MaxWidths() []int
}

// Styled provides per-column style functions for Table, applied after
// alignment so escape codes never affect widths. Nil entries are unstyled.
type Styled interface {
	Styles() []func(string) string
}

// Delimited controls the CSV field delimiter. Default: comma.
type Delimited interface {
	Delimiter() rune
}

// Separator controls the delimiter between List items. Default: newline.
type Separator interface {
	Sep() string
}

// Exported prefixes ENV lines with "export ".
type Exported interface {
	Export() bool
}

// Quoted wraps ENV values in double quotes.
type Quoted interface {
	Quote() bool
}

// --- Value Types ---

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// ParseBorder maps a border name to its style.
func ParseBorder(s string) (BorderStyle, error) {
	switch s {
	case "", "rounded":
		return BorderRounded, nil
	case "none":
		return BorderNone, nil
	case "ascii":
		return BorderASCII, nil
	case "heavy":
		return BorderHeavy, nil
	case "double":
		return BorderDouble, nil
	}
	return 0, fmt.Errorf("%w: border %q", ErrUnsupportedFormat, s)
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Write formats items and writes them to w.
func Write[T any](w io.Writer, f Format, items ...T) error {
	switch f {
	case Fields:
		return writeFields(w, slices.Values(items))
	case Table:
		return writeTable(w, items)
	case Markdown:
		return writeMarkdown(w, items)
	case CSV:
		return writeCSV(w, slices.Values(items))
	case TSV:
		return writeTSV(w, slices.Values(items))
	case JSON:
		return writeJSON(w, items)
	case JSONL:
		return writeJSONL(w, slices.Values(items))
	case YAML:
		return writeYAML(w, items)
	case ENV:
		return writeENV(w, items)
	case HTML:
		return writeHTML(w, items)
	case List:
		return writeList(w, items)
	case Plain:
		return writePlain(w, slices.Values(items))
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, items)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal formats items and returns the bytes.
func Marshal[T any](f Format, items ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func missing[T any](f Format, iface string, item T) error {
	return fmt.Errorf("%w: format %q requires %s, not implemented by %T", ErrMissingInterface, f, iface, item)
}
