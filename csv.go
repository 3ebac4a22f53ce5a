package fread

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
)

const (
	CSVExt = ".csv"
	TSVExt = ".tsv"
)

// CSVReader reads delimited text into records. The zero value is not
// usable; construct with [NewCSVReader] or [NewTSVReader].
type CSVReader struct {
	ext   string
	comma rune
	enc   encoding.Encoding
}

// CSVOption configures a [CSVReader].
type CSVOption func(*CSVReader)

// WithExt sets the file suffix the reader claims. The match is
// case-sensitive.
func WithExt(ext string) CSVOption {
	return func(r *CSVReader) { r.ext = ext }
}

// WithComma sets the field delimiter. Default: comma.
func WithComma(c rune) CSVOption {
	return func(r *CSVReader) { r.comma = c }
}

// WithEncoding decodes input from enc instead of UTF-8, e.g.
// charmap.Windows1252 for spreadsheet exports.
func WithEncoding(enc encoding.Encoding) CSVOption {
	return func(r *CSVReader) { r.enc = enc }
}

// NewCSVReader returns a reader for comma-separated ".csv" files.
func NewCSVReader(opts ...CSVOption) *CSVReader {
	r := &CSVReader{ext: CSVExt, comma: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTSVReader returns a reader for tab-separated ".tsv" files.
func NewTSVReader(opts ...CSVOption) *CSVReader {
	return NewCSVReader(append([]CSVOption{WithExt(TSVExt), WithComma('\t')}, opts...)...)
}

// Ext returns the suffix the reader claims.
func (r *CSVReader) Ext() string { return r.ext }

// Handles reports whether path ends with the reader's suffix.
func (r *CSVReader) Handles(path string) bool {
	return r.ext != "" && strings.HasSuffix(path, r.ext)
}

// Read implements [Reader].
func (r *CSVReader) Read(path string) (Result, error) {
	recs, err := r.ReadRecords(path)
	if err != nil {
		return Result{}, err
	}
	return RecordsResult(recs), nil
}

// ReadRecords opens path and parses it with [CSVReader.ParseRecords].
func (r *CSVReader) ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := r.ParseRecords(f)
	if err != nil {
		return nil, withPath(path, err)
	}
	return recs, nil
}

// ParseRecords reads a header line followed by data lines. Blank lines are
// skipped. Empty input yields an empty, non-nil slice.
func (r *CSVReader) ParseRecords(src io.Reader) ([]Record, error) {
	cr := csv.NewReader(textReader(src, r.enc))
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, csvError(err)
	}
	cols := newColumns(header)

	recs := []Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, csvError(err)
		}
		recs = append(recs, cols.record(row))
	}
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return decodeError(err)
}

// columns maps header names to cell positions. A repeated header name
// keeps its first position and takes the value of its last column.
type columns struct {
	keys  []string
	index []int
	width int
}

func newColumns(header []string) columns {
	c := columns{width: len(header)}
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if j, ok := seen[h]; ok {
			c.index[j] = i
			continue
		}
		seen[h] = len(c.keys)
		c.keys = append(c.keys, h)
		c.index = append(c.index, i)
	}
	return c
}

func (c columns) record(row []string) Record {
	fields := make([]Field, len(c.keys))
	for i, key := range c.keys {
		fields[i].Key = key
		if pos := c.index[i]; pos < len(row) {
			fields[i].Value = row[pos]
		}
	}
	rec := Record{Fields: fields}
	if len(row) > c.width {
		rec.Rest = append([]string(nil), row[c.width:]...)
	}
	return rec
}
