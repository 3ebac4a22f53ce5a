package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// WriteIter formats items from an iterator and writes them to w as they
// arrive. Fields, CSV, TSV, JSONL, and Plain write each item immediately,
// and JSON writes items as the elements of a single array. Formats that lay
// out all items together (Table, Markdown, HTML, YAML, ENV, List, and
// go-template) collect the sequence first. For items that are not
// [Indented] the output matches [Write] over the same items.
func WriteIter[T any](w io.Writer, f Format, seq iter.Seq[T]) error {
	switch f {
	case Fields:
		return writeFields(w, seq)
	case CSV:
		return writeCSV(w, seq)
	case TSV:
		return writeTSV(w, seq)
	case JSON:
		return streamJSON(w, seq)
	case JSONL:
		return writeJSONL(w, seq)
	case Plain:
		return writePlain(w, seq)
	case Table, Markdown, HTML, YAML, ENV, List:
		return Write(w, f, slices.Collect(seq)...)
	default:
		if strings.HasPrefix(string(f), goTemplatePrefix) {
			return Write(w, f, slices.Collect(seq)...)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func streamJSON[T any](w io.Writer, seq iter.Seq[T]) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	sep := "["
	for item := range seq {
		if ind, ok := any(item).(Indented); ok {
			enc.SetIndent("", ind.Indent())
		}
		buf.Reset()
		if err := enc.Encode(item); err != nil {
			return err
		}
		if _, err := io.WriteString(w, sep); err != nil {
			return err
		}
		if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
			return err
		}
		sep = ","
	}
	if sep == "[" {
		_, err := io.WriteString(w, "[]\n")
		return err
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
