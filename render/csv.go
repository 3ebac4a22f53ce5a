package render

import (
	"encoding/csv"
	"io"
	"iter"
)

// writeRows emits the header of the first item, when it is Headed, and then
// one row per item. emit also receives the item so a writer can read its
// per-format options.
func writeRows[T any](f Format, items iter.Seq[T], emit func(item any, cells []string) error) error {
	first := true
	for item := range items {
		r, ok := any(item).(Rower)
		if !ok {
			return missing(f, "Rower", item)
		}
		if first {
			first = false
			if h, ok := any(item).(Headed); ok {
				if err := emit(item, h.Header()); err != nil {
					return err
				}
			}
		}
		if err := emit(item, r.Row()); err != nil {
			return err
		}
	}
	return nil
}

// writeCSV quotes cells per RFC 4180. The delimiter comes from the first
// item; each row is flushed as soon as it is written.
func writeCSV[T any](w io.Writer, items iter.Seq[T]) error {
	var cw *csv.Writer
	return writeRows(CSV, items, func(item any, cells []string) error {
		if cw == nil {
			cw = csv.NewWriter(w)
			if d, ok := item.(Delimited); ok {
				cw.Comma = d.Delimiter()
			}
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	})
}
