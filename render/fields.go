package render

import (
	"fmt"
	"io"
	"iter"
)

// writeFields prints one "key: value" line per pair, with a blank line
// between items.
func writeFields[T any](w io.Writer, items iter.Seq[T]) error {
	first := true
	for item := range items {
		m, ok := any(item).(Mappable)
		if !ok {
			return missing(Fields, "Mappable", item)
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		for _, kv := range m.Pairs() {
			if _, err := fmt.Fprintf(w, "%s: %s\n", kv.Key, kv.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
