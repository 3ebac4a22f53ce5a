package render

import (
	"encoding/json"
	"io"
	"iter"
)

// writeJSONL encodes one compact JSON value per line.
func writeJSONL[T any](w io.Writer, items iter.Seq[T]) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
