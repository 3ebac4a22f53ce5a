package render

import (
	"encoding/json"
	"io"
)

// writeJSON encodes items as one JSON array, even when there is a single
// item, so consumers see the same shape for every file.
func writeJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if len(items) > 0 {
		if ind, ok := any(items[0]).(Indented); ok {
			enc.SetIndent("", ind.Indent())
		}
	}
	if items == nil {
		items = []T{}
	}
	return enc.Encode(items)
}
