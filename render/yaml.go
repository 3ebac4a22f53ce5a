package render

import (
	"io"

	"gopkg.in/yaml.v3"
)

// writeYAML encodes items as a single YAML sequence.
func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	if len(items) > 0 {
		if ind, ok := any(items[0]).(Indented); ok {
			enc.SetIndent(len(ind.Indent()))
		}
	}
	if items == nil {
		items = []T{}
	}
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}
