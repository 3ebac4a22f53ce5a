package render

import (
	"io"
	"strings"
)

// writeList flattens every item's List into one sequence.
func writeList[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	first := any(items[0])
	if _, ok := first.(Lister); !ok {
		return missing(List, "Lister", items[0])
	}
	sep := "\n"
	if s, ok := first.(Separator); ok {
		sep = s.Sep()
	}
	var all []string
	for _, item := range items {
		all = append(all, any(item).(Lister).List()...)
	}
	if len(all) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(all, sep)+"\n")
	return err
}
