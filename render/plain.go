package render

import (
	"fmt"
	"io"
	"iter"
)

// writePlain prints each item on its own line using its String method when
// it has one.
func writePlain[T any](w io.Writer, items iter.Seq[T]) error {
	for item := range items {
		if _, err := fmt.Fprintln(w, plainString(item)); err != nil {
			return err
		}
	}
	return nil
}

func plainString(item any) string {
	if s, ok := item.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", item)
}
