package render

import (
	"fmt"
	"io"
	"strings"
)

func writeENV[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	first := any(items[0])
	if _, ok := first.(Mappable); !ok {
		return missing(ENV, "Mappable", items[0])
	}
	prefix := ""
	if e, ok := first.(Exported); ok && e.Export() {
		prefix = "export "
	}
	quoted := false
	if q, ok := first.(Quoted); ok {
		quoted = q.Quote()
	}
	for i, item := range items {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, kv := range any(item).(Mappable).Pairs() {
			value := kv.Value
			if quoted {
				value = fmt.Sprintf("%q", value)
			}
			if _, err := fmt.Fprintf(w, "%s%s=%s\n", prefix, envKey(kv.Key), value); err != nil {
				return err
			}
		}
	}
	return nil
}

// envKey turns a column name into a shell-friendly variable name:
// upper case, with anything outside [A-Z0-9_] replaced by '_'.
func envKey(key string) string {
	key = strings.ToUpper(key)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
