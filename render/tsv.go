package render

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// tsvEscaper keeps cells on one line so the column count survives.
var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

func writeTSV[T any](w io.Writer, items iter.Seq[T]) error {
	return writeRows(TSV, items, func(_ any, cells []string) error {
		return writeTSVRow(w, cells)
	})
}

func writeTSVRow(w io.Writer, cells []string) error {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = tsvEscaper.Replace(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(escaped, "\t"))
	return err
}
