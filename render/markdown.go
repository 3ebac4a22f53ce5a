package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// mdEscaper keeps cell text from breaking the table layout.
var mdEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

func writeMarkdown[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	first := any(items[0])
	if _, ok := first.(Rower); !ok {
		return missing(Markdown, "Rower", items[0])
	}
	h, ok := first.(Headed)
	if !ok {
		return missing(Markdown, "Headed", items[0])
	}

	header := escapeMarkdown(h.Header())
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = escapeMarkdown(any(item).(Rower).Row())
	}

	numCols := len(header)
	widths := computeWidths(numCols, header, rows)
	// Separator cells need room for the alignment markers.
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	var aligns []Alignment
	if a, ok := first.(Aligned); ok {
		aligns = a.Alignments()
	}
	aligns = extendAligns(aligns, numCols)

	if err := writeMarkdownRow(w, header, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, numCols)
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdown(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = mdEscaper.Replace(c)
	}
	return out
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

// cellWidth is the display width of s in terminal columns.
func cellWidth(s string) int { return runewidth.StringWidth(s) }
