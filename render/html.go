package render

import (
	"fmt"
	"html"
	"io"
	"strings"
)

func writeHTML[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	first := any(items[0])
	if _, ok := first.(Rower); !ok {
		return missing(HTML, "Rower", items[0])
	}

	var aligns []Alignment
	if a, ok := first.(Aligned); ok {
		aligns = a.Alignments()
	}

	var b strings.Builder
	b.WriteString("<table>\n")
	if t, ok := first.(Titled); ok && t.Title() != "" {
		fmt.Fprintf(&b, "  <caption>%s</caption>\n", html.EscapeString(t.Title()))
	}
	if h, ok := first.(Headed); ok {
		b.WriteString("  <thead>\n")
		writeHTMLRow(&b, "th", h.Header(), aligns)
		b.WriteString("  </thead>\n")
	}
	b.WriteString("  <tbody>\n")
	for _, item := range items {
		writeHTMLRow(&b, "td", any(item).(Rower).Row(), aligns)
	}
	b.WriteString("  </tbody>\n")
	b.WriteString("</table>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHTMLRow(b *strings.Builder, cell string, cells []string, aligns []Alignment) {
	b.WriteString("    <tr>\n")
	for i, c := range cells {
		fmt.Fprintf(b, "      <%s%s>%s</%s>\n", cell, alignStyle(aligns, i), html.EscapeString(c), cell)
	}
	b.WriteString("    </tr>\n")
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
