package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// tableSpec is everything the table renderers need, gathered once from the
// first item's optional interfaces.
type tableSpec struct {
	title   string
	caption string
	header  []string
	rows    [][]string
	widths  []int
	aligns  []Alignment
	styles  []func(string) string
	border  BorderStyle
}

func writeTable[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	first := any(items[0])
	if _, ok := first.(Rower); !ok {
		return missing(Table, "Rower", items[0])
	}

	tbl := tableSpec{border: BorderRounded, rows: make([][]string, len(items))}
	for i, item := range items {
		tbl.rows[i] = any(item).(Rower).Row()
	}
	if h, ok := first.(Headed); ok {
		tbl.header = h.Header()
	}
	if t, ok := first.(Titled); ok {
		tbl.title = t.Title()
	}
	if c, ok := first.(Captioned); ok {
		tbl.caption = c.Caption()
	}
	if b, ok := first.(Bordered); ok {
		tbl.border = b.Border()
	}
	if a, ok := first.(Aligned); ok {
		tbl.aligns = a.Alignments()
	}
	if s, ok := first.(Styled); ok {
		tbl.styles = s.Styles()
	}
	if n, ok := first.(Numbered); ok && n.NumberHeader() != "" {
		tbl.number(n.NumberHeader())
	}

	numCols := colCount(tbl.header, tbl.rows)
	tbl.widths = computeWidths(numCols, tbl.header, tbl.rows)
	if tr, ok := first.(Truncated); ok {
		for i, limit := range tr.MaxWidths() {
			if i < numCols && limit > 0 && tbl.widths[i] > limit {
				tbl.widths[i] = limit
			}
		}
	}
	tbl.aligns = extendAligns(tbl.aligns, numCols)
	tbl.styles = extendStyles(tbl.styles, numCols)

	var err error
	if tbl.border == BorderNone {
		err = renderPlainTable(w, tbl)
	} else {
		err = renderBorderedTable(w, tbl)
	}
	if err != nil {
		return err
	}
	if tbl.caption != "" {
		_, err = fmt.Fprintln(w, tbl.caption)
	}
	return err
}

// number prepends a right-aligned row counter column.
func (s *tableSpec) number(header string) {
	if len(s.header) > 0 {
		s.header = append([]string{header}, s.header...)
	}
	for i, row := range s.rows {
		s.rows[i] = append([]string{strconv.Itoa(i + 1)}, row...)
	}
	s.aligns = append([]Alignment{AlignRight}, s.aligns...)
	s.styles = append([]func(string) string{nil}, s.styles...)
}

func colCount(header []string, rows [][]string) int {
	n := len(header)
	for _, row := range rows {
		n = max(n, len(row))
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < numCols {
				widths[i] = max(widths[i], cellWidth(cell))
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

func extendStyles(styles []func(string) string, numCols int) []func(string) string {
	if len(styles) >= numCols {
		return styles[:numCols]
	}
	extended := make([]func(string) string, numCols)
	copy(extended, styles)
	return extended
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, s tableSpec) error {
	if s.title != "" {
		if _, err := fmt.Fprintln(w, s.title); err != nil {
			return err
		}
	}
	if len(s.header) > 0 {
		if err := writePlainRow(w, s, s.header); err != nil {
			return err
		}
		sep := make([]string, len(s.widths))
		for i, width := range s.widths {
			sep[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
			return err
		}
	}
	for _, row := range s.rows {
		if err := writePlainRow(w, s, row); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, s tableSpec, cells []string) error {
	parts := make([]string, len(s.widths))
	for i := range s.widths {
		parts[i] = s.cell(cells, i)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, s tableSpec) error {
	bc := borderSets[s.border]

	if s.title != "" {
		if err := drawHLine(w, s.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(s.widths) - 2
		title := alignCell(s.title, inner, AlignCenter)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, title, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, s.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else if err := drawHLine(w, s.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}

	if len(s.header) > 0 {
		if err := drawBorderedRow(w, s, s.header, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, s.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range s.rows {
		if err := drawBorderedRow(w, s, row, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, s.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth is the width between the outer borders: each cell plus
// one space of padding per side, and one separator between cells.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, s tableSpec, cells []string, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i := range s.widths {
		sb.WriteString(" ")
		sb.WriteString(s.cell(cells, i))
		sb.WriteString(" ")
		if i < len(s.widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// cell returns column i of cells truncated, aligned, and styled.
func (s tableSpec) cell(cells []string, i int) string {
	text := ""
	if i < len(cells) {
		text = cells[i]
	}
	out := formatTableCell(text, s.widths[i], s.aligns[i])
	if s.styles[i] != nil {
		out = s.styles[i](out)
	}
	return out
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && cellWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - cellWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
