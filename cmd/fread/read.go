package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bjaus/fread"
	"github.com/bjaus/fread/query"
	"github.com/bjaus/fread/render"
)

type readOptions struct {
	format     string
	treeFormat string
	where      string
	xpath      string
	indent     int
	depth      int
	attrs      bool
	color      bool
	border     string
	number     string
	title      string
}

func newReadCmd(a *app) *cobra.Command {
	var opts readOptions
	cmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Read a file and print its records or element tree",
		Long: `The read command dispatches on the file extension, parses the file, and
prints the result. Delimited files print as records, markup files as an
indented element tree.

Example:
  fread read grades.csv
  fread read grades.csv --format table --border ascii --number '#'
  fread read grades.csv --where '.Grade == "A"' --format json
  fread read school.xml --xpath '//student' --attrs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(a, cmd, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "o", "", "Record format (see 'fread formats')")
	f.StringVar(&opts.treeFormat, "tree-format", "", "Tree format: text, json, yaml")
	f.StringVar(&opts.where, "where", "", "Keep records matching a jq expression")
	f.StringVar(&opts.xpath, "xpath", "", "Print only elements matching an XPath expression")
	f.IntVar(&opts.indent, "indent", 0, "Spaces per tree level")
	f.IntVar(&opts.depth, "depth", 0, "Maximum tree depth (0 = unlimited)")
	f.BoolVar(&opts.attrs, "attrs", false, "Show element attributes")
	f.BoolVar(&opts.color, "color", false, "Style tag names and the first table column")
	f.StringVar(&opts.border, "border", "", "Table border: rounded, none, ascii, heavy, double")
	f.StringVar(&opts.number, "number", "", "Number table rows under this header")
	f.StringVar(&opts.title, "title", "", "Table title")
	return cmd
}

func runRead(a *app, cmd *cobra.Command, opts readOptions, path string) error {
	cfg := a.cfg.Read
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.format = cfg.Format
	}
	if !flags.Changed("tree-format") {
		opts.treeFormat = cfg.TreeFormat
	}
	if !flags.Changed("indent") {
		opts.indent = cfg.Indent
	}
	if !flags.Changed("border") {
		opts.border = cfg.Border
	}
	if !flags.Changed("color") {
		opts.color = cfg.Color
	}

	res, err := a.dispatcher().ReadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return res.Visit(
		func(records []fread.Record) error {
			if opts.xpath != "" {
				return errors.New("--xpath applies to markup files")
			}
			return writeRecords(a, out, records, opts)
		},
		func(root *fread.Node) error {
			if opts.where != "" {
				return errors.New("--where applies to delimited files")
			}
			return writeTree(out, root, opts)
		},
	)
}

func writeRecords(a *app, out io.Writer, records []fread.Record, opts readOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	border, err := render.ParseBorder(opts.border)
	if err != nil {
		return err
	}

	if opts.where != "" {
		filter, err := query.Compile(opts.where)
		if err != nil {
			return err
		}
		total := len(records)
		if records, err = filter.Apply(records); err != nil {
			return err
		}
		a.logger.Debug("filtered records", "where", filter.String(), "kept", len(records), "total", total)
	}

	layout := &tableLayout{border: border, number: opts.number, title: opts.title}
	if opts.color {
		layout.key = keyStyle
	}
	rows := make([]tableRecord, len(records))
	for i, r := range records {
		rows[i] = tableRecord{Record: r, layout: layout}
	}
	return render.Write(out, format, rows...)
}

func writeTree(out io.Writer, root *fread.Node, opts readOptions) error {
	format, err := render.ParseTreeFormat(opts.treeFormat)
	if err != nil {
		return err
	}
	topts := render.TreeOptions{
		IndentSize: opts.indent,
		MaxDepth:   opts.depth,
		ShowAttrs:  opts.attrs,
	}
	if opts.color {
		topts.TagStyle = tagStyle
	}

	nodes := []*fread.Node{root}
	if opts.xpath != "" {
		if nodes, err = root.Select(opts.xpath); err != nil {
			return err
		}
		if len(nodes) == 0 {
			return fmt.Errorf("no elements match %q", opts.xpath)
		}
	}
	for _, n := range nodes {
		if err := render.WriteTree(out, format, n, topts); err != nil {
			return err
		}
	}
	return nil
}

var (
	tagLipgloss = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	keyLipgloss = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func tagStyle(s string) string { return tagLipgloss.Render(s) }
func keyStyle(s string) string { return keyLipgloss.Render(s) }

// tableLayout is shared by every row of one table.
type tableLayout struct {
	border render.BorderStyle
	number string
	title  string
	key    func(string) string
}

// tableRecord adds table options to a record. Everything else, including
// its JSON and YAML encoding, comes from the embedded record.
type tableRecord struct {
	fread.Record
	layout *tableLayout
}

func (r tableRecord) Border() render.BorderStyle { return r.layout.border }
func (r tableRecord) NumberHeader() string       { return r.layout.number }
func (r tableRecord) Title() string              { return r.layout.title }

// Styles highlights the first column, which holds each row's key field.
func (r tableRecord) Styles() []func(string) string {
	if r.layout.key == nil {
		return nil
	}
	return []func(string) string{r.layout.key}
}
