package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/fread"
)

// DefaultIndentSize is the number of spaces per depth level in text trees.
const DefaultIndentSize = 2

// TreeFormat represents a tree output format.
type TreeFormat string

const (
	// TreeText prints indented "<tag> text" / "</tag>" pairs.
	TreeText TreeFormat = "text"

	// TreeJSON encodes the node structure as JSON.
	TreeJSON TreeFormat = "json"

	// TreeYAML encodes the node structure as YAML.
	TreeYAML TreeFormat = "yaml"
)

var treeFormats = []TreeFormat{TreeText, TreeJSON, TreeYAML}

// String returns the format name.
func (f TreeFormat) String() string { return string(f) }

// TreeFormats returns all tree format names.
func TreeFormats() []TreeFormat {
	out := make([]TreeFormat, len(treeFormats))
	copy(out, treeFormats)
	return out
}

// ParseTreeFormat parses a tree format name. An empty string means text.
func ParseTreeFormat(s string) (TreeFormat, error) {
	if s == "" {
		return TreeText, nil
	}
	for _, f := range treeFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: tree format %q", ErrUnsupportedFormat, s)
}

// TreeOptions controls tree rendering.
type TreeOptions struct {
	// IndentSize is the number of spaces per depth level (text only).
	// Default: 2
	IndentSize int

	// MaxDepth limits how deep the text renderer descends. The root is depth
	// 0. Zero means unlimited.
	MaxDepth int

	// ShowAttrs prints attributes inside the opening tag (text only).
	ShowAttrs bool

	// TagStyle decorates tag names (text only). Nil leaves them as is.
	TagStyle func(string) string
}

// DefaultTreeOptions returns the options used when none are given.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{IndentSize: DefaultIndentSize}
}

// WriteTree renders root in format f.
func WriteTree(w io.Writer, f TreeFormat, root *fread.Node, opts TreeOptions) error {
	if root == nil {
		return nil
	}
	switch f {
	case TreeText, "":
		return writeTreeText(w, root, opts)
	case TreeJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", indentSize(opts)))
		return enc.Encode(root)
	case TreeYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indentSize(opts))
		if err := enc.Encode(root); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: tree format %q", ErrUnsupportedFormat, f)
	}
}

func indentSize(opts TreeOptions) int {
	if opts.IndentSize <= 0 {
		return DefaultIndentSize
	}
	return opts.IndentSize
}

func writeTreeText(w io.Writer, n *fread.Node, opts TreeOptions) error {
	size := indentSize(opts)
	var visit func(n *fread.Node, depth int) error
	visit = func(n *fread.Node, depth int) error {
		indent := strings.Repeat(" ", depth*size)
		tag := n.Tag
		if opts.TagStyle != nil {
			tag = opts.TagStyle(tag)
		}

		var open strings.Builder
		open.WriteString(indent)
		open.WriteString("<")
		open.WriteString(tag)
		if opts.ShowAttrs {
			for _, a := range n.Attrs {
				fmt.Fprintf(&open, " %s=%q", a.Name, a.Value)
			}
		}
		open.WriteString(">")
		if text := strings.TrimSpace(n.Text); text != "" {
			open.WriteString(" ")
			open.WriteString(text)
		}
		if _, err := fmt.Fprintln(w, open.String()); err != nil {
			return err
		}

		if opts.MaxDepth <= 0 || depth < opts.MaxDepth {
			for _, c := range n.Children {
				if err := visit(c, depth+1); err != nil {
					return err
				}
			}
		}

		_, err := fmt.Fprintf(w, "%s</%s>\n", indent, tag)
		return err
	}
	return visit(n, 0)
}

// Options selects formats for [WriteResult].
type Options struct {
	Records     Format
	Tree        TreeFormat
	TreeOptions TreeOptions
}

// DefaultOptions renders records as fields and trees as indented text.
func DefaultOptions() Options {
	return Options{Records: Fields, Tree: TreeText, TreeOptions: DefaultTreeOptions()}
}

// WriteResult renders whichever shape res holds.
func WriteResult(w io.Writer, res fread.Result, opts Options) error {
	return res.Visit(
		func(records []fread.Record) error {
			f := opts.Records
			if f == "" {
				f = Fields
			}
			return Write(w, f, records...)
		},
		func(root *fread.Node) error {
			return WriteTree(w, opts.Tree, root, opts.TreeOptions)
		},
	)
}
