package fread

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

const XMLExt = ".xml"

var (
	errNoRoot      = errors.New("no element found")
	errJunkAfter   = errors.New("junk after document element")
	errTextOutside = errors.New("text outside the document element")
	errUnclosed    = errors.New("unclosed element")
)

// XMLReader parses markup documents into a [Node] tree.
type XMLReader struct {
	ext string
}

// XMLOption configures an [XMLReader].
type XMLOption func(*XMLReader)

// WithXMLExt sets the file suffix the reader claims. Default ".xml".
func WithXMLExt(ext string) XMLOption {
	return func(r *XMLReader) { r.ext = ext }
}

// NewXMLReader returns a reader for ".xml" files.
func NewXMLReader(opts ...XMLOption) *XMLReader {
	r := &XMLReader{ext: XMLExt}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ext returns the suffix the reader claims.
func (r *XMLReader) Ext() string { return r.ext }

// Handles reports whether path ends with the reader's suffix.
func (r *XMLReader) Handles(path string) bool {
	return r.ext != "" && strings.HasSuffix(path, r.ext)
}

// Read implements [Reader].
func (r *XMLReader) Read(path string) (Result, error) {
	root, err := r.ReadTree(path)
	if err != nil {
		return Result{}, err
	}
	return TreeResult(root), nil
}

// ReadTree opens path and parses it with [XMLReader.ParseTree].
func (r *XMLReader) ReadTree(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := r.ParseTree(f)
	if err != nil {
		return nil, withPath(path, err)
	}
	return root, nil
}

// ParseTree parses a complete document and returns its root element.
// Malformed input fails with a [*ParseError]; no partial tree is returned.
func (r *XMLReader) ParseTree(src io.Reader) (*Node, error) {
	dec := xml.NewDecoder(src)
	dec.Strict = true
	dec.CharsetReader = charsetReader

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xmlError(dec, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, xmlError(dec, errJunkAfter)
			}
			n := &Node{Tag: qualify(t.Name), Attrs: attrs(t.Attr)}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, xmlError(dec, errTextOutside)
				}
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			} else {
				cur.Children[len(cur.Children)-1].Tail += string(t)
			}
		}
	}
	if root == nil {
		return nil, xmlError(dec, errNoRoot)
	}
	if len(stack) > 0 {
		return nil, xmlError(dec, errUnclosed)
	}
	return root, nil
}

func xmlError(dec *xml.Decoder, err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Line: se.Line, Err: errors.New(se.Msg)}
	}
	switch {
	case errors.Is(err, errNoRoot), errors.Is(err, errJunkAfter),
		errors.Is(err, errTextOutside), errors.Is(err, errUnclosed):
		line, _ := dec.InputPos()
		return &ParseError{Line: line, Err: err}
	}
	return err
}

// qualify renders a resolved name in {uri}local notation.
func qualify(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}

func attrs(in []xml.Attr) []Attr {
	var out []Attr
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{Name: qualify(a.Name), Value: a.Value})
	}
	return out
}
