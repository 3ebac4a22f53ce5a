package fread

import (
	"fmt"

	"github.com/antchfx/xpath"
)

// Select evaluates an XPath 1.0 expression with n as the document element
// and returns the matching element nodes in document order. Attribute and
// text matches are skipped; use [Node.Attr] or [Node.Evaluate] for those.
func (n *Node) Select(expr string) ([]*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: xpath %q: %w", ErrInvalidArgument, expr, err)
	}
	var out []*Node
	it := compiled.Select(newNavigator(n))
	for it.MoveNext() {
		nav, ok := it.Current().(*navigator)
		if !ok || nav.NodeType() != xpath.ElementNode {
			continue
		}
		out = append(out, nav.current())
	}
	return out, nil
}

// Evaluate evaluates an XPath 1.0 expression and returns its scalar value:
// a float64, string, or bool. Node-set results are returned as their
// string value.
func (n *Node) Evaluate(expr string) (any, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: xpath %q: %w", ErrInvalidArgument, expr, err)
	}
	switch v := compiled.Evaluate(newNavigator(n)).(type) {
	case *xpath.NodeIterator:
		if v.MoveNext() {
			return v.Current().Value(), nil
		}
		return "", nil
	default:
		return v, nil
	}
}

// step is one level of a navigator path: an element, or a run of text when
// node is nil.
type step struct {
	node  *Node
	text  string
	index int // position in the parent's content
}

// content lists the children of e in document order: its leading text,
// then each child element followed by that child's tail.
func content(e *Node) []step {
	var out []step
	add := func(s step) {
		s.index = len(out)
		out = append(out, s)
	}
	if e.Text != "" {
		add(step{text: e.Text})
	}
	for _, c := range e.Children {
		add(step{node: c})
		if c.Tail != "" {
			add(step{text: c.Tail})
		}
	}
	return out
}

// navigator walks a Node tree for the xpath engine. An empty path is the
// document root above the document element.
type navigator struct {
	doc  *Node
	path []step
	attr int
}

func newNavigator(doc *Node) *navigator {
	return &navigator{doc: doc, attr: -1}
}

func (n *navigator) current() *Node { return n.path[len(n.path)-1].node }

func (n *navigator) onText() bool { return len(n.path) > 0 && n.current() == nil }

func (n *navigator) NodeType() xpath.NodeType {
	switch {
	case len(n.path) == 0:
		return xpath.RootNode
	case n.attr >= 0:
		return xpath.AttributeNode
	case n.onText():
		return xpath.TextNode
	default:
		return xpath.ElementNode
	}
}

func (n *navigator) LocalName() string {
	if len(n.path) == 0 || n.onText() {
		return ""
	}
	if n.attr >= 0 {
		return localName(n.current().Attrs[n.attr].Name)
	}
	return n.current().LocalName()
}

func (n *navigator) Prefix() string { return "" }

func (n *navigator) Value() string {
	switch {
	case len(n.path) == 0:
		return n.doc.InnerText()
	case n.attr >= 0:
		return n.current().Attrs[n.attr].Value
	case n.onText():
		return n.path[len(n.path)-1].text
	default:
		return n.current().InnerText()
	}
}

func (n *navigator) Copy() xpath.NodeNavigator {
	c := *n
	c.path = append([]step(nil), n.path...)
	return &c
}

func (n *navigator) MoveToRoot() {
	n.path = n.path[:0]
	n.attr = -1
}

func (n *navigator) MoveToParent() bool {
	if n.attr >= 0 {
		n.attr = -1
		return true
	}
	if len(n.path) == 0 {
		return false
	}
	n.path = n.path[:len(n.path)-1]
	return true
}

func (n *navigator) MoveToNextAttribute() bool {
	if len(n.path) == 0 || n.onText() || n.attr >= len(n.current().Attrs)-1 {
		return false
	}
	n.attr++
	return true
}

func (n *navigator) MoveToChild() bool {
	if n.attr >= 0 || n.onText() {
		return false
	}
	if len(n.path) == 0 {
		n.path = append(n.path, step{node: n.doc})
		return true
	}
	children := content(n.current())
	if len(children) == 0 {
		return false
	}
	n.path = append(n.path, children[0])
	return true
}

func (n *navigator) MoveToFirst() bool {
	return n.moveSibling(func(int) int { return 0 })
}

func (n *navigator) MoveToNext() bool {
	return n.moveSibling(func(i int) int { return i + 1 })
}

func (n *navigator) MoveToPrevious() bool {
	return n.moveSibling(func(i int) int { return i - 1 })
}

func (n *navigator) moveSibling(next func(int) int) bool {
	if n.attr >= 0 || len(n.path) < 2 {
		return false
	}
	last := len(n.path) - 1
	siblings := content(n.path[last-1].node)
	i := next(n.path[last].index)
	if i == n.path[last].index || i < 0 || i >= len(siblings) {
		return false
	}
	n.path[last] = siblings[i]
	return true
}

func (n *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.doc != n.doc {
		return false
	}
	n.path = append(n.path[:0], o.path...)
	n.attr = o.attr
	return true
}
