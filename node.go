package fread

import "strings"

// Attr is a single markup attribute.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Node is one element of a markup document. A parent exclusively owns its
// children and there are no back-references.
type Node struct {
	Tag      string  `json:"tag" yaml:"tag"`
	Attrs    []Attr  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"` // text before the first child
	Tail     string  `json:"tail,omitempty" yaml:"tail,omitempty"` // text after the end tag, inside the parent
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// LocalName returns the tag without its {uri} namespace prefix.
func (n *Node) LocalName() string { return localName(n.Tag) }

// Walk visits n and its descendants depth-first in document order. The
// root is at depth 0. Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns every descendant of n (including n) whose tag equals tag.
func (n *Node) Find(tag string) []*Node {
	var out []*Node
	n.Walk(func(c *Node, _ int) bool {
		if c.Tag == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

// InnerText returns all text inside n in document order.
func (n *Node) InnerText() string {
	var b strings.Builder
	n.innerText(&b)
	return b.String()
}

func (n *Node) innerText(b *strings.Builder) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.innerText(b)
		b.WriteString(c.Tail)
	}
}

func localName(name string) string {
	if strings.HasPrefix(name, "{") {
		if i := strings.IndexByte(name, '}'); i >= 0 {
			return name[i+1:]
		}
	}
	return name
}
