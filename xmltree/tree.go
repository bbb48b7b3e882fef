// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmltree

// Content is the body of a Node.
// It is either Text or *Children, never both.
type Content interface {
	isContent()
}

// Text is the character data of an element that has no child elements.
type Text string

func (Text) isContent() {}

// Children is an ordered mapping of tag names to every element with that name.
// Names are kept in the order they were first seen.
type Children struct {
	names []string
	occ   map[string][]*Node
}

func (*Children) isContent() {}

// NewChildren returns a Children holding the given nodes in order.
func NewChildren(nodes ...*Node) *Children {
	c := &Children{}
	for _, n := range nodes {
		c.Append(n)
	}
	return c
}

// Append adds n as the next occurrence of its name.
func (c *Children) Append(n *Node) {
	if c.occ == nil {
		c.occ = make(map[string][]*Node)
	}
	if _, ok := c.occ[n.Name]; !ok {
		c.names = append(c.names, n.Name)
	}
	c.occ[n.Name] = append(c.occ[n.Name], n)
}

// Names returns the distinct tag names in first-seen order.
func (c *Children) Names() []string {
	if c == nil {
		return nil
	}
	return c.names
}

// Get returns every occurrence of the named element in document order.
func (c *Children) Get(name string) []*Node {
	if c == nil {
		return nil
	}
	return c.occ[name]
}

// Has reports whether at least one element with the given name is present.
func (c *Children) Has(name string) bool {
	return len(c.Get(name)) > 0
}

// Len returns the number of distinct tag names.
func (c *Children) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Node is a single element of a parsed buffer.
type Node struct {
	Name    string
	Attr    map[string]string
	Content Content
}

// Text returns the character data of n or the empty string if n has child
// elements.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if t, ok := n.Content.(Text); ok {
		return string(t)
	}
	return ""
}

// Children returns the child elements of n.
// It never returns nil: an element with text content has no children.
func (n *Node) Children() *Children {
	if n != nil {
		if c, ok := n.Content.(*Children); ok && c != nil {
			return c
		}
	}
	return &Children{}
}

// Child returns the first child element with the given name or nil.
func (n *Node) Child(name string) *Node {
	occ := n.Children().Get(name)
	if len(occ) == 0 {
		return nil
	}
	return occ[0]
}

// Path follows the first occurrence of each name in turn and returns the final
// node, or nil if any step is missing.
func (n *Node) Path(names ...string) *Node {
	for _, name := range names {
		if n == nil {
			return nil
		}
		n = n.Child(name)
	}
	return n
}

// AttrValue returns the named attribute or the empty string.
func (n *Node) AttrValue(name string) string {
	if n == nil {
		return ""
	}
	return n.Attr[name]
}

// Build turns a token sequence into a tree.
// The returned children are the top level elements of toks.
// Text between top level elements is dropped.
func Build(toks []Token) *Children {
	b := builder{toks: toks}
	return b.children()
}

type builder struct {
	toks []Token
	pos  int
}

// children consumes tokens until a Close that belongs to the caller or the end
// of input.
func (b *builder) children() *Children {
	c := &Children{}
	for b.pos < len(b.toks) {
		t := b.toks[b.pos]
		b.pos++
		switch t.Kind {
		case Close:
			return c
		case Complete:
			c.Append(&Node{Name: t.Name, Attr: t.Attr, Content: textOrEmpty(t.Value)})
		case Open:
			n := &Node{Name: t.Name, Attr: t.Attr}
			kids := b.children()
			switch {
			case kids.Len() > 0:
				n.Content = kids
			default:
				n.Content = textOrEmpty(t.Value)
			}
			c.Append(n)
		}
	}
	return c
}

func textOrEmpty(s string) Content {
	if s == "" {
		return &Children{}
	}
	return Text(s)
}
