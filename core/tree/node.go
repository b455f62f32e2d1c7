// Package tree holds the structured document tree produced by the extractor.
// A tree is built once per conversion from its XML serialization and is
// discarded after rendering.
package tree

import "strings"

// Tags emitted by the extractor.
const (
	TagDoc   = "doc"
	TagHead  = "head"
	TagP     = "p"
	TagLB    = "lb"
	TagCode  = "code"
	TagPre   = "pre"
	TagTable = "table"
	TagRow   = "row"
	TagCell  = "cell"
	TagList  = "list"
	TagItem  = "item"
	TagMain  = "main"
	TagQuote = "quote"
	TagDel   = "del"
)

// passthrough tags render as flattened text without a diagnostic.
var passthrough = map[string]bool{
	"div": true, TagRow: true, TagCell: true, TagLB: true,
	"th": true, "td": true, "t": true, "unnamed": true,
}

// IsPassthrough reports whether tag is a known container whose text is
// emitted as-is.
func IsPassthrough(tag string) bool {
	return passthrough[tag]
}

// Node is one element of the document tree.
type Node struct {
	Tag   string
	Attrs map[string]string

	// Text is the text before the first child. HasText is false when the
	// element carried no such text at all.
	Text    string
	HasText bool

	// Tail is the text after the closing tag, still inside the parent.
	Tail string

	Children []*Node
}

// New creates a Node with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag, Attrs: make(map[string]string)}
}

// Attr returns the attribute value, or "" if it is not set.
func (n *Node) Attr(key string) string {
	return n.Attrs[key]
}

// SetText sets the inline text.
func (n *Node) SetText(s string) *Node {
	n.Text = s
	n.HasText = true
	return n
}

// InlineText returns the inline text, or a single newline when the node has
// none, so callers can trim it without checking for absence.
func (n *Node) InlineText() string {
	if !n.HasText {
		return "\n"
	}
	return n.Text
}

// Append adds children in order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AppendText adds character data at the current end of n: to its own text
// if it has no children yet, otherwise to the tail of its last child.
func (n *Node) AppendText(s string) {
	if len(n.Children) == 0 {
		n.Text += s
		n.HasText = true
		return
	}
	last := n.Children[len(n.Children)-1]
	last.Tail += s
}

// Find returns the first direct child with the given tag.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// InnerText concatenates the node's text with the text and tail of every
// descendant in document order. The node's own tail is not included.
func (n *Node) InnerText() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.writeText(b)
		b.WriteString(c.Tail)
	}
}
