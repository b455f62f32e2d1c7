// Package markdown renders a document tree into Markdown.
// Rendering is a single depth-first pass. Each tag has its own rule and the
// parent node is passed down explicitly for rules that depend on it.
package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/pagemark/core/tree"
)

// DefaultInlineCodeMaxLen is the longest single-line code text rendered inline.
const DefaultInlineCodeMaxLen = 30

// excerptLen bounds the text kept on a Warning.
const excerptLen = 100

var headingSymbols = map[string]string{"h1": "#", "h2": "##", "h3": "###"}

// Warning records a tag the renderer does not know. The node is still
// rendered as flattened text.
type Warning struct {
	Tag     string
	Excerpt string
}

func (w Warning) String() string {
	return fmt.Sprintf("unknown tag <%s>: %q", w.Tag, w.Excerpt)
}

// Result is the outcome of rendering one tree.
type Result struct {
	Markdown string
	Warnings []Warning
}

// Renderer converts document trees into raw, un-normalized Markdown.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	InlineCodeMaxLen int
}

// New creates a Renderer. Non-positive inlineCodeMaxLen selects the default.
func New(inlineCodeMaxLen int) *Renderer {
	if inlineCodeMaxLen <= 0 {
		inlineCodeMaxLen = DefaultInlineCodeMaxLen
	}
	return &Renderer{InlineCodeMaxLen: inlineCodeMaxLen}
}

// Render walks the tree rooted at root.
func (r *Renderer) Render(root *tree.Node) Result {
	p := &pass{maxInline: r.InlineCodeMaxLen}
	if p.maxInline <= 0 {
		p.maxInline = DefaultInlineCodeMaxLen
	}
	md := p.render(root, nil)
	return Result{Markdown: md, Warnings: p.warnings}
}

// pass carries the state of a single Render call.
type pass struct {
	maxInline int
	warnings  []Warning
}

func (p *pass) render(n, parent *tree.Node) string {
	var b strings.Builder
	text := strings.TrimSpace(n.InlineText())

	switch n.Tag {
	case tree.TagDoc:
		fmt.Fprintf(&b, "# %s\n\nDate: %s\nCategories: %s\nTags: %s\n\n",
			n.Attr("title"), n.Attr("date"), n.Attr("categories"), n.Attr("tags"))

	case tree.TagHead:
		symbol, ok := headingSymbols[n.Attr("rend")]
		if !ok {
			symbol = "#"
		}
		fmt.Fprintf(&b, "\n\n%s %s\n\n", symbol, text)

	case tree.TagP, tree.TagLB:
		if len(n.Children) > 0 {
			// Inline spans follow directly.
			b.WriteString(text)
		} else {
			fmt.Fprintf(&b, "\n%s\n\n", text)
		}

	case tree.TagCode, tree.TagPre:
		b.WriteString(p.code(text, parent))

	case tree.TagTable:
		b.WriteString(renderTable(n))

	case tree.TagList:
		b.WriteString("\n\n")

	case tree.TagItem:
		fmt.Fprintf(&b, "* %s\n", text)

	case tree.TagMain:
		b.WriteString(text)

	case tree.TagQuote:
		fmt.Fprintf(&b, "> %s\n", text)

	case tree.TagDel:
		fmt.Fprintf(&b, "~~%s~~\n", text)

	default:
		flat := strings.TrimSpace(flatText(n)) + "\n"
		b.WriteString(flat)
		if !tree.IsPassthrough(n.Tag) {
			p.warnings = append(p.warnings, Warning{Tag: n.Tag, Excerpt: excerpt(flat)})
		}
	}

	if n.Tag != tree.TagTable {
		for _, c := range n.Children {
			b.WriteString(p.render(c, n))
		}
	}

	if n.Tail != "" {
		b.WriteString(strings.TrimSpace(n.Tail))
	}
	return b.String()
}

// code renders code inline when it is short and single-line, or when it sits
// inside a paragraph. Anything else becomes a fenced block.
func (p *pass) code(text string, parent *tree.Node) string {
	inline := !strings.Contains(text, "\n") && utf8.RuneCountInString(text) <= p.maxInline
	if parent != nil && (parent.Tag == tree.TagP || parent.Tag == tree.TagLB) {
		inline = true
	}
	if inline {
		return " `" + text + "` "
	}
	return "\n\n```\n" + text + "\n```\n\n"
}

// flatText is the node's inner text with absent inline text read as a
// newline.
func flatText(n *tree.Node) string {
	if n.HasText {
		return n.InnerText()
	}
	return "\n" + n.InnerText()
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= excerptLen {
		return s
	}
	return string([]rune(s)[:excerptLen]) + "…"
}
