package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/pagemark/core/tree"
)

var headings = map[string]string{
	"h1": "h1", "h2": "h2", "h3": "h3", "h4": "h4", "h5": "h5", "h6": "h6",
}

// blockTags start a new block node. Anything else inside a container is
// inline content.
var blockTags = map[string]bool{
	"p": true, "pre": true, "ul": true, "ol": true, "dl": true,
	"blockquote": true, "table": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"div": true, "section": true, "article": true, "main": true,
	"details": true, "summary": true, "center": true,
}

// buildBlocks walks the children of a container and appends block nodes to
// parent. Generic containers are flattened. Runs of loose inline content
// are wrapped in a paragraph.
func buildBlocks(container *goquery.Selection, parent *tree.Node) {
	var loose *tree.Node
	flush := func() {
		if loose != nil && strings.TrimSpace(loose.InnerText()) != "" {
			parent.Append(loose)
		}
		loose = nil
	}

	container.Contents().Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if n.Type == html.ElementNode && blockTags[n.Data] {
			flush()
			buildBlock(s, n.Data, parent)
			return
		}
		if n.Type != html.TextNode && n.Type != html.ElementNode {
			return
		}
		if loose == nil {
			loose = tree.New(tree.TagP)
		}
		buildInline(s, loose)
	})
	flush()
}

// buildBlock converts one block-level element.
func buildBlock(s *goquery.Selection, tag string, parent *tree.Node) {
	if rend, ok := headings[tag]; ok {
		if text := collapse(s.Text()); text != "" {
			h := tree.New(tree.TagHead).SetText(text)
			h.Attrs["rend"] = rend
			parent.Append(h)
		}
		return
	}

	switch tag {
	case "p":
		p := tree.New(tree.TagP)
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			buildInline(c, p)
		})
		if strings.TrimSpace(p.InnerText()) != "" {
			parent.Append(p)
		}

	case "pre":
		if text := strings.Trim(s.Text(), "\n"); strings.TrimSpace(text) != "" {
			parent.Append(tree.New(tree.TagCode).SetText(text))
		}

	case "ul", "ol", "dl":
		list := tree.New(tree.TagList)
		buildItems(s, list)
		if len(list.Children) > 0 {
			parent.Append(list)
		}

	case "blockquote":
		if text := collapse(s.Text()); text != "" {
			parent.Append(tree.New(tree.TagQuote).SetText(text))
		}

	case "table":
		if t := buildTable(s); t != nil {
			parent.Append(t)
		}

	case "hr":
		// dropped

	default:
		buildBlocks(s, parent)
	}
}

// buildItems appends one item per list entry. Nested lists do not join
// their parent entry's text; their entries follow it as items of their own.
func buildItems(s *goquery.Selection, list *tree.Node) {
	s.Children().Each(func(_ int, li *goquery.Selection) {
		own := li.Clone()
		own.Find("ul, ol, dl").Remove()
		if text := collapse(own.Text()); text != "" {
			list.Append(tree.New(tree.TagItem).SetText(text))
		}
		nested := li.Find("ul, ol, dl")
		nested.NotSelection(nested.Find("ul, ol, dl")).Each(func(_ int, sub *goquery.Selection) {
			buildItems(sub, list)
		})
	})
}

// buildTable keeps the row and cell structure of a table. Nested tables are
// read as cell text.
func buildTable(s *goquery.Selection) *tree.Node {
	t := tree.New(tree.TagTable)
	rows := s.ChildrenFiltered("tr")
	rows = rows.AddSelection(s.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr"))
	rows.Each(func(_ int, tr *goquery.Selection) {
		row := tree.New(tree.TagRow)
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			text := collapse(td.Text())
			if text == "" {
				// A blank cell keeps one space so it is still present
				// text after serialization.
				text = " "
			}
			cell := tree.New(tree.TagCell).SetText(text)
			if goquery.NodeName(td) == "th" {
				cell.Attrs["role"] = "head"
			}
			row.Append(cell)
		})
		if len(row.Children) > 0 {
			t.Append(row)
		}
	})
	if len(t.Children) == 0 {
		if text := collapse(s.Text()); text != "" {
			return t.SetText(text)
		}
		return nil
	}
	return t
}

// buildInline appends inline content to parent. Code, line breaks and
// strike-through become child nodes. Other elements, links included,
// contribute only their text.
func buildInline(s *goquery.Selection, parent *tree.Node) {
	n := s.Get(0)
	switch n.Type {
	case html.TextNode:
		parent.AppendText(collapseInline(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "br":
		parent.Append(tree.New(tree.TagLB))
	case "code", "kbd", "samp":
		if text := s.Text(); strings.TrimSpace(text) != "" {
			parent.Append(tree.New(tree.TagCode).SetText(text))
		}
	case "del", "s", "strike":
		if text := collapse(s.Text()); text != "" {
			parent.Append(tree.New(tree.TagDel).SetText(text))
		}
	default:
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			buildInline(c, parent)
		})
	}
}

// collapseInline folds whitespace runs into one space but keeps a single
// space at either edge, so adjacent inline text does not run together.
func collapseInline(s string) string {
	if s == "" {
		return ""
	}
	inner := collapse(s)
	if inner == "" {
		return " "
	}
	if isSpace(s[0]) {
		inner = " " + inner
	}
	if isSpace(s[len(s)-1]) {
		inner += " "
	}
	return inner
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
