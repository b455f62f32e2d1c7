// Package render — JSON renderer.
// Builds the structured JSON output from Markdown and page metadata.
// The Markdown is parsed with goldmark and the structural information
// (headings, links, code blocks, tables, lists) is read off the AST.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/pagemark/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct {
	md goldmark.Markdown
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts Markdown and metadata into the JSON page document.
func (r *JSONRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	src := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(src))

	structure, sections, plain := inspect(doc, src)

	page := core.PageJSON{
		Metadata: meta,
		Content: core.PageContent{
			Text:     plain,
			Markdown: markdown,
			Sections: sections,
		},
		Structure: structure,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// inspect walks the top-level blocks of doc, splitting them into sections
// at each heading and counting structural elements.
func inspect(doc ast.Node, src []byte) (core.PageStructure, []core.Section, string) {
	structure := core.PageStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}
	var (
		sections []core.Section
		current  *core.Section
		body     []string
		plain    []string
	)
	flush := func() {
		if current != nil {
			current.Text = strings.Join(body, "\n\n")
			sections = append(sections, *current)
		}
		body = nil
	}

	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		blockText := strings.TrimSpace(plainText(block, src))
		if blockText != "" {
			plain = append(plain, blockText)
		}

		if h, ok := block.(*ast.Heading); ok {
			flush()
			structure.Headings = append(structure.Headings, core.Heading{Level: h.Level, Text: blockText})
			current = &core.Section{Heading: blockText, Level: h.Level}
		} else if current != nil && blockText != "" {
			body = append(body, blockText)
		}

		_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch n := n.(type) {
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				structure.CodeBlocks++
			case *east.Table:
				structure.Tables++
			case *ast.ListItem:
				structure.Lists++
			case *ast.Link:
				structure.Links = append(structure.Links, core.Link{
					Text: strings.TrimSpace(plainText(n, src)),
					Href: string(n.Destination),
				})
			}
			return ast.WalkContinue, nil
		})
	}
	flush()

	return structure, sections, strings.Join(plain, "\n\n")
}

// plainText gathers the text under n without Markdown markup.
func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(c.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return ast.WalkSkipChildren, nil
		case *east.TableCell:
			if c.PreviousSibling() != nil {
				buf.WriteByte(' ')
			}
		case *east.TableRow, *east.TableHeader, *ast.ListItem:
			if c.PreviousSibling() != nil {
				buf.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
