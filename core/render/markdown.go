// Package render provides output renderers for the pagemark pipeline.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/pagemark/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Format names accepted by New.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// New returns the renderer for the named output format.
func New(format string) (core.Renderer, error) {
	switch format {
	case FormatMarkdown, "":
		return NewMarkdownRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
