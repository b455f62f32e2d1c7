// Package convert implements the Converter interface.
// The tree engine renders the extractor's document tree. The direct engine
// hands the cleaned HTML to html-to-markdown. Both finish with the same
// normalization pass.
package convert

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gaurav-prasanna/pagemark/core"
	"github.com/gaurav-prasanna/pagemark/core/markdown"
	"github.com/gaurav-prasanna/pagemark/core/normalize"
	"github.com/gaurav-prasanna/pagemark/core/tree"
)

// Engine names accepted by New.
const (
	EngineTree   = "tree"
	EngineDirect = "direct"
)

// Cleaner returns the main content of a page as an HTML fragment.
type Cleaner interface {
	Clean(html string) (string, error)
}

// ContentExtractor provides both extraction forms.
type ContentExtractor interface {
	core.Extractor
	Cleaner
}

// Options configures a converter.
type Options struct {
	// InlineCodeMaxLen is the longest code text rendered inline outside
	// paragraphs. Zero selects the renderer default.
	InlineCodeMaxLen int
	Logger           *slog.Logger
}

// New returns the converter for the named engine.
func New(engine string, extractor ContentExtractor, opts Options) (core.Converter, error) {
	switch engine {
	case EngineTree, "":
		return NewTreeConverter(extractor, opts), nil
	case EngineDirect:
		return NewDirectConverter(extractor, opts), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want %q or %q)", engine, EngineTree, EngineDirect)
	}
}

// TreeConverter renders pages through the document tree.
type TreeConverter struct {
	extractor core.Extractor
	renderer  *markdown.Renderer
	logger    *slog.Logger
}

// NewTreeConverter creates a TreeConverter.
func NewTreeConverter(extractor core.Extractor, opts Options) *TreeConverter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TreeConverter{
		extractor: extractor,
		renderer:  markdown.New(opts.InlineCodeMaxLen),
		logger:    logger,
	}
}

// Convert extracts the document tree from html and renders it.
func (c *TreeConverter) Convert(html string) (*core.Conversion, error) {
	serialized, err := c.extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return c.ConvertTree(serialized)
}

// ConvertTree renders an already serialized document tree.
// Unknown tags are logged and rendered as plain text.
func (c *TreeConverter) ConvertTree(serialized string) (*core.Conversion, error) {
	root, err := tree.Parse(serialized)
	if err != nil {
		return nil, err
	}

	res := c.renderer.Render(root)
	warnings := make([]core.Warning, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		c.logger.Warn("unknown tag rendered as text", "tag", w.Tag, "excerpt", w.Excerpt)
		warnings = append(warnings, core.Warning{Tag: w.Tag, Excerpt: w.Excerpt})
	}

	return &core.Conversion{
		Markdown: normalize.Normalize(res.Markdown),
		Meta:     metadataOf(root),
		Warnings: warnings,
	}, nil
}

// metadataOf reads the doc attributes of the tree root.
func metadataOf(root *tree.Node) core.PageMetadata {
	return core.PageMetadata{
		Title:       root.Attr("title"),
		Date:        root.Attr("date"),
		Categories:  root.Attr("categories"),
		Tags:        root.Attr("tags"),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
