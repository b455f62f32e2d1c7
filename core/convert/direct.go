package convert

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/pagemark/core"
	"github.com/gaurav-prasanna/pagemark/core/normalize"
)

// DirectConverter converts cleaned HTML with html-to-markdown, skipping the
// document tree.
type DirectConverter struct {
	cleaner Cleaner
	conv    *converter.Converter
	logger  *slog.Logger
}

// NewDirectConverter creates a DirectConverter.
func NewDirectConverter(cleaner Cleaner, opts Options) *DirectConverter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &DirectConverter{cleaner: cleaner, conv: conv, logger: logger}
}

// Convert turns html into normalized Markdown.
func (c *DirectConverter) Convert(html string) (*core.Conversion, error) {
	fragment, err := c.cleaner.Clean(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	md, err := c.conv.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	c.logger.Debug("converted with html-to-markdown", "html_bytes", len(fragment), "markdown_bytes", len(md))

	return &core.Conversion{
		Markdown: normalize.Normalize(md),
		Meta: core.PageMetadata{
			Title:       pageTitle(html),
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// pageTitle reads <title>, which the cleaned fragment no longer carries.
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("head title").First().Text()), " ")
}
