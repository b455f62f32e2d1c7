// Package extract implements the Extractor interface.
// It isolates the main content of an HTML page and rewrites it as a
// document tree serialization:
//  1. Removing noise elements (nav, footer, scripts, images, etc.)
//  2. Finding the best content container (<main>, <article>, or <body>)
//  3. Mapping the remaining HTML onto the tree vocabulary
//
// Comments and links are never carried into the tree.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/pagemark/core/tree"
)

// ErrExtractionEmpty is returned when a page has no main content.
var ErrExtractionEmpty = errors.New("extraction yielded no content")

// noiseSelectors are HTML elements removed before extraction.
// These contribute no meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	".comments", "#comments",
}

// HTMLExtractor strips noise from HTML and builds the document tree.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes raw HTML and returns the serialized document tree of its
// main content.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, content, err := e.content(html)
	if err != nil {
		return "", err
	}

	root := tree.New(tree.TagDoc)
	for k, v := range readMetadata(doc) {
		root.Attrs[k] = v
	}
	main := tree.New(tree.TagMain)
	buildBlocks(content, main)
	if len(main.Children) == 0 {
		return "", ErrExtractionEmpty
	}
	root.Append(main)

	out, err := tree.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("serializing tree: %w", err)
	}
	return out, nil
}

// Clean returns the main content container as an HTML fragment, with the
// noise removed.
func (e *HTMLExtractor) Clean(html string) (string, error) {
	_, content, err := e.content(html)
	if err != nil {
		return "", err
	}
	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	if strings.TrimSpace(content.Text()) == "" {
		return "", ErrExtractionEmpty
	}
	return result, nil
}

// content parses the page and returns the document along with its best
// content container.
func (e *HTMLExtractor) content(html string) (*goquery.Document, *goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Only <body> is cleaned; metadata in <head> must survive.
	body := doc.Find("body")
	for _, sel := range noiseSelectors {
		body.Find(sel).Remove()
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return doc, sel.First(), nil
		}
	}
	return nil, nil, ErrExtractionEmpty
}

// readMetadata collects the doc attributes from <head>.
func readMetadata(doc *goquery.Document) map[string]string {
	meta := make(map[string]string)

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = collapse(doc.Find("head title").First().Text())
	}
	if title == "" {
		title = collapse(doc.Find("h1").First().Text())
	}
	if title != "" {
		meta["title"] = title
	}

	date := metaContent(doc, `meta[property="article:published_time"]`)
	if date == "" {
		date = metaContent(doc, `meta[name="date"]`)
	}
	if date == "" {
		date, _ = doc.Find("time[datetime]").First().Attr("datetime")
	}
	if date != "" {
		meta["date"] = date
	}

	if cats := metaList(doc, `meta[property="article:section"]`); cats != "" {
		meta["categories"] = cats
	}
	tags := metaList(doc, `meta[property="article:tag"]`)
	if tags == "" {
		tags = metaContent(doc, `meta[name="keywords"]`)
	}
	if tags != "" {
		meta["tags"] = tags
	}
	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func metaList(doc *goquery.Document, selector string) string {
	var values []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok && strings.TrimSpace(v) != "" {
			values = append(values, strings.TrimSpace(v))
		}
	})
	return strings.Join(values, ",")
}

// collapse folds runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
