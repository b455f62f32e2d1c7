// Package render — PDF renderer.
// Lays out the normalized Markdown as a PDF using gofpdf.
// Handles the block forms the tree renderer emits: headings, paragraphs,
// fenced code, tables, list items and quotes.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/pagemark/core"
)

var (
	inlineCode = regexp.MustCompile("`([^`]+)`")
	strike     = regexp.MustCompile(`~~([^~]+)~~`)
	tableRule  = regexp.MustCompile(`^\|(\s*---\s*\|)+$`)
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)

		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(cleanInline(strings.TrimLeft(trimmed, "# "))), level)

		case strings.HasPrefix(trimmed, "|"):
			if tableRule.MatchString(trimmed) {
				continue
			}
			pdf.SetFont("Courier", "", 9)
			pdf.MultiCell(0, 5, tr(cleanInline(trimmed)), "", "L", false)

		case strings.HasPrefix(trimmed, "* "), strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("- "+cleanInline(trimmed[2:])), "", "L", false)

		case strings.HasPrefix(trimmed, ">"):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetX(pdf.GetX() + 6)
			pdf.MultiCell(0, 5, tr(cleanInline(strings.TrimSpace(trimmed[1:]))), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// cleanInline strips inline Markdown markup for PDF rendering.
func cleanInline(text string) string {
	text = inlineCode.ReplaceAllString(text, "$1")
	text = strike.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
