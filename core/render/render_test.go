package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagemark/core"
)

const sampleMarkdown = "# T\n\nDate: 2024-01-01\n\n## Setup\n\nRun `go test`. See [docs](https://example.com).\n\n```\ncode line\n```\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n\n* one\n* two"

func TestJSONRenderer(t *testing.T) {
	meta := core.PageMetadata{Source: "demo.html", Title: "T", Date: "2024-01-01"}
	data, err := NewJSONRenderer().Render(sampleMarkdown, meta)
	require.NoError(t, err)

	var page core.PageJSON
	require.NoError(t, json.Unmarshal(data, &page))

	assert.Equal(t, meta, page.Metadata)
	assert.Equal(t, sampleMarkdown, page.Content.Markdown)
	assert.Equal(t, []core.Heading{{Level: 1, Text: "T"}, {Level: 2, Text: "Setup"}}, page.Structure.Headings)
	assert.Equal(t, []core.Link{{Text: "docs", Href: "https://example.com"}}, page.Structure.Links)
	assert.Equal(t, 1, page.Structure.CodeBlocks)
	assert.Equal(t, 1, page.Structure.Tables)
	assert.Equal(t, 2, page.Structure.Lists)

	require.Len(t, page.Content.Sections, 2)
	assert.Equal(t, "Date: 2024-01-01", page.Content.Sections[0].Text)
	assert.Equal(t, "Setup", page.Content.Sections[1].Heading)
	assert.Contains(t, page.Content.Sections[1].Text, "Run go test. See docs.")
	assert.Contains(t, page.Content.Sections[1].Text, "code line")
	assert.NotContains(t, page.Content.Text, "`")
	assert.NotContains(t, page.Content.Text, "](")
}

func TestJSONRendererEmpty(t *testing.T) {
	data, err := NewJSONRenderer().Render("", core.PageMetadata{})
	require.NoError(t, err)

	var page core.PageJSON
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Empty(t, page.Structure.Headings)
	assert.Empty(t, page.Content.Sections)
	assert.Equal(t, "", page.Content.Text)
}

func TestPDFRenderer(t *testing.T) {
	data, err := NewPDFRenderer().Render(sampleMarkdown+"\n\n> quoted ~~old~~", core.PageMetadata{Source: "https://example.com", Title: "T"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer().Render("# T", core.PageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "# T", string(data))
}

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"", ".md"},
		{FormatMarkdown, ".md"},
		{FormatJSON, ".json"},
		{FormatPDF, ".pdf"},
	}
	for _, tt := range tests {
		r, err := New(tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.ext, r.Extension())
	}

	_, err := New("docx")
	assert.Error(t, err)
}
