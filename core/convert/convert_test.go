package convert

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagemark/core/extract"
	"github.com/gaurav-prasanna/pagemark/core/tree"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestConvertTreeEndToEnd(t *testing.T) {
	c := NewTreeConverter(extract.New(), Options{})
	conv, err := c.ConvertTree(`<doc title="T" date="2024-01-01"><head rend="h1">Hi</head><p>Hello.</p></doc>`)
	require.NoError(t, err)

	want := "# T\n\nDate: 2024-01-01\nCategories: \nTags: \n\n# Hi\n\nHello."
	assert.Equal(t, want, conv.Markdown)
	assert.Equal(t, "T", conv.Meta.Title)
	assert.Equal(t, "2024-01-01", conv.Meta.Date)
	assert.Empty(t, conv.Warnings)
}

func TestConvertTreeInlineCodePunctuation(t *testing.T) {
	c := NewTreeConverter(extract.New(), Options{})
	conv, err := c.ConvertTree(`<doc><main><p>Run <code>go test</code>. Then <code>go vet</code>, too.</p></main></doc>`)
	require.NoError(t, err)
	assert.Contains(t, conv.Markdown, "Run `go test`. Then `go vet`, too.")
}

func TestConvertTreeLogsUnknownTags(t *testing.T) {
	logger, buf := bufferLogger()
	c := NewTreeConverter(extract.New(), Options{Logger: logger})

	conv, err := c.ConvertTree(`<doc title="T"><main><hi rend="#b">bold</hi></main></doc>`)
	require.NoError(t, err)
	assert.Contains(t, conv.Markdown, "bold")
	require.Len(t, conv.Warnings, 1)
	assert.Equal(t, "hi", conv.Warnings[0].Tag)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "tag=hi")
}

func TestConvertTreeParseError(t *testing.T) {
	c := NewTreeConverter(extract.New(), Options{})
	_, err := c.ConvertTree(`<doc><p>broken</doc>`)
	var perr *tree.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestConvertHTML(t *testing.T) {
	page := `<html><head><title>Guide</title></head><body><article>
<h2>Setup</h2>
<p>Install with <code>go install ./...</code> and run it.</p>
<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>
</article></body></html>`

	c := NewTreeConverter(extract.New(), Options{InlineCodeMaxLen: 10})
	conv, err := c.Convert(page)
	require.NoError(t, err)

	assert.Equal(t, "Guide", conv.Meta.Title)
	assert.Contains(t, conv.Markdown, "# Guide")
	assert.Contains(t, conv.Markdown, "## Setup")
	assert.Contains(t, conv.Markdown, "`go install ./...`")
	assert.Contains(t, conv.Markdown, "| A | B |\n| --- | --- |\n| 1 | 2 |")
	assert.NotContains(t, conv.Markdown, "\n\n\n")
}

func TestConvertTableWithBlankCell(t *testing.T) {
	conv, err := NewTreeConverter(extract.New(), Options{}).
		Convert(`<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td></td></tr></table>`)
	require.NoError(t, err)
	assert.Contains(t, conv.Markdown, "| A | B |\n| --- | --- |\n| 1 |  |")
	assert.NotContains(t, conv.Markdown, "AB1")
}

func TestConvertEmptyPage(t *testing.T) {
	for _, engine := range []string{EngineTree, EngineDirect} {
		c, err := New(engine, extract.New(), Options{})
		require.NoError(t, err)
		_, err = c.Convert(`<html><body><nav>menu</nav></body></html>`)
		assert.True(t, errors.Is(err, extract.ErrExtractionEmpty), "engine %s: %v", engine, err)
	}
}

func TestDirectConverter(t *testing.T) {
	logger, _ := bufferLogger()
	c := NewDirectConverter(extract.New(), Options{Logger: logger})
	conv, err := c.Convert(`<html><head><title> Direct  Page </title></head><body>
<main><h1>Title</h1><p>Hello <strong>world</strong></p><script>x()</script></main></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Direct Page", conv.Meta.Title)
	assert.Contains(t, conv.Markdown, "# Title")
	assert.Contains(t, conv.Markdown, "**world**")
	assert.NotContains(t, conv.Markdown, "x()")
}

func TestNewEngine(t *testing.T) {
	c, err := New("", extract.New(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &TreeConverter{}, c)

	c, err = New(EngineDirect, extract.New(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &DirectConverter{}, c)

	_, err = New("regex", extract.New(), Options{})
	assert.Error(t, err)
}
