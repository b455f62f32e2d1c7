// Package core defines the pipeline interfaces for pagemark.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata holds the document metadata carried on the tree root,
// plus where the page came from.
type PageMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Categories  string `json:"categories"`
	Tags        string `json:"tags"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Warning is a non-fatal problem met while converting a page.
type Warning struct {
	Tag     string `json:"tag"`
	Excerpt string `json:"excerpt"`
}

// Conversion is the normalized Markdown of one page.
type Conversion struct {
	Markdown string
	Meta     PageMetadata
	Warnings []Warning
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// PageContent holds the text and structured content of a page.
type PageContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// PageStructure holds structural metadata parsed from the content.
type PageStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// PageJSON is the complete JSON output for a single page.
type PageJSON struct {
	Metadata  PageMetadata  `json:"metadata"`
	Content   PageContent   `json:"content"`
	Structure PageStructure `json:"structure"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor turns raw HTML into the serialized document tree of its main
// content.
type Extractor interface {
	Extract(html string) (string, error)
}

// Converter turns raw HTML into normalized Markdown.
type Converter interface {
	Convert(html string) (*Conversion, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
