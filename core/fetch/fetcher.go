// Package fetch implements the Fetcher interface.
// Inputs are either http(s) URLs, fetched with a GET request, or paths to
// local HTML files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/gaurav-prasanna/pagemark/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pagemark/1.0 (https://github.com/gaurav-prasanna/pagemark)"

	// maxBodyBytes caps how much of a page is read.
	maxBodyBytes = 20 << 20
)

// textTypes are the sniffed content types accepted as input. Serialized
// document trees without an XML declaration sniff as text/plain.
var textTypes = []string{"text/html", "application/xhtml+xml", "text/xml", "application/xml", "text/plain"}

// Fetcher loads HTML from URLs and local files.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with a sensible timeout.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// IsURL reports whether src is an http or https URL.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch reads src, which is an http(s) URL or a file path.
func (f *Fetcher) Fetch(ctx context.Context, src string) (*core.FetchResult, error) {
	if !IsURL(src) {
		return readFile(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, src)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if err := checkContent(body, src); err != nil {
		return nil, err
	}

	return &core.FetchResult{
		URL:        src,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

func readFile(path string) (*core.FetchResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	if err := checkContent(data, path); err != nil {
		return nil, err
	}
	return &core.FetchResult{URL: path, HTML: string(data)}, nil
}

// checkContent sniffs data and rejects anything that is not HTML, XML or
// plain text.
func checkContent(data []byte, src string) error {
	mtype := mimetype.Detect(data)
	for _, t := range textTypes {
		if mtype.Is(t) {
			return nil
		}
	}
	return fmt.Errorf("unsupported content type %q for %s", mtype.String(), src)
}
