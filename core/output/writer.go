// Package output handles file naming and writing for pagemark outputs.
// An explicit output path is used as given. Otherwise the name is derived:
// from the domain and path for URL inputs (e.g., example_com_docs.md), or
// from the default output name with the format's extension.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer that resolves relative paths against outputDir.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data at path, creating parent directories as needed, and
// returns the full path written.
func (w *Writer) Write(path string, data []byte) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.OutputDir, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// ResolvePath picks the output file name. An explicit output wins. For URL
// inputs the name comes from the URL; otherwise output keeps its base name
// and takes ext.
func ResolvePath(input, output string, explicit bool, ext string) string {
	if explicit {
		return output
	}
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return filenameFromURL(u) + ext
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + ext
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(u *url.URL) string {
	parts := []string{sanitize(u.Host)}
	path := strings.Trim(u.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(strings.TrimSuffix(seg, filepath.Ext(seg))))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
