package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a"))
	assert.True(t, IsURL("http://localhost:8080"))
	assert.False(t, IsURL("demo.html"))
	assert.False(t, IsURL("/tmp/page.html"))
	assert.False(t, IsURL("ftp://example.com"))
	assert.False(t, IsURL("https://"))
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			assert.Contains(t, r.Header.Get("User-Agent"), "pagemark")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<p>hello</p>"))
		case "/data":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{}"))
		case "/mislabeled":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New()
	res, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "<p>hello</p>", res.HTML)

	_, err = f.Fetch(context.Background(), srv.URL+"/data")
	assert.ErrorContains(t, err, "unsupported content type")

	_, err = f.Fetch(context.Background(), srv.URL+"/mislabeled")
	assert.ErrorContains(t, err, `unsupported content type "application/pdf"`)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	res, err := New().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.URL)
	assert.Equal(t, "<html></html>", res.HTML)

	_, err = New().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}

func TestFetchFileContentType(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body []byte
		ok   bool
	}{
		{"html", []byte("<!DOCTYPE html><html><body><p>x</p></body></html>"), true},
		{"tree", []byte(`<doc title="T"><main><p>x</p></main></doc>`), true},
		{"xml declaration", []byte(`<?xml version="1.0"?><doc><main/></doc>`), true},
		{"pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"), false},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), false},
		{"binary", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, tt.body, 0o644))
			_, err := New().Fetch(context.Background(), path)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, "unsupported content type")
			}
		})
	}
}
