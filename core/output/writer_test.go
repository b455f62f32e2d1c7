package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		output   string
		explicit bool
		ext      string
		want     string
	}{
		{"explicit wins", "https://example.com/a", "out/page.txt", true, ".json", "out/page.txt"},
		{"default markdown", "demo.html", "demo.md", false, ".md", "demo.md"},
		{"default json", "demo.html", "demo.md", false, ".json", "demo.json"},
		{"url root", "https://example.com/", "demo.md", false, ".md", "example_com.md"},
		{"url path", "https://docs.example.com/guide/intro.html", "demo.md", false, ".pdf", "docs_example_com_guide_intro.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.input, tt.output, tt.explicit, tt.ext))
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write(filepath.Join("nested", "demo.md"), []byte("# T"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "demo.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# T", string(data))

	abs := filepath.Join(t.TempDir(), "abs.md")
	path, err = w.Write(abs, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, abs, path)
}
