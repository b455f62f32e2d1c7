package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"blank lines emptied", "a\n   \n\t\nb", "a\n\nb"},
		{"runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"two newlines kept", "a\n\nb", "a\n\nb"},
		{"code before period", "run `go test` .", "run `go test`."},
		{"code before comma", "use `x` , then", "use `x`, then"},
		{"trimmed", "\n\n  # T\n\n", "# T"},
		{"trailing space kept inside", "Categories: \nTags: ", "Categories: \nTags:"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"# T\n\nDate: \n\n\n\n# Hi\n\n\nHello.\n\n",
		"a ` ` . b\n \n \n \nc",
		"\n\n```\ncode\n```\n\n\n\n* one\n* two\n",
		"  \t\n x `y` , z ` .\n\n\n",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeNoTripleNewlines(t *testing.T) {
	inputs := []string{
		"a\n\n\nb",
		"a\n \n \nb",
		"a\n\t\n\n\n \nb\n\n\n\n",
		strings.Repeat("x\n \n", 10),
	}
	for _, in := range inputs {
		assert.NotContains(t, Normalize(in), "\n\n\n", "input %q", in)
	}
}
