// Package normalize cleans up rendered Markdown.
// It knows nothing about tags: blank-only lines are emptied, long runs of
// newlines are collapsed and spacing left by inline code before
// punctuation is repaired.
package normalize

import (
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// codePunct removes the space inline code leaves before a period or comma.
var codePunct = strings.NewReplacer("` .", "`.", "` ,", "`,")

// Normalize returns md with whitespace-only lines emptied, runs of three or
// more newlines reduced to two, inline-code punctuation spacing fixed and
// surrounding whitespace trimmed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		}
	}
	md = strings.Join(lines, "\n")
	md = blankRuns.ReplaceAllString(md, "\n\n")
	md = codePunct.Replace(md)
	return strings.TrimSpace(md)
}
