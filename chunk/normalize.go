package chunk

import (
	"regexp"
	"strings"
)

var (
	citationPattern = regexp.MustCompile(`\[\d+\]`)
	footnotePattern = regexp.MustCompile(`(?i)\[\s*note\s*\d*\s*\]`)
	hspaceRun       = regexp.MustCompile(`[ \t]+`)
	blankLineRun    = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// Normalize strips inline citation markers like [1] and footnote references
// like [note 3], collapses runs of horizontal whitespace to single spaces,
// collapses 3+ consecutive blank lines to one blank line, and trims the
// result. Empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := citationPattern.ReplaceAllString(text, "")
	s = footnotePattern.ReplaceAllString(s, "")
	s = hspaceRun.ReplaceAllString(s, " ")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
