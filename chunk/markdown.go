package chunk

import (
	"regexp"
	"strings"
)

var markdownHeading = regexp.MustCompile(`^(#{1,4})\s+(.+)$`)

// MarkdownSections parses lightweight markup into (title, content) pairs by
// leading-hash headings of 1-4 hash characters. Body lines accumulate under
// the most recent heading; text before the first heading becomes an untitled
// section. Returns nil when the text is blank.
func MarkdownSections(text string) []Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sections []Section
	title := ""
	var lines []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(lines, "\n"))
		if content != "" || title != "" {
			sections = append(sections, Section{Name: title, Text: content})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := markdownHeading.FindStringSubmatch(line); m != nil {
			if len(lines) > 0 || title != "" {
				flush()
			}
			title = strings.TrimSpace(m[2])
			lines = nil
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 || title != "" {
		flush()
	}
	return sections
}

// MarkdownChunks chunks reference content by markdown headings. It returns
// nil when no heading produced a usable section, in which case the caller
// must fall back to the sliding-window splitter. Untitled sections are
// labeled "Content" and are not prefixed; titled sections carry their
// heading as a prefix, like the heading-vocabulary splitter.
func MarkdownChunks(content string, maxChars int) []Section {
	sections := MarkdownSections(content)
	if len(sections) == 0 {
		return nil
	}
	usable := len(sections) > 1 || strings.TrimSpace(sections[0].Name) != ""
	if !usable {
		return nil
	}

	var out []Section
	for _, s := range sections {
		name := s.Name
		withHeading := s.Text
		if name == "" {
			name = "Content"
		} else {
			withHeading = name + "\n\n" + s.Text
		}
		out = append(out, SplitLongSection(name, withHeading, maxChars)...)
	}
	return dropBelowFloor(out)
}
