package chunk

import "strings"

// Section is a named span of document text produced by one of the
// structural splitters.
type Section struct {
	Name string
	Text string
}

// Default bounds for the splitting heuristics. Callers may override the
// size bounds; the minimum-length floor is fixed for the whole system.
const (
	DefaultSectionMaxChars  = 8000
	DefaultMarkdownMaxChars = 2000
	DefaultWindowSize       = 1000
	DefaultWindowOverlap    = 200

	// MinChunkChars is the floor below which a chunk is dropped entirely.
	MinChunkChars = 50

	// charSplitOverlap is the overlap carried between character-level
	// sub-chunks when no paragraph boundaries exist.
	charSplitOverlap = 300
)

// Sections partitions a body into named sections by scanning for exact
// occurrences of the given heading vocabulary, in body order. Text before
// the first recognized heading becomes an implicit "Introduction" section.
// A body with no recognized heading at all becomes a single "Full Body"
// section.
func Sections(body string, headings []string) []Section {
	var sections []Section
	name := "Introduction"
	rest := body

	for {
		idx, heading := nextHeading(rest, headings)
		if idx < 0 {
			if text := strings.TrimSpace(rest); text != "" {
				sections = append(sections, Section{Name: name, Text: text})
			}
			break
		}
		if text := strings.TrimSpace(rest[:idx]); text != "" {
			sections = append(sections, Section{Name: name, Text: text})
		}
		name = heading
		rest = rest[idx+len(heading):]
	}

	if len(sections) == 0 {
		return []Section{{Name: "Full Body", Text: body}}
	}
	return sections
}

// nextHeading returns the position and value of the earliest heading
// occurrence in text, or -1 when none is present. When two headings start
// at the same position the longer one wins, so a vocabulary entry that is
// a prefix of another cannot shadow it.
func nextHeading(text string, headings []string) (int, string) {
	best, bestHeading := -1, ""
	for _, h := range headings {
		if h == "" {
			continue
		}
		idx := strings.Index(text, h)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best || (idx == best && len(h) > len(bestHeading)) {
			best, bestHeading = idx, h
		}
	}
	return best, bestHeading
}

// CaseStudyChunks splits a case-study body into retained section chunks:
// each section is prefixed with its own heading so the embedded chunk
// carries local context, oversized sections are sub-split, and pieces
// below the minimum floor are dropped.
func CaseStudyChunks(body string, headings []string, maxChars int) []Section {
	var out []Section
	for _, s := range Sections(body, headings) {
		withHeading := s.Name + "\n\n" + s.Text
		out = append(out, SplitLongSection(s.Name, withHeading, maxChars)...)
	}
	return dropBelowFloor(out)
}

func dropBelowFloor(sections []Section) []Section {
	kept := sections[:0]
	for _, s := range sections {
		if len(s.Text) >= MinChunkChars {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
