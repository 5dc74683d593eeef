package chunk

import (
	"fmt"
	"strings"
)

// SplitLongSection sub-splits section text that exceeds maxChars. It first
// packs blank-line-delimited paragraphs greedily into sub-chunks; if any
// sub-chunk still exceeds the bound (no paragraph breaks exist), it falls
// back to character-level splitting with overlap. Multiple sub-chunks are
// renamed "<name> (part N)"; a single sub-chunk keeps the bare name.
func SplitLongSection(name, text string, maxChars int) []Section {
	if len(text) <= maxChars {
		return []Section{{Name: name, Text: text}}
	}

	var subs []string
	buf := ""
	for _, para := range strings.Split(text, "\n\n") {
		candidate := para
		if buf != "" {
			candidate = buf + "\n\n" + para
		}
		if len(candidate) > maxChars && buf != "" {
			subs = append(subs, strings.TrimSpace(buf))
			buf = para
		} else {
			buf = candidate
		}
	}
	if strings.TrimSpace(buf) != "" {
		subs = append(subs, strings.TrimSpace(buf))
	}

	if len(subs) == 0 || anyExceeds(subs, maxChars) {
		src := subs
		if len(src) == 0 {
			src = []string{text}
		}
		var flat []string
		for _, sub := range src {
			if len(sub) > maxChars {
				flat = append(flat, charSplit(sub, maxChars, charSplitOverlap)...)
			} else {
				flat = append(flat, sub)
			}
		}
		subs = flat
	}

	if len(subs) == 0 {
		return []Section{{Name: name, Text: text}}
	}
	if len(subs) == 1 {
		return []Section{{Name: name, Text: subs[0]}}
	}
	out := make([]Section, len(subs))
	for i, sub := range subs {
		out[i] = Section{Name: fmt.Sprintf("%s (part %d)", name, i+1), Text: sub}
	}
	return out
}

func anyExceeds(chunks []string, maxChars int) bool {
	for _, c := range chunks {
		if len(c) > maxChars {
			return true
		}
	}
	return false
}

// charSplit is the last-resort character-level split with overlap. Each
// window prefers to break at the last sentence-terminator-plus-space or
// newline in its back half; otherwise it breaks at the hard bound.
// Pieces below the minimum floor are discarded.
func charSplit(text string, maxChars, overlap int) []string {
	var chunks []string
	start := 0
	for start < len(text) {
		end := min(start+maxChars, len(text))
		if end < len(text) {
			window := text[start:end]
			lastBreak := max(strings.LastIndex(window, ". "), strings.LastIndex(window, "\n"))
			if lastBreak > maxChars/2 {
				end = start + lastBreak + 1
			}
		}
		piece := strings.TrimSpace(text[start:end])
		if len(piece) >= MinChunkChars {
			chunks = append(chunks, piece)
		}
		if end >= len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			// Overlap would stall the scan; step past the window instead.
			next = end
		}
		start = next
	}
	return chunks
}
