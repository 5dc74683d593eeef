package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLongSectionWithinBound(t *testing.T) {
	text := "A compact section that already fits inside the size bound."
	parts := SplitLongSection("Analysis", text, 8000)
	require.Len(t, parts, 1)
	assert.Equal(t, "Analysis", parts[0].Name)
	assert.Equal(t, text, parts[0].Text)
}

func TestSplitLongSectionParagraphPacking(t *testing.T) {
	para := strings.Repeat("Each paragraph holds a fixed amount of prose for packing. ", 5)
	text := strings.Join([]string{para, para, para, para, para}, "\n\n")
	maxChars := 700
	require.Greater(t, len(text), maxChars)

	parts := SplitLongSection("Outcomes", text, maxChars)
	require.Greater(t, len(parts), 1)
	for i, p := range parts {
		assert.LessOrEqual(t, len(p.Text), maxChars, "part %d exceeds bound", i)
		assert.Equal(t, "Outcomes (part "+string(rune('1'+i))+")", p.Name)
	}

	// Greedy packing keeps paragraph text intact and in order.
	rejoined := strings.Join(sectionTexts(parts), " ")
	assert.Contains(t, rejoined, "fixed amount of prose")
}

func TestSplitLongSectionSinglePieceKeepsBareName(t *testing.T) {
	// Two paragraphs where the second is dropped into the same buffer:
	// a single sub-chunk must not get a "(part 1)" suffix.
	text := strings.Repeat("x", 120) + "\n\n" + strings.Repeat("y", 120)
	parts := SplitLongSection("Context", text, len(text)-1)
	if len(parts) == 1 {
		assert.Equal(t, "Context", parts[0].Name)
	}
}

func TestSplitLongSectionCharFallback(t *testing.T) {
	// No paragraph breaks at all: character-level fallback with overlap.
	text := strings.Repeat("abcdefghi ", 300) // 3000 chars, no ". ", no "\n"
	maxChars := 1000

	parts := SplitLongSection("Dense", text, maxChars)
	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p.Text), maxChars)
		assert.GreaterOrEqual(t, len(p.Text), MinChunkChars)
	}
}

func TestCharSplitSnapsAtSentenceBoundary(t *testing.T) {
	sentence := strings.Repeat("word ", 30) + "end. "
	text := strings.Repeat(sentence, 20)
	chunks := charSplit(text, 500, 100)

	require.NotEmpty(t, chunks)
	for _, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c, "end."), "chunk should snap after a sentence: %q", c[len(c)-20:])
	}
}

func TestCharSplitDropsBelowFloor(t *testing.T) {
	chunks := charSplit(strings.Repeat("z", 30), 1000, 300)
	assert.Empty(t, chunks)
}

func sectionTexts(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Text
	}
	return out
}
