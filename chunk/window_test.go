package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowFitsInOne(t *testing.T) {
	text := "Short enough for a single window, returned whole and trimmed. "
	chunks := SlidingWindow(text, 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(text), chunks[0])
}

func TestSlidingWindowBlankInput(t *testing.T) {
	assert.Nil(t, SlidingWindow("  \n ", 1000, 200))
}

func TestSlidingWindowStepDeterminism(t *testing.T) {
	// No sentence terminators anywhere, so no snapping: the chunk count is
	// purely a function of length, size, and overlap.
	size, overlap := 1000, 200
	step := size - overlap
	text := strings.Repeat("abcdefghij", 210) // L = 2100

	chunks := SlidingWindow(text, size, overlap)
	want := (len(text) - overlap + step - 1) / step // ceil((L-overlap)/step)
	assert.Len(t, chunks, want)
}

func TestSlidingWindowSnappingDoesNotChangeAdvance(t *testing.T) {
	size, overlap := 1000, 200
	sentence := strings.Repeat("w", 120) + ". "
	plain := strings.Repeat("x", 2100)
	snappy := strings.Repeat(sentence, 2100/len(sentence)+1)[:2100]

	// Same length, same parameters: same window count whether or not
	// sentence boundaries exist to snap at.
	assert.Len(t, SlidingWindow(snappy, size, overlap), len(SlidingWindow(plain, size, overlap)))
}

func TestSlidingWindowSnapsRightEdge(t *testing.T) {
	sentence := strings.Repeat("v", 150) + ". "
	text := strings.Repeat(sentence, 20) // 3040 chars
	chunks := SlidingWindow(text, 1000, 200)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c, "."), "intermediate window should end at a sentence boundary")
	}
}

func TestSlidingWindowFloor(t *testing.T) {
	for _, c := range SlidingWindow(strings.Repeat("abcdefghij", 500), 1000, 200) {
		assert.GreaterOrEqual(t, len(c), MinChunkChars)
	}
}
