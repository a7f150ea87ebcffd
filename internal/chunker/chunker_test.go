package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%03d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunk_WindowAndOverlap(t *testing.T) {
	c := NewWordChunker(500, 100, 50)

	// 600 words: first window covers words 0..499, the window then
	// advances by 400, leaving a short last window of words 400..599.
	chunks := c.Chunk(words(600))
	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	assert.Len(t, first, 500)
	assert.Len(t, second, 200)

	// Consecutive chunks overlap by exactly 100 words.
	assert.Equal(t, first[400:], second[:100])
	assert.Equal(t, "word000", first[0])
	assert.Equal(t, "word400", second[0])
}

func TestChunk_ShortPageSingleChunk(t *testing.T) {
	c := NewWordChunker(500, 100, 50)

	chunks := c.Chunk(words(80))
	require.Len(t, chunks, 1)
	assert.Len(t, strings.Fields(chunks[0]), 80)
}

func TestChunk_NormalizesWhitespace(t *testing.T) {
	c := NewWordChunker(500, 100, 0)

	chunks := c.Chunk("alpha\t\tbeta\n\n gamma   delta\r\nepsilon zeta eta theta iota kappa")
	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha beta gamma delta epsilon zeta eta theta iota kappa", chunks[0])
}

func TestChunk_DropsNoiseChunks(t *testing.T) {
	c := NewWordChunker(500, 100, 50)

	assert.Nil(t, c.Chunk("too short"))
	assert.Nil(t, c.Chunk(""))
	assert.Nil(t, c.Chunk("   \n\t  "))
}

func TestChunk_MinCharsFilter(t *testing.T) {
	c := NewWordChunker(500, 100, 50)

	for _, chunk := range c.Chunk(words(1200)) {
		assert.Greater(t, len(strings.TrimSpace(chunk)), 50)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c := NewWordChunker(500, 100, 50)
	text := words(1337)

	assert.Equal(t, c.Chunk(text), c.Chunk(text))
}

func TestNewWordChunker_ClampsOverlap(t *testing.T) {
	// An overlap at or above the window would stop the window advancing.
	c := NewWordChunker(100, 100, 0)
	assert.Equal(t, 25, c.Overlap())

	c = NewWordChunker(100, 500, 0)
	assert.Equal(t, 25, c.Overlap())

	// Chunking still terminates and covers all words.
	chunks := c.Chunk(words(300))
	require.NotEmpty(t, chunks)
	last := strings.Fields(chunks[len(chunks)-1])
	assert.Equal(t, "word299", last[len(last)-1])
}

func TestNewWordChunker_Defaults(t *testing.T) {
	c := NewWordChunker(0, -1, -1)
	assert.Equal(t, DefaultWindowWords, c.Window())
	assert.Equal(t, 0, c.Overlap())
}
