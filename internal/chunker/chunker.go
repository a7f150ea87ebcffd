package chunker

import "strings"

// Default window geometry, in words. A window of 500 advancing by 400
// gives consecutive chunks a 100-word overlap.
const (
	DefaultWindowWords   = 500
	DefaultOverlapWords  = 100
	DefaultMinChunkChars = 50
)

// WordChunker splits normalized text into overlapping fixed-size word
// windows. Output is a pure function of the input text and the window
// parameters.
type WordChunker struct {
	window   int
	overlap  int
	minChars int
}

// NewWordChunker creates a chunker with the given geometry. Out-of-range
// values are clamped: an overlap at or above the window size would make
// the window stop advancing, so it is reduced to a quarter of the window.
func NewWordChunker(window, overlap, minChars int) *WordChunker {
	if window <= 0 {
		window = DefaultWindowWords
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= window {
		overlap = window / 4
	}
	if minChars < 0 {
		minChars = 0
	}
	return &WordChunker{window: window, overlap: overlap, minChars: minChars}
}

// Chunk normalizes whitespace, splits the text on word boundaries and
// slides a window of the configured size, advancing by window-overlap
// words each step. The last window may be shorter. Chunks whose trimmed
// length is below the minimum character threshold are discarded as noise.
func (c *WordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := c.window - c.overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + c.window
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[start:end], " ")
		if len(strings.TrimSpace(chunk)) > c.minChars {
			chunks = append(chunks, chunk)
		}
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Window reports the configured window size in words.
func (c *WordChunker) Window() int { return c.window }

// Overlap reports the configured overlap in words.
func (c *WordChunker) Overlap() int { return c.overlap }
