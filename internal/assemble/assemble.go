// Package assemble concatenates ranked retrieval results into a single
// provenance-tagged context string under a character budget.
package assemble

import (
	"fmt"
	"strings"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

// DefaultMaxChars is the context budget used when none is configured.
const DefaultMaxChars = 3000

// Assembler renders retrieval results into answer-generation context.
type Assembler struct {
	maxChars int
}

// New creates an assembler with the given character budget.
func New(maxChars int) *Assembler {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Assembler{maxChars: maxChars}
}

// Context walks results in rank order and appends each rendered block
// while the cumulative length stays within the budget. The first block
// that would exceed it stops assembly entirely; blocks are never skipped
// or truncated, so the output is always a prefix of the full rank-order
// concatenation.
func (a *Assembler) Context(results []domain.RetrievalResult) string {
	var b strings.Builder
	for i, r := range results {
		block := renderBlock(i+1, r)
		if b.Len()+len(block) > a.maxChars {
			break
		}
		b.WriteString(block)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBlock(n int, r domain.RetrievalResult) string {
	name := r.Document.Title
	if name == "" {
		name = r.Document.Filename
	}
	return fmt.Sprintf("[Source %d: %s, Page %d]\n%s\n\n", n, name, r.Chunk.Page, r.Chunk.Text)
}
