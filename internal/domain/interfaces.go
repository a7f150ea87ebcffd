package domain

import "context"

// Extractor converts a source document into ordered per-page text.
// Implementations skip pages with no extractable text and degrade to an
// empty slice when the whole document is unreadable; they do not fail the
// ingestion run.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, path string) ([]Page, error)
}

// Chunker splits normalized text into overlapping fixed-size word windows.
type Chunker interface {
	Chunk(text string) []string
}

// ChunkStore persists documents and their chunks keyed by vector slot.
// Slots written during one ingestion run are exactly 0..n-1 in insertion
// order, matching the vector index build order.
type ChunkStore interface {
	UpsertDocument(ctx context.Context, doc Document) (Document, error)
	ReplaceChunks(ctx context.Context, chunks []Chunk) error
	GetBySlot(ctx context.Context, slot int) (Chunk, Document, error)
	Stats(ctx context.Context) (CorpusStats, error)
	Close() error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Retriever returns the top-k chunks most similar to a free-text query,
// ranked by ascending distance.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]RetrievalResult, error)
}
