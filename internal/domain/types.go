package domain

import "time"

// Document is a single source file ingested into the corpus.
// Filename is the stable external key; re-ingesting the same filename
// updates the existing record.
type Document struct {
	ID         string
	Filename   string
	Title      string
	FileSize   int64
	PageCount  int
	IngestedAt time.Time
}

// Page is one page of extracted text, 1-based numbering.
type Page struct {
	Number int
	Text   string
}

// Chunk is an overlapping word-window taken from one page of one document.
// Slot is the position of its embedding inside the vector index: slot i in
// the index corresponds to exactly one chunk whose Slot is i.
type Chunk struct {
	Slot       int
	DocumentID string
	Page       int
	Text       string
}

// RetrievalResult is a query-scoped match joined against the chunk store.
// Distance is the squared L2 distance to the query vector; Rank is 1-based
// in ascending distance order.
type RetrievalResult struct {
	Chunk    Chunk
	Document Document
	Distance float64
	Rank     int
}

// CorpusStats describes the persisted corpus.
type CorpusStats struct {
	Documents  []Document
	ChunkCount int
}
