package domain

import "errors"

// Sentinel errors let callers distinguish "no results" from "retrieval
// subsystem unavailable" with errors.Is instead of inspecting empty slices.
var (
	// ErrIndexNotFound indicates no persisted vector index exists yet.
	// Recoverable: run an ingestion to build one.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrEmptyCorpus indicates an ingestion run found nothing to index.
	ErrEmptyCorpus = errors.New("empty corpus: nothing to index")

	// ErrDimensionMismatch indicates the embedding dimensionality changed
	// between ingestion and query time. Fatal configuration error.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrSlotCorrelation indicates the chunk count and vector count for an
	// ingestion run disagree. The run aborts before anything is persisted.
	ErrSlotCorrelation = errors.New("chunk/vector slot correlation violated")

	// ErrNoExtractor indicates no extractor is registered for a file type.
	ErrNoExtractor = errors.New("no extractor for file type")

	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")
)
