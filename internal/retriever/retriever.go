// Package retriever answers free-text queries with the top-k most similar
// chunks from the persisted vector index, joined against the chunk store.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/embedding"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/index"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/logger"
)

// DefaultTopK is the number of results returned when the caller passes a
// non-positive top-k.
const DefaultTopK = 5

// Engine loads the persisted index once and serves concurrent read-only
// searches against it. Initialization happens lazily on the first call
// through a sync.Once gate: concurrent callers block until the single
// load completes instead of racing to double-load. A re-ingestion that
// replaces the persisted index is picked up by constructing a new Engine.
type Engine struct {
	embedder  embedding.Embedder
	store     domain.ChunkStore
	indexPath string

	initOnce sync.Once
	initErr  error
	idx      *index.Flat
}

var _ domain.Retriever = (*Engine)(nil)

// New creates a retrieval engine. Nothing is loaded until the first query
// or an explicit Ready call.
func New(emb embedding.Embedder, store domain.ChunkStore, indexPath string) *Engine {
	return &Engine{embedder: emb, store: store, indexPath: indexPath}
}

// Ready forces initialization and reports whether the engine can serve
// queries. Callers use errors.Is(err, domain.ErrIndexNotFound) to fall
// back to a no-retrieval mode.
func (e *Engine) Ready() error {
	e.initOnce.Do(e.load)
	return e.initErr
}

func (e *Engine) load() {
	idx, model, err := index.Load(e.indexPath)
	if err != nil {
		e.initErr = err
		return
	}
	// The persisted index must match the embedder the process queries
	// with; a changed model or dimension is a configuration error, not
	// something to paper over by truncating vectors.
	if dim := e.embedder.Dimension(); dim > 0 && dim != idx.Dimension() {
		e.initErr = fmt.Errorf("%w: index %q has dimension %d, embedder %q produces %d",
			domain.ErrDimensionMismatch, model, idx.Dimension(), e.embedder.Name(), dim)
		return
	}
	logger.Infof("retriever: loaded index with %d vectors (dim=%d, model=%s)", idx.Len(), idx.Dimension(), model)
	e.idx = idx
}

// Search embeds the query, searches the index and joins results against
// the chunk store. Results are ranked 1-based by ascending distance; a
// slot with no matching chunk row indicates store/index drift and is
// dropped rather than failing the query.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error) {
	if err := e.Ready(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	hits, err := e.idx.Search(vector, topK)
	if err != nil {
		return nil, err
	}

	results := make([]domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		chunk, doc, err := e.store.GetBySlot(ctx, hit.Slot)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warnf("retriever: slot %d has no chunk row, dropping result", hit.Slot)
				continue
			}
			return nil, fmt.Errorf("joining slot %d: %w", hit.Slot, err)
		}
		results = append(results, domain.RetrievalResult{
			Chunk:    chunk,
			Document: doc,
			Distance: hit.Distance,
			Rank:     len(results) + 1,
		})
	}
	return results, nil
}
