package embedding

import "context"

// Embedder converts free text into fixed-dimension dense vectors.
// EmbedBatch preserves input order, and internal batching must not change
// any output vector relative to unbatched computation.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
