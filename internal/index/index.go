// Package index implements an exhaustive flat L2 vector index.
//
// Vectors are stored in the exact order given to Build, so the slot of a
// vector is its position in the input. The index is immutable after build
// and safe for concurrent searches.
package index

import (
	"fmt"
	"sort"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

// Flat is a brute-force squared-L2 index over raw embedding vectors.
type Flat struct {
	dimension int
	vectors   [][]float32
}

// Hit is a single search match: the slot of the vector and its squared L2
// distance to the query.
type Hit struct {
	Slot     int
	Distance float64
}

// Build creates an index over the given vectors, preserving input order:
// slot i holds input vector i. All vectors must share one dimension.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-length vector at slot 0", domain.ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: slot %d has dimension %d, want %d",
				domain.ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return &Flat{dimension: dim, vectors: vectors}, nil
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Dimension returns the vector dimensionality.
func (f *Flat) Dimension() int { return f.dimension }

// Search returns up to k hits ordered by ascending squared L2 distance.
// Ties are broken by slot order. Searching an index that was never built
// or loaded is a programming error and panics.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if f == nil || len(f.vectors) == 0 {
		panic("index: search before build or load")
	}
	if len(query) != f.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), f.dimension)
	}
	if k <= 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}
	hits := make([]Hit, len(f.vectors))
	for slot, v := range f.vectors {
		hits[slot] = Hit{Slot: slot, Distance: squaredL2(query, v)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Slot < hits[j].Slot
	})
	return hits[:k], nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
