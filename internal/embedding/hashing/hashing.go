// Package hashing implements a deterministic local embedder using the
// feature-hashing trick. It needs no external service or corpus pass,
// which makes it the offline and test-time embedder: the same text always
// maps to the same vector at a fixed dimensionality.
package hashing

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// DefaultDimension is the vector size when none is configured.
const DefaultDimension = 256

// Embedder hashes word tokens into a fixed number of buckets, accumulates
// term frequencies with a sign derived from a second hash, and L2
// normalizes the result.
type Embedder struct {
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewEmbedder creates a hashing embedder of the given dimensionality.
func NewEmbedder(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "hashing" }

// Dimension returns the dimensionality of the produced vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed computes the feature-hashed embedding for the given text.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)
	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil, errors.New("no tokens in text")
	}
	for _, tok := range tokens {
		if _, isStop := e.stopwords[tok]; isStop {
			continue
		}
		bucket, sign := hashToken(tok, e.dimension)
		vec[bucket] += sign
	}
	normalize(vec)
	return vec, nil
}

// EmbedBatch embeds all texts in order. Each text is independent, so batch
// boundaries cannot affect the output.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func hashToken(tok string, dimension int) (bucket int, sign float32) {
	h := fnv.New32a()
	h.Write([]byte(tok))
	sum := h.Sum32()
	bucket = int(sum % uint32(dimension))
	// One bit of the hash decides the sign, which keeps hash collisions
	// from only ever inflating a bucket.
	if sum&0x80000000 != 0 {
		return bucket, -1
	}
	return bucket, 1
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "can", "will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
