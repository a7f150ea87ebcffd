// Package openai provides an embeddings client backed by the OpenAI API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultModel     = "text-embedding-3-small"
	DefaultBatchSize = 32
	DefaultTimeout   = 60 * time.Second
)

// Known dimensions for OpenAI embedding models.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Config configures the embeddings client.
type Config struct {
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// BaseURL can point at Azure OpenAI or any compatible endpoint.
	BaseURL string

	// Model is the embedding model (default text-embedding-3-small).
	Model string

	// BatchSize caps how many inputs are sent per request. Batching is a
	// throughput knob only; outputs are identical regardless of batching.
	BatchSize int

	// Dimensions overrides the model's default output dimension.
	// Only honored by text-embedding-3-* models.
	Dimensions int

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// Client embeds texts through the OpenAI embeddings endpoint.
type Client struct {
	api         *goopenai.Client
	model       string
	batchSize   int
	dimension   int
	requestDims int
}

// NewClient creates an embeddings client from the configuration.
// The API key must be present in the configured environment variable.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	dim := cfg.Dimensions
	if dim == 0 {
		if known, ok := modelDimensions[cfg.Model]; ok {
			dim = known
		} else {
			dim = 1536
		}
	}

	clientCfg := goopenai.DefaultConfig(key)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:         goopenai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		batchSize:   cfg.BatchSize,
		dimension:   dim,
		requestDims: cfg.Dimensions,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai-" + c.model }

// Dimension returns the dimensionality of the produced vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts, preserving order. Requests are issued in
// batches of the configured size.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.embedRequest(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d..%d: %w", start, end, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (c *Client) embedRequest(ctx context.Context, inputs []string) ([][]float32, error) {
	req := goopenai.EmbeddingRequest{
		Model:      goopenai.EmbeddingModel(c.model),
		Input:      inputs,
		Dimensions: c.requestDims,
	}
	resp, err := c.api.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}
	// The API reports each vector's input position; order by it rather
	// than trusting response order.
	vectors := make([][]float32, len(inputs))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(inputs) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("no embedding returned for input %d", i)
		}
	}
	return vectors, nil
}
