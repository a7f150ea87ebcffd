// Package plaintext extracts text from plain text and markdown files.
package plaintext

import (
	"context"
	"os"
	"strings"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

// Extractor reads the whole file as a single page.
type Extractor struct{}

// New creates a plaintext extractor.
func New() *Extractor { return &Extractor{} }

// Name returns the identifier of this extractor.
func (e *Extractor) Name() string { return "plaintext" }

// Extract returns the file content as page 1. An empty or whitespace-only
// file yields no pages.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []domain.Page{{Number: 1, Text: text}}, nil
}
