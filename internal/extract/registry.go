// Package extract routes document files to format-specific text extractors.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/extract/pdf"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/extract/plaintext"
)

// Registry dispatches extraction by file extension.
type Registry struct {
	extractors map[string]domain.Extractor
}

// NewRegistry creates a registry with the default extractors registered:
// PDF for .pdf, plaintext for .txt and .md.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]domain.Extractor)}
	r.Register(".pdf", pdf.New())
	txt := plaintext.New()
	r.Register(".txt", txt)
	r.Register(".md", txt)
	return r
}

// Register maps a file extension (including the leading dot) to an extractor.
func (r *Registry) Register(ext string, e domain.Extractor) {
	r.extractors[strings.ToLower(ext)] = e
}

// Supported reports whether a file of the given path can be extracted.
func (r *Registry) Supported(path string) bool {
	_, ok := r.extractors[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract runs the extractor registered for the file's extension.
// Unknown extensions return ErrNoExtractor.
func (r *Registry) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoExtractor, ext)
	}
	return e.Extract(ctx, path)
}
