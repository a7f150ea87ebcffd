// Package ingest runs the document-to-vector ingestion pipeline: extract,
// chunk, embed, index, persist.
//
// The run is a single-threaded, single-writer batch job. Slot assignment
// is strictly sequential: the ordered chunk arena built during the scan
// is the one source handed to both the vector index build and the chunk
// store, so slot i in the index always corresponds to the chunk whose
// slot is i. Validation happens before anything durable is written; a
// failed run leaves the prior index and chunk set untouched.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/embedding"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/extract"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/index"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/logger"
)

// Report summarizes a completed ingestion run.
type Report struct {
	Documents int
	Chunks    int
	Dimension int
	IndexPath string
	Summary   string
}

// Pipeline wires the ingestion components together.
type Pipeline struct {
	extractors *extract.Registry
	chunker    domain.Chunker
	embedder   embedding.Embedder
	store      domain.ChunkStore
	summarizer domain.Summarizer
	indexPath  string
}

// New creates an ingestion pipeline. The summarizer is optional.
func New(extractors *extract.Registry, ch domain.Chunker, emb embedding.Embedder,
	store domain.ChunkStore, sum domain.Summarizer, indexPath string) *Pipeline {
	return &Pipeline{
		extractors: extractors,
		chunker:    ch,
		embedder:   emb,
		store:      store,
		summarizer: sum,
		indexPath:  indexPath,
	}
}

// Run ingests every supported document under dir and rebuilds the full
// index from the resulting chunk set in one pass.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Report, error) {
	files, err := listDocuments(dir, p.extractors)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no supported documents in %s", domain.ErrEmptyCorpus, dir)
	}

	// Scan phase: extract and chunk one document at a time, assigning
	// slots in arena order.
	var chunks []domain.Chunk
	docCount := 0
	for _, path := range files {
		n, err := p.scanDocument(ctx, path, &chunks)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			logger.Warnf("ingest: %s: no chunks extracted, skipping", filepath.Base(path))
			continue
		}
		docCount++
		logger.Infof("ingest: %s: %d chunks", filepath.Base(path), n)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no text could be extracted from %d file(s)", domain.ErrEmptyCorpus, len(files))
	}

	// Embed phase: one ordered pass over the arena.
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	logger.Infof("ingest: embedding %d chunks with %s", len(texts), p.embedder.Name())
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	// Validate before anything is persisted.
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrSlotCorrelation, len(chunks), len(vectors))
	}
	idx, err := index.Build(vectors)
	if err != nil {
		return nil, err
	}

	// Persist phase: chunk rows first, then the index snapshot. The
	// snapshot write is atomic, so the previous index survives a failure
	// here and the remediation is simply to re-run the ingestion.
	if err := p.store.ReplaceChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("persisting chunks: %w", err)
	}
	if err := idx.Save(p.indexPath, p.embedder.Name()); err != nil {
		return nil, fmt.Errorf("persisting index (re-run ingestion to recover): %w", err)
	}

	report := &Report{
		Documents: docCount,
		Chunks:    len(chunks),
		Dimension: idx.Dimension(),
		IndexPath: p.indexPath,
	}
	if p.summarizer != nil {
		report.Summary = p.summarize(texts)
	}
	return report, nil
}

// scanDocument extracts, chunks and registers one document, appending its
// chunks to the arena. Extraction problems degrade to zero chunks.
func (p *Pipeline) scanDocument(ctx context.Context, path string, arena *[]domain.Chunk) (int, error) {
	pages, err := p.extractors.Extract(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		logger.Warnf("ingest: %s: extraction failed: %v", filepath.Base(path), err)
		return 0, nil
	}
	if len(pages) == 0 {
		return 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	filename := filepath.Base(path)
	doc, err := p.store.UpsertDocument(ctx, domain.Document{
		Filename:   filename,
		Title:      titleFromFilename(filename),
		FileSize:   info.Size(),
		PageCount:  len(pages),
		IngestedAt: time.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("registering document %s: %w", filename, err)
	}

	added := 0
	for _, page := range pages {
		for _, text := range p.chunker.Chunk(page.Text) {
			*arena = append(*arena, domain.Chunk{
				Slot:       len(*arena),
				DocumentID: doc.ID,
				Page:       page.Number,
				Text:       text,
			})
			added++
		}
	}
	return added, nil
}

func (p *Pipeline) summarize(texts []string) string {
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(t)
		b.WriteByte('\n')
	}
	summary, err := p.summarizer.Summarize(b.String(), 3)
	if err != nil {
		logger.Debugf("ingest: summary failed: %v", err)
		return ""
	}
	return summary
}

// listDocuments returns the supported files directly under dir, sorted by
// name so slot assignment is reproducible across runs.
func listDocuments(dir string, registry *extract.Registry) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !registry.Supported(path) {
			logger.Debugf("ingest: skipping unsupported file %s", entry.Name())
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// titleFromFilename derives a display title: extension stripped and
// underscores replaced by spaces.
func titleFromFilename(filename string) string {
	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(title, "_", " ")
}
