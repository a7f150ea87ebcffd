// Package pdf extracts per-page text from PDF files.
package pdf

import (
	"context"
	"fmt"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/logger"
)

// Extractor reads PDFs page by page. The content-stream plain text is the
// primary extraction method; when it fails or yields nothing for a page,
// row-ordered text assembly is tried as a fallback. Pages that yield no
// text either way are skipped. A document that cannot be opened at all
// produces an empty page list, not an error, so an ingestion run can
// continue with the remaining documents.
type Extractor struct{}

// New creates a PDF extractor.
func New() *Extractor { return &Extractor{} }

// Name returns the identifier of this extractor.
func (e *Extractor) Name() string { return "pdf" }

// Extract returns the non-empty pages of the PDF, 1-based.
func (e *Extractor) Extract(ctx context.Context, path string) (pages []domain.Page, err error) {
	// The pdf library panics on some malformed files; treat that the same
	// as an unreadable document.
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("pdf: %s: recovered from parser panic: %v", path, r)
			pages = nil
			err = nil
		}
	}()

	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		logger.Warnf("pdf: %s: open failed: %v", path, err)
		return nil, nil
	}
	defer f.Close()

	total := reader.NumPage()
	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text := extractPage(path, page, num)
		if text == "" {
			continue
		}
		pages = append(pages, domain.Page{Number: num, Text: text})
	}
	return pages, nil
}

func extractPage(path string, page ledongthuc.Page, num int) string {
	text, err := pagePlainText(page)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			logger.Debugf("pdf: %s: page %d plain text failed, trying rows: %v", path, num, err)
		}
		text = pageTextByRow(page)
	}
	return strings.TrimSpace(text)
}

func pagePlainText(page ledongthuc.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

func pageTextByRow(page ledongthuc.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			b.WriteString(word.S)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
