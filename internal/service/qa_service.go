// Package service orchestrates the question answering flow: retrieve,
// assemble context, generate or fall back.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/answer"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/assemble"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/logger"
)

// Answer is the outcome of one question.
type Answer struct {
	Text      string
	Sources   []domain.RetrievalResult
	Generated bool
	NoIndex   bool
}

// QAService answers questions against the ingested corpus. The generator
// is optional; without it the extractive fallback is used.
type QAService struct {
	retriever domain.Retriever
	assembler *assemble.Assembler
	generator *answer.Client
	topK      int
	timeout   time.Duration
}

// NewQAService wires the question answering pipeline. generator may be nil.
func NewQAService(r domain.Retriever, a *assemble.Assembler, g *answer.Client, topK int, timeout time.Duration) *QAService {
	if topK <= 0 {
		topK = 5
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &QAService{retriever: r, assembler: a, generator: g, topK: topK, timeout: timeout}
}

// Search returns the raw top-k retrieval results for a query.
func (s *QAService) Search(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if topK <= 0 {
		topK = s.topK
	}
	return s.retriever.Search(ctx, query, topK)
}

// Ask retrieves context for the query and produces an answer. A missing
// index degrades to a no-retrieval answer; a failed generation call
// degrades to the extractive fallback. Only retrieval-subsystem failures
// surface as errors.
func (s *QAService) Ask(ctx context.Context, query string) (Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.retriever.Search(ctx, query, s.topK)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return s.answerWithoutIndex(ctx, query), nil
		}
		return Answer{}, err
	}

	contextText := s.assembler.Context(results)
	if len(strings.TrimSpace(contextText)) < answer.MinContextChars {
		return Answer{
			Text:    answer.Fallback(query, ""),
			Sources: results,
		}, nil
	}

	if s.generator != nil {
		text, genErr := s.generator.Generate(ctx, query, contextText)
		if genErr == nil {
			return Answer{Text: text, Sources: results, Generated: true}, nil
		}
		logger.Warnf("service: generation failed, using fallback: %v", genErr)
	}
	return Answer{Text: answer.Fallback(query, contextText), Sources: results}, nil
}

func (s *QAService) answerWithoutIndex(ctx context.Context, query string) Answer {
	if s.generator != nil {
		text, err := s.generator.GenerateDirect(ctx, query)
		if err == nil {
			return Answer{Text: text, Generated: true, NoIndex: true}
		}
		logger.Warnf("service: direct generation failed: %v", err)
	}
	return Answer{
		Text: "No document index was found. Run `legalbot ingest <dir>` to index your documents, " +
			"or configure an API key to answer without retrieval.",
		NoIndex: true,
	}
}
