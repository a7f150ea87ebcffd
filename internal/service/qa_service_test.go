package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/assemble"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

// stubRetriever returns canned results or a canned error.
type stubRetriever struct {
	results []domain.RetrievalResult
	err     error
	gotTopK int
}

func (s *stubRetriever) Search(_ context.Context, _ string, topK int) ([]domain.RetrievalResult, error) {
	s.gotTopK = topK
	return s.results, s.err
}

func richResults() []domain.RetrievalResult {
	return []domain.RetrievalResult{
		{
			Chunk:    domain.Chunk{Slot: 0, Page: 4, Text: strings.Repeat("whoever commits murder shall be punished ", 5)},
			Document: domain.Document{Title: "Indian Penal Code", Filename: "ipc.pdf"},
			Rank:     1,
		},
		{
			Chunk:    domain.Chunk{Slot: 1, Page: 9, Text: strings.Repeat("the sentence of death or imprisonment for life ", 5)},
			Document: domain.Document{Title: "Indian Penal Code", Filename: "ipc.pdf"},
			Rank:     2,
		},
	}
}

func TestAsk_ExtractiveFallbackWithoutGenerator(t *testing.T) {
	r := &stubRetriever{results: richResults()}
	s := NewQAService(r, assemble.New(3000), nil, 5, time.Minute)

	ans, err := s.Ask(context.Background(), "what is the punishment for murder")
	require.NoError(t, err)

	assert.False(t, ans.Generated)
	assert.False(t, ans.NoIndex)
	assert.Len(t, ans.Sources, 2)
	assert.Contains(t, ans.Text, "Based on the indexed documents")
	assert.Contains(t, ans.Text, "[Source 1: Indian Penal Code, Page 4]")
	assert.Contains(t, ans.Text, "not legal advice")
	assert.Equal(t, 5, r.gotTopK)
}

func TestAsk_ThinContextUsesNoResultFallback(t *testing.T) {
	// Retrieval succeeded but the assembled context is too thin to ground
	// an answer.
	r := &stubRetriever{results: nil}
	s := NewQAService(r, assemble.New(3000), nil, 5, time.Minute)

	ans, err := s.Ask(context.Background(), "obscure query")
	require.NoError(t, err)

	assert.False(t, ans.Generated)
	assert.Empty(t, ans.Sources)
	assert.Contains(t, ans.Text, "No relevant information")
	assert.Contains(t, ans.Text, "obscure query")
}

func TestAsk_MissingIndexDegrades(t *testing.T) {
	r := &stubRetriever{err: domain.ErrIndexNotFound}
	s := NewQAService(r, assemble.New(3000), nil, 5, time.Minute)

	ans, err := s.Ask(context.Background(), "any question")
	require.NoError(t, err)

	assert.True(t, ans.NoIndex)
	assert.False(t, ans.Generated)
	assert.Contains(t, ans.Text, "legalbot ingest")
}

func TestAsk_RetrievalErrorSurfaces(t *testing.T) {
	boom := errors.New("store unavailable")
	r := &stubRetriever{err: boom}
	s := NewQAService(r, assemble.New(3000), nil, 5, time.Minute)

	_, err := s.Ask(context.Background(), "any question")
	assert.ErrorIs(t, err, boom)
}

func TestSearch_PassthroughAndTopKDefault(t *testing.T) {
	r := &stubRetriever{results: richResults()}
	s := NewQAService(r, assemble.New(3000), nil, 7, time.Minute)

	results, err := s.Search(context.Background(), "murder", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 7, r.gotTopK)

	_, err = s.Search(context.Background(), "murder", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.gotTopK)
}
