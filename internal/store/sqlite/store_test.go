package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertDocument_InsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc, err := s.UpsertDocument(ctx, domain.Document{
		Filename:   "ipc.pdf",
		Title:      "ipc",
		FileSize:   1234,
		PageCount:  2,
		IngestedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)

	// Same filename updates in place and keeps the ID.
	updated, err := s.UpsertDocument(ctx, domain.Document{
		Filename:   "ipc.pdf",
		Title:      "ipc",
		FileSize:   5678,
		PageCount:  3,
		IngestedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, updated.ID)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.Documents, 1)
	assert.Equal(t, int64(5678), stats.Documents[0].FileSize)
	assert.Equal(t, 3, stats.Documents[0].PageCount)
	assert.False(t, stats.Documents[0].IngestedAt.IsZero())
}

func TestReplaceChunks_AndGetBySlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc, err := s.UpsertDocument(ctx, domain.Document{
		Filename: "crpc.txt", Title: "crpc", FileSize: 10, PageCount: 1, IngestedAt: time.Now(),
	})
	require.NoError(t, err)

	chunks := []domain.Chunk{
		{Slot: 0, DocumentID: doc.ID, Page: 1, Text: "first"},
		{Slot: 1, DocumentID: doc.ID, Page: 1, Text: "second"},
		{Slot: 2, DocumentID: doc.ID, Page: 2, Text: "third"},
	}
	require.NoError(t, s.ReplaceChunks(ctx, chunks))

	ch, joined, err := s.GetBySlot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "second", ch.Text)
	assert.Equal(t, 1, ch.Page)
	assert.Equal(t, doc.ID, ch.DocumentID)
	assert.Equal(t, "crpc.txt", joined.Filename)
	assert.Equal(t, "crpc", joined.Title)
}

func TestReplaceChunks_RewritesWholeTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc, err := s.UpsertDocument(ctx, domain.Document{
		Filename: "a.txt", Title: "a", FileSize: 1, PageCount: 1, IngestedAt: time.Now(),
	})
	require.NoError(t, err)

	first := []domain.Chunk{
		{Slot: 0, DocumentID: doc.ID, Page: 1, Text: "old zero"},
		{Slot: 1, DocumentID: doc.ID, Page: 1, Text: "old one"},
	}
	require.NoError(t, s.ReplaceChunks(ctx, first))

	// A re-run hands over a fresh slot range; no stale slots survive.
	second := []domain.Chunk{
		{Slot: 0, DocumentID: doc.ID, Page: 1, Text: "new zero"},
	}
	require.NoError(t, s.ReplaceChunks(ctx, second))

	ch, _, err := s.GetBySlot(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "new zero", ch.Text)

	_, _, err = s.GetBySlot(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ChunkCount)
}

func TestReplaceChunks_RejectsNonContiguousSlots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc, err := s.UpsertDocument(ctx, domain.Document{
		Filename: "b.txt", Title: "b", FileSize: 1, PageCount: 1, IngestedAt: time.Now(),
	})
	require.NoError(t, err)

	err = s.ReplaceChunks(ctx, []domain.Chunk{
		{Slot: 0, DocumentID: doc.ID, Page: 1, Text: "zero"},
		{Slot: 2, DocumentID: doc.ID, Page: 1, Text: "two"},
	})
	assert.ErrorIs(t, err, domain.ErrSlotCorrelation)

	// The failed call must not have written anything.
	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ChunkCount)
}

func TestGetBySlot_Missing(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.GetBySlot(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening runs migrations again without error.
	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	stats, err := s2.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ChunkCount)
}
