package retriever

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/embedding/hashing"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/index"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/store/sqlite"
)

var corpusTexts = []string{
	"punishment for murder under section three hundred two",
	"anticipatory bail before the sessions court",
	"admissibility of electronic evidence in trial",
}

// buildFixture embeds the corpus texts, saves the index and writes the
// matching chunk rows, returning the index path and an open store.
func buildFixture(t *testing.T, emb *hashing.Embedder) (string, *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	doc, err := store.UpsertDocument(ctx, domain.Document{
		Filename: "ipc.txt", Title: "ipc", FileSize: 1, PageCount: 1, IngestedAt: time.Now(),
	})
	require.NoError(t, err)

	chunks := make([]domain.Chunk, len(corpusTexts))
	for i, text := range corpusTexts {
		chunks[i] = domain.Chunk{Slot: i, DocumentID: doc.ID, Page: i + 1, Text: text}
	}
	require.NoError(t, store.ReplaceChunks(ctx, chunks))

	vectors, err := emb.EmbedBatch(ctx, corpusTexts)
	require.NoError(t, err)
	idx, err := index.Build(vectors)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vectors.idx")
	require.NoError(t, idx.Save(path, emb.Name()))
	return path, store
}

func TestSearch_OwnTextIsRankOne(t *testing.T) {
	emb := hashing.NewEmbedder(64)
	path, store := buildFixture(t, emb)
	e := New(emb, store, path)

	// Querying with a stored chunk's exact text must return that chunk
	// first at distance zero.
	results, err := e.Search(context.Background(), corpusTexts[1], 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Chunk.Slot)
	assert.Equal(t, corpusTexts[1], results[0].Chunk.Text)
	assert.Equal(t, 0.0, results[0].Distance)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, "ipc.txt", results[0].Document.Filename)

	for i := 1; i < len(results); i++ {
		assert.Equal(t, i+1, results[i].Rank)
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
}

func TestSearch_DefaultTopK(t *testing.T) {
	emb := hashing.NewEmbedder(64)
	path, store := buildFixture(t, emb)
	e := New(emb, store, path)

	results, err := e.Search(context.Background(), "bail", 0)
	require.NoError(t, err)
	// Corpus is smaller than the default, so all of it comes back.
	assert.Len(t, results, len(corpusTexts))
}

func TestSearch_DropsSlotWithoutChunkRow(t *testing.T) {
	emb := hashing.NewEmbedder(64)
	path, store := buildFixture(t, emb)

	// Shrink the store to slots 0..1 while the index still holds three
	// vectors; the orphaned slot is dropped, not an error.
	ctx := context.Background()
	doc, err := store.UpsertDocument(ctx, domain.Document{
		Filename: "ipc.txt", Title: "ipc", FileSize: 1, PageCount: 1, IngestedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, store.ReplaceChunks(ctx, []domain.Chunk{
		{Slot: 0, DocumentID: doc.ID, Page: 1, Text: corpusTexts[0]},
		{Slot: 1, DocumentID: doc.ID, Page: 2, Text: corpusTexts[1]},
	}))

	e := New(emb, store, path)
	results, err := e.Search(ctx, "evidence at trial", 3)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestSearch_NoIndex(t *testing.T) {
	emb := hashing.NewEmbedder(64)
	store, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	e := New(emb, store, filepath.Join(t.TempDir(), "missing.idx"))
	_, err = e.Search(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)

	// The failed load is latched; Ready keeps reporting it.
	assert.ErrorIs(t, e.Ready(), domain.ErrIndexNotFound)
}

func TestSearch_DimensionMismatchWithIndex(t *testing.T) {
	path, store := buildFixture(t, hashing.NewEmbedder(64))

	// A process configured with a different dimensionality must refuse to
	// serve the persisted index.
	e := New(hashing.NewEmbedder(32), store, path)
	_, err := e.Search(context.Background(), "bail", 5)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}
