package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "openai", cfg.Embedder.Type)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, 500, cfg.Chunker.WindowWords)
	assert.Equal(t, 100, cfg.Chunker.OverlapWords)
	assert.Equal(t, 50, cfg.Chunker.MinChunkChars)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 3000, cfg.Retrieval.MaxContextChars)
	assert.Equal(t, filepath.Join("data", "index", "vectors.idx"), cfg.IndexPath())
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /tmp/legal\nembedder:\n  type: hashing\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/legal", cfg.DataDir)
	assert.Equal(t, "hashing", cfg.Embedder.Type)
	// Unset fields still fall back to defaults.
	assert.Equal(t, 500, cfg.Chunker.WindowWords)
	assert.Equal(t, "OPENAI_API_KEY", cfg.OpenAI.APIKeyEnv)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.DataDir = "/var/lib/legalbot"
	cfg.Retrieval.TopK = 8

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
