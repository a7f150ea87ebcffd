package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

// snapshotVersion guards the on-disk gob layout. Bump it when the
// snapshot struct changes; older files then fail loudly instead of
// decoding garbage.
const snapshotVersion = 1

// snapshot is the persisted form of a Flat index. Vector order is the
// slot order, so a loaded index is search-equivalent to the built one.
type snapshot struct {
	Version   int
	Model     string
	Dimension int
	Vectors   [][]float32
}

// Save persists the index to path atomically: it encodes into a temp file
// in the same directory and renames it over the target, so a crash or a
// failed validation never leaves a half-written index behind and a prior
// good index stays intact until the new one is complete. The model name
// is stored so load-time dimension checks can name the culprit.
func (f *Flat) Save(path, model string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	snap := snapshot{
		Version:   snapshotVersion,
		Model:     model,
		Dimension: f.dimension,
		Vectors:   f.vectors,
	}
	if err := gob.NewEncoder(file).Encode(&snap); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads a persisted index. A missing file reports ErrIndexNotFound
// with the remediation (run an ingestion) attached.
func Load(path string) (*Flat, string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w at %s: run `legalbot ingest` first", domain.ErrIndexNotFound, path)
		}
		return nil, "", err
	}
	defer file.Close()

	var snap snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, "", fmt.Errorf("decoding index %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, "", fmt.Errorf("index %s has format version %d, want %d: re-run ingestion", path, snap.Version, snapshotVersion)
	}
	f, err := Build(snap.Vectors)
	if err != nil {
		return nil, "", fmt.Errorf("loading index %s: %w", path, err)
	}
	if f.dimension != snap.Dimension {
		return nil, "", fmt.Errorf("%w: index %s declares dimension %d but stores %d",
			domain.ErrDimensionMismatch, path, snap.Dimension, f.dimension)
	}
	return f, snap.Model, nil
}

// Exists reports whether a persisted index is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
