// Package sqlite persists documents and chunks in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/store/sqlite/migrations"
)

// Store implements domain.ChunkStore on top of SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ domain.ChunkStore = (*Store)(nil)

// Open creates or opens the database under dataDir and applies pending
// migrations. WAL mode keeps concurrent query-time readers from blocking
// each other.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "legalbot.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UpsertDocument creates or updates a document record keyed by filename
// and returns it with its stable ID filled in.
func (s *Store) UpsertDocument(ctx context.Context, doc domain.Document) (domain.Document, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE filename = ?", doc.Filename).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		doc.ID = uuid.New().String()
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO documents (id, filename, title, file_size, page_count, ingested_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			doc.ID, doc.Filename, doc.Title, doc.FileSize, doc.PageCount, formatTime(doc.IngestedAt))
		if err != nil {
			return domain.Document{}, fmt.Errorf("inserting document %s: %w", doc.Filename, err)
		}
		return doc, nil
	case err != nil:
		return domain.Document{}, fmt.Errorf("looking up document %s: %w", doc.Filename, err)
	}

	doc.ID = id
	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET title = ?, file_size = ?, page_count = ?, ingested_at = ? WHERE id = ?`,
		doc.Title, doc.FileSize, doc.PageCount, formatTime(doc.IngestedAt), doc.ID)
	if err != nil {
		return domain.Document{}, fmt.Errorf("updating document %s: %w", doc.Filename, err)
	}
	return doc, nil
}

// ReplaceChunks rewrites the chunks table with the given run's chunk set
// in one transaction. Slots must form the contiguous range 0..n-1 in
// slice order; anything else means the caller's slot assignment drifted
// from the index build order.
func (s *Store) ReplaceChunks(ctx context.Context, chunks []domain.Chunk) error {
	for i, ch := range chunks {
		if ch.Slot != i {
			return fmt.Errorf("%w: chunk at position %d carries slot %d", domain.ErrSlotCorrelation, i, ch.Slot)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (slot, document_id, page, text) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ch := range chunks {
		if _, err := stmt.ExecContext(ctx, ch.Slot, ch.DocumentID, ch.Page, ch.Text); err != nil {
			return fmt.Errorf("inserting chunk slot %d: %w", ch.Slot, err)
		}
	}
	return tx.Commit()
}

// GetBySlot returns the chunk at the given vector slot joined with its
// document. A missing slot reports ErrNotFound.
func (s *Store) GetBySlot(ctx context.Context, slot int) (domain.Chunk, domain.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT c.slot, c.page, c.text,
		        d.id, d.filename, d.title, d.file_size, d.page_count, d.ingested_at
		 FROM chunks c JOIN documents d ON d.id = c.document_id
		 WHERE c.slot = ?`, slot)

	var ch domain.Chunk
	var doc domain.Document
	var ingestedAt string
	err := row.Scan(&ch.Slot, &ch.Page, &ch.Text,
		&doc.ID, &doc.Filename, &doc.Title, &doc.FileSize, &doc.PageCount, &ingestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Chunk{}, domain.Document{}, fmt.Errorf("%w: chunk slot %d", domain.ErrNotFound, slot)
	}
	if err != nil {
		return domain.Chunk{}, domain.Document{}, fmt.Errorf("reading chunk slot %d: %w", slot, err)
	}
	ch.DocumentID = doc.ID
	doc.IngestedAt = parseTime(ingestedAt)
	return ch, doc, nil
}

// Stats returns the document list and total chunk count.
func (s *Store) Stats(ctx context.Context) (domain.CorpusStats, error) {
	var stats domain.CorpusStats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&stats.ChunkCount); err != nil {
		return domain.CorpusStats{}, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, title, file_size, page_count, ingested_at
		 FROM documents ORDER BY filename`)
	if err != nil {
		return domain.CorpusStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var doc domain.Document
		var ingestedAt string
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Title, &doc.FileSize, &doc.PageCount, &ingestedAt); err != nil {
			return domain.CorpusStats{}, err
		}
		doc.IngestedAt = parseTime(ingestedAt)
		stats.Documents = append(stats.Documents, doc)
	}
	return stats, rows.Err()
}

// Timestamps are stored as RFC 3339 text so scans do not depend on the
// driver's datetime handling.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// migrate applies all pending *.up.sql files in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
