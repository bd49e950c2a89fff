package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

const DefaultTable = "project_documents"

// DocumentStore keeps documents as JSONB rows keyed by name.
type DocumentStore struct {
	db    *sql.DB
	table string // quoted identifier
}

// NewDocumentStore uses table (DefaultTable when empty). The name is quoted,
// so any identifier is safe to pass.
func NewDocumentStore(db *sql.DB, table string) *DocumentStore {
	if table == "" {
		table = DefaultTable
	}
	return &DocumentStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  key text primary key,
  body jsonb not null,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
)`, s.table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (s *DocumentStore) Load(ctx context.Context, key string) ([]byte, error) {
	q := fmt.Sprintf(`SELECT body::text FROM %s WHERE key = $1`, s.table)

	var body string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return []byte(body), nil
}

// Save upserts the document on key.
func (s *DocumentStore) Save(ctx context.Context, key string, data []byte) error {
	q := fmt.Sprintf(`
INSERT INTO %s (key, body)
VALUES ($1, $2::jsonb)
ON CONFLICT (key) DO UPDATE SET
  body = EXCLUDED.body,
  updated_at = NOW()`, s.table)

	if _, err := s.db.ExecContext(ctx, q, key, string(data)); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}
