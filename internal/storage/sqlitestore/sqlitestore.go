// Package sqlitestore keeps documents in a single local SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (or creates) the database at dbPath and ensures the schema.
func New(ctx context.Context, dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlitestore: path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlitestore: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: init schema: %w", err)
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: load %s: %w", key, err)
	}
	return []byte(body), nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	const q = `
	INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlitestore: save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
