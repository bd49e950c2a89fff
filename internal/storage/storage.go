// Package storage defines the durable key/value contract the project store
// persists its document through.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no document is stored under a key.
var ErrNotFound = errors.New("document not found")

// Backend stores opaque documents under string keys.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Kinds of backends understood by the bootstrap layer.
const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindSQLite   = "sqlite"
	KindRedis    = "redis"
	KindPostgres = "postgres"
)
