// Package redisstore keeps documents as Redis string values.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

const keyPrefix = "archdesign:doc:" // archdesign:doc:{key}

type Store struct {
	client *redis.Client
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Dial connects to addr and pings it.
func Dial(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping %s: %w", addr, err)
	}
	return New(client), nil
}

func (s *Store) docKey(key string) string {
	return keyPrefix + key
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.docKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get %s: %w", key, err)
	}
	return data, nil
}

// Save stores the document without expiry.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.docKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: set %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
