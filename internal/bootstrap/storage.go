package bootstrap

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/archdesign/config"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/filestore"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/memstore"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/redisstore"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/sqlitestore"
)

// OpenBackend builds the storage backend selected by cfg.Store.Backend.
func OpenBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Store.Backend {
	case storage.KindMemory:
		return memstore.New(), nil
	case storage.KindFile:
		return filestore.New(cfg.Store.DataDir)
	case storage.KindSQLite:
		return sqlitestore.New(ctx, cfg.Store.SQLitePath)
	case storage.KindRedis:
		return redisstore.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case storage.KindPostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		docs := postgres.NewDocumentStore(db, cfg.Database.Table)
		if err := docs.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Store.Backend)
	}
}
