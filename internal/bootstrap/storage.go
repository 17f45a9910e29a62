package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/database"
	"github.com/osse101/Ascendant_Go/internal/database/postgres"
	"github.com/osse101/Ascendant_Go/internal/database/sqlite"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/repository"
	"github.com/osse101/Ascendant_Go/internal/state"
)

// LoadTables reads the game tables file, falling back to the built-in tables when the
// file does not exist. A file that exists but fails validation is an error.
func LoadTables(cfg *config.Config) (*gamedata.Tables, error) {
	tables, err := gamedata.NewLoaderWithSchema(cfg.TablesSchemaPath).Load(cfg.TablesPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn(LogMsgTablesDefaulted, "path", cfg.TablesPath)
		return gamedata.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadTables, err)
	}
	logger.Info(LogMsgTablesLoaded, "path", cfg.TablesPath, "paths", len(tables.Paths), "shop_items", len(tables.Shop))
	return tables, nil
}

// OpenStorage opens the configured backend and brings its schema up to date
func OpenStorage(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectPostgres, err)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		logger.Info(LogMsgStorageOpened, "backend", cfg.StorageBackend, "host", cfg.DBHost, "db", cfg.DBName)
		return postgres.NewStore(pool), nil

	case config.StorageBackendSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		logger.Info(LogMsgStorageOpened, "backend", cfg.StorageBackend, "path", cfg.SQLitePath)
		return store, nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownBackendFmt, "storage", cfg.StorageBackend)
}

// OpenStateStore opens the optimistic state store. The returned close func is never nil.
func OpenStateStore(ctx context.Context, cfg *config.Config) (state.Store, func(), error) {
	switch cfg.StateBackend {
	case config.StateBackendMemory:
		logger.Info(LogMsgStateStoreOpened, "backend", cfg.StateBackend, "size", cfg.StateCacheSize, "ttl", cfg.StateCacheTTL)
		return state.NewMemoryStore(cfg.StateCacheSize, cfg.StateCacheTTL), func() {}, nil

	case config.StateBackendRedis:
		rdb, err := state.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		logger.Info(LogMsgStateStoreOpened, "backend", cfg.StateBackend, "addr", cfg.RedisAddr, "ttl", cfg.StateCacheTTL)
		return state.NewRedisStore(rdb, cfg.StateCacheTTL), func() { _ = rdb.Close() }, nil
	}
	return nil, nil, fmt.Errorf(ErrMsgUnknownBackendFmt, "state", cfg.StateBackend)
}
