package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/migrations"
)

// MigratePostgres applies every pending embedded migration to the pool's database
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	// The *sql.DB shares the pool's connections, closing it would close the pool
	db := stdlib.OpenDBFromPool(pool)
	return Migrate(ctx, db, goose.DialectPostgres, migrations.DirPostgres)
}

// Migrate runs the migrations in dir against db with a goose provider
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}

	log := logger.FromContext(ctx)
	if len(results) == 0 {
		log.Debug(LogMsgMigrationsUpToDate, "dialect", dialect)
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}
