package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/osse101/Ascendant_Go/internal/bootstrap"
	"github.com/osse101/Ascendant_Go/internal/config"
)

// MigrateCommand brings the configured backend's schema up to date. Opening a store
// always applies pending migrations, so this is the same path the app takes at startup.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply pending migrations to the configured storage backend"
}

func (c *MigrateCommand) Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	PrintHeader(fmt.Sprintf("Migrating %s", cfg.StorageBackend))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	store.Close()

	PrintSuccess("Schema is up to date")
	return nil
}

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the storage backend to accept connections (-retries, -interval)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	retries := fs.Int("retries", 30, "attempts before giving up")
	interval := fs.Duration("interval", 2*time.Second, "pause between attempts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	PrintHeader(fmt.Sprintf("Waiting for %s...", cfg.StorageBackend))
	return waitForStorage(cfg, *retries, *interval)
}

func waitForStorage(cfg *config.Config, retries int, interval time.Duration) error {
	var lastErr error
	for i := 0; i < retries; i++ {
		lastErr = pingStorage(cfg)
		if lastErr == nil {
			PrintSuccess("Storage is ready")
			return nil
		}
		PrintWarning("Storage not ready (%d/%d): %v", i+1, retries, lastErr)
		if i < retries-1 {
			time.Sleep(interval)
		}
	}
	return fmt.Errorf("storage failed to become ready after %d attempts: %w", retries, lastErr)
}

func pingStorage(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Ping(ctx)
}
