package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Ascendant_Go/internal/bootstrap"
	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/database"
	"github.com/osse101/Ascendant_Go/internal/profile"
)

const resetTimeout = time.Minute

func main() {
	userID := flag.String("user", "", "reset a single account: identities, progress, seals and inventory")
	all := flag.Bool("all", false, "drop and recreate the whole database")
	flag.Parse()

	if (*userID == "") == !*all {
		fmt.Fprintln(os.Stderr, "usage: reset -user <id> | reset -all")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
	defer cancel()

	if *all {
		if err := resetAll(ctx, cfg); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		log.Println("Database reset complete. Start the app to apply migrations.")
		return
	}

	if err := resetUser(ctx, cfg, *userID); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	log.Printf("Account %s reset.\n", *userID)
}

func resetUser(ctx context.Context, cfg *config.Config, userID string) error {
	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	states, closeStates, err := bootstrap.OpenStateStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStates()

	// tables only shape profile views, the reset itself does not read them
	svc := profile.NewService(store, states, nil, nil, nil)
	return svc.ResetAccount(ctx, userID)
}

// resetAll recreates the SQLite file or the Postgres database
func resetAll(ctx context.Context, cfg *config.Config) error {
	if cfg.StorageBackend == config.StorageBackendSQLite {
		log.Printf("Removing %s...\n", cfg.SQLitePath)
		if err := os.Remove(cfg.SQLitePath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	// Manage the target database from the server's maintenance database
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	serverPool, err := database.NewPool(ctx, serverConnString, 2, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("connect to postgres server: %w", err)
	}
	defer serverPool.Close()

	dbName := pgx.Identifier{cfg.DBName}.Sanitize()

	log.Printf("Terminating existing connections to %s...\n", cfg.DBName)
	if _, err := serverPool.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
		log.Printf("Warning: failed to terminate connections: %v\n", err)
	}

	log.Printf("Dropping %s...\n", cfg.DBName)
	if _, err := serverPool.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	log.Printf("Creating %s...\n", cfg.DBName)
	if _, err := serverPool.Exec(ctx, "CREATE DATABASE "+dbName); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}
