package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/osse101/Ascendant_Go/internal/bootstrap"
	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/journey"
	"github.com/osse101/Ascendant_Go/internal/profile"
	"github.com/osse101/Ascendant_Go/internal/state"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

// SeedCommand creates demo players through the same services the API uses
type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Create demo players with one identity per path (-users, -prefix)"
}

func (c *SeedCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	users := fs.Int("users", 3, "number of demo players")
	prefix := fs.String("prefix", "demo", "user id prefix")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tables, err := bootstrap.LoadTables(cfg)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	PrintHeader(fmt.Sprintf("Seeding %d players into %s", *users, cfg.StorageBackend))

	states := state.NewMemoryStore(config.DefaultStateCacheSize, cfg.StateCacheTTL)
	profiles := profile.NewService(store, states, tables, nil, nil)
	pool := worker.NewPool(1, config.DefaultWorkerQueueSize)
	pool.Start()
	defer pool.Stop()
	journeys := journey.NewService(store, states, tables, clock.NewRealClock(), cfg.DayOffset, nil, pool, nil)

	for i := 1; i <= *users; i++ {
		userID := fmt.Sprintf("%s-%d", *prefix, i)
		if _, err := profiles.EnsureProfile(ctx, userID, userID); err != nil {
			return fmt.Errorf("create %s: %w", userID, err)
		}

		selected := 0
		for _, path := range tables.Paths {
			if _, err := journeys.SelectPath(ctx, userID, path.Key); err != nil {
				PrintWarning("%s: %s skipped: %v", userID, path.Key, err)
				continue
			}
			selected++
		}
		PrintInfo("%s ready with %d identities", userID, selected)
	}

	PrintSuccess("Seed complete")
	return nil
}
