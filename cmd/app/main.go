package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/Ascendant_Go/internal/bootstrap"
	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/daycycle"
	"github.com/osse101/Ascendant_Go/internal/economy"
	"github.com/osse101/Ascendant_Go/internal/eventlog"
	"github.com/osse101/Ascendant_Go/internal/handler"
	"github.com/osse101/Ascendant_Go/internal/journey"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/profile"
	"github.com/osse101/Ascendant_Go/internal/scheduler"
	"github.com/osse101/Ascendant_Go/internal/server"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	handler.Version = cfg.Version

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	for _, w := range warnings {
		logger.Warn("Configuration warning", "warning", w)
	}

	if err := run(cfg); err != nil {
		logger.Error("Ascendant exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	tables, err := bootstrap.LoadTables(cfg)
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStorage(startCtx, cfg)
	if err != nil {
		return err
	}
	states, closeStates, err := bootstrap.OpenStateStore(startCtx, cfg)
	if err != nil {
		store.Close()
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		closeStates()
		store.Close()
		return err
	}

	clk := clock.NewRealClock()
	locks := concurrency.NewLockManager()

	history := eventlog.NewService(store, clk)
	if err := history.Subscribe(bus); err != nil {
		closeStates()
		store.Close()
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule("event_log_cleanup", cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(history, cfg.EventLogRetention), true)

	journeySvc := journey.NewService(store, states, tables, clk, cfg.DayOffset, locks, pool, publisher)
	economySvc := economy.NewService(store, store, tables, clk, publisher)
	profileSvc := profile.NewService(store, states, tables, locks, publisher)
	dayCycleSvc := daycycle.NewService(store, states, tables, clk, locks, publisher, daycycle.Config{
		DayOffset:              cfg.DayOffset,
		ResetStreakOnMissedDay: cfg.ResetStreakOnMissedDay,
	})

	rollover := worker.NewDayRolloverWorker(dayCycleSvc, clk, cfg.DayOffset)
	rollover.Start()

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, store, server.Services{
		Journey:  journeySvc,
		Economy:  economySvc,
		Profile:  profileSvc,
		DayCycle: dayCycleSvc,
		History:  history,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		logger.Info("Received shutdown signal", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:         srv,
		RolloverWorker: rollover,
		Scheduler:      sched,
		Pool:           pool,
		Journey:        journeySvc,
		Economy:        economySvc,
		Profile:        profileSvc,
		DayCycle:       dayCycleSvc,
		Publisher:      publisher,
		StateClose:     closeStates,
		Store:          store,
	})
	return runErr
}
