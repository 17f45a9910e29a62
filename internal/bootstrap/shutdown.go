package bootstrap

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/logger"
)

type shutdownable interface {
	Shutdown(context.Context) error
}

// ShutdownComponents holds everything that needs graceful shutdown. Nil fields are skipped.
type ShutdownComponents struct {
	Server         interface{ Stop(context.Context) error }
	RolloverWorker shutdownable
	Scheduler      interface{ Stop() }
	Pool           interface{ Stop() }
	Journey        shutdownable
	Economy        shutdownable
	Profile        shutdownable
	DayCycle       shutdownable
	Publisher      shutdownable
	StateClose     func()
	Store          interface{ Close() }
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Rollover worker, scheduler and job pool (no new day advances, cleanups or background saves)
// 3. Services (wait for in-flight event publishes)
// 4. Event publisher (flush or dead-letter pending events)
// 5. State and storage connections
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.RolloverWorker != nil {
		if err := c.RolloverWorker.Shutdown(ctx); err != nil {
			logger.Error(LogMsgWorkerShutdownFailed, "worker", "day_rollover", "error", err)
		}
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}

	shutdownService(ctx, ServiceNameJourney, c.Journey)
	shutdownService(ctx, ServiceNameEconomy, c.Economy)
	shutdownService(ctx, ServiceNameProfile, c.Profile)
	shutdownService(ctx, ServiceNameDayCycle, c.DayCycle)

	if c.Publisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := c.Publisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.StateClose != nil {
		c.StateClose()
	}
	if c.Store != nil {
		c.Store.Close()
	}

	logger.Info(LogMsgServerStopped)
}

func shutdownService(ctx context.Context, name string, svc shutdownable) {
	if svc == nil {
		return
	}
	if err := svc.Shutdown(ctx); err != nil {
		logger.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
