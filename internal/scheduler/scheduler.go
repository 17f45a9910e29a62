// Package scheduler enqueues recurring maintenance jobs onto the worker pool
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Scheduled recurring job"
	LogMsgJobSkipped   = "Skipped scheduled job, worker queue full or stopped"
	LogMsgStopped      = "Scheduler stopped"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool Enqueuer
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop. When runNow is set the first run is
// enqueued immediately. A tick that finds the queue full is skipped rather than queued up.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job, runNow bool) {
	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if runNow {
			s.enqueue(name, job)
		}
		for {
			select {
			case <-ticker.C:
				s.enqueue(name, job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(name string, job worker.Job) {
	if !s.pool.TryEnqueue(job) {
		logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", name)
	}
}

// Stop stops all scheduled jobs. Jobs already handed to the pool still run.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
	logger.Info(LogMsgStopped)
}
