package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// DayAdvancer runs the day cycle for every known user and reports how many advanced
type DayAdvancer interface {
	AdvanceDayForAll(ctx context.Context) (int, error)
}

// DayRolloverWorker advances every user's day at the configured day boundary
type DayRolloverWorker struct {
	advancer DayAdvancer
	clock    clock.Clock
	offset   time.Duration
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewDayRolloverWorker creates a DayRolloverWorker. offset shifts the boundary from UTC midnight,
// matching clock.NextBoundary.
func NewDayRolloverWorker(advancer DayAdvancer, clk clock.Clock, offset time.Duration) *DayRolloverWorker {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &DayRolloverWorker{
		advancer: advancer,
		clock:    clk,
		offset:   offset,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first rollover
func (w *DayRolloverWorker) Start() {
	w.scheduleNext()
}

func (w *DayRolloverWorker) timeUntilNextRollover() time.Duration {
	return w.clock.Until(clock.NextBoundary(w.clock.Now(), w.offset))
}

// scheduleNext arms the timer for the next boundary
func (w *DayRolloverWorker) scheduleNext() {
	duration := w.timeUntilNextRollover()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	select {
	case <-w.shutdown:
		w.mu.Unlock()
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling keeps a long timer from drifting past the boundary
	if duration > standbyThreshold {
		wait := duration - standbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		w.mu.Unlock()

		log.Info(LogMsgRolloverStandby, "next_check_at", w.clock.Now().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Fired early: re-arm for what is left
		rem := w.timeUntilNextRollover()
		if rem > earlyTriggerTolerance && rem < lateTriggerWindow {
			w.scheduleNext()
			return
		}

		w.executeRollover()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgRolloverApproach, "next_rollover_at", w.clock.Now().Add(duration))
}

// executeRollover runs the rollover in a tracked goroutine
func (w *DayRolloverWorker) executeRollover() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		_, _ = w.rollover(context.Background())
	}()
}

func (w *DayRolloverWorker) rollover(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverStarting)

	advanced, err := w.advancer.AdvanceDayForAll(ctx)
	if err != nil {
		log.Error(LogMsgRolloverFailed, "error", err, "advanced", advanced)
		return advanced, err
	}

	log.Info(LogMsgRolloverCompleted, "advanced", advanced)
	return advanced, nil
}

// TriggerNow runs a rollover synchronously, outside the schedule
func (w *DayRolloverWorker) TriggerNow(ctx context.Context) (int, error) {
	logger.FromContext(ctx).Info(LogMsgRolloverManualTrigger)
	w.wg.Add(1)
	defer w.wg.Done()
	return w.rollover(ctx)
}

// Shutdown cancels the pending timer and waits for in-flight rollovers to complete
func (w *DayRolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverShuttingDown)

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
		log.Info(LogMsgRolloverCancelled)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgRolloverShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRolloverShutdownSlow)
		return ctx.Err()
	}
}
