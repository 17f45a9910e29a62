// Package daycycle advances a user to a new calendar day. The cycle is the one ordered
// multi-step sequence of the engine:
//
//  1. capture the previous day: persist its final snapshots, credit seals for completed
//     days and reset streaks of missed ones
//  2. reset daily progress: a fresh day per path
//  3. roll over recurring items: purge expired and spent inventory instances
//  4. reload aggregates: profile, overall rank, character evolution and seals
//
// A failing step stops the cycle. Effects of earlier steps are kept.
package daycycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/metrics"
	"github.com/osse101/Ascendant_Go/internal/profile"
	"github.com/osse101/Ascendant_Go/internal/repository"
	"github.com/osse101/Ascendant_Go/internal/state"
)

// Service defines the interface for the day cycle
type Service interface {
	AdvanceDay(ctx context.Context, userID string) (*Summary, error)
	AdvanceDayForAll(ctx context.Context) (int, error)
	Shutdown(ctx context.Context) error
}

// Repository is the storage the day cycle reads and writes synchronously
type Repository interface {
	repository.Profile
	repository.Identity
	repository.Progress
	repository.Seal
	repository.Inventory
	repository.DayCycle
}

// Config tunes the cycle
type Config struct {
	// DayOffset shifts the day boundary from UTC midnight, as clock.DayAt
	DayOffset time.Duration
	// ResetStreakOnMissedDay zeroes the streak of a path whose previous day was not completed
	ResetStreakOnMissedDay bool
}

// StepError reports which step stopped the cycle
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf(ErrMsgStepFailedFmt, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// PathSummary is what the cycle did to one identity
type PathSummary struct {
	IdentityID    string `json:"identity_id"`
	PathKey       string `json:"path_key"`
	Completed     bool   `json:"previous_day_completed"`
	Streak        int    `json:"streak"`
	StreakReset   bool   `json:"streak_reset"`
	ShieldUsed    bool   `json:"shield_used"`
	SealDays      int    `json:"seal_days,omitempty"`
	SealLeveledUp bool   `json:"seal_leveled_up"`
}

// Summary describes one user's advance. Skipped is set when the day was already advanced.
type Summary struct {
	UserID      string            `json:"user_id"`
	PreviousDay time.Time         `json:"previous_day"`
	Day         time.Time         `json:"day"`
	Skipped     bool              `json:"skipped"`
	Paths       []PathSummary     `json:"paths"`
	ItemsPurged int               `json:"items_purged"`
	Overview    *profile.Overview `json:"overview,omitempty"`
	// CompletedSteps lists the steps that ran to completion, in order
	CompletedSteps []Step `json:"completed_steps"`
	// Released is set when a failed run gave its claim back
	Released bool `json:"released,omitempty"`
}

type service struct {
	repo   Repository
	states state.Store
	tables *gamedata.Tables
	clock  clock.Clock
	locks  *concurrency.LockManager
	bus    event.Bus
	cfg    Config
	wg     sync.WaitGroup
}

// NewService creates the day cycle. locks must be the journey service's lock manager so a
// cycle never interleaves with a toggle on the same path. bus may be nil.
func NewService(repo Repository, states state.Store, tables *gamedata.Tables, clk clock.Clock,
	locks *concurrency.LockManager, bus event.Bus, cfg Config) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:   repo,
		states: states,
		tables: tables,
		clock:  clk,
		locks:  locks,
		bus:    bus,
		cfg:    cfg,
	}
}

// AdvanceDay runs the cycle for one user. It claims the day first, so it runs at most once
// per user per day; a second call the same day returns a skipped summary. A failure before any
// identity is captured gives the claim back so a later call retries; after that the claim stays,
// since seal days and shields are not safe to apply twice.
func (s *service) AdvanceDay(ctx context.Context, userID string) (*Summary, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAdvanceDayCalled, "user_id", userID)

	day := clock.DayAt(s.clock.Now(), s.cfg.DayOffset)
	summary := &Summary{UserID: userID, PreviousDay: day.AddDate(0, 0, -1), Day: day}

	claimed, err := s.repo.ClaimDayAdvance(ctx, userID, day)
	if err != nil {
		metrics.DayAdvances.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, fmt.Errorf(ErrMsgClaimFailed, err)
	}
	if !claimed {
		log.Info(LogMsgAlreadyAdvanced, "user_id", userID, "day", day.Format(domain.DayLayout))
		metrics.DayAdvances.WithLabelValues(metrics.ResultSkipped).Inc()
		summary.Skipped = true
		return summary, nil
	}

	identities, err := s.repo.ListIdentities(ctx, userID)
	if err != nil {
		s.release(ctx, summary)
		return s.fail(ctx, summary, StepCapturePreviousDay, fmt.Errorf(ErrMsgListIdentities, err))
	}

	steps := []struct {
		step Step
		run  func() error
	}{
		{StepCapturePreviousDay, func() error { return s.capturePreviousDay(ctx, summary, identities) }},
		{StepResetProgress, func() error { return s.resetProgress(ctx, summary, identities) }},
		{StepRolloverItems, func() error { return s.rolloverItems(ctx, summary) }},
		{StepReloadAggregates, func() error { return s.reloadAggregates(ctx, summary) }},
	}
	for _, st := range steps {
		if err := st.run(); err != nil {
			if st.step == StepCapturePreviousDay && len(summary.Paths) == 0 {
				s.release(ctx, summary)
			}
			return s.fail(ctx, summary, st.step, err)
		}
		summary.CompletedSteps = append(summary.CompletedSteps, st.step)
	}

	metrics.DayAdvances.WithLabelValues(metrics.ResultSuccess).Inc()
	s.publishAsync(event.NewDayAdvancedEvent(userID, day))
	log.Info(LogMsgDayAdvanced, "user_id", userID, "day", day.Format(domain.DayLayout),
		"paths", len(summary.Paths), "items_purged", summary.ItemsPurged)
	return summary, nil
}

func (s *service) release(ctx context.Context, summary *Summary) {
	log := logger.FromContext(ctx)
	if err := s.repo.ReleaseDayAdvance(ctx, summary.UserID, summary.Day); err != nil {
		log.Error(LogMsgReleaseFailed, "user_id", summary.UserID, "error", err)
		return
	}
	summary.Released = true
	log.Info(LogMsgClaimReleased, "user_id", summary.UserID, "day", summary.Day.Format(domain.DayLayout))
}

func (s *service) fail(ctx context.Context, summary *Summary, step Step, err error) (*Summary, error) {
	logger.FromContext(ctx).Error(LogMsgStepFailed, "user_id", summary.UserID, "step", step,
		"completed_steps", summary.CompletedSteps, "error", err)
	metrics.DayAdvances.WithLabelValues(metrics.ResultFailure).Inc()
	return summary, &StepError{Step: step, Err: err}
}

// AdvanceDayForAll advances every known user and reports how many advanced. Users already
// advanced today are not counted. One user's failure does not stop the others.
func (s *service) AdvanceDayForAll(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAdvanceAllStarting)

	userIDs, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgListUsers, err)
	}

	advanced := 0
	var errs []error
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		summary, err := s.AdvanceDay(ctx, userID)
		if err != nil {
			log.Warn(LogMsgAdvanceUserFailed, "user_id", userID, "error", err)
			errs = append(errs, err)
			continue
		}
		if !summary.Skipped {
			advanced++
		}
	}

	log.Info(LogMsgAdvanceAllDone, "users", len(userIDs), "advanced", advanced, "failed", len(errs))
	if len(errs) > 0 {
		return advanced, fmt.Errorf(ErrMsgAdvanceForAllFmt, len(errs), len(userIDs), errors.Join(errs...))
	}
	return advanced, nil
}

func (s *service) publishAsync(events ...event.Event) {
	if s.bus == nil || len(events) == 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		for _, evt := range events {
			if err := s.bus.Publish(ctx, evt); err != nil {
				logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
			}
		}
	}()
}

func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgDayCycleShutdown)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimedOut, ctx.Err())
	}
}
