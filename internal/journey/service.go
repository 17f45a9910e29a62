// Package journey runs the player's daily loop: picking paths, loading today's tasks and
// toggling them. State changes are applied optimistically to the state store and written
// to the database by background jobs.
package journey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/logger"
	"github.com/osse101/Ascendant_Go/internal/progression"
	"github.com/osse101/Ascendant_Go/internal/repository"
	"github.com/osse101/Ascendant_Go/internal/state"
	"github.com/osse101/Ascendant_Go/internal/streak"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

// Service defines the interface for the daily journey
type Service interface {
	ListPaths() []gamedata.PathDef
	SelectPath(ctx context.Context, userID, pathQuery string) (*domain.Identity, error)
	GetIdentities(ctx context.Context, userID string) ([]domain.Identity, error)
	GetToday(ctx context.Context, userID, identityID string) (*Today, error)
	ToggleTask(ctx context.Context, userID, identityID, taskID string) (*ToggleOutcome, error)
	ToggleSubtask(ctx context.Context, userID, identityID, taskID, subtaskID string) (*SubtaskOutcome, error)
	Shutdown(ctx context.Context) error
}

// Repository is the storage the journey reads through and writes behind
type Repository interface {
	repository.Profile
	repository.Identity
	repository.Progress
}

// JobQueue accepts background persistence jobs without blocking. It reports false when the
// job was not queued.
type JobQueue interface {
	TryEnqueue(job worker.Job) bool
}

// Today is an identity with its current day
type Today struct {
	Identity domain.Identity      `json:"identity"`
	Day      domain.DayState      `json:"day"`
	Progress domain.DailyProgress `json:"progress"`
}

// ToggleOutcome describes what a task toggle changed
type ToggleOutcome struct {
	Identity     domain.Identity        `json:"identity"`
	Day          domain.DayState        `json:"day"`
	TaskID       string                 `json:"task_id"`
	Completed    bool                   `json:"completed"`
	Delta        streak.RewardDelta     `json:"delta"`
	StreakChange int                    `json:"streak_change"`
	Milestone    *domain.MilestoneAward `json:"milestone,omitempty"`
	LeveledUp    bool                   `json:"leveled_up"`
	Evolved      bool                   `json:"evolved"`
}

// SubtaskOutcome describes what a subtask toggle changed. Parent is set when checking the
// last open subtask completed the parent task.
type SubtaskOutcome struct {
	Day       domain.DayState `json:"day"`
	TaskID    string          `json:"task_id"`
	SubtaskID string          `json:"subtask_id"`
	Completed bool            `json:"completed"`
	Parent    *ToggleOutcome  `json:"parent,omitempty"`
}

type service struct {
	repo      Repository
	states    state.Store
	tables    *gamedata.Tables
	engine    *streak.Engine
	clock     clock.Clock
	dayOffset time.Duration
	locks     *concurrency.LockManager
	flushes   *concurrency.LockManager
	jobs      JobQueue
	bus       event.Bus
	wg        sync.WaitGroup
}

// NewService creates the journey service. locks must be shared with anything else that
// mutates a user's path state, such as the day cycle. bus may be nil.
func NewService(repo Repository, states state.Store, tables *gamedata.Tables, clk clock.Clock, dayOffset time.Duration,
	locks *concurrency.LockManager, jobs JobQueue, bus event.Bus) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:      repo,
		states:    states,
		tables:    tables,
		engine:    streak.NewEngine(tables),
		clock:     clk,
		dayOffset: dayOffset,
		locks:     locks,
		flushes:   concurrency.NewLockManager(),
		jobs:      jobs,
		bus:       bus,
	}
}

func (s *service) ListPaths() []gamedata.PathDef {
	return s.tables.Paths
}

func (s *service) today() time.Time {
	return clock.DayAt(s.clock.Now(), s.dayOffset)
}

// SelectPath creates the user's identity on a path. Each path can be selected once.
func (s *service) SelectPath(ctx context.Context, userID, pathQuery string) (*domain.Identity, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSelectPathCalled, "user_id", userID, "path", pathQuery)

	path, err := s.tables.FindPath(pathQuery)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProfile(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}

	now := s.clock.Now()
	identity := domain.Identity{
		ID:            uuid.NewString(),
		UserID:        userID,
		PathKey:       path.Key,
		Level:         1,
		XPToNextLevel: progression.XPRequiredForLevel(1),
		Stage:         domain.StageNovice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateIdentity, err)
	}

	s.putIdentity(ctx, identity)
	s.putDay(ctx, path.NewDay(userID, identity.ID, s.today()))

	log.Info(LogMsgPathSelected, "user_id", userID, "path", path.Key, "identity_id", identity.ID)
	return &identity, nil
}

// GetIdentities returns the user's identities with their latest optimistic values
func (s *service) GetIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	identities, err := s.repo.ListIdentities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListIdentities, err)
	}
	for i, identity := range identities {
		if cached, found, err := s.states.GetIdentity(ctx, userID, identity.ID); err == nil && found {
			identities[i] = cached
		}
	}
	return identities, nil
}

func (s *service) GetToday(ctx context.Context, userID, identityID string) (*Today, error) {
	var today *Today
	err := s.locks.WithLock(concurrency.PathKey(userID, identityID), func() error {
		identity, err := s.loadIdentity(ctx, userID, identityID)
		if err != nil {
			return err
		}
		day, err := s.loadDay(ctx, identity, s.today())
		if err != nil {
			return err
		}
		today = &Today{Identity: identity, Day: day, Progress: day.Progress()}
		return nil
	})
	return today, err
}

// ToggleTask flips one task of today's day for the identity and returns what changed.
// The toggle is applied to the state store synchronously and persisted in the background.
func (s *service) ToggleTask(ctx context.Context, userID, identityID, taskID string) (*ToggleOutcome, error) {
	logger.FromContext(ctx).Info(LogMsgToggleTaskCalled, "user_id", userID, "identity_id", identityID, "task_id", taskID)

	var outcome *ToggleOutcome
	err := s.locks.WithLock(concurrency.PathKey(userID, identityID), func() error {
		identity, err := s.loadIdentity(ctx, userID, identityID)
		if err != nil {
			return err
		}
		day, err := s.loadDay(ctx, identity, s.today())
		if err != nil {
			return err
		}
		outcome, err = s.toggleLocked(ctx, day, identity, taskID)
		return err
	})
	return outcome, err
}

// toggleLocked runs the engine and applies its result. The path lock must be held.
func (s *service) toggleLocked(ctx context.Context, day domain.DayState, identity domain.Identity, taskID string) (*ToggleOutcome, error) {
	result, err := s.engine.ToggleTask(streak.ToggleInput{Day: day, Identity: identity, TaskID: taskID})
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	result.Day.Revision = domain.NextRevision(day.Revision, now)
	result.Identity.Revision = domain.NextRevision(identity.Revision, now)

	s.putDay(ctx, result.Day)
	s.putIdentity(ctx, result.Identity)
	s.persistDay(result.Day)
	s.persistIdentity(result.Identity)
	if !result.Delta.IsZero() {
		s.persistProfileDelta(result.Identity.UserID, result.Delta)
	}
	s.publishToggle(identity, result, taskID)

	logger.FromContext(ctx).Info(LogMsgTaskToggled,
		"user_id", identity.UserID, "path", identity.PathKey, "task_id", taskID,
		"completed", result.Completed, "streak_change", result.StreakChange, "level", result.Identity.Level)

	return &ToggleOutcome{
		Identity:     result.Identity,
		Day:          result.Day,
		TaskID:       taskID,
		Completed:    result.Completed,
		Delta:        result.Delta,
		StreakChange: result.StreakChange,
		Milestone:    result.Milestone,
		LeveledUp:    result.LeveledUp,
		Evolved:      result.Evolved,
	}, nil
}

// ToggleSubtask flips one subtask. Checking the last open subtask completes the parent
// task, with its reward; unchecking a subtask never reopens the parent.
func (s *service) ToggleSubtask(ctx context.Context, userID, identityID, taskID, subtaskID string) (*SubtaskOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgToggleSubtaskCalled, "user_id", userID, "identity_id", identityID, "task_id", taskID, "subtask_id", subtaskID)

	var outcome *SubtaskOutcome
	err := s.locks.WithLock(concurrency.PathKey(userID, identityID), func() error {
		identity, err := s.loadIdentity(ctx, userID, identityID)
		if err != nil {
			return err
		}
		day, err := s.loadDay(ctx, identity, s.today())
		if err != nil {
			return err
		}

		result, err := s.engine.ToggleSubtask(streak.SubtaskInput{Day: day, TaskID: taskID, SubtaskID: subtaskID})
		if err != nil {
			return err
		}
		outcome = &SubtaskOutcome{Day: result.Day, TaskID: taskID, SubtaskID: subtaskID, Completed: result.Completed}

		if result.ParentShouldComplete {
			log.Info(LogMsgParentAutoComplete, "user_id", userID, "task_id", taskID)
			parent, err := s.toggleLocked(ctx, result.Day, identity, taskID)
			if err != nil {
				return err
			}
			outcome.Parent = parent
			outcome.Day = parent.Day
			return nil
		}

		result.Day.Revision = domain.NextRevision(day.Revision, s.clock.Now())
		s.putDay(ctx, result.Day)
		s.persistDay(result.Day)
		return nil
	})
	return outcome, err
}

// loadIdentity prefers the optimistic snapshot, since the database copy may lag behind it
func (s *service) loadIdentity(ctx context.Context, userID, identityID string) (domain.Identity, error) {
	cached, found, err := s.states.GetIdentity(ctx, userID, identityID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgStateReadFailed, "identity_id", identityID, "error", err)
	}
	if found {
		return cached, nil
	}

	identity, err := s.repo.GetIdentity(ctx, userID, identityID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf(ErrMsgLoadIdentityFmt, identityID, err)
	}
	s.putIdentity(ctx, *identity)
	return *identity, nil
}

// loadDay returns the identity's snapshot for day: from the state store, else rebuilt from
// the persisted progress, else freshly created from the path's templates
func (s *service) loadDay(ctx context.Context, identity domain.Identity, day time.Time) (domain.DayState, error) {
	log := logger.FromContext(ctx)
	key := state.Key{UserID: identity.UserID, PathID: identity.ID, Day: day}

	cached, found, err := s.states.Get(ctx, key)
	if err != nil {
		log.Warn(LogMsgStateReadFailed, "key", key.String(), "error", err)
	}
	if found {
		return cached, nil
	}

	path, ok := s.tables.Path(identity.PathKey)
	if !ok {
		return domain.DayState{}, fmt.Errorf(ErrMsgUnknownPathFmt, identity.ID, identity.PathKey, domain.ErrPathNotFound)
	}

	var ds domain.DayState
	progress, err := s.repo.GetDailyProgress(ctx, identity.UserID, identity.ID, day)
	switch {
	case err == nil && len(progress.Tasks) > 0:
		ds = domain.DayState{
			UserID:         identity.UserID,
			PathID:         identity.ID,
			PathKey:        identity.PathKey,
			Day:            domain.DayFor(day),
			Tasks:          progress.Tasks,
			Status:         progress.Status,
			MilestoneAward: progress.MilestoneAward,
			Revision:       progress.Revision,
		}
		log.Debug(LogMsgDayRebuilt, "key", key.String())
	case err == nil || errors.Is(err, domain.ErrDayNotFound):
		ds = path.NewDay(identity.UserID, identity.ID, day)
		log.Debug(LogMsgDayCreated, "key", key.String())
	default:
		return domain.DayState{}, fmt.Errorf(ErrMsgLoadDayFmt, key.String(), err)
	}

	s.putDay(ctx, ds)
	return ds, nil
}

func (s *service) putDay(ctx context.Context, ds domain.DayState) {
	if err := s.states.Put(ctx, ds); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStateWriteFailed, "key", state.KeyFor(ds).String(), "error", err)
	}
}

func (s *service) putIdentity(ctx context.Context, identity domain.Identity) {
	if err := s.states.PutIdentity(ctx, identity); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStateWriteFailed, "identity_id", identity.ID, "error", err)
	}
}

// publishToggle emits the events a toggle produced
func (s *service) publishToggle(before domain.Identity, result *streak.ToggleResult, taskID string) {
	after := result.Identity
	events := []event.Event{event.NewTaskToggledEvent(after.UserID, after.PathKey, taskID, result.Completed)}
	if result.LeveledUp {
		events = append(events, event.NewLevelUpEvent(after, before.Level))
	}
	if result.Evolved {
		events = append(events, event.NewEvolutionEvent(after))
	}
	if result.StreakChange != 0 {
		events = append(events, event.NewStreakChangedEvent(after, result.StreakChange))
	}
	if result.DayCompleted() && result.Milestone != nil {
		events = append(events, event.NewMilestoneEvent(after, *result.Milestone))
	}
	s.publishAsync(events...)
}

// publishAsync hands events to the bus without blocking the request
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
	logger.FromContext(ctx).Info(LogMsgJourneyShuttingDown)
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
