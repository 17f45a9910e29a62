package journey

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/clock"
	"github.com/osse101/Ascendant_Go/internal/concurrency"
	"github.com/osse101/Ascendant_Go/internal/database/sqlite"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/metrics"
	"github.com/osse101/Ascendant_Go/internal/state"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

var start = time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store  *sqlite.Store
	states *state.MemoryStore
	clock  *clock.SimulatedClock
	bus    *event.MemoryBus
	svc    Service

	mu     sync.Mutex
	events []event.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "journey.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	f := &fixture{
		store:  store,
		states: state.NewMemoryStore(100, time.Hour),
		clock:  clock.NewSimulatedClock(start),
		bus:    event.NewMemoryBus(),
	}
	for _, typ := range []event.Type{event.TaskToggled, event.IdentityLeveledUp, event.StreakChanged, event.MilestoneReached} {
		f.bus.Subscribe(typ, func(_ context.Context, evt event.Event) error {
			f.mu.Lock()
			f.events = append(f.events, evt)
			f.mu.Unlock()
			return nil
		})
	}
	f.svc = NewService(store, f.states, gamedata.Default(), f.clock, 0, concurrency.NewLockManager(), inlineQueue{}, f.bus)

	_, err = store.CreateProfile(context.Background(), domain.Profile{UserID: "u1", Username: "alice"})
	require.NoError(t, err)
	return f
}

func (f *fixture) eventTypes(t *testing.T) []event.Type {
	t.Helper()
	require.NoError(t, f.svc.Shutdown(context.Background()))
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]event.Type, 0, len(f.events))
	for _, evt := range f.events {
		types = append(types, evt.Type)
	}
	return types
}

func (f *fixture) selectScholar(t *testing.T) domain.Identity {
	t.Helper()
	identity, err := f.svc.SelectPath(context.Background(), "u1", "scholar")
	require.NoError(t, err)
	return *identity
}

func TestSelectPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	identity := f.selectScholar(t)
	assert.Equal(t, "scholar", identity.PathKey)
	assert.Equal(t, 1, identity.Level)
	assert.Equal(t, 100, identity.XPToNextLevel)
	assert.Equal(t, domain.StageNovice, identity.Stage)

	_, err := f.svc.SelectPath(ctx, "u1", "Path of the Scholar")
	assert.ErrorIs(t, err, domain.ErrPathAlreadySelected)

	_, err = f.svc.SelectPath(ctx, "u1", "juggler")
	assert.ErrorIs(t, err, domain.ErrPathNotFound)

	_, err = f.svc.SelectPath(ctx, "nobody", "sage")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	identities, err := f.svc.GetIdentities(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, identities, 1)
	assert.Len(t, f.svc.ListPaths(), len(gamedata.Default().Paths))
}

func TestGetToday_FreshDay(t *testing.T) {
	f := newFixture(t)
	identity := f.selectScholar(t)

	today, err := f.svc.GetToday(context.Background(), "u1", identity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStatusPending, today.Day.Status)
	assert.True(t, today.Day.Day.Equal(time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)))
	require.Len(t, today.Day.Tasks, 3)
	assert.Equal(t, "study", today.Day.Tasks[0].ID)
	assert.Equal(t, domain.StatMind, today.Day.Tasks[0].Reward.Stat)
	assert.Equal(t, 3, today.Progress.TotalTasks)

	_, err = f.svc.GetToday(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestToggleTask_CreditsAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	outcome, err := f.svc.ToggleTask(ctx, "u1", identity.ID, "read")
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
	assert.Equal(t, 25, outcome.Identity.XP)
	assert.Equal(t, 5, outcome.Delta.Coins)
	assert.Zero(t, outcome.StreakChange)

	profile, err := f.store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, profile.Coins)
	assert.Equal(t, 1, profile.Stats[domain.StatMind])

	stored, err := f.store.GetIdentity(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.XP)

	progress, err := f.store.GetDailyProgress(ctx, "u1", identity.ID, start)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedCount)

	// Toggling back restores every total
	outcome, err = f.svc.ToggleTask(ctx, "u1", identity.ID, "read")
	require.NoError(t, err)
	assert.False(t, outcome.Completed)
	assert.Zero(t, outcome.Identity.XP)

	profile, err = f.store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, profile.Coins)
	assert.Zero(t, profile.Stats[domain.StatMind])
}

func TestToggleTask_CompletesDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	var outcome *ToggleOutcome
	var err error
	for _, id := range []string{"study", "read", "journal"} {
		outcome, err = f.svc.ToggleTask(ctx, "u1", identity.ID, id)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, outcome.StreakChange)
	assert.Equal(t, 1, outcome.Identity.Streak)
	assert.Equal(t, domain.DayStatusCompleted, outcome.Day.Status)
	assert.Equal(t, 90, outcome.Identity.XP)

	progress, err := f.store.GetDailyProgress(ctx, "u1", identity.ID, start)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStatusCompleted, progress.Status)
	assert.Equal(t, 3, progress.CompletedCount)

	profile, err := f.store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 20, profile.Coins)
	assert.Equal(t, 4, profile.Stats[domain.StatMind])

	types := f.eventTypes(t)
	assert.Contains(t, types, event.StreakChanged)
	assert.Equal(t, 3, countType(types, event.TaskToggled))
}

func TestToggleTask_LevelUpEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	level := 1
	xp := 95
	require.NoError(t, f.store.UpdateIdentity(ctx, identity.ID, domain.IdentityUpdate{Level: &level, XP: &xp}))
	require.NoError(t, f.states.PurgeUser(ctx, "u1"))

	outcome, err := f.svc.ToggleTask(ctx, "u1", identity.ID, "journal")
	require.NoError(t, err)
	assert.True(t, outcome.LeveledUp)
	assert.Equal(t, 2, outcome.Identity.Level)
	assert.Equal(t, 10, outcome.Identity.XP)

	assert.Contains(t, f.eventTypes(t), event.IdentityLeveledUp)
}

func TestToggleSubtask_LastSubtaskCompletesParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	first, err := f.svc.ToggleSubtask(ctx, "u1", identity.ID, "study", "review")
	require.NoError(t, err)
	assert.True(t, first.Completed)
	assert.Nil(t, first.Parent)

	progress, err := f.store.GetDailyProgress(ctx, "u1", identity.ID, start)
	require.NoError(t, err)
	assert.True(t, progress.Tasks[0].Subtasks[0].Completed)
	assert.False(t, progress.Tasks[0].Completed)

	last, err := f.svc.ToggleSubtask(ctx, "u1", identity.ID, "study", "focus_block")
	require.NoError(t, err)
	require.NotNil(t, last.Parent)
	assert.True(t, last.Parent.Completed)
	assert.Equal(t, 50, last.Parent.Identity.XP)
	assert.True(t, last.Day.Tasks[0].Completed)

	// Unchecking a subtask leaves the parent completed
	undo, err := f.svc.ToggleSubtask(ctx, "u1", identity.ID, "study", "review")
	require.NoError(t, err)
	assert.False(t, undo.Completed)
	assert.True(t, undo.Day.Tasks[0].Completed)
}

func TestToggle_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	_, err := f.svc.ToggleTask(ctx, "u1", identity.ID, "nap")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = f.svc.ToggleSubtask(ctx, "u1", identity.ID, "study", "nap")
	assert.ErrorIs(t, err, domain.ErrSubtaskNotFound)

	_, err = f.svc.ToggleTask(ctx, "u1", "no-such-identity", "read")
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestGetToday_RebuildsFromDatabaseAfterCacheLoss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	_, err := f.svc.ToggleTask(ctx, "u1", identity.ID, "read")
	require.NoError(t, err)
	require.NoError(t, f.states.PurgeUser(ctx, "u1"))

	today, err := f.svc.GetToday(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.True(t, today.Day.Tasks[1].Completed)
	assert.Equal(t, 25, today.Identity.XP)
}

func TestGetToday_NewCalendarDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	_, err := f.svc.ToggleTask(ctx, "u1", identity.ID, "read")
	require.NoError(t, err)

	f.clock.AdvanceDays(1)
	today, err := f.svc.GetToday(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.Zero(t, today.Day.CompletedCount())
	assert.Equal(t, 25, today.Identity.XP, "identity carries over")
}

func TestToggleTask_ConcurrentTogglesAllApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	var wg sync.WaitGroup
	for _, id := range []string{"study", "read", "journal"} {
		wg.Add(1)
		go func(taskID string) {
			defer wg.Done()
			_, err := f.svc.ToggleTask(ctx, "u1", identity.ID, taskID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	today, err := f.svc.GetToday(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStatusCompleted, today.Day.Status)
	assert.Equal(t, 1, today.Identity.Streak)
	assert.Equal(t, 90, today.Identity.XP)
}

func TestToggleTask_PersistenceFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	svc := NewService(failingProfileStore{f.store}, f.states, gamedata.Default(), f.clock, 0, nil, inlineQueue{}, nil)
	before := testutil.ToFloat64(metrics.PersistenceFailures.WithLabelValues(OpUpdateProfile))

	outcome, err := svc.ToggleTask(ctx, "u1", identity.ID, "read")
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PersistenceFailures.WithLabelValues(OpUpdateProfile)))

	stored, err := f.store.GetIdentity(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.XP, "other writes still land")
}

func TestToggleTask_RejectedJobsAreCounted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	queue := new(MockJobQueue)
	queue.On("TryEnqueue", mock.Anything).Return(false)
	svc := NewService(f.store, f.states, gamedata.Default(), f.clock, 0, nil, queue, nil)

	before := testutil.ToFloat64(metrics.PersistenceFailures.WithLabelValues(OpUpsertDailyProgress))
	_, err := svc.ToggleTask(ctx, "u1", identity.ID, "read")
	require.NoError(t, err)

	queue.AssertNumberOfCalls(t, "TryEnqueue", 3)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PersistenceFailures.WithLabelValues(OpUpsertDailyProgress)))

	today, err := svc.GetToday(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.True(t, today.Day.Tasks[1].Completed, "optimistic snapshot holds the toggle")
}

func TestToggleTask_FullQueueDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	pool := worker.NewPool(1, 1)
	pool.Start()
	release := make(chan struct{})
	t.Cleanup(func() {
		close(release)
		pool.Stop()
	})
	for i := 0; i < 2; i++ {
		require.NoError(t, pool.Enqueue(worker.NewJob("busy", func(context.Context) error {
			<-release
			return nil
		})))
	}

	svc := NewService(f.store, f.states, gamedata.Default(), f.clock, 0, nil, pool, nil)
	before := testutil.ToFloat64(metrics.PersistenceFailures.WithLabelValues(OpUpsertDailyProgress))

	done := make(chan error, 1)
	go func() {
		_, err := svc.ToggleTask(ctx, "u1", identity.ID, "read")
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("toggle waited on a full persistence queue")
	}
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PersistenceFailures.WithLabelValues(OpUpsertDailyProgress)))

	today, err := svc.GetToday(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.True(t, today.Day.Tasks[1].Completed)
}

func TestToggleTask_OutOfOrderWritesKeepNewestSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := f.selectScholar(t)

	queue := &recordingQueue{}
	svc := NewService(f.store, f.states, gamedata.Default(), f.clock, 0, nil, queue, nil)
	for _, id := range []string{"study", "read", "journal"} {
		_, err := svc.ToggleTask(ctx, "u1", identity.ID, id)
		require.NoError(t, err)
	}

	// With the cached snapshots gone every job falls back to the one it captured
	require.NoError(t, f.states.PurgeUser(ctx, "u1"))
	queue.runNewestFirst(ctx)

	progress, err := f.store.GetDailyProgress(ctx, "u1", identity.ID, start)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStatusCompleted, progress.Status)
	assert.Equal(t, 3, progress.CompletedCount)

	stored, err := f.store.GetIdentity(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Streak)
	assert.Equal(t, 90, stored.XP)

	today, err := svc.GetToday(ctx, "u1", identity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStatusCompleted, today.Day.Status)
}

func countType(types []event.Type, want event.Type) int {
	n := 0
	for _, typ := range types {
		if typ == want {
			n++
		}
	}
	return n
}
