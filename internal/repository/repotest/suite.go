// Package repotest holds the behavioral checks every repository.Store backend must pass
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/repository"
)

// Factory returns an empty, migrated store. Cleanup is the factory's job.
type Factory func(t *testing.T) repository.Store

// Run exercises each repository contract against stores built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("Profile", func(t *testing.T) { testProfile(t, newStore(t)) })
	t.Run("Identity", func(t *testing.T) { testIdentity(t, newStore(t)) })
	t.Run("Progress", func(t *testing.T) { testProgress(t, newStore(t)) })
	t.Run("StaleRevisions", func(t *testing.T) { testStaleRevisions(t, newStore(t)) })
	t.Run("Seal", func(t *testing.T) { testSeal(t, newStore(t)) })
	t.Run("Inventory", func(t *testing.T) { testInventory(t, newStore(t)) })
	t.Run("EconomyTx", func(t *testing.T) { testEconomyTx(t, newStore(t)) })
	t.Run("ResetAccount", func(t *testing.T) { testResetAccount(t, newStore(t)) })
	t.Run("DayCycle", func(t *testing.T) { testDayCycle(t, newStore(t)) })
	t.Run("ActivityLog", func(t *testing.T) { testActivityLog(t, newStore(t)) })
}

func seedProfile(t *testing.T, store repository.Store, userID string, coins int) {
	t.Helper()
	_, err := store.CreateProfile(context.Background(), domain.Profile{UserID: userID, Username: userID, Coins: coins})
	require.NoError(t, err)
}

func seedIdentity(t *testing.T, store repository.Store, userID, pathKey string) domain.Identity {
	t.Helper()
	identity := domain.Identity{
		ID:            uuid.NewString(),
		UserID:        userID,
		PathKey:       pathKey,
		Level:         1,
		XPToNextLevel: 100,
		Stage:         domain.StageNovice,
	}
	require.NoError(t, store.CreateIdentity(context.Background(), identity))
	return identity
}

func testProfile(t *testing.T, store repository.Store) {
	ctx := context.Background()

	_, err := store.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	created, err := store.CreateProfile(ctx, domain.Profile{
		UserID:   "u1",
		Username: "alice",
		Coins:    50,
		Stats:    map[domain.StatDimension]int{domain.StatMind: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, created.Coins)
	assert.Equal(t, 3, created.Stats[domain.StatMind])

	// Creating again leaves the stored row untouched
	again, err := store.CreateProfile(ctx, domain.Profile{UserID: "u1", Username: "other", Coins: 999})
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
	assert.Equal(t, 50, again.Coins)

	name := "alice2"
	updated, err := store.UpdateProfile(ctx, "u1", domain.ProfileUpdate{
		Username:   &name,
		CoinsDelta: -80,
		StarsDelta: 2,
		StatDeltas: map[domain.StatDimension]int{domain.StatBody: 4, domain.StatMind: -10},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, 0, updated.Coins, "coins clamp at zero")
	assert.Equal(t, 2, updated.Stars)
	assert.Equal(t, 4, updated.Stats[domain.StatBody])
	assert.Equal(t, 0, updated.Stats[domain.StatMind])

	// A reward reversed after part of it was spent stops at zero
	for _, delta := range []int{30, -20, -30} {
		updated, err = store.UpdateProfile(ctx, "u1", domain.ProfileUpdate{CoinsDelta: delta})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, updated.Coins)

	_, err = store.UpdateProfile(ctx, "ghost", domain.ProfileUpdate{CoinsDelta: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	seedProfile(t, store, "u0", 0)
	ids, err := store.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u0", "u1"}, ids)
}

func testIdentity(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 0)

	first := seedIdentity(t, store, "u1", "athlete")
	seedIdentity(t, store, "u1", "scholar")

	dup := first
	dup.ID = uuid.NewString()
	err := store.CreateIdentity(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrPathAlreadySelected)

	got, err := store.GetIdentity(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "athlete", got.PathKey)
	assert.Equal(t, domain.StageNovice, got.Stage)

	_, err = store.GetIdentity(ctx, "someone-else", first.ID)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)

	level, streak, stage := 5, 7, domain.StageApprentice
	require.NoError(t, store.UpdateIdentity(ctx, first.ID, domain.IdentityUpdate{Level: &level, Streak: &streak, Stage: &stage}))

	got, err = store.GetIdentity(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Level)
	assert.Equal(t, 7, got.Streak)
	assert.Equal(t, domain.StageApprentice, got.Stage)
	assert.Equal(t, 100, got.XPToNextLevel, "unset fields keep their value")

	err = store.UpdateIdentity(ctx, "missing", domain.IdentityUpdate{Level: &level})
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)

	list, err := store.ListIdentities(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func testProgress(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 0)
	identity := seedIdentity(t, store, "u1", "athlete")
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.GetDailyProgress(ctx, "u1", identity.ID, day)
	assert.ErrorIs(t, err, domain.ErrDayNotFound)

	progress := domain.DailyProgress{
		UserID:     "u1",
		PathID:     identity.ID,
		Day:        day,
		TotalTasks: 2,
		Status:     domain.DayStatusPending,
		Tasks: []domain.Task{
			{ID: "t1", Title: "Run", Reward: domain.Reward{XP: 10}},
			{ID: "t2", Title: "Stretch", Subtasks: []domain.Subtask{{ID: "s1", Title: "Legs"}}},
		},
	}
	require.NoError(t, store.UpsertDailyProgress(ctx, progress))

	progress.Tasks[0].Completed = true
	progress.CompletedCount = 1
	progress.MilestoneAward = &domain.MilestoneAward{Streak: 7, Coins: 20}
	require.NoError(t, store.UpsertDailyProgress(ctx, progress))

	got, err := store.GetDailyProgress(ctx, "u1", identity.ID, day.Add(5*time.Hour))
	require.NoError(t, err)
	assert.True(t, got.Day.Equal(day))
	assert.Equal(t, 1, got.CompletedCount)
	require.Len(t, got.Tasks, 2)
	assert.True(t, got.Tasks[0].Completed)
	assert.Equal(t, "s1", got.Tasks[1].Subtasks[0].ID)
	require.NotNil(t, got.MilestoneAward)
	assert.Equal(t, 20, got.MilestoneAward.Coins)
}

func testStaleRevisions(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 0)
	identity := seedIdentity(t, store, "u1", "scholar")
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("daily progress", func(t *testing.T) {
		newer := domain.DailyProgress{
			UserID: "u1", PathID: identity.ID, Day: day, TotalTasks: 2, CompletedCount: 2,
			Status: domain.DayStatusCompleted, Revision: 20,
			Tasks: []domain.Task{{ID: "a", Completed: true}, {ID: "b", Completed: true}},
		}
		older := newer
		older.CompletedCount = 1
		older.Status = domain.DayStatusPending
		older.Revision = 10
		older.Tasks = []domain.Task{{ID: "a", Completed: true}, {ID: "b"}}

		require.NoError(t, store.UpsertDailyProgress(ctx, newer))
		require.NoError(t, store.UpsertDailyProgress(ctx, older))

		got, err := store.GetDailyProgress(ctx, "u1", identity.ID, day)
		require.NoError(t, err)
		assert.Equal(t, domain.DayStatusCompleted, got.Status)
		assert.Equal(t, 2, got.CompletedCount)
		assert.Equal(t, int64(20), got.Revision)
	})

	t.Run("identity", func(t *testing.T) {
		newer := identity
		newer.XP, newer.Streak, newer.Revision = 40, 2, 20
		older := identity
		older.XP, older.Streak, older.Revision = 10, 1, 10

		require.NoError(t, store.UpdateIdentity(ctx, identity.ID, domain.UpdateFrom(newer)))
		require.NoError(t, store.UpdateIdentity(ctx, identity.ID, domain.UpdateFrom(older)), "stale writes are dropped quietly")

		got, err := store.GetIdentity(ctx, "u1", identity.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, got.XP)
		assert.Equal(t, 2, got.Streak)
		assert.Equal(t, int64(20), got.Revision)

		streak := 0
		require.NoError(t, store.UpdateIdentity(ctx, identity.ID, domain.IdentityUpdate{Streak: &streak}))
		got, err = store.GetIdentity(ctx, "u1", identity.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Streak, "unversioned updates always apply")

		missing := int64(99)
		err = store.UpdateIdentity(ctx, "nope", domain.IdentityUpdate{Streak: &streak, Revision: &missing})
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	})
}

func testSeal(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 0)
	identity := seedIdentity(t, store, "u1", "athlete")

	seals, err := store.ListSeals(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, seals)

	seal, err := store.AddSealDays(ctx, "u1", identity.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seal.TotalDaysActive)

	seal, err = store.AddSealDays(ctx, "u1", identity.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, seal.TotalDaysActive)

	seal, err = store.AddSealDays(ctx, "u1", identity.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, seal.TotalDaysActive)

	seals, err = store.ListSeals(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, seals, 1)
}

func testInventory(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 100)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	a := domain.InventoryItem{ID: uuid.New(), UserID: "u1", TemplateID: "streak_shield", Quantity: 1, IsActive: true, AcquiredAt: now}
	b := domain.InventoryItem{ID: uuid.New(), UserID: "u1", TemplateID: "xp_scroll", Quantity: 1, IsActive: true, AcquiredAt: now.Add(time.Minute), ExpiresAt: &expires}
	require.NoError(t, tx.AddInventoryItem(ctx, a))
	require.NoError(t, tx.AddInventoryItem(ctx, b))
	require.NoError(t, tx.Commit(ctx))

	items, err := store.GetInventory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	require.NotNil(t, items[1].ExpiresAt)
	assert.True(t, items[1].ExpiresAt.Equal(expires))

	require.NoError(t, store.MarkItemUsed(ctx, "u1", a.ID, now))
	err = store.MarkItemUsed(ctx, "u1", a.ID, now)
	assert.ErrorIs(t, err, domain.ErrItemAlreadyUsed)
	err = store.MarkItemUsed(ctx, "u1", uuid.New(), now)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	used, err := store.GetInventoryItem(ctx, "u1", a.ID)
	require.NoError(t, err)
	assert.True(t, used.IsUsed)
	assert.False(t, used.IsActive)
	require.NotNil(t, used.UsedAt)
	assert.True(t, used.UsedAt.Equal(now))

	_, err = store.GetInventoryItem(ctx, "u2", a.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	n, err := store.DeleteInventoryItems(ctx, "u1", []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.DeleteInventoryItems(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testEconomyTx(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 100)

	t.Run("rollback discards", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)

		profile, err := tx.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 100, profile.Coins)

		_, err = tx.UpdateProfile(ctx, "u1", domain.ProfileUpdate{CoinsDelta: -40})
		require.NoError(t, err)
		require.NoError(t, tx.AddInventoryItem(ctx, domain.InventoryItem{ID: uuid.New(), UserID: "u1", TemplateID: "rest_pass", Quantity: 1, IsActive: true, AcquiredAt: time.Now().UTC()}))
		require.NoError(t, tx.Rollback(ctx))

		profile, err = store.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 100, profile.Coins)
		items, err := store.GetInventory(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("commit persists and rollback after commit is a no-op", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		repository.SafeRollback(ctx, tx)

		tx, err = store.BeginTx(ctx)
		require.NoError(t, err)
		updated, err := tx.UpdateProfile(ctx, "u1", domain.ProfileUpdate{CoinsDelta: -40})
		require.NoError(t, err)
		assert.Equal(t, 60, updated.Coins)
		inv, err := tx.GetInventory(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, inv)
		require.NoError(t, tx.Commit(ctx))
		assert.NoError(t, tx.Rollback(ctx))

		profile, err := store.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 60, profile.Coins)
	})

	t.Run("missing user", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		_, err = tx.GetProfile(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func testResetAccount(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 100)
	seedProfile(t, store, "u2", 100)
	identity := seedIdentity(t, store, "u1", "athlete")
	other := seedIdentity(t, store, "u2", "athlete")
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, id := range []domain.Identity{identity, other} {
		require.NoError(t, store.UpsertDailyProgress(ctx, domain.DailyProgress{UserID: id.UserID, PathID: id.ID, Day: day, Status: domain.DayStatusPending}))
		_, err := store.AddSealDays(ctx, id.UserID, id.ID, 3)
		require.NoError(t, err)
	}
	_, err := store.UpdateProfile(ctx, "u1", domain.ProfileUpdate{StarsDelta: 5, StatDeltas: map[domain.StatDimension]int{domain.StatWill: 2}})
	require.NoError(t, err)

	require.NoError(t, store.ResetAccount(ctx, "u1"))

	profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.Username)
	assert.Zero(t, profile.Coins)
	assert.Zero(t, profile.Stars)
	assert.Zero(t, profile.Stats[domain.StatWill])

	identities, err := store.ListIdentities(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, identities)
	seals, err := store.ListSeals(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, seals)
	_, err = store.GetDailyProgress(ctx, "u1", identity.ID, day)
	assert.ErrorIs(t, err, domain.ErrDayNotFound)

	// Other users are untouched
	others, err := store.ListIdentities(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
	_, err = store.GetDailyProgress(ctx, "u2", other.ID, day)
	assert.NoError(t, err)
}

func testDayCycle(t *testing.T, store repository.Store) {
	ctx := context.Background()
	seedProfile(t, store, "u1", 0)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	claimed, err := store.ClaimDayAdvance(ctx, "u1", day)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = store.ClaimDayAdvance(ctx, "u1", day.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed, "same day twice")

	claimed, err = store.ClaimDayAdvance(ctx, "u1", day.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.False(t, claimed, "earlier day")

	claimed, err = store.ClaimDayAdvance(ctx, "u1", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = store.ClaimDayAdvance(ctx, "ghost", day)
	require.NoError(t, err)
	assert.False(t, claimed)

	next := day.AddDate(0, 0, 1)
	require.NoError(t, store.ReleaseDayAdvance(ctx, "u1", day), "not the last advanced day")
	claimed, err = store.ClaimDayAdvance(ctx, "u1", next)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, store.ReleaseDayAdvance(ctx, "u1", next))
	claimed, err = store.ClaimDayAdvance(ctx, "u1", next)
	require.NoError(t, err)
	assert.True(t, claimed, "released day can be claimed again")

	assert.NoError(t, store.ReleaseDayAdvance(ctx, "ghost", next))
}

func testActivityLog(t *testing.T, store repository.Store) {
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	entries := []domain.ActivityEntry{
		{EventType: "task.toggled", UserID: "u1", Version: "1.0", Payload: []byte(`{"user_id":"u1","task_id":"t1"}`), CreatedAt: base},
		{EventType: "shop.item_purchased", UserID: "u1", Version: "1.0", Payload: []byte(`{"user_id":"u1"}`), CreatedAt: base.Add(time.Hour)},
		{EventType: "task.toggled", UserID: "u2", Version: "1.0", Payload: []byte(`{"user_id":"u2"}`), CreatedAt: base.Add(2 * time.Hour)},
		{EventType: "day.advanced", Version: "1.0", CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, store.LogActivity(ctx, e))
	}

	all, err := store.ListActivity(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "day.advanced", all[0].EventType, "newest first")
	assert.Empty(t, all[0].UserID)
	assert.JSONEq(t, `{}`, string(all[0].Payload))

	mine, err := store.ListActivity(ctx, domain.ActivityFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "shop.item_purchased", mine[0].EventType)
	assert.JSONEq(t, `{"user_id":"u1","task_id":"t1"}`, string(mine[1].Payload))
	assert.True(t, base.Equal(mine[1].CreatedAt))
	assert.NotZero(t, mine[1].ID)

	toggles, err := store.ListActivity(ctx, domain.ActivityFilter{EventType: "task.toggled", Limit: 1})
	require.NoError(t, err)
	require.Len(t, toggles, 1)
	assert.Equal(t, "u2", toggles[0].UserID)

	since := base.Add(90 * time.Minute)
	recent, err := store.ListActivity(ctx, domain.ActivityFilter{Since: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	purged, err := store.PurgeActivityBefore(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	left, err := store.ListActivity(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, left, 2)
}
