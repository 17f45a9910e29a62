package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/repository"
	"github.com/osse101/Ascendant_Go/internal/repository/repotest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "ascendant.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestStore(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Store {
		return openTempStore(t)
	})
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ascendant.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = store.UpdateProfile(ctx, "nobody", domain.ProfileUpdate{CoinsDelta: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = store.sqlDB.ExecContext(ctx, `INSERT INTO profiles (user_id, username, coins) VALUES ('u1', 'alice', 5)`)
	require.NoError(t, err)
	store.Close()

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	profile, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, profile.Coins)
	require.NoError(t, store.Ping(ctx))
}
