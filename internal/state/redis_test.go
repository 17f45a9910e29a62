package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

func setupRedis(t *testing.T) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping redis integration test in short mode")
	}

	ctx := context.Background()
	var container testcontainers.Container
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping redis integration test (likely Docker issue): %v", r)
			}
		}()
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
	}()
	if err != nil {
		t.Skipf("Skipping redis integration test, container failed to start: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb, err := NewRedisClient(ctx, endpoint)
	require.NoError(t, err)

	store := NewRedisStore(rdb, time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore_Integration(t *testing.T) {
	store := setupRedis(t)
	ctx := context.Background()

	s := snapshot("u1", "p1")
	_, found, err := store.Get(ctx, KeyFor(s))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, s))
	got, found, err := store.Get(ctx, KeyFor(s))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, s.Tasks, got.Tasks)
	assert.True(t, s.Day.Equal(got.Day))

	require.NoError(t, store.Put(ctx, snapshot("u1", "p2")))
	require.NoError(t, store.Put(ctx, snapshot("u2", "p1")))
	require.NoError(t, store.PurgeUser(ctx, "u1"))

	_, found, _ = store.Get(ctx, KeyFor(snapshot("u1", "p2")))
	assert.False(t, found)
	_, found, _ = store.Get(ctx, KeyFor(snapshot("u2", "p1")))
	assert.True(t, found)

	require.NoError(t, store.PutIdentity(ctx, domain.Identity{ID: "i1", UserID: "u2", Level: 4}))
	identity, found, err := store.GetIdentity(ctx, "u2", "i1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 4, identity.Level)
	require.NoError(t, store.PurgeUser(ctx, "u2"))
	_, found, _ = store.GetIdentity(ctx, "u2", "i1")
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, snapshot("u2", "p1")))
	require.NoError(t, store.Delete(ctx, KeyFor(snapshot("u2", "p1"))))
	_, found, _ = store.Get(ctx, KeyFor(snapshot("u2", "p1")))
	assert.False(t, found)
}

func TestRedisStore_DropsForeignVersion(t *testing.T) {
	store := setupRedis(t)
	ctx := context.Background()

	key := KeyFor(snapshot("u1", "p1"))
	require.NoError(t, store.rdb.Set(ctx, redisKey(key), `{"version":"0.1"}`, time.Minute).Err())

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(0), store.rdb.Exists(ctx, redisKey(key)).Val())
}
