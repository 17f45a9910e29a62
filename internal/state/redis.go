package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// redisKeyPrefix namespaces snapshot keys in a shared redis
const redisKeyPrefix = "ascendant:state:"

// redisScanCount is the SCAN page size used when purging a user
const redisScanCount = 100

// RedisStore shares snapshots between instances through redis
type RedisStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisClient connects to addr and checks the connection
func NewRedisClient(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisStore creates a store backed by rdb. Snapshots expire after ttl.
func NewRedisStore(rdb *goredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(key Key) string {
	return redisKeyPrefix + key.String()
}

// Get loads and decodes a snapshot
func (r *RedisStore) Get(ctx context.Context, key Key) (domain.DayState, bool, error) {
	e, found, err := r.get(ctx, redisKey(key))
	if err != nil || !found {
		return domain.DayState{}, false, err
	}
	return e.State, true, nil
}

// Put encodes and stores a snapshot
func (r *RedisStore) Put(ctx context.Context, s domain.DayState) error {
	return r.set(ctx, redisKey(KeyFor(s)), entry{Version: SchemaVersion, State: s, CachedAt: time.Now().UTC()})
}

// GetIdentity loads and decodes an identity snapshot
func (r *RedisStore) GetIdentity(ctx context.Context, userID, identityID string) (domain.Identity, bool, error) {
	k := redisKeyPrefix + identityKey(userID, identityID)
	e, found, err := r.get(ctx, k)
	if err != nil || !found {
		return domain.Identity{}, false, err
	}
	if e.Identity == nil {
		_ = r.rdb.Del(ctx, k).Err()
		return domain.Identity{}, false, nil
	}
	return *e.Identity, true, nil
}

// PutIdentity encodes and stores an identity snapshot
func (r *RedisStore) PutIdentity(ctx context.Context, identity domain.Identity) error {
	return r.set(ctx, redisKeyPrefix+identityKey(identity.UserID, identity.ID),
		entry{Version: SchemaVersion, Identity: &identity, CachedAt: time.Now().UTC()})
}

func (r *RedisStore) set(ctx context.Context, key string, e entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// get returns the decoded entry at key. Unreadable or foreign-version entries are deleted and reported as misses.
func (r *RedisStore) get(ctx context.Context, key string) (entry, bool, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.Version != SchemaVersion {
		logger.FromContext(ctx).Warn("Dropping unreadable snapshot", "key", key, "error", err)
		_ = r.rdb.Del(ctx, key).Err()
		return entry{}, false, nil
	}
	return e, true, nil
}

// Delete removes one snapshot
func (r *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := r.rdb.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// PurgeUser scans for the user's keys and deletes them
func (r *RedisStore) PurgeUser(ctx context.Context, userID string) error {
	iter := r.rdb.Scan(ctx, 0, redisKeyPrefix+userID+":*", redisScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the redis client
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
