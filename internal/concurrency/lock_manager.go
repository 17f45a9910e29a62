package concurrency

import (
	"slices"
	"sync"
)

// LockManager hands out one mutex per key. Callers use it to serialize mutations of the
// same user and path within this process.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// WithLocks runs fn while holding the locks for every key. Keys are taken in sorted order so
// two callers locking overlapping sets cannot deadlock.
func (lm *LockManager) WithLocks(keys []string, fn func() error) error {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, key := range sorted {
		mu := lm.GetLock(key)
		mu.Lock()
		defer mu.Unlock()
	}
	return fn()
}

// PathKey builds the lock key for a user's path
func PathKey(userID, pathID string) string {
	return userID + ":" + pathID
}
