package state

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// MemoryStore is an in-process LRU with time-based expiration
type MemoryStore struct {
	lru *expirable.LRU[string, *entry]
}

// NewMemoryStore creates a store holding at most size snapshots for ttl each
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		lru: expirable.NewLRU[string, *entry](size, nil, ttl),
	}
}

// Get returns a copy of the cached snapshot. Entries from another schema version are evicted.
func (m *MemoryStore) Get(_ context.Context, key Key) (domain.DayState, bool, error) {
	k := key.String()
	e, found := m.lru.Get(k)
	if !found {
		return domain.DayState{}, false, nil
	}
	if e.Version != SchemaVersion {
		m.lru.Remove(k)
		return domain.DayState{}, false, nil
	}
	return e.State.Clone(), true, nil
}

// Put stores a copy of s
func (m *MemoryStore) Put(_ context.Context, s domain.DayState) error {
	m.lru.Add(KeyFor(s).String(), &entry{
		Version:  SchemaVersion,
		State:    s.Clone(),
		CachedAt: time.Now(),
	})
	return nil
}

// GetIdentity returns the cached identity
func (m *MemoryStore) GetIdentity(_ context.Context, userID, identityID string) (domain.Identity, bool, error) {
	k := identityKey(userID, identityID)
	e, found := m.lru.Get(k)
	if !found {
		return domain.Identity{}, false, nil
	}
	if e.Version != SchemaVersion || e.Identity == nil {
		m.lru.Remove(k)
		return domain.Identity{}, false, nil
	}
	return *e.Identity, true, nil
}

// PutIdentity stores a copy of identity
func (m *MemoryStore) PutIdentity(_ context.Context, identity domain.Identity) error {
	m.lru.Add(identityKey(identity.UserID, identity.ID), &entry{
		Version:  SchemaVersion,
		Identity: &identity,
		CachedAt: time.Now(),
	})
	return nil
}

// Delete removes one snapshot
func (m *MemoryStore) Delete(_ context.Context, key Key) error {
	m.lru.Remove(key.String())
	return nil
}

// PurgeUser removes every snapshot of userID
func (m *MemoryStore) PurgeUser(_ context.Context, userID string) error {
	prefix := userID + ":"
	for _, k := range m.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			m.lru.Remove(k)
		}
	}
	return nil
}

// Len returns the number of cached entries
func (m *MemoryStore) Len() int {
	return m.lru.Len()
}
