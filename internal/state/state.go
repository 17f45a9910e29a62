// Package state keeps the optimistic per-day and per-identity snapshots the journey service
// mutates. The snapshot is the source of truth for the current day; the database copy is
// written behind it by background jobs.
package state

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// SchemaVersion is stored with every cached snapshot. Bump it when domain.DayState changes
// shape so stale entries are dropped instead of decoded.
const SchemaVersion = "1.0"

// ErrStoreUnavailable wraps backend failures
var ErrStoreUnavailable = errors.New("state store unavailable")

// Key identifies one path's day for one user
type Key struct {
	UserID string
	PathID string
	Day    time.Time
}

// KeyFor returns the key of a snapshot
func KeyFor(s domain.DayState) Key {
	return Key{UserID: s.UserID, PathID: s.PathID, Day: s.Day}
}

// String renders the key as user:path:YYYY-MM-DD
func (k Key) String() string {
	return strings.Join([]string{k.UserID, k.PathID, domain.DayFor(k.Day).Format(domain.DayLayout)}, ":")
}

// identityKey renders an identity snapshot key as user:identity:<id>
func identityKey(userID, identityID string) string {
	return userID + ":identity:" + identityID
}

// Store holds day and identity snapshots. Gets report false on a miss; a miss is not an error.
type Store interface {
	Get(ctx context.Context, key Key) (domain.DayState, bool, error)
	Put(ctx context.Context, s domain.DayState) error
	Delete(ctx context.Context, key Key) error
	GetIdentity(ctx context.Context, userID, identityID string) (domain.Identity, bool, error)
	PutIdentity(ctx context.Context, identity domain.Identity) error
	// PurgeUser drops every snapshot belonging to userID
	PurgeUser(ctx context.Context, userID string) error
}

type entry struct {
	Version  string           `json:"version"`
	State    domain.DayState  `json:"state"`
	Identity *domain.Identity `json:"identity,omitempty"`
	CachedAt time.Time        `json:"cached_at"`
}
