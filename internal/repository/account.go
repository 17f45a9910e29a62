package repository

import "context"

// Account defines destructive account-level operations
type Account interface {
	// ResetAccount deletes the user's identities, daily progress, seals and inventory
	// in one transaction. The profile row is kept with zeroed balances and stats.
	ResetAccount(ctx context.Context, userID string) error
}

// Store bundles every repository a storage backend provides
type Store interface {
	Profile
	Identity
	Progress
	Seal
	Inventory
	Economy
	Account
	DayCycle
	ActivityLog
	Ping(ctx context.Context) error
	Close()
}
