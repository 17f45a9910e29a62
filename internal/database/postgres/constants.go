package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Profile Operations
const (
	ErrMsgFailedToGetProfile    = "failed to get profile"
	ErrMsgFailedToCreateProfile = "failed to create profile"
	ErrMsgFailedToUpdateProfile = "failed to update profile"
	ErrMsgFailedToListUsers     = "failed to list users"
	ErrMsgFailedToClaimDay      = "failed to claim day advance"
	ErrMsgFailedToReleaseDay    = "failed to release day advance"
)

// Error Messages - Identity Operations
const (
	ErrMsgFailedToCreateIdentity = "failed to create identity"
	ErrMsgFailedToGetIdentity    = "failed to get identity"
	ErrMsgFailedToListIdentities = "failed to list identities"
	ErrMsgFailedToUpdateIdentity = "failed to update identity"
)

// Error Messages - Progress Operations
const (
	ErrMsgFailedToGetProgress    = "failed to get daily progress"
	ErrMsgFailedToUpsertProgress = "failed to upsert daily progress"
	ErrMsgFailedToEncodeTasks    = "failed to encode tasks"
	ErrMsgFailedToDecodeTasks    = "failed to decode tasks"
)

// Error Messages - Seal Operations
const (
	ErrMsgFailedToListSeals = "failed to list seals"
	ErrMsgFailedToAddSeal   = "failed to add seal days"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToAddItem         = "failed to add inventory item"
	ErrMsgFailedToMarkItemUsed    = "failed to mark item used"
	ErrMsgFailedToDeleteItems     = "failed to delete inventory items"
	ErrMsgFailedToResetAccountFmt = "failed to reset account (%s)"
)

// Error Messages - Activity Log Operations
const (
	ErrMsgFailedToLogActivity   = "failed to log activity"
	ErrMsgFailedToListActivity  = "failed to list activity"
	ErrMsgFailedToPurgeActivity = "failed to purge activity"
)
