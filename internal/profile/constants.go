package profile

// Error message formats
const (
	ErrMsgGetProfileFailed     = "failed to get profile: %w"
	ErrMsgCreateProfileFailed  = "failed to create profile: %w"
	ErrMsgListIdentitiesFailed = "failed to list identities: %w"
	ErrMsgListSealsFailed      = "failed to list seals: %w"
	ErrMsgResetAccountFailed   = "failed to reset account %s: %w"
	ErrMsgShutdownTimedOut     = "profile shutdown timed out: %w"
	ErrMsgEmptyUserID          = "user id is required: %w"
)

// Log messages
const (
	LogMsgEnsureProfileCalled = "EnsureProfile called"
	LogMsgProfileCreated      = "Profile ready"
	LogMsgResetAccountCalled  = "ResetAccount called"
	LogMsgAccountReset        = "Account reset"
	LogMsgStatePurgeFailed    = "Failed to purge cached snapshots after reset"
	LogMsgPublishFailed       = "Failed to publish event"
	LogMsgProfileShuttingDown = "Profile service shutting down, waiting for pending events"
)
