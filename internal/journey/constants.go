package journey

// Persistence operation names, used as job names and metric labels
const (
	OpUpsertDailyProgress = "upsert_daily_progress"
	OpUpdateIdentity      = "update_identity"
	OpUpdateProfile       = "update_profile"
)

// Error message formats
const (
	ErrMsgLoadIdentityFmt  = "failed to load identity %s: %w"
	ErrMsgLoadDayFmt       = "failed to load day %s: %w"
	ErrMsgCreateIdentity   = "failed to create identity: %w"
	ErrMsgGetProfileFailed = "failed to get profile: %w"
	ErrMsgListIdentities   = "failed to list identities: %w"
	ErrMsgUnknownPathFmt   = "identity %s follows unknown path %q: %w"
	ErrMsgShutdownTimedOut = "journey shutdown timed out: %w"
)

// Log messages
const (
	LogMsgSelectPathCalled    = "SelectPath called"
	LogMsgPathSelected        = "Path selected"
	LogMsgToggleTaskCalled    = "ToggleTask called"
	LogMsgToggleSubtaskCalled = "ToggleSubtask called"
	LogMsgTaskToggled         = "Task toggled"
	LogMsgParentAutoComplete  = "Last subtask checked, completing parent task"
	LogMsgStateReadFailed     = "State store read failed, falling back to database"
	LogMsgStateWriteFailed    = "State store write failed, snapshot kept only in database"
	LogMsgDayRebuilt          = "Day rebuilt from persisted progress"
	LogMsgDayCreated          = "Fresh day created from path templates"
	LogMsgPersistEnqueueFail  = "Persistence queue full or stopped, write dropped"
	LogMsgPublishFailed       = "Failed to publish event"
	LogMsgJourneyShuttingDown = "Journey service shutting down, waiting for pending events"
)
