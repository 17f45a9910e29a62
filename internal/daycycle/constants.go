package daycycle

// StreakShieldItemID is the shop item consumed in place of a streak reset
const StreakShieldItemID = "streak_shield"

// Step names one stage of the day cycle, in execution order
type Step string

const (
	StepCapturePreviousDay Step = "capture_previous_day"
	StepResetProgress      Step = "reset_daily_progress"
	StepRolloverItems      Step = "rollover_items"
	StepReloadAggregates   Step = "reload_aggregates"
)

// Error message formats
const (
	ErrMsgStepFailedFmt      = "day cycle step %s failed: %v"
	ErrMsgClaimFailed        = "failed to claim day advance: %w"
	ErrMsgListIdentities     = "failed to list identities: %w"
	ErrMsgListUsers          = "failed to list users: %w"
	ErrMsgLoadIdentityFmt    = "failed to load identity %s: %w"
	ErrMsgLoadProgressFmt    = "failed to load progress for %s: %w"
	ErrMsgPersistProgressFmt = "failed to persist progress for %s: %w"
	ErrMsgAddSealDayFmt      = "failed to add seal day for %s: %w"
	ErrMsgResetStreakFmt     = "failed to reset streak for %s: %w"
	ErrMsgConsumeShieldFmt   = "failed to consume streak shield %s: %w"
	ErrMsgUnknownPathFmt     = "identity %s follows unknown path %q: %w"
	ErrMsgGetInventory       = "failed to get inventory: %w"
	ErrMsgPurgeItems         = "failed to purge inventory items: %w"
	ErrMsgReloadAggregates   = "failed to reload aggregates: %w"
	ErrMsgAdvanceForAllFmt   = "%d of %d users failed to advance: %w"
	ErrMsgShutdownTimedOut   = "day cycle shutdown timed out: %w"
)

// Log messages
const (
	LogMsgAdvanceDayCalled   = "AdvanceDay called"
	LogMsgAlreadyAdvanced    = "Day already advanced for user, skipping"
	LogMsgDayAdvanced        = "Day advanced"
	LogMsgStepFailed         = "Day cycle step failed, earlier steps are kept"
	LogMsgClaimReleased      = "Day claim released, the cycle will be retried"
	LogMsgReleaseFailed      = "Failed to release day claim"
	LogMsgPreviousDayMissed  = "Previous day not completed"
	LogMsgStreakReset        = "Streak reset after missed day"
	LogMsgStreakShieldUsed   = "Streak shield consumed, streak kept"
	LogMsgSealLeveledUp      = "Seal leveled up"
	LogMsgItemsPurged        = "Purged spent inventory items"
	LogMsgAdvanceAllStarting = "Advancing day for all users"
	LogMsgAdvanceAllDone     = "Advanced day for all users"
	LogMsgAdvanceUserFailed  = "Day advance failed for user"
	LogMsgStateWriteFailed   = "State store write failed"
	LogMsgPublishFailed      = "Failed to publish event"
	LogMsgDayCycleShutdown   = "Day cycle shutting down, waiting for pending events"
)
