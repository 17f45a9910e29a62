package eventlog

import "time"

// Defaults for the history query
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// DefaultRetention is how long entries are kept when no retention is configured
const DefaultRetention = 30 * 24 * time.Hour

// Log messages - service events
const (
	LogMsgPayloadEncodeFailed = "Event payload could not be encoded, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
	LogMsgSubscribed          = "Activity log subscribed to events"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgLogEventFailed    = "failed to log %s event: %w"
	ErrMsgListHistoryFailed = "failed to list history: %w"
	ErrMsgCleanupFailed     = "failed to clean up event log: %w"
)
