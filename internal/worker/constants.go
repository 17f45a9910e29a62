package worker

import "time"

// ============================================================================
// Pool Configuration
// ============================================================================

const (
	// DefaultJobTimeout bounds a single background job
	DefaultJobTimeout = 10 * time.Second
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgPoolStopped       = "Worker pool stopped"
	LogMsgEnqueueRejected   = "Job rejected, worker pool stopped"
)

// ============================================================================
// Log Messages - Day Rollover Worker
// ============================================================================

const (
	LogMsgRolloverStarting      = "Day rollover starting"
	LogMsgRolloverCompleted     = "Day rollover completed"
	LogMsgRolloverFailed        = "Day rollover failed"
	LogMsgRolloverStandby       = "Day rollover standby, next check scheduled"
	LogMsgRolloverApproach      = "Day rollover scheduled"
	LogMsgRolloverManualTrigger = "Day rollover manually triggered"
	LogMsgRolloverShuttingDown  = "Shutting down day rollover worker"
	LogMsgRolloverCancelled     = "Cancelled pending day rollover"
	LogMsgRolloverShutdownDone  = "Day rollover worker shutdown complete"
	LogMsgRolloverShutdownSlow  = "Day rollover worker shutdown timeout, a rollover may still be running"
)

// Two-stage scheduling windows
const (
	// standbyThreshold is how far from the boundary the worker switches to the final timer
	standbyThreshold = time.Hour
	// standbyLead is how long before the boundary the standby timer wakes up
	standbyLead = 45 * time.Minute
	// earlyTriggerTolerance is the largest early fire treated as on time
	earlyTriggerTolerance = 10 * time.Second
	// lateTriggerWindow is the remaining time above which a fire is considered late, not early
	lateTriggerWindow = 23 * time.Hour
)

// ErrMsg constants
const (
	ErrMsgPoolStopped = "worker pool stopped"
)
