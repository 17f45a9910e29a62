package streak

// Error message formats
const (
	ErrMsgTaskNotFoundFmt    = "task %q not in day %s/%s: %w"
	ErrMsgSubtaskNotFoundFmt = "subtask %q not in task %q: %w"
)
