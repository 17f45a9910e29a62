package domain

import "time"

// NextRevision returns the revision for a snapshot derived from one at prev. Revisions follow
// the wall clock so a write made later by another component outranks earlier queued writes.
func NextRevision(prev int64, now time.Time) int64 {
	if ns := now.UnixNano(); ns > prev {
		return ns
	}
	return prev + 1
}
