package domain

import (
	"encoding/json"
	"time"
)

// ActivityEntry is one persisted game event
type ActivityEntry struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	UserID    string          `json:"user_id,omitempty"`
	Version   string          `json:"version"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ActivityFilter narrows an activity query. Zero fields match everything.
type ActivityFilter struct {
	UserID    string
	EventType string
	Since     *time.Time
	Limit     int
}
