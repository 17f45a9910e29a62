package domain

import "time"

// Seal tracks consistency for one path as cumulative active days
type Seal struct {
	UserID          string    `json:"user_id"`
	PathID          string    `json:"path_id"`
	TotalDaysActive int       `json:"total_days_active"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SealProgress is the derived view of a seal
type SealProgress struct {
	TotalDaysActive int     `json:"total_days_active"`
	Level           int     `json:"level"`
	ProgressToNext  float64 `json:"progress_to_next"`
	DaysToNextLevel int     `json:"days_to_next_level"`
	Multiplier      float64 `json:"multiplier"`
}
