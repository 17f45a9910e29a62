package domain

import "time"

// DayStatus is the completion state of a path-day
type DayStatus string

const (
	DayStatusPending   DayStatus = "pending"
	DayStatusCompleted DayStatus = "completed"
)

// DayLayout is the calendar-day format used in keys and logs
const DayLayout = "2006-01-02"

// Reward describes what completing a task grants
type Reward struct {
	XP         int           `json:"xp" yaml:"xp" toml:"xp" validate:"gte=0"`
	Coins      int           `json:"coins" yaml:"coins" toml:"coins" validate:"gte=0"`
	Stat       StatDimension `json:"stat,omitempty" yaml:"stat" toml:"stat" validate:"omitempty,oneof=body mind soul will"`
	StatPoints int           `json:"stat_points,omitempty" yaml:"stat_points" toml:"stat_points" validate:"gte=0"`
}

// Subtask is an optional checklist entry beneath a task
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a unit of daily work belonging to a path-day
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Reward    Reward    `json:"reward"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
	Completed bool      `json:"completed"`
}

// SubtaskIndex returns the index of the subtask with the given id, or -1
func (t Task) SubtaskIndex(subtaskID string) int {
	for i, st := range t.Subtasks {
		if st.ID == subtaskID {
			return i
		}
	}
	return -1
}

// AllSubtasksComplete reports whether every subtask is checked. Tasks without subtasks report false.
func (t Task) AllSubtasksComplete() bool {
	if len(t.Subtasks) == 0 {
		return false
	}
	for _, st := range t.Subtasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

// DayState is the snapshot of one path's tasks for one calendar day
type DayState struct {
	UserID         string          `json:"user_id"`
	PathID         string          `json:"path_id"`
	PathKey        string          `json:"path_key"`
	Day            time.Time       `json:"day"`
	Tasks          []Task          `json:"tasks"`
	Status         DayStatus       `json:"status"`
	MilestoneAward *MilestoneAward `json:"milestone_award,omitempty"`
	// Revision orders snapshots of the same day; stores ignore writes older than what they hold
	Revision       int64           `json:"revision"`
}

// TotalTasks returns the number of tasks scheduled for the day
func (d DayState) TotalTasks() int {
	return len(d.Tasks)
}

// CompletedCount returns the number of completed tasks
func (d DayState) CompletedCount() int {
	n := 0
	for _, t := range d.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// AllComplete reports whether every task of a non-empty day is done
func (d DayState) AllComplete() bool {
	return len(d.Tasks) > 0 && d.CompletedCount() == len(d.Tasks)
}

// TaskIndex returns the index of the task with the given id, or -1
func (d DayState) TaskIndex(taskID string) int {
	for i, t := range d.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can derive a new snapshot without touching the original
func (d DayState) Clone() DayState {
	out := d
	out.Tasks = make([]Task, len(d.Tasks))
	for i, t := range d.Tasks {
		out.Tasks[i] = t
		if t.Subtasks != nil {
			out.Tasks[i].Subtasks = append([]Subtask(nil), t.Subtasks...)
		}
	}
	if d.MilestoneAward != nil {
		award := *d.MilestoneAward
		out.MilestoneAward = &award
	}
	return out
}

// Progress returns the persisted aggregate for this snapshot
func (d DayState) Progress() DailyProgress {
	return DailyProgress{
		UserID:         d.UserID,
		PathID:         d.PathID,
		Day:            d.Day,
		TotalTasks:     d.TotalTasks(),
		CompletedCount: d.CompletedCount(),
		Status:         d.Status,
		Tasks:          d.Tasks,
		MilestoneAward: d.MilestoneAward,
		Revision:       d.Revision,
	}
}

// DailyProgress is the persisted per path per day aggregate, keyed by (user, path, day)
type DailyProgress struct {
	UserID         string          `json:"user_id"`
	PathID         string          `json:"path_id"`
	Day            time.Time       `json:"day"`
	TotalTasks     int             `json:"total_tasks"`
	CompletedCount int             `json:"completed_count"`
	Status         DayStatus       `json:"status"`
	Tasks          []Task          `json:"tasks,omitempty"`
	MilestoneAward *MilestoneAward `json:"milestone_award,omitempty"`
	Revision       int64           `json:"revision"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DayFor truncates t to the start of its calendar day in t's location, returned in UTC
func DayFor(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
