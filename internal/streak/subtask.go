package streak

import (
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// SubtaskInput is the snapshot a subtask toggle operates on
type SubtaskInput struct {
	Day       domain.DayState
	TaskID    string
	SubtaskID string
}

// SubtaskResult is the new day snapshot after a subtask toggle
type SubtaskResult struct {
	Day       domain.DayState
	Completed bool
	// ParentShouldComplete is set when this toggle checked the last open subtask of an
	// unfinished task. The caller decides whether to toggle the parent.
	ParentShouldComplete bool
}

// ToggleSubtask flips a single subtask. It never changes the parent task, rewards or streak.
func (e *Engine) ToggleSubtask(in SubtaskInput) (*SubtaskResult, error) {
	taskIdx := in.Day.TaskIndex(in.TaskID)
	if taskIdx < 0 {
		return nil, fmt.Errorf(ErrMsgTaskNotFoundFmt, in.TaskID, in.Day.PathKey, in.Day.Day.Format(domain.DayLayout), domain.ErrTaskNotFound)
	}
	subIdx := in.Day.Tasks[taskIdx].SubtaskIndex(in.SubtaskID)
	if subIdx < 0 {
		return nil, fmt.Errorf(ErrMsgSubtaskNotFoundFmt, in.SubtaskID, in.TaskID, domain.ErrSubtaskNotFound)
	}

	day := in.Day.Clone()
	task := &day.Tasks[taskIdx]
	sub := &task.Subtasks[subIdx]
	sub.Completed = !sub.Completed

	return &SubtaskResult{
		Day:                  day,
		Completed:            sub.Completed,
		ParentShouldComplete: sub.Completed && !task.Completed && task.AllSubtasksComplete(),
	}, nil
}
