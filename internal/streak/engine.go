// Package streak implements the per path-day task state machine: toggling tasks and
// subtasks, the reward deltas they produce, streak transitions and milestone rewards.
//
// The engine is pure. It receives snapshots and returns new ones; persisting them is
// the caller's job.
package streak

import (
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/progression"
)

// Engine evaluates toggles against a fixed set of game tables
type Engine struct {
	tables *gamedata.Tables
}

// NewEngine creates an engine bound to tables
func NewEngine(tables *gamedata.Tables) *Engine {
	return &Engine{tables: tables}
}

// ToggleInput is the snapshot a task toggle operates on
type ToggleInput struct {
	Day      domain.DayState
	Identity domain.Identity
	TaskID   string
}

// ToggleResult is the new snapshot plus everything the toggle changed
type ToggleResult struct {
	Day      domain.DayState
	Identity domain.Identity
	// Completed is the task's state after the toggle
	Completed bool
	Delta     RewardDelta
	// StreakChange is +1 when the toggle completed the day, -1 when it reopened it
	StreakChange int
	// Milestone is the award granted by completing the day, or the award revoked by reopening it
	Milestone *domain.MilestoneAward
	LeveledUp bool
	Evolved   bool
}

// DayCompleted reports whether this toggle moved the day to completed
func (r *ToggleResult) DayCompleted() bool {
	return r.StreakChange > 0
}

// DayReopened reports whether this toggle moved a completed day back to pending
func (r *ToggleResult) DayReopened() bool {
	return r.StreakChange < 0
}

// ToggleTask flips one task. Completing it checks all of its subtasks and credits its reward;
// un-completing it clears the subtasks and debits exactly what completing credited.
// The task that completes the day increments the streak once and evaluates milestones;
// the task that reopens a completed day reverses both.
func (e *Engine) ToggleTask(in ToggleInput) (*ToggleResult, error) {
	idx := in.Day.TaskIndex(in.TaskID)
	if idx < 0 {
		return nil, fmt.Errorf(ErrMsgTaskNotFoundFmt, in.TaskID, in.Day.PathKey, in.Day.Day.Format(domain.DayLayout), domain.ErrTaskNotFound)
	}

	day := in.Day.Clone()
	identity := progression.Normalize(in.Identity)
	if day.Status == "" {
		day.Status = domain.DayStatusPending
	}

	task := &day.Tasks[idx]
	result := &ToggleResult{}

	if !task.Completed {
		task.Completed = true
		setSubtasks(task, true)
		result.Completed = true
		result.Delta = rewardDelta(task.Reward, 1)

		before := identity.Level
		identity = progression.AddXP(identity, task.Reward.XP)
		result.LeveledUp = identity.Level > before

		if day.AllComplete() && day.Status == domain.DayStatusPending {
			day.Status = domain.DayStatusCompleted
			identity.Streak++
			result.StreakChange = 1

			if award := e.EvaluateMilestones(identity.Level, identity.Streak); award != nil {
				day.MilestoneAward = award
				result.Milestone = award
				result.Delta = result.Delta.Add(awardDelta(award, 1))
			}
		}

		identity, result.Evolved = progression.CheckEvolution(identity, e.tables.PathThresholds)
	} else {
		task.Completed = false
		setSubtasks(task, false)
		result.Delta = rewardDelta(task.Reward, -1)
		identity = progression.RemoveXP(identity, task.Reward.XP)

		if day.Status == domain.DayStatusCompleted {
			day.Status = domain.DayStatusPending
			identity.Streak = max(identity.Streak-1, 0)
			result.StreakChange = -1

			if day.MilestoneAward != nil {
				result.Milestone = day.MilestoneAward
				result.Delta = result.Delta.Add(awardDelta(day.MilestoneAward, -1))
				day.MilestoneAward = nil
			}
		}
	}

	result.Day = day
	result.Identity = identity
	return result, nil
}

// EvaluateMilestones returns the award for reaching streak at level, or nil.
// The sub-milestone fires on every multiple of its period; the level milestone fires
// when the streak equals its target exactly. Both can fire on the same day and add up.
func (e *Engine) EvaluateMilestones(level, streak int) *domain.MilestoneAward {
	if streak <= 0 {
		return nil
	}

	award := &domain.MilestoneAward{Streak: streak}

	sub := e.tables.SubMilestone
	if sub.EveryDays > 0 && streak%sub.EveryDays == 0 {
		award.SubMilestone = true
		award.Coins += sub.Rewards.Coins
		award.Stars += sub.Rewards.Stars
	}

	if m, ok := e.tables.MilestoneForLevel(level); ok && streak == m.Days {
		award.FinalMilestone = true
		award.Coins += m.Rewards.Coins
		award.Stars += m.Rewards.Stars
		award.WillGain += m.WillGain
	}

	if !award.SubMilestone && !award.FinalMilestone {
		return nil
	}
	return award
}

func setSubtasks(task *domain.Task, completed bool) {
	for i := range task.Subtasks {
		task.Subtasks[i].Completed = completed
	}
}
