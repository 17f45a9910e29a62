// Package gamedata holds the static game tables: milestones, evolution thresholds,
// rank bands, the shop catalog and the path definitions with their daily task templates.
// Tables are loaded once at startup and treated as read-only afterwards.
package gamedata

import (
	"time"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/progression"
	"github.com/osse101/Ascendant_Go/internal/rank"
)

// Tables is the complete set of static data consumed by the engine
type Tables struct {
	Version             string                       `json:"version" yaml:"version" toml:"version"`
	Milestones          []LevelMilestone             `json:"milestones" yaml:"milestones" toml:"milestones" validate:"required,min=1,dive"`
	SubMilestone        domain.SubMilestone          `json:"sub_milestone" yaml:"sub_milestone" toml:"sub_milestone"`
	PathThresholds      []progression.StageThreshold `json:"path_thresholds" yaml:"path_thresholds" toml:"path_thresholds" validate:"required,min=1,dive"`
	CharacterThresholds []progression.StageThreshold `json:"character_thresholds" yaml:"character_thresholds" toml:"character_thresholds" validate:"required,min=1,dive"`
	Rank                rank.Table                   `json:"rank" yaml:"rank" toml:"rank"`
	Shop                []domain.ShopItemTemplate    `json:"shop" yaml:"shop" toml:"shop" validate:"dive"`
	Paths               []PathDef                    `json:"paths" yaml:"paths" toml:"paths" validate:"required,min=1,dive"`
}

// LevelMilestone is the streak target that applies from Level upwards
type LevelMilestone struct {
	Level    int                     `json:"level" yaml:"level" toml:"level" validate:"gte=1"`
	Days     int                     `json:"milestone_days" yaml:"milestone_days" toml:"milestone_days" validate:"gt=0"`
	Rewards  domain.MilestoneRewards `json:"rewards" yaml:"rewards" toml:"rewards"`
	WillGain int                     `json:"will_gain" yaml:"will_gain" toml:"will_gain" validate:"gte=0"`
}

// Milestone converts the table row into the domain milestone
func (m LevelMilestone) Milestone() domain.Milestone {
	return domain.Milestone{Days: m.Days, Rewards: m.Rewards, WillGain: m.WillGain}
}

// PathDef is a selectable progression path and the tasks it schedules every day
type PathDef struct {
	Key         string               `json:"key" yaml:"key" toml:"key" validate:"required"`
	Name        string               `json:"name" yaml:"name" toml:"name" validate:"required"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Stat        domain.StatDimension `json:"stat" yaml:"stat" toml:"stat" validate:"required,oneof=body mind soul will"`
	Tasks       []TaskTemplate       `json:"tasks" yaml:"tasks" toml:"tasks" validate:"required,min=1,dive"`
}

// TaskTemplate is instantiated into a domain.Task for each new day
type TaskTemplate struct {
	ID       string            `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title    string            `json:"title" yaml:"title" toml:"title" validate:"required"`
	Reward   domain.Reward     `json:"reward" yaml:"reward" toml:"reward"`
	Subtasks []SubtaskTemplate `json:"subtasks,omitempty" yaml:"subtasks,omitempty" toml:"subtasks,omitempty" validate:"dive"`
}

// SubtaskTemplate is a checklist entry beneath a task template
type SubtaskTemplate struct {
	ID    string `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title string `json:"title" yaml:"title" toml:"title" validate:"required"`
}

// MilestoneForLevel returns the milestone of the highest table level not above level
func (t *Tables) MilestoneForLevel(level int) (domain.Milestone, bool) {
	found := -1
	for i, m := range t.Milestones {
		if m.Level > level {
			break
		}
		found = i
	}
	if found < 0 {
		return domain.Milestone{}, false
	}
	return t.Milestones[found].Milestone(), true
}

// Path returns the path definition for key
func (t *Tables) Path(key string) (PathDef, bool) {
	for _, p := range t.Paths {
		if p.Key == key {
			return p, true
		}
	}
	return PathDef{}, false
}

// ShopItem returns the catalog template with the given id
func (t *Tables) ShopItem(id string) (domain.ShopItemTemplate, bool) {
	for _, item := range t.Shop {
		if item.ID == id {
			return item, true
		}
	}
	return domain.ShopItemTemplate{}, false
}

// NewDay instantiates a fresh pending day for an identity from its path's task templates
func (p PathDef) NewDay(userID, identityID string, day time.Time) domain.DayState {
	tasks := make([]domain.Task, 0, len(p.Tasks))
	for _, tmpl := range p.Tasks {
		task := domain.Task{
			ID:     tmpl.ID,
			Title:  tmpl.Title,
			Reward: tmpl.Reward,
		}
		if task.Reward.Stat == "" && task.Reward.StatPoints > 0 {
			task.Reward.Stat = p.Stat
		}
		if len(tmpl.Subtasks) > 0 {
			task.Subtasks = make([]domain.Subtask, 0, len(tmpl.Subtasks))
			for _, st := range tmpl.Subtasks {
				task.Subtasks = append(task.Subtasks, domain.Subtask{ID: st.ID, Title: st.Title})
			}
		}
		tasks = append(tasks, task)
	}

	return domain.DayState{
		UserID:  userID,
		PathID:  identityID,
		PathKey: p.Key,
		Day:     domain.DayFor(day),
		Tasks:   tasks,
		Status:  domain.DayStatusPending,
	}
}
