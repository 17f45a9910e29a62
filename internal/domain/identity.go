package domain

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EvolutionStage is a named tier gated purely on level thresholds
type EvolutionStage string

const (
	StageNovice     EvolutionStage = "novice"
	StageApprentice EvolutionStage = "apprentice"
	StageExpert     EvolutionStage = "expert"
	StageMaster     EvolutionStage = "master"
	StageLegend     EvolutionStage = "legend"
)

// AllStages returns every evolution stage in ascending order
func AllStages() []EvolutionStage {
	return []EvolutionStage{StageNovice, StageApprentice, StageExpert, StageMaster, StageLegend}
}

// Index returns the position of the stage in the ordered stage list, or -1 if unknown
func (s EvolutionStage) Index() int {
	for i, stage := range AllStages() {
		if stage == s {
			return i
		}
	}
	return -1
}

// Label returns the display name for the stage ("novice" -> "Novice")
func (s EvolutionStage) Label() string {
	return cases.Title(language.English).String(string(s))
}

// Identity is a user-selected progression track with its own level, XP and streak
type Identity struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	PathKey       string         `json:"path_key"`
	Level         int            `json:"level"`
	XP            int            `json:"xp"`
	XPToNextLevel int            `json:"xp_to_next_level"`
	Stage         EvolutionStage `json:"stage"`
	Streak        int            `json:"streak"`
	Revision      int64          `json:"revision"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IdentityUpdate carries the fields to overwrite on an identity. Nil fields are left untouched.
type IdentityUpdate struct {
	Level         *int
	XP            *int
	XPToNextLevel *int
	Stage         *EvolutionStage
	Streak        *int
	// Revision, when set, makes the write conditional: a stored revision above it wins
	Revision      *int64
}

// UpdateFrom builds a full update reflecting the given identity
func UpdateFrom(identity Identity) IdentityUpdate {
	return IdentityUpdate{
		Level:         &identity.Level,
		XP:            &identity.XP,
		XPToNextLevel: &identity.XPToNextLevel,
		Stage:         &identity.Stage,
		Streak:        &identity.Streak,
		Revision:      &identity.Revision,
	}
}

// Apply returns a copy of identity with the update applied
func (u IdentityUpdate) Apply(identity Identity) Identity {
	if u.Level != nil {
		identity.Level = *u.Level
	}
	if u.XP != nil {
		identity.XP = *u.XP
	}
	if u.XPToNextLevel != nil {
		identity.XPToNextLevel = *u.XPToNextLevel
	}
	if u.Stage != nil {
		identity.Stage = *u.Stage
	}
	if u.Streak != nil {
		identity.Streak = *u.Streak
	}
	if u.Revision != nil {
		identity.Revision = *u.Revision
	}
	return identity
}
