package profile

import (
	"slices"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
	"github.com/osse101/Ascendant_Go/internal/progression"
	"github.com/osse101/Ascendant_Go/internal/rank"
	"github.com/osse101/Ascendant_Go/internal/seal"
)

// SealView is a path's seal with its derived progress
type SealView struct {
	PathID  string `json:"path_id"`
	PathKey string `json:"path_key,omitempty"`
	domain.SealProgress
}

// Overview is everything derived from a user's persisted state
type Overview struct {
	Profile             domain.Profile        `json:"profile"`
	Identities          []domain.Identity     `json:"identities"`
	Rank                domain.OverallRank    `json:"rank"`
	TotalLevel          int                   `json:"total_level"`
	CharacterStage      domain.EvolutionStage `json:"character_stage"`
	CharacterStageLabel string                `json:"character_stage_label"`
	Seals               []SealView            `json:"seals"`
	SealMultiplier      float64               `json:"seal_multiplier"`
}

// BuildOverview derives the aggregates from already loaded records. It never mutates its inputs.
func BuildOverview(tables *gamedata.Tables, p domain.Profile, identities []domain.Identity, seals []domain.Seal) *Overview {
	pathKeys := make(map[string]string, len(identities))
	for _, identity := range identities {
		pathKeys[identity.ID] = identity.PathKey
	}

	views := make([]SealView, 0, len(seals))
	for _, s := range seals {
		views = append(views, SealView{
			PathID:       s.PathID,
			PathKey:      pathKeys[s.PathID],
			SealProgress: seal.CalculateSealProgress(s.TotalDaysActive),
		})
	}

	total := progression.TotalLevel(identities)
	stage := progression.CharacterEvolution(total, tables.CharacterThresholds)

	return &Overview{
		Profile:             p,
		Identities:          slices.Clone(identities),
		Rank:                rank.NewCalculator(tables.Rank).OverallRank(p.Stats),
		TotalLevel:          total,
		CharacterStage:      stage,
		CharacterStageLabel: stage.Label(),
		Seals:               views,
		SealMultiplier:      seal.AggregateMultiplier(seals),
	}
}
