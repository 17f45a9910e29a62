package progression

import "github.com/osse101/Ascendant_Go/internal/domain"

// StageThreshold is the minimum level at which a stage is reached
type StageThreshold struct {
	Stage    domain.EvolutionStage `json:"stage" yaml:"stage" toml:"stage" validate:"required,oneof=novice apprentice expert master legend"`
	MinLevel int                   `json:"min_level" yaml:"min_level" toml:"min_level" validate:"gte=0"`
}

// DefaultPathThresholds gates a single path's stage on that path's level
func DefaultPathThresholds() []StageThreshold {
	return []StageThreshold{
		{Stage: domain.StageNovice, MinLevel: 0},
		{Stage: domain.StageApprentice, MinLevel: 5},
		{Stage: domain.StageExpert, MinLevel: 15},
		{Stage: domain.StageMaster, MinLevel: 30},
		{Stage: domain.StageLegend, MinLevel: 50},
	}
}

// DefaultCharacterThresholds gates the character-wide stage on the sum of levels across all paths.
// It is a different mapping from DefaultPathThresholds and must not be mixed with it.
func DefaultCharacterThresholds() []StageThreshold {
	return []StageThreshold{
		{Stage: domain.StageNovice, MinLevel: 0},
		{Stage: domain.StageApprentice, MinLevel: 25},
		{Stage: domain.StageExpert, MinLevel: 75},
		{Stage: domain.StageMaster, MinLevel: 150},
		{Stage: domain.StageLegend, MinLevel: 250},
	}
}

// CheckEvolution advances the identity's stage forward while its level meets the next
// threshold. It never moves the stage backwards, even if the level has dropped.
// The bool result reports whether the stage changed.
func CheckEvolution(identity domain.Identity, thresholds []StageThreshold) (domain.Identity, bool) {
	if len(thresholds) == 0 {
		return identity, false
	}

	current := stageIndex(thresholds, identity.Stage)
	if current < 0 {
		current = 0
	}
	start := current

	for next := current + 1; next < len(thresholds); next++ {
		if identity.Level < thresholds[next].MinLevel {
			break
		}
		current = next
	}

	identity.Stage = thresholds[current].Stage
	return identity, current > start
}

// CharacterEvolution maps the total level across all paths to a character-wide stage
func CharacterEvolution(totalLevel int, thresholds []StageThreshold) domain.EvolutionStage {
	if len(thresholds) == 0 {
		return domain.StageNovice
	}
	stage := thresholds[0].Stage
	for _, t := range thresholds {
		if totalLevel < t.MinLevel {
			break
		}
		stage = t.Stage
	}
	return stage
}

// TotalLevel sums the levels of every path identity
func TotalLevel(identities []domain.Identity) int {
	total := 0
	for _, id := range identities {
		total += max(id.Level, MinLevel)
	}
	return total
}

func stageIndex(thresholds []StageThreshold, stage domain.EvolutionStage) int {
	for i, t := range thresholds {
		if t.Stage == stage {
			return i
		}
	}
	return -1
}
