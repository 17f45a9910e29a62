// Package seal derives consistency levels from cumulative active days.
package seal

import "github.com/osse101/Ascendant_Go/internal/domain"

const (
	// DaysPerLevel is the number of active days needed for each seal level
	DaysPerLevel = 5
	// MultiplierPerLevel is the stat multiplier added per seal level
	MultiplierPerLevel = 0.05
)

// CalculateSealProgress maps a cumulative active-day count to its seal level,
// progress percentage toward the next level and stat multiplier.
// Negative totals are treated as zero.
func CalculateSealProgress(totalDaysActive int) domain.SealProgress {
	totalDaysActive = max(totalDaysActive, 0)

	level := totalDaysActive / DaysPerLevel
	remainder := totalDaysActive % DaysPerLevel

	return domain.SealProgress{
		TotalDaysActive: totalDaysActive,
		Level:           level,
		ProgressToNext:  float64(remainder) / DaysPerLevel * 100,
		DaysToNextLevel: DaysPerLevel - remainder,
		Multiplier:      Multiplier(level),
	}
}

// Multiplier returns the stat multiplier for a seal level
func Multiplier(level int) float64 {
	return 1 + float64(max(level, 0))*MultiplierPerLevel
}

// DidSealLevelUp reports whether moving from oldTotal to newTotal active days crossed a level boundary
func DidSealLevelUp(oldTotal, newTotal int) bool {
	return max(oldTotal, 0)/DaysPerLevel < max(newTotal, 0)/DaysPerLevel
}

// AggregateMultiplier averages the multipliers of all seals. A user with no seals gets 1.0.
func AggregateMultiplier(seals []domain.Seal) float64 {
	if len(seals) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, s := range seals {
		sum += CalculateSealProgress(s.TotalDaysActive).Multiplier
	}
	return sum / float64(len(seals))
}
