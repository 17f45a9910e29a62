package progression

import (
	"math"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// XPRequiredForLevel returns the XP needed to advance from level to level+1:
// floor(BaseXP * GrowthFactor^(level-1)). Levels below 1 are clamped to 1.
func XPRequiredForLevel(level int) int {
	if level < MinLevel {
		level = MinLevel
	}
	req := math.Floor(BaseXP * math.Pow(GrowthFactor, float64(level-1)))
	if req >= float64(maxRequirement) {
		return maxRequirement
	}
	return int(req)
}

// TotalXPForLevel returns the cumulative XP needed to reach level from level 1,
// i.e. the sum of XPRequiredForLevel(i) for i in [1, level-1].
func TotalXPForLevel(level int) int {
	total := 0
	for i := MinLevel; i < level; i++ {
		total += XPRequiredForLevel(i)
		if total >= maxRequirement {
			return maxRequirement
		}
	}
	return total
}

// LevelFromTotalXP returns the largest level whose cumulative requirement is covered by totalXP.
// The result is always at least 1; negative totals are treated as zero.
func LevelFromTotalXP(totalXP int) int {
	level := MinLevel
	cumulative := 0
	for {
		next := cumulative + XPRequiredForLevel(level)
		if next > totalXP || next >= maxRequirement {
			return level
		}
		cumulative = next
		level++
	}
}

// Normalize clamps an identity into a valid shape: level >= 1, xp >= 0, overflow
// rolled into level-ups and XPToNextLevel recomputed.
func Normalize(identity domain.Identity) domain.Identity {
	if identity.Level < MinLevel {
		identity.Level = MinLevel
	}
	if identity.XP < 0 {
		identity.XP = 0
	}
	return rollOver(identity)
}

// AddXP credits gained XP to the identity's current level, levelling up as many times
// as the total covers. Negative gains are clamped to zero.
func AddXP(identity domain.Identity, gained int) domain.Identity {
	identity = Normalize(identity)
	if gained <= 0 {
		return identity
	}
	identity.XP += gained
	return rollOver(identity)
}

// RemoveXP is the inverse of AddXP: it debits lost XP, borrowing from lower levels
// when the current level's XP runs out. The identity never drops below level 1 / XP 0.
// Evolution stage is left untouched; stages never regress.
func RemoveXP(identity domain.Identity, lost int) domain.Identity {
	identity = Normalize(identity)
	if lost <= 0 {
		return identity
	}
	identity.XP -= lost
	for identity.XP < 0 && identity.Level > MinLevel {
		identity.Level--
		identity.XP += XPRequiredForLevel(identity.Level)
	}
	if identity.XP < 0 {
		identity.XP = 0
	}
	identity.XPToNextLevel = XPRequiredForLevel(identity.Level)
	return identity
}

// TotalXP returns the lifetime XP represented by an identity's level and in-level XP
func TotalXP(identity domain.Identity) int {
	identity = Normalize(identity)
	return TotalXPForLevel(identity.Level) + identity.XP
}

func rollOver(identity domain.Identity) domain.Identity {
	req := XPRequiredForLevel(identity.Level)
	for identity.XP >= req && req < maxRequirement {
		identity.XP -= req
		identity.Level++
		req = XPRequiredForLevel(identity.Level)
	}
	identity.XPToNextLevel = req
	return identity
}
