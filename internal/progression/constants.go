package progression

import "math"

// XP curve constants: XP required for level N = BaseXP * (GrowthFactor ^ (N - 1))
const (
	// BaseXP is the requirement to go from level 1 to level 2
	BaseXP = 100.0

	// GrowthFactor is the per-level multiplier of the requirement
	GrowthFactor = 1.5

	// MinLevel is the lowest defined level
	MinLevel = 1
)

// maxRequirement saturates the curve well below int overflow on any int size. On 64-bit
// the curve reaches it past level 90, far beyond anything a player can earn.
const maxRequirement = math.MaxInt / 4
