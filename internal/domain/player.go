package domain

import "time"

// StatDimension names one of the four player stat axes
type StatDimension string

const (
	StatBody StatDimension = "body"
	StatMind StatDimension = "mind"
	StatSoul StatDimension = "soul"
	StatWill StatDimension = "will"
)

// AllStatDimensions returns the four dimensions in display order
func AllStatDimensions() []StatDimension {
	return []StatDimension{StatBody, StatMind, StatSoul, StatWill}
}

// IsValid reports whether d is a known dimension
func (d StatDimension) IsValid() bool {
	switch d {
	case StatBody, StatMind, StatSoul, StatWill:
		return true
	default:
		return false
	}
}

// Profile holds the player-wide balances and stat points
type Profile struct {
	UserID    string                `json:"user_id"`
	Username  string                `json:"username"`
	Coins     int                   `json:"coins"`
	Stars     int                   `json:"stars"`
	Stats     map[StatDimension]int `json:"stats"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ProfileUpdate is a partial, relative update. Balances are floored at zero by the store.
type ProfileUpdate struct {
	Username   *string
	CoinsDelta int
	StarsDelta int
	StatDeltas map[StatDimension]int
}

// IsEmpty reports whether the update would change nothing
func (u ProfileUpdate) IsEmpty() bool {
	if u.Username != nil || u.CoinsDelta != 0 || u.StarsDelta != 0 {
		return false
	}
	for _, v := range u.StatDeltas {
		if v != 0 {
			return false
		}
	}
	return true
}

// Apply returns a copy of p with the update applied, flooring balances at zero
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.Username != nil {
		p.Username = *u.Username
	}
	p.Coins = max(p.Coins+u.CoinsDelta, 0)
	p.Stars = max(p.Stars+u.StarsDelta, 0)
	stats := make(map[StatDimension]int, len(AllStatDimensions()))
	for k, v := range p.Stats {
		stats[k] = v
	}
	for k, v := range u.StatDeltas {
		stats[k] = max(stats[k]+v, 0)
	}
	p.Stats = stats
	return p
}

// OverallRank is the derived composite rank across the four dimensions. It is never persisted.
type OverallRank struct {
	DimensionValues map[StatDimension]int `json:"dimension_values"`
	EliteAverage    float64               `json:"elite_average"`
	Anchor          int                   `json:"anchor"`
	FinalScore      float64               `json:"final_score"`
	Tier            string                `json:"rank_tier"`
}
