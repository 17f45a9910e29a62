package streak

import "github.com/osse101/Ascendant_Go/internal/domain"

// RewardDelta is the signed change a toggle makes to the player's totals
type RewardDelta struct {
	XP    int                          `json:"xp"`
	Coins int                          `json:"coins"`
	Stars int                          `json:"stars"`
	Stats map[domain.StatDimension]int `json:"stats,omitempty"`
}

// Add returns the sum of two deltas
func (d RewardDelta) Add(other RewardDelta) RewardDelta {
	out := RewardDelta{
		XP:    d.XP + other.XP,
		Coins: d.Coins + other.Coins,
		Stars: d.Stars + other.Stars,
	}
	for _, src := range []map[domain.StatDimension]int{d.Stats, other.Stats} {
		for dim, v := range src {
			if out.Stats == nil {
				out.Stats = make(map[domain.StatDimension]int)
			}
			out.Stats[dim] += v
		}
	}
	return out
}

// IsZero reports whether the delta changes nothing on the profile
func (d RewardDelta) IsZero() bool {
	return d.ProfileUpdate().IsEmpty()
}

// ProfileUpdate converts the delta into a relative profile update. XP lives on the identity.
func (d RewardDelta) ProfileUpdate() domain.ProfileUpdate {
	update := domain.ProfileUpdate{
		CoinsDelta: d.Coins,
		StarsDelta: d.Stars,
	}
	if len(d.Stats) > 0 {
		update.StatDeltas = make(map[domain.StatDimension]int, len(d.Stats))
		for dim, v := range d.Stats {
			update.StatDeltas[dim] = v
		}
	}
	return update
}

func rewardDelta(r domain.Reward, sign int) RewardDelta {
	d := RewardDelta{
		XP:    sign * r.XP,
		Coins: sign * r.Coins,
	}
	if r.Stat.IsValid() && r.StatPoints != 0 {
		d.Stats = map[domain.StatDimension]int{r.Stat: sign * r.StatPoints}
	}
	return d
}

func awardDelta(a *domain.MilestoneAward, sign int) RewardDelta {
	d := RewardDelta{
		Coins: sign * a.Coins,
		Stars: sign * a.Stars,
	}
	if a.WillGain != 0 {
		d.Stats = map[domain.StatDimension]int{domain.StatWill: sign * a.WillGain}
	}
	return d
}
