package domain

// MilestoneRewards is the currency granted by a milestone
type MilestoneRewards struct {
	Coins int `json:"coins" yaml:"coins" toml:"coins" validate:"gte=0"`
	Stars int `json:"stars" yaml:"stars" toml:"stars" validate:"gte=0"`
}

// Milestone is the streak target for a level band
type Milestone struct {
	Days     int              `json:"milestone_days" yaml:"milestone_days" toml:"milestone_days" validate:"gt=0"`
	Rewards  MilestoneRewards `json:"rewards" yaml:"rewards" toml:"rewards"`
	WillGain int              `json:"will_gain" yaml:"will_gain" toml:"will_gain" validate:"gte=0"`
}

// SubMilestone is the flat reward granted on every EveryDays-th streak day, independent of level
type SubMilestone struct {
	EveryDays int              `json:"every_days" yaml:"every_days" toml:"every_days" validate:"gt=0"`
	Rewards   MilestoneRewards `json:"rewards" yaml:"rewards" toml:"rewards"`
}

// MilestoneAward records what a day's completion earned; both flags may be set at once
type MilestoneAward struct {
	Streak         int  `json:"streak"`
	SubMilestone   bool `json:"sub_milestone"`
	FinalMilestone bool `json:"final_milestone"`
	Coins          int  `json:"coins"`
	Stars          int  `json:"stars"`
	WillGain       int  `json:"will_gain"`
}
