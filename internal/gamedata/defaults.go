package gamedata

import (
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/progression"
	"github.com/osse101/Ascendant_Go/internal/rank"
)

// DefaultVersion is the version string of the built-in tables
const DefaultVersion = "1.0"

// Default returns the built-in tables. They match configs/tables.yaml.
func Default() *Tables {
	return &Tables{
		Version: DefaultVersion,
		Milestones: []LevelMilestone{
			{Level: 1, Days: 7, Rewards: domain.MilestoneRewards{Coins: 50, Stars: 1}, WillGain: 2},
			{Level: 5, Days: 14, Rewards: domain.MilestoneRewards{Coins: 120, Stars: 2}, WillGain: 4},
			{Level: 15, Days: 30, Rewards: domain.MilestoneRewards{Coins: 300, Stars: 5}, WillGain: 8},
			{Level: 30, Days: 60, Rewards: domain.MilestoneRewards{Coins: 750, Stars: 10}, WillGain: 15},
			{Level: 50, Days: 100, Rewards: domain.MilestoneRewards{Coins: 1500, Stars: 20}, WillGain: 25},
		},
		SubMilestone: domain.SubMilestone{
			EveryDays: 7,
			Rewards:   domain.MilestoneRewards{Coins: 25},
		},
		PathThresholds:      progression.DefaultPathThresholds(),
		CharacterThresholds: progression.DefaultCharacterThresholds(),
		Rank:                rank.DefaultTable(),
		Shop: []domain.ShopItemTemplate{
			{ID: "streak_shield", Name: "Streak Shield", Category: domain.CategoryTickets, BasePrice: 100, InflationRate: 0.15, CooldownHours: 24},
			{ID: "xp_scroll", Name: "XP Scroll", Category: domain.CategoryTickets, BasePrice: 150, InflationRate: 0.10, CooldownHours: 48, LifetimeHours: 168},
			{ID: "rest_pass", Name: "Rest Day Pass", Category: domain.CategoryTickets, BasePrice: 200, InflationRate: 0.20, CooldownHours: 72},
			{ID: "aura_frame", Name: "Aura Frame", Category: "cosmetics", BasePrice: 500},
			{ID: "title_banner", Name: "Title Banner", Category: "cosmetics", BasePrice: 300},
		},
		Paths: []PathDef{
			{
				Key:         "warrior",
				Name:        "Path of the Warrior",
				Description: "Forge the body through daily training.",
				Stat:        domain.StatBody,
				Tasks: []TaskTemplate{
					{
						ID:     "training",
						Title:  "Morning training",
						Reward: domain.Reward{XP: 40, Coins: 10, StatPoints: 2},
						Subtasks: []SubtaskTemplate{
							{ID: "warmup", Title: "Warm up"},
							{ID: "main_set", Title: "Main set"},
							{ID: "stretch", Title: "Stretch"},
						},
					},
					{ID: "hydrate", Title: "Drink 2L of water", Reward: domain.Reward{XP: 15, Coins: 5, StatPoints: 1}},
					{ID: "walk", Title: "Walk 8000 steps", Reward: domain.Reward{XP: 25, Coins: 5, StatPoints: 1}},
				},
			},
			{
				Key:         "scholar",
				Name:        "Path of the Scholar",
				Description: "Sharpen the mind with study and reflection.",
				Stat:        domain.StatMind,
				Tasks: []TaskTemplate{
					{
						ID:     "study",
						Title:  "Deep study session",
						Reward: domain.Reward{XP: 50, Coins: 10, StatPoints: 2},
						Subtasks: []SubtaskTemplate{
							{ID: "review", Title: "Review yesterday's notes"},
							{ID: "focus_block", Title: "Focused 45 minute block"},
						},
					},
					{ID: "read", Title: "Read 20 pages", Reward: domain.Reward{XP: 25, Coins: 5, StatPoints: 1}},
					{ID: "journal", Title: "Journal one insight", Reward: domain.Reward{XP: 15, Coins: 5, StatPoints: 1}},
				},
			},
			{
				Key:         "sage",
				Name:        "Path of the Sage",
				Description: "Quiet the soul through stillness.",
				Stat:        domain.StatSoul,
				Tasks: []TaskTemplate{
					{ID: "meditate", Title: "Meditate 15 minutes", Reward: domain.Reward{XP: 30, Coins: 10, StatPoints: 2}},
					{ID: "gratitude", Title: "Write three gratitudes", Reward: domain.Reward{XP: 15, Coins: 5, StatPoints: 1}},
					{ID: "sunset", Title: "Screens off an hour before bed", Reward: domain.Reward{XP: 25, Coins: 5, StatPoints: 1}},
				},
			},
			{
				Key:         "ascetic",
				Name:        "Path of the Ascetic",
				Description: "Temper the will with discipline.",
				Stat:        domain.StatWill,
				Tasks: []TaskTemplate{
					{ID: "cold_shower", Title: "Cold shower", Reward: domain.Reward{XP: 30, Coins: 10, StatPoints: 2}},
					{ID: "no_sugar", Title: "No added sugar", Reward: domain.Reward{XP: 25, Coins: 5, StatPoints: 1}},
					{ID: "early_rise", Title: "Rise before 6am", Reward: domain.Reward{XP: 25, Coins: 5, StatPoints: 1}},
				},
			},
		},
	}
}
