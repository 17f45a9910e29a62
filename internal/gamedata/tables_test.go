package gamedata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

func TestMilestoneForLevel(t *testing.T) {
	tables := Default()

	tests := []struct {
		level    int
		found    bool
		expected int
	}{
		{0, false, 0},
		{1, true, 7},
		{4, true, 7},
		{5, true, 14},
		{29, true, 30},
		{50, true, 100},
		{99, true, 100},
	}

	for _, tt := range tests {
		m, ok := tables.MilestoneForLevel(tt.level)
		assert.Equal(t, tt.found, ok, "level %d", tt.level)
		assert.Equal(t, tt.expected, m.Days, "level %d", tt.level)
	}
}

func TestPathNewDay(t *testing.T) {
	path, ok := Default().Path("warrior")
	require.True(t, ok)

	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	day := path.NewDay("user-1", "identity-1", now)

	assert.Equal(t, "user-1", day.UserID)
	assert.Equal(t, "identity-1", day.PathID)
	assert.Equal(t, "warrior", day.PathKey)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), day.Day)
	assert.Equal(t, domain.DayStatusPending, day.Status)
	require.Len(t, day.Tasks, 3)
	assert.Len(t, day.Tasks[0].Subtasks, 3)
	assert.Nil(t, day.Tasks[1].Subtasks)
	// Reward stat inherits the path stat when the template leaves it blank
	assert.Equal(t, domain.StatBody, day.Tasks[0].Reward.Stat)
	assert.Zero(t, day.CompletedCount())
}

func TestPathNewDay_IndependentSnapshots(t *testing.T) {
	path, _ := Default().Path("scholar")
	now := time.Now()

	a := path.NewDay("u", "i", now)
	b := path.NewDay("u", "i", now)
	a.Tasks[0].Subtasks[0].Completed = true

	assert.False(t, b.Tasks[0].Subtasks[0].Completed)
}

func TestFindShopItem(t *testing.T) {
	tables := Default()

	tests := []struct {
		name       string
		query      string
		expectedID string
		fuzzy      bool
	}{
		{"by id", "xp_scroll", "xp_scroll", false},
		{"by name ignoring case", "streak shield", "streak_shield", false},
		{"fuzzy abbreviation", "rstpss", "rest_pass", true},
		{"fuzzy prefix", "aura", "aura_frame", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, fuzzy, err := tables.FindShopItem(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, item.ID)
			assert.Equal(t, tt.fuzzy, fuzzy)
		})
	}

	_, _, err := tables.FindShopItem("zzzz")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, _, err = tables.FindShopItem("  ")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestFindPath(t *testing.T) {
	tables := Default()

	p, err := tables.FindPath("sage")
	require.NoError(t, err)
	assert.Equal(t, domain.StatSoul, p.Stat)

	p, err = tables.FindPath("path of the ascetic")
	require.NoError(t, err)
	assert.Equal(t, "ascetic", p.Key)

	_, err = tables.FindPath("bard")
	assert.ErrorIs(t, err, domain.ErrPathNotFound)
}
