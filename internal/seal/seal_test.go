package seal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

func TestCalculateSealProgress(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		level         int
		progress      float64
		daysToNext    int
		multiplier    float64
		expectedTotal int
	}{
		{"zero", 0, 0, 0, 5, 1.0, 0},
		{"one day", 1, 0, 20, 4, 1.0, 1},
		{"just below level 5", 24, 4, 80, 1, 1.20, 24},
		{"exactly level 5", 25, 5, 0, 5, 1.25, 25},
		{"negative clamps", -7, 0, 0, 5, 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSealProgress(tt.total)
			assert.Equal(t, tt.expectedTotal, got.TotalDaysActive)
			assert.Equal(t, tt.level, got.Level)
			assert.InDelta(t, tt.progress, got.ProgressToNext, 1e-9)
			assert.Equal(t, tt.daysToNext, got.DaysToNextLevel)
			assert.InDelta(t, tt.multiplier, got.Multiplier, 1e-9)
		})
	}
}

func TestMultiplier(t *testing.T) {
	assert.InDelta(t, 1.25, Multiplier(5), 1e-9)
	assert.InDelta(t, 1.0, Multiplier(-1), 1e-9)
}

func TestDidSealLevelUp(t *testing.T) {
	assert.True(t, DidSealLevelUp(4, 5))
	assert.True(t, DidSealLevelUp(9, 15))
	assert.False(t, DidSealLevelUp(5, 9))
	assert.False(t, DidSealLevelUp(5, 5))
	assert.False(t, DidSealLevelUp(10, 4))
}

func TestAggregateMultiplier(t *testing.T) {
	assert.InDelta(t, 1.0, AggregateMultiplier(nil), 1e-9)

	seals := []domain.Seal{
		{PathID: "a", TotalDaysActive: 25}, // 1.25
		{PathID: "b", TotalDaysActive: 0},  // 1.00
		{PathID: "c", TotalDaysActive: 12}, // 1.10
	}
	assert.InDelta(t, (1.25+1.0+1.10)/3, AggregateMultiplier(seals), 1e-9)
}
