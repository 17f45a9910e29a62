package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewSimulatedClock(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.AdvanceHours(0.5)
	assert.Equal(t, 2*time.Hour, c.Since(start))

	c.AdvanceDays(2)
	assert.Equal(t, start.Add(50*time.Hour), c.Now())
	assert.Equal(t, -50*time.Hour, c.Until(start))

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestRealClock_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}

func TestNextBoundary(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		offset   time.Duration
		expected time.Time
	}{
		{
			"utc midday",
			time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
			0,
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"exactly on boundary moves to next day",
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			0,
			time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			"negative offset",
			time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC),
			-5 * time.Hour,
			time.Date(2026, 1, 1, 5, 0, 0, 0, time.UTC),
		},
		{
			"month rollover",
			time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC),
			0,
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextBoundary(tt.now, tt.offset))
		})
	}
}

func TestDayAt(t *testing.T) {
	now := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), DayAt(now, 0))
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), DayAt(now, -5*time.Hour))
}
