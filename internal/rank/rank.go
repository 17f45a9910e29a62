// Package rank maps stat point totals onto letter ranks and composes the
// four stat dimensions into an overall rank.
package rank

import (
	"math"
	"slices"
	"sort"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// letters is the 13-point rank scale, lowest first
var letters = [...]string{"F", "F+", "E", "E+", "D", "D+", "C", "C+", "B", "B+", "A", "A+", "S"}

const (
	eliteWeight  = 0.7
	anchorWeight = 0.3
	eliteCount   = 3

	// bandEpsilon absorbs float error so values landing on a band boundary rank into it
	bandEpsilon = 1e-9
)

// Table holds the thresholds used to rank stats. It is loaded from the game tables.
type Table struct {
	// PointsPerStep is the number of stat points per half-rank
	PointsPerStep int `json:"points_per_step" yaml:"points_per_step" toml:"points_per_step" validate:"gt=0"`
	// MaxValue caps the per-dimension rank value
	MaxValue int `json:"max_value" yaml:"max_value" toml:"max_value" validate:"gte=0,lte=12"`
	// Bands are the ascending lower bounds of each letter, F first
	Bands []float64 `json:"bands" yaml:"bands" toml:"bands" validate:"len=13"`
}

// DefaultTable returns the standard rank thresholds
func DefaultTable() Table {
	return Table{
		PointsPerStep: 5,
		MaxValue:      12,
		Bands:         []float64{0, 0.5, 1.5, 2.5, 4.0, 4.5, 5.5, 6.5, 7.5, 8.5, 9.5, 10.5, 11.5},
	}
}

// Validate reports whether the table has one strictly ascending band per letter
func (t Table) Validate() bool {
	if len(t.Bands) != len(letters) || t.PointsPerStep <= 0 || t.MaxValue < 0 {
		return false
	}
	for i := 1; i < len(t.Bands); i++ {
		if t.Bands[i] <= t.Bands[i-1] {
			return false
		}
	}
	return true
}

// Calculator computes ranks against a specific table
type Calculator struct {
	table Table
}

// NewCalculator creates a calculator; an invalid table falls back to the defaults
func NewCalculator(table Table) *Calculator {
	if !table.Validate() {
		table = DefaultTable()
	}
	return &Calculator{table: table}
}

var defaultCalculator = NewCalculator(DefaultTable())

// StatRankValue maps raw stat points to a rank value on the 0..12 scale
func (c *Calculator) StatRankValue(points int) int {
	if points <= 0 {
		return 0
	}
	return min(points/c.table.PointsPerStep, c.table.MaxValue)
}

// Letter maps a composite value to its letter band
func (c *Calculator) Letter(value float64) string {
	idx := sort.Search(len(c.table.Bands), func(i int) bool {
		return c.table.Bands[i] > value
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return letters[idx]
}

// CompositeScore folds rank values into elite average, anchor and the weighted final value.
// Missing values count as zero; an empty input scores zero.
func CompositeScore(values []int) (eliteAverage float64, anchor int, final float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })

	top := sorted[:min(eliteCount, len(sorted))]
	sum := 0
	for _, v := range top {
		sum += v
	}
	eliteAverage = float64(sum) / float64(len(top))
	anchor = sorted[len(sorted)-1]
	final = eliteAverage*eliteWeight + float64(anchor)*anchorWeight
	return eliteAverage, anchor, final
}

// OverallRank computes the overall rank view for a set of stat totals.
// Every known dimension participates; absent dimensions count as zero points.
func (c *Calculator) OverallRank(stats map[domain.StatDimension]int) domain.OverallRank {
	dims := domain.AllStatDimensions()
	values := make([]int, 0, len(dims))
	byDim := make(map[domain.StatDimension]int, len(dims))
	for _, dim := range dims {
		v := c.StatRankValue(stats[dim])
		values = append(values, v)
		byDim[dim] = v
	}

	elite, anchor, final := CompositeScore(values)
	return domain.OverallRank{
		DimensionValues: byDim,
		EliteAverage:    round2(elite),
		Anchor:          anchor,
		FinalScore:      round2(final),
		Tier:            c.Letter(final + bandEpsilon),
	}
}

// StatRankValue maps raw stat points using the default table
func StatRankValue(points int) int {
	return defaultCalculator.StatRankValue(points)
}

// Letter maps a value using the default bands
func Letter(value float64) string {
	return defaultCalculator.Letter(value)
}

// CalculateOverallRank computes the overall rank using the default table
func CalculateOverallRank(stats map[domain.StatDimension]int) domain.OverallRank {
	return defaultCalculator.OverallRank(stats)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
