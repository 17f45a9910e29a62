package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

func TestCheckEvolution(t *testing.T) {
	thresholds := DefaultPathThresholds()

	tests := []struct {
		name          string
		level         int
		stage         domain.EvolutionStage
		expectedStage domain.EvolutionStage
		expectEvolved bool
	}{
		{"fresh identity stays novice", 1, domain.StageNovice, domain.StageNovice, false},
		{"empty stage resolves to novice", 1, "", domain.StageNovice, false},
		{"reaches apprentice at 5", 5, domain.StageNovice, domain.StageApprentice, true},
		{"skips stages on big jump", 16, domain.StageNovice, domain.StageExpert, true},
		{"legend at 50", 50, domain.StageMaster, domain.StageLegend, true},
		{"already at stage", 20, domain.StageExpert, domain.StageExpert, false},
		{"never regresses", 4, domain.StageMaster, domain.StageMaster, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := newIdentity(tt.level, 0)
			identity.Stage = tt.stage

			got, evolved := CheckEvolution(identity, thresholds)

			assert.Equal(t, tt.expectedStage, got.Stage)
			assert.Equal(t, tt.expectEvolved, evolved)
			assert.Equal(t, tt.level, got.Level)
		})
	}
}

func TestCheckEvolution_EmptyThresholds(t *testing.T) {
	identity := newIdentity(99, 0)
	got, evolved := CheckEvolution(identity, nil)
	assert.False(t, evolved)
	assert.Equal(t, domain.StageNovice, got.Stage)
}

func TestCheckEvolution_StageNeverRegressesAfterXPLoss(t *testing.T) {
	identity := AddXP(newIdentity(1, 0), TotalXPForLevel(6))
	identity, evolved := CheckEvolution(identity, DefaultPathThresholds())
	assert.True(t, evolved)
	assert.Equal(t, domain.StageApprentice, identity.Stage)

	identity = RemoveXP(identity, TotalXPForLevel(6))
	identity, evolved = CheckEvolution(identity, DefaultPathThresholds())
	assert.False(t, evolved)
	assert.Equal(t, 1, identity.Level)
	assert.Equal(t, domain.StageApprentice, identity.Stage)
}

func TestCharacterEvolution(t *testing.T) {
	thresholds := DefaultCharacterThresholds()

	tests := []struct {
		totalLevel int
		expected   domain.EvolutionStage
	}{
		{0, domain.StageNovice},
		{4, domain.StageNovice},
		{24, domain.StageNovice},
		{25, domain.StageApprentice},
		{74, domain.StageApprentice},
		{75, domain.StageExpert},
		{150, domain.StageMaster},
		{260, domain.StageLegend},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CharacterEvolution(tt.totalLevel, thresholds), "total %d", tt.totalLevel)
	}
}

func TestCharacterAndPathThresholdsDiffer(t *testing.T) {
	// Level 5 on a single path is apprentice; a character total of 5 is still novice
	assert.Equal(t, domain.StageApprentice, CharacterEvolution(5, DefaultPathThresholds()))
	assert.Equal(t, domain.StageNovice, CharacterEvolution(5, DefaultCharacterThresholds()))
}

func TestTotalLevel(t *testing.T) {
	identities := []domain.Identity{
		newIdentity(3, 0),
		newIdentity(10, 0),
		{Level: 0},
	}
	assert.Equal(t, 14, TotalLevel(identities))
	assert.Equal(t, 0, TotalLevel(nil))
}
