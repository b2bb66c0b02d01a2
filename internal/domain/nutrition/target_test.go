package nutrition_test

import (
	"testing"

	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/alchemorsel/mealplanner/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMR(t *testing.T) {
	assert.Equal(t, 1673.75, nutrition.BMR(70, 175, 25, nutrition.SexMale))
	assert.Equal(t, 1507.75, nutrition.BMR(70, 175, 25, nutrition.SexFemale))
}

func TestDailyTarget(t *testing.T) {
	t.Run("CompleteProfile", func(t *testing.T) {
		assert.Equal(t, 2594.31, nutrition.DailyTarget(testutils.CompleteProfile()))
	})

	t.Run("MissingFields_ShouldFallBack", func(t *testing.T) {
		incomplete := []func(p *nutrition.Profile){
			func(p *nutrition.Profile) { p.WeightKg = nil },
			func(p *nutrition.Profile) { p.HeightCm = nil },
			func(p *nutrition.Profile) { p.AgeYears = nil },
			func(p *nutrition.Profile) { p.Sex = "" },
		}
		for _, mutate := range incomplete {
			p := testutils.CompleteProfile()
			mutate(&p)
			assert.False(t, p.Complete())
			assert.Equal(t, nutrition.DefaultDailyCalories, nutrition.DailyTarget(p))
		}
	})

	t.Run("UnknownActivity_ShouldCountAsModerate", func(t *testing.T) {
		p := testutils.CompleteProfile()
		p.Activity = nutrition.ActivityLevel("couch")
		assert.Equal(t, 2594.31, nutrition.DailyTarget(p))
	})

	t.Run("ActivityMultipliers", func(t *testing.T) {
		levels := map[nutrition.ActivityLevel]float64{
			nutrition.ActivitySedentary:  2008.5,
			nutrition.ActivityLight:      2301.41,
			nutrition.ActivityModerate:   2594.31,
			nutrition.ActivityActive:     2887.22,
			nutrition.ActivityVeryActive: 3180.13,
		}
		for level, want := range levels {
			p := testutils.CompleteProfile()
			p.Activity = level
			assert.Equal(t, want, nutrition.DailyTarget(p), string(level))
		}
	})
}

func TestPlanningTarget(t *testing.T) {
	target, err := nutrition.PlanningTarget(testutils.CompleteProfile())
	require.NoError(t, err)
	assert.Equal(t, 2594.0, target)

	p := testutils.CompleteProfile()
	p.AgeYears = nil
	_, err = nutrition.PlanningTarget(p)
	assert.ErrorIs(t, err, nutrition.ErrIncompleteProfile)
}

func TestMacroSplit(t *testing.T) {
	assert.Equal(t, nutrition.Macros{Calories: 2000, Protein: 125, Carbs: 225, Fat: 66.67}, nutrition.MacroSplit(2000))
}

func TestRecommendedGoals(t *testing.T) {
	goals := nutrition.RecommendedGoals(testutils.CompleteProfile())
	assert.False(t, goals.Fallback)
	assert.Equal(t, 1673.75, goals.BMR)
	assert.Equal(t, 2594.31, goals.TDEE)
	assert.Equal(t, nutrition.MacroSplit(2594.31), goals.Macros)

	fallback := nutrition.RecommendedGoals(nutrition.Profile{})
	assert.True(t, fallback.Fallback)
	assert.Zero(t, fallback.BMR)
	assert.Equal(t, nutrition.MacroSplit(nutrition.DefaultDailyCalories), fallback.Macros)
}

func TestParseActivityLevel(t *testing.T) {
	level, err := nutrition.ParseActivityLevel("Very-Active")
	require.NoError(t, err)
	assert.Equal(t, nutrition.ActivityVeryActive, level)

	level, err = nutrition.ParseActivityLevel("")
	assert.ErrorIs(t, err, nutrition.ErrUnknownActivityLevel)
	assert.Equal(t, nutrition.ActivityModerate, level)
}

func TestParseSex(t *testing.T) {
	sex, err := nutrition.ParseSex(" Female")
	require.NoError(t, err)
	assert.Equal(t, nutrition.SexFemale, sex)

	_, err = nutrition.ParseSex("other")
	assert.ErrorIs(t, err, nutrition.ErrUnknownSex)
}
