package mealplan_test

import (
	"testing"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/test/testutils"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	factory := testutils.NewCatalogFactory(1)
	flour, egg := factory.Ingredient(), factory.Ingredient()

	t.Run("PerfectMatch_ShouldScoreOne", func(t *testing.T) {
		recipe := testutils.NewCandidateBuilder(factory).
			WithCalories(500).
			WithIngredients(flour, egg).
			Build()

		score := mealplan.Score(recipe, 500,
			mealplan.NewIDSet(flour.ID, egg.ID),
			mealplan.NewIDSet(recipe.ID))

		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("UnknownCaloriesOrTarget_ShouldBeNeutral", func(t *testing.T) {
		recipe := testutils.NewCandidateBuilder(factory).Build()
		b := mealplan.Breakdown(recipe, 500, nil, nil)
		assert.Equal(t, 0.5, b.CalorieFit)
		assert.InDelta(t, 0.25, b.Total, 1e-9)

		withCalories := testutils.NewCandidateBuilder(factory).WithCalories(400).Build()
		assert.Equal(t, 0.5, mealplan.Breakdown(withCalories, 0, nil, nil).CalorieFit)
	})

	t.Run("CalorieFit_ShouldDecayWithDistance", func(t *testing.T) {
		target := 600.0
		previous := 2.0
		for _, kcal := range []float64{600, 650, 750, 900, 1100, 1200, 1500} {
			recipe := testutils.NewCandidateBuilder(factory).WithCalories(kcal).Build()
			score := mealplan.Score(recipe, target, nil, nil)
			assert.Less(t, score, previous, "calories %v", kcal)
			previous = score
			if kcal >= 2*target {
				break
			}
		}
		assert.Zero(t, previous)

		zero := testutils.NewCandidateBuilder(factory).WithCalories(0).Build()
		assert.Zero(t, mealplan.Breakdown(zero, target, nil, nil).CalorieFit)
	})

	t.Run("PantryMatch_ShouldCountDistinctIngredients", func(t *testing.T) {
		a, b, c, d := factory.Ingredient(), factory.Ingredient(), factory.Ingredient(), factory.Ingredient()
		recipe := testutils.NewCandidateBuilder(factory).
			WithIngredients(a, b, c, d, a).
			Build()

		breakdown := mealplan.Breakdown(recipe, 500, mealplan.NewIDSet(a.ID, c.ID), nil)

		assert.Equal(t, 0.5, breakdown.PantryMatch)
	})

	t.Run("NoIngredients_ShouldHaveNoPantryMatch", func(t *testing.T) {
		recipe := testutils.NewCandidateBuilder(factory).Build()
		assert.Zero(t, mealplan.Breakdown(recipe, 500, mealplan.NewIDSet(flour.ID), nil).PantryMatch)
	})

	t.Run("Favorite_ShouldAddWeight", func(t *testing.T) {
		recipe := testutils.NewCandidateBuilder(factory).WithCalories(500).Build()
		plain := mealplan.Score(recipe, 500, nil, nil)
		favored := mealplan.Score(recipe, 500, nil, mealplan.NewIDSet(recipe.ID))
		assert.InDelta(t, mealplan.FavoriteWeight, favored-plain, 1e-9)
	})
}
