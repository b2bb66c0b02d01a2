package mealplan

import "math"

// Score weights; they sum to 1
const (
	CalorieFitWeight  = 0.5
	PantryMatchWeight = 0.3
	FavoriteWeight    = 0.2

	// neutralCalorieFit is used when either side of the comparison is unknown
	neutralCalorieFit = 0.5
)

// ScoreBreakdown holds the components of a recipe score
type ScoreBreakdown struct {
	CalorieFit  float64
	PantryMatch float64
	Favorite    float64
	Total       float64
}

// Score rates how well a recipe fits a calorie target and the user's
// context, in [0,1]
func Score(recipe RecipeCandidate, targetCalories float64, pantry, favorites IDSet) float64 {
	return Breakdown(recipe, targetCalories, pantry, favorites).Total
}

// Breakdown computes the weighted score together with its components
func Breakdown(recipe RecipeCandidate, targetCalories float64, pantry, favorites IDSet) ScoreBreakdown {
	b := ScoreBreakdown{
		CalorieFit:  calorieFit(recipe.Calories, targetCalories),
		PantryMatch: pantryMatch(recipe, pantry),
	}
	if favorites.Has(recipe.ID) {
		b.Favorite = 1
	}

	b.Total = clamp01(CalorieFitWeight*b.CalorieFit +
		PantryMatchWeight*b.PantryMatch +
		FavoriteWeight*b.Favorite)
	return b
}

// calorieFit decays linearly with the distance from the target: a recipe at
// zero or twice the target scores 0
func calorieFit(calories *float64, target float64) float64 {
	if calories == nil || target <= 0 {
		return neutralCalorieFit
	}
	return clamp01(1 - math.Abs(*calories-target)/target)
}

func pantryMatch(recipe RecipeCandidate, pantry IDSet) float64 {
	ids := recipe.IngredientIDs()
	if len(ids) == 0 {
		return 0
	}

	var owned int
	for _, id := range ids {
		if pantry.Has(id) {
			owned++
		}
	}
	return float64(owned) / float64(len(ids))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
