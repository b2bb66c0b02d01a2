package mealplan_test

import (
	"fmt"
	"testing"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/alchemorsel/mealplanner/test/testutils"
)

// Catalog sizes per meal type
const (
	smallCatalog  = 10
	mediumCatalog = 100
	largeCatalog  = 1000
)

func benchmarkRequest(perMealType int) mealplan.Request {
	factory := testutils.NewCatalogFactory(7)
	var candidates []mealplan.RecipeCandidate
	for _, mt := range mealplan.AllMealTypes {
		candidates = append(candidates, factory.Candidates(perMealType, mt, 200, 1200)...)
	}

	pantry := make(mealplan.IDSet)
	favorites := make(mealplan.IDSet)
	facts := make(nutrition.FactTable)
	for i, c := range candidates {
		if i%3 == 0 {
			favorites[c.ID] = struct{}{}
		}
		for j, id := range c.IngredientIDs() {
			facts[id] = factory.Facts(350, 10, 60, 5)
			if j == 0 {
				pantry[id] = struct{}{}
			}
		}
	}

	return mealplan.Request{
		Profile:     testutils.CompleteProfile(),
		Candidates:  candidates,
		PantryIDs:   pantry,
		FavoriteIDs: favorites,
		Facts:       facts,
	}
}

func BenchmarkAllocate(b *testing.B) {
	for _, size := range []int{smallCatalog, mediumCatalog, largeCatalog} {
		req := benchmarkRequest(size)
		b.Run(fmt.Sprintf("recipes_per_meal_type_%d", size), func(b *testing.B) {
			allocator := mealplan.NewAllocator(mealplan.WithRand(mealplan.NewSeededRand(1)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := allocator.Allocate(req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
