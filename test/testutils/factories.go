// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// CompleteProfile returns the reference profile: 70kg, 175cm, 25 years,
// male, moderately active
func CompleteProfile() nutrition.Profile {
	return nutrition.Profile{
		WeightKg: Float(70),
		HeightCm: Float(175),
		AgeYears: Int(25),
		Sex:      nutrition.SexMale,
		Activity: nutrition.ActivityModerate,
	}
}

// CatalogFactory provides methods to create test ingredients and recipes
type CatalogFactory struct {
	faker *gofakeit.Faker
}

// NewCatalogFactory creates a new catalog factory with seeded faker
func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{
		faker: gofakeit.New(seed),
	}
}

// Ingredient creates an ingredient with a random name and no density
func (f *CatalogFactory) Ingredient() *nutrition.Ingredient {
	return &nutrition.Ingredient{
		ID:   f.id(),
		Name: f.faker.Vegetable(),
	}
}

// LiquidIngredient creates an ingredient with the given density (g/ml)
func (f *CatalogFactory) LiquidIngredient(density float64) *nutrition.Ingredient {
	ing := f.Ingredient()
	ing.Name = f.faker.Fruit() + " juice"
	ing.Density = density
	return ing
}

// Facts returns per-100g facts in the display names a nutrient catalog uses
func (f *CatalogFactory) Facts(kcal, protein, carbs, fat float64) []nutrition.NutrientFact {
	return []nutrition.NutrientFact{
		{Nutrient: "Calories", AmountPer100g: kcal},
		{Nutrient: "Protein", AmountPer100g: protein},
		{Nutrient: "Carbohydrate, by difference", AmountPer100g: carbs},
		{Nutrient: "Total lipid (fat)", AmountPer100g: fat},
	}
}

// Candidates creates n recipes of the given meal type with random calories
// between min and max
func (f *CatalogFactory) Candidates(n int, mealType mealplan.MealType, min, max float64) []mealplan.RecipeCandidate {
	out := make([]mealplan.RecipeCandidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewCandidateBuilder(f).
			WithMealType(mealType).
			WithCalories(f.faker.Float64Range(min, max)).
			WithIngredients(f.Ingredient(), f.Ingredient()).
			Build())
	}
	return out
}

// id derives a uuid from the faker stream so seeded factories are reproducible
func (f *CatalogFactory) id() uuid.UUID {
	id, err := uuid.Parse(f.faker.UUID())
	if err != nil {
		return uuid.New()
	}
	return id
}

// CandidateBuilder provides a fluent interface for building recipe candidates
type CandidateBuilder struct {
	id          uuid.UUID
	title       string
	mealType    mealplan.MealType
	calories    *float64
	ingredients []nutrition.IngredientLine
}

// NewCandidateBuilder creates a builder with a random title and a dinner tag
func NewCandidateBuilder(f *CatalogFactory) *CandidateBuilder {
	if f == nil {
		f = NewCatalogFactory(time.Now().UnixNano())
	}
	return &CandidateBuilder{
		id:       f.id(),
		title:    f.faker.Dessert(),
		mealType: mealplan.MealTypeDinner,
	}
}

// WithID sets the recipe ID
func (b *CandidateBuilder) WithID(id uuid.UUID) *CandidateBuilder {
	b.id = id
	return b
}

// WithTitle sets the recipe title
func (b *CandidateBuilder) WithTitle(title string) *CandidateBuilder {
	b.title = title
	return b
}

// WithMealType sets the meal type tag
func (b *CandidateBuilder) WithMealType(mealType mealplan.MealType) *CandidateBuilder {
	b.mealType = mealType
	return b
}

// WithCalories sets the precomputed calories
func (b *CandidateBuilder) WithCalories(kcal float64) *CandidateBuilder {
	b.calories = Float(kcal)
	return b
}

// WithIngredients adds 100g lines of the given ingredients
func (b *CandidateBuilder) WithIngredients(ingredients ...*nutrition.Ingredient) *CandidateBuilder {
	for _, ing := range ingredients {
		b.ingredients = append(b.ingredients, nutrition.IngredientLine{
			Ingredient: ing,
			Quantity:   100,
			Unit:       nutrition.UnitGram,
		})
	}
	return b
}

// WithLine adds an ingredient line
func (b *CandidateBuilder) WithLine(ing *nutrition.Ingredient, quantity float64, unit nutrition.Unit) *CandidateBuilder {
	b.ingredients = append(b.ingredients, nutrition.IngredientLine{
		Ingredient: ing,
		Quantity:   quantity,
		Unit:       unit,
	})
	return b
}

// Build returns the candidate
func (b *CandidateBuilder) Build() mealplan.RecipeCandidate {
	return mealplan.RecipeCandidate{
		ID:          b.id,
		Title:       b.title,
		MealType:    b.mealType,
		Calories:    b.calories,
		Ingredients: b.ingredients,
	}
}

// OrderedIDs returns n IDs whose string forms sort in the returned order
func OrderedIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		var id uuid.UUID
		id[15] = byte(i + 1)
		ids[i] = id
	}
	return ids
}
