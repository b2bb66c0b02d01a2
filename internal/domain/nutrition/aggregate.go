package nutrition

import (
	"strings"

	"github.com/google/uuid"
)

// Ingredient is a resolved catalog ingredient
type Ingredient struct {
	ID   uuid.UUID
	Name string
	// Density in grams per milliliter, 0 when unknown
	Density float64
}

// IngredientLine is one quantity of an ingredient in a recipe
type IngredientLine struct {
	Ingredient *Ingredient
	Quantity   float64
	Unit       Unit
}

// NutrientFact is the amount of one nutrient per 100g of an ingredient
type NutrientFact struct {
	Nutrient      string
	AmountPer100g float64
}

// FactTable holds the nutrient facts of each ingredient, keyed by ingredient ID
type FactTable map[uuid.UUID][]NutrientFact

// Macros contains calories (kcal) and macronutrients (grams)
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the sum of m and o
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Scale multiplies every value, e.g. by a number of servings
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Calories: m.Calories * factor,
		Protein:  m.Protein * factor,
		Carbs:    m.Carbs * factor,
		Fat:      m.Fat * factor,
	}
}

// Rounded rounds every value to two decimal places
func (m Macros) Rounded() Macros {
	return Macros{
		Calories: Round2(m.Calories),
		Protein:  Round2(m.Protein),
		Carbs:    Round2(m.Carbs),
		Fat:      Round2(m.Fat),
	}
}

// SkipReason explains why an ingredient line contributed nothing
type SkipReason string

const (
	SkipMissingIngredient   SkipReason = "missing_ingredient"
	SkipNonPositiveQuantity SkipReason = "non_positive_quantity"
	SkipUnknownUnit         SkipReason = "unknown_unit"
	SkipMissingDensity      SkipReason = "missing_density"
	SkipNoFacts             SkipReason = "no_facts"
)

// SkippedLine identifies a degraded ingredient line by its position
type SkippedLine struct {
	Index  int
	Reason SkipReason
}

// Aggregate sums the calories and macros of the given lines. Lines that
// cannot be resolved contribute zero.
func Aggregate(lines []IngredientLine, facts FactTable) Macros {
	total, _ := AggregateWithReport(lines, facts)
	return total
}

// AggregateWithReport behaves like Aggregate and also reports the lines
// that were skipped
func AggregateWithReport(lines []IngredientLine, facts FactTable) (Macros, []SkippedLine) {
	var (
		total   Macros
		skipped []SkippedLine
	)

	for i, line := range lines {
		if reason, ok := lineSkipReason(line, facts); ok {
			skipped = append(skipped, SkippedLine{Index: i, Reason: reason})
			continue
		}

		grams := ToGrams(line.Quantity, line.Unit, line.Ingredient.Density)
		for _, fact := range facts[line.Ingredient.ID] {
			amount := Round2(fact.AmountPer100g * grams / 100)
			switch classifyNutrient(fact.Nutrient) {
			case bucketCalories:
				total.Calories += amount
			case bucketProtein:
				total.Protein += amount
			case bucketCarbs:
				total.Carbs += amount
			case bucketFat:
				total.Fat += amount
			}
		}
	}

	return total, skipped
}

func lineSkipReason(line IngredientLine, facts FactTable) (SkipReason, bool) {
	switch {
	case line.Ingredient == nil:
		return SkipMissingIngredient, true
	case !positiveFinite(line.Quantity):
		return SkipNonPositiveQuantity, true
	case line.Unit.Kind() == UnitKindUnknown:
		return SkipUnknownUnit, true
	case line.Unit.IsVolume() && !positiveFinite(line.Ingredient.Density):
		return SkipMissingDensity, true
	case len(facts[line.Ingredient.ID]) == 0:
		return SkipNoFacts, true
	}
	return "", false
}

type nutrientBucket int

const (
	bucketNone nutrientBucket = iota
	bucketCalories
	bucketProtein
	bucketCarbs
	bucketFat
)

// classifyNutrient maps a nutrient display name to a bucket: "calories" must
// match exactly, the macros match by substring
func classifyNutrient(name string) nutrientBucket {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "calories":
		return bucketCalories
	case strings.Contains(n, "protein"):
		return bucketProtein
	case strings.Contains(n, "carb"):
		return bucketCarbs
	case strings.Contains(n, "fat"):
		return bucketFat
	default:
		return bucketNone
	}
}
