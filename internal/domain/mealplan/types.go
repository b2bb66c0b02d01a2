// Package mealplan allocates recipes to the meal slots of a week. It scores
// candidates against a calorie target, the pantry and the user's favorites,
// and spreads them over the week with repetition and recency penalties.
package mealplan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/google/uuid"
)

// DaysInPlan is the planning horizon
const DaysInPlan = 7

// MealType labels a slot within a day
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// AllMealTypes lists the meal types in the order slots are filled
var AllMealTypes = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeSnack,
}

// ParseMealType resolves a meal type, case-insensitively
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToLower(strings.TrimSpace(s)))
	if mt.Valid() {
		return mt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMealType, s)
}

// Valid reports whether m is one of the declared meal types
func (m MealType) Valid() bool {
	for _, t := range AllMealTypes {
		if m == t {
			return true
		}
	}
	return false
}

// RecipeCandidate is a recipe eligible for planning. Calories is the value
// computed when the recipe was authored; nil means unknown.
type RecipeCandidate struct {
	ID          uuid.UUID
	Title       string
	MealType    MealType
	Calories    *float64
	Ingredients []nutrition.IngredientLine
}

// IngredientIDs returns the distinct ingredient IDs referenced by the recipe
func (r RecipeCandidate) IngredientIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.Ingredients))
	ids := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		if _, dup := seen[line.Ingredient.ID]; dup {
			continue
		}
		seen[line.Ingredient.ID] = struct{}{}
		ids = append(ids, line.Ingredient.ID)
	}
	return ids
}

// IDSet is a set of identifiers
type IDSet map[uuid.UUID]struct{}

// NewIDSet builds a set from ids
func NewIDSet(ids ...uuid.UUID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set; a nil set is empty
func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Request holds everything one allocation run needs
type Request struct {
	Profile     nutrition.Profile
	Candidates  []RecipeCandidate
	PantryIDs   IDSet
	FavoriteIDs IDSet
	// WeekStart labels day 0; aligning it to a Monday is the caller's job
	WeekStart time.Time
	// Facts feed the nutrition summaries of the finished grid
	Facts nutrition.FactTable
}

// sortedCandidates returns a copy of candidates ordered by ID, which fixes
// the tie-break order of the allocator
func sortedCandidates(candidates []RecipeCandidate) []RecipeCandidate {
	out := make([]RecipeCandidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
