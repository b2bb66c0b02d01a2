// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"testing"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PlanAssertions provides plan-specific assertion methods
type PlanAssertions struct {
	t *testing.T
}

// NewPlanAssertions creates a new plan assertions helper
func NewPlanAssertions(t *testing.T) *PlanAssertions {
	return &PlanAssertions{t: t}
}

// WithinHardCap asserts that no recipe is used more than MaxUsesPerMealType
// times for the same meal type
func (pa *PlanAssertions) WithinHardCap(grid *mealplan.Grid) {
	require.NotNil(pa.t, grid, "Grid should not be nil")
	for key, count := range grid.UsageCounts() {
		assert.LessOrEqual(pa.t, count, mealplan.MaxUsesPerMealType,
			"Recipe %s used %d times for %s", key.RecipeID, count, key.MealType)
	}
}

// SlotsMatchMealTypes asserts that every assigned recipe carries the meal
// type of the slot it fills
func (pa *PlanAssertions) SlotsMatchMealTypes(grid *mealplan.Grid, candidates []mealplan.RecipeCandidate) {
	require.NotNil(pa.t, grid, "Grid should not be nil")
	tags := make(map[string]mealplan.MealType, len(candidates))
	for _, c := range candidates {
		tags[c.ID.String()] = c.MealType
	}
	for _, day := range grid.Days {
		for _, slot := range day.Slots {
			if !slot.Assigned {
				continue
			}
			assert.Equal(pa.t, slot.MealType, tags[slot.RecipeID.String()],
				"Day %d %s assigned a recipe tagged for another meal", day.Index, slot.MealType)
		}
	}
}

// EmptySlotsConsistent asserts that EmptySlots lists exactly the unassigned slots
func (pa *PlanAssertions) EmptySlotsConsistent(grid *mealplan.Grid) {
	require.NotNil(pa.t, grid, "Grid should not be nil")
	empty := make(map[mealplan.SlotRef]bool, len(grid.EmptySlots))
	for _, ref := range grid.EmptySlots {
		empty[ref] = true
	}
	for _, day := range grid.Days {
		for _, slot := range day.Slots {
			ref := mealplan.SlotRef{Day: day.Index, MealType: slot.MealType}
			assert.Equal(pa.t, !slot.Assigned, empty[ref], "Slot %+v", ref)
		}
	}
}
