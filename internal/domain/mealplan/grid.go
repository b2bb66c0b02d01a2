package mealplan

import (
	"time"

	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/google/uuid"
)

// Slot is one meal of one day
type Slot struct {
	MealType MealType
	RecipeID uuid.UUID
	Assigned bool
	// Score is the variety-adjusted score the recipe won the slot with
	Score float64
}

// Day holds the slots of one day in meal type order
type Day struct {
	Index     int
	Date      time.Time
	Slots     []Slot
	Nutrition nutrition.Macros
}

// SlotRef addresses a slot in the grid
type SlotRef struct {
	Day      int
	MealType MealType
}

// WeeklySummary aggregates the daily nutrition of a plan
type WeeklySummary struct {
	Total        nutrition.Macros
	DailyAverage nutrition.Macros
}

// Grid is the result of an allocation run
type Grid struct {
	WeekStart   time.Time
	MealTypes   []MealType
	DailyTarget float64
	MealTarget  float64
	Days        [DaysInPlan]Day
	// EmptySlots lists slots for which no candidate was eligible
	EmptySlots []SlotRef
	Weekly     WeeklySummary
}

// Slot returns the slot for a day and meal type
func (g *Grid) Slot(day int, mealType MealType) (Slot, bool) {
	if day < 0 || day >= DaysInPlan {
		return Slot{}, false
	}
	for _, s := range g.Days[day].Slots {
		if s.MealType == mealType {
			return s, true
		}
	}
	return Slot{}, false
}

// UsageKey identifies a recipe used for a meal type
type UsageKey struct {
	RecipeID uuid.UUID
	MealType MealType
}

// UsageCounts counts the assigned slots per recipe and meal type
func (g *Grid) UsageCounts() map[UsageKey]int {
	counts := make(map[UsageKey]int)
	for _, day := range g.Days {
		for _, s := range day.Slots {
			if s.Assigned {
				counts[UsageKey{RecipeID: s.RecipeID, MealType: s.MealType}]++
			}
		}
	}
	return counts
}

// AssignedCount returns the number of filled slots
func (g *Grid) AssignedCount() int {
	var n int
	for _, day := range g.Days {
		for _, s := range day.Slots {
			if s.Assigned {
				n++
			}
		}
	}
	return n
}

// summarize fills the per-day nutrition and the weekly summary
func (g *Grid) summarize(byID map[uuid.UUID]RecipeCandidate, facts nutrition.FactTable) {
	var week nutrition.Macros
	for d := range g.Days {
		var day nutrition.Macros
		for _, s := range g.Days[d].Slots {
			if !s.Assigned {
				continue
			}
			day = day.Add(nutrition.Aggregate(byID[s.RecipeID].Ingredients, facts))
		}
		g.Days[d].Nutrition = day.Rounded()
		week = week.Add(day)
	}

	g.Weekly = WeeklySummary{
		Total:        week.Rounded(),
		DailyAverage: week.Scale(1.0 / DaysInPlan).Rounded(),
	}
}
