package mealplan

import (
	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/alchemorsel/mealplanner/internal/ports/inbound"
	"github.com/google/uuid"
)

func toMacrosDTO(m nutrition.Macros) inbound.MacrosDTO {
	return inbound.MacrosDTO{
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
	}
}

func toWeeklyPlanDTO(grid *mealplan.Grid, titles map[uuid.UUID]string) *inbound.WeeklyPlanDTO {
	dto := &inbound.WeeklyPlanDTO{
		WeekStart:    grid.WeekStart,
		DailyTarget:  grid.DailyTarget,
		MealTarget:   grid.MealTarget,
		Days:         make([]inbound.PlanDayDTO, 0, len(grid.Days)),
		EmptySlots:   make([]inbound.SlotRefDTO, 0, len(grid.EmptySlots)),
		WeeklyTotal:  toMacrosDTO(grid.Weekly.Total),
		DailyAverage: toMacrosDTO(grid.Weekly.DailyAverage),
	}
	for _, mt := range grid.MealTypes {
		dto.MealTypes = append(dto.MealTypes, string(mt))
	}

	for _, day := range grid.Days {
		dayDTO := inbound.PlanDayDTO{
			Day:       day.Index,
			Date:      day.Date,
			Meals:     make([]inbound.PlannedMealDTO, 0, len(day.Slots)),
			Nutrition: toMacrosDTO(day.Nutrition),
		}
		for _, slot := range day.Slots {
			meal := inbound.PlannedMealDTO{MealType: string(slot.MealType)}
			if slot.Assigned {
				id := slot.RecipeID
				meal.RecipeID = &id
				meal.Title = titles[id]
				meal.Score = slot.Score
			}
			dayDTO.Meals = append(dayDTO.Meals, meal)
		}
		dto.Days = append(dto.Days, dayDTO)
	}

	for _, ref := range grid.EmptySlots {
		dto.EmptySlots = append(dto.EmptySlots, inbound.SlotRefDTO{
			Day:      ref.Day,
			MealType: string(ref.MealType),
		})
	}
	return dto
}
