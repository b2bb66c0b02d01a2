// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MealPlanService defines the meal planning use cases
// This is the primary port that the CLI and other driving adapters use
type MealPlanService interface {
	// ComputeDailyTarget returns the daily calorie target, or the default
	// when the profile is incomplete
	ComputeDailyTarget(ctx context.Context, profile ProfileInput) (float64, error)
	// RecommendedGoals returns BMR, TDEE and the macro split for display
	RecommendedGoals(ctx context.Context, profile ProfileInput) (*GoalsDTO, error)
	// GenerateWeeklyPlan fills a 7-day grid with the candidate recipes
	GenerateWeeklyPlan(ctx context.Context, cmd GenerateWeeklyPlanCommand) (*WeeklyPlanDTO, error)
	// AggregateNutrition sums the nutrients of a list of ingredient lines
	AggregateNutrition(ctx context.Context, cmd AggregateNutritionCommand) (*NutritionDTO, error)
}

// Command objects for operations

// ProfileInput is the user's nutrition profile. Missing measurements make
// the profile incomplete rather than invalid.
type ProfileInput struct {
	WeightKg      *float64 `json:"weight_kg,omitempty" yaml:"weight_kg" validate:"omitempty,gt=0,lt=700"`
	HeightCm      *float64 `json:"height_cm,omitempty" yaml:"height_cm" validate:"omitempty,gt=0,lt=300"`
	AgeYears      *int     `json:"age_years,omitempty" yaml:"age_years" validate:"omitempty,gt=0,lt=150"`
	Sex           string   `json:"sex,omitempty" yaml:"sex" validate:"omitempty,sex"`
	ActivityLevel string   `json:"activity_level,omitempty" yaml:"activity_level"`
}

// NutrientFactInput is the amount of one nutrient per 100g
type NutrientFactInput struct {
	Nutrient      string  `json:"nutrient" yaml:"nutrient" validate:"required"`
	AmountPer100g float64 `json:"amount_per_100g" yaml:"amount_per_100g" validate:"gte=0"`
}

// IngredientInput is a catalog ingredient with its nutrient facts
type IngredientInput struct {
	ID   uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Name string    `json:"name" yaml:"name"`
	// Density in g/ml; needed to convert volume units
	Density float64             `json:"density,omitempty" yaml:"density" validate:"gte=0"`
	Facts   []NutrientFactInput `json:"facts,omitempty" yaml:"facts" validate:"dive"`
}

// IngredientLineInput is a quantity of a catalog ingredient
type IngredientLineInput struct {
	IngredientID uuid.UUID `json:"ingredient_id" yaml:"ingredient_id"`
	Quantity     float64   `json:"quantity" yaml:"quantity"`
	Unit         string    `json:"unit" yaml:"unit"`
}

// RecipeInput is a candidate recipe tagged with exactly one meal type
type RecipeInput struct {
	ID          uuid.UUID             `json:"id" yaml:"id" validate:"required"`
	Title       string                `json:"title" yaml:"title"`
	MealType    string                `json:"meal_type" yaml:"meal_type" validate:"required,meal_type"`
	Calories    *float64              `json:"calories,omitempty" yaml:"calories" validate:"omitempty,gte=0"`
	Ingredients []IngredientLineInput `json:"ingredients,omitempty" yaml:"ingredients" validate:"dive"`
}

// GenerateWeeklyPlanCommand contains everything needed to plan one week
type GenerateWeeklyPlanCommand struct {
	Profile ProfileInput `json:"profile" yaml:"profile"`
	// WeekStart labels day 0; the Monday of the current week when zero
	WeekStart           time.Time         `json:"week_start" yaml:"week_start"`
	Recipes             []RecipeInput     `json:"recipes" yaml:"recipes" validate:"dive"`
	Ingredients         []IngredientInput `json:"ingredients" yaml:"ingredients" validate:"dive"`
	PantryIngredientIDs []uuid.UUID       `json:"pantry_ingredient_ids" yaml:"pantry_ingredient_ids"`
	FavoriteRecipeIDs   []uuid.UUID       `json:"favorite_recipe_ids" yaml:"favorite_recipe_ids"`
}

// AggregateNutritionCommand contains the lines of one recipe and the
// ingredients they reference
type AggregateNutritionCommand struct {
	Lines       []IngredientLineInput `json:"lines" yaml:"lines"`
	Ingredients []IngredientInput     `json:"ingredients" yaml:"ingredients" validate:"dive"`
	// ServingMultiplier scales the totals; 0 means 1
	ServingMultiplier float64 `json:"serving_multiplier,omitempty" yaml:"serving_multiplier" validate:"gte=0"`
}

// DTOs for responses

// MacrosDTO contains calories (kcal) and macronutrients (grams)
type MacrosDTO struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// GoalsDTO holds recommended daily goals
type GoalsDTO struct {
	BMR    float64   `json:"bmr"`
	TDEE   float64   `json:"tdee"`
	Macros MacrosDTO `json:"macros"`
	// Fallback is set when the profile was incomplete and defaults were used
	Fallback bool `json:"fallback"`
}

// PlannedMealDTO is one slot of a planned day
type PlannedMealDTO struct {
	MealType string     `json:"meal_type"`
	RecipeID *uuid.UUID `json:"recipe_id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Score    float64    `json:"score"`
}

// PlanDayDTO is one day of the plan
type PlanDayDTO struct {
	Day       int              `json:"day"`
	Date      time.Time        `json:"date"`
	Meals     []PlannedMealDTO `json:"meals"`
	Nutrition MacrosDTO        `json:"nutrition"`
}

// SlotRefDTO identifies a slot that could not be filled
type SlotRefDTO struct {
	Day      int    `json:"day"`
	MealType string `json:"meal_type"`
}

// WeeklyPlanDTO is the generated plan
type WeeklyPlanDTO struct {
	WeekStart    time.Time    `json:"week_start"`
	DailyTarget  float64      `json:"daily_target"`
	MealTarget   float64      `json:"meal_target"`
	MealTypes    []string     `json:"meal_types"`
	Days         []PlanDayDTO `json:"days"`
	EmptySlots   []SlotRefDTO `json:"empty_slots"`
	WeeklyTotal  MacrosDTO    `json:"weekly_total"`
	DailyAverage MacrosDTO    `json:"daily_average"`
}

// Complete reports whether every slot was filled
func (p *WeeklyPlanDTO) Complete() bool {
	return len(p.EmptySlots) == 0
}

// SkippedLineDTO identifies an ingredient line that contributed nothing
type SkippedLineDTO struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// NutritionDTO is the result of a nutrition aggregation
type NutritionDTO struct {
	Total             MacrosDTO        `json:"total"`
	ServingMultiplier float64          `json:"serving_multiplier"`
	SkippedLines      []SkippedLineDTO `json:"skipped_lines,omitempty"`
}
