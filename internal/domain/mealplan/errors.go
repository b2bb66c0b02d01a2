package mealplan

import (
	"errors"

	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
)

// Domain errors for meal plan allocation

var (
	// Precondition failures, fatal to an allocation run
	ErrIncompleteProfile = nutrition.ErrIncompleteProfile
	ErrEmptyCatalog      = errors.New("recipe catalog is empty")

	// Boundary parsing errors
	ErrInvalidMealType   = errors.New("invalid meal type")
	ErrNoMealTypes       = errors.New("at least one meal type is required")
	ErrDuplicateMealType = errors.New("duplicate meal type")
)
