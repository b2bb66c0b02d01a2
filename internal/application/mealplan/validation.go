package mealplan

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	apperrors "github.com/alchemorsel/mealplanner/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their json names
// and knows the planner's enum tags
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation rules
	validate.RegisterValidation("meal_type", validateMealType)
	validate.RegisterValidation("sex", validateSex)

	return validate
}

func validateMealType(fl validator.FieldLevel) bool {
	_, err := mealplan.ParseMealType(fl.Field().String())
	return err == nil
}

func validateSex(fl validator.FieldLevel) bool {
	_, err := nutrition.ParseSex(fl.Field().String())
	return err == nil
}

// validateStruct validates s and converts failures to a VALIDATION_FAILED error
func (s *MealPlanService) validateStruct(v interface{}) error {
	err := s.validator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(err, "failed to validate request")
	}

	out := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		field := e.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, apperrors.ValidationError{
			Field:   field,
			Value:   e.Value(),
			Tag:     e.Tag(),
			Message: validationMessage(field, e),
		})
	}
	return apperrors.NewValidationErrors(out)
}

// validationMessage formats a field error for callers
func validationMessage(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, e.Param())
	case "meal_type":
		return fmt.Sprintf("%s must be one of breakfast, lunch, dinner, snack", field)
	case "sex":
		return fmt.Sprintf("%s must be male or female", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
