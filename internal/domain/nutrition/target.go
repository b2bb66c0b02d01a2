package nutrition

import (
	"fmt"
	"strings"
)

// DefaultDailyCalories is used when the profile does not allow a BMR estimate
const DefaultDailyCalories = 2000.0

// Sex selects the Mifflin-St Jeor constant
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex resolves a sex value, case-insensitively
func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSex, s)
}

// ActivityLevel represents how active the user is during a typical week
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// ParseActivityLevel resolves an activity level. Unknown or empty input
// resolves to moderate together with ErrUnknownActivityLevel, so callers may
// log the fallback and carry on.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if _, ok := activityMultipliers[ActivityLevel(key)]; ok {
		return ActivityLevel(key), nil
	}
	return ActivityModerate, fmt.Errorf("%w: %q", ErrUnknownActivityLevel, s)
}

// Multiplier returns the TDEE multiplier; unknown levels count as moderate
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[ActivityModerate]
}

// Profile is the user's nutrition profile. Weight, height and age are
// optional because profiles may be partially filled in.
type Profile struct {
	WeightKg *float64
	HeightCm *float64
	AgeYears *int
	Sex      Sex
	Activity ActivityLevel
}

// Complete reports whether the profile allows a BMR estimate
func (p Profile) Complete() bool {
	if p.WeightKg == nil || p.HeightCm == nil || p.AgeYears == nil {
		return false
	}
	return p.Sex == SexMale || p.Sex == SexFemale
}

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation
func BMR(weightKg, heightCm float64, ageYears int, sex Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexMale {
		return base + 5
	}
	return base - 161
}

// ProfileBMR returns the profile's BMR, or false when it is indeterminate
func ProfileBMR(p Profile) (float64, bool) {
	if !p.Complete() {
		return 0, false
	}
	return BMR(*p.WeightKg, *p.HeightCm, *p.AgeYears, p.Sex), true
}

// TDEE scales a BMR by the activity multiplier, unrounded
func TDEE(bmr float64, level ActivityLevel) float64 {
	return bmr * level.Multiplier()
}

// DailyTarget returns the daily calorie target rounded to two decimals, or
// DefaultDailyCalories when the profile is incomplete
func DailyTarget(p Profile) float64 {
	bmr, ok := ProfileBMR(p)
	if !ok {
		return DefaultDailyCalories
	}
	return Round2(TDEE(bmr, p.Activity))
}

// PlanningTarget returns the whole-kcal daily target used for plan generation
func PlanningTarget(p Profile) (float64, error) {
	bmr, ok := ProfileBMR(p)
	if !ok {
		return 0, ErrIncompleteProfile
	}
	return RoundHalfUp(TDEE(bmr, p.Activity), 0), nil
}

// MacroSplit divides a calorie budget into protein 25%, carbs 45% and fat 30%
func MacroSplit(kcal float64) Macros {
	return Macros{
		Calories: Round2(kcal),
		Protein:  Round2(kcal * 0.25 / 4),
		Carbs:    Round2(kcal * 0.45 / 4),
		Fat:      Round2(kcal * 0.30 / 9),
	}
}

// Goals are the recommended daily goals for a profile
type Goals struct {
	BMR      float64
	TDEE     float64
	Macros   Macros
	Fallback bool
}

// RecommendedGoals computes display goals. For incomplete profiles BMR and
// TDEE are zero and the macros are split from DefaultDailyCalories.
func RecommendedGoals(p Profile) Goals {
	bmr, ok := ProfileBMR(p)
	if !ok {
		return Goals{
			Macros:   MacroSplit(DefaultDailyCalories),
			Fallback: true,
		}
	}

	tdee := Round2(TDEE(bmr, p.Activity))
	return Goals{
		BMR:    Round2(bmr),
		TDEE:   tdee,
		Macros: MacroSplit(tdee),
	}
}
