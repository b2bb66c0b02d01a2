// Package nutrition contains the pure nutrition calculations of the planner:
// unit conversion to grams, ingredient-level nutrient aggregation and daily
// energy targets.
package nutrition

import (
	"fmt"
	"math"
	"strings"
)

// Unit represents a unit of measurement for an ingredient quantity
type Unit string

const (
	// Mass units
	UnitMilligram Unit = "mg"
	UnitGram      Unit = "g"
	UnitKilogram  Unit = "kg"
	UnitOunce     Unit = "oz"
	UnitPound     Unit = "lb"
	UnitEgg       Unit = "egg"

	// Volume units
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitDeciliter  Unit = "dl"
	UnitCentiliter Unit = "cl"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitFluidOunce Unit = "fl_oz"
	UnitPint       Unit = "pint"
	UnitQuart      Unit = "quart"
	UnitGallon     Unit = "gallon"
)

// UnitKind groups units by the dimension they measure
type UnitKind string

const (
	UnitKindUnknown UnitKind = "unknown"
	UnitKindMass    UnitKind = "mass"
	UnitKindVolume  UnitKind = "volume"
)

type unitDef struct {
	kind UnitKind
	// grams for mass units, milliliters for volume units
	toBase float64
}

var unitTable = map[Unit]unitDef{
	UnitMilligram: {kind: UnitKindMass, toBase: 0.001},
	UnitGram:      {kind: UnitKindMass, toBase: 1},
	UnitKilogram:  {kind: UnitKindMass, toBase: 1000},
	UnitOunce:     {kind: UnitKindMass, toBase: 28.3495},
	UnitPound:     {kind: UnitKindMass, toBase: 453.59237},
	UnitEgg:       {kind: UnitKindMass, toBase: 50},

	UnitMilliliter: {kind: UnitKindVolume, toBase: 1},
	UnitLiter:      {kind: UnitKindVolume, toBase: 1000},
	UnitDeciliter:  {kind: UnitKindVolume, toBase: 100},
	UnitCentiliter: {kind: UnitKindVolume, toBase: 10},
	UnitTeaspoon:   {kind: UnitKindVolume, toBase: 4.92892},
	UnitTablespoon: {kind: UnitKindVolume, toBase: 14.7868},
	UnitCup:        {kind: UnitKindVolume, toBase: 240},
	UnitFluidOunce: {kind: UnitKindVolume, toBase: 29.5735},
	UnitPint:       {kind: UnitKindVolume, toBase: 473.176},
	UnitQuart:      {kind: UnitKindVolume, toBase: 946.353},
	UnitGallon:     {kind: UnitKindVolume, toBase: 3785.41},
}

var unitAliases = map[string]Unit{
	"milligram": UnitMilligram, "milligrams": UnitMilligram,
	"gram": UnitGram, "grams": UnitGram, "gr": UnitGram,
	"kilogram": UnitKilogram, "kilograms": UnitKilogram, "kilo": UnitKilogram,
	"ounce": UnitOunce, "ounces": UnitOunce,
	"pound": UnitPound, "pounds": UnitPound, "lbs": UnitPound,
	"eggs": UnitEgg, "piece": UnitEgg, "pieces": UnitEgg,
	"milliliter": UnitMilliliter, "milliliters": UnitMilliliter, "millilitre": UnitMilliliter,
	"liter": UnitLiter, "liters": UnitLiter, "litre": UnitLiter,
	"deciliter": UnitDeciliter, "decilitre": UnitDeciliter,
	"centiliter": UnitCentiliter, "centilitre": UnitCentiliter,
	"teaspoon": UnitTeaspoon, "teaspoons": UnitTeaspoon,
	"tablespoon": UnitTablespoon, "tablespoons": UnitTablespoon,
	"cups": UnitCup,
	"floz": UnitFluidOunce, "fl oz": UnitFluidOunce, "fl-oz": UnitFluidOunce, "fluid_ounce": UnitFluidOunce,
	"pints": UnitPint,
	"quarts": UnitQuart,
	"gallons": UnitGallon,
}

// ParseUnit resolves a unit symbol or alias, case-insensitively
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := unitTable[Unit(key)]; ok {
		return Unit(key), nil
	}
	if u, ok := unitAliases[key]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Kind returns the dimension the unit measures
func (u Unit) Kind() UnitKind {
	def, ok := unitTable[u]
	if !ok {
		return UnitKindUnknown
	}
	return def.kind
}

// IsVolume reports whether converting u to grams needs a density
func (u Unit) IsVolume() bool {
	return u.Kind() == UnitKindVolume
}

// ToGrams converts a quantity to grams. Volume units are converted through
// milliliters and multiplied by density (g/ml). A volume unit without a
// positive density, an unknown unit or a quantity that is not a positive
// finite number yields 0.
func ToGrams(quantity float64, unit Unit, density float64) float64 {
	if !positiveFinite(quantity) {
		return 0
	}

	def, ok := unitTable[unit]
	if !ok {
		return 0
	}

	switch def.kind {
	case UnitKindMass:
		return Round2(quantity * def.toBase)
	case UnitKindVolume:
		if !positiveFinite(density) {
			return 0
		}
		return Round2(quantity * def.toBase * density)
	default:
		return 0
	}
}

// positiveFinite rejects zero, negatives, NaN and infinities
func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// MassToGrams converts mass quantities only; volume units yield 0
func MassToGrams(quantity float64, unit Unit) float64 {
	return ToGrams(quantity, unit, 0)
}

// RoundHalfUp rounds x to the given number of decimal places, with halves
// rounded away from zero
func RoundHalfUp(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	shifted := x * pow
	// nudge proportional to magnitude absorbs representation error on exact halves
	return math.Round(shifted+shifted*1e-12) / pow
}

// Round2 rounds x to two decimal places
func Round2(x float64) float64 {
	return RoundHalfUp(x, 2)
}
