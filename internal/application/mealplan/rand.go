package mealplan

import (
	"fmt"
	"math/rand/v2"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
)

// Jitter modes
const (
	JitterRandom = "random"
	JitterSeeded = "seeded"
	JitterOff    = "off"
)

// RandFactory creates the jitter source of one allocation run. Sources are
// not shared between runs because they are not safe for concurrent use.
type RandFactory func() mealplan.Rand

// NewRandFactory returns a factory for the given jitter mode. In seeded mode
// every run starts from the same seed, so equal requests produce equal plans.
func NewRandFactory(mode string, seed uint64) (RandFactory, error) {
	switch mode {
	case JitterRandom, "":
		return func() mealplan.Rand {
			return mealplan.NewSeededRand(rand.Uint64())
		}, nil
	case JitterSeeded:
		return func() mealplan.Rand {
			return mealplan.NewSeededRand(seed)
		}, nil
	case JitterOff:
		return func() mealplan.Rand {
			return mealplan.NoJitter
		}, nil
	default:
		return nil, fmt.Errorf("unknown jitter mode %q", mode)
	}
}
