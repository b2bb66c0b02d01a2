package mealplan

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/google/uuid"
)

// Variety policy
const (
	BaseRepetitionPenalty = 0.7
	RecentUsePenalty      = 0.9
	RandomizationFactor   = 0.05
	RecentUseWindow       = 3 // days
	MaxUsesPerMealType    = 2 // per recipe per meal type, for the whole week
)

// Rand is the jitter source. Float64 returns a value in [0,1).
type Rand interface {
	Float64() float64
}

type noJitter struct{}

func (noJitter) Float64() float64 { return 0.5 }

// NoJitter centers every draw, so allocation becomes deterministic
var NoJitter Rand = noJitter{}

// NewSeededRand returns a reproducible jitter source. It is not safe for
// concurrent use; create one per run.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Candidate is a scored candidate for one slot
type Candidate struct {
	RecipeID          uuid.UUID
	BaseScore         float64
	RepetitionPenalty float64
	RecencyPenalty    float64
	Jitter            float64
	Adjusted          float64
}

// Observer receives allocation progress. Implementations must not retain the
// candidates slice.
type Observer interface {
	SlotFilled(ref SlotRef, chosen Candidate, candidates []Candidate)
	SlotEmpty(ref SlotRef)
}

type nopObserver struct{}

func (nopObserver) SlotFilled(SlotRef, Candidate, []Candidate) {}
func (nopObserver) SlotEmpty(SlotRef)                          {}

// Allocator fills a week of meal slots
type Allocator struct {
	rand      Rand
	mealTypes []MealType
	observer  Observer
}

// Option configures an Allocator
type Option func(*Allocator)

// WithRand sets the jitter source
func WithRand(r Rand) Option {
	return func(a *Allocator) {
		if r != nil {
			a.rand = r
		}
	}
}

// WithMealTypes sets the meal types filled each day, in order
func WithMealTypes(types []MealType) Option {
	return func(a *Allocator) {
		a.mealTypes = append([]MealType(nil), types...)
	}
}

// WithObserver registers an observer for slot outcomes
func WithObserver(o Observer) Option {
	return func(a *Allocator) {
		if o != nil {
			a.observer = o
		}
	}
}

// NewAllocator creates an allocator. Without options it fills breakfast,
// lunch, dinner and snack and draws jitter from a randomly seeded source.
// An Allocator is meant for a single run and is not safe for concurrent use.
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		mealTypes: append([]MealType(nil), AllMealTypes...),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rand == nil {
		a.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return a
}

// MealTypes returns the meal types the allocator fills
func (a *Allocator) MealTypes() []MealType {
	return append([]MealType(nil), a.mealTypes...)
}

// usageState tracks what has been chosen so far in one run
type usageState struct {
	total     map[uuid.UUID]int
	perMeal   map[UsageKey]int
	byDay     []map[MealType]uuid.UUID
	scoreMemo map[uuid.UUID]float64
}

func newUsageState() *usageState {
	return &usageState{
		total:     make(map[uuid.UUID]int),
		perMeal:   make(map[UsageKey]int),
		byDay:     make([]map[MealType]uuid.UUID, DaysInPlan),
		scoreMemo: make(map[uuid.UUID]float64),
	}
}

func (u *usageState) record(day int, mealType MealType, id uuid.UUID) {
	u.total[id]++
	u.perMeal[UsageKey{RecipeID: id, MealType: mealType}]++
	if u.byDay[day] == nil {
		u.byDay[day] = make(map[MealType]uuid.UUID)
	}
	u.byDay[day][mealType] = id
}

// recencyPenalty charges RecentUsePenalty for yesterday's repeat of the same
// meal type, halving for every further day back within the window
func (u *usageState) recencyPenalty(day int, mealType MealType, id uuid.UUID) float64 {
	var penalty float64
	window := min(day, RecentUseWindow)
	for daysAgo := 1; daysAgo <= window; daysAgo++ {
		chosen, ok := u.byDay[day-daysAgo][mealType]
		if ok && chosen == id {
			penalty += RecentUsePenalty * math.Pow(0.5, float64(daysAgo-1))
		}
	}
	return penalty
}

// Allocate fills the 7-day grid. It fails before touching any slot when the
// profile is incomplete or there are no candidates. Slots without an eligible
// candidate are left empty and listed in Grid.EmptySlots.
func (a *Allocator) Allocate(req Request) (*Grid, error) {
	if len(a.mealTypes) == 0 {
		return nil, ErrNoMealTypes
	}
	if err := checkDistinct(a.mealTypes); err != nil {
		return nil, err
	}

	dailyTarget, err := nutrition.PlanningTarget(req.Profile)
	if err != nil {
		return nil, err
	}
	if len(req.Candidates) == 0 {
		return nil, ErrEmptyCatalog
	}

	mealTarget := nutrition.Round2(dailyTarget / float64(len(a.mealTypes)))
	candidates := sortedCandidates(req.Candidates)
	byID := make(map[uuid.UUID]RecipeCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	grid := &Grid{
		WeekStart:   req.WeekStart,
		MealTypes:   a.MealTypes(),
		DailyTarget: dailyTarget,
		MealTarget:  mealTarget,
	}
	state := newUsageState()

	for d := 0; d < DaysInPlan; d++ {
		grid.Days[d] = Day{
			Index: d,
			Date:  req.WeekStart.AddDate(0, 0, d),
			Slots: make([]Slot, 0, len(a.mealTypes)),
		}

		for _, mealType := range a.mealTypes {
			ref := SlotRef{Day: d, MealType: mealType}
			slot := Slot{MealType: mealType}

			scored := a.scoreSlot(ref, candidates, mealTarget, req, state)
			if len(scored) == 0 {
				grid.EmptySlots = append(grid.EmptySlots, ref)
				grid.Days[d].Slots = append(grid.Days[d].Slots, slot)
				a.observer.SlotEmpty(ref)
				continue
			}

			best := scored[0]
			for _, c := range scored[1:] {
				if c.Adjusted > best.Adjusted {
					best = c
				}
			}

			state.record(d, mealType, best.RecipeID)
			slot.RecipeID = best.RecipeID
			slot.Assigned = true
			slot.Score = best.Adjusted
			grid.Days[d].Slots = append(grid.Days[d].Slots, slot)
			a.observer.SlotFilled(ref, best, scored)
		}
	}

	grid.summarize(byID, req.Facts)
	return grid, nil
}

// checkDistinct enforces one slot per meal type per day
func checkDistinct(types []MealType) error {
	seen := make(map[MealType]bool, len(types))
	for _, mt := range types {
		if seen[mt] {
			return fmt.Errorf("%w: %q", ErrDuplicateMealType, mt)
		}
		seen[mt] = true
	}
	return nil
}

// scoreSlot returns the variety-adjusted scores of every eligible candidate,
// in candidate order
func (a *Allocator) scoreSlot(
	ref SlotRef,
	candidates []RecipeCandidate,
	mealTarget float64,
	req Request,
	state *usageState,
) []Candidate {
	var scored []Candidate
	for _, recipe := range candidates {
		if recipe.MealType != ref.MealType {
			continue
		}
		if state.perMeal[UsageKey{RecipeID: recipe.ID, MealType: ref.MealType}] >= MaxUsesPerMealType {
			continue
		}

		base, ok := state.scoreMemo[recipe.ID]
		if !ok {
			base = Score(recipe, mealTarget, req.PantryIDs, req.FavoriteIDs)
			state.scoreMemo[recipe.ID] = base
		}

		c := Candidate{
			RecipeID:          recipe.ID,
			BaseScore:         base,
			RepetitionPenalty: float64(state.total[recipe.ID]) * BaseRepetitionPenalty,
			RecencyPenalty:    state.recencyPenalty(ref.Day, ref.MealType, recipe.ID),
			Jitter:            (a.rand.Float64() - 0.5) * RandomizationFactor,
		}
		c.Adjusted = math.Max(0, c.BaseScore-c.RepetitionPenalty-c.RecencyPenalty+c.Jitter)
		scored = append(scored, c)
	}
	return scored
}
