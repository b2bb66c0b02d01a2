package mealplan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/alchemorsel/mealplanner/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// recordingObserver keeps every slot outcome
type recordingObserver struct {
	filled map[mealplan.SlotRef][]mealplan.Candidate
	empty  []mealplan.SlotRef
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{filled: make(map[mealplan.SlotRef][]mealplan.Candidate)}
}

func (o *recordingObserver) SlotFilled(ref mealplan.SlotRef, _ mealplan.Candidate, candidates []mealplan.Candidate) {
	o.filled[ref] = append([]mealplan.Candidate(nil), candidates...)
}

func (o *recordingObserver) SlotEmpty(ref mealplan.SlotRef) {
	o.empty = append(o.empty, ref)
}

func (o *recordingObserver) candidate(ref mealplan.SlotRef, id uuid.UUID) (mealplan.Candidate, bool) {
	for _, c := range o.filled[ref] {
		if c.RecipeID == id {
			return c, true
		}
	}
	return mealplan.Candidate{}, false
}

type AllocatorTestSuite struct {
	suite.Suite
	factory   *testutils.CatalogFactory
	weekStart time.Time
	// planning target of the reference profile
	target float64
}

func (s *AllocatorTestSuite) SetupTest() {
	s.factory = testutils.NewCatalogFactory(2024)
	s.weekStart = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	s.target = 2594
}

func (s *AllocatorTestSuite) request(candidates ...mealplan.RecipeCandidate) mealplan.Request {
	return mealplan.Request{
		Profile:    testutils.CompleteProfile(),
		Candidates: candidates,
		WeekStart:  s.weekStart,
	}
}

func (s *AllocatorTestSuite) TestPreconditions() {
	s.Run("IncompleteProfile_ShouldFailWithoutGrid", func() {
		// Arrange
		req := s.request(s.factory.Candidates(3, mealplan.MealTypeDinner, 300, 900)...)
		req.Profile.WeightKg = nil

		// Act
		grid, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NoJitter)).Allocate(req)

		// Assert
		s.Nil(grid)
		s.ErrorIs(err, mealplan.ErrIncompleteProfile)
	})

	s.Run("EmptyCatalog_ShouldFail", func() {
		grid, err := mealplan.NewAllocator().Allocate(s.request())

		s.Nil(grid)
		s.ErrorIs(err, mealplan.ErrEmptyCatalog)
	})

	s.Run("IncompleteProfileAndEmptyCatalog_ShouldReportProfile", func() {
		req := s.request()
		req.Profile = nutrition.Profile{}

		_, err := mealplan.NewAllocator().Allocate(req)

		s.True(errors.Is(err, mealplan.ErrIncompleteProfile))
	})

	s.Run("NoMealTypes_ShouldFail", func() {
		req := s.request(s.factory.Candidates(1, mealplan.MealTypeLunch, 300, 900)...)

		_, err := mealplan.NewAllocator(mealplan.WithMealTypes(nil)).Allocate(req)

		s.ErrorIs(err, mealplan.ErrNoMealTypes)
	})

	s.Run("DuplicateMealTypes_ShouldFail", func() {
		req := s.request(s.factory.Candidates(1, mealplan.MealTypeLunch, 300, 900)...)
		allocator := mealplan.NewAllocator(mealplan.WithMealTypes([]mealplan.MealType{
			mealplan.MealTypeLunch, mealplan.MealTypeDinner, mealplan.MealTypeLunch,
		}))

		grid, err := allocator.Allocate(req)

		s.Nil(grid)
		s.ErrorIs(err, mealplan.ErrDuplicateMealType)
	})
}

func (s *AllocatorTestSuite) TestAllocate_OneRecipePerMealType() {
	// Arrange
	var candidates []mealplan.RecipeCandidate
	for _, mt := range mealplan.AllMealTypes {
		candidates = append(candidates, testutils.NewCandidateBuilder(s.factory).
			WithMealType(mt).
			WithCalories(650).
			Build())
	}
	observer := newRecordingObserver()
	allocator := mealplan.NewAllocator(
		mealplan.WithRand(mealplan.NoJitter),
		mealplan.WithObserver(observer),
	)

	// Act
	grid, err := allocator.Allocate(s.request(candidates...))

	// Assert
	s.Require().NoError(err)
	s.Equal(s.target, grid.DailyTarget)
	s.Equal(648.5, grid.MealTarget)
	s.Equal(8, grid.AssignedCount())
	s.Len(grid.EmptySlots, 20)
	s.Len(observer.empty, 20)

	for d, day := range grid.Days {
		s.Equal(d, day.Index)
		s.Equal(s.weekStart.AddDate(0, 0, d), day.Date)
		s.Len(day.Slots, len(mealplan.AllMealTypes))
		for i, slot := range day.Slots {
			s.Equal(mealplan.AllMealTypes[i], slot.MealType)
			s.Equal(d < 2, slot.Assigned, "day %d %s", d, slot.MealType)
		}
	}

	// the second use is penalised to zero but still fills the slot
	second, ok := grid.Slot(1, mealplan.MealTypeDinner)
	s.True(ok)
	s.Zero(second.Score)

	pa := testutils.NewPlanAssertions(s.T())
	pa.WithinHardCap(grid)
	pa.SlotsMatchMealTypes(grid, candidates)
	pa.EmptySlotsConsistent(grid)
}

func (s *AllocatorTestSuite) TestAllocate_HardCapWithJitter() {
	// Arrange
	var candidates []mealplan.RecipeCandidate
	for _, mt := range mealplan.AllMealTypes {
		candidates = append(candidates, s.factory.Candidates(3, mt, 200, 1200)...)
	}

	for _, seed := range []uint64{1, 7, 42, 1234} {
		// Act
		grid, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NewSeededRand(seed))).
			Allocate(s.request(candidates...))

		// Assert
		s.Require().NoError(err)
		s.Equal(24, grid.AssignedCount(), "seed %d", seed)
		s.Len(grid.EmptySlots, 4)
		for _, ref := range grid.EmptySlots {
			s.Equal(6, ref.Day)
		}

		pa := testutils.NewPlanAssertions(s.T())
		pa.WithinHardCap(grid)
		pa.SlotsMatchMealTypes(grid, candidates)
		pa.EmptySlotsConsistent(grid)
	}
}

func (s *AllocatorTestSuite) TestAllocate_RecencyPenalty() {
	// Arrange
	ids := testutils.OrderedIDs(4)
	pantryItem := s.factory.Ingredient()
	a := testutils.NewCandidateBuilder(s.factory).WithID(ids[0]).WithMealType(mealplan.MealTypeBreakfast).
		WithCalories(s.target).WithIngredients(pantryItem).Build()
	b := testutils.NewCandidateBuilder(s.factory).WithID(ids[1]).WithMealType(mealplan.MealTypeBreakfast).
		WithCalories(s.target).Build()
	c := testutils.NewCandidateBuilder(s.factory).WithID(ids[2]).WithMealType(mealplan.MealTypeBreakfast).
		WithCalories(s.target).Build()
	d := testutils.NewCandidateBuilder(s.factory).WithID(ids[3]).WithMealType(mealplan.MealTypeBreakfast).
		WithCalories(s.target / 2).Build()

	req := s.request(d, c, b, a)
	req.PantryIDs = mealplan.NewIDSet(pantryItem.ID)
	req.FavoriteIDs = mealplan.NewIDSet(a.ID, b.ID)

	observer := newRecordingObserver()
	allocator := mealplan.NewAllocator(
		mealplan.WithRand(mealplan.NoJitter),
		mealplan.WithMealTypes([]mealplan.MealType{mealplan.MealTypeBreakfast}),
		mealplan.WithObserver(observer),
	)

	// Act
	grid, err := allocator.Allocate(req)

	// Assert
	s.Require().NoError(err)
	s.Equal(s.target, grid.MealTarget)

	expected := []uuid.UUID{a.ID, b.ID, c.ID, d.ID, a.ID}
	for day, id := range expected {
		slot, ok := grid.Slot(day, mealplan.MealTypeBreakfast)
		s.Require().True(ok)
		s.Equal(id, slot.RecipeID, "day %d", day)
	}

	day1, ok := observer.candidate(mealplan.SlotRef{Day: 1, MealType: mealplan.MealTypeBreakfast}, a.ID)
	s.Require().True(ok)
	s.InDelta(1.0, day1.BaseScore, 1e-9)
	s.InDelta(mealplan.BaseRepetitionPenalty, day1.RepetitionPenalty, 1e-9)
	s.InDelta(0.9, day1.RecencyPenalty, 1e-9)
	s.Zero(day1.Adjusted)

	day2, _ := observer.candidate(mealplan.SlotRef{Day: 2, MealType: mealplan.MealTypeBreakfast}, a.ID)
	s.InDelta(0.45, day2.RecencyPenalty, 1e-9)

	day3, _ := observer.candidate(mealplan.SlotRef{Day: 3, MealType: mealplan.MealTypeBreakfast}, a.ID)
	s.InDelta(0.225, day3.RecencyPenalty, 1e-9)
	s.InDelta(0.075, day3.Adjusted, 1e-9)

	day4, _ := observer.candidate(mealplan.SlotRef{Day: 4, MealType: mealplan.MealTypeBreakfast}, a.ID)
	s.Zero(day4.RecencyPenalty)
	s.InDelta(0.3, day4.Adjusted, 1e-9)
}

func (s *AllocatorTestSuite) TestAllocate_TieBreak() {
	ids := testutils.OrderedIDs(2)
	first := testutils.NewCandidateBuilder(s.factory).WithID(ids[0]).WithMealType(mealplan.MealTypeLunch).WithCalories(900).Build()
	second := testutils.NewCandidateBuilder(s.factory).WithID(ids[1]).WithMealType(mealplan.MealTypeLunch).WithCalories(900).Build()
	lunchOnly := mealplan.WithMealTypes([]mealplan.MealType{mealplan.MealTypeLunch})

	s.Run("EqualScores_ShouldPickLowestID", func() {
		grid, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NoJitter), lunchOnly).
			Allocate(s.request(second, first))

		s.Require().NoError(err)
		slot, _ := grid.Slot(0, mealplan.MealTypeLunch)
		s.Equal(first.ID, slot.RecipeID)
	})

	s.Run("Jitter_ShouldBreakTies", func() {
		rnd := &testutils.SequenceRand{Values: []float64{0.1, 0.9}}

		grid, err := mealplan.NewAllocator(mealplan.WithRand(rnd), lunchOnly).
			Allocate(s.request(first, second))

		s.Require().NoError(err)
		slot, _ := grid.Slot(0, mealplan.MealTypeLunch)
		s.Equal(second.ID, slot.RecipeID)
	})
}

func (s *AllocatorTestSuite) TestAllocate_DrawsOncePerEligibleCandidate() {
	// Arrange
	dinner := testutils.NewCandidateBuilder(s.factory).WithMealType(mealplan.MealTypeDinner).WithCalories(700).Build()
	others := s.factory.Candidates(5, mealplan.MealTypeSnack, 100, 300)
	rnd := new(testutils.MockRand)
	rnd.On("Float64").Return(0.5)

	// Act
	grid, err := mealplan.NewAllocator(
		mealplan.WithRand(rnd),
		mealplan.WithMealTypes([]mealplan.MealType{mealplan.MealTypeDinner}),
	).Allocate(s.request(append(others, dinner)...))

	// Assert
	s.Require().NoError(err)
	s.Equal(2, grid.AssignedCount())
	// snacks are filtered out and the capped recipe draws nothing
	rnd.AssertNumberOfCalls(s.T(), "Float64", 2)
}

func (s *AllocatorTestSuite) TestAllocate_Deterministic() {
	var candidates []mealplan.RecipeCandidate
	for _, mt := range mealplan.AllMealTypes {
		candidates = append(candidates, s.factory.Candidates(4, mt, 200, 1200)...)
	}

	s.Run("NoJitter", func() {
		first, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NoJitter)).Allocate(s.request(candidates...))
		s.Require().NoError(err)
		second, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NoJitter)).Allocate(s.request(candidates...))
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("SameSeed", func() {
		first, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NewSeededRand(99))).Allocate(s.request(candidates...))
		s.Require().NoError(err)
		second, err := mealplan.NewAllocator(mealplan.WithRand(mealplan.NewSeededRand(99))).Allocate(s.request(candidates...))
		s.Require().NoError(err)
		s.Equal(first, second)
	})
}

func (s *AllocatorTestSuite) TestAllocate_NutritionSummary() {
	// Arrange
	rice := s.factory.Ingredient()
	recipe := testutils.NewCandidateBuilder(s.factory).
		WithMealType(mealplan.MealTypeDinner).
		WithCalories(700).
		WithLine(rice, 200, nutrition.UnitGram).
		Build()
	req := s.request(recipe)
	req.Facts = nutrition.FactTable{rice.ID: s.factory.Facts(130, 2.7, 28, 0.3)}

	// Act
	grid, err := mealplan.NewAllocator(
		mealplan.WithRand(mealplan.NoJitter),
		mealplan.WithMealTypes([]mealplan.MealType{mealplan.MealTypeDinner}),
	).Allocate(req)

	// Assert
	s.Require().NoError(err)
	perServing := nutrition.Macros{Calories: 260, Protein: 5.4, Carbs: 56, Fat: 0.6}
	s.Equal(perServing, grid.Days[0].Nutrition)
	s.Equal(perServing, grid.Days[1].Nutrition)
	s.Equal(nutrition.Macros{}, grid.Days[2].Nutrition)
	s.Equal(nutrition.Macros{Calories: 520, Protein: 10.8, Carbs: 112, Fat: 1.2}, grid.Weekly.Total)
	s.Equal(nutrition.Macros{Calories: 74.29, Protein: 1.54, Carbs: 16, Fat: 0.17}, grid.Weekly.DailyAverage)
}

func TestAllocatorTestSuite(t *testing.T) {
	suite.Run(t, new(AllocatorTestSuite))
}
