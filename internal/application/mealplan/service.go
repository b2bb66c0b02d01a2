// Package mealplan implements the meal planning use cases of inbound.MealPlanService.
package mealplan

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/nutrition"
	"github.com/alchemorsel/mealplanner/internal/infrastructure/monitoring"
	"github.com/alchemorsel/mealplanner/internal/ports/inbound"
	apperrors "github.com/alchemorsel/mealplanner/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Options configures the meal plan service
type Options struct {
	// MealTypes are filled each day in this order; all meal types when empty
	MealTypes []mealplan.MealType
	// RandFactory creates the jitter source of each run; random when nil
	RandFactory RandFactory
	// Now is the clock used to default the week start
	Now func() time.Time
}

// MealPlanService implements the meal planning use cases
type MealPlanService struct {
	mealTypes   []mealplan.MealType
	randFactory RandFactory
	now         func() time.Time
	validator   *validator.Validate
	metrics     *monitoring.PlannerMetrics
	tracing     *monitoring.TracingProvider
	logger      *zap.Logger
}

// NewMealPlanService creates a new meal plan service. metrics and tracing
// may be nil.
func NewMealPlanService(
	opts Options,
	metrics *monitoring.PlannerMetrics,
	tracing *monitoring.TracingProvider,
	logger *zap.Logger,
) inbound.MealPlanService {
	s := &MealPlanService{
		mealTypes:   opts.MealTypes,
		randFactory: opts.RandFactory,
		now:         opts.Now,
		validator:   newValidator(),
		metrics:     metrics,
		tracing:     tracing,
		logger:      logger.Named("mealplan-service"),
	}
	if len(s.mealTypes) == 0 {
		s.mealTypes = mealplan.AllMealTypes
	}
	if s.randFactory == nil {
		s.randFactory, _ = NewRandFactory(JitterRandom, 0)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ComputeDailyTarget returns the daily calorie target of a profile
func (s *MealPlanService) ComputeDailyTarget(ctx context.Context, in inbound.ProfileInput) (float64, error) {
	ctx, span := s.tracing.StartUseCaseSpan(ctx, "mealplan.ComputeDailyTarget")
	defer span.End()

	if err := s.validateStruct(in); err != nil {
		monitoring.RecordError(span, err)
		return 0, err
	}

	profile := s.toProfile(ctx, in)
	target := nutrition.DailyTarget(profile)
	if !profile.Complete() {
		s.metrics.RecordTargetFallback()
		monitoring.WithTraceContext(ctx, s.logger).Info("Profile incomplete, using default daily target",
			zap.Strings("missing_fields", missingFields(profile)),
			zap.Float64("daily_target", target),
		)
	}

	span.SetAttributes(attribute.Float64("daily_target", target))
	return target, nil
}

// RecommendedGoals returns the display goals of a profile
func (s *MealPlanService) RecommendedGoals(ctx context.Context, in inbound.ProfileInput) (*inbound.GoalsDTO, error) {
	ctx, span := s.tracing.StartUseCaseSpan(ctx, "mealplan.RecommendedGoals")
	defer span.End()

	if err := s.validateStruct(in); err != nil {
		monitoring.RecordError(span, err)
		return nil, err
	}

	goals := nutrition.RecommendedGoals(s.toProfile(ctx, in))
	if goals.Fallback {
		s.metrics.RecordTargetFallback()
	}

	return &inbound.GoalsDTO{
		BMR:      goals.BMR,
		TDEE:     goals.TDEE,
		Macros:   toMacrosDTO(goals.Macros),
		Fallback: goals.Fallback,
	}, nil
}

// GenerateWeeklyPlan fills a week of meal slots
func (s *MealPlanService) GenerateWeeklyPlan(ctx context.Context, cmd inbound.GenerateWeeklyPlanCommand) (*inbound.WeeklyPlanDTO, error) {
	start := time.Now()
	ctx, span := s.tracing.StartUseCaseSpan(ctx, "mealplan.GenerateWeeklyPlan",
		attribute.Int("recipes.count", len(cmd.Recipes)),
		attribute.Int("ingredients.count", len(cmd.Ingredients)),
	)
	defer span.End()

	logger := monitoring.WithTraceContext(ctx, s.logger)
	logger.Info("Generating weekly plan",
		zap.Int("recipes", len(cmd.Recipes)),
		zap.Int("pantry_items", len(cmd.PantryIngredientIDs)),
		zap.Int("favorites", len(cmd.FavoriteRecipeIDs)),
	)

	plan, err := s.generate(ctx, cmd, logger)
	if err != nil {
		outcome := monitoring.OutcomeFailed
		if !apperrors.Is(err, apperrors.CodeInternal) {
			outcome = monitoring.OutcomeRejected
		}
		s.metrics.RecordPlan(outcome, time.Since(start))
		monitoring.RecordError(span, err)
		logger.Warn("Weekly plan not generated",
			zap.String("code", string(apperrors.GetCode(err))),
			zap.Error(err),
		)
		return nil, err
	}

	outcome := monitoring.OutcomeComplete
	if !plan.Complete() {
		outcome = monitoring.OutcomePartial
	}
	elapsed := time.Since(start)
	s.metrics.RecordPlan(outcome, elapsed)
	span.SetAttributes(
		attribute.Int("plan.empty_slots", len(plan.EmptySlots)),
		attribute.String("plan.outcome", outcome),
	)

	logger.Info("Weekly plan generated",
		zap.String("week_start", plan.WeekStart.Format(time.DateOnly)),
		zap.Float64("daily_target", plan.DailyTarget),
		zap.Int("empty_slots", len(plan.EmptySlots)),
		zap.Duration("elapsed", elapsed),
	)

	return plan, nil
}

func (s *MealPlanService) generate(ctx context.Context, cmd inbound.GenerateWeeklyPlanCommand, logger *zap.Logger) (*inbound.WeeklyPlanDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, "plan generation cancelled")
	}
	if err := s.validateStruct(cmd); err != nil {
		return nil, err
	}

	profile := s.toProfile(ctx, cmd.Profile)
	ingredients, facts := buildCatalog(cmd.Ingredients)

	candidates := make([]mealplan.RecipeCandidate, 0, len(cmd.Recipes))
	titles := make(map[uuid.UUID]string, len(cmd.Recipes))
	for _, r := range cmd.Recipes {
		// validated above
		mealType, _ := mealplan.ParseMealType(r.MealType)
		candidates = append(candidates, mealplan.RecipeCandidate{
			ID:          r.ID,
			Title:       r.Title,
			MealType:    mealType,
			Calories:    r.Calories,
			Ingredients: s.toLines(logger, r.Ingredients, ingredients),
		})
		titles[r.ID] = r.Title
	}

	weekStart := cmd.WeekStart
	if weekStart.IsZero() {
		weekStart = startOfWeek(s.now())
	}

	allocator := mealplan.NewAllocator(
		mealplan.WithRand(s.randFactory()),
		mealplan.WithMealTypes(s.mealTypes),
		mealplan.WithObserver(&slotObserver{logger: logger, metrics: s.metrics}),
	)

	grid, err := allocator.Allocate(mealplan.Request{
		Profile:     profile,
		Candidates:  candidates,
		PantryIDs:   mealplan.NewIDSet(cmd.PantryIngredientIDs...),
		FavoriteIDs: mealplan.NewIDSet(cmd.FavoriteRecipeIDs...),
		WeekStart:   weekStart,
		Facts:       facts,
	})
	switch {
	case errors.Is(err, mealplan.ErrIncompleteProfile):
		return nil, apperrors.NewIncompleteProfileError(missingFields(profile), err)
	case errors.Is(err, mealplan.ErrEmptyCatalog):
		return nil, apperrors.NewEmptyCatalogError(err)
	case err != nil:
		return nil, apperrors.Wrap(err, "failed to allocate weekly plan")
	}

	s.reportDegradedLines(logger, grid, candidates, facts)
	return toWeeklyPlanDTO(grid, titles), nil
}

// AggregateNutrition sums the nutrients of a list of ingredient lines
func (s *MealPlanService) AggregateNutrition(ctx context.Context, cmd inbound.AggregateNutritionCommand) (*inbound.NutritionDTO, error) {
	ctx, span := s.tracing.StartUseCaseSpan(ctx, "mealplan.AggregateNutrition",
		attribute.Int("lines.count", len(cmd.Lines)),
	)
	defer span.End()

	if err := s.validateStruct(cmd); err != nil {
		monitoring.RecordError(span, err)
		return nil, err
	}

	logger := monitoring.WithTraceContext(ctx, s.logger)
	ingredients, facts := buildCatalog(cmd.Ingredients)
	lines := s.toLines(logger, cmd.Lines, ingredients)

	total, skipped := nutrition.AggregateWithReport(lines, facts)
	s.recordSkipped(logger, uuid.Nil, skipped)

	multiplier := cmd.ServingMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	dto := &inbound.NutritionDTO{
		Total:             toMacrosDTO(total.Scale(multiplier).Rounded()),
		ServingMultiplier: multiplier,
	}
	for _, sk := range skipped {
		dto.SkippedLines = append(dto.SkippedLines, inbound.SkippedLineDTO{
			Index:  sk.Index,
			Reason: string(sk.Reason),
		})
	}
	return dto, nil
}

// toProfile converts the input into a domain profile. Unknown activity
// levels count as moderate.
func (s *MealPlanService) toProfile(ctx context.Context, in inbound.ProfileInput) nutrition.Profile {
	activity, err := nutrition.ParseActivityLevel(in.ActivityLevel)
	if err != nil && in.ActivityLevel != "" {
		monitoring.WithTraceContext(ctx, s.logger).Warn("Unknown activity level, assuming moderate",
			zap.String("activity_level", in.ActivityLevel),
		)
	}

	// validated: empty or a known sex
	sex, _ := nutrition.ParseSex(in.Sex)

	return nutrition.Profile{
		WeightKg: in.WeightKg,
		HeightCm: in.HeightCm,
		AgeYears: in.AgeYears,
		Sex:      sex,
		Activity: activity,
	}
}

// toLines resolves ingredient references and units. Unknown references and
// units are kept so that aggregation reports them as skipped.
func (s *MealPlanService) toLines(
	logger *zap.Logger,
	in []inbound.IngredientLineInput,
	ingredients map[uuid.UUID]*nutrition.Ingredient,
) []nutrition.IngredientLine {
	lines := make([]nutrition.IngredientLine, 0, len(in))
	for _, l := range in {
		unit, err := nutrition.ParseUnit(l.Unit)
		if err != nil {
			logger.Warn("Unknown unit, line contributes no nutrients",
				zap.String("ingredient_id", l.IngredientID.String()),
				zap.String("unit", l.Unit),
			)
			unit = nutrition.Unit(l.Unit)
		}
		lines = append(lines, nutrition.IngredientLine{
			Ingredient: ingredients[l.IngredientID],
			Quantity:   l.Quantity,
			Unit:       unit,
		})
	}
	return lines
}

// reportDegradedLines logs and counts skipped lines of the recipes used in
// the plan, once per recipe
func (s *MealPlanService) reportDegradedLines(
	logger *zap.Logger,
	grid *mealplan.Grid,
	candidates []mealplan.RecipeCandidate,
	facts nutrition.FactTable,
) {
	used := make(map[uuid.UUID]bool)
	for key := range grid.UsageCounts() {
		used[key.RecipeID] = true
	}
	for _, c := range candidates {
		if !used[c.ID] {
			continue
		}
		_, skipped := nutrition.AggregateWithReport(c.Ingredients, facts)
		s.recordSkipped(logger, c.ID, skipped)
	}
}

func (s *MealPlanService) recordSkipped(logger *zap.Logger, recipeID uuid.UUID, skipped []nutrition.SkippedLine) {
	for _, sk := range skipped {
		s.metrics.RecordDegradedLine(string(sk.Reason))
		fields := []zap.Field{
			zap.Int("line", sk.Index),
			zap.String("reason", string(sk.Reason)),
		}
		if recipeID != uuid.Nil {
			fields = append(fields, zap.String("recipe_id", recipeID.String()))
		}
		logger.Warn("Ingredient line contributes no nutrients", fields...)
	}
}

// buildCatalog indexes the ingredients and their facts by ID
func buildCatalog(in []inbound.IngredientInput) (map[uuid.UUID]*nutrition.Ingredient, nutrition.FactTable) {
	ingredients := make(map[uuid.UUID]*nutrition.Ingredient, len(in))
	facts := make(nutrition.FactTable, len(in))
	for _, ing := range in {
		ingredients[ing.ID] = &nutrition.Ingredient{
			ID:      ing.ID,
			Name:    ing.Name,
			Density: ing.Density,
		}
		for _, f := range ing.Facts {
			facts[ing.ID] = append(facts[ing.ID], nutrition.NutrientFact{
				Nutrient:      f.Nutrient,
				AmountPer100g: f.AmountPer100g,
			})
		}
	}
	return ingredients, facts
}

// missingFields lists what keeps a profile from being complete
func missingFields(p nutrition.Profile) []string {
	var missing []string
	if p.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	if p.HeightCm == nil {
		missing = append(missing, "height_cm")
	}
	if p.AgeYears == nil {
		missing = append(missing, "age_years")
	}
	if p.Sex == "" {
		missing = append(missing, "sex")
	}
	return missing
}

// startOfWeek returns midnight of the Monday on or before t
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
