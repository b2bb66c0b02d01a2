package mealplan

import (
	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// slotObserver logs allocation decisions and counts empty slots
type slotObserver struct {
	logger  *zap.Logger
	metrics *monitoring.PlannerMetrics
}

func (o *slotObserver) SlotFilled(ref mealplan.SlotRef, chosen mealplan.Candidate, candidates []mealplan.Candidate) {
	if ce := o.logger.Check(zap.DebugLevel, "Slot filled"); ce != nil {
		ce.Write(
			zap.Int("day", ref.Day),
			zap.String("meal_type", string(ref.MealType)),
			zap.String("recipe_id", chosen.RecipeID.String()),
			zap.Float64("base_score", chosen.BaseScore),
			zap.Float64("adjusted_score", chosen.Adjusted),
			zap.Int("candidates", len(candidates)),
		)
	}
}

func (o *slotObserver) SlotEmpty(ref mealplan.SlotRef) {
	o.metrics.RecordEmptySlot(string(ref.MealType))
	o.logger.Debug("No eligible recipe for slot",
		zap.Int("day", ref.Day),
		zap.String("meal_type", string(ref.MealType)),
	)
}
