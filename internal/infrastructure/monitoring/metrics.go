package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Plan generation outcomes
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// PlannerMetrics handles Prometheus metrics collection for plan generation.
// A nil *PlannerMetrics records nothing.
type PlannerMetrics struct {
	logger *zap.Logger

	plansGenerated     *prometheus.CounterVec
	generationDuration prometheus.Histogram
	emptySlots         *prometheus.CounterVec
	degradedLines      *prometheus.CounterVec
	targetFallbacks    prometheus.Counter
}

// NewPlannerMetrics creates the planner collectors and registers them on reg
func NewPlannerMetrics(namespace string, reg prometheus.Registerer, logger *zap.Logger) *PlannerMetrics {
	factory := promauto.With(reg)

	return &PlannerMetrics{
		logger: logger,

		plansGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_generated_total",
				Help:      "Total number of weekly plan generation runs by outcome",
			},
			[]string{"outcome"},
		),
		generationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_generation_duration_seconds",
				Help:      "Weekly plan generation duration in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		emptySlots: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_empty_slots_total",
				Help:      "Total number of meal slots left empty for lack of eligible recipes",
			},
			[]string{"meal_type"},
		),
		degradedLines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nutrition_degraded_lines_total",
				Help:      "Total number of ingredient lines that contributed no nutrients",
			},
			[]string{"reason"},
		),
		targetFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "daily_target_fallback_total",
				Help:      "Total number of daily targets answered with the default for incomplete profiles",
			},
		),
	}
}

// RecordPlan records the outcome and duration of one generation run
func (m *PlannerMetrics) RecordPlan(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.plansGenerated.WithLabelValues(outcome).Inc()
	m.generationDuration.Observe(duration.Seconds())
	m.logger.Debug("Plan generation recorded",
		zap.String("outcome", outcome),
		zap.Duration("duration", duration),
	)
}

// RecordEmptySlot counts a slot left unassigned
func (m *PlannerMetrics) RecordEmptySlot(mealType string) {
	if m == nil {
		return
	}
	m.emptySlots.WithLabelValues(mealType).Inc()
}

// RecordDegradedLine counts an ingredient line skipped during aggregation
func (m *PlannerMetrics) RecordDegradedLine(reason string) {
	if m == nil {
		return
	}
	m.degradedLines.WithLabelValues(reason).Inc()
}

// RecordTargetFallback counts a daily target computed from the default
func (m *PlannerMetrics) RecordTargetFallback() {
	if m == nil {
		return
	}
	m.targetFallbacks.Inc()
}
