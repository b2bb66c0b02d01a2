package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/infrastructure/config"
	"github.com/alchemorsel/mealplanner/internal/ports/inbound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModule(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "app:\n  log_outputs: [\"" + filepath.Join(dir, "planner.log") + "\"]\nplanner:\n  jitter: off\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var (
		service  inbound.MealPlanService
		registry *prometheus.Registry
	)

	// Act
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(ConfigPath(path)),
		Module,
		fx.Populate(&service, &registry),
	)
	app.RequireStart()
	defer app.RequireStop()

	// Assert
	target, err := service.ComputeDailyTarget(context.Background(), inbound.ProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, target)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "mealplanner_daily_target_fallback_total")
}

func TestNewServiceOptions(t *testing.T) {
	cfg := &config.Config{Planner: config.PlannerConfig{
		MealTypes: []string{"Dinner", "lunch"},
		Jitter:    config.JitterSeeded,
		Seed:      3,
	}}

	opts, err := NewServiceOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, []mealplan.MealType{mealplan.MealTypeDinner, mealplan.MealTypeLunch}, opts.MealTypes)
	require.NotNil(t, opts.RandFactory)
	assert.Equal(t, opts.RandFactory().Float64(), opts.RandFactory().Float64())

	cfg.Planner.MealTypes = []string{"elevenses"}
	_, err = NewServiceOptions(cfg)
	assert.ErrorIs(t, err, mealplan.ErrInvalidMealType)

	cfg.Planner.MealTypes = []string{"lunch", "LUNCH"}
	_, err = NewServiceOptions(cfg)
	assert.ErrorIs(t, err, mealplan.ErrDuplicateMealType)
}
