// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"

	mealplanapp "github.com/alchemorsel/mealplanner/internal/application/mealplan"
	"github.com/alchemorsel/mealplanner/internal/domain/mealplan"
	"github.com/alchemorsel/mealplanner/internal/infrastructure/config"
	"github.com/alchemorsel/mealplanner/internal/infrastructure/monitoring"
	"github.com/alchemorsel/mealplanner/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ConfigPath is the configuration file to load; empty searches the default
// locations
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	MonitoringModule,

	// Service modules
	ServiceModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			OutputPaths: cfg.App.LogOutputs,
		})
	},
)

// MonitoringModule provides the metrics registry, planner metrics and tracing
var MonitoringModule = fx.Provide(
	prometheus.NewRegistry,
	func(cfg *config.Config, reg *prometheus.Registry, log *zap.Logger) (*monitoring.ObservabilityProvider, error) {
		return monitoring.NewObservabilityProvider(monitoring.ObservabilityConfig{
			ServiceName:      cfg.App.Name,
			ServiceVersion:   cfg.App.Version,
			Environment:      cfg.App.Environment,
			MetricsEnabled:   cfg.Monitoring.EnableMetrics,
			MetricsNamespace: cfg.Monitoring.MetricsNamespace,
			TracingConfig: monitoring.TracingConfig{
				ServiceName:    cfg.App.Name,
				ServiceVersion: cfg.App.Version,
				Environment:    cfg.App.Environment,
				OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
				Insecure:       cfg.Monitoring.OTLPInsecure,
				SamplingRate:   cfg.Monitoring.SamplingRate,
				Enabled:        cfg.Monitoring.EnableTracing,
			},
		}, reg, log)
	},
	func(obs *monitoring.ObservabilityProvider) *monitoring.PlannerMetrics {
		return obs.Metrics
	},
	func(obs *monitoring.ObservabilityProvider) *monitoring.TracingProvider {
		return obs.Tracing
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	NewServiceOptions,
	mealplanapp.NewMealPlanService,
)

// NewServiceOptions translates the planner configuration
func NewServiceOptions(cfg *config.Config) (mealplanapp.Options, error) {
	mealTypes := make([]mealplan.MealType, 0, len(cfg.Planner.MealTypes))
	seen := make(map[mealplan.MealType]bool, len(cfg.Planner.MealTypes))
	for _, raw := range cfg.Planner.MealTypes {
		mt, err := mealplan.ParseMealType(raw)
		if err != nil {
			return mealplanapp.Options{}, fmt.Errorf("planner.meal_types: %w", err)
		}
		if seen[mt] {
			return mealplanapp.Options{}, fmt.Errorf("planner.meal_types: %w: %q", mealplan.ErrDuplicateMealType, raw)
		}
		seen[mt] = true
		mealTypes = append(mealTypes, mt)
	}

	randFactory, err := mealplanapp.NewRandFactory(cfg.Planner.Jitter, cfg.Planner.Seed)
	if err != nil {
		return mealplanapp.Options{}, fmt.Errorf("planner.jitter: %w", err)
	}

	return mealplanapp.Options{
		MealTypes:   mealTypes,
		RandFactory: randFactory,
	}, nil
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	obs *monitoring.ObservabilityProvider,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting meal planner",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.Strings("meal_types", cfg.Planner.MealTypes),
				zap.String("jitter", cfg.Planner.Jitter),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down meal planner")

			if err := obs.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown observability", zap.Error(err))
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
