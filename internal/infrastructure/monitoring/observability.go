package monitoring

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ObservabilityConfig holds configuration for all observability components
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Metrics configuration
	MetricsEnabled   bool
	MetricsNamespace string

	// Tracing configuration
	TracingConfig TracingConfig
}

// ObservabilityProvider provides unified access to all observability components
type ObservabilityProvider struct {
	Metrics *PlannerMetrics
	Tracing *TracingProvider
	logger  *zap.Logger
	config  ObservabilityConfig
}

// NewObservabilityProvider creates metrics on reg and the tracing provider.
// Metrics stay nil when disabled.
func NewObservabilityProvider(config ObservabilityConfig, reg prometheus.Registerer, logger *zap.Logger) (*ObservabilityProvider, error) {
	var metrics *PlannerMetrics
	if config.MetricsEnabled {
		metrics = NewPlannerMetrics(config.MetricsNamespace, reg, logger)
		logger.Info("Metrics collection enabled", zap.String("namespace", config.MetricsNamespace))
	}

	tracing, err := NewTracingProvider(config.TracingConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	logger.Info("Observability provider initialized",
		zap.String("service", config.ServiceName),
		zap.String("version", config.ServiceVersion),
		zap.String("environment", config.Environment),
		zap.Bool("metrics_enabled", config.MetricsEnabled),
		zap.Bool("tracing_enabled", config.TracingConfig.Enabled),
	)

	return &ObservabilityProvider{
		Metrics: metrics,
		Tracing: tracing,
		logger:  logger,
		config:  config,
	}, nil
}

// Shutdown gracefully shuts down all observability components
func (o *ObservabilityProvider) Shutdown(ctx context.Context) error {
	o.logger.Debug("Shutting down observability provider")

	if err := o.Tracing.Shutdown(ctx); err != nil {
		o.logger.Error("Failed to shutdown tracing provider", zap.Error(err))
		return err
	}

	return nil
}
