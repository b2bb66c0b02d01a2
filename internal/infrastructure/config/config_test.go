package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mealplanner", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, []string{"stderr"}, cfg.App.LogOutputs)
	assert.Equal(t, []string{"breakfast", "lunch", "dinner", "snack"}, cfg.Planner.MealTypes)
	assert.Equal(t, JitterRandom, cfg.Planner.Jitter)
	assert.True(t, cfg.Monitoring.EnableMetrics)
	assert.False(t, cfg.Monitoring.EnableTracing)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
  log_format: console
planner:
  meal_types: [breakfast, dinner]
  jitter: seeded
  seed: 42
monitoring:
  sampling_rate: 0.5
`)
	t.Setenv("MEALPLANNER_APP_LOG_LEVEL", "debug")
	t.Setenv("MEALPLANNER_PLANNER_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "console", cfg.App.LogFormat)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, []string{"breakfast", "dinner"}, cfg.Planner.MealTypes)
	assert.Equal(t, JitterSeeded, cfg.Planner.Jitter)
	assert.Equal(t, uint64(7), cfg.Planner.Seed)
	assert.Equal(t, 0.5, cfg.Monitoring.SamplingRate)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Name: "mealplanner"},
			Planner: PlannerConfig{MealTypes: []string{"lunch"}, Jitter: JitterOff},
			Monitoring: MonitoringConfig{
				SamplingRate: 1,
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"MissingName", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"NoMealTypes", func(c *Config) { c.Planner.MealTypes = nil }, "planner.meal_types"},
		{"DuplicateMealTypes", func(c *Config) { c.Planner.MealTypes = []string{"lunch", "dinner", " Lunch"} }, "more than once"},
		{"UnknownJitter", func(c *Config) { c.Planner.Jitter = "sometimes" }, "planner.jitter"},
		{"SamplingRateOutOfRange", func(c *Config) { c.Monitoring.SamplingRate = 1.5 }, "sampling_rate"},
		{"TracingWithoutEndpoint", func(c *Config) {
			c.Monitoring.EnableTracing = true
			c.Monitoring.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
