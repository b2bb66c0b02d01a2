// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Jitter modes for the allocator's random source
const (
	JitterRandom = "random"
	JitterSeeded = "seeded"
	JitterOff    = "off"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Planner    PlannerConfig    `mapstructure:"planner"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string   `mapstructure:"name"`
	Version     string   `mapstructure:"version"`
	Environment string   `mapstructure:"environment"`
	Debug       bool     `mapstructure:"debug"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
	LogOutputs  []string `mapstructure:"log_outputs"`
}

// PlannerConfig controls plan generation
type PlannerConfig struct {
	// MealTypes are filled each day in this order
	MealTypes []string `mapstructure:"meal_types"`
	// Jitter is one of random, seeded or off
	Jitter string `mapstructure:"jitter"`
	Seed   uint64 `mapstructure:"seed"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics    bool    `mapstructure:"enable_metrics"`
	MetricsNamespace string  `mapstructure:"metrics_namespace"`
	EnableTracing    bool    `mapstructure:"enable_tracing"`
	OTLPEndpoint     string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure     bool    `mapstructure:"otlp_insecure"`
	SamplingRate     float64 `mapstructure:"sampling_rate"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mealplanner")
	}

	// Enable environment variable override
	v.SetEnvPrefix("MEALPLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "mealplanner")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("app.log_outputs", []string{"stderr"})

	// Planner defaults
	v.SetDefault("planner.meal_types", []string{"breakfast", "lunch", "dinner", "snack"})
	v.SetDefault("planner.jitter", JitterRandom)
	v.SetDefault("planner.seed", 0)

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_namespace", "mealplanner")
	v.SetDefault("monitoring.enable_tracing", false)
	v.SetDefault("monitoring.otlp_endpoint", "localhost:4318")
	v.SetDefault("monitoring.otlp_insecure", true)
	v.SetDefault("monitoring.sampling_rate", 0.1)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if len(c.Planner.MealTypes) == 0 {
		return fmt.Errorf("planner.meal_types must not be empty")
	}
	seen := make(map[string]bool, len(c.Planner.MealTypes))
	for _, mt := range c.Planner.MealTypes {
		key := strings.ToLower(strings.TrimSpace(mt))
		if seen[key] {
			return fmt.Errorf("planner.meal_types contains %q more than once", mt)
		}
		seen[key] = true
	}

	switch c.Planner.Jitter {
	case JitterRandom, JitterSeeded, JitterOff:
	default:
		return fmt.Errorf("planner.jitter must be one of %s, %s, %s; got %q",
			JitterRandom, JitterSeeded, JitterOff, c.Planner.Jitter)
	}

	if c.Monitoring.SamplingRate < 0 || c.Monitoring.SamplingRate > 1 {
		return fmt.Errorf("monitoring.sampling_rate must be between 0 and 1")
	}

	if c.Monitoring.EnableTracing && c.Monitoring.OTLPEndpoint == "" {
		return fmt.Errorf("monitoring.otlp_endpoint is required when tracing is enabled")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
