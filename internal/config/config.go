package config

import (
	"os"
	"strconv"
	"strings"

	"benchgraph/internal/cleaner"
	"benchgraph/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Clean    CleanConfig
	Output   OutputConfig
	Chart    ChartConfig
	Database DatabaseConfig
	Server   ServerConfig
	Presets  PresetConfig
	LogLevel string
}

// CleanConfig holds the default cleaning options
type CleanConfig struct {
	SkipRows         int
	OutliersEnabled  bool
	OutlierThreshold float64
	OutlierPolicy    string
	Order            string
	Columns          []string
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	Suffix string
	XLSX   bool
	PNG    bool
}

// ChartConfig holds rendering settings
type ChartConfig struct {
	File       string
	Background string
	Title      string
}

// DatabaseConfig holds the optional run-ledger connection
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PresetConfig points at an optional presets file
type PresetConfig struct {
	File string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Clean:    loadCleanConfig(),
		Output:   loadOutputConfig(),
		Chart:    loadChartConfig(),
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server:   loadServerConfig(),
		Presets:  PresetConfig{File: os.Getenv("BENCHGRAPH_PRESETS")},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadCleanConfig() CleanConfig {
	return CleanConfig{
		SkipRows:         getEnvIntOrDefault("BENCHGRAPH_SKIP_ROWS", 20),
		OutliersEnabled:  getEnvBoolOrDefault("BENCHGRAPH_OUTLIERS", true),
		OutlierThreshold: getEnvFloatOrDefault("BENCHGRAPH_OUTLIER_THRESHOLD", cleaner.DefaultThreshold),
		OutlierPolicy:    getEnvOrDefault("BENCHGRAPH_OUTLIER_POLICY", string(cleaner.PolicyRow)),
		Order:            getEnvOrDefault("BENCHGRAPH_ORDER", string(cleaner.OrderFilterFirst)),
		Columns:          splitList(os.Getenv("BENCHGRAPH_COLUMNS")),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Suffix: getEnvOrDefault("BENCHGRAPH_OUTPUT_SUFFIX", "_output"),
		XLSX:   getEnvBoolOrDefault("BENCHGRAPH_XLSX", false),
		PNG:    getEnvBoolOrDefault("BENCHGRAPH_PNG", false),
	}
}

func loadChartConfig() ChartConfig {
	return ChartConfig{
		File:       getEnvOrDefault("BENCHGRAPH_CHART_FILE", "interactive_chart.html"),
		Background: getEnvOrDefault("BENCHGRAPH_BACKGROUND", "black"),
		Title:      os.Getenv("BENCHGRAPH_TITLE"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

// CleanerOptions converts the clean settings into cleaner options
func (c *Config) CleanerOptions() (cleaner.Options, error) {
	policy, err := cleaner.ParsePolicy(c.Clean.OutlierPolicy)
	if err != nil {
		return cleaner.Options{}, err
	}
	order, err := cleaner.ParseOrder(c.Clean.Order)
	if err != nil {
		return cleaner.Options{}, err
	}
	opts := cleaner.Options{
		SkipRows: c.Clean.SkipRows,
		Outliers: cleaner.OutlierOptions{
			Enabled:   c.Clean.OutliersEnabled,
			Threshold: c.Clean.OutlierThreshold,
			Policy:    policy,
		},
		Order: order,
	}
	return opts, opts.Validate()
}

func validateConfig(config *Config) error {
	if config.Clean.SkipRows < 0 {
		return errors.ConfigInvalid("BENCHGRAPH_SKIP_ROWS must be >= 0")
	}
	if config.Clean.OutliersEnabled && config.Clean.OutlierThreshold <= 0 {
		return errors.ConfigInvalid("BENCHGRAPH_OUTLIER_THRESHOLD must be > 0")
	}
	if _, err := cleaner.ParsePolicy(config.Clean.OutlierPolicy); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if _, err := cleaner.ParseOrder(config.Clean.Order); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if strings.ContainsAny(config.Output.Suffix, `/\`) {
		return errors.ConfigInvalid("BENCHGRAPH_OUTPUT_SUFFIX must not contain path separators")
	}
	if config.Chart.File == "" {
		return errors.ConfigInvalid("BENCHGRAPH_CHART_FILE is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
