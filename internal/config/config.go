package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"cadence/internal/task"
)

// Config represents the complete Cadence configuration
type Config struct {
	Planning PlanningConfig `mapstructure:"planning"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
	Output   OutputConfig   `mapstructure:"output"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlanningConfig controls the planning engine
type PlanningConfig struct {
	// CapacityPerDay is the schedulable hours per planning day (default: 6)
	CapacityPerDay float64 `mapstructure:"capacity_per_day"`
	// HorizonDays is how many days ahead the scheduler plans (default: 7)
	HorizonDays int `mapstructure:"horizon_days"`
	// Mode is the plan-wide planning mode: "academic" or "operational" (default: "academic")
	Mode string `mapstructure:"mode"`
}

// ForecastConfig controls the capacity sweep
type ForecastConfig struct {
	// Enabled controls whether plans include a capacity forecast (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Sweep is the list of capacity deltas to try, in hours per day.
	// Unset means the engine's default sweep of -2 through +2.
	Sweep []float64 `mapstructure:"sweep"`
}

// TasksConfig controls where task lists are read from
type TasksConfig struct {
	// File is the task file path (default: "cadence.tasks.yaml" in the working directory)
	File string `mapstructure:"file"`
	// Start is the plan start date in YYYY-MM-DD form; empty means today.
	// A start date inside the task file wins over this one.
	Start string `mapstructure:"start"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	// Format is the default output format: "table" or "json" (default: "table")
	Format string `mapstructure:"format"`
	// Color enables styled terminal output (default: true)
	Color bool `mapstructure:"color"`
}

// WatchConfig controls the live re-planning watcher
type WatchConfig struct {
	// DebounceMs is how long to wait after a file change before re-planning,
	// in milliseconds (default: 250)
	DebounceMs int `mapstructure:"debounce_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// Debounce returns the watch debounce as a time.Duration
func (w *WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// StartDate resolves the configured start date, falling back to now.
func (t *TasksConfig) StartDate(now time.Time) (time.Time, error) {
	if t.Start == "" {
		return now, nil
	}
	return time.Parse("2006-01-02", t.Start)
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Planning: PlanningConfig{
			CapacityPerDay: 6,
			HorizonDays:    7,
			Mode:           task.ModeAcademic.String(),
		},
		Forecast: ForecastConfig{
			Enabled: true,
		},
		Tasks: TasksConfig{
			File:  task.DefaultFileName,
			Start: "",
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			File:    "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Planning defaults
	viper.SetDefault("planning.capacity_per_day", defaults.Planning.CapacityPerDay)
	viper.SetDefault("planning.horizon_days", defaults.Planning.HorizonDays)
	viper.SetDefault("planning.mode", defaults.Planning.Mode)

	// Forecast defaults
	viper.SetDefault("forecast.enabled", defaults.Forecast.Enabled)
	viper.SetDefault("forecast.sweep", defaults.Forecast.Sweep)

	// Tasks defaults
	viper.SetDefault("tasks.file", defaults.Tasks.File)
	viper.SetDefault("tasks.start", defaults.Tasks.Start)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.color", defaults.Output.Color)

	// Watch defaults
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cadence")
	}
	// Fall back to ~/.config/cadence
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cadence"
	}
	return filepath.Join(home, ".config", "cadence")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
