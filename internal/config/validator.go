package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"cadence/internal/task"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "planning.capacity_per_day")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOutputFormats returns the list of valid output formats
func ValidOutputFormats() []string {
	return []string{"table", "json"}
}

// ValidModes returns the list of valid planning modes
func ValidModes() []string {
	return []string{task.ModeAcademic.String(), task.ModeOperational.String()}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePlanning()...)
	errors = append(errors, c.validateForecast()...)
	errors = append(errors, c.validateTasks()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validatePlanning validates the PlanningConfig
func (c *Config) validatePlanning() []ValidationError {
	var errors []ValidationError

	if c.Planning.CapacityPerDay <= 0 {
		errors = append(errors, ValidationError{
			Field:   "planning.capacity_per_day",
			Value:   c.Planning.CapacityPerDay,
			Message: "must be positive",
		})
	}

	// There are only 24 hours in a day
	if c.Planning.CapacityPerDay > 24 {
		errors = append(errors, ValidationError{
			Field:   "planning.capacity_per_day",
			Value:   c.Planning.CapacityPerDay,
			Message: "exceeds 24 hours per day",
		})
	}

	if c.Planning.HorizonDays < 1 {
		errors = append(errors, ValidationError{
			Field:   "planning.horizon_days",
			Value:   c.Planning.HorizonDays,
			Message: "must be at least 1",
		})
	}

	const maxHorizonDays = 365
	if c.Planning.HorizonDays > maxHorizonDays {
		errors = append(errors, ValidationError{
			Field:   "planning.horizon_days",
			Value:   c.Planning.HorizonDays,
			Message: fmt.Sprintf("exceeds maximum of %d", maxHorizonDays),
		})
	}

	if c.Planning.Mode != "" && !task.Mode(c.Planning.Mode).IsValid() {
		errors = append(errors, ValidationError{
			Field:   "planning.mode",
			Value:   c.Planning.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidModes(), ", ")),
		})
	}

	return errors
}

// validateForecast validates the ForecastConfig
func (c *Config) validateForecast() []ValidationError {
	var errors []ValidationError

	const maxSweepPoints = 24
	if len(c.Forecast.Sweep) > maxSweepPoints {
		errors = append(errors, ValidationError{
			Field:   "forecast.sweep",
			Value:   len(c.Forecast.Sweep),
			Message: fmt.Sprintf("exceeds maximum of %d points", maxSweepPoints),
		})
	}

	return errors
}

// validateTasks validates the TasksConfig
func (c *Config) validateTasks() []ValidationError {
	var errors []ValidationError

	if c.Tasks.File == "" {
		errors = append(errors, ValidationError{
			Field:   "tasks.file",
			Value:   c.Tasks.File,
			Message: "must not be empty",
		})
	}

	if c.Tasks.Start != "" {
		if _, err := time.Parse("2006-01-02", c.Tasks.Start); err != nil {
			errors = append(errors, ValidationError{
				Field:   "tasks.start",
				Value:   c.Tasks.Start,
				Message: "must be a YYYY-MM-DD date",
			})
		}
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if c.Output.Format != "" && !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		})
	}

	return errors
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must be non-negative",
		})
	}

	const maxDebounceMs = 10000
	if c.Watch.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %d", maxDebounceMs),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
