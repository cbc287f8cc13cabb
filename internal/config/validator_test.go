package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return Default()
}

func findError(errs []ValidationError, field string) *ValidationError {
	for i := range errs {
		if errs[i].Field == field {
			return &errs[i]
		}
	}
	return nil
}

func TestValidate_ValidConfig(t *testing.T) {
	if errs := validConfig().Validate(); len(errs) > 0 {
		t.Errorf("valid config produced errors: %v", errs)
	}
}

func TestValidate_Planning(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero capacity", func(c *Config) { c.Planning.CapacityPerDay = 0 }, "planning.capacity_per_day"},
		{"negative capacity", func(c *Config) { c.Planning.CapacityPerDay = -3 }, "planning.capacity_per_day"},
		{"capacity over a day", func(c *Config) { c.Planning.CapacityPerDay = 25 }, "planning.capacity_per_day"},
		{"zero horizon", func(c *Config) { c.Planning.HorizonDays = 0 }, "planning.horizon_days"},
		{"huge horizon", func(c *Config) { c.Planning.HorizonDays = 400 }, "planning.horizon_days"},
		{"unknown mode", func(c *Config) { c.Planning.Mode = "frantic" }, "planning.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if findError(cfg.Validate(), tt.field) == nil {
				t.Errorf("no error on %s", tt.field)
			}
		})
	}
}

func TestValidate_PlanningBoundaries(t *testing.T) {
	cfg := validConfig()
	cfg.Planning.CapacityPerDay = 24
	cfg.Planning.HorizonDays = 365
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("boundary values rejected: %v", errs)
	}
}

func TestValidate_Tasks(t *testing.T) {
	cfg := validConfig()
	cfg.Tasks.File = ""
	if findError(cfg.Validate(), "tasks.file") == nil {
		t.Error("no error for empty task file path")
	}

	cfg = validConfig()
	cfg.Tasks.Start = "March 2nd"
	if findError(cfg.Validate(), "tasks.start") == nil {
		t.Error("no error for malformed start date")
	}

	cfg = validConfig()
	cfg.Tasks.Start = "2026-03-02"
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("valid start date rejected: %v", errs)
	}
}

func TestValidate_Output(t *testing.T) {
	cfg := validConfig()
	cfg.Output.Format = "xml"
	err := findError(cfg.Validate(), "output.format")
	if err == nil {
		t.Fatal("no error for unknown output format")
	}
	if !strings.Contains(err.Message, "table") {
		t.Errorf("error message %q does not list valid formats", err.Message)
	}
}

func TestValidate_Watch(t *testing.T) {
	cfg := validConfig()
	cfg.Watch.DebounceMs = -5
	if findError(cfg.Validate(), "watch.debounce_ms") == nil {
		t.Error("no error for negative debounce")
	}

	cfg = validConfig()
	cfg.Watch.DebounceMs = 60000
	if findError(cfg.Validate(), "watch.debounce_ms") == nil {
		t.Error("no error for excessive debounce")
	}
}

func TestValidate_Logging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "chatty"
	if findError(cfg.Validate(), "logging.level") == nil {
		t.Error("no error for unknown log level")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Planning.CapacityPerDay = -1
	cfg.Planning.Mode = "frantic"
	cfg.Output.Format = "xml"

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	single := ValidationErrors{{Field: "planning.mode", Value: "x", Message: "bad"}}
	if !strings.Contains(single.Error(), "planning.mode") {
		t.Errorf("single error = %q", single.Error())
	}

	double := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	if !strings.Contains(double.Error(), "2 validation errors") {
		t.Errorf("multi error = %q", double.Error())
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should render empty")
	}
}
