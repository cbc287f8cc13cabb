package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Planning.CapacityPerDay != 6 {
		t.Errorf("CapacityPerDay = %v, want 6", cfg.Planning.CapacityPerDay)
	}
	if cfg.Planning.HorizonDays != 7 {
		t.Errorf("HorizonDays = %d, want 7", cfg.Planning.HorizonDays)
	}
	if cfg.Planning.Mode != "academic" {
		t.Errorf("Mode = %q, want academic", cfg.Planning.Mode)
	}
	if !cfg.Forecast.Enabled {
		t.Error("Forecast.Enabled should default to true")
	}
	if cfg.Tasks.File != "cadence.tasks.yaml" {
		t.Errorf("Tasks.File = %q", cfg.Tasks.File)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Output.Format = %q, want table", cfg.Output.Format)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("default config does not validate: %v", errs)
	}
}

func TestLoad_FromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("planning.capacity_per_day", 8.5)
	viper.Set("planning.mode", "operational")
	viper.Set("forecast.enabled", false)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Planning.CapacityPerDay != 8.5 {
		t.Errorf("CapacityPerDay = %v, want 8.5", cfg.Planning.CapacityPerDay)
	}
	if cfg.Planning.Mode != "operational" {
		t.Errorf("Mode = %q, want operational", cfg.Planning.Mode)
	}
	if cfg.Forecast.Enabled {
		t.Error("Forecast.Enabled should be false")
	}
	// Untouched values keep their defaults.
	if cfg.Planning.HorizonDays != 7 {
		t.Errorf("HorizonDays = %d, want default 7", cfg.Planning.HorizonDays)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("planning.capacity_per_day", -1)

	if _, err := Load(); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("planning.horizon_days", 9000)

	cfg := Get()
	if cfg.Planning.HorizonDays != Default().Planning.HorizonDays {
		t.Errorf("HorizonDays = %d, want the default after a failed load", cfg.Planning.HorizonDays)
	}
}

func TestWatchConfig_Debounce(t *testing.T) {
	w := WatchConfig{DebounceMs: 250}
	if w.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", w.Debounce())
	}
}

func TestTasksConfig_StartDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	empty := TasksConfig{}
	got, err := empty.StartDate(now)
	if err != nil || !got.Equal(now) {
		t.Errorf("StartDate with empty config = %v, %v; want now", got, err)
	}

	dated := TasksConfig{Start: "2026-09-01"}
	got, err = dated.StartDate(now)
	if err != nil {
		t.Fatalf("StartDate failed: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 9 || got.Day() != 1 {
		t.Errorf("StartDate = %v, want 2026-09-01", got)
	}

	bad := TasksConfig{Start: "someday"}
	if _, err := bad.StartDate(now); err == nil {
		t.Error("expected an error for a malformed date")
	}
}
