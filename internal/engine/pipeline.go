package engine

import (
	"fmt"

	"cadence/internal/errors"
	"cadence/internal/task"
)

// Planning defaults used when an Options field is left at its zero value.
const (
	DefaultCapacityPerDay = 6.0
	DefaultHorizonDays    = 7
	DefaultMode           = task.ModeAcademic
)

// Options configure one pipeline run.
type Options struct {
	// CapacityPerDay is the schedulable hours per planning day.
	CapacityPerDay float64
	// HorizonDays bounds how many days the scheduler may plan across.
	HorizonDays int
	// Mode is the plan-wide planning mode. Individual tasks may override it
	// for scoring; the scheduler always orders by the plan-wide mode.
	Mode task.Mode
	// Sweep holds the capacity deltas for the forecaster. Nil means the
	// default sweep; set SkipForecast to disable forecasting entirely.
	Sweep []float64
	// SkipForecast disables the capacity sweep.
	SkipForecast bool
}

// withDefaults fills zero-valued fields and validates the rest.
func (o Options) withDefaults() (Options, error) {
	if o.CapacityPerDay == 0 {
		o.CapacityPerDay = DefaultCapacityPerDay
	}
	if o.CapacityPerDay <= 0 {
		return o, errors.NewConfigurationError(
			fmt.Sprintf("capacity per day must be positive, got %g", o.CapacityPerDay),
			errors.ErrInvalidCapacity)
	}
	if o.HorizonDays == 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	if o.HorizonDays < 0 {
		return o, errors.NewConfigurationError(
			fmt.Sprintf("horizon must be positive, got %d days", o.HorizonDays),
			errors.ErrInvalidCapacity)
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if !o.Mode.IsValid() {
		return o, errors.NewConfigurationError(
			fmt.Sprintf("unknown planning mode %q", o.Mode),
			errors.ErrInvalidMode)
	}
	return o, nil
}

// Run executes the full planning pipeline: validate, score, schedule, assess
// risk, forecast. It is pure; the input slice is never modified and repeated
// runs on the same inputs produce identical results.
//
// Structural problems with the task set or options come back as a
// ConfigurationError before any planning happens. Infeasible tasks and
// missed deadlines are part of the result, not errors.
func Run(tasks []task.Task, opts Options) (*PlanResult, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := task.ValidateStrict(tasks); err != nil {
		return nil, err
	}

	scored := ScoreTasks(tasks, opts.Mode)
	schedule, err := BuildSchedule(scored, opts.Mode, opts.CapacityPerDay, opts.HorizonDays)
	if err != nil {
		return nil, err
	}
	stress := AssessRisk(scored, opts.CapacityPerDay, opts.HorizonDays)

	result := &PlanResult{
		Mode:           opts.Mode,
		CapacityPerDay: opts.CapacityPerDay,
		Tasks:          scored,
		Schedule:       schedule,
		SystemStress:   stress,
		KPIs:           computeKPIs(scored, schedule),
	}

	if !opts.SkipForecast {
		result.Forecast, err = Forecast(tasks, opts.Mode, opts.CapacityPerDay, opts.HorizonDays, opts.Sweep)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func computeKPIs(tasks []ScoredTask, schedule *Schedule) KPIs {
	kpis := KPIs{
		MissedDeadlines: len(schedule.Missed),
		InfeasibleCount: len(schedule.Infeasible),
	}
	for i := range tasks {
		t := &tasks[i]
		kpis.TotalHours += t.EstimatedHours
		kpis.HoursAtRisk += t.ExpectedLossHours
		if t.RiskTier == TierHigh || t.RiskTier == TierCritical {
			kpis.HighRiskCount++
		}
	}
	return kpis
}
