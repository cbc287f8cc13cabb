package cmd

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"

	"cadence/internal/config"
	"cadence/internal/engine"
	"cadence/internal/errors"
	"cadence/internal/task"
)

// planInputs is everything a planning command needs: the loaded task set and
// the engine options resolved from config, task file and flags.
type planInputs struct {
	Tasks   []task.Task
	Options engine.Options
	File    string
	Start   time.Time
}

// loadPlanInputs reads the configured task file, applies the id filter and
// resolves engine options. Mode precedence is flag/config over the task
// file's own mode declaration only when explicitly set; otherwise the file
// wins.
func loadPlanInputs(cfg *config.Config, filter string) (*planInputs, error) {
	start, err := cfg.Tasks.StartDate(time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	loaded, err := task.LoadFile(cfg.Tasks.File, start)
	if err != nil {
		return nil, err
	}

	tasks := loaded.Tasks
	if filter != "" {
		tasks, err = filterTasks(tasks, filter)
		if err != nil {
			return nil, err
		}
	}

	mode := task.Mode(cfg.Planning.Mode)
	if loaded.Mode != "" {
		mode = loaded.Mode
	}
	// An explicit --mode flag beats the task file's declaration.
	if f := rootCmd.PersistentFlags().Lookup("mode"); f != nil && f.Changed {
		mode = task.Mode(cfg.Planning.Mode)
	}

	opts := engine.Options{
		CapacityPerDay: cfg.Planning.CapacityPerDay,
		HorizonDays:    cfg.Planning.HorizonDays,
		Mode:           mode,
		Sweep:          cfg.Forecast.Sweep,
		SkipForecast:   !cfg.Forecast.Enabled,
	}

	return &planInputs{
		Tasks:   tasks,
		Options: opts,
		File:    cfg.Tasks.File,
		Start:   loaded.Start,
	}, nil
}

// filterTasks keeps tasks whose id matches the glob pattern. Dependencies on
// filtered-out tasks are dropped so the remaining set stays self-contained.
// A pattern matching nothing is an error, not an empty plan.
func filterTasks(tasks []task.Task, pattern string) ([]task.Task, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}

	kept := make([]task.Task, 0, len(tasks))
	ids := make(map[string]bool)
	for _, t := range tasks {
		if g.Match(t.ID) {
			kept = append(kept, t)
			ids[t.ID] = true
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no tasks match filter %q: %w", pattern, errors.ErrTaskNotFound)
	}

	for i := range kept {
		var deps []string
		for _, depID := range kept[i].DependsOn {
			if ids[depID] {
				deps = append(deps, depID)
			}
		}
		kept[i].DependsOn = deps
	}
	return kept, nil
}
