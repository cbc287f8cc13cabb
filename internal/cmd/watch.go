package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cadence/internal/advice"
	"cadence/internal/config"
	"cadence/internal/engine"
	"cadence/internal/render"
	"cadence/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-plan live whenever the task file changes",
	Long: `Watch the task file and recompute the plan on every save.

The plan is shown in a scrollable view. Press r to force a refresh and
q to quit. Edits are debounced so a burst of saves triggers one replan.`,
	RunE: runWatch,
}

var watchFilter string

func init() {
	watchCmd.Flags().StringVar(&watchFilter, "filter", "", "Only plan tasks whose id matches this glob")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.WithCommand("watch").WithTaskFile(cfg.Tasks.File)

	// Reload and re-plan from scratch on every trigger so edits to
	// start date, mode and tasks are all picked up.
	planOnce := func() (string, error) {
		inputs, err := loadPlanInputs(cfg, watchFilter)
		if err != nil {
			log.Warn("reload failed", "error", err)
			return "", err
		}
		result, err := engine.Run(inputs.Tasks, inputs.Options)
		if err != nil {
			log.Warn("replan failed", "error", err)
			return "", err
		}
		log.Info("replanned", "tasks", len(inputs.Tasks), "stress", result.SystemStress)
		return render.Plan(result, advice.Analyze(result)), nil
	}

	watcher, err := watch.New(cfg.Tasks.File, cfg.Watch.Debounce())
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.Tasks.File, err)
	}
	watcher.Start()
	defer watcher.Stop()

	model := watch.NewModel(watcher, planOnce)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("watch ui: %w", err)
	}
	return nil
}
