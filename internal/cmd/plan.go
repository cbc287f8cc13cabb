package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/advice"
	"cadence/internal/config"
	"cadence/internal/engine"
	"cadence/internal/render"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the full plan: schedule, triage, forecast and findings",
	Long: `Compute a complete plan from the task file.

The report contains:
- Headline numbers (stress index, hours at risk, infeasible count)
- The day-by-day schedule with infeasible tasks and missed deadlines
- Every task ranked by priority score
- A capacity forecast showing how the plan responds to more or fewer hours
- Rule-based findings pointing at the biggest problems

Examples:
  # Plan the default task file
  cadence plan

  # Plan at 8 hours a day in operational mode
  cadence plan --capacity 8 --mode operational

  # Plan a subset of tasks
  cadence plan --filter 'thesis-*'

  # Machine-readable output
  cadence plan --json`,
	RunE: runPlan,
}

var (
	planJSON   bool
	planFilter string
)

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output the plan as JSON")
	planCmd.Flags().StringVar(&planFilter, "filter", "", "Only plan tasks whose id matches this glob")
	rootCmd.AddCommand(planCmd)
}

// planReport is the JSON output format for the plan command.
type planReport struct {
	*engine.PlanResult
	Findings []advice.Finding `json:"findings"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inputs, err := loadPlanInputs(cfg, planFilter)
	if err != nil {
		return err
	}

	log := logger.WithCommand("plan").WithTaskFile(inputs.File)
	log.Info("planning", "tasks", len(inputs.Tasks), "capacity", inputs.Options.CapacityPerDay, "mode", inputs.Options.Mode)

	result, err := engine.Run(inputs.Tasks, inputs.Options)
	if err != nil {
		log.Error("planning failed", "error", err)
		return err
	}
	findings := advice.Analyze(result)

	log.Info("plan computed",
		"stress", result.SystemStress,
		"infeasible", result.KPIs.InfeasibleCount,
		"missed", result.KPIs.MissedDeadlines)

	if planJSON {
		out, err := render.JSON(planReport{PlanResult: result, Findings: findings})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Plan(result, findings))
	return nil
}
