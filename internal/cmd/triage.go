package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/config"
	"cadence/internal/engine"
	"cadence/internal/render"
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Rank tasks by priority score",
	Long: `Score every task and print them in priority order.

Triage skips the capacity forecast, so it is the fastest way to answer
"what should I work on first". Use plan for the full report.`,
	RunE: runTriage,
}

var (
	triageJSON   bool
	triageFilter string
)

func init() {
	triageCmd.Flags().BoolVar(&triageJSON, "json", false, "Output scored tasks as JSON")
	triageCmd.Flags().StringVar(&triageFilter, "filter", "", "Only score tasks whose id matches this glob")
	rootCmd.AddCommand(triageCmd)
}

func runTriage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inputs, err := loadPlanInputs(cfg, triageFilter)
	if err != nil {
		return err
	}
	inputs.Options.SkipForecast = true

	log := logger.WithCommand("triage").WithTaskFile(inputs.File)
	log.Info("scoring", "tasks", len(inputs.Tasks), "mode", inputs.Options.Mode)

	result, err := engine.Run(inputs.Tasks, inputs.Options)
	if err != nil {
		log.Error("scoring failed", "error", err)
		return err
	}

	if triageJSON {
		out, err := render.JSON(result.Tasks)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Triage(result))
	return nil
}
