package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/config"
	"cadence/internal/engine"
	"cadence/internal/render"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show how the plan responds to capacity changes",
	Long: `Re-plan the task set at a sweep of daily capacities and report the
stress index, infeasible count and missed deadlines at each point.

The sweep is a list of hour deltas applied to the base capacity, so a
base of 6 with the default sweep plans at 4, 5, 6, 7 and 8 hours.

Examples:
  # Default sweep around the configured capacity
  cadence forecast

  # A wider sweep
  cadence forecast --sweep -3,-2,-1,0,1,2,3`,
	RunE: runForecast,
}

var (
	forecastJSON  bool
	forecastSweep []float64
)

func init() {
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Output forecast points as JSON")
	forecastCmd.Flags().Float64SliceVar(&forecastSweep, "sweep", nil, "Capacity deltas to sweep (defaults to the configured sweep)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inputs, err := loadPlanInputs(cfg, "")
	if err != nil {
		return err
	}
	if len(forecastSweep) > 0 {
		inputs.Options.Sweep = forecastSweep
	}
	inputs.Options.SkipForecast = false

	log := logger.WithCommand("forecast").WithTaskFile(inputs.File)
	log.Info("forecasting", "tasks", len(inputs.Tasks), "base_capacity", inputs.Options.CapacityPerDay, "points", len(inputs.Options.Sweep))

	result, err := engine.Run(inputs.Tasks, inputs.Options)
	if err != nil {
		log.Error("forecast failed", "error", err)
		return err
	}

	if forecastJSON {
		out, err := render.JSON(result.Forecast)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.ForecastTable(result))
	return nil
}
