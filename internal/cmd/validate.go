package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cadence/internal/config"
	"cadence/internal/render"
	"cadence/internal/task"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the task file without planning",
	Long: `Load the task file and report every validation issue found.

Errors (duplicate ids, unknown dependencies, cycles, non-positive hours)
make the file unusable for planning and cause a non-zero exit. Warnings
(missing titles, out-of-scale ratings) are informational.`,
	RunE: runValidate,
}

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation results as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	start, err := cfg.Tasks.StartDate(time.Now())
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	tasks, err := task.LoadFile(cfg.Tasks.File, start)
	if err != nil {
		return err
	}

	log := logger.WithCommand("validate").WithTaskFile(cfg.Tasks.File)
	result := task.Validate(tasks.Tasks)
	log.Info("validated", "tasks", len(tasks.Tasks), "errors", result.ErrorCount, "warnings", result.WarningCount)

	if validateJSON {
		out, err := render.JSON(result)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	} else {
		printValidation(cmd, cfg.Tasks.File, len(tasks.Tasks), result)
	}

	if result.HasErrors() {
		// The report above is the real output; keep the error terse.
		cmd.SilenceErrors = true
		return fmt.Errorf("%d validation error(s) in %s", result.ErrorCount, cfg.Tasks.File)
	}
	return nil
}

func printValidation(cmd *cobra.Command, file string, count int, result *task.ValidationResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validated %d task(s) in %s\n", count, file)

	if len(result.Messages) == 0 {
		fmt.Fprintln(out, render.Secondary.Render("No issues found"))
		return
	}
	for _, msg := range result.Messages {
		label := render.Warning.Render("warning")
		if msg.IsError() {
			label = render.Error.Render("error")
		}
		where := ""
		if msg.TaskID != "" {
			where = fmt.Sprintf(" [%s", msg.TaskID)
			if msg.Field != "" {
				where += "." + msg.Field
			}
			where += "]"
		}
		fmt.Fprintf(out, "  %s%s %s\n", label, where, msg.Message)
	}
	fmt.Fprintf(out, "\n%d error(s), %d warning(s)\n", result.ErrorCount, result.WarningCount)
}
