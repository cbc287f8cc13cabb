// Package cmd provides the Cadence command line interface.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cadence/internal/config"
	"cadence/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Deadline-aware task planning engine",
	Long: `Cadence turns a task list into a day-by-day plan. It scores tasks by
urgency and value, estimates each task's failure risk, schedules work
against a daily hour budget, and forecasts how the plan responds to
more or less capacity.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	defer closeLogger()
	return rootCmd.Execute()
}

var logger = logging.NopLogger()

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cadence/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().StringP("file", "f", "", "task file (default is cadence.tasks.yaml)")
	_ = viper.BindPFlag("tasks.file", rootCmd.PersistentFlags().Lookup("file"))

	rootCmd.PersistentFlags().Float64("capacity", 0, "schedulable hours per day")
	_ = viper.BindPFlag("planning.capacity_per_day", rootCmd.PersistentFlags().Lookup("capacity"))

	rootCmd.PersistentFlags().Int("horizon", 0, "planning horizon in days")
	_ = viper.BindPFlag("planning.horizon_days", rootCmd.PersistentFlags().Lookup("horizon"))

	rootCmd.PersistentFlags().StringP("mode", "m", "", "planning mode: academic or operational")
	_ = viper.BindPFlag("planning.mode", rootCmd.PersistentFlags().Lookup("mode"))

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(config.ConfigFile()); err == nil {
		viper.SetConfigFile(config.ConfigFile())
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/cadence")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CADENCE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., CADENCE_PLANNING_CAPACITY_PER_DAY for planning.capacity_per_day
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func initLogger() {
	cfg := config.Get()
	if !cfg.Logging.Enabled {
		return
	}
	l, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// A broken log destination should not block planning.
		return
	}
	logger = l
}

func closeLogger() {
	_ = logger.Close()
}
