// Package cli implements the trailerpack command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/TrailerPack/internal/model"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "trailerpack",
	Short: "Trailer load planner",
	Long: `trailerpack packs rectangular cargo into a trailer volume using a greedy
placement engine with gravity support, upright/on-side orientation locks and
trailer shapes with wheel wells or a front bonus section.

Commands:
  pack       Run the packing engine on a plan file
  import     Import a cargo list from CSV or Excel
  catalog    List built-in items and trailer presets
  compare    Pack the same cargo across trailer variants
  history    Inspect past pack runs
  backup     Export or import all local data`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		packCmd,
		importCmd,
		catalogCmd,
		compareCmd,
		historyCmd,
		backupCmd,
	)
}

// initConfig wires viper to the config file and environment. Settings
// resolve flag > env > config file > built-in default.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".trailerpack"))
	}

	defaults := model.DefaultPackSettings()
	viper.SetDefault("default_width_fill_stop", defaults.WidthFillStop)
	viper.SetDefault("default_max_x_anchors", defaults.MaxXAnchors)
	viper.SetDefault("default_max_z_anchors", defaults.MaxZAnchors)
	viper.SetDefault("default_sweep_budget_factor", defaults.SweepBudgetFactor)
	viper.SetDefault("default_progress_interval", defaults.ProgressInterval)
	viper.SetDefault("history_limit", 200)

	viper.SetEnvPrefix("TRAILERPACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && verbose {
			fmt.Fprintf(os.Stderr, "warning: cannot read config file: %v\n", err)
		}
		// Missing config file is fine, defaults apply
	}
}

// configuredSettings returns the engine settings resolved through viper.
func configuredSettings() model.PackSettings {
	s := model.PackSettings{
		WidthFillStop:     viper.GetFloat64("default_width_fill_stop"),
		MaxXAnchors:       viper.GetInt("default_max_x_anchors"),
		MaxZAnchors:       viper.GetInt("default_max_z_anchors"),
		SweepBudgetFactor: viper.GetInt("default_sweep_budget_factor"),
		ProgressInterval:  viper.GetInt("default_progress_interval"),
	}
	return s.Normalized()
}
