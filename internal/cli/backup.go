package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrailerPack/internal/model"
	"github.com/piwi3910/TrailerPack/internal/project"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import all local data",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <backup.json>",
	Short: "Export app config and all saved plans to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := project.DefaultAppConfigPath()
		if err != nil {
			return err
		}
		cfg, err := project.LoadAppConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		plans, err := loadAllPlans()
		if err != nil {
			return err
		}

		if err := project.ExportAllData(args[0], cfg, plans); err != nil {
			return err
		}
		fmt.Printf("exported config and %d plans to %s\n", len(plans), args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <backup.json>",
	Short: "Restore app config and plans from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}

		cfgPath, err := project.DefaultAppConfigPath()
		if err != nil {
			return err
		}
		if err := project.SaveAppConfig(cfgPath, backup.Config); err != nil {
			return fmt.Errorf("restore config: %w", err)
		}

		planDir, err := project.DefaultPlanDir()
		if err != nil {
			return err
		}
		for _, plan := range backup.Plans {
			path := filepath.Join(planDir, planFileName(plan.Name))
			if err := project.SavePlan(path, plan); err != nil {
				return fmt.Errorf("restore plan %q: %w", plan.Name, err)
			}
		}

		fmt.Printf("restored config and %d plans from backup (v%s)\n", len(backup.Plans), backup.Version)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
}

// loadAllPlans reads every plan file in the default plan directory. Files
// that fail to load are skipped with a warning rather than aborting the
// backup.
func loadAllPlans() ([]model.Plan, error) {
	planDir, err := project.DefaultPlanDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(planDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var plans []model.Plan
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		plan, err := project.LoadPlan(filepath.Join(planDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// planFileName derives a filesystem-safe file name from a plan name.
func planFileName(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if safe == "" {
		safe = "plan"
	}
	return safe + ".json"
}
