package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrailerPack/internal/engine"
	"github.com/piwi3910/TrailerPack/internal/project"
)

var compareCmd = &cobra.Command{
	Use:   "compare <plan.json>",
	Short: "Pack the same cargo across trailer variants",
	Long: `compare runs the plan's cargo through a set of what-if scenarios: the
plan's own trailer (with and without the width-fill early stop), a plain box
trailer, a front-bonus trailer and a wheel-well trailer, and prints the
results side by side.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	plan, err := project.LoadPlan(args[0])
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	scenarios := engine.BuildDefaultScenarios(plan.Trailer, plan.Settings)
	results, err := engine.CompareScenarios(scenarios, plan.Instances, plan.Catalog.ItemIndex())
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSHAPE\tPACKED\tUNPLACED\tFILL")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f%%\n",
			r.Scenario.Name, r.Scenario.Trailer.ShapeMode, r.Packed, r.Unplaced, r.VolumePercent)
	}
	return w.Flush()
}
