package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrailerPack/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past pack runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent pack runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tPLAN\tTRAILER\tSHAPE\tPACKED\tFILL\tTOOK")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%.1f%%\t%s\n",
				r.CreatedAt.Local().Format(time.DateTime),
				r.PlanName, r.TrailerLabel, r.ShapeMode,
				r.PackedCount, r.ItemCount, r.VolumePercent,
				r.Duration.Round(time.Millisecond))
		}
		return w.Flush()
	},
}

var historyKeep int

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Prune(ctx, historyKeep); err != nil {
			return err
		}
		fmt.Printf("pruned history to the newest %d runs\n", historyKeep)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to show")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 50, "number of newest runs to keep")
	historyCmd.AddCommand(historyListCmd, historyPruneCmd)
}

func openHistory(ctx context.Context) (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	return history.Open(ctx, path)
}
