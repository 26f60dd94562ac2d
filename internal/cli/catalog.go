package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrailerPack/internal/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List built-in items and trailer presets",
}

var catalogItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the built-in cargo item definitions",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tL x W x H (in)\tSHAPE\tLOCK\tFLIP")
		for _, it := range model.DefaultCatalog().Items {
			flip := ""
			if it.CanFlip {
				flip = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%.1f x %.1f x %.1f\t%s\t%s\t%s\n",
				it.ID, it.Label, it.Length, it.Width, it.Height, it.Shape, it.Lock, flip)
		}
		w.Flush()
	},
}

var catalogTrailersCmd = &cobra.Command{
	Use:   "trailers",
	Short: "List the built-in trailer presets",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tL x W x H (in)\tSHAPE")
		for _, tp := range model.DefaultCatalog().Trailers {
			fmt.Fprintf(w, "%s\t%s\t%.0f x %.0f x %.0f\t%s\n",
				tp.ID, tp.Name, tp.Length, tp.Width, tp.Height, tp.ShapeMode)
		}
		w.Flush()
	},
}

func init() {
	catalogCmd.AddCommand(catalogItemsCmd, catalogTrailersCmd)
}
