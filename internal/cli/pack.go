package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/TrailerPack/internal/engine"
	"github.com/piwi3910/TrailerPack/internal/export"
	"github.com/piwi3910/TrailerPack/internal/history"
	"github.com/piwi3910/TrailerPack/internal/model"
	"github.com/piwi3910/TrailerPack/internal/project"
)

var (
	packTrailerPreset string
	packSavePlan      bool
	packNoHistory     bool
	packPDFPath       string
	packXLSXPath      string
	packDXFPath       string
	packLabelsPath    string
)

var packCmd = &cobra.Command{
	Use:   "pack <plan.json>",
	Short: "Run the packing engine on a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringVar(&packTrailerPreset, "trailer", "", "override the plan's trailer with a preset ID (see 'catalog trailers')")
	packCmd.Flags().BoolVar(&packSavePlan, "save", false, "write the result back into the plan file")
	packCmd.Flags().BoolVar(&packNoHistory, "no-history", false, "skip recording the run in the history store")
	packCmd.Flags().StringVar(&packPDFPath, "pdf", "", "export a load plan PDF to the given path")
	packCmd.Flags().StringVar(&packXLSXPath, "xlsx", "", "export a manifest workbook to the given path")
	packCmd.Flags().StringVar(&packDXFPath, "dxf", "", "export a top-view DXF to the given path")
	packCmd.Flags().StringVar(&packLabelsPath, "labels", "", "export QR cargo labels PDF to the given path")
}

func runPack(cmd *cobra.Command, args []string) error {
	planPath := args[0]

	plan, err := project.LoadPlan(planPath)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	if packTrailerPreset != "" {
		preset, ok := findTrailerPreset(plan.Catalog, packTrailerPreset)
		if !ok {
			return fmt.Errorf("unknown trailer preset %q", packTrailerPreset)
		}
		plan.Trailer = preset.ToTrailer()
	}

	eng := engine.New(plan.Settings)
	if verbose {
		eng.Telemetry = stderrTelemetry{}
	}
	eng.Progress = func(placed, total int) {
		if verbose {
			log.Printf("progress: %d/%d placed", placed, total)
		}
	}

	start := time.Now()
	result, err := eng.Pack(plan.Trailer, plan.Instances, plan.Catalog.ItemIndex())
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("packed %d of %d (%.1f%% volume fill) in %s\n",
		result.PackedCount, result.TotalPackable, result.VolumePercent, elapsed.Round(time.Millisecond))

	if !packNoHistory {
		if err := recordHistory(plan, result, elapsed); err != nil {
			fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
		}
	}

	if packSavePlan {
		plan.Result = &result
		if err := project.SavePlan(planPath, plan); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
		rememberRecentPlan(planPath)
	}

	if packPDFPath != "" {
		if err := export.ExportPDF(packPDFPath, plan, result); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
	}
	if packXLSXPath != "" {
		if err := export.ExportManifest(packXLSXPath, plan, result); err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
	}
	if packDXFPath != "" {
		if err := export.ExportDXF(packDXFPath, plan, result); err != nil {
			return fmt.Errorf("export dxf: %w", err)
		}
	}
	if packLabelsPath != "" {
		if err := export.ExportLabels(packLabelsPath, plan, result); err != nil {
			return fmt.Errorf("export labels: %w", err)
		}
	}

	return nil
}

func findTrailerPreset(cat model.Catalog, id string) (model.TrailerPreset, bool) {
	for _, tp := range cat.Trailers {
		if tp.ID == id {
			return tp, true
		}
	}
	// Fall back to the built-in presets so plans with a trimmed catalog can
	// still name standard trailers.
	for _, tp := range model.DefaultCatalog().Trailers {
		if tp.ID == id {
			return tp, true
		}
	}
	return model.TrailerPreset{}, false
}

// recordHistory appends the run to the SQLite history store and prunes it to
// the configured limit.
func recordHistory(plan model.Plan, result model.PackResult, elapsed time.Duration) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.RecordRun(ctx, plan.Name, plan.Trailer, result, elapsed); err != nil {
		return err
	}
	return store.Prune(ctx, viper.GetInt("history_limit"))
}

// rememberRecentPlan adds the plan path to the app config's recent list.
// Failures are silently ignored, the list is a convenience.
func rememberRecentPlan(path string) {
	cfgPath, err := project.DefaultAppConfigPath()
	if err != nil {
		return
	}
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return
	}
	project.AddRecentPlan(&cfg, path)
	_ = project.SaveAppConfig(cfgPath, cfg)
}

// stderrTelemetry logs engine diagnostics to stderr via the stdlib logger.
type stderrTelemetry struct{}

func (stderrTelemetry) RunStarted(info engine.RunInfo) {
	log.Printf("run started: trailer %.0fx%.0fx%.0f shape=%s zones=%d items=%d frontFirst=%v",
		info.Trailer.L, info.Trailer.W, info.Trailer.H, info.ShapeMode, info.ZoneCount, info.ItemCount, info.FrontFirst)
}

func (stderrTelemetry) SlotScanned(info engine.SlotInfo) {
	if info.Chosen != "" {
		log.Printf("slot (%.1f, %.1f): tested=%d rejected=%d chose %s", info.X, info.Z, info.Tested, info.Rejected, info.Chosen)
	}
}

func (stderrTelemetry) ItemPlaced(info engine.PlacedInfo) {
	log.Printf("placed %s at (%.1f, %.1f, %.1f) rotY=%.0f [%d/%d]",
		info.InstanceID, info.Position.X, info.Position.Y, info.Position.Z, info.RotY, info.PlacedSoFar, info.Total)
}

func (stderrTelemetry) RunFinished(summary engine.RunSummary) {
	log.Printf("run %s: packed=%d unplaced=%d fill=%.1f%%",
		summary.Status, summary.Packed, summary.Unplaced, summary.VolumePercent)
}
