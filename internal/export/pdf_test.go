package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// buildTestPlan creates a realistic plan and matching pack result for testing.
func buildTestPlan() (model.Plan, model.PackResult) {
	plan := model.Plan{
		Name: "Export Test",
		Trailer: model.Trailer{
			Label:     "53' Dry Van",
			Length:    636,
			Width:     102,
			Height:    110,
			ShapeMode: model.ShapeRect,
		},
		Catalog: model.Catalog{
			Items: []model.Item{
				{ID: "pallet", Label: "GMA Pallet", Length: 48, Width: 40, Height: 48},
				{ID: "crate", Label: "Crate", Length: 60, Width: 30, Height: 30},
			},
		},
		Settings: model.DefaultPackSettings(),
	}

	result := model.PackResult{
		Instances: []model.InstanceResult{
			{
				InstanceID: "inst-1", ItemID: "pallet", Placed: true,
				Transform:    model.Transform{Position: model.Vec3{X: 24, Y: 24, Z: -31}},
				OrientedDims: model.Dims{L: 48, W: 40, H: 48},
			},
			{
				InstanceID: "inst-2", ItemID: "pallet", Placed: true,
				Transform: model.Transform{
					Position: model.Vec3{X: 20, Y: 24, Z: 20},
					Rotation: model.Vec3{Y: 90},
				},
				OrientedDims: model.Dims{L: 40, W: 48, H: 48},
			},
			{
				InstanceID: "inst-3", ItemID: "crate", Placed: true,
				Transform:    model.Transform{Position: model.Vec3{X: 78, Y: 15, Z: -36}},
				OrientedDims: model.Dims{L: 60, W: 30, H: 30},
			},
			{
				InstanceID: "inst-4", ItemID: "crate", Placed: false,
				Transform:    model.Transform{Position: model.Vec3{X: 0, Y: 15, Z: 87}},
				OrientedDims: model.Dims{L: 60, W: 30, H: 30},
			},
		},
		PackedCount:   3,
		TotalPackable: 4,
		VolumePercent: 3.1,
	}
	return plan, result
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loadplan.pdf")

	plan, result := buildTestPlan()

	err := ExportPDF(path, plan, result)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// A valid PDF with 3 pages (top, side, summary) should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	plan, _ := buildTestPlan()

	err := ExportPDF(path, plan, model.PackResult{})
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportPDF_WheelWellTrailer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wells.pdf")

	plan, result := buildTestPlan()
	plan.Trailer.ShapeMode = model.ShapeWheelWells

	err := ExportPDF(path, plan, result)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_FrontBonusTrailer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bonus.pdf")

	plan, result := buildTestPlan()
	plan.Trailer.ShapeMode = model.ShapeFrontBonus

	err := ExportPDF(path, plan, result)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestColorIndex_StablePerItem(t *testing.T) {
	_, result := buildTestPlan()
	colors := colorIndex(result)

	if len(colors) != 2 {
		t.Fatalf("expected 2 distinct item colors, got %d", len(colors))
	}
	if colors["pallet"] == colors["crate"] {
		t.Error("expected different colors for different items")
	}
}

func TestPlacedCounts(t *testing.T) {
	_, result := buildTestPlan()
	counts, order := placedCounts(result)

	if len(order) != 2 {
		t.Fatalf("expected 2 items in order, got %d", len(order))
	}
	if order[0] != "pallet" {
		t.Errorf("expected 'pallet' first, got '%s'", order[0])
	}
	if counts["pallet"] != 2 {
		t.Errorf("expected 2 placed pallets, got %d", counts["pallet"])
	}
	if counts["crate"] != 1 {
		t.Errorf("expected 1 placed crate, got %d", counts["crate"])
	}
}
