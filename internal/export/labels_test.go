package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TrailerPack/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	plan, result := buildTestPlan()
	labels := CollectLabelInfos(plan, result)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels (placed only), got %d", len(labels))
	}

	first := labels[0]
	if first.ItemLabel != "GMA Pallet" {
		t.Errorf("expected item label 'GMA Pallet', got '%s'", first.ItemLabel)
	}
	if first.InstanceID != "inst-1" {
		t.Errorf("expected instance 'inst-1', got '%s'", first.InstanceID)
	}
	if first.Length != 48 || first.Width != 40 || first.Height != 48 {
		t.Errorf("unexpected dims: %+v", first)
	}
	if first.X != 24 {
		t.Errorf("expected X 24, got %f", first.X)
	}

	if labels[1].RotY != 90 {
		t.Errorf("expected rotated instance, got RotY %f", labels[1].RotY)
	}
}

func TestCollectLabelInfos_UnknownItemFallsBackToID(t *testing.T) {
	plan, result := buildTestPlan()
	plan.Catalog.Items = nil

	labels := CollectLabelInfos(plan, result)
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].ItemLabel != "pallet" {
		t.Errorf("expected item ID fallback 'pallet', got '%s'", labels[0].ItemLabel)
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	plan, result := buildTestPlan()

	err := ExportLabels(path, plan, result)
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("labels PDF is empty")
	}
}

func TestExportLabels_NoPlacedCargo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	plan, _ := buildTestPlan()

	err := ExportLabels(path, plan, model.PackResult{})
	if err == nil {
		t.Fatal("expected error when nothing is placed, got nil")
	}
}

func TestExportLabels_ManyLabelsMultiplePages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many.pdf")

	plan, _ := buildTestPlan()

	// More instances than fit on one label sheet
	var result model.PackResult
	for i := 0; i < labelsPerPage+5; i++ {
		result.Instances = append(result.Instances, model.InstanceResult{
			InstanceID:   model.NewItemInstance("pallet").InstanceID,
			ItemID:       "pallet",
			Placed:       true,
			Transform:    model.Transform{Position: model.Vec3{X: float64(i) * 48}},
			OrientedDims: model.Dims{L: 48, W: 40, H: 48},
		})
	}

	err := ExportLabels(path, plan, result)
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("labels PDF is empty")
	}
}
