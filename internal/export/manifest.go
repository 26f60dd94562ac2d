package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// ExportManifest writes the pack result as an Excel workbook with one row
// per instance plus a summary sheet. Placed cargo lists its final position,
// unplaced cargo is marked so it can be chased up on the dock.
func ExportManifest(path string, plan model.Plan, result model.PackResult) error {
	if len(result.Instances) == 0 {
		return fmt.Errorf("no pack result to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	manifestSheet := f.GetSheetName(0)
	if err := f.SetSheetName(manifestSheet, "Manifest"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Instance", "Item", "Length (in)", "Width (in)", "Height (in)", "Placed", "X (in)", "Y (in)", "Z (in)", "Rotated"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue("Manifest", cell, h); err != nil {
			return err
		}
	}

	idx := plan.Catalog.ItemIndex()
	for row, ir := range result.Instances {
		label := ir.ItemID
		if it, ok := idx[ir.ItemID]; ok {
			label = it.Label
		}

		placed := "No"
		if ir.Placed {
			placed = "Yes"
		}
		rotated := "No"
		if ir.Transform.Rotation.Y != 0 {
			rotated = "Yes"
		}

		values := []interface{}{
			ir.InstanceID,
			label,
			ir.OrientedDims.L,
			ir.OrientedDims.W,
			ir.OrientedDims.H,
			placed,
			ir.Transform.Position.X,
			ir.Transform.Position.Y,
			ir.Transform.Position.Z,
			rotated,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Manifest", cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	t := plan.Trailer.Normalized()
	summary := [][]interface{}{
		{"Trailer", t.Label},
		{"Dimensions (in)", fmt.Sprintf("%.0f x %.0f x %.0f", t.Length, t.Width, t.Height)},
		{"Shape", string(t.ShapeMode)},
		{"Instances placed", result.PackedCount},
		{"Total packable", result.TotalPackable},
		{"Volume fill (%)", result.VolumePercent},
	}
	for row, pair := range summary {
		for col, v := range pair {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Summary", cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth("Manifest", "A", "B", 18); err != nil {
		return err
	}
	if err := f.SetColWidth("Summary", "A", "B", 22); err != nil {
		return err
	}

	return f.SaveAs(path)
}
