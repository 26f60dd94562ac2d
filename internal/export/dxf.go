package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// ExportDXF writes a top-view drawing of the load plan. The trailer outline,
// intrusion zones, and each placed footprint go on separate layers so CAD
// tools can toggle them independently. Coordinates are inches, X along the
// trailer and Y across it (trailer Z).
func ExportDXF(path string, plan model.Plan, result model.PackResult) error {
	if len(result.Instances) == 0 {
		return fmt.Errorf("no pack result to export")
	}

	t := plan.Trailer.Normalized()
	d := dxf.NewDrawing()

	if _, err := d.AddLayer("TRAILER", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add trailer layer: %w", err)
	}
	drawRect(d, 0, -t.Width/2, t.Length, t.Width/2)

	if _, err := d.AddLayer("ZONES", color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add zones layer: %w", err)
	}
	drawIntrusions(d, t)

	if _, err := d.AddLayer("CARGO", color.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add cargo layer: %w", err)
	}
	for _, ir := range result.Placements() {
		x1 := ir.Transform.Position.X - ir.OrientedDims.L/2
		x2 := ir.Transform.Position.X + ir.OrientedDims.L/2
		z1 := ir.Transform.Position.Z - ir.OrientedDims.W/2
		z2 := ir.Transform.Position.Z + ir.OrientedDims.W/2
		drawRect(d, x1, z1, x2, z2)
	}

	return d.SaveAs(path)
}

// drawIntrusions outlines the floor area lost to wheel wells, or the front
// bonus boundary, on the current layer.
func drawIntrusions(d *drawing.Drawing, t model.Trailer) {
	switch t.ShapeMode {
	case model.ShapeWheelWells:
		ww := t.WheelWells.Resolve(t.Length, t.Width, t.Height)
		x1 := ww.WellOffsetFromRear
		x2 := x1 + ww.WellLength
		drawRect(d, x1, -t.Width/2, x2, -t.Width/2+ww.WellWidth)
		drawRect(d, x1, t.Width/2-ww.WellWidth, x2, t.Width/2)
	case model.ShapeFrontBonus:
		fb := t.FrontBonus.Resolve(t.Length, t.Width, t.Height)
		sx := t.Length - fb.BonusLength
		d.Line(sx, -t.Width/2, 0, sx, t.Width/2, 0)
	}
}

// drawRect draws an axis-aligned rectangle as four lines on the current layer.
func drawRect(d *drawing.Drawing, x1, y1, x2, y2 float64) {
	d.Line(x1, y1, 0, x2, y1, 0)
	d.Line(x2, y1, 0, x2, y2, 0)
	d.Line(x2, y2, 0, x1, y2, 0)
	d.Line(x1, y2, 0, x1, y1, 0)
}
