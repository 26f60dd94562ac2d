// Package export provides functionality for exporting load plan results to
// various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors is the palette cycled through per distinct item definition.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF load plan: a top view page, a side view page,
// and a summary page with statistics and any cargo that did not fit.
func ExportPDF(path string, plan model.Plan, result model.PackResult) error {
	if len(result.Instances) == 0 {
		return fmt.Errorf("no pack result to export")
	}

	colors := colorIndex(result)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderTopViewPage(pdf, plan, result, colors)

	pdf.AddPage()
	renderSideViewPage(pdf, plan, result, colors)

	pdf.AddPage()
	renderSummaryPage(pdf, plan, result)

	return pdf.OutputFileAndClose(path)
}

// colorIndex assigns a palette color to each distinct item definition, in
// order of first appearance in the result.
func colorIndex(result model.PackResult) map[string]itemColor {
	colors := make(map[string]itemColor)
	for _, ir := range result.Instances {
		if _, ok := colors[ir.ItemID]; !ok {
			colors[ir.ItemID] = itemColors[len(colors)%len(itemColors)]
		}
	}
	return colors
}

// renderTopViewPage draws the trailer floor seen from above. X runs along
// the page, Z across it, with the driver-side wall at the top edge.
func renderTopViewPage(pdf *fpdf.Fpdf, plan model.Plan, result model.PackResult, colors map[string]itemColor) {
	t := plan.Trailer.Normalized()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Top View: %s (%.0f x %.0f x %.0f in)", t.Label, t.Length, t.Width, t.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Placed: %d of %d | Volume fill: %.1f%%",
		result.PackedCount, result.TotalPackable, result.VolumePercent)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/t.Length, drawHeight/t.Width)
	canvasW := t.Length * scale
	canvasH := t.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Trailer floor
	pdf.SetFillColor(235, 235, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawTopViewIntrusions(pdf, t, scale, offsetX, offsetY, canvasH)

	// Placed items. Transform position is the box center; shift to the
	// rear-left corner for drawing, Z = -W/2 maps to the top edge.
	for _, ir := range result.Placements() {
		col := colors[ir.ItemID]
		px := offsetX + (ir.Transform.Position.X-ir.OrientedDims.L/2)*scale
		py := offsetY + (ir.Transform.Position.Z-ir.OrientedDims.W/2+t.Width/2)*scale
		pw := ir.OrientedDims.L * scale
		ph := ir.OrientedDims.W * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		drawBoxLabel(pdf, plan, ir, px, py, pw, ph)
	}

	drawDimensionAnnotations(pdf, t.Length, t.Width, scale, offsetX, offsetY, canvasW, canvasH)
	drawItemLegend(pdf, plan, result, colors, offsetY+canvasH+6)
}

// renderSideViewPage draws the load seen from the driver side. X runs along
// the page, Y up, with the trailer floor at the bottom edge.
func renderSideViewPage(pdf *fpdf.Fpdf, plan model.Plan, result model.PackResult, colors map[string]itemColor) {
	t := plan.Trailer.Normalized()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Side View: %s (%.0f x %.0f x %.0f in)", t.Label, t.Length, t.Width, t.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/t.Length, drawHeight/t.Height)
	canvasW := t.Length * scale
	canvasH := t.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawSideViewIntrusions(pdf, t, scale, offsetX, offsetY, canvasH)

	// Page Y grows downward, trailer Y grows upward from the floor.
	for _, ir := range result.Placements() {
		col := colors[ir.ItemID]
		px := offsetX + (ir.Transform.Position.X-ir.OrientedDims.L/2)*scale
		py := offsetY + canvasH - (ir.Transform.Position.Y+ir.OrientedDims.H/2)*scale
		pw := ir.OrientedDims.L * scale
		ph := ir.OrientedDims.H * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		drawBoxLabel(pdf, plan, ir, px, py, pw, ph)
	}

	drawDimensionAnnotations(pdf, t.Length, t.Height, scale, offsetX, offsetY, canvasW, canvasH)
	drawItemLegend(pdf, plan, result, colors, offsetY+canvasH+6)
}

// drawTopViewIntrusions hatches the floor area lost to wheel wells and marks
// the front bonus boundary.
func drawTopViewIntrusions(pdf *fpdf.Fpdf, t model.Trailer, scale, offsetX, offsetY, canvasH float64) {
	switch t.ShapeMode {
	case model.ShapeWheelWells:
		ww := t.WheelWells.Resolve(t.Length, t.Width, t.Height)
		wx := offsetX + ww.WellOffsetFromRear*scale
		wl := ww.WellLength * scale
		wh := ww.WellWidth * scale
		drawHatchedZone(pdf, wx, offsetY, wl, wh, "WELL")
		drawHatchedZone(pdf, wx, offsetY+canvasH-wh, wl, wh, "WELL")
	case model.ShapeFrontBonus:
		fb := t.FrontBonus.Resolve(t.Length, t.Width, t.Height)
		sx := offsetX + (t.Length-fb.BonusLength)*scale
		pdf.SetDrawColor(150, 150, 150)
		pdf.SetLineWidth(0.3)
		pdf.Line(sx, offsetY, sx, offsetY+canvasH)
	}
}

// drawSideViewIntrusions hatches the wheel well height band in the side view.
func drawSideViewIntrusions(pdf *fpdf.Fpdf, t model.Trailer, scale, offsetX, offsetY, canvasH float64) {
	if t.ShapeMode != model.ShapeWheelWells {
		return
	}
	ww := t.WheelWells.Resolve(t.Length, t.Width, t.Height)
	wx := offsetX + ww.WellOffsetFromRear*scale
	wl := ww.WellLength * scale
	wh := ww.WellHeight * scale
	drawHatchedZone(pdf, wx, offsetY+canvasH-wh, wl, wh, "WELL")
}

// drawHatchedZone renders an intrusion area with light fill and diagonal
// hatching.
func drawHatchedZone(pdf *fpdf.Fpdf, x, y, w, h float64, label string) {
	pdf.SetFillColor(255, 200, 200)
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")

	drawHatchPattern(pdf, x, y, w, h)

	if w > 20 && h > 5 {
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(180, 0, 0)
		labelW := pdf.GetStringWidth(label)
		pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to indicate
// unusable volume.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawBoxLabel writes the item label and footprint inside a drawn rectangle
// when there is room.
func drawBoxLabel(pdf *fpdf.Fpdf, plan model.Plan, ir model.InstanceResult, px, py, pw, ph float64) {
	if pw <= 10 || ph <= 6 {
		return
	}
	it, ok := plan.Catalog.FindItem(ir.ItemID)
	if !ok {
		return
	}

	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	label := it.Label
	labelW := pdf.GetStringWidth(label)
	if labelW < pw-2 {
		pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds length and cross dimension labels outside
// the trailer rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, along, across, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	alongLabel := fmt.Sprintf("%.0f in", along)
	aLabelW := pdf.GetStringWidth(alongLabel)
	pdf.SetXY(offsetX+(canvasW-aLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(aLabelW, 4, alongLabel, "", 0, "C", false, 0, "")

	acrossLabel := fmt.Sprintf("%.0f in", across)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	cLabelW := pdf.GetStringWidth(acrossLabel)
	pdf.SetXY(offsetX-3-cLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(cLabelW, 4, acrossLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemLegend renders a compact per-item legend with placed counts.
func drawItemLegend(pdf *fpdf.Fpdf, plan model.Plan, result model.PackResult, colors map[string]itemColor, startY float64) {
	counts, order := placedCounts(result)
	if len(order) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cargo placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, itemID := range order {
		col := colors[itemID]
		label := itemID
		if it, ok := plan.Catalog.FindItem(itemID); ok {
			label = fmt.Sprintf("%s (%.0fx%.0fx%.0f)", it.Label, it.Length, it.Width, it.Height)
		}
		label = fmt.Sprintf("%s x%d", label, counts[itemID])
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// placedCounts tallies placed instances per item definition, preserving the
// order of first appearance.
func placedCounts(result model.PackResult) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, ir := range result.Placements() {
		if _, ok := counts[ir.ItemID]; !ok {
			order = append(order, ir.ItemID)
		}
		counts[ir.ItemID]++
	}
	return counts, order
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan, result model.PackResult) {
	t := plan.Trailer.Normalized()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Trailer", fmt.Sprintf("%s (%.0f x %.0f x %.0f in, %s)", t.Label, t.Length, t.Width, t.Height, t.ShapeMode)},
		{"Instances Placed", fmt.Sprintf("%d of %d", result.PackedCount, result.TotalPackable)},
		{"Volume Fill", fmt.Sprintf("%.1f%%", result.VolumePercent)},
		{"Unplaced Instances", fmt.Sprintf("%d", len(result.Unplaced()))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-item breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cargo Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{70, 50, 30, 30, 40}
	headers := []string{"Item", "Dimensions", "Placed", "Unplaced", "Volume (cu ft)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	placed, order := placedCounts(result)
	unplaced := make(map[string]int)
	for _, ir := range result.Unplaced() {
		if _, ok := placed[ir.ItemID]; !ok {
			found := false
			for _, id := range order {
				if id == ir.ItemID {
					found = true
					break
				}
			}
			if !found {
				order = append(order, ir.ItemID)
			}
		}
		unplaced[ir.ItemID]++
	}

	pdf.SetFont("Helvetica", "", 9)
	for i, itemID := range order {
		it, ok := plan.Catalog.FindItem(itemID)
		if !ok {
			continue
		}
		rowData := []string{
			it.Label,
			fmt.Sprintf("%.0f x %.0f x %.0f in", it.Length, it.Width, it.Height),
			fmt.Sprintf("%d", placed[itemID]),
			fmt.Sprintf("%d", unplaced[itemID]),
			fmt.Sprintf("%.1f", it.Volume()*float64(placed[itemID])/1728),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Unplaced cargo warning
	if rest := result.Unplaced(); len(rest) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Cargo Did Not Fit", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for itemID, n := range unplaced {
			it, ok := plan.Catalog.FindItem(itemID)
			if !ok {
				continue
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f x %.0f in (qty: %d)", it.Label, it.Length, it.Width, it.Height, n)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TrailerPack - Trailer Load Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle
// dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
