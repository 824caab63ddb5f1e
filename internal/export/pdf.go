// Package export writes load plans to PDF reports, QR-coded box labels and
// Excel placement listings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/model"
)

// boxColor represents an RGB color for a placed box.
type boxColor struct {
	R, G, B int
}

// boxColors is cycled per box group so boxes of one type share a color.
var boxColors = []boxColor{
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
	viewGap      = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF generates a load report. Every floor of every stack gets a page
// with a top view and a front elevation, followed by a summary page listing
// per-stack figures, unplaced boxes and rule violations. validations holds
// one result per stack in plan order and may be shorter than the plan.
func ExportPDF(path string, plan model.LoadPlan, validations []model.ValidationResult, cfg model.AppConfig) error {
	if len(plan.Pallets) == 0 {
		return fmt.Errorf("no pallets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(cfg.ReportTitle, false)

	colors := groupColors(plan)
	for si, stack := range plan.Pallets {
		for fi, floor := range stack.Floors {
			pdf.AddPage()
			renderFloorPage(pdf, floor, colors, si+1, fi+1, len(stack.Floors))
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, validations, cfg)

	return pdf.OutputFileAndClose(path)
}

// groupColors assigns a palette index to each box group in order of first appearance.
func groupColors(plan model.LoadPlan) map[string]boxColor {
	colors := make(map[string]boxColor)
	for _, s := range plan.Pallets {
		for _, f := range s.Floors {
			for _, b := range f.Boxes {
				key := b.Box.GroupKey()
				if _, ok := colors[key]; !ok {
					colors[key] = boxColors[len(colors)%len(boxColors)]
				}
			}
		}
	}
	return colors
}

// renderFloorPage draws a single pallet floor on the current PDF page.
func renderFloorPage(pdf *fpdf.Fpdf, floor model.PalletFloor, colors map[string]boxColor, stackNum, floorNum, floorCount int) {
	pallet := floor.Pallet

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Stack %d, floor %d of %d: %s (%.0f x %.0f mm)",
		stackNum, floorNum, floorCount, palletName(pallet), pallet.Dimensions.Width, pallet.Dimensions.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	cog := geometry.CenterOfGravity(floor.Boxes)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Load height: %.0f mm | Load weight: %.1f kg | CoG: (%.0f, %.0f, %.0f) | Stability: %d",
		len(floor.Boxes), floor.LoadHeight(), floor.BoxWeight(), cog.X, cog.Y, cog.Z,
		geometry.StabilityScore(floor.Boxes, pallet))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := (pageWidth - marginLeft - marginRight - viewGap) / 2
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// Top view: X to the right, Z downwards
	renderView(pdf, floor, colors, marginLeft, drawWidth, drawHeight, "Top view",
		pallet.Dimensions.Width, pallet.Dimensions.Depth,
		func(b model.PlacedBox) (float64, float64, float64, float64) {
			d := b.EffectiveDimensions()
			return b.Position.X, b.Position.Z, d.Width, d.Depth
		})

	// Front elevation: X to the right, Y upwards
	height := math.Max(pallet.MaxStackHeight, floor.LoadHeight())
	renderView(pdf, floor, colors, marginLeft+drawWidth+viewGap, drawWidth, drawHeight, "Front view",
		pallet.Dimensions.Width, height,
		func(b model.PlacedBox) (float64, float64, float64, float64) {
			d := b.EffectiveDimensions()
			return b.Position.X, height - b.Position.Y - d.Height, d.Width, d.Height
		})

	drawBoxLegend(pdf, floor, colors, pageHeight-marginBottom-legendHeight+4)
}

// renderView draws the boxes of a floor projected onto one plane. project
// returns the rectangle of a box in plane coordinates with the origin at the
// top left of the view.
func renderView(pdf *fpdf.Fpdf, floor model.PalletFloor, colors map[string]boxColor,
	left, drawWidth, drawHeight float64, caption string, planeW, planeH float64,
	project func(model.PlacedBox) (x, y, w, h float64)) {
	if planeW <= 0 || planeH <= 0 {
		return
	}

	scale := math.Min(drawWidth/planeW, drawHeight/planeH)
	canvasW := planeW * scale
	canvasH := planeH * scale
	offsetX := left + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(offsetX, offsetY-5)
	pdf.CellFormat(canvasW, 4, caption, "", 0, "L", false, 0, "")

	// Pallet deck (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, b := range floor.Boxes {
		x, y, w, h := project(b)
		bx := offsetX + x*scale
		by := offsetY + y*scale
		bw := w * scale
		bh := h * scale

		col := colors[b.Box.GroupKey()]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		if b.Box.Fragile {
			drawHatchPattern(pdf, bx, by, bw, bh)
		}

		if bw > 15 && bh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(bw, bh))
			pdf.SetTextColor(0, 0, 0)
			label := boxName(b.Box)
			if labelW := pdf.GetStringWidth(label); labelW < bw-2 {
				pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, planeW, planeH, offsetX, offsetY, canvasW, canvasH)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark fragile boxes.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the view rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, planeW, planeH, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", planeW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", planeH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawBoxLegend renders one swatch per box group on the floor.
func drawBoxLegend(pdf *fpdf.Fpdf, floor model.PalletFloor, colors map[string]boxColor, startY float64) {
	if len(floor.Boxes) == 0 {
		return
	}

	counts := make(map[string]int)
	var order []string
	for _, b := range floor.Boxes {
		key := b.Box.GroupKey()
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Box groups:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, key := range order {
		col := colors[key]
		label := fmt.Sprintf("%s x%d", key, counts[key])
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

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.LoadPlan, validations []model.ValidationResult, cfg model.AppConfig) {
	title := cfg.ReportTitle
	if title == "" {
		title = "Pallet Load Report"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	var totalWeight float64
	for _, s := range plan.Pallets {
		totalWeight += s.TotalWeight()
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Job", plan.Name},
		{"Strategy", plan.Strategy},
		{"Stacks", fmt.Sprintf("%d", len(plan.Pallets))},
		{"Boxes Placed", fmt.Sprintf("%d", plan.PlacedCount())},
		{"Unplaced Boxes", fmt.Sprintf("%d", len(plan.UnplacedBoxes))},
		{"Gross Weight", fmt.Sprintf("%.1f kg", totalWeight)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Stack Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 25, 25, 40, 40, 30}
	headers := []string{"Stack", "Pallet", "Floors", "Boxes", "Height", "Weight", "Valid"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, stack := range plan.Pallets {
		valid := "-"
		if i < len(validations) {
			valid = "yes"
			if !validations[i].IsValid {
				valid = "NO"
			}
		}
		name := ""
		if len(stack.Floors) > 0 {
			name = palletName(stack.Base().Pallet)
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			name,
			fmt.Sprintf("%d", len(stack.Floors)),
			fmt.Sprintf("%d", stack.BoxCount()),
			fmt.Sprintf("%.0f mm", stack.TotalHeight()),
			fmt.Sprintf("%.1f kg", stack.TotalWeight()),
			valid,
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

	if len(plan.UnplacedBoxes) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Boxes", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, b := range plan.UnplacedBoxes {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			d := b.Dimensions
			text := fmt.Sprintf("- %s: %.0f x %.0f x %.0f mm, %.1f kg", boxName(b), d.Width, d.Height, d.Depth, b.Weight)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y = renderViolations(pdf, validations, cfg.ShowWarnings, y+8)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PalletStack - Pallet Load Planner", "", 0, "C", false, 0, "")
}

// renderViolations lists rule violations per stack and returns the next free y.
func renderViolations(pdf *fpdf.Fpdf, validations []model.ValidationResult, showWarnings bool, y float64) float64 {
	type line struct {
		stack int
		v     model.Violation
	}
	var lines []line
	for i, r := range validations {
		for _, v := range r.Violations {
			if v.Severity == model.SeverityWarning && !showWarnings {
				continue
			}
			lines = append(lines, line{stack: i + 1, v: v})
		}
	}
	if len(lines) == 0 {
		return y
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Rule Violations", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 8)
	for _, l := range lines {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		if l.v.Severity == model.SeverityError {
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(180, 120, 0)
		}
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("Stack %d  %s  %s: %s", l.stack, l.v.Code, l.v.Severity, l.v.Message)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 4.5, text, "", 0, "L", false, 0, "")
		y += 4.5
	}
	pdf.SetTextColor(0, 0, 0)
	return y
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
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

func boxName(b model.Box) string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

func palletName(p model.Pallet) string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}
