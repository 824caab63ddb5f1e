package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PalletStack/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each box label's QR code.
type LabelInfo struct {
	BoxID   string  `json:"id"`
	Label   string  `json:"label"`
	Width   float64 `json:"width_mm"`
	Height  float64 `json:"height_mm"`
	Depth   float64 `json:"depth_mm"`
	Weight  float64 `json:"weight_kg"`
	Stack   int     `json:"stack"`
	Floor   int     `json:"floor"`
	Rotated bool    `json:"rotated"`
	Fragile bool    `json:"fragile"`
	X       float64 `json:"x_mm"`
	Y       float64 `json:"y_mm"`
	Z       float64 `json:"z_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one per placed box.
// Each label shows the box name, dimensions and its stack/floor position;
// the QR code carries the same data as JSON for scanning at the dock.
func ExportLabels(path string, plan model.LoadPlan) error {
	if len(plan.Pallets) == 0 {
		return fmt.Errorf("no pallets to generate labels for")
	}

	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no boxes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.BoxID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position. n makes the
// registered QR image name unique within the document.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", n)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.Label
	if name == "" {
		name = info.BoxID
	}
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f mm, %.1f kg", info.Width, info.Height, info.Depth, info.Weight)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	where := fmt.Sprintf("Stack %d / floor %d @ (%.0f, %.0f, %.0f)", info.Stack, info.Floor, info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, where, "", 1, "L", false, 0, "")

	if info.Fragile {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(textW, 3, "FRAGILE", "", 0, "L", false, 0, "")
	} else if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information for every placed box in
// stack, floor and placement order. Stack and floor numbers start at 1.
func CollectLabelInfos(plan model.LoadPlan) []LabelInfo {
	var labels []LabelInfo
	for si, stack := range plan.Pallets {
		for fi, floor := range stack.Floors {
			for _, p := range floor.Boxes {
				d := p.EffectiveDimensions()
				labels = append(labels, LabelInfo{
					BoxID:   p.Box.ID,
					Label:   p.Box.Label,
					Width:   d.Width,
					Height:  d.Height,
					Depth:   d.Depth,
					Weight:  p.Box.Weight,
					Stack:   si + 1,
					Floor:   fi + 1,
					Rotated: p.Rotation.QuarterTurned(),
					Fragile: p.Box.Fragile,
					X:       p.Position.X,
					Y:       p.Position.Y,
					Z:       p.Position.Z,
				})
			}
		}
	}
	return labels
}
