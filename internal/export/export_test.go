package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/xuri/excelize/v2"
)

func testPallet(id string) model.Pallet {
	return model.Pallet{
		ID:             id,
		Label:          "EUR",
		Dimensions:     model.Dimensions{Width: 1200, Height: 144, Depth: 800},
		MaxWeight:      1000,
		MaxStackHeight: 2200,
		Weight:         25,
	}
}

func placedBox(id, typ string, x, y, z, rot float64, fragile bool) model.PlacedBox {
	return model.PlacedBox{
		Box: model.Box{
			ID:         id,
			Label:      "Box " + id,
			Type:       typ,
			Dimensions: model.Dimensions{Width: 600, Height: 300, Depth: 400},
			Weight:     10,
			Fragile:    fragile,
			Stackable:  true,
		},
		Position: model.Vec3{X: x, Y: y, Z: z},
		Rotation: model.Rotation{Y: rot},
	}
}

// buildTestPlan creates a two stack plan; the first stack has two floors.
func buildTestPlan() model.LoadPlan {
	sep := model.Separator{ID: "sep-1", Dimensions: model.Dimensions{Width: 1200, Height: 5, Depth: 800}, Weight: 0.5}
	return model.LoadPlan{
		Name:     "week 42",
		Strategy: "column",
		Pallets: []model.StackedPallet{
			{
				ID: "stack-1",
				Floors: []model.PalletFloor{
					{
						Pallet: testPallet("pallet-1"),
						Boxes: []model.PlacedBox{
							placedBox("b1", "fruit", 0, 0, 0, 0, false),
							placedBox("b2", "fruit", 600, 0, 0, 0, false),
							placedBox("b3", "eggs", 0, 300, 0, 90, true),
						},
						SeparatorAbove: &sep,
					},
					{
						Pallet: testPallet("pallet-2"),
						Boxes:  []model.PlacedBox{placedBox("b4", "fruit", 0, 0, 0, 0, false)},
					},
				},
			},
			{
				ID: "stack-2",
				Floors: []model.PalletFloor{
					{Pallet: testPallet("pallet-3"), Boxes: []model.PlacedBox{placedBox("b5", "", 0, 0, 400, 0, false)}},
				},
			},
		},
		UnplacedBoxes: []model.Box{
			{ID: "u1", Label: "Too big", Dimensions: model.Dimensions{Width: 3000, Height: 300, Depth: 400}, Weight: 50},
		},
	}
}

func assertFileWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

// ─── PDF report ────────────────────────────────────────────

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	validations := []model.ValidationResult{
		model.NewValidationResult(model.Violation{Code: "BR-103", Severity: model.SeverityError, Message: "fragile box overloaded", InvolvedIDs: []string{"b3"}}),
		model.NewValidationResult(model.Violation{Code: "BR-503", Severity: model.SeverityWarning, Message: "centre of gravity is high"}),
	}
	if err := ExportPDF(path, buildTestPlan(), validations, model.DefaultAppConfig()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path)
}

func TestExportPDF_WithoutValidations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	cfg := model.DefaultAppConfig()
	cfg.ReportTitle = ""
	cfg.ShowWarnings = false
	if err := ExportPDF(path, buildTestPlan(), nil, cfg); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path)
}

func TestExportPDF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, model.LoadPlan{}, nil, model.DefaultAppConfig()); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty plan")
	}
}

func TestExportPDF_ManyUnplacedBoxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unplaced.pdf")

	plan := buildTestPlan()
	for i := 0; i < 60; i++ {
		plan.UnplacedBoxes = append(plan.UnplacedBoxes, model.Box{
			ID: fmt.Sprintf("u%d", i+2), Dimensions: model.Dimensions{Width: 100, Height: 100, Depth: 100}, Weight: 1,
		})
	}
	if err := ExportPDF(path, plan, nil, model.DefaultAppConfig()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path)
}

func TestGroupColors_StableByFirstAppearance(t *testing.T) {
	colors := groupColors(buildTestPlan())

	if len(colors) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(colors))
	}
	if colors["fruit"] != boxColors[0] || colors["eggs"] != boxColors[1] || colors["default"] != boxColors[2] {
		t.Errorf("unexpected color assignment: %+v", colors)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.w, tt.h); got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

// ─── Labels ────────────────────────────────────────────────

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, buildTestPlan()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFileWritten(t, path)
}

func TestExportLabels_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportLabels(path, model.LoadPlan{}); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}

func TestExportLabels_NoBoxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")
	plan := model.LoadPlan{Pallets: []model.StackedPallet{
		{ID: "s", Floors: []model.PalletFloor{{Pallet: testPallet("p")}}},
	}}
	if err := ExportLabels(path, plan); err == nil {
		t.Fatal("expected error for a plan without boxes, got nil")
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	var boxes []model.PlacedBox
	for i := 0; i < 35; i++ {
		boxes = append(boxes, placedBox(fmt.Sprintf("m%d", i), "bulk", float64(i%2)*600, float64(i/4)*300, float64(i/2%2)*400, 0, false))
	}
	plan := model.LoadPlan{Pallets: []model.StackedPallet{
		{ID: "s", Floors: []model.PalletFloor{{Pallet: testPallet("p"), Boxes: boxes}}},
	}}
	if err := ExportLabels(path, plan); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFileWritten(t, path)
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestPlan())

	if len(labels) != 5 {
		t.Fatalf("expected 5 labels, got %d", len(labels))
	}
	first := labels[0]
	if first.BoxID != "b1" || first.Stack != 1 || first.Floor != 1 || first.Rotated {
		t.Errorf("unexpected first label: %+v", first)
	}

	rotated := labels[2]
	if !rotated.Rotated || !rotated.Fragile {
		t.Errorf("expected rotated fragile label: %+v", rotated)
	}
	if rotated.Width != 400 || rotated.Depth != 600 {
		t.Errorf("rotation should swap width and depth: %+v", rotated)
	}
	if rotated.Y != 300 {
		t.Errorf("expected y 300, got %f", rotated.Y)
	}

	if labels[3].Floor != 2 || labels[4].Stack != 2 {
		t.Errorf("unexpected stack/floor numbering: %+v %+v", labels[3], labels[4])
	}
}

// ─── XLSX ──────────────────────────────────────────────────

func TestExportXLSX_WritesSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if err := ExportXLSX(path, buildTestPlan()); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 || sheets[0] != placementsSheet || sheets[1] != stacksSheet || sheets[2] != unplacedSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(placementsSheet)
	if err != nil {
		t.Fatalf("cannot read placements: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header + 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "Stack" || rows[3][2] != "b3" || rows[3][11] != "90" {
		t.Errorf("unexpected placement rows: %v", rows[:4])
	}
	if rows[3][8] != "400" {
		t.Errorf("expected rotated width 400, got %s", rows[3][8])
	}

	stacks, err := f.GetRows(stacksSheet)
	if err != nil {
		t.Fatalf("cannot read stacks: %v", err)
	}
	if len(stacks) != 3 || stacks[1][2] != "2" || stacks[1][3] != "4" {
		t.Errorf("unexpected stack rows: %v", stacks)
	}
}

func TestExportXLSX_NoUnplacedSheetWhenAllPlaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	plan := buildTestPlan()
	plan.UnplacedBoxes = nil
	if err := ExportXLSX(path, plan); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 2 {
		t.Errorf("expected 2 sheets, got %v", sheets)
	}
}

func TestExportXLSX_EmptyPlan(t *testing.T) {
	if err := ExportXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), model.LoadPlan{}); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}
