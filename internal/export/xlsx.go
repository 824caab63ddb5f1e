package export

import (
	"fmt"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	placementsSheet = "Placements"
	stacksSheet     = "Stacks"
	unplacedSheet   = "Unplaced"
)

var placementHeader = []interface{}{
	"Stack", "Floor", "Box ID", "Label", "Group", "X (mm)", "Y (mm)", "Z (mm)",
	"Width (mm)", "Height (mm)", "Depth (mm)", "Rotation", "Weight (kg)", "Fragile",
}

// ExportXLSX writes a workbook with one row per placed box, a per-stack
// summary sheet and, when boxes were left over, an unplaced sheet. Box
// dimensions in the placement sheet are after rotation.
func ExportXLSX(path string, plan model.LoadPlan) error {
	if len(plan.Pallets) == 0 {
		return fmt.Errorf("no pallets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := append([][]interface{}{placementHeader}, collectPlacementRows(plan)...)
	if err := writeRows(f, placementsSheet, rows, bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(stacksSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", stacksSheet, err)
	}
	rows = [][]interface{}{{"Stack", "Pallet", "Floors", "Boxes", "Height (mm)", "Weight (kg)", "Load (kg)"}}
	for i, s := range plan.Pallets {
		pallet := ""
		if len(s.Floors) > 0 {
			pallet = palletName(s.Base().Pallet)
		}
		rows = append(rows, []interface{}{
			i + 1, pallet, len(s.Floors), s.BoxCount(), s.TotalHeight(), s.TotalWeight(), s.LoadWeight(),
		})
	}
	if err := writeRows(f, stacksSheet, rows, bold); err != nil {
		return err
	}

	if len(plan.UnplacedBoxes) > 0 {
		if _, err := f.NewSheet(unplacedSheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", unplacedSheet, err)
		}
		rows = [][]interface{}{{"Box ID", "Label", "Width (mm)", "Height (mm)", "Depth (mm)", "Weight (kg)"}}
		for _, b := range plan.UnplacedBoxes {
			d := b.Dimensions
			rows = append(rows, []interface{}{b.ID, b.Label, d.Width, d.Height, d.Depth, b.Weight})
		}
		if err := writeRows(f, unplacedSheet, rows, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func collectPlacementRows(plan model.LoadPlan) [][]interface{} {
	var rows [][]interface{}
	for si, stack := range plan.Pallets {
		for fi, floor := range stack.Floors {
			for _, p := range floor.Boxes {
				d := p.EffectiveDimensions()
				rows = append(rows, []interface{}{
					si + 1, fi + 1, p.Box.ID, p.Box.Label, p.Box.GroupKey(),
					p.Position.X, p.Position.Y, p.Position.Z,
					d.Width, d.Height, d.Depth,
					model.NormalizeRotation(p.Rotation.Y), p.Box.Weight, p.Box.Fragile,
				})
			}
		}
	}
	return rows
}

// writeRows writes rows starting at A1 and styles the first as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
