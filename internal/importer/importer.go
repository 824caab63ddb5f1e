// Package importer provides CSV and Excel import of box lists and DXF import
// of room outlines. Box lists support automatic delimiter detection, flexible
// column mapping and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a box list import.
type ImportResult struct {
	Boxes    []model.BoxLine
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Unmapped roles are -1.
type ColumnMapping struct {
	Label          int
	Width          int
	Height         int
	Depth          int
	Weight         int
	Quantity       int
	Type           int
	SKU            int
	Product        int
	MaterialWeight int
	Fragile        int
	FragilityMax   int
	Stackable      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":           {"label", "name", "description", "desc", "item", "box"},
	"width":           {"width", "w", "length", "len", "l", "x"},
	"height":          {"height", "h", "y"},
	"depth":           {"depth", "d", "z"},
	"weight":          {"weight", "kg", "mass", "wt", "weight (kg)", "gross weight"},
	"quantity":        {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"type":            {"type", "box type", "category"},
	"sku":             {"sku", "article", "article number", "item number"},
	"product":         {"product", "product group", "group"},
	"material weight": {"material weight", "material_weight", "mw", "resistance"},
	"fragile":         {"fragile"},
	"fragility max":   {"fragility max", "fragility max weight", "fragility_max_weight", "max load", "max top load"},
	"stackable":       {"stackable"},
}

func unmappedColumns() ColumnMapping {
	return ColumnMapping{
		Label: -1, Width: -1, Height: -1, Depth: -1, Weight: -1, Quantity: -1,
		Type: -1, SKU: -1, Product: -1, MaterialWeight: -1, Fragile: -1,
		FragilityMax: -1, Stackable: -1,
	}
}

// slot returns the mapping field for a canonical role.
func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "label":
		return &m.Label
	case "width":
		return &m.Width
	case "height":
		return &m.Height
	case "depth":
		return &m.Depth
	case "weight":
		return &m.Weight
	case "quantity":
		return &m.Quantity
	case "type":
		return &m.Type
	case "sku":
		return &m.SKU
	case "product":
		return &m.Product
	case "material weight":
		return &m.MaterialWeight
	case "fragile":
		return &m.Fragile
	case "fragility max":
		return &m.FragilityMax
	case "stackable":
		return &m.Stackable
	}
	return nil
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (label, width, height, depth, weight, quantity) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := unmappedColumns()

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if s := mapping.slot(role); s != nil && *s == -1 {
					*s = i
				}
			}
		}
	}

	if !isHeader {
		positional := unmappedColumns()
		positional.Label = 0
		positional.Width = 1
		positional.Height = 2
		positional.Depth = 3
		positional.Weight = 4
		positional.Quantity = 5
		return positional, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseBool accepts the usual spreadsheet spellings of yes and no.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x", "ja":
		return true, true
	case "no", "n", "false", "0", "-", "nein":
		return false, true
	default:
		return false, false
	}
}

// parseNumber parses a decimal accepting a comma as decimal separator.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseRow extracts a BoxLine from a row using the given column mapping.
// Returns the line, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, lineCount int) (model.BoxLine, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Box %d", lineCount+1)
	}

	required := []struct {
		name string
		idx  int
	}{
		{"width", mapping.Width},
		{"height", mapping.Height},
		{"depth", mapping.Depth},
		{"weight", mapping.Weight},
	}
	values := make([]float64, len(required))
	for i, r := range required {
		s := getCell(row, r.idx)
		if s == "" {
			return model.BoxLine{}, fmt.Sprintf("%s: Missing %s value", rowLabel, r.name), nil
		}
		v, err := parseNumber(s)
		if err != nil {
			return model.BoxLine{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, r.name, s), nil
		}
		values[i] = v
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.BoxLine{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		qty = n
	}

	line := model.BoxLine{
		Label:    label,
		Width:    values[0],
		Height:   values[1],
		Depth:    values[2],
		Weight:   values[3],
		Quantity: qty,
		Type:     getCell(row, mapping.Type),
		SKU:      getCell(row, mapping.SKU),
		Product:  getCell(row, mapping.Product),
	}
	if line.Width <= 0 || line.Height <= 0 || line.Depth <= 0 || qty <= 0 {
		return model.BoxLine{}, fmt.Sprintf("%s: Dimensions and quantity must be positive", rowLabel), nil
	}
	if line.Weight < 0 {
		return model.BoxLine{}, fmt.Sprintf("%s: Weight must not be negative", rowLabel), nil
	}

	if s := getCell(row, mapping.MaterialWeight); s != "" {
		mw, err := parseNumber(s)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("%s: Invalid material weight '%s', using default", rowLabel, s))
		case mw < 0 || mw > 10:
			warnings = append(warnings, fmt.Sprintf("%s: Material weight %.1f outside 0-10, using default", rowLabel, mw))
		default:
			line.MaterialWeight = model.Float(mw)
		}
	}

	if s := getCell(row, mapping.Fragile); s != "" {
		if v, ok := parseBool(s); ok {
			line.Fragile = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown fragile value '%s', assuming not fragile", rowLabel, s))
		}
	}

	if s := getCell(row, mapping.FragilityMax); s != "" {
		v, err := parseNumber(s)
		if err != nil || v < 0 {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid fragility max weight '%s', ignored", rowLabel, s))
		} else {
			line.FragilityMaxWeight = model.Float(v)
		}
	}

	if s := getCell(row, mapping.Stackable); s != "" {
		if v, ok := parseBool(s); ok {
			line.NotStackable = !v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown stackable value '%s', assuming stackable", rowLabel, s))
		}
	}

	return line, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportBoxes imports a box list, choosing the reader by file extension.
func ImportBoxes(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported box list format '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports boxes from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	result = ImportCSVFromReader(bytes.NewReader(data), delimiter)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append([]string{fmt.Sprintf("Detected %s delimiter", delimName)}, result.Warnings...)
	}
	return result
}

// ImportCSVFromReader imports boxes from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports boxes from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if mapping.Weight == -1 {
			missing = append(missing, "Weight")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 5 {
		// An unrecognised header: the width column is not numeric
		if _, err := parseNumber(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		line, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Boxes))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Boxes = append(result.Boxes, line)
	}

	return result
}
