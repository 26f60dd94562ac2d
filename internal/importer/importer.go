// Package importer provides CSV and Excel import functionality for cargo
// lists. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// ImportedItem pairs an item definition with the number of instances wanted.
type ImportedItem struct {
	Item     model.Item
	Quantity int
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []ImportedItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Length   int
	Width    int
	Height   int
	Quantity int
	Lock     int
	Flip     int
	Shape    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "item", "item name", "description", "desc", "cargo", "sku"},
	"length":   {"length", "len", "l", "depth", "x"},
	"width":    {"width", "w", "z"},
	"height":   {"height", "h", "tall", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "units"},
	"lock":     {"lock", "orientation", "orientation lock", "upright", "stance"},
	"flip":     {"flip", "can flip", "tippable", "tip"},
	"shape":    {"shape", "type", "form"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe. The delimiter
// that produces the most consistent column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

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

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label: -1, Length: -1, Width: -1, Height: -1,
		Quantity: -1, Lock: -1, Flip: -1, Shape: -1,
	}

	assign := func(target *int, i int) {
		if *target == -1 {
			*target = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					assign(&mapping.Label, i)
				case "length":
					assign(&mapping.Length, i)
				case "width":
					assign(&mapping.Width, i)
				case "height":
					assign(&mapping.Height, i)
				case "quantity":
					assign(&mapping.Quantity, i)
				case "lock":
					assign(&mapping.Lock, i)
				case "flip":
					assign(&mapping.Flip, i)
				case "shape":
					assign(&mapping.Shape, i)
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: Label, Length, Width, Height, Quantity, Lock, Flip, Shape
		return ColumnMapping{
			Label: 0, Length: 1, Width: 2, Height: 3,
			Quantity: 4, Lock: 5, Flip: 6, Shape: 7,
		}, false
	}

	return mapping, true
}

// parseLock converts an orientation lock string to a model.OrientationLock.
// It returns the lock and a boolean indicating whether the string was
// recognized.
func parseLock(s string) (model.OrientationLock, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upright", "up", "u":
		return model.LockUpright, true
	case "onside", "side", "s":
		return model.LockOnSide, true
	case "", "any", "a", "none", "-":
		return model.LockAny, true
	default:
		return model.LockAny, false
	}
}

// parseShape converts a shape string to a model.Shape.
func parseShape(s string) (model.Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drum", "cylinder", "barrel":
		return model.ShapeDrum, true
	case "", "box", "crate", "carton", "pallet":
		return model.ShapeBox, true
	default:
		return model.ShapeBox, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDim parses one required positive dimension cell.
func parseDim(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts an item from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (ImportedItem, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Item %d", itemCount+1)
	}

	length, errMsg := parseDim(row, mapping.Length, "length", rowLabel)
	if errMsg != "" {
		return ImportedItem{}, errMsg, ""
	}
	width, errMsg := parseDim(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return ImportedItem{}, errMsg, ""
	}
	height, errMsg := parseDim(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return ImportedItem{}, errMsg, ""
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		var err error
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return ImportedItem{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	if length <= 0 || width <= 0 || height <= 0 || qty <= 0 {
		return ImportedItem{}, fmt.Sprintf("%s: Length, width, height, and quantity must be positive", rowLabel), ""
	}

	item := model.NewItem(label, length, width, height)

	var warning string
	if lockStr := getCell(row, mapping.Lock); lockStr != "" {
		lock, ok := parseLock(lockStr)
		if ok {
			item.Lock = lock
		} else {
			warning = fmt.Sprintf("%s: Unknown orientation lock '%s', defaulting to Any", rowLabel, lockStr)
		}
	}
	if flipStr := getCell(row, mapping.Flip); flipStr != "" {
		if flip, err := strconv.ParseBool(flipStr); err == nil {
			item.CanFlip = flip
		} else {
			warning = fmt.Sprintf("%s: Unknown flip flag '%s', defaulting to false", rowLabel, flipStr)
		}
	}
	if shapeStr := getCell(row, mapping.Shape); shapeStr != "" {
		shape, ok := parseShape(shapeStr)
		if ok {
			item.Shape = shape
		} else {
			warning = fmt.Sprintf("%s: Unknown shape '%s', defaulting to box", rowLabel, shapeStr)
		}
	}

	return ImportedItem{Item: item, Quantity: qty}, "", warning
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

// ImportCSV imports cargo items from a CSV file. It automatically detects
// the delimiter and maps columns by header names. Supports comma, semicolon,
// tab, and pipe delimiters.
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
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports cargo items from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
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

// ImportExcel imports cargo items from an Excel (.xlsx) file. Reads the
// first sheet and auto-detects column mapping from headers.
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
// It detects headers, maps columns, and parses each row into items.
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

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// No recognized header: if the first row is not numeric where a
		// dimension belongs, skip it as an unrecognized header.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}

// ApplyToPlan appends the imported items to a plan's catalog and creates
// the requested number of instances for each.
func ApplyToPlan(plan *model.Plan, items []ImportedItem) {
	for _, imp := range items {
		plan.Catalog.Items = append(plan.Catalog.Items, imp.Item)
		plan.AddItems(imp.Item.ID, imp.Quantity)
	}
}
