package excel

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

// ErrInvalidFile wraps every file-fatal condition: unreadable bytes, no
// worksheet, no rows, missing required columns. Row-level problems never
// surface through it.
var ErrInvalidFile = errors.New("invalid spreadsheet file")

const (
	colCpuManufacturer = "CPU Manufacturer"
	colCpuModel        = "CPU Model"
	colGpuManufacturer = "GPU Manufacturer"
	colGpuModel        = "GPU Model"
	colRAMMB           = "RAM (MB)"
	colStorageGB       = "Storage (GB)"
	colStorageType     = "Storage Type"
	colPSUWattage      = "PSU Wattage"
	colWeightKg        = "Weight (kg)"
)

var requiredColumns = []string{
	colCpuManufacturer, colCpuModel,
	colGpuManufacturer, colGpuModel,
	colRAMMB, colStorageGB, colStorageType,
	colPSUWattage, colWeightKg,
}

// usbColumns are optional; absent or non-positive means no ports of that type.
var usbColumns = []string{"USB 2.0", "USB 3.0", "USB-C"}

// Parser reads a single-sheet .xlsx workbook into typed rows. One bad row
// never aborts the file: it becomes a RowError and parsing continues.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(data []byte) (domain.ParseResult, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.ParseResult{}, fmt.Errorf("%w: unable to read workbook: %v", ErrInvalidFile, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return domain.ParseResult{}, fmt.Errorf("%w: workbook contains no worksheets", ErrInvalidFile)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return domain.ParseResult{}, fmt.Errorf("%w: unable to read rows: %v", ErrInvalidFile, err)
	}
	if len(rows) == 0 {
		return domain.ParseResult{}, fmt.Errorf("%w: worksheet is empty", ErrInvalidFile)
	}

	columnMap := mapColumns(rows[0])
	if missing := missingRequiredColumns(columnMap); len(missing) > 0 {
		return domain.ParseResult{}, fmt.Errorf("%w: missing required columns: %s", ErrInvalidFile, strings.Join(missing, ", "))
	}

	result := domain.ParseResult{TotalRows: len(rows) - 1}
	for i, row := range rows[1:] {
		// i is 0-based over data rows; the header occupies spreadsheet
		// row 1, so the user-visible number is i+2.
		parsed, rowErr := parseRow(row, columnMap, i+2)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, parsed)
	}

	return result, nil
}

// mapColumns maps lowercased trimmed header text to its 0-based index.
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		columnMap[strings.ToLower(trimmed)] = i
	}
	return columnMap
}

func missingRequiredColumns(columnMap map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columnMap[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func parseRow(row []string, columnMap map[string]int, rowNumber int) (domain.ImportRow, *domain.RowError) {
	parsed := domain.ImportRow{RowNumber: rowNumber}

	var rowErr *domain.RowError
	getString := func(column string) string {
		if rowErr != nil {
			return ""
		}
		value, err := stringCell(row, columnMap, rowNumber, column)
		rowErr = err
		return value
	}
	getInt := func(column string, required bool) int {
		if rowErr != nil {
			return 0
		}
		value, err := intCell(row, columnMap, rowNumber, column, required)
		rowErr = err
		return value
	}
	getFloat := func(column string) float64 {
		if rowErr != nil {
			return 0
		}
		value, err := floatCell(row, columnMap, rowNumber, column)
		rowErr = err
		return value
	}

	parsed.CpuManufacturer = getString(colCpuManufacturer)
	parsed.CpuModel = getString(colCpuModel)
	parsed.GpuManufacturer = getString(colGpuManufacturer)
	parsed.GpuModel = getString(colGpuModel)
	parsed.RAMSizeMB = getInt(colRAMMB, true)
	parsed.StorageSizeGB = getInt(colStorageGB, true)
	parsed.StorageType = getString(colStorageType)
	parsed.PSUWattage = getInt(colPSUWattage, true)
	parsed.WeightKg = getFloat(colWeightKg)

	for _, column := range usbColumns {
		count := getInt(column, false)
		if count > 0 {
			parsed.USBPorts = append(parsed.USBPorts, domain.USBPort{PortType: column, Count: count})
		}
	}

	if rowErr != nil {
		return domain.ImportRow{}, rowErr
	}
	return parsed, nil
}

func cellText(row []string, columnMap map[string]int, column string) (string, bool) {
	idx, ok := columnMap[strings.ToLower(column)]
	if !ok || idx >= len(row) {
		return "", ok
	}
	return strings.TrimSpace(row[idx]), true
}

func stringCell(row []string, columnMap map[string]int, rowNumber int, column string) (string, *domain.RowError) {
	value, _ := cellText(row, columnMap, column)
	if value == "" {
		return "", &domain.RowError{
			Row:     rowNumber,
			Field:   column,
			Message: fmt.Sprintf("column '%s' is required but empty", column),
		}
	}
	return value, nil
}

func intCell(row []string, columnMap map[string]int, rowNumber int, column string, required bool) (int, *domain.RowError) {
	value, _ := cellText(row, columnMap, column)
	if value == "" {
		if !required {
			return 0, nil
		}
		return 0, &domain.RowError{
			Row:     rowNumber,
			Field:   column,
			Message: fmt.Sprintf("column '%s' is required but empty", column),
		}
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, &domain.RowError{
			Row:      rowNumber,
			Field:    column,
			RawValue: value,
			Message:  fmt.Sprintf("column '%s' has invalid integer value: '%s'", column, value),
		}
	}
	return parsed, nil
}

func floatCell(row []string, columnMap map[string]int, rowNumber int, column string) (float64, *domain.RowError) {
	value, _ := cellText(row, columnMap, column)
	if value == "" {
		return 0, &domain.RowError{
			Row:     rowNumber,
			Field:   column,
			Message: fmt.Sprintf("column '%s' is required but empty", column),
		}
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &domain.RowError{
			Row:      rowNumber,
			Field:    column,
			RawValue: value,
			Message:  fmt.Sprintf("column '%s' has invalid decimal value: '%s'", column, value),
		}
	}
	return parsed, nil
}
