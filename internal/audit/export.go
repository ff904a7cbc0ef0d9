// File path: internal/audit/export.go
package audit

import (
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Sheet1"

// ExportToExcel writes the record sequence as a worksheet at outputPath:
// one header row followed by one row per record, no index column. The
// column set is the union of keys across all records in first-seen
// order; a record missing a column leaves that cell empty. An existing
// file at outputPath is overwritten.
func ExportToExcel(records []Record, outputPath string) (rowsExported int, opErr *Error) {
	defer guard(&opErr)
	columns := unionColumns(records)

	f := excelize.NewFile()
	defer f.Close()

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return 0, Errorf(KindWrite, "header cell for column %d: %w", col, err)
		}
		if err := f.SetCellValue(exportSheetName, cell, name); err != nil {
			return 0, Errorf(KindWrite, "write header %q: %w", name, err)
		}
	}
	for i, rec := range records {
		for col, name := range columns {
			value, ok := rec.Get(name)
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+headerRowOffset)
			if err != nil {
				return 0, Errorf(KindWrite, "cell for row %d column %d: %w", i, col, err)
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return 0, Errorf(KindWrite, "write row %d column %q: %w", i, name, err)
			}
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return 0, Errorf(KindWrite, "save workbook %s: %w", outputPath, err)
	}
	return len(records), nil
}

// unionColumns returns the union of column names across records in
// first-seen order.
func unionColumns(records []Record) []string {
	var columns []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, key := range rec.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	return columns
}
