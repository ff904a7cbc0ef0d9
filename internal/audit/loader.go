// File path: internal/audit/loader.go
package audit

import (
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadSheet reads the named worksheet from the workbook at path into a
// record per data row, keyed by the header row in column order. Cell
// text is coerced back to scalars (numbers, booleans, absent for empty
// cells) and every value passes through Normalize. The source file is
// only ever opened for reading.
func LoadSheet(path, sheetName string) (records []Record, opErr *Error) {
	defer guard(&opErr)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, Errorf(KindNotFound, "workbook not found: %s", path)
		}
		return nil, Errorf(KindNotFound, "stat workbook %s: %w", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Errorf(KindFormat, "open workbook %s: %w", path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, Errorf(KindSheetNotFound, "worksheet %q not found in %s", sheetName, path)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, Errorf(KindFormat, "read worksheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	header := rows[0]
	records = make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := NewRecord()
		for col, name := range header {
			if strings.TrimSpace(name) == "" {
				continue
			}
			var cell any
			if col < len(row) {
				cell = coerceCell(row[col])
			}
			rec.Set(name, Normalize(cell))
		}
		records = append(records, rec)
	}
	return records, nil
}

// coerceCell maps the worksheet's string rendering of a cell back to a
// scalar: empty cells are absent, integral and decimal numbers become
// int64/float64, TRUE/FALSE become bool, everything else stays text.
func coerceCell(text string) any {
	if text == "" {
		return nil
	}
	switch text {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}
