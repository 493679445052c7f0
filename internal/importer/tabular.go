// ============================================================================
// internal/importer/tabular.go
// Tabular parsing for bulk roster import (.xlsx and .csv) and CSV export
// ============================================================================

package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"studentdesk/internal/shared"
)

// Required column headers in the first row of an import file. Matching is
// case-insensitive; column order does not matter.
const (
	colName   = "name"
	colRollNo = "roll_no"
	colMarks  = "marks"
)

// ParseFile reads an import file, dispatching on extension. Only .csv and
// .xlsx are supported.
func ParseFile(path string) ([]shared.ImportRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, &shared.StorageError{Op: "open", Path: path, Err: err}
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, &shared.StorageError{Op: "open", Path: path, Err: err}
		}
		defer f.Close()
		return ParseXLSX(f)
	default:
		return nil, shared.NewValidationError("file", "unsupported file type, use .csv or .xlsx")
	}
}

// ParseCSV reads rows from a CSV stream with a header row.
func ParseCSV(r io.Reader) ([]shared.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged; import policy drops bad ones

	records, err := reader.ReadAll()
	if err != nil {
		return nil, shared.NewValidationError("file", fmt.Sprintf("failed to read csv: %v", err))
	}
	return rowsFromRecords(records)
}

// ParseXLSX reads rows from the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) ([]shared.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, shared.NewValidationError("file", fmt.Sprintf("failed to open excel file: %v", err))
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, shared.NewValidationError("file", "excel file does not contain any sheets")
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, shared.NewValidationError("file", fmt.Sprintf("failed to read sheet %s: %v", sheetName, err))
	}
	return rowsFromRecords(records)
}

// rowsFromRecords maps a header row plus data rows into import tuples.
// Missing required columns fail the whole file; missing cells in data rows
// come through empty and are dropped by the import policy instead.
func rowsFromRecords(records [][]string) ([]shared.ImportRow, error) {
	if len(records) == 0 {
		return nil, shared.NewValidationError("file", "file is empty")
	}

	index := map[string]int{}
	for i, header := range records[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}

	var missing []string
	for _, required := range []string{colName, colRollNo, colMarks} {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, shared.NewValidationError("file",
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]shared.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, shared.ImportRow{
			Name:   cell(record, colName),
			RollNo: cell(record, colRollNo),
			Marks:  cell(record, colMarks),
		})
	}
	return rows, nil
}

// ExportCSV writes the roster as CSV with the same columns the import
// expects, plus the derived grade.
func ExportCSV(w io.Writer, students []shared.Student) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{colName, colRollNo, colMarks, "grade"}); err != nil {
		return err
	}
	for _, st := range students {
		record := []string{
			st.Name,
			st.RollNo,
			fmt.Sprintf("%.2f", float64(st.Marks)),
			st.Grade,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
