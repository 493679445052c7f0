package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"studentdesk/internal/shared"
)

func TestParseCSV(t *testing.T) {
	t.Run("Header Mapping Any Order", func(t *testing.T) {
		input := "Marks,NAME,roll_no\n88,Alice,S001\n42.5,Bob,S002\n"
		rows, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseCSV failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		if rows[0].Name != "Alice" || rows[0].RollNo != "S001" || rows[0].Marks != "88" {
			t.Errorf("Unexpected first row: %+v", rows[0])
		}
	})

	t.Run("Missing Columns", func(t *testing.T) {
		input := "name,marks\nAlice,88\n"
		_, err := ParseCSV(strings.NewReader(input))
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Expected ValidationError, got %v", err)
		}
		if !strings.Contains(verr.Message, "roll_no") {
			t.Errorf("Error should name the missing column: %v", verr)
		}
	})

	t.Run("Empty File", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})

	t.Run("Short Rows Yield Empty Cells", func(t *testing.T) {
		input := "name,roll_no,marks\nAlice,S001\n"
		rows, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseCSV failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(rows))
		}
		if rows[0].Marks != "" {
			t.Errorf("Expected empty marks cell, got %q", rows[0].Marks)
		}
	})
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]interface{}{
		"A1": "name", "B1": "roll_no", "C1": "marks",
		"A2": "Alice", "B2": "S001", "C2": 88,
		"A3": "Bob", "B3": "S002", "C3": 42.5,
	}
	for ref, val := range cells {
		if err := f.SetCellValue(sheet, ref, val); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", ref, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}

	rows, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseXLSX failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Alice" || rows[0].RollNo != "S001" || rows[0].Marks != "88" {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].Marks != "42.5" {
		t.Errorf("Numeric cell = %q, want 42.5", rows[1].Marks)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("CSV By Extension", func(t *testing.T) {
		path := filepath.Join(dir, "roster.csv")
		if err := os.WriteFile(path, []byte("name,roll_no,marks\nAlice,S001,88\n"), 0o644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		rows, err := ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("Expected 1 row, got %d", len(rows))
		}
	})

	t.Run("Unsupported Extension", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "roster.pdf"))
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})
}

func TestExportCSV(t *testing.T) {
	students := []shared.Student{
		{Name: "Alice", RollNo: "S001", Marks: 88.5, Grade: "B"},
		{Name: "Bob", RollNo: "S002", Marks: 42, Grade: "F"},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, students); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,roll_no,marks,grade" {
		t.Errorf("Header = %q", lines[0])
	}
	if lines[1] != "Alice,S001,88.50,B" {
		t.Errorf("Row = %q", lines[1])
	}

	// The export must round-trip through the import parser.
	rows, err := ParseCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Re-parse of export failed: %v", err)
	}
	if len(rows) != 2 || rows[1].RollNo != "S002" {
		t.Errorf("Round trip lost rows: %+v", rows)
	}
}
