package reconcile

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseSpreadsheetCSV(t *testing.T) {
	content := []byte("Name,Email,Current CTC\nJane Doe,jane@example.com,12\n\nJohn,john@example.com,10\n")

	table, err := ParseSpreadsheet("candidates.csv", content)
	if err != nil {
		t.Fatalf("ParseSpreadsheet: %v", err)
	}

	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v, want 3", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (empty row skipped)", len(table.Rows))
	}
	if table.Rows[0]["Email"] != "jane@example.com" {
		t.Errorf("row 0 email = %q", table.Rows[0]["Email"])
	}
	if table.Rows[1]["Name"] != "John" {
		t.Errorf("row 1 name = %q", table.Rows[1]["Name"])
	}
}

func TestParseSpreadsheetXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]string{"Name", "Email"})
	_ = f.SetSheetRow(sheet, "A2", &[]string{"Jane Doe", "jane@example.com"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	table, err := ParseSpreadsheet("candidates.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ParseSpreadsheet: %v", err)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	if table.Rows[0]["Email"] != "jane@example.com" {
		t.Errorf("email = %q", table.Rows[0]["Email"])
	}
}

func TestParseSpreadsheetUnsupportedFormat(t *testing.T) {
	if _, err := ParseSpreadsheet("resume.pdf", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
