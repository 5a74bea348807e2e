package reconcile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is one parsed spreadsheet: the header row plus the data rows as
// key→value mappings in original row order
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ParseSpreadsheet parses .xlsx or .csv content into a Table. The first
// row is treated as the header row.
func ParseSpreadsheet(filename string, content []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(content)
	case ".csv":
		return parseCSV(content)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format: %s", filepath.Ext(filename))
	}
}

func parseXLSX(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return tableFromRows(rows), nil
}

func parseCSV(content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // ragged rows are tolerated

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	table := &Table{}
	if len(rows) == 0 {
		return table
	}

	table.Headers = rows[0]

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		mapped := make(map[string]string, len(table.Headers))
		for i, header := range table.Headers {
			if i >= len(row) {
				break
			}
			mapped[header] = row[i]
		}
		table.Rows = append(table.Rows, mapped)
	}

	return table
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
