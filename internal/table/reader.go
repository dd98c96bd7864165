package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Read parses r according to the extension of filename
func Read(name, filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(name, r)
	case ".xlsx":
		return ReadXLSX(name, r)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
}

// ReadCSV parses a CSV stream whose first record is the header
func ReadCSV(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", name, err)
	}
	return fromRecords(name, records), nil
}

// ReadXLSX parses the first sheet of a workbook whose first row is the header
func ReadXLSX(name string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", name, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx %s: %w", name, err)
	}
	return fromRecords(name, rows), nil
}

func fromRecords(name string, records [][]string) *Table {
	t := New(name)
	if len(records) == 0 {
		return t
	}

	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if i == 0 {
			// Spreadsheet exports often prefix a UTF-8 BOM
			h = strings.TrimPrefix(h, "\ufeff")
		}
		t.Columns = append(t.Columns, h)
	}

	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		t.AddRow(rec...)
	}
	return t
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
