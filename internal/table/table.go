// Package table holds the untyped tabular input consumed by the engine and
// the readers/writers that move tables in and out of CSV and XLSX.
package table

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Table is a header plus rows keyed by column name.
// Cells are kept as trimmed strings; typing happens in the engine.
type Table struct {
	Name    string              `json:"name"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// New creates an empty table with the given columns
func New(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns, Rows: []map[string]string{}}
}

// Has reports whether the table carries the column
func (t *Table) Has(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Missing returns the required columns the table lacks, in required order
func (t *Table) Missing(required []string) []string {
	var missing []string
	for _, col := range required {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// AddRow appends a row built from values in column order.
// Missing trailing values are stored as empty cells.
func (t *Table) AddRow(values ...string) {
	row := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			row[col] = strings.TrimSpace(values[i])
		} else {
			row[col] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// FromObjects builds a table from decoded JSON objects. Columns are the union
// of object keys: keys of the first object sorted, then newly seen keys of
// later objects sorted, so the result does not depend on map order.
func FromObjects(name string, objects []map[string]any) *Table {
	t := New(name)
	seen := make(map[string]bool)
	for _, obj := range objects {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			t.Columns = append(t.Columns, k)
		}
	}

	for _, obj := range objects {
		row := make(map[string]string, len(t.Columns))
		for _, col := range t.Columns {
			row[col] = cellString(obj[col])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
