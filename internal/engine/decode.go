package engine

import (
	"math"
	"strconv"
	"strings"

	"supplyhealth-service/internal/model"
	"supplyhealth-service/internal/table"
)

// DecodeSuppliers converts roster rows into typed records. Bad cells are
// coerced to zero values and reported as warnings.
func DecodeSuppliers(t *table.Table) ([]model.Supplier, []model.DataQualityWarning) {
	if t == nil {
		return nil, nil
	}
	d := &decoder{table: SuppliersTable}
	out := make([]model.Supplier, 0, t.Len())
	for i, row := range t.Rows {
		d.row = i + 1
		out = append(out, model.Supplier{
			SupplierID:       row[ColSupplierID],
			SupplierName:     row[ColSupplierName],
			TotalDeliveries:  d.integer(row, ColTotalDeliveries),
			OnTimeDeliveries: d.integer(row, ColOnTimeDeliveries),
			AvgLeadTimeDays:  d.number(row, ColAvgLeadTimeDays),
			PriceIndex:       d.number(row, ColPriceIndex),
			Priority:         row[ColPriority],
			IsBackup:         d.boolean(row, ColIsBackup),
		})
	}
	return out, d.warnings
}

// DecodeInventory converts ledger rows into typed records. An empty
// lead_time_days cell decodes to 0, which means "no override".
func DecodeInventory(t *table.Table) ([]model.InventoryItem, []model.DataQualityWarning) {
	if t == nil {
		return nil, nil
	}
	d := &decoder{table: InventoryTable}
	out := make([]model.InventoryItem, 0, t.Len())
	for i, row := range t.Rows {
		d.row = i + 1
		out = append(out, model.InventoryItem{
			Material:        row[ColMaterial],
			CurrentStock:    d.number(row, ColCurrentStock),
			SafetyStock:     d.number(row, ColSafetyStock),
			AvgDailyUsage:   d.number(row, ColAvgDailyUsage),
			PrimarySupplier: row[ColPrimarySupplier],
			BackupSupplier:  row[ColBackupSupplier],
			LeadTimeDays:    d.number(row, ColLeadTimeDays),
		})
	}
	return out, d.warnings
}

type decoder struct {
	table    string
	row      int
	warnings []model.DataQualityWarning
}

func (d *decoder) warn(column, kind, detail string) {
	d.warnings = append(d.warnings, model.DataQualityWarning{
		Table:  d.table,
		Row:    d.row,
		Column: column,
		Kind:   kind,
		Detail: detail,
	})
}

func (d *decoder) number(row map[string]string, column string) float64 {
	cell := strings.TrimSpace(row[column])
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.warn(column, model.WarnUnparseableNumber, "cannot parse "+strconv.Quote(cell)+" as a number, using 0")
		return 0
	}
	return v
}

func (d *decoder) integer(row map[string]string, column string) int {
	return saturateInt(math.Round(d.number(row, column)))
}

func (d *decoder) boolean(row map[string]string, column string) bool {
	cell := strings.ToLower(strings.TrimSpace(row[column]))
	switch cell {
	case "":
		return false
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	v, err := strconv.ParseBool(cell)
	if err != nil {
		d.warn(column, model.WarnUnparseableBool, "cannot parse "+strconv.Quote(cell)+" as a boolean, using false")
		return false
	}
	return v
}
