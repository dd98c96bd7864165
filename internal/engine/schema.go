package engine

import (
	"fmt"
	"sort"
	"strings"

	"supplyhealth-service/internal/table"
)

// Table names used in schema errors and warnings
const (
	SuppliersTable = "suppliers"
	InventoryTable = "inventory"
)

// Supplier roster columns
const (
	ColSupplierID       = "supplier_id"
	ColSupplierName     = "supplier_name"
	ColTotalDeliveries  = "total_deliveries"
	ColOnTimeDeliveries = "on_time_deliveries"
	ColAvgLeadTimeDays  = "avg_lead_time_days"
	ColPriceIndex       = "price_index"
	ColPriority         = "priority"
	ColIsBackup         = "is_backup"
)

// Inventory ledger columns
const (
	ColMaterial        = "material"
	ColCurrentStock    = "current_stock"
	ColSafetyStock     = "safety_stock"
	ColAvgDailyUsage   = "avg_daily_usage"
	ColPrimarySupplier = "primary_supplier"
	ColBackupSupplier  = "backup_supplier"
	ColLeadTimeDays    = "lead_time_days"
)

// SupplierColumns lists the columns a supplier roster must carry
var SupplierColumns = []string{
	ColSupplierID, ColSupplierName, ColTotalDeliveries, ColOnTimeDeliveries,
	ColAvgLeadTimeDays, ColPriceIndex, ColPriority, ColIsBackup,
}

// InventoryColumns lists the columns an inventory ledger must carry
var InventoryColumns = []string{
	ColMaterial, ColCurrentStock, ColSafetyStock, ColAvgDailyUsage,
	ColPrimarySupplier, ColBackupSupplier, ColLeadTimeDays,
}

// SchemaError reports required columns missing from one or both input
// tables. It is fatal to the run: no rows are processed.
type SchemaError struct {
	Missing map[string][]string `json:"missing"`
}

func (e *SchemaError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for name := range e.Missing {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Missing[name], ", ")))
	}
	return "missing required columns (" + strings.Join(parts, "; ") + ")"
}

// CheckSchema verifies both tables carry their required columns. A nil table
// is treated as one with no columns.
func CheckSchema(suppliers, inventory *table.Table) error {
	missing := make(map[string][]string)
	if cols := missingColumns(suppliers, SupplierColumns); len(cols) > 0 {
		missing[SuppliersTable] = cols
	}
	if cols := missingColumns(inventory, InventoryColumns); len(cols) > 0 {
		missing[InventoryTable] = cols
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func missingColumns(t *table.Table, required []string) []string {
	if t == nil {
		return append([]string(nil), required...)
	}
	return t.Missing(required)
}
