package dataset

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/model"
	"supplyhealth-service/internal/table"

	"gorm.io/gorm"
)

// DBProvider reads the default tables from the supplier_roster and
// inventory_ledger tables. It never writes.
type DBProvider struct {
	DB *gorm.DB
}

// NewDBProvider creates a provider backed by db
func NewDBProvider(db *gorm.DB) *DBProvider {
	return &DBProvider{DB: db}
}

// Load queries both tables in id order
func (p *DBProvider) Load(ctx context.Context) (*Dataset, error) {
	var roster []model.SupplierRosterRow
	if err := p.DB.WithContext(ctx).Order("id").Find(&roster).Error; err != nil {
		return nil, fmt.Errorf("failed to load supplier roster: %w", err)
	}

	var ledger []model.InventoryLedgerRow
	if err := p.DB.WithContext(ctx).Order("id").Find(&ledger).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory ledger: %w", err)
	}

	return &Dataset{
		Suppliers: rosterTable(roster),
		Inventory: ledgerTable(ledger),
		Source:    "database",
		LoadedAt:  time.Now(),
	}, nil
}

func rosterTable(rows []model.SupplierRosterRow) *table.Table {
	t := table.New(engine.SuppliersTable, engine.SupplierColumns...)
	for _, r := range rows {
		t.AddRow(
			r.SupplierID,
			r.SupplierName,
			strconv.Itoa(r.TotalDeliveries),
			strconv.Itoa(r.OnTimeDeliveries),
			formatFloat(r.AvgLeadTimeDays),
			formatFloat(r.PriceIndex),
			r.Priority,
			strconv.FormatBool(r.IsBackup),
		)
	}
	return t
}

func ledgerTable(rows []model.InventoryLedgerRow) *table.Table {
	t := table.New(engine.InventoryTable, engine.InventoryColumns...)
	for _, r := range rows {
		leadTime := ""
		if r.LeadTimeDays != nil {
			leadTime = formatFloat(*r.LeadTimeDays)
		}
		t.AddRow(
			r.Material,
			formatFloat(r.CurrentStock),
			formatFloat(r.SafetyStock),
			formatFloat(r.AvgDailyUsage),
			r.PrimarySupplier,
			r.BackupSupplier,
			leadTime,
		)
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
