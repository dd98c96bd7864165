package engine

import (
	"math"
	"testing"

	"supplyhealth-service/internal/model"
	"supplyhealth-service/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSuppliers(t *testing.T) {
	tbl := table.New(SuppliersTable, SupplierColumns...)
	tbl.AddRow("S1", "Supplier A", "40", "38", "3", "1.02", "high", "No")
	tbl.AddRow("S2", "Supplier B", "twenty", "18", "", "0.9", "low", "maybe")
	tbl.AddRow("S3", "Supplier C", "12.0", "NaN", "4.5", "1", "", "TRUE")

	suppliers, warnings := DecodeSuppliers(tbl)

	require.Len(t, suppliers, 3)
	assert.Equal(t, model.Supplier{
		SupplierID: "S1", SupplierName: "Supplier A", TotalDeliveries: 40, OnTimeDeliveries: 38,
		AvgLeadTimeDays: 3, PriceIndex: 1.02, Priority: "high", IsBackup: false,
	}, suppliers[0])
	assert.Equal(t, 0, suppliers[1].TotalDeliveries)
	assert.Equal(t, 0.0, suppliers[1].AvgLeadTimeDays, "empty numeric cells are missing, not errors")
	assert.False(t, suppliers[1].IsBackup)
	assert.Equal(t, 12, suppliers[2].TotalDeliveries)
	assert.Equal(t, 0, suppliers[2].OnTimeDeliveries)
	assert.True(t, suppliers[2].IsBackup)

	require.Len(t, warnings, 3)
	assert.Equal(t, model.DataQualityWarning{
		Table: SuppliersTable, Row: 2, Column: ColTotalDeliveries, Kind: model.WarnUnparseableNumber,
		Detail: `cannot parse "twenty" as a number, using 0`,
	}, warnings[0])
	assert.Equal(t, model.WarnUnparseableBool, warnings[1].Kind)
	assert.Equal(t, 3, warnings[2].Row)
	assert.Equal(t, ColOnTimeDeliveries, warnings[2].Column)
}

func TestDecodeInventory(t *testing.T) {
	tbl := table.New(InventoryTable, InventoryColumns...)
	tbl.AddRow("Flour", "50", "20", "10", "Supplier A", "Supplier B", "3")
	tbl.AddRow("Sugar", "abc", "5", "2", "Supplier C", "", "")

	items, warnings := DecodeInventory(tbl)

	require.Len(t, items, 2)
	assert.Equal(t, model.InventoryItem{
		Material: "Flour", CurrentStock: 50, SafetyStock: 20, AvgDailyUsage: 10,
		PrimarySupplier: "Supplier A", BackupSupplier: "Supplier B", LeadTimeDays: 3,
	}, items[0])
	assert.Equal(t, 0.0, items[1].CurrentStock)
	assert.Equal(t, 0.0, items[1].LeadTimeDays)

	require.Len(t, warnings, 1)
	assert.Equal(t, ColCurrentStock, warnings[0].Column)

	none, w := DecodeInventory(nil)
	assert.Nil(t, none)
	assert.Nil(t, w)
}

func TestDecodeSuppliers_HugeCountsSaturate(t *testing.T) {
	tbl := table.New(SuppliersTable, SupplierColumns...)
	tbl.AddRow("S1", "Supplier A", "1e19", "1e19", "3", "1", "high", "No")

	suppliers, warnings := DecodeSuppliers(tbl)

	require.Len(t, suppliers, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, math.MaxInt, suppliers[0].TotalDeliveries)

	scored, _, _ := ScoreSuppliers(suppliers)
	assert.Equal(t, 100.0, scored[0].ReliabilityPct)
}
