package engine

import (
	"math"
	"testing"

	"supplyhealth-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLookup returns a roster with one reliable, one watch and one risky supplier
func testLookup() Lookup {
	lk := NewLookup()
	lk.Reliability["Supplier A"] = 95
	lk.LeadTime["Supplier A"] = 3
	lk.Reliability["Supplier B"] = 80
	lk.LeadTime["Supplier B"] = 4
	lk.Reliability["Supplier C"] = 60
	lk.LeadTime["Supplier C"] = 6
	return lk
}

func flour() model.InventoryItem {
	return model.InventoryItem{
		Material:        "Flour",
		CurrentStock:    50,
		SafetyStock:     20,
		AvgDailyUsage:   10,
		PrimarySupplier: "Supplier A",
		BackupSupplier:  "Supplier B",
		LeadTimeDays:    3,
	}
}

func TestAssessItem_FlourAtReorderPoint(t *testing.T) {
	h, warnings := AssessItem(flour(), testLookup())

	assert.Empty(t, warnings)
	assert.Equal(t, 50.0, h.ReorderPoint)
	assert.Equal(t, 0, h.ReorderQty)
	assert.Equal(t, 5.0, h.DaysOfCover)
	assert.Equal(t, 3.0, h.LeadTimeDays)
	assert.Equal(t, model.LeadTimeExplicit, h.LeadTimeSource)
	assert.Equal(t, 95.0, h.PrimaryReliability)
	assert.Equal(t, 80.0, h.BackupReliability)
	assert.Equal(t, model.RiskOK, h.StockRisk)
	assert.Equal(t, model.RiskOK, h.SupplyRisk)
	assert.Equal(t, model.RiskOK, h.OverallRisk)
	assert.Equal(t, NoAction, h.Recommendation)
}

func TestAssessItem_FlourDemandSpike(t *testing.T) {
	item := flour()
	item.AvgDailyUsage = 13

	h, _ := AssessItem(item, testLookup())

	assert.InDelta(t, 59.0, h.ReorderPoint, 1e-9)
	assert.Equal(t, 9, h.ReorderQty)
	assert.InDelta(t, 3.846, h.DaysOfCover, 1e-3)
	assert.Equal(t, "Reorder 9 units of Flour from Supplier A.", h.Recommendation)
}

func TestAssessItem_UnknownPrimarySupplier(t *testing.T) {
	item := model.InventoryItem{
		Material:        "Cocoa",
		CurrentStock:    100,
		SafetyStock:     10,
		AvgDailyUsage:   5,
		PrimarySupplier: "Ghost Traders",
	}

	h, warnings := AssessItem(item, testLookup())

	assert.Equal(t, 0.0, h.PrimaryReliability)
	assert.Equal(t, 0.0, h.BackupReliability)
	assert.Equal(t, DefaultLeadTimeDays, h.LeadTimeDays)
	assert.Equal(t, model.LeadTimeDefault, h.LeadTimeSource)
	assert.Equal(t, model.SupplyRiskBad, h.SupplyRisk)
	assert.Equal(t, model.OverallRisk, h.OverallRisk)
	assert.Equal(t, "Keep primary for Cocoa but increase safety stock temporarily.", h.Recommendation)

	kinds := make([]string, 0, len(warnings))
	for _, w := range warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Equal(t, []string{model.WarnUnknownSupplier, model.WarnLeadTimeFallback}, kinds,
		"an empty backup name is not reported")
}

func TestAssessItem_LowStock(t *testing.T) {
	item := flour()
	item.CurrentStock = 15

	h, _ := AssessItem(item, testLookup())

	assert.Equal(t, model.StockRiskLow, h.StockRisk)
	assert.Equal(t, model.RiskOK, h.SupplyRisk)
	assert.Equal(t, model.OverallRisk, h.OverallRisk)
	assert.Equal(t, 35, h.ReorderQty)
}

func TestAssessItem_SupplierLeadTimeFallback(t *testing.T) {
	item := flour()
	item.LeadTimeDays = 0
	item.PrimarySupplier = "Supplier C"

	h, _ := AssessItem(item, testLookup())

	assert.Equal(t, 6.0, h.LeadTimeDays)
	assert.Equal(t, model.LeadTimeSupplier, h.LeadTimeSource)
	assert.Equal(t, 80.0, h.ReorderPoint)
}

func TestAssessItem_ZeroUsage(t *testing.T) {
	item := flour()
	item.AvgDailyUsage = 0

	h, warnings := AssessItem(item, testLookup())

	assert.Equal(t, 0.0, h.DaysOfCover)
	assert.Equal(t, 20.0, h.ReorderPoint)
	assert.Equal(t, 0, h.ReorderQty)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnZeroUsage, warnings[0].Kind)
	assert.Equal(t, "Increase safety stock for Flour (days of cover 0.0 < lead time 3.0).", h.Recommendation)
}

func TestAssessItem_NonFiniteInputsAreCoerced(t *testing.T) {
	item := flour()
	item.CurrentStock = math.NaN()
	item.SafetyStock = math.Inf(1)

	h, _ := AssessItem(item, testLookup())

	assert.Equal(t, 0.0, h.CurrentStock)
	assert.Equal(t, 0.0, h.SafetyStock)
	assert.Equal(t, 0.0, h.DaysOfCover)
	assert.Equal(t, 30.0, h.ReorderPoint)
	assert.Equal(t, 30, h.ReorderQty)
}

func TestAssessItem_RoundsHalfToEven(t *testing.T) {
	item := flour()
	item.CurrentStock = 49.5

	h, _ := AssessItem(item, testLookup())
	assert.Equal(t, 0, h.ReorderQty, "0.5 rounds to the even neighbour")

	item.CurrentStock = 48.5
	h, _ = AssessItem(item, testLookup())
	assert.Equal(t, 2, h.ReorderQty)
}

func TestAssessInventory_RowsAreIndependent(t *testing.T) {
	a := flour()
	b := flour()
	b.Material = "Sugar"
	b.PrimarySupplier = "Ghost"

	alone, _ := AssessItem(a, testLookup())
	all, warnings := AssessInventory([]model.InventoryItem{b, a}, testLookup())

	require.Len(t, all, 2)
	assert.Equal(t, alone, all[1])
	for _, w := range warnings {
		assert.Equal(t, 1, w.Row, "only the first row produces warnings")
	}
}

func TestAssessItem_HugeReorderSaturates(t *testing.T) {
	item := model.InventoryItem{
		Material:        "X",
		SafetyStock:     1e19,
		AvgDailyUsage:   1,
		PrimarySupplier: "Supplier A",
		LeadTimeDays:    1,
	}

	h, _ := AssessItem(item, testLookup())
	assert.Equal(t, math.MaxInt, h.ReorderQty)
	assert.Contains(t, h.Recommendation, "Reorder 9223372036854775807 units of X from Supplier A.")

	k := ComputeKPIs(nil, []model.InventoryHealth{h, h})
	assert.Equal(t, math.MaxInt, k.TotalReorderQty, "the total saturates instead of wrapping")
}
