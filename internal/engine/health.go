package engine

import (
	"math"
	"strconv"

	"supplyhealth-service/internal/model"
)

// Assessor derives inventory health using a lead-time chain
type Assessor struct {
	LeadTimes LeadTimeChain
}

// NewAssessor returns an assessor using DefaultLeadTimeChain
func NewAssessor() *Assessor {
	return &Assessor{LeadTimes: DefaultLeadTimeChain}
}

// AssessInventory derives health for every inventory row with the default
// lead-time chain. The input slice is not modified.
func AssessInventory(in []model.InventoryItem, lk Lookup) ([]model.InventoryHealth, []model.DataQualityWarning) {
	return NewAssessor().AssessAll(in, lk)
}

// AssessItem derives health for a single row with the default lead-time chain
func AssessItem(item model.InventoryItem, lk Lookup) (model.InventoryHealth, []model.DataQualityWarning) {
	return NewAssessor().Assess(item, lk)
}

// AssessAll derives health for every row. Warnings carry 1-based row numbers.
func (a *Assessor) AssessAll(in []model.InventoryItem, lk Lookup) ([]model.InventoryHealth, []model.DataQualityWarning) {
	var warnings []model.DataQualityWarning
	out := make([]model.InventoryHealth, 0, len(in))
	for i, item := range in {
		h, w := a.Assess(item, lk)
		for _, dq := range w {
			dq.Row = i + 1
			warnings = append(warnings, dq)
		}
		out = append(out, h)
	}
	return out, warnings
}

// Assess derives every health field for one row, in dependency order.
// Warnings are returned with Row 0; AssessAll fills in the row number.
func (a *Assessor) Assess(item model.InventoryItem, lk Lookup) (model.InventoryHealth, []model.DataQualityWarning) {
	var warnings []model.DataQualityWarning
	warn := func(column, kind, detail string) {
		warnings = append(warnings, model.DataQualityWarning{
			Table: InventoryTable, Column: column, Kind: kind, Detail: detail,
		})
	}

	item.CurrentStock = finite(item.CurrentStock)
	item.SafetyStock = finite(item.SafetyStock)
	item.AvgDailyUsage = finite(item.AvgDailyUsage)

	// 1. Supplier reliability, 0 for names missing from the roster
	primary, ok := lk.ReliabilityOf(item.PrimarySupplier)
	if !ok {
		warn(ColPrimarySupplier, model.WarnUnknownSupplier,
			"primary supplier "+strconv.Quote(item.PrimarySupplier)+" not on roster, reliability set to 0")
	}
	backup, ok := lk.ReliabilityOf(item.BackupSupplier)
	if !ok && item.BackupSupplier != "" {
		warn(ColBackupSupplier, model.WarnUnknownSupplier,
			"backup supplier "+strconv.Quote(item.BackupSupplier)+" not on roster, reliability set to 0")
	}

	// 2. Effective lead time
	chain := a.LeadTimes
	if chain == nil {
		chain = DefaultLeadTimeChain
	}
	lead, source := chain.Resolve(item, lk)
	lead = finite(lead)
	if source == model.LeadTimeDefault {
		warn(ColLeadTimeDays, model.WarnLeadTimeFallback,
			"no lead time for "+strconv.Quote(item.Material)+", using "+formatDays(lead)+" days")
	}
	item.LeadTimeDays = lead

	// 3. Cover and reorder math
	cover := 0.0
	if item.AvgDailyUsage == 0 {
		warn(ColAvgDailyUsage, model.WarnZeroUsage,
			"zero daily usage for "+strconv.Quote(item.Material)+", days of cover set to 0")
	} else {
		cover = finite(item.CurrentStock / item.AvgDailyUsage)
	}
	reorderPoint := finite(item.SafetyStock + lead*item.AvgDailyUsage)
	reorderQty := saturateInt(math.RoundToEven(math.Max(0, reorderPoint-item.CurrentStock)))

	h := model.InventoryHealth{
		InventoryItem:      item,
		PrimaryReliability: finite(primary),
		BackupReliability:  finite(backup),
		LeadTimeSource:     source,
		DaysOfCover:        cover,
		ReorderPoint:       reorderPoint,
		ReorderQty:         reorderQty,
	}

	// 4. Risk flags
	h.StockRisk = model.RiskOK
	if item.CurrentStock < item.SafetyStock {
		h.StockRisk = model.StockRiskLow
	}
	h.SupplyRisk = model.RiskOK
	if h.PrimaryReliability < ThresholdWatch {
		h.SupplyRisk = model.SupplyRiskBad
	}
	h.OverallRisk = model.RiskOK
	if h.StockRisk != model.RiskOK || h.SupplyRisk != model.RiskOK {
		h.OverallRisk = model.OverallRisk
	}

	// 5. Recommendation text
	h.Recommendation = Recommend(h)
	return h, warnings
}
