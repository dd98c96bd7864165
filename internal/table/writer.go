package table

import (
	"fmt"
	"io"

	"supplyhealth-service/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	SheetSuppliers       = "Suppliers"
	SheetInventory       = "Inventory"
	SheetRecommendations = "Recommendations"
	SheetKPIs            = "KPIs"
)

var (
	supplierHeader = []any{"supplier_id", "supplier_name", "total_deliveries", "on_time_deliveries",
		"avg_lead_time_days", "price_index", "priority", "is_backup", "reliability_pct", "reliability_band"}
	inventoryHeader = []any{"material", "current_stock", "safety_stock", "avg_daily_usage", "days_of_cover",
		"lead_time_days", "primary_supplier", "primary_reliability", "backup_supplier", "backup_reliability",
		"reorder_point", "reorder_qty", "stock_risk", "supply_risk", "overall_risk", "recommendation"}
)

// WriteXLSX renders an evaluation result as a workbook
func WriteXLSX(w io.Writer, res *model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSuppliers); err != nil {
		return err
	}
	for _, name := range []string{SheetInventory, SheetRecommendations, SheetKPIs} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	sheets := map[string][][]any{
		SheetSuppliers:       supplierRows(res.Suppliers),
		SheetInventory:       inventoryRows(res.Inventory),
		SheetRecommendations: recommendationRows(res.Recommendations),
		SheetKPIs:            kpiRows(res.KPIs),
	}
	for sheet, rows := range sheets {
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
			}
		}
		last, _ := excelize.ColumnNumberToName(len(rows[0]))
		if err := f.SetCellStyle(sheet, "A1", last+"1", boldStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func supplierRows(suppliers []model.ScoredSupplier) [][]any {
	rows := [][]any{supplierHeader}
	for _, s := range suppliers {
		rows = append(rows, []any{s.SupplierID, s.SupplierName, s.TotalDeliveries, s.OnTimeDeliveries,
			s.AvgLeadTimeDays, s.PriceIndex, s.Priority, s.IsBackup, s.ReliabilityPct, s.ReliabilityBand.Label()})
	}
	return rows
}

func inventoryRows(items []model.InventoryHealth) [][]any {
	rows := [][]any{inventoryHeader}
	for _, h := range items {
		rows = append(rows, []any{h.Material, h.CurrentStock, h.SafetyStock, h.AvgDailyUsage, h.DaysOfCover,
			h.LeadTimeDays, h.PrimarySupplier, h.PrimaryReliability, h.BackupSupplier, h.BackupReliability,
			h.ReorderPoint, h.ReorderQty, h.StockRisk, h.SupplyRisk, h.OverallRisk, h.Recommendation})
	}
	return rows
}

func recommendationRows(recs []model.Recommendation) [][]any {
	rows := [][]any{{"material", "recommendation"}}
	for _, r := range recs {
		rows = append(rows, []any{r.Material, r.Text})
	}
	return rows
}

func kpiRows(k model.KPIs) [][]any {
	return [][]any{
		{"kpi", "value"},
		{"Suppliers", k.SupplierCount},
		{"Avg Reliability", k.MeanReliability},
		{"At-Risk Materials", k.AtRiskCount},
		{"Total Suggested Reorder", k.TotalReorderQty},
	}
}
