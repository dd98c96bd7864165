package model

// Risk flag values
const (
	StockRiskLow  = "Low Stock"
	SupplyRiskBad = "Unreliable Supplier"
	RiskOK        = "OK"
	OverallRisk   = "Risk"
)

// LeadTimeSource records which rule produced the effective lead time
type LeadTimeSource string

const (
	LeadTimeExplicit LeadTimeSource = "explicit"
	LeadTimeSupplier LeadTimeSource = "supplier"
	LeadTimeDefault  LeadTimeSource = "default"
)

// InventoryItem represents one row of the inventory ledger.
// LeadTimeDays <= 0 means the ledger carries no override.
type InventoryItem struct {
	Material        string  `json:"material"`
	CurrentStock    float64 `json:"current_stock"`
	SafetyStock     float64 `json:"safety_stock"`
	AvgDailyUsage   float64 `json:"avg_daily_usage"`
	PrimarySupplier string  `json:"primary_supplier"`
	BackupSupplier  string  `json:"backup_supplier"`
	LeadTimeDays    float64 `json:"lead_time_days"`
}

// InventoryHealth is an inventory row with every derived field filled in.
// LeadTimeDays on the embedded item holds the effective lead time.
type InventoryHealth struct {
	InventoryItem
	PrimaryReliability float64        `json:"primary_reliability"`
	BackupReliability  float64        `json:"backup_reliability"`
	LeadTimeSource     LeadTimeSource `json:"lead_time_source"`
	DaysOfCover        float64        `json:"days_of_cover"`
	ReorderPoint       float64        `json:"reorder_point"`
	ReorderQty         int            `json:"reorder_qty"`
	StockRisk          string         `json:"stock_risk"`
	SupplyRisk         string         `json:"supply_risk"`
	OverallRisk        string         `json:"overall_risk"`
	Recommendation     string         `json:"recommendation"`
}

// AtRisk reports whether the row carries any risk flag
func (h InventoryHealth) AtRisk() bool {
	return h.OverallRisk != RiskOK
}
