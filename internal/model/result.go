package model

// Warning kinds reported for recoverable row-level problems
const (
	WarnUnparseableNumber = "unparseable_number"
	WarnUnparseableBool   = "unparseable_bool"
	WarnZeroDeliveries    = "zero_deliveries"
	WarnClampedOnTime     = "clamped_on_time"
	WarnUnknownSupplier   = "unknown_supplier"
	WarnLeadTimeFallback  = "lead_time_fallback"
	WarnZeroUsage         = "zero_usage"
)

// DataQualityWarning describes a bad cell or join that was coerced to a safe
// default instead of failing the run. Row is 1-based over data rows.
type DataQualityWarning struct {
	Table  string `json:"table"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// KPIs are the aggregate figures shown above the result table
type KPIs struct {
	SupplierCount   int     `json:"supplier_count"`
	MeanReliability float64 `json:"mean_reliability"`
	AtRiskCount     int     `json:"at_risk_count"`
	TotalReorderQty int     `json:"total_reorder_qty"`
}

// Recommendation is one line of the recommendation list
type Recommendation struct {
	Material string `json:"material"`
	Text     string `json:"text"`
}

// Result is the complete output of one evaluation run
type Result struct {
	Scenario        string               `json:"scenario,omitempty"`
	Suppliers       []ScoredSupplier     `json:"suppliers"`
	Inventory       []InventoryHealth    `json:"inventory"`
	KPIs            KPIs                 `json:"kpis"`
	Recommendations []Recommendation     `json:"recommendations"`
	Warnings        []DataQualityWarning `json:"warnings"`
}
