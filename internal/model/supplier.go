package model

// Band is the coarse reliability classification of a supplier
type Band string

const (
	BandRisk     Band = "Risk"
	BandWatch    Band = "Watch"
	BandReliable Band = "Reliable"
)

// Label returns the display label used in reports
func (b Band) Label() string {
	switch b {
	case BandRisk:
		return "Risk (<75%)"
	case BandWatch:
		return "Watch (75-89%)"
	case BandReliable:
		return "Reliable (90%+)"
	default:
		return string(b)
	}
}

// Supplier represents one row of the supplier roster
type Supplier struct {
	SupplierID       string  `json:"supplier_id"`
	SupplierName     string  `json:"supplier_name"`
	TotalDeliveries  int     `json:"total_deliveries"`
	OnTimeDeliveries int     `json:"on_time_deliveries"`
	AvgLeadTimeDays  float64 `json:"avg_lead_time_days"`
	PriceIndex       float64 `json:"price_index"`
	Priority         string  `json:"priority"`
	IsBackup         bool    `json:"is_backup"`
}

// ScoredSupplier is a supplier augmented with its reliability score
type ScoredSupplier struct {
	Supplier
	ReliabilityPct  float64 `json:"reliability_pct"`
	ReliabilityBand Band    `json:"reliability_band"`
}
