package engine

import (
	"math"
	"strconv"

	"supplyhealth-service/internal/model"
)

// Thresholds that map a reliability percentage to a band.
const (
	ThresholdReliable = 90.0
	ThresholdWatch    = 75.0
)

// Lookup holds the supplier attributes joined into inventory rows, keyed by
// supplier name. Later roster rows overwrite earlier ones with the same name.
type Lookup struct {
	Reliability map[string]float64
	LeadTime    map[string]float64
}

// NewLookup returns an empty lookup
func NewLookup() Lookup {
	return Lookup{
		Reliability: make(map[string]float64),
		LeadTime:    make(map[string]float64),
	}
}

// ReliabilityOf returns the supplier's reliability and whether it is known
func (l Lookup) ReliabilityOf(name string) (float64, bool) {
	v, ok := l.Reliability[name]
	return v, ok
}

// LeadTimeOf returns the supplier's average lead time and whether it is known
func (l Lookup) LeadTimeOf(name string) (float64, bool) {
	v, ok := l.LeadTime[name]
	return v, ok
}

// ReliabilityPct returns on-time deliveries as a percentage of total
// deliveries. on-time is clamped into [0, total] so the result stays within
// 0–100, and a zero or negative total yields 0.
func ReliabilityPct(onTime, total int) float64 {
	if total <= 0 {
		return 0
	}
	onTime = min(max(onTime, 0), total)
	return finite(float64(onTime) / float64(total) * 100)
}

// BandFor maps a reliability percentage to its band.
// NaN and negative values fall in Risk.
func BandFor(pct float64) model.Band {
	switch {
	case pct >= ThresholdReliable:
		return model.BandReliable
	case pct >= ThresholdWatch:
		return model.BandWatch
	default:
		return model.BandRisk
	}
}

// ScoreSuppliers computes reliability for every supplier and builds the
// lookup maps. The input slice is not modified.
func ScoreSuppliers(in []model.Supplier) ([]model.ScoredSupplier, Lookup, []model.DataQualityWarning) {
	var warnings []model.DataQualityWarning
	lookup := NewLookup()
	out := make([]model.ScoredSupplier, 0, len(in))

	for i, s := range in {
		row := i + 1
		switch {
		case s.TotalDeliveries <= 0:
			warnings = append(warnings, model.DataQualityWarning{
				Table: SuppliersTable, Row: row, Column: ColTotalDeliveries,
				Kind:   model.WarnZeroDeliveries,
				Detail: "no deliveries recorded for " + strconv.Quote(s.SupplierName) + ", reliability set to 0",
			})
		case s.OnTimeDeliveries > s.TotalDeliveries || s.OnTimeDeliveries < 0:
			warnings = append(warnings, model.DataQualityWarning{
				Table: SuppliersTable, Row: row, Column: ColOnTimeDeliveries,
				Kind: model.WarnClampedOnTime,
				Detail: "on-time deliveries " + strconv.Itoa(s.OnTimeDeliveries) +
					" outside [0, " + strconv.Itoa(s.TotalDeliveries) + "], clamped",
			})
		}

		pct := ReliabilityPct(s.OnTimeDeliveries, s.TotalDeliveries)
		out = append(out, model.ScoredSupplier{
			Supplier:        s,
			ReliabilityPct:  pct,
			ReliabilityBand: BandFor(pct),
		})

		lookup.Reliability[s.SupplierName] = pct
		lookup.LeadTime[s.SupplierName] = s.AvgLeadTimeDays
	}
	return out, lookup, warnings
}

// finite coerces NaN and ±Inf to 0
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// saturateInt converts an integral float to int, pinning values outside the
// int range to math.MaxInt or math.MinInt. NaN converts to 0.
func saturateInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	}
	return int(v)
}
