package engine

import (
	"math"

	"supplyhealth-service/internal/model"
)

// DefaultLeadTimeDays is used when neither the ledger nor the roster gives a
// lead time for a material.
const DefaultLeadTimeDays = 5.0

// LeadTimeResolver yields a lead time for an inventory row, or ok=false to
// defer to the next resolver in the chain.
type LeadTimeResolver struct {
	Source  model.LeadTimeSource
	Resolve func(item model.InventoryItem, lk Lookup) (days float64, ok bool)
}

// LeadTimeChain is an ordered list of resolvers; the first one that yields
// a value wins.
type LeadTimeChain []LeadTimeResolver

// DefaultLeadTimeChain prefers the ledger's own value, then the primary
// supplier's average lead time, then DefaultLeadTimeDays.
var DefaultLeadTimeChain = LeadTimeChain{
	ExplicitLeadTime(),
	SupplierLeadTime(),
	FixedLeadTime(DefaultLeadTimeDays),
}

// Resolve walks the chain. An exhausted chain falls back to
// DefaultLeadTimeDays.
func (c LeadTimeChain) Resolve(item model.InventoryItem, lk Lookup) (float64, model.LeadTimeSource) {
	for _, r := range c {
		if days, ok := r.Resolve(item, lk); ok {
			return days, r.Source
		}
	}
	return DefaultLeadTimeDays, model.LeadTimeDefault
}

// ExplicitLeadTime accepts the ledger's lead_time_days when it is positive
func ExplicitLeadTime() LeadTimeResolver {
	return LeadTimeResolver{
		Source: model.LeadTimeExplicit,
		Resolve: func(item model.InventoryItem, _ Lookup) (float64, bool) {
			v := item.LeadTimeDays
			return v, !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
		},
	}
}

// SupplierLeadTime uses the primary supplier's average lead time when the
// supplier is on the roster
func SupplierLeadTime() LeadTimeResolver {
	return LeadTimeResolver{
		Source: model.LeadTimeSupplier,
		Resolve: func(item model.InventoryItem, lk Lookup) (float64, bool) {
			v, ok := lk.LeadTimeOf(item.PrimarySupplier)
			return v, ok && !math.IsNaN(v) && !math.IsInf(v, 0)
		},
	}
}

// FixedLeadTime always yields days
func FixedLeadTime(days float64) LeadTimeResolver {
	return LeadTimeResolver{
		Source: model.LeadTimeDefault,
		Resolve: func(model.InventoryItem, Lookup) (float64, bool) {
			return days, true
		},
	}
}
