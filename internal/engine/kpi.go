package engine

import (
	"math"

	"supplyhealth-service/internal/model"
)

// ComputeKPIs reduces the augmented tables to the four headline figures.
// Mean reliability is 0 for an empty roster.
func ComputeKPIs(suppliers []model.ScoredSupplier, inventory []model.InventoryHealth) model.KPIs {
	k := model.KPIs{SupplierCount: len(suppliers)}

	if len(suppliers) > 0 {
		sum := 0.0
		for _, s := range suppliers {
			sum += s.ReliabilityPct
		}
		k.MeanReliability = sum / float64(len(suppliers))
	}

	for _, h := range inventory {
		if h.AtRisk() {
			k.AtRiskCount++
		}
		k.TotalReorderQty = addSaturating(k.TotalReorderQty, h.ReorderQty)
	}
	return k
}

// Recommendations lists one recommendation per material, in input order
func Recommendations(inventory []model.InventoryHealth) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(inventory))
	for _, h := range inventory {
		out = append(out, model.Recommendation{Material: h.Material, Text: h.Recommendation})
	}
	return out
}

// addSaturating adds two non-negative quantities, pinning the sum at math.MaxInt
func addSaturating(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
