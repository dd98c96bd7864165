package engine

import (
	"fmt"
	"strconv"
	"strings"

	"supplyhealth-service/internal/model"
)

// NoAction is the recommendation when no rule fires
const NoAction = "No action needed."

// rule returns one sentence, or "" when it does not apply
type rule func(h model.InventoryHealth) string

// rules are evaluated in this order and their sentences joined with a space
var rules = []rule{reorderRule, reliabilityRule, coverRule}

// Recommend synthesises the recommendation text for a fully derived row
func Recommend(h model.InventoryHealth) string {
	var sentences []string
	for _, r := range rules {
		if s := r(h); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return NoAction
	}
	return strings.Join(sentences, " ")
}

func reorderRule(h model.InventoryHealth) string {
	if h.CurrentStock >= h.ReorderPoint {
		return ""
	}
	target := h.PrimarySupplier
	if h.BackupReliability > h.PrimaryReliability {
		target = h.BackupSupplier + " (backup)"
	}
	return fmt.Sprintf("Reorder %d units of %s from %s.", h.ReorderQty, h.Material, target)
}

func reliabilityRule(h model.InventoryHealth) string {
	if h.PrimaryReliability >= ThresholdWatch {
		return ""
	}
	if h.BackupReliability > h.PrimaryReliability {
		return fmt.Sprintf("Switch supplier for %s to %s (more reliable).", h.Material, h.BackupSupplier)
	}
	return fmt.Sprintf("Keep primary for %s but increase safety stock temporarily.", h.Material)
}

func coverRule(h model.InventoryHealth) string {
	if h.DaysOfCover >= h.LeadTimeDays {
		return ""
	}
	return fmt.Sprintf("Increase safety stock for %s (days of cover %.1f < lead time %s).",
		h.Material, h.DaysOfCover, formatDays(h.LeadTimeDays))
}

// formatDays prints a day count in its shortest form, keeping one decimal
// for whole numbers ("3.0", "2.5")
func formatDays(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
