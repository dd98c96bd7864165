package engine

import (
	"supplyhealth-service/internal/model"
	"supplyhealth-service/internal/table"
)

// Input is everything one evaluation run consumes
type Input struct {
	Suppliers *table.Table
	Inventory *table.Table
	Scenario  *Scenario
}

// Evaluate runs the full pipeline: schema check of both tables, cell
// decoding, optional scenario, supplier scoring, inventory assessment and
// KPI aggregation. A *SchemaError aborts the run before any row is read;
// row-level problems come back as warnings on the Result.
func Evaluate(in Input) (*model.Result, error) {
	if err := CheckSchema(in.Suppliers, in.Inventory); err != nil {
		return nil, err
	}

	warnings := make([]model.DataQualityWarning, 0)

	suppliers, w := DecodeSuppliers(in.Suppliers)
	warnings = append(warnings, w...)
	inventory, w := DecodeInventory(in.Inventory)
	warnings = append(warnings, w...)

	if !in.Scenario.IsZero() {
		suppliers, inventory = in.Scenario.Apply(suppliers, inventory)
	}

	scored, lookup, w := ScoreSuppliers(suppliers)
	warnings = append(warnings, w...)
	health, w := AssessInventory(inventory, lookup)
	warnings = append(warnings, w...)

	res := &model.Result{
		Suppliers:       scored,
		Inventory:       health,
		KPIs:            ComputeKPIs(scored, health),
		Recommendations: Recommendations(health),
		Warnings:        warnings,
	}
	if in.Scenario != nil {
		res.Scenario = in.Scenario.Name
	}
	return res, nil
}
