// Package dataset supplies the default supplier roster and inventory ledger
// used when a request omits one or both tables.
package dataset

import (
	"context"
	"time"

	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/table"
)

// Dataset is one snapshot of the default tables
type Dataset struct {
	Suppliers *table.Table
	Inventory *table.Table
	Source    string
	LoadedAt  time.Time
}

// Provider loads the default tables from some backing store
type Provider interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Empty returns tables carrying the required columns and no rows.
// Evaluating it yields an empty result rather than a schema error.
func Empty() *Dataset {
	return &Dataset{
		Suppliers: table.New(engine.SuppliersTable, engine.SupplierColumns...),
		Inventory: table.New(engine.InventoryTable, engine.InventoryColumns...),
		Source:    "empty",
	}
}
