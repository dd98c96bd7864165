package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	ds  *Dataset
	err error
}

func (p *stubProvider) Load(context.Context) (*Dataset, error) {
	return p.ds, p.err
}

func TestStore_StartsEmpty(t *testing.T) {
	s := NewStore(&stubProvider{}, nil, nil)

	assert.Equal(t, "empty", s.Current().Source)
	assert.Equal(t, 0, s.Current().Suppliers.Len())
}

func TestStore_ReloadKeepsPreviousOnFailure(t *testing.T) {
	p := &stubProvider{ds: &Dataset{
		Suppliers: table.New(engine.SuppliersTable, engine.SupplierColumns...),
		Inventory: table.New(engine.InventoryTable, engine.InventoryColumns...),
		Source:    "first",
	}}
	var outcomes []error
	s := NewStore(p, nil, func(err error) { outcomes = append(outcomes, err) })

	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, "first", s.Current().Source)

	p.err = errors.New("disk gone")
	assert.Error(t, s.Reload(context.Background()))
	assert.Equal(t, "first", s.Current().Source)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0])
	assert.Error(t, outcomes[1])
}

func TestStore_ReloadRejectsIncompleteTables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "suppliers.csv", suppliersCSV)
	writeFile(t, dir, "inventory.csv", inventoryCSV)

	var outcomes []error
	s := NewStore(NewFileProvider(dir), nil, func(err error) { outcomes = append(outcomes, err) })
	require.NoError(t, s.Reload(context.Background()))

	for _, content := range []string{"", "supplier_id,supplier_name\n"} {
		writeFile(t, dir, "suppliers.csv", content)

		err := s.Reload(context.Background())
		var schemaErr *engine.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Missing, engine.SuppliersTable)
		assert.Equal(t, 2, s.Current().Suppliers.Len())
	}

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0])
	assert.Error(t, outcomes[1])
	assert.Error(t, outcomes[2])
}

func TestStore_WatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "suppliers.csv", suppliersCSV)
	writeFile(t, dir, "inventory.csv", inventoryCSV)

	s := NewStore(NewFileProvider(dir), nil, nil)
	require.NoError(t, s.Reload(context.Background()))
	require.Equal(t, 2, s.Current().Suppliers.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, dir) }()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	writeFile(t, dir, "suppliers.csv", suppliersCSV+"S003,Supplier C,25,17,6,1.1,Low,No\n")

	assert.Eventually(t, func() bool {
		return s.Current().Suppliers.Len() == 3
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestStore_WatchMissingDir(t *testing.T) {
	s := NewStore(&stubProvider{}, nil, nil)
	assert.Error(t, s.Watch(context.Background(), "/does/not/exist"))
}
