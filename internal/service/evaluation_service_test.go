package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"supplyhealth-service/internal/dataset"
	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/table"
	"supplyhealth-service/pkg/logger"
	"supplyhealth-service/prometheus"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newService(t *testing.T) (*EvaluationService, *prometheus.Metrics) {
	t.Helper()
	m := prometheus.NewMetrics("test", prom.NewRegistry())
	store := dataset.NewStore(dataset.NewFileProvider(filepath.Join("..", "..", "data")), nil, m.RecordReload)
	require.NoError(t, store.Reload(context.Background()))

	scenarios, err := engine.LoadScenarios(filepath.Join("..", "..", "data", "scenarios.yaml"))
	require.NoError(t, err)
	return NewEvaluationService(store, m, scenarios), m
}

func TestEvaluateDefault(t *testing.T) {
	svc, m := newService(t)

	res, err := svc.EvaluateDefault(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, res.KPIs.SupplierCount)
	assert.Len(t, res.Inventory, 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues(prometheus.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetReloads.WithLabelValues(prometheus.OutcomeOK)))
	assert.Equal(t, float64(res.KPIs.AtRiskCount), testutil.ToFloat64(m.AtRiskMaterials))
}

func TestEvaluate_RequestTableOverridesDefault(t *testing.T) {
	svc, _ := newService(t)

	inv := table.New(engine.InventoryTable, engine.InventoryColumns...)
	inv.AddRow("Flour", "50", "20", "10", "Supplier A", "Supplier B", "3")

	res, err := svc.Evaluate(context.Background(), Request{Inventory: inv})
	require.NoError(t, err)

	assert.Equal(t, 4, res.KPIs.SupplierCount)
	require.Len(t, res.Inventory, 1)
	assert.Equal(t, "Flour", res.Inventory[0].Material)
}

func TestEvaluate_SchemaError(t *testing.T) {
	svc, m := newService(t)

	res, err := svc.Evaluate(context.Background(), Request{Suppliers: table.New(engine.SuppliersTable, "supplier_name")})
	assert.Nil(t, res)

	var schemaErr *engine.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Missing, engine.SuppliersTable)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues(prometheus.OutcomeSchemaError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchemaErrors.WithLabelValues(engine.SuppliersTable)))
}

func TestEvaluate_LogsWarnings(t *testing.T) {
	svc, m := newService(t)
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	res, err := svc.EvaluateDefault(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)

	warned := logs.FilterMessage("Data quality warning").All()
	assert.Len(t, warned, len(res.Warnings))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.WarningsTotal.WithLabelValues(res.Warnings[0].Kind)), 1.0)
}

func TestScenarioLookup(t *testing.T) {
	svc, _ := newService(t)

	sc, err := svc.Scenario("peak-week")
	require.NoError(t, err)
	assert.Equal(t, "peak-week", sc.Name)

	_, err = svc.Scenario("nope")
	assert.Error(t, err)

	res, err := svc.EvaluateDefault(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, "peak-week", res.Scenario)
}

func TestScenarios_NeverNil(t *testing.T) {
	svc := NewEvaluationService(dataset.NewStore(dataset.NewFileProvider(t.TempDir()), nil, nil), prometheus.NewMetrics("test", prom.NewRegistry()), nil)
	assert.NotNil(t, svc.Scenarios())
}
