package service

import (
	"context"
	"errors"

	"supplyhealth-service/internal/dataset"
	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/model"
	"supplyhealth-service/internal/table"
	"supplyhealth-service/pkg/logger"
	"supplyhealth-service/prometheus"

	"go.uber.org/zap"
)

// Request is one evaluation. Nil tables are taken from the default dataset.
type Request struct {
	Suppliers *table.Table
	Inventory *table.Table
	Scenario  *engine.Scenario
}

// EvaluationService runs the engine against request tables and the default
// dataset, and records metrics and warnings for every run
type EvaluationService struct {
	store     *dataset.Store
	metrics   *prometheus.Metrics
	scenarios []engine.Scenario
}

// NewEvaluationService creates a service. scenarios are the named scenarios
// callers may refer to.
func NewEvaluationService(store *dataset.Store, metrics *prometheus.Metrics, scenarios []engine.Scenario) *EvaluationService {
	return &EvaluationService{
		store:     store,
		metrics:   metrics,
		scenarios: scenarios,
	}
}

// Scenarios returns the named scenarios
func (s *EvaluationService) Scenarios() []engine.Scenario {
	if s.scenarios == nil {
		return []engine.Scenario{}
	}
	return s.scenarios
}

// Scenario looks up a named scenario
func (s *EvaluationService) Scenario(name string) (*engine.Scenario, error) {
	return engine.FindScenario(s.scenarios, name)
}

// Evaluate fills omitted tables from the default dataset and runs the engine
func (s *EvaluationService) Evaluate(ctx context.Context, req Request) (*model.Result, error) {
	log := logger.FromGoContext(ctx)

	defaults := s.store.Current()
	if req.Suppliers == nil {
		req.Suppliers = defaults.Suppliers
	}
	if req.Inventory == nil {
		req.Inventory = defaults.Inventory
	}

	done := s.metrics.TrackEvaluation()
	res, err := engine.Evaluate(engine.Input{
		Suppliers: req.Suppliers,
		Inventory: req.Inventory,
		Scenario:  req.Scenario,
	})
	done()

	if err != nil {
		var schemaErr *engine.SchemaError
		if errors.As(err, &schemaErr) {
			s.metrics.RecordSchemaError(schemaErr.Missing)
			log.Warn("Evaluation rejected", zap.Error(err))
		} else {
			s.metrics.RecordError()
			log.Error("Evaluation failed", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.RecordResult(res)
	for _, w := range res.Warnings {
		log.Warn("Data quality warning",
			zap.String("table", w.Table),
			zap.Int("row", w.Row),
			zap.String("column", w.Column),
			zap.String("kind", w.Kind),
			zap.String("detail", w.Detail),
		)
	}
	log.Info("Evaluation completed",
		zap.String("scenario", res.Scenario),
		zap.Int("suppliers", res.KPIs.SupplierCount),
		zap.Int("materials", len(res.Inventory)),
		zap.Int("at_risk", res.KPIs.AtRiskCount),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

// EvaluateDefault evaluates the default dataset
func (s *EvaluationService) EvaluateDefault(ctx context.Context, scenario *engine.Scenario) (*model.Result, error) {
	return s.Evaluate(ctx, Request{Scenario: scenario})
}
