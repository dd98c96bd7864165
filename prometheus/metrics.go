package prometheus

import (
	"time"

	"supplyhealth-service/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation outcomes
const (
	OutcomeOK          = "ok"
	OutcomeSchemaError = "schema_error"
	OutcomeError       = "error"
)

// Metrics holds the evaluation and authentication collectors
type Metrics struct {
	// Evaluation metrics
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	SchemaErrors       *prometheus.CounterVec
	WarningsTotal      *prometheus.CounterVec

	// Latest evaluation results
	AtRiskMaterials prometheus.Gauge
	TotalReorderQty prometheus.Gauge
	MeanReliability prometheus.Gauge
	SuppliersScored prometheus.Gauge

	// Default dataset metrics
	DatasetReloads *prometheus.CounterVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter
	TokensIssuedCounter prometheus.Counter
}

// NewMetrics registers the collectors on reg with the configured name prefix.
// A nil reg registers on the default registry.
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		EvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_evaluations_total",
				Help: "Total number of evaluations by outcome",
			},
			[]string{"outcome"},
		),
		EvaluationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_evaluation_duration_seconds",
				Help:    "Duration of evaluations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		SchemaErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_schema_errors_total",
				Help: "Total number of rejected inputs by table",
			},
			[]string{"table"},
		),
		WarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_data_quality_warnings_total",
				Help: "Total number of data quality warnings by kind",
			},
			[]string{"kind"},
		),
		AtRiskMaterials: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_at_risk_materials",
				Help: "Materials at risk in the latest evaluation",
			},
		),
		TotalReorderQty: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_total_reorder_qty",
				Help: "Total suggested reorder quantity in the latest evaluation",
			},
		),
		MeanReliability: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_mean_supplier_reliability_pct",
				Help: "Mean supplier reliability in the latest evaluation",
			},
		),
		SuppliersScored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_suppliers_scored",
				Help: "Suppliers scored in the latest evaluation",
			},
		),
		DatasetReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_dataset_reloads_total",
				Help: "Total number of default dataset reloads by outcome",
			},
			[]string{"outcome"},
		),
		AuthAttemptsCounter: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
		),
		AuthSuccessCounter: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_success_total",
				Help: "Total number of successful authentications",
			},
		),
		AuthErrorsCounter: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of authentication errors",
			},
		),
		TokensIssuedCounter: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_tokens_issued_total",
				Help: "Total number of access tokens issued to API clients",
			},
		),
	}
}

// TrackEvaluation returns a function that records the duration of an evaluation
func (m *Metrics) TrackEvaluation() func() {
	start := time.Now()
	return func() {
		m.EvaluationDuration.Observe(time.Since(start).Seconds())
	}
}

// RecordResult counts a successful evaluation and updates the result gauges
func (m *Metrics) RecordResult(res *model.Result) {
	m.EvaluationsTotal.WithLabelValues(OutcomeOK).Inc()
	for _, w := range res.Warnings {
		m.WarningsTotal.WithLabelValues(w.Kind).Inc()
	}
	m.AtRiskMaterials.Set(float64(res.KPIs.AtRiskCount))
	m.TotalReorderQty.Set(float64(res.KPIs.TotalReorderQty))
	m.MeanReliability.Set(res.KPIs.MeanReliability)
	m.SuppliersScored.Set(float64(res.KPIs.SupplierCount))
}

// RecordSchemaError counts a rejected evaluation once per offending table
func (m *Metrics) RecordSchemaError(missing map[string][]string) {
	m.EvaluationsTotal.WithLabelValues(OutcomeSchemaError).Inc()
	for tbl := range missing {
		m.SchemaErrors.WithLabelValues(tbl).Inc()
	}
}

// RecordError counts an evaluation that failed for any other reason
func (m *Metrics) RecordError() {
	m.EvaluationsTotal.WithLabelValues(OutcomeError).Inc()
}

// RecordReload counts a default dataset reload
func (m *Metrics) RecordReload(err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.DatasetReloads.WithLabelValues(outcome).Inc()
}
