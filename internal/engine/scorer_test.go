package engine

import (
	"math"
	"testing"

	"supplyhealth-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReliabilityPct(t *testing.T) {
	tests := []struct {
		name          string
		onTime, total int
		want          float64
	}{
		{"all on time", 40, 40, 100},
		{"supplier B baseline", 18, 20, 90},
		{"supplier B delayed by two", 16, 20, 80},
		{"zero deliveries", 0, 0, 0},
		{"negative total", 3, -1, 0},
		{"on time above total is capped", 25, 20, 100},
		{"negative on time is floored", -4, 20, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ReliabilityPct(tc.onTime, tc.total), 1e-9)
		})
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want model.Band
	}{
		{-5, model.BandRisk},
		{0, model.BandRisk},
		{74.99, model.BandRisk},
		{75, model.BandWatch},
		{80, model.BandWatch},
		{89.99, model.BandWatch},
		{90, model.BandReliable},
		{100, model.BandReliable},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, BandFor(tc.pct), "pct=%v", tc.pct)
	}
}

func TestBandLabel(t *testing.T) {
	assert.Equal(t, "Risk (<75%)", model.BandRisk.Label())
	assert.Equal(t, "Watch (75-89%)", model.BandWatch.Label())
	assert.Equal(t, "Reliable (90%+)", model.BandReliable.Label())
}

func TestScoreSuppliers(t *testing.T) {
	in := []model.Supplier{
		{SupplierID: "S1", SupplierName: "Supplier A", TotalDeliveries: 40, OnTimeDeliveries: 38, AvgLeadTimeDays: 3},
		{SupplierID: "S2", SupplierName: "Supplier B", TotalDeliveries: 20, OnTimeDeliveries: 18, AvgLeadTimeDays: 4, IsBackup: true},
		{SupplierID: "S3", SupplierName: "Supplier C", TotalDeliveries: 0, OnTimeDeliveries: 0, AvgLeadTimeDays: 6},
	}
	before := append([]model.Supplier(nil), in...)

	scored, lookup, warnings := ScoreSuppliers(in)

	require.Len(t, scored, 3)
	assert.Equal(t, in, before, "input must not be modified")

	assert.InDelta(t, 95.0, scored[0].ReliabilityPct, 1e-9)
	assert.Equal(t, model.BandReliable, scored[0].ReliabilityBand)
	assert.InDelta(t, 90.0, scored[1].ReliabilityPct, 1e-9)
	assert.Equal(t, model.BandReliable, scored[1].ReliabilityBand)
	assert.True(t, scored[1].IsBackup, "pass-through fields are kept")
	assert.Equal(t, 0.0, scored[2].ReliabilityPct)
	assert.Equal(t, model.BandRisk, scored[2].ReliabilityBand)

	rel, ok := lookup.ReliabilityOf("Supplier B")
	assert.True(t, ok)
	assert.InDelta(t, 90.0, rel, 1e-9)
	lt, ok := lookup.LeadTimeOf("Supplier C")
	assert.True(t, ok)
	assert.Equal(t, 6.0, lt)

	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnZeroDeliveries, warnings[0].Kind)
	assert.Equal(t, 3, warnings[0].Row)
}

func TestScoreSuppliers_SupplierBDelay(t *testing.T) {
	in := []model.Supplier{{SupplierName: "Supplier B", TotalDeliveries: 20, OnTimeDeliveries: 18}}
	sc := &Scenario{SupplierDelays: []SupplierDelay{{Supplier: "Supplier B", OnTimeReduction: 2}}}

	delayed, _ := sc.Apply(in, nil)
	scored, _, _ := ScoreSuppliers(delayed)

	assert.InDelta(t, 80.0, scored[0].ReliabilityPct, 1e-9)
	assert.Equal(t, model.BandWatch, scored[0].ReliabilityBand)
}

func TestScoreSuppliers_DuplicateNamesLastWins(t *testing.T) {
	in := []model.Supplier{
		{SupplierID: "S1", SupplierName: "Mill", TotalDeliveries: 10, OnTimeDeliveries: 10, AvgLeadTimeDays: 2},
		{SupplierID: "S9", SupplierName: "Mill", TotalDeliveries: 10, OnTimeDeliveries: 5, AvgLeadTimeDays: 7},
	}

	scored, lookup, _ := ScoreSuppliers(in)

	assert.Len(t, scored, 2, "both rows are still scored")
	assert.InDelta(t, 50.0, lookup.Reliability["Mill"], 1e-9)
	assert.Equal(t, 7.0, lookup.LeadTime["Mill"])
}

func TestScoreSuppliers_ClampWarning(t *testing.T) {
	_, _, warnings := ScoreSuppliers([]model.Supplier{{SupplierName: "Odd", TotalDeliveries: 10, OnTimeDeliveries: 12}})
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnClampedOnTime, warnings[0].Kind)
	assert.Equal(t, ColOnTimeDeliveries, warnings[0].Column)
}

func TestSaturateInt(t *testing.T) {
	assert.Equal(t, 42, saturateInt(42))
	assert.Equal(t, -7, saturateInt(-7))
	assert.Equal(t, math.MaxInt, saturateInt(1e19))
	assert.Equal(t, math.MaxInt, saturateInt(math.Inf(1)))
	assert.Equal(t, math.MinInt, saturateInt(-1e19))
	assert.Equal(t, 0, saturateInt(math.NaN()))
}
