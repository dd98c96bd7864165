// Package engine scores supplier reliability and inventory health.
//
// scorer.go turns the supplier roster into reliability percentages, bands
// and the name-keyed Lookup used to join suppliers into inventory rows.
//
// health.go derives, per inventory row and in a fixed order: supplier
// reliabilities, effective lead time (leadtime.go), days of cover, reorder
// point, reorder quantity, risk flags and the recommendation text
// (recommend.go). Each row depends only on itself and the Lookup.
//
// engine.go wires schema checks, cell decoding, optional scenario
// simulation and KPI aggregation into a single Evaluate call. The package
// holds no state and does no I/O; the same input always yields the same
// Result.
//
// Reliability bands: Reliable ≥90, Watch 75–89.99, Risk <75.
package engine
