package handler

import (
	"fmt"
	"math"
	"strconv"

	"supplyhealth-service/internal/engine"

	"github.com/labstack/echo/v4"
)

// Simulation parameters accepted as query or form fields
const (
	ParamScenario      = "scenario"
	ParamDelaySupplier = "delay_supplier"
	ParamDelayBy       = "delay_by"
	ParamSpikeMaterial = "spike_material"
	ParamSpikeFactor   = "spike_factor"
)

// customScenario names a scenario built only from ad hoc parameters
const customScenario = "custom"

// scenarioFromParams builds the scenario described by the request's query or
// form fields. It returns nil when none are set. A zero delay_by or
// spike_factor selects the default, as it does in scenario files and bodies.
func (h *EvaluationHandler) scenarioFromParams(c echo.Context) (*engine.Scenario, error) {
	var sc *engine.Scenario

	if name := c.FormValue(ParamScenario); name != "" {
		named, err := h.svc.Scenario(name)
		if err != nil {
			return nil, err
		}
		sc = engine.Combine(named)
	}

	if supplier := c.FormValue(ParamDelaySupplier); supplier != "" {
		by := engine.DefaultDelayReduction
		if raw := c.FormValue(ParamDelayBy); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%s must be a non-negative integer", ParamDelayBy)
			}
			by = n
		}
		if sc == nil {
			sc = &engine.Scenario{Name: customScenario}
		}
		sc.SupplierDelays = append(sc.SupplierDelays, engine.SupplierDelay{Supplier: supplier, OnTimeReduction: by})
	}

	if material := c.FormValue(ParamSpikeMaterial); material != "" {
		factor := engine.DefaultSpikeFactor
		if raw := c.FormValue(ParamSpikeFactor); raw != "" {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, fmt.Errorf("%s must be a non-negative number", ParamSpikeFactor)
			}
			factor = f
		}
		if sc == nil {
			sc = &engine.Scenario{Name: customScenario}
		}
		sc.DemandSpikes = append(sc.DemandSpikes, engine.DemandSpike{Material: material, Factor: factor})
	}

	sc.ApplyDefaults()
	return sc, nil
}
