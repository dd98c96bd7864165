package engine

import (
	"fmt"
	"math"
	"os"
	"strings"

	"supplyhealth-service/internal/model"

	"gopkg.in/yaml.v3"
)

// Defaults of the two demo simulations
const (
	DefaultDelayReduction = 2
	DefaultSpikeFactor    = 1.3
)

// SupplierDelay lowers a supplier's on-time deliveries, never below zero
type SupplierDelay struct {
	Supplier        string `yaml:"supplier" json:"supplier"`
	OnTimeReduction int    `yaml:"on_time_reduction" json:"on_time_reduction"`
}

// DemandSpike scales a material's average daily usage
type DemandSpike struct {
	Material string  `yaml:"material" json:"material"`
	Factor   float64 `yaml:"factor" json:"factor"`
}

// Scenario is a what-if adjustment applied to the inputs before scoring
type Scenario struct {
	Name           string          `yaml:"name" json:"name"`
	SupplierDelays []SupplierDelay `yaml:"supplier_delays" json:"supplier_delays"`
	DemandSpikes   []DemandSpike   `yaml:"demand_spikes" json:"demand_spikes"`
}

// Demo scenario names
const (
	ScenarioSupplierBDelay   = "supplier-b-delay"
	ScenarioFlourDemandSpike = "flour-spike"
)

// SupplierBDelay takes DefaultDelayReduction on-time deliveries off Supplier B
func SupplierBDelay() *Scenario {
	return &Scenario{
		Name:           ScenarioSupplierBDelay,
		SupplierDelays: []SupplierDelay{{Supplier: "Supplier B", OnTimeReduction: DefaultDelayReduction}},
	}
}

// FlourDemandSpike raises Flour usage by DefaultSpikeFactor
func FlourDemandSpike() *Scenario {
	return &Scenario{
		Name:         ScenarioFlourDemandSpike,
		DemandSpikes: []DemandSpike{{Material: "Flour", Factor: DefaultSpikeFactor}},
	}
}

// DemoScenarios lists the built-in scenarios served when no scenario file exists
func DemoScenarios() []Scenario {
	return []Scenario{*SupplierBDelay(), *FlourDemandSpike()}
}

// Combine joins scenarios in order: delays and spikes accumulate and the
// names are joined with "+". Nil parts are skipped; no parts gives nil.
// The parts are not modified.
func Combine(parts ...*Scenario) *Scenario {
	var out *Scenario
	var names []string
	for _, p := range parts {
		if p == nil {
			continue
		}
		if out == nil {
			out = &Scenario{}
		}
		if p.Name != "" {
			names = append(names, p.Name)
		}
		out.SupplierDelays = append(out.SupplierDelays, p.SupplierDelays...)
		out.DemandSpikes = append(out.DemandSpikes, p.DemandSpikes...)
	}
	if out != nil {
		out.Name = strings.Join(names, "+")
	}
	return out
}

// IsZero reports whether the scenario changes nothing
func (s *Scenario) IsZero() bool {
	return s == nil || (len(s.SupplierDelays) == 0 && len(s.DemandSpikes) == 0)
}

// Apply returns adjusted copies of the inputs; the arguments are untouched.
// Names that match nothing are ignored.
func (s *Scenario) Apply(suppliers []model.Supplier, inventory []model.InventoryItem) ([]model.Supplier, []model.InventoryItem) {
	sup := append([]model.Supplier(nil), suppliers...)
	inv := append([]model.InventoryItem(nil), inventory...)
	if s.IsZero() {
		return sup, inv
	}

	for _, d := range s.SupplierDelays {
		for i := range sup {
			if sup[i].SupplierName == d.Supplier {
				sup[i].OnTimeDeliveries = max(sup[i].OnTimeDeliveries-d.OnTimeReduction, 0)
			}
		}
	}

	for _, spike := range s.DemandSpikes {
		for i := range inv {
			if inv[i].Material == spike.Material {
				inv[i].AvgDailyUsage = math.RoundToEven(inv[i].AvgDailyUsage*spike.Factor*100) / 100
			}
		}
	}
	return sup, inv
}

// ApplyDefaults fills zero reductions and factors with the demo defaults.
// Zero means "use the default" for every input path (YAML, JSON and form
// fields alike); a scenario that should change nothing simply omits the entry.
func (s *Scenario) ApplyDefaults() {
	if s == nil {
		return
	}
	for i := range s.SupplierDelays {
		if s.SupplierDelays[i].OnTimeReduction == 0 {
			s.SupplierDelays[i].OnTimeReduction = DefaultDelayReduction
		}
	}
	for i := range s.DemandSpikes {
		if s.DemandSpikes[i].Factor == 0 {
			s.DemandSpikes[i].Factor = DefaultSpikeFactor
		}
	}
}

// ScenarioFile is the YAML document holding named scenarios
type ScenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads named scenarios from a YAML file
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios %s: %w", path, err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes a YAML scenario document. Spikes without a factor
// default to DefaultSpikeFactor and delays without a reduction default to
// DefaultDelayReduction.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario %d: name is required", i+1)
		}
		sc.ApplyDefaults()
	}
	return file.Scenarios, nil
}

// FindScenario returns the scenario with the given name
func FindScenario(scenarios []Scenario, name string) (*Scenario, error) {
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found", name)
}
