// Command evaluate scores a supplier roster and inventory ledger from files
// and prints the result as text, JSON or an XLSX workbook.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"supplyhealth-service/internal/dataset"
	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/model"
	"supplyhealth-service/internal/table"
	"supplyhealth-service/pkg/logger"

	"go.uber.org/zap"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

type options struct {
	dataDir   string
	suppliers string
	inventory string
	scenarios string
	scenario  string
	demoDelay bool
	demoSpike bool
	format    string
	out       string
	logLevel  string
}

func main() {
	var opts options
	flag.StringVar(&opts.dataDir, "data", "data", "directory holding the default suppliers and inventory tables")
	flag.StringVar(&opts.suppliers, "suppliers", "", "supplier roster file (.csv or .xlsx), overrides the default")
	flag.StringVar(&opts.inventory, "inventory", "", "inventory ledger file (.csv or .xlsx), overrides the default")
	flag.StringVar(&opts.scenarios, "scenarios", "", "scenario file (default <data>/scenarios.yaml)")
	flag.StringVar(&opts.scenario, "scenario", "", "name of the scenario to apply")
	flag.BoolVar(&opts.demoDelay, "demo-delay", false, "also take two on-time deliveries off Supplier B")
	flag.BoolVar(&opts.demoSpike, "demo-spike", false, "also raise Flour usage by 30%")
	flag.StringVar(&opts.format, "format", FormatText, "output format: text, json or xlsx")
	flag.StringVar(&opts.out, "out", "", "output file (default stdout)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level for data quality warnings")
	flag.Parse()

	log, err := logger.Build("development", opts.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(context.Background(), opts, log); err != nil {
		var schemaErr *engine.SchemaError
		if errors.As(err, &schemaErr) {
			log.Error("Input rejected", zap.Any("missing", schemaErr.Missing))
		}
		fmt.Fprintln(os.Stderr, "evaluate:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *zap.Logger) error {
	switch opts.format {
	case FormatText, FormatJSON, FormatXLSX:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	in, err := buildInput(ctx, opts)
	if err != nil {
		return err
	}

	res, err := engine.Evaluate(in)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn("Data quality warning",
			zap.String("table", w.Table),
			zap.Int("row", w.Row),
			zap.String("column", w.Column),
			zap.String("kind", w.Kind),
			zap.String("detail", w.Detail),
		)
	}

	var out io.Writer = os.Stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return write(out, opts.format, res)
}

func buildInput(ctx context.Context, opts options) (engine.Input, error) {
	var in engine.Input

	if opts.suppliers == "" || opts.inventory == "" {
		ds, err := dataset.NewFileProvider(opts.dataDir).Load(ctx)
		if err != nil {
			return in, err
		}
		in.Suppliers, in.Inventory = ds.Suppliers, ds.Inventory
	}
	if opts.suppliers != "" {
		t, err := readFile(engine.SuppliersTable, opts.suppliers)
		if err != nil {
			return in, err
		}
		in.Suppliers = t
	}
	if opts.inventory != "" {
		t, err := readFile(engine.InventoryTable, opts.inventory)
		if err != nil {
			return in, err
		}
		in.Inventory = t
	}

	if opts.scenario != "" {
		path := opts.scenarios
		if path == "" {
			path = filepath.Join(opts.dataDir, "scenarios.yaml")
		}
		scenarios, err := engine.LoadScenarios(path)
		if err != nil {
			return in, err
		}
		in.Scenario, err = engine.FindScenario(scenarios, opts.scenario)
		if err != nil {
			return in, err
		}
	}
	if opts.demoDelay {
		in.Scenario = engine.Combine(in.Scenario, engine.SupplierBDelay())
	}
	if opts.demoSpike {
		in.Scenario = engine.Combine(in.Scenario, engine.FlourDemandSpike())
	}
	return in, nil
}

func readFile(name, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s file %s does not exist", name, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return table.Read(name, path, f)
}

func write(w io.Writer, format string, res *model.Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatXLSX:
		return table.WriteXLSX(w, res)
	default:
		return writeText(w, res)
	}
}

func writeText(w io.Writer, res *model.Result) error {
	if res.Scenario != "" {
		fmt.Fprintf(w, "Scenario: %s\n\n", res.Scenario)
	}

	k := res.KPIs
	fmt.Fprintf(w, "Suppliers tracked:        %d\n", k.SupplierCount)
	fmt.Fprintf(w, "Avg supplier reliability: %.1f%%\n", k.MeanReliability)
	fmt.Fprintf(w, "Materials at risk:        %d\n", k.AtRiskCount)
	fmt.Fprintf(w, "Total suggested reorder:  %d\n\n", k.TotalReorderQty)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUPPLIER\tDELIVERIES\tON TIME\tRELIABILITY\tBAND")
	for _, s := range res.Suppliers {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%s\n",
			s.SupplierName, s.TotalDeliveries, s.OnTimeDeliveries, s.ReliabilityPct, s.ReliabilityBand.Label())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tSTOCK\tCOVER (DAYS)\tREORDER POINT\tREORDER QTY\tRISK")
	for _, h := range res.Inventory {
		fmt.Fprintf(tw, "%s\t%g\t%.1f\t%g\t%d\t%s\n",
			h.Material, h.CurrentStock, h.DaysOfCover, h.ReorderPoint, h.ReorderQty, riskText(h))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nRecommendations:")
	for _, r := range res.Recommendations {
		fmt.Fprintf(w, "- %s: %s\n", r.Material, r.Text)
	}
	return nil
}

func riskText(h model.InventoryHealth) string {
	if !h.AtRisk() {
		return model.RiskOK
	}
	var parts []string
	if h.StockRisk != model.RiskOK {
		parts = append(parts, h.StockRisk)
	}
	if h.SupplyRisk != model.RiskOK {
		parts = append(parts, h.SupplyRisk)
	}
	return strings.Join(parts, ", ")
}
