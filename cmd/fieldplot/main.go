package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fieldplot/internal/analysis"
	"fieldplot/internal/config"
	"fieldplot/internal/data"
	"fieldplot/internal/display"
	"fieldplot/internal/model"
	"fieldplot/internal/plot"
	"fieldplot/internal/render"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	// With no arguments, show the built-in example in a window.
	if len(os.Args) < 2 {
		exitOn(cmdShow(nil))
		return
	}

	switch os.Args[1] {
	case "show":
		exitOn(cmdShow(os.Args[2:]))
	case "export":
		exitOn(cmdExport(os.Args[2:]))
	case "field":
		exitOn(cmdField(os.Args[2:]))
	case "analyze":
		exitOn(cmdAnalyze(os.Args[2:]))
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  fieldplot                                  show the built-in example in a window")
	fmt.Println("  fieldplot show   --charges charges.json [--config examples/config.yaml]")
	fmt.Println("  fieldplot export --charges charges.json --out results/field.png [--csv results/field.csv]")
	fmt.Println("  fieldplot field  --charges charges.json    print grid and Ex/Ey as JSON")
	fmt.Println("  fieldplot analyze --charges charges.json   print |E| statistics and per-charge influence")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - charges are a JSON list of {\"value\": 5, \"positive\": true, \"position\": [3, 3]}")
	fmt.Println("  - without --charges the built-in example (or config charges_file) is used")
	fmt.Println("  - --seeding charges draws lines leaving each positive charge instead of an even grid")
}

type commonFlags struct {
	charges string
	config  string
	seeding string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.charges, "charges", "", "Path to a JSON charge list")
	fs.StringVar(&c.config, "config", "", "Path to YAML config (optional)")
	fs.StringVar(&c.seeding, "seeding", "", "Streamline seeding: grid or charges (overrides config)")
}

func (c *commonFlags) load() ([]model.Charge, *config.Config, error) {
	return loadInputs(c.charges, c.config, c.seeding)
}

// loadInputs resolves config and charges. Charges come from chargesPath,
// then the config's charges_file, then the built-in example. A non-empty
// seeding overrides the config and the result is validated again.
func loadInputs(chargesPath, configPath, seeding string) ([]model.Charge, *config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	if seeding != "" {
		cfg.Render.Seeding = seeding
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	path := chargesPath
	if path == "" {
		path = cfg.ChargesFile
	}
	if path == "" {
		return data.ExampleCharges(), cfg, nil
	}
	charges, err := data.LoadChargesJSON(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("charges loaded", "file", path, "count", len(charges))
	return charges, cfg, nil
}

func cmdShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	_ = fs.Parse(args)

	charges, cfg, err := common.load()
	if err != nil {
		return err
	}
	res, err := plot.New(logger).Run(charges, cfg)
	if err != nil {
		return err
	}
	return display.Show(res.Image, cfg.Title)
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	outPath := fs.String("out", "results/field.png", "Output PNG path")
	csvPath := fs.String("csv", "", "Optional: also write field samples as CSV")
	_ = fs.Parse(args)

	charges, cfg, err := common.load()
	if err != nil {
		return err
	}
	res, err := plot.New(logger).Run(charges, cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, res.Image); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d streamlines, %d charges)\n", *outPath, len(res.Scene.Streamlines), len(charges))

	if *csvPath != "" {
		if err := os.MkdirAll(filepath.Dir(*csvPath), 0o755); err != nil {
			return err
		}
		samples := plot.Samples(res.Field)
		if err := plot.WriteSamplesCSV(*csvPath, samples); err != nil {
			return err
		}
		fmt.Printf("Wrote %d samples to %s\n", len(samples), *csvPath)
	}
	return nil
}

type fieldOutput struct {
	Nx int         `json:"nx"`
	Ny int         `json:"ny"`
	X  [][]float64 `json:"x"`
	Y  [][]float64 `json:"y"`
	Ex [][]float64 `json:"ex"`
	Ey [][]float64 `json:"ey"`
}

func cmdField(args []string) error {
	fs := flag.NewFlagSet("field", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	_ = fs.Parse(args)

	charges, cfg, err := common.load()
	if err != nil {
		return err
	}
	f, err := plot.New(logger).Evaluate(charges, cfg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fieldOutput{
		Nx: f.Grid.Nx,
		Ny: f.Grid.Ny,
		X:  f.Rows(f.Grid.X),
		Y:  f.Rows(f.Grid.Y),
		Ex: f.Rows(f.Ex),
		Ey: f.Rows(f.Ey),
	})
}

func cmdAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	_ = fs.Parse(args)

	charges, cfg, err := common.load()
	if err != nil {
		return err
	}
	f, err := plot.New(logger).Evaluate(charges, cfg)
	if err != nil {
		return err
	}
	sum := analysis.ComputeSummary(f)
	ranked, err := analysis.RankByInfluence(f.Grid, charges, cfg.FieldParams())
	if err != nil {
		return err
	}

	fmt.Printf("Grid: %dx%d samples over [%g,%g]x[%g,%g]\n",
		f.Grid.Nx, f.Grid.Ny, cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.YMin, cfg.Grid.YMax)
	fmt.Printf("|E| min=%.4g mean=%.4g max=%.4g (p05=%.4g p95=%.4g)\n",
		sum.MinMagnitude, sum.MeanMagnitude, sum.MaxMagnitude, sum.P05Magnitude, sum.P95Magnitude)
	fmt.Printf("Strongest sample: (%g, %g)\n", sum.Strongest.X, sum.Strongest.Y)
	for _, p := range sum.NullCandidates {
		fmt.Printf("Possible null near (%g, %g)\n", p.X, p.Y)
	}
	fmt.Println("")
	fmt.Println("Influence:")
	for i, r := range ranked {
		fmt.Printf("%2d. charge #%d %s%g at (%g, %g)  mean|E|=%.4g  share=%.1f%%\n",
			i+1, r.Index, r.Charge.Sign.Label(), r.Charge.Value,
			r.Charge.Position.X, r.Charge.Position.Y, r.MeanMagnitude, 100*r.Share)
	}
	return nil
}

func exitOn(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, data.ErrMalformedInput) {
		logger.Error("invalid charge description", "err", err)
	} else {
		logger.Error("fieldplot failed", "err", err)
	}
	os.Exit(1)
}
