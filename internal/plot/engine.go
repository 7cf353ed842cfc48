package plot

import (
	"fmt"
	"log/slog"

	"fieldplot/internal/config"
	"fieldplot/internal/data"
	"fieldplot/internal/field"
	"fieldplot/internal/model"
	"fieldplot/internal/render"
)

type Engine struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{log: logger}
}

// Evaluate samples the field for charges on the configured grid.
func (e *Engine) Evaluate(charges []model.Charge, cfg *config.Config) (*field.Field, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	for i, c := range charges {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("charge %d: %w", i, err)
		}
	}
	g, err := cfg.NewGrid()
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	f, err := field.Evaluate(g, charges, cfg.FieldParams())
	if err != nil {
		return nil, fmt.Errorf("evaluate field: %w", err)
	}
	e.log.Debug("field evaluated", "charges", len(charges), "nx", g.Nx, "ny", g.Ny)
	return f, nil
}

// Run executes evaluate → trace → rasterize for one charge set.
func (e *Engine) Run(charges []model.Charge, cfg *config.Config) (*Result, error) {
	f, err := e.Evaluate(charges, cfg)
	if err != nil {
		return nil, err
	}

	opts := cfg.RenderOptions()
	scene := render.BuildScene(f, charges, opts)
	img := render.Rasterize(scene, opts)

	e.log.Info("plot rendered",
		"charges", len(charges),
		"streamlines", len(scene.Streamlines),
		"width", opts.Width,
		"height", opts.Height,
	)

	return &Result{
		Field: f,
		Scene: scene,
		Image: img,
	}, nil
}

// RunJSON parses a JSON charge list and runs the pipeline. Parse failures
// return before anything is rendered.
func (e *Engine) RunJSON(raw []byte, cfg *config.Config) (*Result, error) {
	charges, err := data.ParseCharges(raw)
	if err != nil {
		return nil, err
	}
	return e.Run(charges, cfg)
}
