package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"fieldplot/internal/field"
	"fieldplot/internal/render"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: path to a JSON charge list. Relative paths are resolved
	// against the config file directory first, then the working directory.
	ChargesFile string        `yaml:"charges_file"`
	Title       string        `yaml:"title"`
	Grid        GridConfig    `yaml:"grid"`
	Physics     PhysicsConfig `yaml:"physics"`
	Render      RenderConfig  `yaml:"render"`
}

type GridConfig struct {
	XMin     float64 `yaml:"x_min"`
	XMax     float64 `yaml:"x_max"`
	YMin     float64 `yaml:"y_min"`
	YMax     float64 `yaml:"y_max"`
	SamplesX int     `yaml:"samples_x"`
	SamplesY int     `yaml:"samples_y"`
}

type PhysicsConfig struct {
	CoulombConstant float64 `yaml:"coulomb_constant"`
	Epsilon         float64 `yaml:"epsilon"`
}

type RenderConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Density      float64 `yaml:"density"`
	LineWidth    float64 `yaml:"line_width"`
	MarkerRadius float64 `yaml:"marker_radius"`
	// Seeding is "grid" (evenly spaced lines) or "charges" (lines leave each source charge).
	Seeding        string  `yaml:"seeding"`
	LinesPerCharge float64 `yaml:"lines_per_charge"`
	// Pointers so an explicit false survives the merge with defaults.
	GridLines *bool `yaml:"grid_lines"`
	Arrows    *bool `yaml:"arrows"`
}

// Default mirrors the classic figure: a 20x20 grid over [-10,10]² in an 800x800 window.
func Default() *Config {
	on := true
	arrows := true
	return &Config{
		Title: "Electric field",
		Grid: GridConfig{
			XMin: -10, XMax: 10,
			YMin: -10, YMax: 10,
			SamplesX: 20, SamplesY: 20,
		},
		Physics: PhysicsConfig{
			CoulombConstant: field.CoulombConstant,
			Epsilon:         field.DefaultEpsilon,
		},
		Render: RenderConfig{
			Width:          800,
			Height:         800,
			Density:        1.5,
			LineWidth:      1.2,
			MarkerRadius:   0.5,
			Seeding:        render.SeedingGrid,
			LinesPerCharge: 2,
			GridLines:      &on,
			Arrows:         &arrows,
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config and merges it over Default, without validating.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	merged := Merge(Default(), c)
	if merged.ChargesFile != "" && !filepath.IsAbs(merged.ChargesFile) {
		cand := filepath.Join(filepath.Dir(path), merged.ChargesFile)
		if _, err := os.Stat(cand); err == nil {
			merged.ChargesFile = cand
		}
	}
	return merged, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	g := c.Grid
	for _, v := range []float64{g.XMin, g.XMax, g.YMin, g.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("grid bounds must be finite")
		}
	}
	if g.XMin >= g.XMax || g.YMin >= g.YMax {
		return errors.New("grid bounds must satisfy x_min<x_max and y_min<y_max")
	}
	if g.SamplesX < 2 || g.SamplesY < 2 {
		return errors.New("grid.samples_x and grid.samples_y must be >= 2")
	}
	if err := c.FieldParams().Validate(); err != nil {
		return fmt.Errorf("physics config invalid: %w", err)
	}
	if err := c.RenderOptions().Validate(); err != nil {
		return fmt.Errorf("render config invalid: %w", err)
	}
	return nil
}

func (c *Config) NewGrid() (field.Grid, error) {
	g := c.Grid
	return field.NewGrid(g.XMin, g.XMax, g.YMin, g.YMax, g.SamplesX, g.SamplesY)
}

func (c *Config) FieldParams() field.Params {
	return field.Params{K: c.Physics.CoulombConstant, Epsilon: c.Physics.Epsilon}
}

// RenderOptions builds renderer options; the view always matches the grid extent.
func (c *Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	o.Width = c.Render.Width
	o.Height = c.Render.Height
	o.View = render.Bounds{XMin: c.Grid.XMin, XMax: c.Grid.XMax, YMin: c.Grid.YMin, YMax: c.Grid.YMax}
	o.Density = c.Render.Density
	o.LineWidth = c.Render.LineWidth
	o.MarkerRadius = c.Render.MarkerRadius
	o.Seeding = c.Render.Seeding
	o.LinesPerCharge = c.Render.LinesPerCharge
	if c.Render.GridLines != nil {
		o.GridLines = *c.Render.GridLines
	}
	if c.Render.Arrows != nil {
		o.Arrows = *c.Render.Arrows
	}
	o.Title = c.Title
	return o
}

// Merge overlays non-zero fields from override onto base.
func Merge(base *Config, override Config) *Config {
	out := *base
	if override.ChargesFile != "" {
		out.ChargesFile = override.ChargesFile
	}
	if override.Title != "" {
		out.Title = override.Title
	}
	out.Grid = MergeGrid(base.Grid, override.Grid)

	if override.Physics.CoulombConstant != 0 {
		out.Physics.CoulombConstant = override.Physics.CoulombConstant
	}
	if override.Physics.Epsilon != 0 {
		out.Physics.Epsilon = override.Physics.Epsilon
	}

	r := override.Render
	if r.Width != 0 {
		out.Render.Width = r.Width
	}
	if r.Height != 0 {
		out.Render.Height = r.Height
	}
	if r.Density != 0 {
		out.Render.Density = r.Density
	}
	if r.LineWidth != 0 {
		out.Render.LineWidth = r.LineWidth
	}
	if r.MarkerRadius != 0 {
		out.Render.MarkerRadius = r.MarkerRadius
	}
	if r.Seeding != "" {
		out.Render.Seeding = r.Seeding
	}
	if r.LinesPerCharge != 0 {
		out.Render.LinesPerCharge = r.LinesPerCharge
	}
	if r.GridLines != nil {
		out.Render.GridLines = r.GridLines
	}
	if r.Arrows != nil {
		out.Render.Arrows = r.Arrows
	}
	return &out
}

// MergeGrid overlays a partial grid description. Bounds are taken as a
// pair so that a legitimate 0 bound (e.g. x_min: 0) is not mistaken for "unset".
func MergeGrid(base, override GridConfig) GridConfig {
	out := base
	if override.XMin != 0 || override.XMax != 0 {
		out.XMin, out.XMax = override.XMin, override.XMax
	}
	if override.YMin != 0 || override.YMax != 0 {
		out.YMin, out.YMax = override.YMin, override.YMax
	}
	if override.SamplesX != 0 {
		out.SamplesX = override.SamplesX
	}
	if override.SamplesY != 0 {
		out.SamplesY = override.SamplesY
	}
	return out
}
