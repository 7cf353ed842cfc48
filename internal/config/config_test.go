package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"fieldplot/internal/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	g, err := c.NewGrid()
	require.NoError(t, err)
	assert.Equal(t, 20, g.Nx)
	assert.Equal(t, 20, g.Ny)
	assert.Equal(t, field.DefaultParams(), c.FieldParams())

	o := c.RenderOptions()
	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 1.5, o.Density)
	assert.True(t, o.GridLines)
	assert.Equal(t, -10.0, o.View.XMin)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "charges.json", `[]`)
	path := writeFile(t, dir, "plot.yaml", `
title: dipole
charges_file: charges.json
grid:
  x_min: 0
  x_max: 5
  samples_x: 40
physics:
  epsilon: 0.01
render:
  width: 400
  grid_lines: false
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dipole", c.Title)
	assert.Equal(t, filepath.Join(dir, "charges.json"), c.ChargesFile)
	assert.Equal(t, 0.0, c.Grid.XMin)
	assert.Equal(t, 5.0, c.Grid.XMax)
	assert.Equal(t, -10.0, c.Grid.YMin)
	assert.Equal(t, 40, c.Grid.SamplesX)
	assert.Equal(t, 20, c.Grid.SamplesY)
	assert.Equal(t, 0.01, c.Physics.Epsilon)
	assert.Equal(t, field.CoulombConstant, c.Physics.CoulombConstant)

	o := c.RenderOptions()
	assert.Equal(t, 400, o.Width)
	assert.Equal(t, 800, o.Height)
	assert.False(t, o.GridLines)
	assert.True(t, o.Arrows)
	assert.Equal(t, "dipole", o.Title)
}

func TestLoad_KeepsUnresolvableChargesPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plot.yaml", "charges_file: elsewhere/charges.json\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere/charges.json", c.ChargesFile)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"inverted bounds":  "grid:\n  x_min: 5\n  x_max: -5\n",
		"too few samples":  "grid:\n  samples_x: 1\n",
		"negative epsilon": "physics:\n  epsilon: -1\n",
		"tiny canvas":      "render:\n  width: 10\n",
		"bad yaml":         "grid: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "c.yaml", body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_Nil(t *testing.T) {
	var c *Config
	assert.Error(t, c.Validate())
}

func TestLoad_Seeding(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plot.yaml", "render:\n  seeding: charges\n  lines_per_charge: 4\n")
	c, err := Load(path)
	require.NoError(t, err)
	o := c.RenderOptions()
	assert.Equal(t, "charges", o.Seeding)
	assert.Equal(t, 4.0, o.LinesPerCharge)

	bad := writeFile(t, dir, "bad.yaml", "render:\n  seeding: spiral\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "unsupported seeding")
}

func TestValidate_RejectsNonFiniteBounds(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"nan x_min": "grid:\n  x_min: .nan\n  x_max: 10\n",
		"inf x_max": "grid:\n  x_min: 0\n  x_max: .inf\n",
		"-inf y":    "grid:\n  y_min: -.inf\n  y_max: 1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "plot.yaml", body)
			_, err := Load(path)
			assert.ErrorContains(t, err, "grid bounds must be finite")
		})
	}
}

func TestValidate_RejectsNaNRenderSettings(t *testing.T) {
	c := Default()
	c.Render.Density = math.NaN()
	assert.ErrorContains(t, c.Validate(), "density")
}
