package render

import (
	"math"
	"testing"

	"fieldplot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

func TestNewSeeder(t *testing.T) {
	s, err := NewSeeder("", 0)
	require.NoError(t, err)
	assert.Equal(t, SeedingGrid, s.Name())
	assert.True(t, s.Exclusive())

	s, err = NewSeeder(SeedingCharges, 2)
	require.NoError(t, err)
	assert.Equal(t, SeedingCharges, s.Name())
	assert.False(t, s.Exclusive())

	_, err = NewSeeder(SeedingCharges, 0)
	assert.Error(t, err)
	_, err = NewSeeder("random", 1)
	assert.Error(t, err)
}

func TestGridSeeder_OneSeedPerCell(t *testing.T) {
	seeds := GridSeeder{}.Seeds(square, 10, nil)
	require.Len(t, seeds, 100)
	// boundary first: the first seed is the centre of the bottom-left cell
	assert.InDelta(t, -9, seeds[0].X, 1e-12)
	assert.InDelta(t, -9, seeds[0].Y, 1e-12)
}

func TestChargeSeeder_RingsAroundPositiveCharges(t *testing.T) {
	s := ChargeSeeder{LinesPerUnit: 2}
	seeds := s.Seeds(square, 30, exampleCharges())
	// two +5 sources, ten lines each; the negative charge is a sink
	require.Len(t, seeds, 20)
	for i, p := range seeds {
		src := exampleCharges()[i/10].Position
		assert.InDelta(t, 1.0, p.Sub(src).Norm(), 1e-9)
	}
}

func TestChargeSeeder_FallsBackToNegativeCharges(t *testing.T) {
	s := ChargeSeeder{LinesPerUnit: 0.1}
	charges := []model.Charge{{Value: 3, Sign: model.Negative, Position: model.Point{X: 1, Y: 1}}}
	seeds := s.Seeds(square, 20, charges)
	// round(0.3) is 0, but every charge gets at least one line
	require.Len(t, seeds, 1)
	assert.InDelta(t, 1.5, seeds[0].Sub(model.Point{X: 1, Y: 1}).Norm(), 1e-9)
}

func TestTraceWith_ChargeSeeding(t *testing.T) {
	f := exampleField(t)
	s := ChargeSeeder{LinesPerUnit: 2}
	lines := TraceWith(f, 1, s, exampleCharges())
	require.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 20)
	for _, l := range lines {
		for _, p := range l.Points {
			assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
			assert.True(t, p.X >= -10 && p.X <= 10 && p.Y >= -10 && p.Y <= 10)
		}
	}
}

func TestBuildScene_UsesConfiguredSeeding(t *testing.T) {
	opts := DefaultOptions()
	opts.Seeding = SeedingCharges
	opts.LinesPerCharge = 1
	scene := BuildScene(exampleField(t), exampleCharges(), opts)
	assert.LessOrEqual(t, len(scene.Streamlines), 10)
	assert.NotEmpty(t, scene.Streamlines)
}

func TestChargeSeeder_ClampsHugeCounts(t *testing.T) {
	s := ChargeSeeder{LinesPerUnit: 2}
	charges := []model.Charge{
		{Value: 1e6, Sign: model.Positive},
		{Value: 1e300, Sign: model.Positive, Position: model.Point{X: 5}},
	}
	assert.Equal(t, 2*MaxLinesPerCharge, s.Count(charges))
	assert.Len(t, s.Seeds(square, 30, charges), 2*MaxLinesPerCharge)

	assert.Equal(t, 20, ChargeSeeder{LinesPerUnit: 2}.Count(exampleCharges()))
}
