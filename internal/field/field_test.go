package field

import (
	"errors"
	"math"
	"testing"

	"fieldplot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleCharges() []model.Charge {
	return []model.Charge{
		{Value: 5, Sign: model.Positive, Position: model.Point{X: 3, Y: 3}},
		{Value: 5, Sign: model.Positive, Position: model.Point{X: -3, Y: -3}},
		{Value: 7, Sign: model.Negative, Position: model.Point{X: 5, Y: -5}},
	}
}

func defaultGrid(t *testing.T) Grid {
	t.Helper()
	g, err := NewGrid(-10, 10, -10, 10, 20, 20)
	require.NoError(t, err)
	return g
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Nil(t, Linspace(0, 1, 0))

	xs := Linspace(-10, 10, 20)
	require.Len(t, xs, 20)
	assert.Equal(t, -10.0, xs[0])
	assert.Equal(t, 10.0, xs[19])
}

func TestMeshgrid_Layout(t *testing.T) {
	g := Meshgrid([]float64{0, 1, 2}, []float64{10, 20})
	require.NoError(t, g.Validate())
	assert.Equal(t, 3, g.Nx)
	assert.Equal(t, 2, g.Ny)
	assert.Equal(t, []float64{0, 1, 2, 0, 1, 2}, g.X)
	assert.Equal(t, []float64{10, 10, 10, 20, 20, 20}, g.Y)

	xs, ys := g.Axes()
	assert.Equal(t, []float64{0, 1, 2}, xs)
	assert.Equal(t, []float64{10, 20}, ys)
}

func TestSingleChargeOnAxis(t *testing.T) {
	p := DefaultParams()
	q := 2.5
	charges := []model.Charge{{Value: q, Sign: model.Positive}}

	g := Meshgrid([]float64{1}, []float64{0})
	f, err := Evaluate(g, charges, p)
	require.NoError(t, err)

	want := p.K * q / (1 + p.Epsilon)
	assert.InEpsilon(t, want, f.Ex[0], 1e-12)
	assert.Equal(t, 0.0, f.Ey[0])

	e := At(model.Point{X: 1, Y: 0}, charges, p)
	assert.Equal(t, f.Ex[0], e.X)
	assert.Equal(t, f.Ey[0], e.Y)
}

func TestNegativeChargePointsInward(t *testing.T) {
	charges := []model.Charge{{Value: 1, Sign: model.Negative}}
	e := At(model.Point{X: 0, Y: 2}, charges, DefaultParams())
	assert.Less(t, e.Y, 0.0)
	assert.InDelta(t, 0.0, e.X, 1e-12)
}

func TestSuperpositionIsAdditive(t *testing.T) {
	g := defaultGrid(t)
	p := DefaultParams()
	all := exampleCharges()

	whole, err := Evaluate(g, all, p)
	require.NoError(t, err)

	a, err := Evaluate(g, all[:1], p)
	require.NoError(t, err)
	b, err := Evaluate(g, all[1:], p)
	require.NoError(t, err)
	sum, err := Add(a, b)
	require.NoError(t, err)

	for i := range whole.Ex {
		assert.InDelta(t, whole.Ex[i], sum.Ex[i], 1e-6*math.Max(1, math.Abs(whole.Ex[i])))
		assert.InDelta(t, whole.Ey[i], sum.Ey[i], 1e-6*math.Max(1, math.Abs(whole.Ey[i])))
	}
}

func TestSignSwapNegates(t *testing.T) {
	g := defaultGrid(t)
	p := DefaultParams()
	for _, c := range exampleCharges() {
		pos, err := Evaluate(g, []model.Charge{c}, p)
		require.NoError(t, err)
		neg, err := Evaluate(g, []model.Charge{c.Flipped()}, p)
		require.NoError(t, err)
		for i := range pos.Ex {
			assert.Equal(t, -pos.Ex[i], neg.Ex[i])
			assert.Equal(t, -pos.Ey[i], neg.Ey[i])
		}
	}
}

func TestEvaluate_ShapeMatchesGrid(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {20, 20}, {7, 3}, {2, 11}} {
		g, err := NewGrid(-1, 1, -2, 2, dims[0], dims[1])
		require.NoError(t, err)
		f, err := Evaluate(g, exampleCharges(), DefaultParams())
		require.NoError(t, err)
		assert.Len(t, f.Ex, len(g.X))
		assert.Len(t, f.Ey, len(g.Y))
		assert.Len(t, f.Rows(f.Ex), g.Ny)
		assert.Len(t, f.Rows(f.Ey)[0], g.Nx)
	}
}

func TestEvaluate_NoCharges(t *testing.T) {
	f, err := Evaluate(defaultGrid(t), nil, DefaultParams())
	require.NoError(t, err)
	for i := range f.Ex {
		assert.Zero(t, f.Ex[i])
		assert.Zero(t, f.Ey[i])
	}
}

func TestEvaluate_AtChargeLocationIsFinite(t *testing.T) {
	g := Meshgrid([]float64{3}, []float64{3})
	f, err := Evaluate(g, exampleCharges()[:1], DefaultParams())
	require.NoError(t, err)
	assert.False(t, math.IsNaN(f.Ex[0]))
	assert.Zero(t, f.Ex[0])
	assert.Zero(t, f.Ey[0])
}

func TestEvaluate_MalformedGrid(t *testing.T) {
	bad := []Grid{
		{Nx: 2, Ny: 2, X: []float64{0, 1, 0, 1}, Y: []float64{0, 0, 1}},
		{Nx: 3, Ny: 2, X: []float64{0, 1, 0, 1}, Y: []float64{0, 0, 1, 1}},
		{Nx: 0, Ny: 2},
	}
	for _, g := range bad {
		f, err := Evaluate(g, exampleCharges(), DefaultParams())
		assert.Nil(t, f)
		assert.True(t, errors.Is(err, ErrShape))
	}

	_, err := NewGrid(0, 1, 0, 1, 0, 5)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestAdd_ShapeMismatch(t *testing.T) {
	a, err := Evaluate(Meshgrid([]float64{0, 1}, []float64{0}), nil, DefaultParams())
	require.NoError(t, err)
	b, err := Evaluate(Meshgrid([]float64{0}, []float64{0}), nil, DefaultParams())
	require.NoError(t, err)
	_, err = Add(a, b)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
	assert.Error(t, Params{K: 0, Epsilon: 1e-9}.Validate())
	assert.Error(t, Params{K: 1, Epsilon: 0}.Validate())
	assert.Error(t, Params{K: math.NaN(), Epsilon: 1}.Validate())
}

func TestMagnitude(t *testing.T) {
	f := &Field{Ex: []float64{3, 0}, Ey: []float64{4, -2}}
	assert.Equal(t, []float64{5, 2}, f.Magnitude())
}

func TestInterpolate(t *testing.T) {
	g := Meshgrid([]float64{0, 1}, []float64{0, 1})
	f := &Field{Grid: g, Ex: []float64{0, 1, 2, 3}, Ey: []float64{1, 1, 1, 1}}

	e, ok := f.Interpolate(0.5, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 1.5, e.X, 1e-12)
	assert.InDelta(t, 1.0, e.Y, 1e-12)

	e, ok = f.Interpolate(1, 1)
	require.True(t, ok)
	assert.InDelta(t, 3.0, e.X, 1e-12)

	_, ok = f.Interpolate(1.01, 0)
	assert.False(t, ok)
	_, ok = f.Interpolate(0, -0.01)
	assert.False(t, ok)
}

func TestInterpolate_MatchesGridSamples(t *testing.T) {
	g := defaultGrid(t)
	f, err := Evaluate(g, exampleCharges(), DefaultParams())
	require.NoError(t, err)
	for _, i := range []int{0, 21, 150, len(g.X) - 1} {
		e, ok := f.Interpolate(g.X[i], g.Y[i])
		require.True(t, ok)
		assert.InDelta(t, f.Ex[i], e.X, 1e-6*math.Max(1, math.Abs(f.Ex[i])))
		assert.InDelta(t, f.Ey[i], e.Y, 1e-6*math.Max(1, math.Abs(f.Ey[i])))
	}
}
