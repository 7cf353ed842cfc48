package field

import (
	"fmt"
	"math"

	"fieldplot/internal/model"
)

const (
	// CoulombConstant is k in N·m²/C².
	CoulombConstant = 8.99e9
	// DefaultEpsilon keeps the field finite at a charge location.
	DefaultEpsilon = 1e-9
)

type Params struct {
	K       float64
	Epsilon float64
}

func DefaultParams() Params {
	return Params{K: CoulombConstant, Epsilon: DefaultEpsilon}
}

func (p Params) Validate() error {
	if p.K <= 0 || math.IsInf(p.K, 0) || math.IsNaN(p.K) {
		return fmt.Errorf("coulomb constant must be finite and > 0 (got %v)", p.K)
	}
	if p.Epsilon <= 0 || math.IsInf(p.Epsilon, 0) || math.IsNaN(p.Epsilon) {
		return fmt.Errorf("epsilon must be finite and > 0 (got %v)", p.Epsilon)
	}
	return nil
}

// Field holds the field components sampled on a grid.
// Ex and Ey always have the same length as Grid.X.
type Field struct {
	Grid Grid
	Ex   []float64
	Ey   []float64
}

// Evaluate superposes the contribution of every charge at each grid point:
//
//	E += k*q*sign*(dx, dy) / (dx² + dy² + eps)
//
// This is the regularized 2D form; it is not the 3D inverse-square law.
func Evaluate(g Grid, charges []model.Charge, p Params) (*Field, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		Grid: g,
		Ex:   make([]float64, len(g.X)),
		Ey:   make([]float64, len(g.X)),
	}
	for _, c := range charges {
		kq := p.K * c.SignedValue()
		for i := range g.X {
			dx := g.X[i] - c.Position.X
			dy := g.Y[i] - c.Position.Y
			d := dx*dx + dy*dy + p.Epsilon
			f.Ex[i] += kq * dx / d
			f.Ey[i] += kq * dy / d
		}
	}
	return f, nil
}

// At evaluates the field at a single point with the same formula as Evaluate.
func At(pt model.Point, charges []model.Charge, p Params) model.Point {
	var e model.Point
	for _, c := range charges {
		kq := p.K * c.SignedValue()
		dx := pt.X - c.Position.X
		dy := pt.Y - c.Position.Y
		d := dx*dx + dy*dy + p.Epsilon
		e.X += kq * dx / d
		e.Y += kq * dy / d
	}
	return e
}

// Add returns the pointwise sum of two fields on the same grid.
func Add(a, b *Field) (*Field, error) {
	if a.Grid.Nx != b.Grid.Nx || a.Grid.Ny != b.Grid.Ny || len(a.Ex) != len(b.Ex) {
		return nil, fmt.Errorf("%w: cannot add %dx%d and %dx%d fields", ErrShape, a.Grid.Nx, a.Grid.Ny, b.Grid.Nx, b.Grid.Ny)
	}
	out := &Field{
		Grid: a.Grid,
		Ex:   make([]float64, len(a.Ex)),
		Ey:   make([]float64, len(a.Ey)),
	}
	for i := range a.Ex {
		out.Ex[i] = a.Ex[i] + b.Ex[i]
		out.Ey[i] = a.Ey[i] + b.Ey[i]
	}
	return out, nil
}

// Magnitude returns |E| at each grid point.
func (f *Field) Magnitude() []float64 {
	out := make([]float64, len(f.Ex))
	for i := range f.Ex {
		out[i] = math.Hypot(f.Ex[i], f.Ey[i])
	}
	return out
}

// Rows splits a flat component into Ny rows of Nx values.
func (f *Field) Rows(component []float64) [][]float64 {
	out := make([][]float64, f.Grid.Ny)
	for r := range out {
		out[r] = component[r*f.Grid.Nx : (r+1)*f.Grid.Nx]
	}
	return out
}
