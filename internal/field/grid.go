package field

import (
	"errors"
	"fmt"
)

// ErrShape is returned when grid or component slices disagree in size.
var ErrShape = errors.New("malformed grid shape")

// Grid is a rectangular set of sample points stored row-major:
// index = row*Nx + col, where row walks Y and col walks X.
type Grid struct {
	Nx int
	Ny int
	X  []float64
	Y  []float64
}

// Linspace returns n evenly spaced samples over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// pin the endpoint against accumulated rounding
	out[n-1] = stop
	return out
}

// Meshgrid expands 1D axes into a full grid.
func Meshgrid(xs, ys []float64) Grid {
	nx, ny := len(xs), len(ys)
	g := Grid{
		Nx: nx,
		Ny: ny,
		X:  make([]float64, nx*ny),
		Y:  make([]float64, nx*ny),
	}
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			g.X[r*nx+c] = xs[c]
			g.Y[r*nx+c] = ys[r]
		}
	}
	return g
}

// NewGrid builds a uniform grid over [xMin,xMax]x[yMin,yMax].
func NewGrid(xMin, xMax, yMin, yMax float64, nx, ny int) (Grid, error) {
	if nx <= 0 || ny <= 0 {
		return Grid{}, fmt.Errorf("%w: samples must be > 0 (got %dx%d)", ErrShape, nx, ny)
	}
	return Meshgrid(Linspace(xMin, xMax, nx), Linspace(yMin, yMax, ny)), nil
}

func (g Grid) Len() int { return g.Nx * g.Ny }

func (g Grid) Index(row, col int) int { return row*g.Nx + col }

func (g Grid) Validate() error {
	if g.Nx <= 0 || g.Ny <= 0 {
		return fmt.Errorf("%w: dimensions must be > 0 (got %dx%d)", ErrShape, g.Nx, g.Ny)
	}
	if len(g.X) != len(g.Y) {
		return fmt.Errorf("%w: len(X)=%d len(Y)=%d", ErrShape, len(g.X), len(g.Y))
	}
	if len(g.X) != g.Len() {
		return fmt.Errorf("%w: %d points for %dx%d grid", ErrShape, len(g.X), g.Nx, g.Ny)
	}
	return nil
}

// Axes returns the 1D sample coordinates, assuming a meshgrid layout.
func (g Grid) Axes() (xs, ys []float64) {
	xs = make([]float64, g.Nx)
	ys = make([]float64, g.Ny)
	copy(xs, g.X[:g.Nx])
	for r := 0; r < g.Ny; r++ {
		ys[r] = g.Y[r*g.Nx]
	}
	return xs, ys
}

// Bounds returns the extent of the grid.
func (g Grid) Bounds() (xMin, xMax, yMin, yMax float64) {
	xs, ys := g.Axes()
	return xs[0], xs[len(xs)-1], ys[0], ys[len(ys)-1]
}
