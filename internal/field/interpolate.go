package field

import (
	"fieldplot/internal/model"
)

// Interpolate returns the bilinearly interpolated field at (x, y).
// ok is false outside the grid or on a degenerate (single row/column) grid.
func (f *Field) Interpolate(x, y float64) (e model.Point, ok bool) {
	g := f.Grid
	if g.Nx < 2 || g.Ny < 2 {
		return model.Point{}, false
	}
	xMin, xMax, yMin, yMax := g.Bounds()
	if x < xMin || x > xMax || y < yMin || y > yMax {
		return model.Point{}, false
	}

	// fractional cell coordinates
	fx := (x - xMin) / (xMax - xMin) * float64(g.Nx-1)
	fy := (y - yMin) / (yMax - yMin) * float64(g.Ny-1)
	c0 := min(int(fx), g.Nx-2)
	r0 := min(int(fy), g.Ny-2)
	tx := fx - float64(c0)
	ty := fy - float64(r0)

	i00 := g.Index(r0, c0)
	i01 := g.Index(r0, c0+1)
	i10 := g.Index(r0+1, c0)
	i11 := g.Index(r0+1, c0+1)

	lerp2 := func(v []float64) float64 {
		a := v[i00]*(1-tx) + v[i01]*tx
		b := v[i10]*(1-tx) + v[i11]*tx
		return a*(1-ty) + b*ty
	}
	return model.Point{X: lerp2(f.Ex), Y: lerp2(f.Ey)}, true
}
