package render

import (
	"math"

	"fieldplot/internal/field"
	"fieldplot/internal/model"
)

// Streamline is a polyline following the field direction.
type Streamline struct {
	Points []model.Point
}

func (s Streamline) Length() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i].Sub(s.Points[i-1]).Norm()
	}
	return total
}

// Midpoint returns the point halfway along the line and the local direction there.
func (s Streamline) Midpoint() (pt, dir model.Point, ok bool) {
	if len(s.Points) < 2 {
		return model.Point{}, model.Point{}, false
	}
	half := s.Length() / 2
	walked := 0.0
	for i := 1; i < len(s.Points); i++ {
		seg := s.Points[i].Sub(s.Points[i-1])
		l := seg.Norm()
		if l == 0 {
			continue
		}
		if walked+l >= half {
			t := (half - walked) / l
			return s.Points[i-1].Add(seg.Scale(t)), seg.Scale(1 / l), true
		}
		walked += l
	}
	return model.Point{}, model.Point{}, false
}

const (
	baseMaskSize = 30
	// minLengthFrac is the shortest kept line as a fraction of the domain width.
	minLengthFrac = 0.1
)

// occupancy is the coarse mask that keeps streamlines apart.
// Cell values hold the id of the line that claimed them, 0 when free.
type occupancy struct {
	nx, ny int
	cells  []int
	x0, y0 float64
	cw, ch float64
}

func newOccupancy(b Bounds, nx, ny int) *occupancy {
	return &occupancy{
		nx:    nx,
		ny:    ny,
		cells: make([]int, nx*ny),
		x0:    b.XMin,
		y0:    b.YMin,
		cw:    b.Width() / float64(nx),
		ch:    b.Height() / float64(ny),
	}
}

func (o *occupancy) cellOf(p model.Point) (int, bool) {
	fx := (p.X - o.x0) / o.cw
	fy := (p.Y - o.y0) / o.ch
	if fx < 0 || fy < 0 || fx > float64(o.nx) || fy > float64(o.ny) || math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, false
	}
	// points exactly on the far edge belong to the last cell
	c := min(int(fx), o.nx-1)
	r := min(int(fy), o.ny-1)
	return r*o.nx + c, true
}

func (o *occupancy) center(idx int) model.Point {
	r, c := idx/o.nx, idx%o.nx
	return model.Point{
		X: o.x0 + (float64(c)+0.5)*o.cw,
		Y: o.y0 + (float64(r)+0.5)*o.ch,
	}
}

// release frees the listed cells that id still owns.
func (o *occupancy) release(id int, claimed []int) {
	for _, idx := range claimed {
		if o.cells[idx] == id {
			o.cells[idx] = 0
		}
	}
}

// Trace seeds and integrates streamlines over the field's grid extent
// using GridSeeder.
func Trace(f *field.Field, density float64) []Streamline {
	return TraceWith(f, density, GridSeeder{}, nil)
}

// TraceWith integrates one streamline per seed. With an exclusive seeder
// each line claims the mask cells it crosses and stops on entering a cell
// claimed by another line; seeds in claimed cells are skipped.
func TraceWith(f *field.Field, density float64, s Seeder, charges []model.Charge) []Streamline {
	if f == nil || f.Grid.Nx < 2 || f.Grid.Ny < 2 || density <= 0 || s == nil {
		return nil
	}
	xMin, xMax, yMin, yMax := f.Grid.Bounds()
	b := Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	n := max(1, int(baseMaskSize*density))
	mask := newOccupancy(b, n, n)

	t := tracer{
		f:         f,
		mask:      mask,
		exclusive: s.Exclusive(),
		step:      0.5 * math.Min(mask.cw, mask.ch),
		maxLen:    4 * float64(n) * math.Max(b.Width(), b.Height()),
		minLen:    minLengthFrac * b.Width(),
	}

	var out []Streamline
	id := 0
	for _, seed := range s.Seeds(b, n, charges) {
		if t.exclusive {
			idx, ok := mask.cellOf(seed)
			if !ok || mask.cells[idx] != 0 {
				continue
			}
		}
		id++
		if line, ok := t.trace(seed, id); ok {
			out = append(out, line)
		}
	}
	return out
}

type tracer struct {
	f         *field.Field
	mask      *occupancy
	exclusive bool
	step      float64
	maxLen    float64
	minLen    float64
	// claimed lists the cells taken by the line being traced.
	claimed []int
}

func (t *tracer) claim(idx, id int) {
	t.mask.cells[idx] = id
	t.claimed = append(t.claimed, idx)
}

func (t *tracer) trace(start model.Point, id int) (Streamline, bool) {
	startCell, ok := t.mask.cellOf(start)
	if !ok {
		return Streamline{}, false
	}
	t.claimed = t.claimed[:0]
	t.claim(startCell, id)

	backward := t.integrate(start, -1, id)
	forward := t.integrate(start, 1, id)

	pts := make([]model.Point, 0, len(backward)+len(forward))
	for i := len(backward) - 1; i >= 0; i-- {
		pts = append(pts, backward[i])
	}
	pts = append(pts, forward[1:]...)

	line := Streamline{Points: pts}
	if len(pts) < 2 || line.Length() < t.minLen {
		t.mask.release(id, t.claimed)
		return Streamline{}, false
	}
	return line, true
}

// integrate walks from start along dir*E/|E| with a midpoint (RK2) step.
// The returned slice always begins with start.
func (t *tracer) integrate(start model.Point, dir float64, id int) []model.Point {
	pts := []model.Point{start}
	p := start
	cell, _ := t.mask.cellOf(start)
	var prev model.Point
	travelled := 0.0

	for travelled < t.maxLen {
		k1, ok := t.direction(p, dir)
		if !ok {
			break
		}
		k2, ok := t.direction(p.Add(k1.Scale(t.step/2)), dir)
		if !ok {
			break
		}
		// a reversal means we stepped across a sink or source
		if travelled > 0 && k2.X*prev.X+k2.Y*prev.Y < 0 {
			break
		}
		next := p.Add(k2.Scale(t.step))
		if _, inside := t.f.Interpolate(next.X, next.Y); !inside {
			break
		}
		nc, ok := t.mask.cellOf(next)
		if !ok {
			break
		}
		if nc != cell {
			if owner := t.mask.cells[nc]; t.exclusive && owner != 0 && owner != id {
				break
			}
			t.claim(nc, id)
			cell = nc
		}
		pts = append(pts, next)
		prev = k2
		p = next
		travelled += t.step
	}
	return pts
}

func (t *tracer) direction(p model.Point, dir float64) (model.Point, bool) {
	e, ok := t.f.Interpolate(p.X, p.Y)
	if !ok {
		return model.Point{}, false
	}
	n := e.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return model.Point{}, false
	}
	return e.Scale(dir / n), true
}

// spiralOrder lists (row, col) pairs walking the mask boundary inward.
func spiralOrder(rows, cols int) [][2]int {
	out := make([][2]int, 0, rows*cols)
	top, bottom, left, right := 0, rows-1, 0, cols-1
	for top <= bottom && left <= right {
		for c := left; c <= right; c++ {
			out = append(out, [2]int{top, c})
		}
		for r := top + 1; r <= bottom; r++ {
			out = append(out, [2]int{r, right})
		}
		if top < bottom {
			for c := right - 1; c >= left; c-- {
				out = append(out, [2]int{bottom, c})
			}
		}
		if left < right {
			for r := bottom - 1; r > top; r-- {
				out = append(out, [2]int{r, left})
			}
		}
		top++
		bottom--
		left++
		right--
	}
	return out
}
