package render

import (
	"fmt"
	"math"

	"fieldplot/internal/model"
)

// Seeder decides where streamlines start.
type Seeder interface {
	Name() string
	// Exclusive reports whether lines stop on reaching cells another line claimed.
	Exclusive() bool
	Seeds(b Bounds, maskSize int, charges []model.Charge) []model.Point
}

const (
	SeedingGrid    = "grid"
	SeedingCharges = "charges"
)

// NewSeeder returns the seeder registered under name.
func NewSeeder(name string, linesPerCharge float64) (Seeder, error) {
	switch name {
	case "", SeedingGrid:
		return GridSeeder{}, nil
	case SeedingCharges:
		if !(linesPerCharge > 0) {
			return nil, fmt.Errorf("lines per charge must be > 0 (got %v)", linesPerCharge)
		}
		return ChargeSeeder{LinesPerUnit: linesPerCharge}, nil
	default:
		return nil, fmt.Errorf("unsupported seeding: %q", name)
	}
}

// GridSeeder starts a line in every free mask cell, walking the boundary
// inward. It gives evenly spaced lines across the whole view.
type GridSeeder struct{}

func (GridSeeder) Name() string    { return SeedingGrid }
func (GridSeeder) Exclusive() bool { return true }

func (GridSeeder) Seeds(b Bounds, n int, _ []model.Charge) []model.Point {
	mask := newOccupancy(b, n, n)
	order := spiralOrder(n, n)
	out := make([]model.Point, len(order))
	for i, rc := range order {
		out[i] = mask.center(rc[0]*n + rc[1])
	}
	return out
}

// MaxLinesPerCharge bounds the lines a single charge can start.
const MaxLinesPerCharge = 1000

// ChargeSeeder starts lines on a small ring around each source charge,
// LinesPerUnit lines per unit of charge (at least one per charge).
// Sources are the positive charges; if there are none, the negative ones.
type ChargeSeeder struct {
	LinesPerUnit float64
}

func (ChargeSeeder) Name() string    { return SeedingCharges }
func (ChargeSeeder) Exclusive() bool { return false }

func (s ChargeSeeder) Seeds(b Bounds, n int, charges []model.Charge) []model.Point {
	// one and a half mask cells keeps the ring outside the charge's own cell
	r := 1.5 * math.Max(b.Width(), b.Height()) / float64(n)

	var out []model.Point
	for _, c := range s.sources(charges) {
		count := s.linesFor(c)
		for i := 0; i < count; i++ {
			a := 2 * math.Pi * (float64(i) + 0.5) / float64(count)
			out = append(out, c.Position.Add(model.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}))
		}
	}
	return out
}

// Count is the number of seeds Seeds would return for charges.
func (s ChargeSeeder) Count(charges []model.Charge) int {
	total := 0
	for _, c := range s.sources(charges) {
		total += s.linesFor(c)
	}
	return total
}

func (ChargeSeeder) sources(charges []model.Charge) []model.Charge {
	out := make([]model.Charge, 0, len(charges))
	for _, c := range charges {
		if c.Positive() {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return charges
	}
	return out
}

// linesFor is round(LinesPerUnit*value) clamped to [1, MaxLinesPerCharge].
// The clamp happens on the float so huge products cannot overflow int.
func (s ChargeSeeder) linesFor(c model.Charge) int {
	n := math.Round(s.LinesPerUnit * c.Value)
	if !(n >= 1) {
		return 1
	}
	return int(math.Min(n, MaxLinesPerCharge))
}
