package analysis

import (
	"math"
	"sort"

	"fieldplot/internal/field"
	"fieldplot/internal/model"
)

// FieldSummary describes the magnitude distribution of a sampled field.
type FieldSummary struct {
	Count int

	MinMagnitude  float64
	MaxMagnitude  float64
	MeanMagnitude float64
	P05Magnitude  float64
	P95Magnitude  float64

	// Strongest is the grid point with the largest |E|.
	Strongest model.Point

	// NullCandidates are interior grid points whose |E| is below all eight
	// neighbours. They approximate where the field vanishes (saddle points
	// between like charges).
	NullCandidates []model.Point
}

func ComputeSummary(f *field.Field) FieldSummary {
	s := FieldSummary{}
	if f == nil || len(f.Ex) == 0 {
		return s
	}
	mag := f.Magnitude()
	s.Count = len(mag)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	strongest := 0
	for i, v := range mag {
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
			strongest = i
		}
	}
	sorted := append([]float64(nil), mag...)
	sort.Float64s(sorted)

	s.MinMagnitude = minv
	s.MaxMagnitude = maxv
	s.MeanMagnitude = sum / float64(len(mag))
	s.P05Magnitude = percentileSorted(sorted, 0.05)
	s.P95Magnitude = percentileSorted(sorted, 0.95)
	s.Strongest = model.Point{X: f.Grid.X[strongest], Y: f.Grid.Y[strongest]}
	s.NullCandidates = localMinima(f.Grid, mag)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func localMinima(g field.Grid, mag []float64) []model.Point {
	var out []model.Point
	for r := 1; r < g.Ny-1; r++ {
		for c := 1; c < g.Nx-1; c++ {
			v := mag[g.Index(r, c)]
			isMin := true
			for dr := -1; dr <= 1 && isMin; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if mag[g.Index(r+dr, c+dc)] <= v {
						isMin = false
						break
					}
				}
			}
			if isMin {
				i := g.Index(r, c)
				out = append(out, model.Point{X: g.X[i], Y: g.Y[i]})
			}
		}
	}
	return out
}
