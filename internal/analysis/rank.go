package analysis

import (
	"math"
	"sort"

	"fieldplot/internal/field"
	"fieldplot/internal/model"
)

// ChargeInfluence is how much one charge contributes to the field over a grid.
type ChargeInfluence struct {
	Index  int
	Charge model.Charge
	// MeanMagnitude is the grid average of |E| from this charge alone.
	MeanMagnitude float64
	// Share is MeanMagnitude over the sum of all charges' MeanMagnitude.
	Share float64
}

// RankByInfluence evaluates each charge alone on g and sorts descending by
// MeanMagnitude. Ties keep input order.
func RankByInfluence(g field.Grid, charges []model.Charge, p field.Params) ([]ChargeInfluence, error) {
	out := make([]ChargeInfluence, 0, len(charges))
	total := 0.0
	for i, c := range charges {
		f, err := field.Evaluate(g, []model.Charge{c}, p)
		if err != nil {
			return nil, err
		}
		mean := 0.0
		for _, m := range f.Magnitude() {
			mean += m
		}
		mean /= float64(len(f.Ex))
		total += mean
		out = append(out, ChargeInfluence{Index: i, Charge: c, MeanMagnitude: mean})
	}
	for i := range out {
		if total > 0 && !math.IsInf(total, 0) {
			out[i].Share = out[i].MeanMagnitude / total
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanMagnitude > out[j].MeanMagnitude
	})
	return out, nil
}
