package analysis

import (
	"math"

	"github.com/geoequity/fairscan/internal/model"
	"github.com/geoequity/fairscan/internal/stats"
)

const (
	overrepresentedFactor  = 1.5
	underrepresentedFactor = 0.5

	// Weight of the inequality index in the composite bias score.
	inequalityWeight = 0.3
)

// Bias scores distributional inequality over the per-region point counts.
// Every boundary contributes a count, zero included; regions whose count
// strays past 1.5× (or below 0.5×) the per-region average are reported as
// over- or underrepresented. An empty BoundarySet yields a zero-valued
// result.
func Bias(points []model.DataPoint, bounds model.BoundarySet) model.BiasResult {
	result := model.BiasResult{
		OverrepresentedRegions:  []string{},
		UnderrepresentedRegions: []string{},
	}
	if len(bounds) == 0 {
		return result
	}

	countByRegion := make(map[string]int, len(bounds))
	for i := range points {
		if points[i].Region != nil {
			countByRegion[*points[i].Region]++
		}
	}

	counts := make([]float64, 0, len(bounds))
	for i := range bounds {
		counts = append(counts, float64(countByRegion[bounds[i].Name]))
	}

	result.GiniCoefficient = stats.Gini(counts)

	mean := stats.Mean(counts)
	if mean > 0 {
		result.InequalityIndex = stats.StdDev(counts) / mean

		for i := range bounds {
			c := float64(countByRegion[bounds[i].Name])
			switch {
			case c > overrepresentedFactor*mean:
				result.OverrepresentedRegions = append(result.OverrepresentedRegions, bounds[i].Name)
			case c < underrepresentedFactor*mean:
				result.UnderrepresentedRegions = append(result.UnderrepresentedRegions, bounds[i].Name)
			}
		}
	}

	result.BiasScore = math.Min(1, result.GiniCoefficient+inequalityWeight*result.InequalityIndex)

	return result
}
