package analysis

import (
	"github.com/geoequity/fairscan/internal/model"
)

// Run executes the full analysis pipeline: region assignment, per-region
// aggregation, coverage scoring, bias scoring, and fairness composition.
// It is a pure function: inputs are never mutated and identical inputs
// always produce identical results. An empty
// point sequence returns a well-formed zero-valued result rather than an
// error; an empty BoundarySet degenerates the region-based signals while
// the grid-density coverage path remains available.
func Run(points []model.DataPoint, bounds model.BoundarySet) model.AnalysisResult {
	if len(points) == 0 {
		return zeroResult()
	}

	assigned := AssignRegions(points, bounds)

	regionalStats := Aggregate(assigned, bounds)
	coverage := Coverage(assigned, bounds)
	bias := Bias(assigned, bounds)
	fairness := Fairness(bias.GiniCoefficient, coverage.OverallCoverage, bias.BiasScore)

	return model.AnalysisResult{
		Coverage:         coverage,
		Bias:             bias,
		Fairness:         fairness,
		RegionalStats:    regionalStats,
		TotalPoints:      len(assigned),
		UnassignedPoints: countUnassigned(assigned),
	}
}

// zeroResult is the terminal result for an empty dataset: every score zero,
// every collection empty but non-nil so JSON serialization stays stable.
func zeroResult() model.AnalysisResult {
	return model.AnalysisResult{
		Coverage: model.CoverageResult{
			CoveragePercentages: map[string]float64{},
			MissingRegions:      []string{},
		},
		Bias: model.BiasResult{
			OverrepresentedRegions:  []string{},
			UnderrepresentedRegions: []string{},
		},
		RegionalStats: []model.RegionalStat{},
	}
}
