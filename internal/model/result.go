package model

// RegionalStat holds the per-region aggregates for one boundary. It is
// recomputed on every analysis call and never persisted by this package.
// Population, PointsPerCapita, and CoverageRatio serialize as explicit null
// when the boundary carries no usable population figure, so downstream
// round-tripping sees a stable shape.
type RegionalStat struct {
	RegionName      string   `json:"region_name"`
	PointCount      int      `json:"point_count"`
	CoveragePercent float64  `json:"coverage_percent"`
	AverageValue    float64  `json:"average_value"`
	AverageBias     float64  `json:"average_bias"`
	GiniCoefficient float64  `json:"gini_coefficient"`
	Population      *uint64  `json:"population"`
	PointsPerCapita *float64 `json:"points_per_capita"`
	CoverageRatio   *float64 `json:"coverage_ratio"`
}

// CoverageResult carries both coverage signals: the region-based percentages
// keyed by boundary name, and the boundary-independent grid-density score.
type CoverageResult struct {
	CoveragePercentages map[string]float64 `json:"coverage_percentages"`
	AverageCoverage     float64            `json:"average_coverage"`
	MissingRegions      []string           `json:"missing_regions"`
	OverallCoverage     float64            `json:"overall_coverage"`
	GridCoverageScore   float64            `json:"grid_coverage_score"`
}

// BiasResult describes distributional inequality across regions.
type BiasResult struct {
	GiniCoefficient         float64  `json:"gini_coefficient"`
	InequalityIndex         float64  `json:"inequality_index"`
	OverrepresentedRegions  []string `json:"overrepresented_regions"`
	UnderrepresentedRegions []string `json:"underrepresented_regions"`
	BiasScore               float64  `json:"bias_score"`
}

// FairnessResult is the composite fairness view on a 0-10 scale.
type FairnessResult struct {
	DistributionScore   float64 `json:"distribution_score"`
	RepresentationScore float64 `json:"representation_score"`
	AccessibilityScore  float64 `json:"accessibility_score"`
	FairnessIndex       float64 `json:"fairness_index"`
}

// AnalysisResult is the engine's sole output. Ownership transfers entirely to
// the caller; the engine keeps no reference to it.
type AnalysisResult struct {
	Coverage         CoverageResult `json:"coverage"`
	Bias             BiasResult     `json:"bias"`
	Fairness         FairnessResult `json:"fairness"`
	RegionalStats    []RegionalStat `json:"regional_stats"`
	TotalPoints      int            `json:"total_points"`
	UnassignedPoints int            `json:"unassigned_points"`
}
