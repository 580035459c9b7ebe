package analysis

import (
	"github.com/geoequity/fairscan/internal/model"
	"github.com/geoequity/fairscan/internal/stats"
)

// Aggregate computes one RegionalStat per boundary, in set order, including
// boundaries that received no points. Unassigned points contribute to the
// total-point denominator but to no regional statistic.
//
// CoverageRatio compares a region's share of points to its share of declared
// population; it is nil unless both the region's population and the set's
// total declared population are known and nonzero. When the ratio is defined,
// CoveragePercent is the ratio clamped into [0,100] percent; otherwise it
// falls back to the region's plain share of points.
func Aggregate(points []model.DataPoint, bounds model.BoundarySet) []model.RegionalStat {
	totalPoints := len(points)
	totalPop := bounds.TotalPopulation()

	byRegion := make(map[string][]model.DataPoint, len(bounds))
	for i := range points {
		if points[i].Region != nil {
			byRegion[*points[i].Region] = append(byRegion[*points[i].Region], points[i])
		}
	}

	result := make([]model.RegionalStat, 0, len(bounds))
	for i := range bounds {
		result = append(result, regionStat(bounds[i], byRegion[bounds[i].Name], totalPoints, totalPop))
	}
	return result
}

func regionStat(b model.RegionBoundary, members []model.DataPoint, totalPoints int, totalPop uint64) model.RegionalStat {
	count := len(members)

	var sumValue, sumBias float64
	values := make([]float64, 0, count)
	for i := range members {
		sumValue += members[i].Value
		sumBias += members[i].Bias
		values = append(values, members[i].Value)
	}

	stat := model.RegionalStat{
		RegionName:      b.Name,
		PointCount:      count,
		GiniCoefficient: stats.Gini(values),
	}
	if count > 0 {
		stat.AverageValue = sumValue / float64(count)
		stat.AverageBias = sumBias / float64(count)
	}

	if b.Population != nil {
		pop := *b.Population
		stat.Population = &pop

		if pop > 0 {
			ppc := float64(count) / float64(pop)
			stat.PointsPerCapita = &ppc
		}
		if pop > 0 && totalPop > 0 && totalPoints > 0 {
			pointShare := float64(count) / float64(totalPoints)
			popShare := float64(pop) / float64(totalPop)
			ratio := pointShare / popShare
			stat.CoverageRatio = &ratio
			stat.CoveragePercent = clamp(ratio*100, 0, 100)
		}
	}

	// Share-of-points fallback when the per-capita ratio is undefined.
	if stat.CoverageRatio == nil && totalPoints > 0 {
		stat.CoveragePercent = float64(count) / float64(totalPoints) * 100
	}

	return stat
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
