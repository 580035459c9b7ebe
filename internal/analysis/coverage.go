package analysis

import (
	"math"

	"github.com/geoequity/fairscan/internal/model"
	"github.com/geoequity/fairscan/internal/stats"
)

const (
	gridCells = 10 // grid is gridCells × gridCells

	// A region counts as missing when its coverage falls below this fraction
	// of the ideal per-region share.
	missingFraction = 0.1
)

// Coverage produces both coverage signals. The region-based signal spreads
// the ideal share evenly over the BoundarySet and penalizes variance around
// it; the grid signal is boundary-independent and simply measures how many
// cells of a fixed 10×10 grid over the points' bounding box are occupied.
//
// With an empty BoundarySet the region-based signal is undefined, so
// OverallCoverage falls back to the grid score.
func Coverage(points []model.DataPoint, bounds model.BoundarySet) model.CoverageResult {
	result := model.CoverageResult{
		CoveragePercentages: map[string]float64{},
		MissingRegions:      []string{},
		GridCoverageScore:   GridCoverageScore(points),
	}

	if len(bounds) == 0 {
		result.OverallCoverage = result.GridCoverageScore
		return result
	}

	counts := make(map[string]int, len(bounds))
	for i := range points {
		if points[i].Region != nil {
			counts[*points[i].Region]++
		}
	}

	totalPoints := len(points)
	percentages := make([]float64, 0, len(bounds))
	for i := range bounds {
		pct := 0.0
		if totalPoints > 0 {
			pct = float64(counts[bounds[i].Name]) / float64(totalPoints) * 100
		}
		result.CoveragePercentages[bounds[i].Name] = pct
		percentages = append(percentages, pct)
	}

	result.AverageCoverage = 100 / float64(len(bounds))
	for i := range bounds {
		if result.CoveragePercentages[bounds[i].Name] < missingFraction*result.AverageCoverage {
			result.MissingRegions = append(result.MissingRegions, bounds[i].Name)
		}
	}

	variance := stats.VarianceAround(percentages, result.AverageCoverage)
	result.OverallCoverage = math.Max(0, 100-math.Sqrt(variance))

	return result
}

// GridCoverageScore partitions the points' bounding box into a fixed 10×10
// grid and scores the percentage of occupied cells, capped at 100. A
// degenerate bounding box (all points sharing a latitude or longitude)
// collapses that axis to a single row or column rather than dividing by
// zero. Holding the bounding box fixed, the score is non-decreasing as
// points are added, until the grid saturates.
func GridCoverageScore(points []model.DataPoint) float64 {
	if len(points) == 0 {
		return 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for i := range points {
		minLat = math.Min(minLat, points[i].Lat)
		maxLat = math.Max(maxLat, points[i].Lat)
		minLng = math.Min(minLng, points[i].Lng)
		maxLng = math.Max(maxLng, points[i].Lng)
	}

	latStep := (maxLat - minLat) / gridCells
	lngStep := (maxLng - minLng) / gridCells

	occupied := make(map[int]struct{}, gridCells*gridCells)
	for i := range points {
		row := cellIndex(points[i].Lat, minLat, latStep)
		col := cellIndex(points[i].Lng, minLng, lngStep)
		occupied[row*gridCells+col] = struct{}{}
	}

	return math.Min(100, float64(len(occupied))/(gridCells*gridCells)*100)
}

// cellIndex places a coordinate into [0, gridCells-1]. A zero step means the
// axis has no extent; everything lands in cell 0.
func cellIndex(v, min, step float64) int {
	if step <= 0 {
		return 0
	}
	idx := int((v - min) / step)
	if idx >= gridCells {
		idx = gridCells - 1
	}
	return idx
}
