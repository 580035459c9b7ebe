// Package analysis is the fairness analysis engine: region assignment,
// per-region aggregation, coverage and bias scoring, and the composite
// fairness index. Everything in this package is a pure function over its
// inputs; concurrent callers on disjoint inputs need no locking.
package analysis

import (
	"github.com/twpayne/go-geom"

	"github.com/geoequity/fairscan/internal/model"
)

// AssignRegions attaches a region name to each point via a planar
// ray-casting containment test against the boundary outer rings. A point
// belongs to the first boundary (in set order) that contains it; a point
// inside no boundary keeps Region nil. The input slice is not mutated; the
// returned slice is a fresh copy with Region populated.
//
// The test is planar on raw lat/lng, not geodesic, and points exactly on a
// ring edge or vertex may land on either side. That is inherent to ray
// casting and callers must not rely on edge inclusion.
func AssignRegions(points []model.DataPoint, bounds model.BoundarySet) []model.DataPoint {
	assigned := make([]model.DataPoint, len(points))
	copy(assigned, points)

	for i := range assigned {
		for j := range bounds {
			if pointInRing(assigned[i].Lng, assigned[i].Lat, bounds[j].Ring) {
				name := bounds[j].Name
				assigned[i].Region = &name
				break
			}
		}
	}

	return assigned
}

// pointInRing is the standard even-odd crossing test. x is longitude, y is
// latitude; the edge from the last vertex back to the first is implicit, so
// rings work whether or not they repeat the first vertex. Rings with fewer
// than 3 vertices contain nothing.
func pointInRing(x, y float64, ring []geom.Coord) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// countUnassigned returns how many points matched no boundary.
func countUnassigned(points []model.DataPoint) int {
	n := 0
	for i := range points {
		if points[i].Region == nil {
			n++
		}
	}
	return n
}
