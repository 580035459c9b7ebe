// Package model defines the value types exchanged between the normalizer,
// the region assigner, and the analysis engine. Everything here is a plain
// value; nothing holds references to shared mutable state.
package model

import (
	"github.com/twpayne/go-geom"
)

// DataPoint is a single normalized record from an uploaded dataset.
// Lat and Lng are always finite; records that fail coordinate parsing are
// dropped during normalization and never reach this type. Region is set at
// most once by the region assigner; nil means no containing boundary was
// found.
type DataPoint struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Value    float64 `json:"value"`
	Bias     float64 `json:"bias"`
	Category string  `json:"category"`
	Region   *string `json:"region"`
}

// RegionBoundary is a named polygon subdividing the study area.
// Ring is the outer ring in (lng, lat) vertex order; it may or may not repeat
// the first vertex, the containment test treats the edge from the last vertex
// back to the first as implicit. Population is nil when the boundary provider
// declared none.
type RegionBoundary struct {
	Name       string       `json:"name"`
	Population *uint64      `json:"population"`
	Ring       []geom.Coord `json:"ring"`
}

// BoundarySet is an ordered sequence of region boundaries. Order matters:
// when boundaries overlap, a point belongs to the first boundary that
// contains it. The engine never mutates a BoundarySet.
type BoundarySet []RegionBoundary

// TotalPopulation sums the declared populations across the set. Boundaries
// without a declared population contribute nothing.
func (bs BoundarySet) TotalPopulation() uint64 {
	var total uint64
	for i := range bs {
		if bs[i].Population != nil {
			total += *bs[i].Population
		}
	}
	return total
}

// Names returns the boundary names in set order.
func (bs BoundarySet) Names() []string {
	names := make([]string, len(bs))
	for i := range bs {
		names[i] = bs[i].Name
	}
	return names
}
