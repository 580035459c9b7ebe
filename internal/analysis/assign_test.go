package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/geoequity/fairscan/internal/model"
)

// unitSquare is a closed ring around (0,0)-(1,1) in (lng, lat) order.
func unitSquare() []geom.Coord {
	return []geom.Coord{
		{0, 0},
		{1, 0},
		{1, 1},
		{0, 1},
		{0, 0},
	}
}

func square(minLng, minLat, maxLng, maxLat float64) []geom.Coord {
	// No repeated first vertex: the wrap-around edge is implicit.
	return []geom.Coord{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
	}
}

func pt(id string, lat, lng float64) model.DataPoint {
	return model.DataPoint{ID: id, Lat: lat, Lng: lng}
}

func TestPointInRing(t *testing.T) {
	tests := []struct {
		name     string
		lng, lat float64
		ring     []geom.Coord
		inside   bool
	}{
		{name: "strict interior", lng: 0.5, lat: 0.5, ring: unitSquare(), inside: true},
		{name: "strict exterior", lng: 2, lat: 2, ring: unitSquare(), inside: false},
		{name: "exterior same latitude", lng: -0.5, lat: 0.5, ring: unitSquare(), inside: false},
		{name: "interior near corner", lng: 0.999, lat: 0.001, ring: unitSquare(), inside: true},
		{name: "open ring interior", lng: 0.5, lat: 0.5, ring: square(0, 0, 1, 1), inside: true},
		{name: "open ring exterior", lng: 1.5, lat: 0.5, ring: square(0, 0, 1, 1), inside: false},
		{name: "two vertices", lng: 0.5, lat: 0.5, ring: []geom.Coord{{0, 0}, {1, 1}}, inside: false},
		{name: "empty ring", lng: 0, lat: 0, ring: nil, inside: false},
		{name: "negative coordinates", lng: -97.5, lat: 30.5, ring: square(-98, 30, -97, 31), inside: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, pointInRing(tt.lng, tt.lat, tt.ring))
		})
	}
}

func TestPointInRing_ConcaveRing(t *testing.T) {
	// L-shaped ring: the notch at the top right is outside.
	ring := []geom.Coord{
		{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3},
	}

	assert.True(t, pointInRing(0.5, 2.5, ring), "inside the vertical arm")
	assert.True(t, pointInRing(2.5, 0.5, ring), "inside the horizontal arm")
	assert.False(t, pointInRing(2.5, 2.5, ring), "inside the notch")
}

func TestAssignRegions_FirstMatchWins(t *testing.T) {
	// Overlapping boundaries: set order decides ownership.
	bounds := model.BoundarySet{
		{Name: "inner", Ring: square(0, 0, 2, 2)},
		{Name: "outer", Ring: square(0, 0, 4, 4)},
	}

	assigned := AssignRegions([]model.DataPoint{
		pt("a", 1, 1),
		pt("b", 3, 3),
		pt("c", 10, 10),
	}, bounds)

	require.Len(t, assigned, 3)
	require.NotNil(t, assigned[0].Region)
	assert.Equal(t, "inner", *assigned[0].Region)
	require.NotNil(t, assigned[1].Region)
	assert.Equal(t, "outer", *assigned[1].Region)
	assert.Nil(t, assigned[2].Region)
}

func TestAssignRegions_DoesNotMutateInput(t *testing.T) {
	points := []model.DataPoint{pt("a", 0.5, 0.5)}
	bounds := model.BoundarySet{{Name: "sq", Ring: unitSquare()}}

	assigned := AssignRegions(points, bounds)

	assert.Nil(t, points[0].Region, "input slice must stay untouched")
	require.NotNil(t, assigned[0].Region)
	assert.Equal(t, "sq", *assigned[0].Region)
}

func TestAssignRegions_Deterministic(t *testing.T) {
	points := []model.DataPoint{
		pt("a", 0.2, 0.9), pt("b", 0.7, 0.1), pt("c", 5, 5), pt("d", 0.5, 0.5),
	}
	bounds := model.BoundarySet{
		{Name: "sq", Ring: unitSquare()},
		{Name: "far", Ring: square(10, 10, 11, 11)},
	}

	first := AssignRegions(points, bounds)
	second := AssignRegions(points, bounds)
	assert.Equal(t, first, second)
}

func TestAssignRegions_DegenerateRing(t *testing.T) {
	bounds := model.BoundarySet{{Name: "line", Ring: []geom.Coord{{0, 0}, {1, 1}}}}

	assigned := AssignRegions([]model.DataPoint{pt("a", 0.5, 0.5)}, bounds)
	assert.Nil(t, assigned[0].Region)
}

func TestAssignRegions_EmptyBoundarySet(t *testing.T) {
	assigned := AssignRegions([]model.DataPoint{pt("a", 1, 1)}, nil)
	require.Len(t, assigned, 1)
	assert.Nil(t, assigned[0].Region)
}

func TestAssignRegions_PreservesIDOrder(t *testing.T) {
	points := []model.DataPoint{pt("p1", 0.5, 0.5), pt("p2", 2, 2), pt("p3", 0.1, 0.1)}
	bounds := model.BoundarySet{{Name: "sq", Ring: unitSquare()}}

	assigned := AssignRegions(points, bounds)

	ids := make([]string, len(assigned))
	for i := range assigned {
		ids[i] = assigned[i].ID
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
}
