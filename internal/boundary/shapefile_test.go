package boundary

import (
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestPolygonOuterRing_SinglePart(t *testing.T) {
	poly := &shp.Polygon{
		NumParts:  1,
		NumPoints: 4,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
			{X: 0, Y: 1},
		},
	}

	ring := polygonOuterRing(poly)
	require.Len(t, ring, 4)
	assert.Equal(t, geom.Coord{0, 0}, ring[0])
	assert.Equal(t, geom.Coord{0, 1}, ring[3])
}

func TestPolygonOuterRing_MultiPartKeepsFirst(t *testing.T) {
	poly := &shp.Polygon{
		NumParts:  2,
		NumPoints: 6,
		Parts:     []int32{0, 3},
		Points: []shp.Point{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
			{X: 5, Y: 5},
			{X: 6, Y: 5},
			{X: 6, Y: 6},
		},
	}

	ring := polygonOuterRing(poly)
	require.Len(t, ring, 3)
	assert.Equal(t, geom.Coord{1, 1}, ring[2])
}

func TestReadShapefile_MissingFile(t *testing.T) {
	_, err := ReadShapefile("testdata/absent.shp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open shapefile")
}
