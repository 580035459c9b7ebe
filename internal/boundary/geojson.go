// Package boundary loads RegionBoundary sets from the formats boundary
// providers actually ship: GeoJSON feature collections and ESRI shapefiles.
// Loaders preserve provider order, since first-match-wins containment makes
// the order part of the contract.
package boundary

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/geoequity/fairscan/internal/model"
)

var nameKeys = []string{"name", "namelsad", "region", "label"}

var populationKeys = []string{"population", "pop", "pop_est", "population_estimate"}

// ParseGeoJSON reads a FeatureCollection whose features carry Polygon (or
// MultiPolygon, reduced to the first polygon) geometry and a name property.
// Features without a usable ring or name are skipped with a debug log; rings
// with fewer than 3 vertices are kept but warned about, because they can
// never contain a point.
func ParseGeoJSON(data []byte) (model.BoundarySet, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "boundary: parse feature collection")
	}

	set := make(model.BoundarySet, 0, len(fc.Features))
	skipped := 0

	for _, f := range fc.Features {
		if f == nil {
			skipped++
			continue
		}

		var ring []geom.Coord
		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			ring = outerRing(g.Coords())
		case *geom.MultiPolygon:
			polys := g.Coords()
			if len(polys) > 0 {
				ring = outerRing(polys[0])
			}
		}
		if ring == nil {
			skipped++
			continue
		}

		name := featureName(f)
		if name == "" {
			skipped++
			continue
		}

		b := model.RegionBoundary{
			Name:       name,
			Population: featurePopulation(f),
			Ring:       ring,
		}
		if len(b.Ring) < 3 {
			zap.L().Warn("boundary: degenerate ring contains nothing",
				zap.String("name", b.Name),
				zap.Int("vertices", len(b.Ring)),
			)
		}
		set = append(set, b)
	}

	if skipped > 0 {
		zap.L().Debug("boundary: skipped features",
			zap.Int("skipped", skipped),
			zap.Int("kept", len(set)),
		)
	}

	return set, nil
}

// outerRing copies the first ring so the returned BoundarySet shares no
// backing storage with the decoder's buffers.
func outerRing(rings [][]geom.Coord) []geom.Coord {
	if len(rings) == 0 || len(rings[0]) == 0 {
		return nil
	}
	ring := make([]geom.Coord, len(rings[0]))
	copy(ring, rings[0])
	return ring
}

func featureName(f *geojson.Feature) string {
	for _, key := range nameKeys {
		if v, ok := lookup(f.Properties, key); ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return strings.TrimSpace(f.ID)
}

func featurePopulation(f *geojson.Feature) *uint64 {
	for _, key := range populationKeys {
		v, ok := lookup(f.Properties, key)
		if !ok {
			continue
		}
		if pop, ok := toPopulation(v); ok {
			return &pop
		}
	}
	return nil
}

// lookup finds a property case-insensitively.
func lookup(props map[string]any, key string) (any, bool) {
	for k, v := range props {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return v, true
		}
	}
	return nil, false
}

func toPopulation(v any) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0, false
		}
		return uint64(t), true
	case int:
		if t < 0 {
			return 0, false
		}
		return uint64(t), true
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
