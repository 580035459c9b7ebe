package normalize

import (
	"encoding/json"
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/geoequity/fairscan/internal/model"
)

// normalizeGeoJSON parses a feature collection. Point geometries become
// points; Polygon features are reduced to their first ring's first vertex,
// matching the system's historical intake behavior; every other geometry
// type is skipped and counted.
func (n *Normalizer) normalizeGeoJSON(data []byte) ([]model.DataPoint, int, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, 0, eris.Wrap(err, "normalize: parse feature collection")
	}

	backfill := n.newBackfiller()
	points := make([]model.DataPoint, 0, len(fc.Features))
	skipped := 0
	polygonsReduced := 0

	for _, f := range fc.Features {
		if f == nil {
			skipped++
			continue
		}

		var coord geom.Coord
		switch g := f.Geometry.(type) {
		case *geom.Point:
			coord = g.Coords()
		case *geom.Polygon:
			rings := g.Coords()
			if len(rings) == 0 || len(rings[0]) == 0 {
				skipped++
				continue
			}
			coord = rings[0][0]
			polygonsReduced++
		default:
			skipped++
			continue
		}

		if len(coord) < 2 {
			skipped++
			continue
		}
		lng, lat := coord[0], coord[1]
		if !finite(lat) || !finite(lng) {
			skipped++
			continue
		}

		value, ok := propFloat(f.Properties, n.schema.Value)
		if !ok {
			value = backfill.value()
		}
		bias, ok := propFloat(f.Properties, n.schema.Bias)
		if !ok {
			bias = backfill.bias()
		}

		id := f.ID
		if id == "" {
			id, _ = propString(f.Properties, n.schema.ID)
		}

		category, _ := propString(f.Properties, n.schema.Category)

		points = append(points, model.DataPoint{
			ID:       pointID(id),
			Lat:      lat,
			Lng:      lng,
			Value:    value,
			Bias:     clampBias(bias),
			Category: category,
		})
	}

	if polygonsReduced > 0 {
		zap.L().Debug("normalize: reduced polygon features to first vertex",
			zap.Int("polygons", polygonsReduced),
		)
	}
	if skipped > 0 {
		zap.L().Debug("normalize: skipped geojson features",
			zap.Int("skipped", skipped),
			zap.Int("kept", len(points)),
		)
	}

	return points, skipped, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// propFloat resolves a numeric property through the synonym aliases,
// tolerating float64, int, and numeric-string values.
func propFloat(props map[string]any, aliases []string) (float64, bool) {
	raw, ok := lookupProp(props, aliases)
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		if !finite(v) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseFinite(v)
	default:
		return 0, false
	}
}

// propString resolves a string property through the synonym aliases.
func propString(props map[string]any, aliases []string) (string, bool) {
	raw, ok := lookupProp(props, aliases)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}
