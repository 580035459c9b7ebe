package boundary

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/geoequity/fairscan/internal/model"
)

// ReadShapefile loads polygon boundaries from an ESRI shapefile. The name
// comes from the first of the NAME/NAMELSAD/GEOID attributes present; a
// POPULATION-like attribute supplies the optional population estimate.
// Non-polygon shapes are skipped and counted.
func ReadShapefile(path string) (model.BoundarySet, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// Build field name → index map.
	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	attr := func(keys ...string) string {
		for _, key := range keys {
			idx, ok := fieldIdx[key]
			if !ok {
				continue
			}
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
			if val != "" {
				return val
			}
		}
		return ""
	}

	var set model.BoundarySet
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		poly, ok := shape.(*shp.Polygon)
		if !ok || len(poly.Points) == 0 {
			skipped++
			continue
		}

		name := attr("name", "namelsad", "geoid")
		if name == "" {
			skipped++
			continue
		}

		b := model.RegionBoundary{
			Name: name,
			Ring: polygonOuterRing(poly),
		}
		if popStr := attr(populationKeys...); popStr != "" {
			if pop, ok := toPopulation(popStr); ok {
				b.Population = &pop
			}
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
		zap.L().Debug("boundary: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return set, nil
}

// polygonOuterRing extracts the first part of a shapefile polygon as the
// outer ring. Shapefile points are (X, Y) = (lng, lat), matching the ring
// vertex order the containment test expects.
func polygonOuterRing(p *shp.Polygon) []geom.Coord {
	end := len(p.Points)
	if p.NumParts > 1 {
		end = int(p.Parts[1])
	}

	ring := make([]geom.Coord, 0, end)
	for i := 0; i < end; i++ {
		ring = append(ring, geom.Coord{p.Points[i].X, p.Points[i].Y})
	}
	return ring
}
