package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoequity/fairscan/internal/config"
	"github.com/geoequity/fairscan/internal/model"
	"github.com/geoequity/fairscan/internal/normalize"
)

const boundariesFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[0, 0], [10, 0], [10, 10], [0, 10], [0, 0]]]
			},
			"properties": {"name": "metro", "population": 1000}
		}
	]
}`

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		override string
		want     normalize.Format
		wantErr  bool
	}{
		{name: "from extension", input: "points.csv", want: normalize.FormatTabular},
		{name: "override wins", input: "points.dat", override: "geojson", want: normalize.FormatGeoJSON},
		{name: "csv alias", input: "x", override: "CSV", want: normalize.FormatTabular},
		{name: "xlsx", input: "x", override: "xlsx", want: normalize.FormatXLSX},
		{name: "unknown override", input: "x", override: "parquet", wantErr: true},
		{name: "unknown extension", input: "points.dat", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.input, tt.override)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadBoundaries(t *testing.T) {
	t.Run("empty path means no boundaries", func(t *testing.T) {
		bounds, err := loadBoundaries("")
		require.NoError(t, err)
		assert.Nil(t, bounds)
	})

	t.Run("geojson", func(t *testing.T) {
		path := writeFixture(t, "regions.geojson", boundariesFixture)
		bounds, err := loadBoundaries(path)
		require.NoError(t, err)
		require.Len(t, bounds, 1)
		assert.Equal(t, "metro", bounds[0].Name)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := loadBoundaries("regions.kml")
		require.Error(t, err)
	})
}

func TestAnalyzeFile_EndToEnd(t *testing.T) {
	input := writeFixture(t, "points.csv",
		"id,lat,lng,value\n"+
			"a,5,5,10\n"+
			"b,6,6,30\n"+
			"c,50,50,20\n"+
			"d,not-a-number,1,0\n")
	bounds, err := loadBoundaries(writeFixture(t, "regions.geojson", boundariesFixture))
	require.NoError(t, err)

	result, skipped, err := analyzeFile(input, "", bounds)
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, 3, result.TotalPoints)
	assert.Equal(t, 1, result.UnassignedPoints)
	require.Len(t, result.RegionalStats, 1)
	assert.Equal(t, 2, result.RegionalStats[0].PointCount)
}

func TestBuildNormalizer_SchemaFromConfig(t *testing.T) {
	schemaPath := writeFixture(t, "schema.yaml", "lat:\n  - breite\nlng:\n  - laenge\n")
	c := &config.Config{}
	c.Input.SchemaPath = schemaPath
	c.Input.Delimiter = ";"

	n, err := buildNormalizer(c)
	require.NoError(t, err)

	points, _, err := n.Normalize([]byte("breite;laenge\n1;2\n"), normalize.FormatTabular)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1.0, points[0].Lat)
	assert.Equal(t, 2.0, points[0].Lng)
}

func TestBuildNormalizer_NilConfig(t *testing.T) {
	n, err := buildNormalizer(nil)
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestBuildNormalizer_BadSchemaPath(t *testing.T) {
	c := &config.Config{}
	c.Input.SchemaPath = filepath.Join(t.TempDir(), "absent.yaml")

	_, err := buildNormalizer(c)
	require.Error(t, err)
}

func TestWriteResult_ToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "result.json")
	result := model.AnalysisResult{TotalPoints: 7, RegionalStats: []model.RegionalStat{}}

	require.NoError(t, writeResult(result, output, true))

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded model.AnalysisResult
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 7, decoded.TotalPoints)
}
