package normalize

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func workbookBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("data")
	require.NoError(t, err)

	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestNormalizeXLSX_FirstSheet(t *testing.T) {
	data := workbookBytes(t, [][]string{
		{"id", "lat", "lng", "value", "bias", "category"},
		{"p1", "40.7", "-74.0", "85", "0.3", "urban"},
		{"p2", "bad", "-118.2", "60", "0.9", "suburban"},
	})

	points, skipped, err := New().Normalize(data, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, points, 1)

	p := points[0]
	assert.Equal(t, "p1", p.ID)
	assert.InDelta(t, 40.7, p.Lat, 1e-9)
	assert.InDelta(t, -74.0, p.Lng, 1e-9)
	assert.Equal(t, 85.0, p.Value)
	assert.Equal(t, 0.3, p.Bias)
	assert.Equal(t, "urban", p.Category)
}

func TestNormalizeXLSX_SynonymHeaders(t *testing.T) {
	data := workbookBytes(t, [][]string{
		{"uuid", "Y", "X"},
		{"p1", "1", "2"},
	})

	points, _, err := New().Normalize(data, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "p1", points[0].ID)
	assert.Equal(t, 1.0, points[0].Lat)
}

func TestNormalizeXLSX_InvalidWorkbook(t *testing.T) {
	_, _, err := New().Normalize([]byte("not a zip archive"), FormatXLSX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open xlsx")
}
