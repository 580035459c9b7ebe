package normalize

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/geoequity/fairscan/internal/model"
)

// normalizeTabular parses delimited text. The first row is the header and is
// resolved through the synonym schema; both coordinate columns must be
// present or the whole input is rejected.
func (n *Normalizer) normalizeTabular(data []byte) ([]model.DataPoint, int, error) {
	decoded, err := n.decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = n.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, eris.Wrap(err, "normalize: read csv row")
		}
		rows = append(rows, record)
	}

	return n.pointsFromRows(rows)
}

// decode wraps the raw reader with charset decoding: BOM-tolerant UTF-8 by
// default, or any IANA-named encoding when configured.
func (n *Normalizer) decode(r io.Reader) (io.Reader, error) {
	if n.charset == "" || n.charset == "utf-8" || n.charset == "UTF-8" {
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(n.charset)
	if err != nil {
		return nil, eris.Wrapf(err, "normalize: unknown charset %q", n.charset)
	}
	return enc.NewDecoder().Reader(r), nil
}

// pointsFromRows converts header+data rows into points. Shared by the CSV
// and XLSX paths.
func (n *Normalizer) pointsFromRows(rows [][]string) ([]model.DataPoint, int, error) {
	if len(rows) == 0 {
		return []model.DataPoint{}, 0, nil
	}

	cols := n.schema.resolve(rows[0])
	if cols.lat < 0 || cols.lng < 0 {
		return nil, 0, eris.Errorf("normalize: no coordinate columns found in header %v", rows[0])
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	backfill := n.newBackfiller()
	points := make([]model.DataPoint, 0, len(rows)-1)
	skipped := 0

	for _, row := range rows[1:] {
		lat, latOK := parseFinite(cell(row, cols.lat))
		lng, lngOK := parseFinite(cell(row, cols.lng))
		if !latOK || !lngOK {
			skipped++
			continue
		}

		value, ok := parseFinite(cell(row, cols.value))
		if !ok {
			value = backfill.value()
		}
		bias, ok := parseFinite(cell(row, cols.bias))
		if !ok {
			bias = backfill.bias()
		}

		points = append(points, model.DataPoint{
			ID:       pointID(cell(row, cols.id)),
			Lat:      lat,
			Lng:      lng,
			Value:    value,
			Bias:     clampBias(bias),
			Category: cell(row, cols.category),
		})
	}

	if skipped > 0 {
		zap.L().Debug("normalize: skipped tabular records",
			zap.Int("skipped", skipped),
			zap.Int("kept", len(points)),
		)
	}

	return points, skipped, nil
}
