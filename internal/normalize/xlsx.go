package normalize

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/geoequity/fairscan/internal/model"
)

// normalizeXLSX parses the first sheet of a workbook. Row one is the header;
// the rest feed the same row pipeline as delimited text.
func (n *Normalizer) normalizeXLSX(data []byte) ([]model.DataPoint, int, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, 0, eris.Wrap(err, "normalize: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return []model.DataPoint{}, 0, nil
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = c.String()
		}
		rows = append(rows, cells)
	}

	return n.pointsFromRows(rows)
}
