package normalize

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Schema maps each canonical field to the ordered list of header aliases it
// accepts. Matching is case-insensitive on trimmed header names; the first
// alias that appears in the header wins.
type Schema struct {
	ID       []string `yaml:"id"`
	Lat      []string `yaml:"lat"`
	Lng      []string `yaml:"lng"`
	Value    []string `yaml:"value"`
	Bias     []string `yaml:"bias"`
	Category []string `yaml:"category"`
}

// DefaultSchema returns the built-in synonym table.
func DefaultSchema() Schema {
	return Schema{
		ID:       []string{"id", "uuid", "identifier", "record_id"},
		Lat:      []string{"latitude", "lat", "y"},
		Lng:      []string{"longitude", "lng", "lon", "long", "x"},
		Value:    []string{"value", "score", "amount", "count", "population"},
		Bias:     []string{"bias", "bias_score", "weight"},
		Category: []string{"category", "type", "class", "zone"},
	}
}

// LoadSchema reads extra header aliases from a YAML file and appends them to
// the defaults, so user-supplied synonyms extend rather than replace the
// built-in table.
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, eris.Wrapf(err, "normalize: read schema %s", path)
	}

	var extra Schema
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return Schema{}, eris.Wrap(err, "normalize: parse schema")
	}

	s := DefaultSchema()
	s.ID = append(s.ID, extra.ID...)
	s.Lat = append(s.Lat, extra.Lat...)
	s.Lng = append(s.Lng, extra.Lng...)
	s.Value = append(s.Value, extra.Value...)
	s.Bias = append(s.Bias, extra.Bias...)
	s.Category = append(s.Category, extra.Category...)
	return s, nil
}

// columns holds resolved header positions; -1 means the column is absent.
type columns struct {
	id, lat, lng, value, bias, category int
}

// resolve matches a header row against the schema.
func (s Schema) resolve(header []string) columns {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := idx[strings.ToLower(a)]; ok {
				return i
			}
		}
		return -1
	}

	return columns{
		id:       find(s.ID),
		lat:      find(s.Lat),
		lng:      find(s.Lng),
		value:    find(s.Value),
		bias:     find(s.Bias),
		category: find(s.Category),
	}
}

// lookupProp finds a property value by schema aliases, case-insensitively.
// Used by the GeoJSON path where records are property maps rather than rows.
func lookupProp(props map[string]any, aliases []string) (any, bool) {
	if len(props) == 0 {
		return nil, false
	}
	lowered := make(map[string]any, len(props))
	for k, v := range props {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, seen := lowered[key]; !seen {
			lowered[key] = v
		}
	}
	for _, a := range aliases {
		if v, ok := lowered[strings.ToLower(a)]; ok {
			return v, true
		}
	}
	return nil, false
}
