// Package normalize turns raw uploaded dataset bytes into typed DataPoints.
// It accepts delimited text, GeoJSON feature collections, and XLSX workbooks,
// resolves arbitrary column headers through a synonym schema, and drops (but
// counts) records whose coordinates do not parse as finite numbers.
package normalize

import (
	"math"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/geoequity/fairscan/internal/model"
)

// Format identifies the shape of the raw input bytes.
type Format string

const (
	FormatTabular Format = "tabular"
	FormatGeoJSON Format = "geojson"
	FormatXLSX    Format = "xlsx"
)

// DetectFormat maps a filename extension to an input format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return FormatTabular, nil
	case ".json", ".geojson":
		return FormatGeoJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("normalize: cannot infer format from %q", filename)
	}
}

// Normalizer parses raw dataset bytes into DataPoints. The zero configuration
// (via New) uses the default synonym schema, comma-delimited UTF-8 tabular
// input, and deterministic zero backfill for missing value/bias fields.
type Normalizer struct {
	schema     Schema
	delimiter  rune
	charset    string
	randomSeed int64
	useRandom  bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSchema replaces the header synonym schema.
func WithSchema(s Schema) Option {
	return func(n *Normalizer) {
		n.schema = s
	}
}

// WithDelimiter sets the tabular field delimiter (default ',').
func WithDelimiter(d rune) Option {
	return func(n *Normalizer) {
		n.delimiter = d
	}
}

// WithCharset sets the tabular input charset by IANA name (default UTF-8,
// with BOM tolerance).
func WithCharset(name string) Option {
	return func(n *Normalizer) {
		n.charset = name
	}
}

// WithRandomBackfill enables the legacy uniform-random backfill for missing
// value ([0,100]) and bias ([0,1]) fields, seeded for reproducibility. The
// default without this option is a deterministic zero backfill; random
// backfill is intended for test fixtures only.
func WithRandomBackfill(seed int64) Option {
	return func(n *Normalizer) {
		n.useRandom = true
		n.randomSeed = seed
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		schema:    DefaultSchema(),
		delimiter: ',',
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize parses raw bytes in the given format. It returns the ordered
// points plus the count of records that were skipped (unparsable coordinates
// or unsupported geometry). Skipped records are a diagnostic, not an error;
// an error is returned only when the input itself is unreadable.
func (n *Normalizer) Normalize(data []byte, format Format) ([]model.DataPoint, int, error) {
	switch format {
	case FormatTabular:
		return n.normalizeTabular(data)
	case FormatGeoJSON:
		return n.normalizeGeoJSON(data)
	case FormatXLSX:
		return n.normalizeXLSX(data)
	default:
		return nil, 0, eris.Errorf("normalize: unsupported format %q", format)
	}
}

// backfiller supplies value/bias placeholders for records missing them.
// Each Normalize call gets a fresh one so a seeded random backfill stays
// reproducible per invocation.
type backfiller struct {
	rng *rand.Rand
}

func (n *Normalizer) newBackfiller() *backfiller {
	if !n.useRandom {
		return &backfiller{}
	}
	return &backfiller{rng: rand.New(rand.NewSource(n.randomSeed))}
}

func (b *backfiller) value() float64 {
	if b.rng == nil {
		return 0
	}
	return b.rng.Float64() * 100
}

func (b *backfiller) bias() float64 {
	if b.rng == nil {
		return 0
	}
	return b.rng.Float64()
}

// parseFinite parses s as a float64 and rejects NaN and infinities.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// clampBias pins a bias value into [0,1]. Out-of-range inputs are treated as
// best-effort rather than rejected.
func clampBias(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// pointID returns the record's own identifier, or a fresh UUID when the
// input carries none. Every point must have an identity so the id-multiset
// invariant holds through the pipeline.
func pointID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		return raw
	}
	return uuid.NewString()
}
