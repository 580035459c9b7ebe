package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoequity/fairscan/internal/analysis"
	"github.com/geoequity/fairscan/internal/boundary"
	"github.com/geoequity/fairscan/internal/config"
	"github.com/geoequity/fairscan/internal/model"
	"github.com/geoequity/fairscan/internal/normalize"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a point dataset for geographic fairness",
	Long: `Analyze normalizes a point dataset, optionally assigns each point to a
region boundary, and prints the full analysis result as JSON: per-region
statistics, coverage, bias, and the composite fairness index.

Examples:
  # Analyze a CSV against GeoJSON region boundaries
  fairscan analyze --input points.csv --boundaries regions.geojson

  # Boundary-free grid coverage only
  fairscan analyze --input points.geojson

  # Shapefile boundaries, pretty-printed output to a file
  fairscan analyze --input survey.xlsx --boundaries counties.shp --pretty --output result.json`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("input", "", "path to the point dataset (csv, geojson, or xlsx)")
	f.String("format", "", "input format override: csv|geojson|xlsx (default: inferred from extension)")
	f.String("boundaries", "", "path to region boundaries (.geojson or .shp)")
	f.String("output", "", "write the result JSON to this file instead of stdout")
	f.Bool("pretty", false, "indent the output JSON")
	_ = analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	formatFlag, _ := cmd.Flags().GetString("format")
	boundariesPath, _ := cmd.Flags().GetString("boundaries")
	output, _ := cmd.Flags().GetString("output")
	pretty, _ := cmd.Flags().GetBool("pretty")

	bounds, err := loadBoundaries(boundariesPath)
	if err != nil {
		return err
	}

	result, skipped, err := analyzeFile(input, formatFlag, bounds)
	if err != nil {
		return err
	}

	zap.L().Info("analysis complete",
		zap.String("input", input),
		zap.Int("points", result.TotalPoints),
		zap.Int("skipped_records", skipped),
		zap.Int("unassigned", result.UnassignedPoints),
		zap.Float64("fairness_index", result.Fairness.FairnessIndex),
	)

	return writeResult(result, output, pretty)
}

// analyzeFile runs the normalize → assign → score pipeline for one dataset
// file. The engine itself is pure; this helper owns all the file I/O around
// it.
func analyzeFile(input, formatFlag string, bounds model.BoundarySet) (model.AnalysisResult, int, error) {
	format, err := resolveFormat(input, formatFlag)
	if err != nil {
		return model.AnalysisResult{}, 0, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return model.AnalysisResult{}, 0, eris.Wrapf(err, "read input %s", input)
	}

	normalizer, err := buildNormalizer(cfg)
	if err != nil {
		return model.AnalysisResult{}, 0, err
	}

	points, skipped, err := normalizer.Normalize(data, format)
	if err != nil {
		return model.AnalysisResult{}, 0, err
	}

	return analysis.Run(points, bounds), skipped, nil
}

// resolveFormat applies the --format override, falling back to the file
// extension.
func resolveFormat(input, formatFlag string) (normalize.Format, error) {
	switch strings.ToLower(formatFlag) {
	case "":
		return normalize.DetectFormat(input)
	case "csv", "tabular":
		return normalize.FormatTabular, nil
	case "geojson", "json":
		return normalize.FormatGeoJSON, nil
	case "xlsx":
		return normalize.FormatXLSX, nil
	default:
		return "", eris.Errorf("unknown format %q", formatFlag)
	}
}

// buildNormalizer translates input config into normalizer options.
func buildNormalizer(c *config.Config) (*normalize.Normalizer, error) {
	var opts []normalize.Option

	if c != nil {
		if d := c.Input.Delimiter; len(d) > 0 && d != "," {
			opts = append(opts, normalize.WithDelimiter([]rune(d)[0]))
		}
		if c.Input.Charset != "" {
			opts = append(opts, normalize.WithCharset(c.Input.Charset))
		}
		if c.Input.SchemaPath != "" {
			schema, err := normalize.LoadSchema(c.Input.SchemaPath)
			if err != nil {
				return nil, err
			}
			opts = append(opts, normalize.WithSchema(schema))
		}
		if c.Input.RandomValues {
			opts = append(opts, normalize.WithRandomBackfill(c.Input.RandomSeed))
		}
	}

	return normalize.New(opts...), nil
}

// loadBoundaries reads a boundary set by extension; an empty path means
// boundary-free analysis.
func loadBoundaries(path string) (model.BoundarySet, error) {
	if path == "" {
		return nil, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return boundary.ReadShapefile(path)
	case ".json", ".geojson":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read boundaries %s", path)
		}
		return boundary.ParseGeoJSON(data)
	default:
		return nil, eris.Errorf("unsupported boundary format %q", filepath.Ext(path))
	}
}

// writeResult serializes the analysis result to stdout or a file.
func writeResult(result model.AnalysisResult, output string, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return eris.Wrap(err, "marshal result")
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return eris.Wrapf(err, "write output %s", output)
	}
	return nil
}
