package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geoequity/fairscan/internal/model"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch [datasets...]",
	Short: "Analyze multiple datasets concurrently",
	Long: `Batch runs the fairness analysis over several dataset files at once,
sharing one boundary set, and writes <input>.analysis.json next to each
input. Datasets are independent, so they are processed concurrently up to
the configured limit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		boundariesPath, _ := cmd.Flags().GetString("boundaries")
		pretty, _ := cmd.Flags().GetBool("pretty")

		bounds, err := loadBoundaries(boundariesPath)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 && cfg != nil {
			concurrency = cfg.Batch.MaxConcurrent
		}
		if concurrency <= 0 {
			concurrency = 1
		}

		return processBatch(ctx, args, bounds, concurrency, pretty)
	},
}

func init() {
	batchCmd.Flags().String("boundaries", "", "path to region boundaries (.geojson or .shp), shared by all datasets")
	batchCmd.Flags().Bool("pretty", false, "indent the output JSON")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max datasets analyzed at once (default: config batch.max_concurrent)")
	rootCmd.AddCommand(batchCmd)
}

// processBatch analyzes each input concurrently. Individual failures are
// logged and counted but do not abort the rest of the batch; the command
// fails only when the context is cancelled.
func processBatch(ctx context.Context, inputs []string, bounds model.BoundarySet, concurrency int, pretty bool) error {
	zap.L().Info("processing batch",
		zap.Int("datasets", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, skipped, err := analyzeFile(input, "", bounds)
			if err != nil {
				failed.Add(1)
				zap.L().Error("dataset analysis failed",
					zap.String("input", input),
					zap.Error(err),
				)
				return nil
			}

			output := input + ".analysis.json"
			if err := writeResult(result, output, pretty); err != nil {
				failed.Add(1)
				zap.L().Error("write analysis result failed",
					zap.String("output", output),
					zap.Error(err),
				)
				return nil
			}

			zap.L().Info("dataset analyzed",
				zap.String("input", input),
				zap.Int("points", result.TotalPoints),
				zap.Int("skipped_records", skipped),
				zap.Float64("fairness_index", result.Fairness.FairnessIndex),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	zap.L().Info("batch complete",
		zap.Int("datasets", len(inputs)),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
