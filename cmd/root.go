package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoequity/fairscan/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fairscan",
	Short: "Geospatial fairness analysis for point datasets",
	Long:  "Normalizes uploaded point datasets (CSV, GeoJSON, XLSX), assigns points to region boundaries, and scores geographic coverage, distributional bias, and composite fairness.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
