package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/geoequity/fairscan/internal/model"
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries",
	Short: "Inspect a region boundary set",
	Long: `Boundaries loads a boundary file (.geojson or .shp) and prints one line
per region: name, outer-ring vertex count, and declared population. Useful
for checking what the region assigner will see before running an analysis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		bounds, err := loadBoundaries(input)
		if err != nil {
			return err
		}

		printBoundarySummary(os.Stdout, bounds)
		return nil
	},
}

func init() {
	boundariesCmd.Flags().String("input", "", "path to region boundaries (.geojson or .shp)")
	_ = boundariesCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(boundariesCmd)
}

func printBoundarySummary(w io.Writer, bounds model.BoundarySet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERTICES\tPOPULATION")
	for i := range bounds {
		pop := "-"
		if bounds[i].Population != nil {
			pop = fmt.Sprintf("%d", *bounds[i].Population)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", bounds[i].Name, len(bounds[i].Ring), pop)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d boundaries, total declared population %d\n", len(bounds), bounds.TotalPopulation())
}
