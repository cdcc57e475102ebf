package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/Noofbiz/trafficsigns/datasets"
)

// channelStats holds the pixel mean and standard deviation of one channel over
// all samples.
type channelStats struct {
	Mean, StdDev float64
}

// pixelStats computes per-channel statistics of ds.
func pixelStats(ds *datasets.Dataset) []channelStats {
	values := make([][]float64, ds.Channels)
	perChannel := len(ds.Images) / max(ds.Channels, 1)
	for c := range values {
		values[c] = make([]float64, 0, perChannel)
	}
	for i, v := range ds.Images {
		c := i % ds.Channels
		values[c] = append(values[c], float64(v))
	}
	out := make([]channelStats, ds.Channels)
	for c, vs := range values {
		if len(vs) == 0 {
			continue
		}
		out[c].Mean, out[c].StdDev = stat.MeanStdDev(vs, nil)
	}
	return out
}

func writeStats(w io.Writer, ds *datasets.Dataset) {
	names := datasets.ClassNames()
	counts := ds.ClassCounts()
	fmt.Fprintf(w, "%s samples shaped %v\n", humanize.Comma(int64(ds.Len())), ds.Shape()[1:])
	fmt.Fprintln(w, "class counts:")
	for label, count := range counts {
		share := 0.0
		if ds.Len() > 0 {
			share = 100 * float64(count) / float64(ds.Len())
		}
		fmt.Fprintf(w, "  %2d %-40s %8s %5.1f%%\n", label, names[label], humanize.Comma(int64(count)), share)
	}
	fmt.Fprintln(w, "pixel statistics:")
	for c, cs := range pixelStats(ds) {
		fmt.Fprintf(w, "  channel %d: mean=%.4f stddev=%.4f\n", c, cs.Mean, cs.StdDev)
	}
}

func newStatsCmd(resolve settingsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <train|test>",
		Short: "Print class counts and pixel statistics of a split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, ds, err := loadSplit(resolve, cmd, args)
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), ds)
			return nil
		},
	}
}
