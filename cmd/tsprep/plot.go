package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"k8s.io/klog/v2"

	"github.com/Noofbiz/trafficsigns/datasets"
)

// plotClassCounts saves a bar chart with the number of samples per class of ds.
// The image format follows the extension of outPath (.png, .svg, .pdf, ...).
func plotClassCounts(ds *datasets.Dataset, title, outPath string) error {
	counts := ds.ClassCounts()
	values := make(plotter.Values, len(counts))
	ticks := make([]string, len(counts))
	for label, count := range counts {
		values[label] = float64(count)
		ticks[label] = strconv.Itoa(label)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "class"
	p.Y.Label.Text = "samples"

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return errors.Wrap(err, "creating bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	p.Add(bars, plotter.NewGrid())
	p.NominalX(ticks...)

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating output directory %q", dir)
		}
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return errors.Wrapf(err, "saving plot to %q", outPath)
	}
	return nil
}

func newPlotCmd(resolve settingsFunc) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "plot <train|test>",
		Short: "Plot the number of samples per class of a split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, split, ds, err := loadSplit(resolve, cmd, args)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s: %d samples (%s)", split, ds.Len(), s.Config)
			if err := plotClassCounts(ds, title, outPath); err != nil {
				return err
			}
			klog.Infof("Wrote %s", outPath)
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "classes.png", "output image")
	return cmd
}
