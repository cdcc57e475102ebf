// Command tsprep prepares traffic-sign datasets: it loads a split through the
// cache, and reports its class balance and pixel statistics.
//
// Usage:
//
//	tsprep load train --data-root ./data --width 32 --height 32 --color color
//	tsprep stats test
//	tsprep plot train --out classes.png
//	tsprep classes
//
// Every flag can also be set in a YAML file given with --config, or with a
// TSPREP_<KEY> environment variable (e.g. TSPREP_CACHE_DIR).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tsprep: %+v\n", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func newRootCmd() *cobra.Command {
	var configFile string
	rootCmd := &cobra.Command{
		Use:           "tsprep",
		Short:         "Load, cache and inspect traffic-sign datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	registerDatasetFlags(rootCmd.PersistentFlags())

	// klog flags (-v, -logtostderr, ...).
	goFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(goFlags)

	resolve := func(cmd *cobra.Command) (*settings, error) {
		v, err := newViper(configFile, cmd.Flags())
		if err != nil {
			return nil, err
		}
		return configFromViper(v)
	}
	rootCmd.AddCommand(
		newLoadCmd(resolve),
		newStatsCmd(resolve),
		newPlotCmd(resolve),
		newClassesCmd(),
	)
	return rootCmd
}
