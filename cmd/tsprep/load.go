package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newLoadCmd(resolve settingsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "load <train|test>",
		Short: "Load a split, building its cache if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, split, ds, err := loadSplit(resolve, cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "split:   %s\n", split)
			fmt.Fprintf(out, "config:  %s\n", s.Config)
			fmt.Fprintf(out, "samples: %s\n", humanize.Comma(int64(ds.Len())))
			fmt.Fprintf(out, "shape:   %v\n", ds.Shape())
			if s.Loader.Cache != nil {
				path := s.Loader.Cache.Path(s.Config, split)
				if info, err := os.Stat(path); err == nil {
					fmt.Fprintf(out, "cache:   %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
				} else {
					fmt.Fprintf(out, "cache:   %s (not written)\n", path)
				}
			}
			return nil
		},
	}
}
