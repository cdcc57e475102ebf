package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Noofbiz/trafficsigns/datasets"
)

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the class labels and names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for i, name := range datasets.ClassNames() {
				flip := ""
				if datasets.IsFlippable(datasets.Label(i)) {
					flip = " (mirrorable)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s%s\n", i, name, flip)
			}
		},
	}
}
