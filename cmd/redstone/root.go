package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "redstone",
		Short: "Redstone runs integrated circuit scenarios headlessly.",
		Long: `Redstone runs integrated circuit scenarios on a simulated ` +
			`world. A scenario lists the blocks of the world and what the ` +
			`actors do at which tick.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output.")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newICsCmd())
	rootCmd.AddCommand(newTraceCmd())

	return rootCmd
}
