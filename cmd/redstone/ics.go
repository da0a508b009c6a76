package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/ic/gates"
)

func newICsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ics",
		Short: "List the ICs that can be placed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := ic.NewRegistry()
			if err := gates.Register(registry); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFAMILIES\tALIASES\tNAMESPACE\tRESTRICTED")

			for _, id := range registry.IDs() {
				reg, _ := registry.Get(id)

				families := make([]string, 0, len(reg.Families))
				for _, f := range reg.Families {
					families = append(families, f.Name())
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n",
					id,
					strings.Join(families, ","),
					strings.Join(registry.Aliases(id), ","),
					reg.Namespace(),
					reg.IsRestricted())
			}

			return tw.Flush()
		},
	}
}
