package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/redstone/datarecording"
	"github.com/sarchlab/redstone/tracing"
)

type traceOptions struct {
	kind     string
	ic       string
	location string
	limit    int
}

func newTraceCmd() *cobra.Command {
	opts := traceOptions{}

	cmd := &cobra.Command{
		Use:   "trace recording.sqlite3",
		Short: "Print the IC lifecycle stored by run --record.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTrace(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.kind, "kind", "",
		"Only show this lifecycle step, for example ICTrigger.")
	flags.StringVar(&opts.ic, "ic", "", "Only show this IC ID.")
	flags.StringVar(&opts.location, "at", "",
		"Only show the IC at this location, for example w@0,64,0.")
	flags.IntVar(&opts.limit, "limit", 0, "Show at most this many steps.")

	return cmd
}

func (o traceOptions) params() datarecording.QueryParams {
	var conds []string
	var args []any

	for _, f := range []struct{ column, value string }{
		{"Kind", o.kind},
		{"IC", o.ic},
		{"Location", o.location},
	} {
		if f.value != "" {
			conds = append(conds, f.column+" = ?")
			args = append(args, f.value)
		}
	}

	return datarecording.QueryParams{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: "Tick, rowid",
		Limit:   o.limit,
	}
}

func printTrace(cmd *cobra.Command, path string, opts traceOptions) error {
	// Opening a missing file would create an empty database.
	if _, err := os.Stat(path); err != nil {
		return err
	}

	reader := datarecording.NewReader(path)
	defer reader.Close()

	reader.MapTable(tracing.LifecycleTable, tracing.LifecycleRow{})

	rows, total, err := reader.Query(context.Background(),
		tracing.LifecycleTable, opts.params())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tKIND\tLOCATION\tIC\tDETAIL")

	for _, r := range rows {
		row := r.(*tracing.LifecycleRow)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			row.Tick, row.Kind, row.Location, row.IC, row.Detail)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	cyan.Fprintf(out, "%d of %d steps\n", len(rows), total)

	return nil
}
