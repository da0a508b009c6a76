package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/sarchlab/redstone/simulation"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

func messagePrinter(w io.Writer) simulation.Printer {
	return func(msg simulation.Message) {
		prefix := fmt.Sprintf("[%s] ", msg.Actor)

		switch {
		case strings.HasPrefix(msg.Text, "Warning"):
			yellow.Fprintln(w, prefix+msg.Text)
		case msg.Error:
			red.Fprintln(w, prefix+msg.Text)
		default:
			green.Fprintln(w, prefix+msg.Text)
		}
	}
}

func printReport(w io.Writer, r simulation.Report) {
	cyan.Fprintf(w, "\nTick %d\n", r.Tick)

	if len(r.ICs) == 0 {
		fmt.Fprintln(w, "No ICs are loaded.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LOCATION\tID\tTITLE\tSELF TRIGGERED")

		for _, s := range r.ICs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n",
				s.Location, s.ID, s.Title, s.SelfTriggered)
		}

		tw.Flush()
	}

	if len(r.Outputs) > 0 {
		cyan.Fprintln(w, "\nOutputs")

		for _, o := range r.Outputs {
			state := red.Sprint("off")
			if o.On {
				state = green.Sprint("on")
			}

			fmt.Fprintf(w, "  %s %s\n", o.Location, state)
		}
	}

	if r.Flips > 0 {
		fmt.Fprintf(w, "\nBridges flipped %d times\n", r.Flips)
	}

	if len(r.Counts) > 0 {
		cyan.Fprintln(w, "\nLifecycle")

		kinds := make([]string, 0, len(r.Counts))
		for k := range r.Counts {
			kinds = append(kinds, k)
		}

		sort.Strings(kinds)

		for _, k := range kinds {
			fmt.Fprintf(w, "  %-10s %d\n", k, r.Counts[k])
		}
	}
}
