package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/smilecam/internal/capture"
)

var listMonitorsFn = capture.Monitors

func newMonitorsCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List the monitors accepted by compose --grab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitors, err := listMonitorsFn()
			if err != nil {
				return fmt.Errorf("failed to list monitors: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tNAME\tGEOMETRY\tPRIMARY")
			for _, m := range monitors {
				primary := ""
				if m.Primary {
					primary = "yes"
				}
				fmt.Fprintf(tw, "%d\t%s\t%dx%d+%d+%d\t%s\n", m.Index, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, primary)
			}
			return tw.Flush()
		},
	}
}
