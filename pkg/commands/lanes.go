package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/export"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
)

const titleColWidth = 40

func addLanes(topLevel *cobra.Command, g *GlobalOptions) {
	o := &DataOptions{}
	cmd := &cobra.Command{
		Use:   "lanes EVENTS",
		Short: "Print the computed lane layout as a table",
		Example: `
tlv lanes events.json
tlv lanes events.json --scale 10 --hide Society
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, cfg, err := loadData(g, args[0])
			if err != nil {
				return err
			}
			snap, err := export.NewLiveSource(events, cfg).Snapshot(o.Params(terminalWidth(cfg)))
			if err != nil {
				return err
			}
			printLanes(cmd.OutOrStdout(), snap, cfg.Lanes.Capacity)
			return nil
		},
	}
	AddDataArgs(cmd, o)

	topLevel.AddCommand(cmd)
}

// terminalWidth is the stdout width in layout pixels, or 0 when stdout is
// not a terminal.
func terminalWidth(cfg config.Config) float64 {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return 0
	}
	return float64(cols) * cfg.Terminal.CellWidth
}

func printLanes(out io.Writer, s timeline.Snapshot, capacity int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = titleColWidth
	tbl.AddRow("ID", "TITLE", "YEARS", "LANE", "LEFT", "WIDTH")
	for _, b := range s.Blocks {
		p := b.Position
		lane := fmt.Sprint(p.LaneIndex)
		if b.Degraded {
			lane += "*"
		}
		tbl.AddRow(p.EventID, b.Title,
			fmt.Sprintf("%d-%d", p.StartYear, p.EndYear),
			lane,
			fmt.Sprintf("%.1f", p.Left),
			fmt.Sprintf("%.1f", p.Width))
	}
	fmt.Fprintln(out, tbl)

	st := layout.Stats(s.Layout, capacity)
	active := min(s.Layout.ActiveLaneCount, len(st.Counts))
	fmt.Fprintf(out, "\n%d events, %d active lanes, %.0f px at %g px/yr\n",
		len(s.Blocks), s.Layout.ActiveLaneCount, s.Layout.ContentWidth, s.Layout.Scale)
	fmt.Fprintf(out, "per lane %v  mean %.2f  stddev %.2f  base coverage %.0f%%\n",
		st.Counts[:active], st.Mean, st.StdDev, st.Coverage*100)
	if st.Degraded > 0 {
		fmt.Fprintf(out, "%d events (*) did not fit any lane\n", st.Degraded)
	}
	if len(s.Hidden) > 0 {
		fmt.Fprintf(out, "hidden: %v\n", s.Hidden)
	}
}
