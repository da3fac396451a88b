package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/export"
)

// ExportOptions configure a bundle export.
type ExportOptions struct {
	DataOptions
	Out   string
	Width float64
	Title string
}

func addExport(topLevel *cobra.Command, g *GlobalOptions) {
	o := &ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export EVENTS",
		Short: "Write the timeline as SVG, PNG, JSON and HTML",
		Example: `
tlv export events.json --out site
tlv export events.json --out site --scale 20 --hide Law
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			files, err := runExport(ctx, g, o, args[0])
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	AddDataArgs(cmd, &o.DataOptions)
	cmd.Flags().StringVarP(&o.Out, "out", "o", "timeline", "Output directory.")
	cmd.Flags().Float64Var(&o.Width, "width", 0,
		"Viewport width in pixels for the minimap indicator (default: the minimap width).")
	cmd.Flags().StringVar(&o.Title, "title", "", "Page title for index.html.")

	topLevel.AddCommand(cmd)
}

func runExport(ctx context.Context, g *GlobalOptions, o *ExportOptions, path string) ([]string, error) {
	events, cfg, err := loadData(g, path)
	if err != nil {
		return nil, err
	}
	snap, err := export.NewLiveSource(events, cfg).Snapshot(o.Params(o.Width))
	if err != nil {
		return nil, err
	}

	opts := export.DefaultBundleOptions()
	if o.Title != "" {
		opts.Title = o.Title
	}
	return export.WriteBundle(ctx, o.Out, snap, opts)
}
