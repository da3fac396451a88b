package commands

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/categories"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/export"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// DataOptions select what part of the data set a command looks at.
type DataOptions struct {
	Hide  []string
	Scale float64
}

// AddDataArgs registers --hide and --scale on cmd.
func AddDataArgs(cmd *cobra.Command, o *DataOptions) {
	cmd.Flags().StringSliceVar(&o.Hide, "hide", nil,
		"Categories to hide, comma separated.")
	cmd.Flags().Float64Var(&o.Scale, "scale", 0,
		"Pixels per year (default: the configured zoom).")
}

// HideQuery encodes the hidden categories the way the view restores them
// from a URL.
func (o *DataOptions) HideQuery() string {
	var names []string
	for _, h := range o.Hide {
		if h = strings.TrimSpace(h); h != "" {
			names = append(names, h)
		}
	}
	if len(names) == 0 {
		return ""
	}
	q := url.Values{}
	q.Set(categories.HideParam, strings.Join(names, ","))
	return q.Encode()
}

// Params converts the options into snapshot parameters.
func (o *DataOptions) Params(width float64) export.SnapshotParams {
	return export.SnapshotParams{
		Scale:     o.Scale,
		Width:     width,
		HideQuery: o.HideQuery(),
	}
}

// loadData reads the config and the event file.
func loadData(g *GlobalOptions, path string) ([]model.Event, config.Config, error) {
	cfg, err := g.Config()
	if err != nil {
		return nil, cfg, err
	}
	events, err := loader.LoadEvents(path)
	if err != nil {
		return nil, cfg, err
	}
	return events, cfg, nil
}
