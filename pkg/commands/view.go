package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/ui"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/watcher"
)

// ViewOptions configure the interactive view.
type ViewOptions struct {
	DataOptions
	Watch bool
}

func addView(topLevel *cobra.Command, g *GlobalOptions) {
	o := &ViewOptions{}
	cmd := &cobra.Command{
		Use:   "view EVENTS",
		Short: "Open the interactive timeline",
		Example: `
tlv view events.json
tlv view events.json --hide Law,Politics --watch
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), g, o, args[0])
		},
	}
	AddDataArgs(cmd, &o.DataOptions)
	cmd.Flags().BoolVar(&o.Watch, "watch", false,
		"Reload the events file when it changes.")

	topLevel.AddCommand(cmd)
}

func runView(ctx context.Context, g *GlobalOptions, o *ViewOptions, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	events, cfg, err := loadData(g, path)
	if err != nil {
		return err
	}
	if o.Scale > 0 {
		cfg.Zoom.DefaultYearWidth = o.Scale
	}

	tl := timeline.New(events, cfg)
	if err := tl.Visibility().ApplyQuery(o.HideQuery()); err != nil {
		return err
	}

	opts := ui.Options{}
	if o.Watch {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()

		w, err := watcher.NewFileWatcher(path, 0)
		if err != nil {
			return err
		}
		if err := w.Start(wctx); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Close()

		opts.Changes = w.Changes()
		opts.Reload = func() ([]model.Event, error) {
			return loader.LoadEvents(path)
		}
	}

	debug.Log("view: %d events from %s, watch=%v", len(events), path, o.Watch)
	p := tea.NewProgram(ui.NewModel(tl, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running timeline view: %w", err)
	}
	return nil
}
