package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/export"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/watcher"
)

// ServeOptions configure the preview server.
type ServeOptions struct {
	Bundle  string
	Port    int
	Watch   bool
	NoOpen  bool
	Rebuild bool
}

func addServe(topLevel *cobra.Command, g *GlobalOptions) {
	o := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve EVENTS",
		Short: "Serve an exported bundle and a live layout API",
		Example: `
tlv serve events.json --bundle site
tlv serve events.json --bundle site --port 9001 --watch --rebuild
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runServe(ctx, g, o, args[0])
		},
	}
	cmd.Flags().StringVar(&o.Bundle, "bundle", "timeline", "Directory holding an exported bundle.")
	cmd.Flags().IntVar(&o.Port, "port", 0, "Port to listen on (default: first free port from 9000).")
	cmd.Flags().BoolVar(&o.Watch, "watch", false, "Reload the events file when it changes.")
	cmd.Flags().BoolVar(&o.NoOpen, "no-open", false, "Do not open a browser.")
	cmd.Flags().BoolVar(&o.Rebuild, "rebuild", false, "Export the bundle before serving and after every reload.")

	topLevel.AddCommand(cmd)
}

func runServe(ctx context.Context, g *GlobalOptions, o *ServeOptions, path string) error {
	events, cfg, err := loadData(g, path)
	if err != nil {
		return err
	}
	live := export.NewLiveSource(events, cfg)

	rebuild := func() error {
		snap, err := live.Snapshot(export.SnapshotParams{})
		if err != nil {
			return err
		}
		_, err = export.WriteBundle(ctx, o.Bundle, snap, export.DefaultBundleOptions())
		return err
	}
	if o.Rebuild {
		if err := rebuild(); err != nil {
			return fmt.Errorf("export bundle: %w", err)
		}
	}

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

		go func() {
			for {
				select {
				case <-wctx.Done():
					return
				case <-w.Changes():
				}
				events, err := loader.LoadEvents(path)
				if err != nil {
					debug.Log("serve: reload %s: %v", path, err)
					continue
				}
				live.SetEvents(events)
				if o.Rebuild {
					if err := rebuild(); err != nil {
						debug.Log("serve: rebuild: %v", err)
					}
				}
				debug.Log("serve: reloaded %d events", len(events))
			}
		}()
	}

	return export.StartPreviewWithConfig(export.PreviewConfig{
		BundlePath:  o.Bundle,
		Port:        o.Port,
		OpenBrowser: !o.NoOpen,
		Live:        live,
	})
}
