package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/minimap"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
)

// Bundle file names.
const (
	SVGFile     = "timeline.svg"
	MinimapFile = "minimap.png"
	LayoutFile  = "layout.json"
	IndexFile   = "index.html"
)

// BundleOptions controls WriteBundle.
type BundleOptions struct {
	SVG     SVGOptions
	Minimap minimap.PaintOptions
	Title   string
}

// DefaultBundleOptions returns stock styling.
func DefaultBundleOptions() BundleOptions {
	return BundleOptions{
		SVG:     DefaultSVGOptions(),
		Minimap: minimap.DefaultPaintOptions(),
		Title:   "Timeline",
	}
}

// WriteBundle renders the snapshot into dir, writing every artifact
// concurrently. It returns the paths written.
func WriteBundle(ctx context.Context, dir string, s timeline.Snapshot, opts BundleOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bundle dir: %w", err)
	}

	files := []string{SVGFile, MinimapFile, LayoutFile, IndexFile}
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderArtifact(name, s, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", name, err)
			}
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			debug.Log("export: wrote %s (%d bytes)", path, len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, name := range files {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func renderArtifact(name string, s timeline.Snapshot, opts BundleOptions) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch name {
	case SVGFile:
		err = WriteSVG(&buf, s, opts.SVG)
	case MinimapFile:
		err = WritePNG(&buf, s, opts.Minimap)
	case LayoutFile:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
	case IndexFile:
		err = writeIndex(&buf, s, opts.Title)
	default:
		err = fmt.Errorf("unknown artifact %q", name)
	}
	return buf.Bytes(), err
}

// WritePNG paints the snapshot's minimap, with year ticks, as PNG.
func WritePNG(w io.Writer, s timeline.Snapshot, opts minimap.PaintOptions) error {
	if s.Layout.ContentWidth > 0 && opts.Ticks == nil {
		opts.Ticks = thinLabels(s.Labels, s.Layout.ContentWidth, s.Minimap.Size.Width)
		opts.TickScale = s.Minimap.Size.Width / s.Layout.ContentWidth
	}
	return minimap.WritePNG(w, s.Minimap, opts)
}

// thinLabels keeps ticks at least 40 minimap pixels apart.
func thinLabels(labels []layout.YearLabel, contentWidth, minimapWidth float64) []layout.YearLabel {
	const minGap = 40
	scale := minimapWidth / contentWidth
	var out []layout.YearLabel
	last := -minGap * 2.0
	for _, l := range labels {
		x := l.X * scale
		if x-last < minGap {
			continue
		}
		out = append(out, l)
		last = x
	}
	return out
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #1e1e2e; color: #cdd6f4; font-family: sans-serif; margin: 0; }
header { padding: 12px 16px; }
.cat { display: inline-block; padding: 2px 8px; margin-right: 6px; border-radius: 3px; color: #fff; }
.cat.hidden { opacity: .35; text-decoration: line-through; }
.scroll { overflow-x: auto; }
#minimap { display: block; margin: 8px 16px; max-width: calc(100% - 32px); }
</style>
</head>
<body>
<header>
<h1>{{.Title}} ({{.Years.Min}}&ndash;{{.Years.Max}})</h1>
{{range .Categories}}<span class="cat{{if .Hidden}} hidden{{end}}" style="background: {{.Color}}">{{.Name}}</span>{{end}}
</header>
<img id="minimap" src="minimap.png" alt="overview">
<div class="scroll"><img src="timeline.svg" alt="timeline"></div>
</body>
</html>
`))

func writeIndex(buf *bytes.Buffer, s timeline.Snapshot, title string) error {
	return indexTemplate.Execute(buf, struct {
		Title string
		timeline.Snapshot
	}{Title: title, Snapshot: s})
}
