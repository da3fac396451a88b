package minimap

import (
	"fmt"
	"image"
	"io"

	"git.sr.ht/~sbinet/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/layout"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// PaintOptions style the rendered overview.
type PaintOptions struct {
	Background      string
	DefaultColor    string
	IndicatorFill   string // drawn at IndicatorAlpha
	IndicatorStroke string
	IndicatorAlpha  float64
	MinVisibleWidth float64
	// Ticks, when set, are drawn as year marks along the top edge.
	Ticks []layout.YearLabel
	// TickScale converts tick X (content pixels) to minimap pixels.
	TickScale float64
}

// DefaultPaintOptions returns a dark theme close to the terminal UI.
func DefaultPaintOptions() PaintOptions {
	return PaintOptions{
		Background:      "#1e1e2e",
		DefaultColor:    "#6c757d",
		IndicatorFill:   "#ffffff",
		IndicatorStroke: "#ffffff",
		IndicatorAlpha:  0.18,
		MinVisibleWidth: 4,
	}
}

// Paint renders a projection to an image.
func Paint(p Projection, opts PaintOptions) (image.Image, error) {
	dc, err := paint(p, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders a projection and encodes it as PNG.
func WritePNG(w io.Writer, p Projection, opts PaintOptions) error {
	dc, err := paint(p, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func paint(p Projection, opts PaintOptions) (*gg.Context, error) {
	width, height := int(p.Size.Width), int(p.Size.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("minimap size %dx%d: must be positive", width, height)
	}

	dc := gg.NewContext(width, height)
	if opts.Background != "" {
		dc.SetHexColor(opts.Background)
		dc.Clear()
	}

	for _, b := range p.Bars {
		setFill(dc, b.Fill, b.X, b.Width, opts.DefaultColor)
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		dc.Fill()
	}

	if len(opts.Ticks) > 0 && opts.TickScale > 0 {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGBA(1, 1, 1, 0.6)
		for _, t := range opts.Ticks {
			x := t.X * opts.TickScale
			dc.DrawLine(x, 0, x, 4)
			dc.Stroke()
			dc.DrawStringAnchored(fmt.Sprintf("%d", t.Year), x+2, 2, 0, 1)
		}
	}

	ind := p.Indicator.Visible(opts.MinVisibleWidth)
	if ind.Width > 0 {
		c, err := colorful.Hex(opts.IndicatorFill)
		if err == nil {
			dc.SetRGBA(c.R, c.G, c.B, opts.IndicatorAlpha)
			dc.DrawRectangle(ind.Left, 0, ind.Width, p.Size.Height)
			dc.Fill()
		}
		dc.SetHexColor(opts.IndicatorStroke)
		dc.SetLineWidth(1)
		dc.DrawRectangle(ind.Left+0.5, 0.5, ind.Width-1, p.Size.Height-1)
		dc.Stroke()
	}
	return dc, nil
}

// setFill installs a solid color or a horizontal gradient across the bar.
func setFill(dc *gg.Context, f model.Fill, x, width float64, fallback string) {
	if f.Kind != model.FillGradient || len(f.Stops) == 0 {
		color := f.Primary()
		if color == "" {
			color = fallback
		}
		dc.SetHexColor(color)
		return
	}

	grad := gg.NewLinearGradient(x, 0, x+width, 0)
	for _, s := range f.Stops {
		c, err := colorful.Hex(s.Color)
		if err != nil {
			c, _ = colorful.Hex(fallback)
		}
		grad.AddColorStop(s.Offset, c)
	}
	dc.SetFillStyle(grad)
}
