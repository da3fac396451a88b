// Package config loads tlv settings from YAML, layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// EnvPath names an explicit config file, overriding the search path.
const EnvPath = "TLV_CONFIG"

// IntervalLevel selects the year-label spacing used while the year width is
// at most MaxWidth.
type IntervalLevel struct {
	MaxWidth float64 `yaml:"max_width"` // upper bound on pixels per year (inclusive)
	Interval int     `yaml:"interval"`  // label every N years
}

// Config is the complete tlv configuration. Every field has a default; a
// YAML file only needs to name what it overrides.
type Config struct {
	Zoom struct {
		DefaultYearWidth float64 `yaml:"default_year_width"` // initial pixels per year
		MinYearWidth     float64 `yaml:"min_year_width"`     // furthest zoom-out
		MaxYearWidth     float64 `yaml:"max_year_width"`     // furthest zoom-in
		ButtonStep       float64 `yaml:"button_step"`        // pixels per year added/removed by +/- buttons
		WheelSensitivity float64 `yaml:"wheel_sensitivity"`  // zoom factor per unit of wheel delta
		WheelMaxStep     float64 `yaml:"wheel_max_step"`     // cap on the factor contributed by one wheel event
		WheelQuietMS     int     `yaml:"wheel_quiet_ms"`     // gesture ends after this much wheel silence
	} `yaml:"zoom"`
	Lanes struct {
		Capacity    int     `yaml:"capacity"`      // maximum number of lanes
		Spacing     float64 `yaml:"spacing"`       // vertical distance between lanes in pixels
		EventHeight float64 `yaml:"event_height"`  // block height in pixels
		LayerHeight float64 `yaml:"layer_height"`  // height of the events layer in pixels
		EventInset  float64 `yaml:"event_inset"`   // gap subtracted from each block width
		MaxPushUp   float64 `yaml:"max_push_up"`   // cap on the unused-lane compression offset
		PushUpScale float64 `yaml:"push_up_scale"` // fraction of the compression offset applied
	} `yaml:"lanes"`
	Labels struct {
		MinEventLabelWidth float64         `yaml:"min_event_label_width"` // hide titles on narrower blocks
		CondensedThreshold float64         `yaml:"condensed_threshold"`   // condense year labels at or below this width
		Levels             []IntervalLevel `yaml:"levels"`
	} `yaml:"labels"`
	Minimap struct {
		Width             float64 `yaml:"width"`               // overview width in pixels
		Height            float64 `yaml:"height"`              // overview height in pixels
		MinIndicatorWidth float64 `yaml:"min_indicator_width"` // narrowest indicator a resize may produce
		MinVisibleWidth   float64 `yaml:"min_visible_width"`   // narrowest indicator ever drawn
		BarGap            float64 `yaml:"bar_gap"`             // vertical gap inside each lane row
		MinBarHeight      float64 `yaml:"min_bar_height"`
	} `yaml:"minimap"`
	Palette struct {
		Colors  []string `yaml:"colors"`
		Default string   `yaml:"default_color"` // used by events without categories
	} `yaml:"palette"`
	Terminal struct {
		CellWidth       float64 `yaml:"cell_width"`        // pixels represented by one terminal column
		FrameIntervalMS int     `yaml:"frame_interval_ms"` // animation frame period
		InitialRenderMS int     `yaml:"initial_render_ms"` // first paint is considered done after this delay
	} `yaml:"terminal"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config

	c.Zoom.DefaultYearWidth = 50
	c.Zoom.MinYearWidth = 28
	c.Zoom.MaxYearWidth = 200
	c.Zoom.ButtonStep = 20
	c.Zoom.WheelSensitivity = 0.0025
	c.Zoom.WheelMaxStep = 1.5
	c.Zoom.WheelQuietMS = 180

	c.Lanes.Capacity = 9
	c.Lanes.Spacing = 72
	c.Lanes.EventHeight = 30
	c.Lanes.LayerHeight = 800
	c.Lanes.EventInset = 10
	c.Lanes.MaxPushUp = 100
	c.Lanes.PushUpScale = 0.3

	c.Labels.MinEventLabelWidth = 100
	c.Labels.CondensedThreshold = 45
	c.Labels.Levels = []IntervalLevel{
		{MaxWidth: 40, Interval: 10}, // far zoomed out
		{MaxWidth: 90, Interval: 5},
		{MaxWidth: 130, Interval: 2},
		{MaxWidth: math.Inf(1), Interval: 1},
	}

	c.Minimap.Width = 1200
	c.Minimap.Height = 60
	c.Minimap.MinIndicatorWidth = 12
	c.Minimap.MinVisibleWidth = 4
	c.Minimap.BarGap = 4
	c.Minimap.MinBarHeight = 2

	c.Palette.Colors = []string{
		"#AE563C",
		"#305C7A",
		"#E7B75C",
		"#C6CB74",
		"#5e72c7", // blue
		"#764ba2", // purple
		"#993b6f", // pink
		"#e74c3c", // red
		"#f39c12", // orange
		"#2ecc71", // green
		"#1abc9c", // teal
		"#3498db", // light blue
		"#9b59b6", // violet
		"#e67e22", // dark orange
	}
	c.Palette.Default = "#6c757d"

	c.Terminal.CellWidth = 10
	c.Terminal.FrameIntervalMS = 16
	c.Terminal.InitialRenderMS = 100

	return c
}

// Load reads a YAML file and overlays it onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault resolves the config file from TLV_CONFIG, ./.tlv.yaml or the
// user config directory, returning defaults when none exists.
func LoadDefault() (Config, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return Load(p)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// SearchPaths lists the locations LoadDefault checks, in order.
func SearchPaths() []string {
	paths := []string{".tlv.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "tlv", "config.yaml"))
	}
	return paths
}

// Validate checks ranges that the layout engine relies on.
func (c Config) Validate() error {
	switch {
	case c.Zoom.MinYearWidth <= 0:
		return fmt.Errorf("%w: zoom.min_year_width must be positive", ErrInvalid)
	case c.Zoom.MaxYearWidth < c.Zoom.MinYearWidth:
		return fmt.Errorf("%w: zoom.max_year_width (%g) below min_year_width (%g)", ErrInvalid, c.Zoom.MaxYearWidth, c.Zoom.MinYearWidth)
	case c.Zoom.WheelQuietMS < 0:
		return fmt.Errorf("%w: zoom.wheel_quiet_ms cannot be negative", ErrInvalid)
	case c.Lanes.Capacity < 1:
		return fmt.Errorf("%w: lanes.capacity must be at least 1", ErrInvalid)
	case c.Lanes.EventInset < 0:
		return fmt.Errorf("%w: lanes.event_inset cannot be negative", ErrInvalid)
	case c.Minimap.Width <= 0 || c.Minimap.Height <= 0:
		return fmt.Errorf("%w: minimap dimensions must be positive", ErrInvalid)
	case c.Terminal.CellWidth <= 0:
		return fmt.Errorf("%w: terminal.cell_width must be positive", ErrInvalid)
	case len(c.Palette.Colors) == 0:
		return fmt.Errorf("%w: palette.colors cannot be empty", ErrInvalid)
	}
	for i, lvl := range c.Labels.Levels {
		if lvl.Interval < 1 {
			return fmt.Errorf("%w: labels.levels[%d].interval must be at least 1", ErrInvalid, i)
		}
	}
	return nil
}

// WheelQuiet returns the wheel gesture quiet period.
func (c Config) WheelQuiet() time.Duration {
	return time.Duration(c.Zoom.WheelQuietMS) * time.Millisecond
}

// FrameInterval returns the animation frame period.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Terminal.FrameIntervalMS) * time.Millisecond
}

// InitialRenderDelay returns how long the first paint suppresses fade-ins.
func (c Config) InitialRenderDelay() time.Duration {
	return time.Duration(c.Terminal.InitialRenderMS) * time.Millisecond
}
