// Package pipeline runs the extract → layout → render passes for Trunnel.
//
// Both the one-shot render command and the interactive tuner go through a
// [Runner], so clamping, strict-mode checks, logging and artifact caching
// behave the same everywhere.
//
// # Stages
//
//  1. Extract: pair the category and measure columns into stacked items
//  2. Layout: derive geometry, scales and ribbon paths (a [layout.Plan])
//  3. Render: produce SVG, JSON, PNG and PDF artifacts from the plan
//
// Each stage can be run on its own:
//
//	runner := pipeline.NewRunner(cache, logger)
//	items, err := runner.Extract(ctx, opts)
//	plan, err := runner.Layout(ctx, items, opts)
//	artifacts, hit, err := runner.Render(ctx, plan, opts)
//
// Or all at once:
//
//	result, err := runner.Execute(ctx, opts)
//	svg := result.Artifacts["svg"]
//
// # Strict mode
//
// By default out-of-range settings are clamped and a chart with nothing to
// draw renders as an empty frame. With Options.Strict the runner fails with
// INVALID_CONFIG or DEGENERATE_DOMAIN instead.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trunnel/pkg/config"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
)

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the PNG zoom factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for one chart.
type Options struct {
	// Data columns, in chart order.
	Categories []extract.Category `json:"categories"`
	Measures   []float64          `json:"measures"`

	// Chart settings. The zero value is replaced by config.Default().
	Settings config.Settings `json:"settings"`

	// Viewport
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	NoAxes  bool     `json:"no_axes,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Strict turns clamping into INVALID_CONFIG and an empty chart into
	// DEGENERATE_DOMAIN.
	Strict bool `json:"strict,omitempty"`

	// Refresh bypasses cached conversions.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Items     extract.Items
	Plan      layout.Plan
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount   int
	LeafCount   int
	RibbonCount int
	ExtractTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether every converted artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and checks the formats.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Settings == (config.Settings{}) {
		o.Settings = config.Default()
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Settings.Colours.Start == "" {
		o.Settings.Colours.Start = config.DefaultStartColour
	}
	if o.Settings.Colours.End == "" {
		o.Settings.Colours.End = config.DefaultEndColour
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Viewport returns the requested drawing surface.
func (o *Options) Viewport() layout.Viewport {
	return layout.Viewport{Width: o.Width, Height: o.Height}
}
