package layout

import (
	"fmt"
	"math"
)

// Default layout settings.
const (
	DefaultLeftAxisWidth        = 40.0
	DefaultRightAxisWidth       = 80.0
	DefaultTopAxisHeight        = 30.0
	DefaultTrunkHeightFraction  = 0.5
	DefaultTrunkWidthFraction   = 0.5
	DefaultLeavesHeightFraction = 0.8
)

// Viewport is the pixel size of the drawing surface.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Config holds the layout settings. Insets are pixels reserved for axes;
// fractions size the trunk and the leaf spread relative to the chart area.
type Config struct {
	LeftAxisWidth        float64 `json:"left_axis_width"`
	RightAxisWidth       float64 `json:"right_axis_width"`
	TopAxisHeight        float64 `json:"top_axis_height"`
	TrunkHeightFraction  float64 `json:"trunk_height_fraction"`
	TrunkWidthFraction   float64 `json:"trunk_width_fraction"`
	LeavesHeightFraction float64 `json:"leaves_height_fraction"`
}

// DefaultConfig returns the default layout settings.
func DefaultConfig() Config {
	return Config{
		LeftAxisWidth:        DefaultLeftAxisWidth,
		RightAxisWidth:       DefaultRightAxisWidth,
		TopAxisHeight:        DefaultTopAxisHeight,
		TrunkHeightFraction:  DefaultTrunkHeightFraction,
		TrunkWidthFraction:   DefaultTrunkWidthFraction,
		LeavesHeightFraction: DefaultLeavesHeightFraction,
	}
}

// Adjustment records one setting that Clamp changed.
type Adjustment struct {
	Field string
	From  float64
	To    float64
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s %v -> %v", a.Field, a.From, a.To)
}

// Clamp returns the effective config: non-finite values fall back to their
// defaults, fractions are bounded to [0, 1] and negative insets become 0.
// Every change is listed in the returned adjustments.
func (c Config) Clamp() (Config, []Adjustment) {
	d := DefaultConfig()
	var adj []Adjustment
	fix := func(field string, v *float64, def, lo, hi float64) {
		from := *v
		switch {
		case math.IsNaN(from) || math.IsInf(from, 0):
			*v = def
		case from < lo:
			*v = lo
		case from > hi:
			*v = hi
		default:
			return
		}
		adj = append(adj, Adjustment{Field: field, From: from, To: *v})
	}

	inf := math.Inf(1)
	fix("left_axis_width", &c.LeftAxisWidth, d.LeftAxisWidth, 0, inf)
	fix("right_axis_width", &c.RightAxisWidth, d.RightAxisWidth, 0, inf)
	fix("top_axis_height", &c.TopAxisHeight, d.TopAxisHeight, 0, inf)
	fix("trunk_height_fraction", &c.TrunkHeightFraction, d.TrunkHeightFraction, 0, 1)
	fix("trunk_width_fraction", &c.TrunkWidthFraction, d.TrunkWidthFraction, 0, 1)
	fix("leaves_height_fraction", &c.LeavesHeightFraction, d.LeavesHeightFraction, 0, 1)
	return c, adj
}

// Clamp returns a viewport with negative or non-finite sizes set to 0.
func (v Viewport) Clamp() Viewport {
	return Viewport{Width: nonNegative(v.Width), Height: nonNegative(v.Height)}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
