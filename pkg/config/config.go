// Package config holds the user-facing chart settings.
//
// Settings mirror the formatting panes of the chart: trunk and leaf
// dimensions, the three axis insets and the ribbon colours. They load from
// TOML or YAML files, convert to a [layout.Config] for the engine, and
// advertise the slider ranges a settings UI should offer via [ValidRanges].
//
//	s, err := config.Load("trunnel.toml", config.LoadOptions{Strict: true})
//	cfg := s.LayoutConfig()
package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/trunnel/pkg/errors"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/colour"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
)

// Default colours of the first and last ribbon.
const (
	DefaultStartColour = "#118DFF"
	DefaultEndColour   = "#E66C37"
)

// Settings is the complete set of chart options.
type Settings struct {
	Dimensions Dimensions `toml:"dimensions" yaml:"dimensions" json:"dimensions"`
	LeftAxis   AxisWidth  `toml:"left_axis" yaml:"left_axis" json:"left_axis"`
	RightAxis  AxisWidth  `toml:"right_axis" yaml:"right_axis" json:"right_axis"`
	TopAxis    AxisHeight `toml:"top_axis" yaml:"top_axis" json:"top_axis"`
	Colours    Colours    `toml:"colours" yaml:"colours" json:"colours"`
}

// Dimensions controls trunk size and the leaf split.
type Dimensions struct {
	TrunkWidth   float64 `toml:"trunk_width" yaml:"trunk_width" json:"trunk_width"`
	TrunkHeight  float64 `toml:"trunk_height" yaml:"trunk_height" json:"trunk_height"`
	LeavesHeight float64 `toml:"leaves_height" yaml:"leaves_height" json:"leaves_height"`
	LeavesCount  int     `toml:"leaves_count" yaml:"leaves_count" json:"leaves_count"`
}

// AxisWidth is the horizontal inset reserved for a vertical axis.
type AxisWidth struct {
	Width float64 `toml:"width" yaml:"width" json:"width"`
}

// AxisHeight is the vertical inset reserved for a horizontal axis.
type AxisHeight struct {
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// Colours are the hex colours of the first and last ribbon.
type Colours struct {
	Start string `toml:"start" yaml:"start" json:"start"`
	End   string `toml:"end" yaml:"end" json:"end"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{
		Dimensions: Dimensions{
			TrunkWidth:   layout.DefaultTrunkWidthFraction,
			TrunkHeight:  layout.DefaultTrunkHeightFraction,
			LeavesHeight: layout.DefaultLeavesHeightFraction,
		},
		LeftAxis:  AxisWidth{Width: layout.DefaultLeftAxisWidth},
		RightAxis: AxisWidth{Width: layout.DefaultRightAxisWidth},
		TopAxis:   AxisHeight{Height: layout.DefaultTopAxisHeight},
		Colours:   Colours{Start: DefaultStartColour, End: DefaultEndColour},
	}
}

// LayoutConfig converts the settings into engine configuration.
func (s Settings) LayoutConfig() layout.Config {
	return layout.Config{
		LeftAxisWidth:        s.LeftAxis.Width,
		RightAxisWidth:       s.RightAxis.Width,
		TopAxisHeight:        s.TopAxis.Height,
		TrunkHeightFraction:  s.Dimensions.TrunkHeight,
		TrunkWidthFraction:   s.Dimensions.TrunkWidth,
		LeavesHeightFraction: s.Dimensions.LeavesHeight,
	}
}

// LoadOptions controls how settings files are decoded.
type LoadOptions struct {
	// Strict rejects keys that do not map to a setting.
	Strict bool
}

// Load reads a settings file. The format is chosen by extension: .toml,
// .yaml or .yml. Keys absent from the file keep their defaults.
func Load(path string, opts LoadOptions) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(data, opts)
	case ".yaml", ".yml":
		return DecodeYAML(data, opts)
	default:
		return Settings{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported settings file %s (want .toml, .yaml or .yml)", path)
	}
}

// DecodeTOML decodes TOML settings on top of [Default].
func DecodeTOML(data []byte, opts LoadOptions) (Settings, error) {
	s := Default()
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML settings")
	}
	if undecoded := md.Undecoded(); opts.Strict && len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, errors.New(errors.ErrCodeInvalidConfig, "unknown settings: %s", strings.Join(keys, ", "))
	}
	return s, nil
}

// DecodeYAML decodes YAML settings on top of [Default].
func DecodeYAML(data []byte, opts LoadOptions) (Settings, error) {
	s := Default()
	var decodeOpts []yaml.DecodeOption
	if opts.Strict {
		decodeOpts = append(decodeOpts, yaml.DisallowUnknownField())
	}
	if err := yaml.UnmarshalWithOptions(data, &s, decodeOpts...); err != nil {
		code := errors.ErrCodeInvalidFormat
		if opts.Strict && strings.Contains(err.Error(), "unknown field") {
			code = errors.ErrCodeInvalidConfig
		}
		return Settings{}, errors.Wrap(code, err, "decode YAML settings")
	}
	return s, nil
}

// WriteTOML encodes s as TOML.
func (s Settings) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Save writes s to path in the format implied by its extension.
func (s Settings) Save(path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := s.WriteTOML(&buf); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
	case ".yaml", ".yml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		buf.Write(data)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported settings file %s (want .toml, .yaml or .yml)", path)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Validate checks every setting against [ValidRanges] for itemCount items
// and the colours against the hex syntax. All violations are reported in a
// single INVALID_CONFIG error.
func (s Settings) Validate(itemCount int) error {
	var problems []string
	for _, r := range ValidRanges(itemCount) {
		v := r.Get(s)
		if math.IsNaN(v) || v < r.Min || v > r.Max {
			problems = append(problems, fmt.Sprintf("%s = %s outside [%s, %s]", r.Name, r.Format(v), r.Format(r.Min), r.Format(r.Max)))
		}
	}
	insets := []struct {
		name  string
		value float64
	}{
		{"left_axis.width", s.LeftAxis.Width},
		{"right_axis.width", s.RightAxis.Width},
		{"top_axis.height", s.TopAxis.Height},
	}
	for _, in := range insets {
		if math.IsNaN(in.value) || math.IsInf(in.value, 0) || in.value < 0 {
			problems = append(problems, fmt.Sprintf("%s = %v must be a non-negative number", in.name, in.value))
		}
	}
	if !colour.Valid(s.Colours.Start) {
		problems = append(problems, fmt.Sprintf("colours.start = %q is not a hex colour", s.Colours.Start))
	}
	if !colour.Valid(s.Colours.End) {
		problems = append(problems, fmt.Sprintf("colours.end = %q is not a hex colour", s.Colours.End))
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(problems, "; "))
}
