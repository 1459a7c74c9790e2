package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/trunnel/pkg/config"
	"github.com/matzehuels/trunnel/pkg/io"
	"github.com/matzehuels/trunnel/pkg/pipeline"
)

// chartFlags are the data, settings and viewport flags shared by every
// command that builds a chart. Setting flags override the settings file.
type chartFlags struct {
	settingsPath string
	strict       bool

	inputFormat    string
	categoryColumn string
	measureColumn  string

	width, height float64

	// overrides, applied only when the flag was given
	settings config.Settings
}

func newChartFlags() *chartFlags {
	return &chartFlags{
		width:    pipeline.DefaultWidth,
		height:   pipeline.DefaultHeight,
		settings: config.Default(),
	}
}

func (f *chartFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.settingsPath, "config", "c", "", "settings file (.toml, .yaml)")
	fs.BoolVar(&f.strict, "strict", false, "fail on out-of-range settings or an empty chart instead of clamping")

	fs.StringVar(&f.inputFormat, "input-format", "", "data format: csv, json, yaml (default: from extension)")
	fs.StringVar(&f.categoryColumn, "category-column", "", "CSV category column name (default: first column)")
	fs.StringVar(&f.measureColumn, "measure-column", "", "CSV measure column name (default: second column)")

	fs.Float64Var(&f.width, "width", f.width, "viewport width")
	fs.Float64Var(&f.height, "height", f.height, "viewport height")

	d := &f.settings.Dimensions
	fs.IntVarP(&d.LeavesCount, "leaves", "l", d.LeavesCount, "number of trailing items drawn as leaves")
	fs.Float64Var(&d.TrunkWidth, "trunk-width", d.TrunkWidth, "trunk width as a fraction of the chart width")
	fs.Float64Var(&d.TrunkHeight, "trunk-height", d.TrunkHeight, "trunk height as a fraction of the chart height")
	fs.Float64Var(&d.LeavesHeight, "leaves-height", d.LeavesHeight, "leaf spread as a fraction of the chart height")
	fs.Float64Var(&f.settings.LeftAxis.Width, "left-axis", f.settings.LeftAxis.Width, "left axis width")
	fs.Float64Var(&f.settings.RightAxis.Width, "right-axis", f.settings.RightAxis.Width, "right axis width")
	fs.Float64Var(&f.settings.TopAxis.Height, "top-axis", f.settings.TopAxis.Height, "top axis height")
	fs.StringVar(&f.settings.Colours.Start, "start-colour", f.settings.Colours.Start, "colour of the first ribbon")
	fs.StringVar(&f.settings.Colours.End, "end-colour", f.settings.Colours.End, "colour the ribbons fade towards")
}

// loadSettings reads the settings file, if any, and applies changed flags.
func (f *chartFlags) loadSettings(fs *pflag.FlagSet) (config.Settings, error) {
	s := config.Default()
	if f.settingsPath != "" {
		var err error
		s, err = config.Load(f.settingsPath, config.LoadOptions{Strict: f.strict})
		if err != nil {
			return config.Settings{}, err
		}
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"leaves", func() { s.Dimensions.LeavesCount = f.settings.Dimensions.LeavesCount }},
		{"trunk-width", func() { s.Dimensions.TrunkWidth = f.settings.Dimensions.TrunkWidth }},
		{"trunk-height", func() { s.Dimensions.TrunkHeight = f.settings.Dimensions.TrunkHeight }},
		{"leaves-height", func() { s.Dimensions.LeavesHeight = f.settings.Dimensions.LeavesHeight }},
		{"left-axis", func() { s.LeftAxis.Width = f.settings.LeftAxis.Width }},
		{"right-axis", func() { s.RightAxis.Width = f.settings.RightAxis.Width }},
		{"top-axis", func() { s.TopAxis.Height = f.settings.TopAxis.Height }},
		{"start-colour", func() { s.Colours.Start = f.settings.Colours.Start }},
		{"end-colour", func() { s.Colours.End = f.settings.Colours.End }},
	}
	for _, o := range overrides {
		if fs.Changed(o.flag) {
			o.apply()
		}
	}
	return s, nil
}

// options loads the data file and settings into pipeline options.
func (f *chartFlags) options(cmd *cobra.Command, input string) (pipeline.Options, error) {
	table, err := io.Import(input, io.Options{
		Format:         f.inputFormat,
		CategoryColumn: f.categoryColumn,
		MeasureColumn:  f.measureColumn,
	})
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("load data: %w", err)
	}
	s, err := f.loadSettings(cmd.Flags())
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Categories: table.Categories,
		Measures:   table.Measures,
		Settings:   s,
		Width:      f.width,
		Height:     f.height,
		Strict:     f.strict,
		Logger:     loggerFromContext(cmd.Context()),
	}, nil
}
