package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trunnel/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file, base path for several formats, or "-" for stdout
	formats []string // svg, json, png, pdf
	noAxes  bool     // omit the value, branch and leaf axes
	scale   float64  // PNG zoom
	noCache bool     // disable the conversion cache
	refresh bool     // ignore cached conversions but keep storing
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	flags := newChartFlags()
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [data file]",
		Short: "Render a trunnel chart to SVG, PNG, PDF or JSON",
		Long: `Render a trunnel chart from a data file.

The data file holds one category column and one measure column (CSV with a
header row, or JSON/YAML with a "rows" array). Rows keep their order: the
last --leaves rows become leaves, everything before them feeds the trunk.
Use "-" to read from standard input together with --input-format.

PNG and PDF conversion needs rsvg-convert and is cached locally.`,
		Example: `  trunnel render funnel.csv --leaves 2
  trunnel render funnel.csv -f svg,png -o out/funnel
  trunnel render data.json -c trunnel.toml --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			popts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], popts, opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.noAxes, "no-axes", false, "omit axes")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG zoom factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-convert even if a cached artifact exists")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, popts pipeline.Options, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts.Formats = opts.formats
	popts.NoAxes = opts.noAxes
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh

	var spin *Spinner
	if needsConversion(opts.formats) {
		spin = newSpinner(ctx, os.Stderr, "Converting with rsvg-convert...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		if len(opts.formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.formats))
		}
		_, err := c.out.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	prog.done("Rendered chart")
	printSuccess("Rendered %d items (%d branches, %d leaves)", result.Items.ItemCount, result.Items.BranchCount, result.Items.LeafCount)
	for _, d := range result.Plan.Degenerate {
		printWarning("degenerate chart: %s", d)
	}
	printStats(result.Stats.RibbonCount, result.CacheInfo.RenderHit && needsConversion(opts.formats))
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	return nil
}

func needsConversion(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

// basePath derives the base output path from the output and input paths.
// An empty output strips the input's extension; a known format extension on
// output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format with an explicit
// output uses that path verbatim.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
