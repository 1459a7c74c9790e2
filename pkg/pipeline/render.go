package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/trunnel/pkg/cache"
	"github.com/matzehuels/trunnel/pkg/observability"
	"github.com/matzehuels/trunnel/pkg/render"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/sink"
)

// Render generates artifacts for every requested format. PNG and PDF
// conversions go through the runner's cache; hit reports whether all of
// them were served from it.
func (r *Runner) Render(ctx context.Context, plan layout.Plan, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, plan, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, plan layout.Plan, opts Options) (map[string][]byte, bool, error) {
	svg, err := sink.RenderSVG(plan, svgOptions(opts)...)
	if err != nil {
		return nil, false, fmt.Errorf("render svg: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	converted, hits := 0, 0
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatSVG:
			data = svg
		case FormatJSON:
			data, err = sink.RenderJSON(plan, sink.WithJSONColours(opts.Settings.Colours.Start, opts.Settings.Colours.End))
		case FormatPNG, FormatPDF:
			var hit bool
			data, hit, err = r.convert(ctx, svg, render.Format(format), opts)
			converted++
			if hit {
				hits++
			}
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, converted > 0 && hits == converted, nil
}

// convert rasterises svg, reusing a cached conversion of identical input.
func (r *Runner) convert(ctx context.Context, svg []byte, format render.Format, opts Options) ([]byte, bool, error) {
	key := cache.ArtifactKey(svg, string(format), render.ConvertArgs(format, opts.Scale)...)
	c := r.Cache
	if opts.Refresh {
		c = cache.NewNullCache()
	}

	data, hit, err := cache.GetOrCompute(ctx, c, key, cache.DefaultTTL, func() ([]byte, error) {
		return render.Convert(ctx, svg, format, opts.Scale)
	})
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Cache()
	if hit {
		hooks.OnCacheHit(ctx, string(format))
	} else {
		hooks.OnCacheMiss(ctx, string(format))
		if !opts.Refresh {
			hooks.OnCacheSet(ctx, string(format), len(data))
		}
	}
	return data, hit, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithColours(opts.Settings.Colours.Start, opts.Settings.Colours.End),
	}
	if opts.NoAxes {
		svgOpts = append(svgOpts, sink.WithoutAxes())
	}
	return svgOpts
}
