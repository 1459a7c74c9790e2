// Package render converts rendered SVG into other formats.
//
// The [ToPDF] and [ToPNG] functions pipe SVG through the external
// rsvg-convert tool (from librsvg). The chart itself is produced by the
// [trunnel] subpackages:
//
//	plan, _ := layout.Build(items, vp, cfg)
//	svg, _ := sink.RenderSVG(plan)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Key trunnel subpackages:
//   - [trunnel/extract]: category/measure columns to stacked items
//   - [trunnel/scale]: linear and point scales
//   - [trunnel/layout]: geometry, scales and ribbon paths
//   - [trunnel/colour]: ribbon colour interpolation
//   - [trunnel/sink]: output formats (SVG, JSON, PNG, PDF)
//
// [trunnel]: github.com/matzehuels/trunnel/pkg/render/trunnel
// [trunnel/extract]: github.com/matzehuels/trunnel/pkg/render/trunnel/extract
// [trunnel/scale]: github.com/matzehuels/trunnel/pkg/render/trunnel/scale
// [trunnel/layout]: github.com/matzehuels/trunnel/pkg/render/trunnel/layout
// [trunnel/colour]: github.com/matzehuels/trunnel/pkg/render/trunnel/colour
// [trunnel/sink]: github.com/matzehuels/trunnel/pkg/render/trunnel/sink
package render
