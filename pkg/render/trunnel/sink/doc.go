// Package sink turns a [layout.Plan] into output documents.
//
// The plan is renderer-independent; sinks are thin adapters over it:
//
//   - [RenderSVG]: standalone SVG with ribbons, lead-ins and the three axes
//   - [RenderJSON]: the plan as JSON (geometry, scales, paths, colours)
//   - [RenderPNG], [RenderPDF]: SVG converted with rsvg-convert
//
// Colours come from a start/end colour pair interpolated by item index
// (see [colour.Scale]); set them with [WithColours].
//
// [layout.Plan]: github.com/matzehuels/trunnel/pkg/render/trunnel/layout.Plan
// [colour.Scale]: github.com/matzehuels/trunnel/pkg/render/trunnel/colour.Scale
package sink
