// Package layout computes the geometry of a trunnel chart.
//
// [Build] takes the extracted items, the viewport and the layout settings
// and returns a [Plan]: the derived chart dimensions, four scales and, for
// every item, an SVG path for its ribbon and a second path for the
// straight lead-in run that precedes the curve.
//
// # Geometry
//
// The chart area is the viewport minus the axis insets. The trunk occupies
// TrunkWidthFraction of its width and TrunkHeightFraction of its height,
// centred vertically; leaves spread over LeavesHeightFraction of the height
// at the right edge.
//
// # Scales
//
//   - Value: cumulative measure → vertical offset inside the trunk. Ribbon
//     stroke width uses the same scale, so widths and offsets share units
//     and stacked ribbons never overlap.
//   - BranchIndex: branch rank → x position along the trunk.
//   - BranchPosition: branch label → x position (for the top axis).
//   - LeafPosition: leaf label → y position at the right edge.
//
// # Degenerate input
//
// Zero branches, zero leaves or a zero total never fail the build. They are
// listed in [Plan.Degenerate]; with a zero total no ribbon has any width and
// all ribbons are omitted.
//
// Build is a pure function: the same input always yields byte-identical
// paths.
package layout
