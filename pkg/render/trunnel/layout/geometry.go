package layout

// Geometry holds the derived chart dimensions, in pixels relative to the
// chart origin (the top-left corner inside the axis insets).
type Geometry struct {
	ChartWidth       float64 `json:"chart_width"`
	ChartHeight      float64 `json:"chart_height"`
	TrunkWidth       float64 `json:"trunk_width"`
	TrunkHeight      float64 `json:"trunk_height"`
	LeafZoneWidth    float64 `json:"leaf_zone_width"`
	LeavesRangeStart float64 `json:"leaves_range_start"`
	LeavesRangeEnd   float64 `json:"leaves_range_end"`
	TrunkTop         float64 `json:"trunk_top"`
}

// ComputeGeometry derives the chart dimensions from a clamped viewport and
// config. The order matters: each value builds on the ones before it.
func ComputeGeometry(vp Viewport, cfg Config) Geometry {
	var g Geometry
	g.ChartWidth = nonNegative(vp.Width - cfg.LeftAxisWidth - cfg.RightAxisWidth)
	g.ChartHeight = nonNegative(vp.Height - cfg.TopAxisHeight)

	g.TrunkHeight = g.ChartHeight * cfg.TrunkHeightFraction
	g.TrunkWidth = g.ChartWidth * cfg.TrunkWidthFraction
	g.LeafZoneWidth = g.ChartWidth - g.TrunkWidth

	g.LeavesRangeStart = (g.ChartHeight / 2) * (1 - cfg.LeavesHeightFraction)
	g.LeavesRangeEnd = g.ChartHeight - g.LeavesRangeStart

	g.TrunkTop = g.ChartHeight/2 - g.TrunkHeight/2
	return g
}
