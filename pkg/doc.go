// Package pkg holds the libraries behind the trunnel command.
//
// A trunnel chart lays an ordered list of (category, measure) rows out as
// ribbons: the leading rows are branches that converge into a horizontal
// trunk, the trailing rows are leaves the trunk fans out into, and every
// ribbon is as thick as its measure.
//
// # Data flow
//
//	CSV / JSON / YAML rows        settings (TOML / YAML / flags)
//	         ↓                               ↓
//	    [io] Table                     [config] Settings
//	         ↓                               ↓
//	    [render/trunnel/extract] Items ──────┤
//	         ↓                               ↓
//	    [render/trunnel/layout] Plan (geometry, scales, ribbon paths)
//	         ↓
//	    [render/trunnel/sink] SVG / JSON, PNG / PDF via [render]
//
// [pipeline] runs the stages, [cache] stores converted PNG/PDF artifacts,
// [observability] exposes stage hooks and [errors] carries the error codes.
//
// # Quick Start
//
//	items, err := extract.Extract(
//	    []extract.Category{"Search", "Social", "Checkout", "Abandon"},
//	    []float64{40, 25, 50, 15},
//	    2, // trailing leaves
//	)
//	if err != nil {
//	    return err
//	}
//	plan, err := layout.Build(items, layout.Viewport{Width: 800, Height: 600}, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.RenderSVG(plan)
package pkg
