package layout

import (
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/scale"
)

// Degeneracy names a scale domain with nothing in it.
type Degeneracy string

const (
	NoBranches Degeneracy = "NO_BRANCHES"
	NoLeaves   Degeneracy = "NO_LEAVES"
	ZeroTotal  Degeneracy = "ZERO_TOTAL"
)

// Scales are the four mapping functions of a plan.
type Scales struct {
	Value          scale.Linear
	BranchIndex    scale.Linear
	BranchPosition scale.Point[extract.Category]
	LeafPosition   scale.Point[extract.Category]
}

// Ribbon is the drawable output for one item.
type Ribbon struct {
	Index       int              // position in the input; also the colour index
	Category    extract.Category // item label
	IsLeaf      bool             // whether the ribbon fans out to the right edge
	TrunkY      float64          // vertical centre of the ribbon inside the trunk
	StrokeWidth float64          // Value(measure)
	Path        string           // lead-in run plus cubic curve
	LeadIn      string           // lead-in run only
}

// Plan is the complete, renderer-independent description of one chart.
type Plan struct {
	Viewport    Viewport
	Config      Config
	Adjustments []Adjustment
	Geometry    Geometry
	Scales      Scales
	Ribbons     []Ribbon
	ItemCount   int
	BranchCount int
	LeafCount   int
	Degenerate  []Degeneracy
}

// MaxLeafCount returns the largest leaf count the plan's data supports.
// Configuration UIs use it to bound the leaf-count control.
func (p Plan) MaxLeafCount() int { return p.ItemCount }

// Has reports whether the plan lists d.
func (p Plan) Has(d Degeneracy) bool {
	for _, x := range p.Degenerate {
		if x == d {
			return true
		}
	}
	return false
}
