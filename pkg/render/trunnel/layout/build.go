package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/trunnel/pkg/errors"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/scale"
)

// Build computes the plan for items drawn into vp with cfg. The config and
// viewport are clamped first; items must satisfy [extract.Items.Validate].
func Build(items extract.Items, vp Viewport, cfg Config) (Plan, error) {
	if err := items.Validate(); err != nil {
		return Plan{}, err
	}

	vp = vp.Clamp()
	cfg, adj := cfg.Clamp()
	g := ComputeGeometry(vp, cfg)

	p := Plan{
		Viewport:    vp,
		Config:      cfg,
		Adjustments: adj,
		Geometry:    g,
		Scales:      BuildScales(items, g),
		ItemCount:   items.ItemCount,
		BranchCount: items.BranchCount,
		LeafCount:   items.LeafCount,
	}
	if items.BranchCount == 0 {
		p.Degenerate = append(p.Degenerate, NoBranches)
	}
	if items.LeafCount == 0 {
		p.Degenerate = append(p.Degenerate, NoLeaves)
	}
	if items.Total() == 0 {
		p.Degenerate = append(p.Degenerate, ZeroTotal)
		return p, nil
	}

	p.Ribbons = make([]Ribbon, 0, len(items.Items))
	for i, item := range items.Items {
		r, ok := ribbon(p, i, item)
		if !ok {
			continue
		}
		if !r.finite() {
			return Plan{}, errors.New(errors.ErrCodeInternal,
				"ribbon %d (%q) has non-finite coordinates", i, item.Category)
		}
		p.Ribbons = append(p.Ribbons, r)
	}
	return p, nil
}

// BuildScales derives the four scales from the items and chart geometry.
func BuildScales(items extract.Items, g Geometry) Scales {
	n := float64(items.BranchCount)
	index := scale.NewLinear(0, n+1, g.TrunkWidth/(n+1), g.TrunkWidth)
	return Scales{
		Value:       scale.NewLinear(0, items.Total(), 0, g.TrunkHeight),
		BranchIndex: index,
		BranchPosition: scale.NewPoint(items.BranchCategories,
			index.Map(1), index.Map(n)),
		LeafPosition: scale.NewPoint(items.LeafCategories,
			g.LeavesRangeStart, g.LeavesRangeEnd),
	}
}

// ribbon builds the paths for item i. ok is false when the item has no
// position to draw to.
func ribbon(p Plan, i int, item extract.Item) (r Ribbon, ok bool) {
	s, g := p.Scales, p.Geometry
	y := s.Value.Map(item.RunningSum+item.Measure/2) + g.TrunkTop

	r = Ribbon{
		Index:       i,
		Category:    item.Category,
		IsLeaf:      item.IsLeaf,
		TrunkY:      y,
		StrokeWidth: s.Value.Map(item.Measure),
	}

	var pb pathBuilder
	pb.moveTo(0, y)
	if !item.IsLeaf {
		pb.horizontalTo(s.BranchIndex.Map(float64(i)))
		r.LeadIn = pb.String()

		x := s.BranchIndex.Map(float64(i + 1))
		pb.curveTo(x, y, x, y, x, 0)
		r.Path = pb.String()
		return r, true
	}

	leafY, ok := s.LeafPosition.Map(item.Category)
	if !ok {
		return Ribbon{}, false
	}
	pb.horizontalTo(s.BranchIndex.Map(float64(p.BranchCount)))
	r.LeadIn = pb.String()

	mid := g.TrunkWidth + g.LeafZoneWidth/2
	pb.curveTo(mid, y, mid, leafY, g.ChartWidth, leafY)
	r.Path = pb.String()
	return r, true
}

func (r Ribbon) finite() bool {
	return isFinite(r.TrunkY) && isFinite(r.StrokeWidth) &&
		!strings.Contains(r.Path, "NaN") && !strings.Contains(r.Path, "Inf")
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// pathBuilder writes SVG path commands in the form
// "M 0, y H x C x1,y1 x2,y2 x,y " with shortest-form numbers.
type pathBuilder struct {
	sb strings.Builder
}

func (b *pathBuilder) moveTo(x, y float64) {
	b.sb.WriteString("M ")
	b.num(x)
	b.sb.WriteString(", ")
	b.num(y)
	b.sb.WriteByte(' ')
}

func (b *pathBuilder) horizontalTo(x float64) {
	b.sb.WriteString("H ")
	b.num(x)
	b.sb.WriteByte(' ')
}

func (b *pathBuilder) curveTo(x1, y1, x2, y2, x, y float64) {
	b.sb.WriteString("C ")
	b.point(x1, y1)
	b.point(x2, y2)
	b.point(x, y)
}

func (b *pathBuilder) point(x, y float64) {
	b.num(x)
	b.sb.WriteByte(',')
	b.num(y)
	b.sb.WriteByte(' ')
}

func (b *pathBuilder) num(v float64) {
	b.sb.WriteString(FormatNumber(v))
}

func (b *pathBuilder) String() string { return b.sb.String() }

// FormatNumber prints v in the shortest decimal form that round-trips,
// without an exponent and without a negative zero.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
