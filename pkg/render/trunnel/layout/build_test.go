package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/trunnel/pkg/errors"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
)

func mustExtract(t *testing.T, labels []string, measures []float64, leaves int) extract.Items {
	t.Helper()
	cats := make([]extract.Category, len(labels))
	for i, l := range labels {
		cats[i] = extract.Category(l)
	}
	items, err := extract.Extract(cats, measures, leaves)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return items
}

// exactFixture uses sizes that keep every coordinate a dyadic rational, so
// paths can be compared as strings.
func exactFixture(t *testing.T) (extract.Items, Viewport, Config) {
	items := mustExtract(t, []string{"A", "B", "C", "D", "E"}, []float64{2, 2, 4, 4, 4}, 2)
	vp := Viewport{Width: 400, Height: 276}
	cfg := Config{
		LeftAxisWidth:        40,
		RightAxisWidth:       40,
		TopAxisHeight:        20,
		TrunkHeightFraction:  0.5,
		TrunkWidthFraction:   0.5,
		LeavesHeightFraction: 0.5,
	}
	return items, vp, cfg
}

func TestGeometryExample(t *testing.T) {
	g := ComputeGeometry(Viewport{Width: 400, Height: 300}, Config{
		LeftAxisWidth:        40,
		RightAxisWidth:       40,
		TopAxisHeight:        20,
		TrunkWidthFraction:   0.5,
		TrunkHeightFraction:  0.6,
		LeavesHeightFraction: 1,
	})
	checks := []struct {
		name      string
		got, want float64
	}{
		{"ChartWidth", g.ChartWidth, 320},
		{"ChartHeight", g.ChartHeight, 280},
		{"TrunkWidth", g.TrunkWidth, 160},
		{"TrunkHeight", g.TrunkHeight, 168},
		{"TrunkTop", g.TrunkTop, 56},
		{"LeafZoneWidth", g.LeafZoneWidth, 160},
		{"LeavesRangeStart", g.LeavesRangeStart, 0},
		{"LeavesRangeEnd", g.LeavesRangeEnd, 280},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestBuildPaths(t *testing.T) {
	items, vp, cfg := exactFixture(t)
	p, err := Build(items, vp, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []Ribbon{
		{Index: 0, Category: "A", TrunkY: 72, StrokeWidth: 16,
			LeadIn: "M 0, 72 H 40 ",
			Path:   "M 0, 72 H 40 C 70,72 70,72 70,0 "},
		{Index: 1, Category: "B", TrunkY: 88, StrokeWidth: 16,
			LeadIn: "M 0, 88 H 70 ",
			Path:   "M 0, 88 H 70 C 100,88 100,88 100,0 "},
		{Index: 2, Category: "C", TrunkY: 112, StrokeWidth: 32,
			LeadIn: "M 0, 112 H 100 ",
			Path:   "M 0, 112 H 100 C 130,112 130,112 130,0 "},
		{Index: 3, Category: "D", IsLeaf: true, TrunkY: 144, StrokeWidth: 32,
			LeadIn: "M 0, 144 H 130 ",
			Path:   "M 0, 144 H 130 C 240,144 240,64 320,64 "},
		{Index: 4, Category: "E", IsLeaf: true, TrunkY: 176, StrokeWidth: 32,
			LeadIn: "M 0, 176 H 130 ",
			Path:   "M 0, 176 H 130 C 240,176 240,192 320,192 "},
	}
	if diff := cmp.Diff(want, p.Ribbons); diff != "" {
		t.Errorf("ribbons mismatch (-want +got):\n%s", diff)
	}
	if len(p.Degenerate) != 0 {
		t.Errorf("Degenerate = %v, want none", p.Degenerate)
	}
	if p.MaxLeafCount() != 5 {
		t.Errorf("MaxLeafCount() = %d, want 5", p.MaxLeafCount())
	}
}

func TestBuildScales(t *testing.T) {
	items, vp, cfg := exactFixture(t)
	p, err := Build(items, vp, cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := p.Scales

	if got := s.Value.Map(0); got != 0 {
		t.Errorf("Value(0) = %v, want 0", got)
	}
	if got := s.Value.Map(items.Total()); got != p.Geometry.TrunkHeight {
		t.Errorf("Value(total) = %v, want %v", got, p.Geometry.TrunkHeight)
	}

	for label, want := range map[extract.Category]float64{"A": 70, "B": 100, "C": 130} {
		if got, ok := s.BranchPosition.Map(label); !ok || got != want {
			t.Errorf("BranchPosition(%s) = %v, %v; want %v", label, got, ok, want)
		}
	}
	for label, want := range map[extract.Category]float64{"D": 64, "E": 192} {
		if got, ok := s.LeafPosition.Map(label); !ok || got != want {
			t.Errorf("LeafPosition(%s) = %v, %v; want %v", label, got, ok, want)
		}
	}
}

func TestBuildRibbonsStack(t *testing.T) {
	items := mustExtract(t, []string{"a", "b", "c", "d"}, []float64{3, 1, 4, 1.5}, 1)
	p, err := Build(items, Viewport{Width: 640, Height: 480}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// Consecutive ribbons touch: centre distance equals the mean of widths.
	for i := 1; i < len(p.Ribbons); i++ {
		prev, cur := p.Ribbons[i-1], p.Ribbons[i]
		gap := cur.TrunkY - prev.TrunkY
		want := (prev.StrokeWidth + cur.StrokeWidth) / 2
		if math.Abs(gap-want) > 1e-9 {
			t.Errorf("ribbon %d: centre gap %v, want %v", i, gap, want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	items := mustExtract(t, []string{"n", "e", "s", "w", "x"}, []float64{1.1, 2.2, 3.3, 0.7, 9}, 3)
	vp := Viewport{Width: 913, Height: 517}
	a, err := Build(items, vp, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(items, vp, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Ribbons {
		if a.Ribbons[i].Path != b.Ribbons[i].Path || a.Ribbons[i].LeadIn != b.Ribbons[i].LeadIn {
			t.Errorf("ribbon %d differs between builds", i)
		}
	}
}

func TestBuildNoLeaves(t *testing.T) {
	items := mustExtract(t, []string{"a", "b"}, []float64{1, 1}, 0)
	p, err := Build(items, Viewport{Width: 300, Height: 200}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !p.Has(NoLeaves) || p.Has(NoBranches) {
		t.Errorf("Degenerate = %v, want [NO_LEAVES]", p.Degenerate)
	}
	if len(p.Ribbons) != 2 {
		t.Errorf("got %d ribbons, want 2", len(p.Ribbons))
	}
	if !p.Scales.LeafPosition.Empty() {
		t.Error("leaf scale should be empty")
	}
}

func TestBuildNoBranches(t *testing.T) {
	items := mustExtract(t, []string{"a", "b", "c"}, []float64{1, 2, 3}, 3)
	p, err := Build(items, Viewport{Width: 300, Height: 200}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !p.Has(NoBranches) {
		t.Errorf("Degenerate = %v, want NO_BRANCHES", p.Degenerate)
	}
	if len(p.Ribbons) != 3 {
		t.Fatalf("got %d ribbons, want 3", len(p.Ribbons))
	}
	// With no branches the index scale collapses onto the trunk edge.
	tw := p.Geometry.TrunkWidth
	if got := p.Scales.BranchIndex.Map(0); got != tw {
		t.Errorf("BranchIndex(0) = %v, want %v", got, tw)
	}
	for _, r := range p.Ribbons {
		if !r.IsLeaf {
			t.Errorf("ribbon %d is not a leaf", r.Index)
		}
	}
}

func TestBuildZeroTotal(t *testing.T) {
	items := mustExtract(t, []string{"a", "b"}, []float64{0, 0}, 1)
	p, err := Build(items, Viewport{Width: 300, Height: 200}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !p.Has(ZeroTotal) {
		t.Errorf("Degenerate = %v, want ZERO_TOTAL", p.Degenerate)
	}
	if len(p.Ribbons) != 0 {
		t.Errorf("got %d ribbons, want none", len(p.Ribbons))
	}
	if got := p.Scales.Value.Map(5); got != 0 {
		t.Errorf("Value(5) on empty domain = %v, want 0", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	items := mustExtract(t, nil, nil, 0)
	p, err := Build(items, Viewport{Width: 300, Height: 200}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Ribbons) != 0 || p.ItemCount != 0 {
		t.Errorf("empty build produced %d ribbons", len(p.Ribbons))
	}
}

func TestBuildRejectsInconsistentItems(t *testing.T) {
	items := extract.Items{ItemCount: 2, BranchCount: 1, LeafCount: 1}
	_, err := Build(items, Viewport{Width: 10, Height: 10}, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Build() error = %v, want INVALID_INPUT", err)
	}
}

func TestBuildTinyViewport(t *testing.T) {
	items := mustExtract(t, []string{"a", "b"}, []float64{1, 2}, 1)
	p, err := Build(items, Viewport{Width: 10, Height: -5}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p.Geometry.ChartWidth != 0 || p.Geometry.ChartHeight != 0 {
		t.Errorf("chart = %vx%v, want 0x0", p.Geometry.ChartWidth, p.Geometry.ChartHeight)
	}
	for _, r := range p.Ribbons {
		if !r.finite() {
			t.Errorf("ribbon %d not finite: %q", r.Index, r.Path)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{56, "56"},
		{0.1 + 0.2, "0.30000000000000004"},
		{-12.5, "-12.5"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
