package sink

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
)

func buildPlan(t *testing.T, labels []string, measures []float64, leaves int, vp layout.Viewport, cfg layout.Config) layout.Plan {
	t.Helper()
	cats := make([]extract.Category, len(labels))
	for i, l := range labels {
		cats[i] = extract.Category(l)
	}
	items, err := extract.Extract(cats, measures, leaves)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	p, err := layout.Build(items, vp, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func fixturePlan(t *testing.T) layout.Plan {
	return buildPlan(t, []string{"A", "B", "C", "D", "E"}, []float64{2, 2, 4, 4, 4}, 2,
		layout.Viewport{Width: 400, Height: 276},
		layout.Config{
			LeftAxisWidth:        40,
			RightAxisWidth:       40,
			TopAxisHeight:        20,
			TrunkHeightFraction:  0.5,
			TrunkWidthFraction:   0.5,
			LeavesHeightFraction: 0.5,
		})
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(fixturePlan(t))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(out)

	for _, want := range []string{
		`class="trunnel" width="400" height="276"`,
		`<g transform="translate(40, 20)">`,
		`data-category="A"`,
		`stroke="#118dff" stroke-width="16"`,
		`d="M 0, 72 H 40 C 70,72 70,72 70,0 "`,
		`d="M 0, 72 H 40 "`,
		`d="M 0, 176 H 130 C 240,176 240,192 320,192 "`,
		`shape-rendering="geometricPrecision"`,
		`shape-rendering="crispEdges"`,
		`class="axis axis-value" transform="translate(30, 84)"`,
		`class="axis axis-branches" transform="translate(40, 15)"`,
		`class="axis axis-leaves" transform="translate(365, 20)"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if n := strings.Count(svg, `class="ribbon"`); n != 5 {
		t.Errorf("ribbon groups = %d, want 5", n)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	p := fixturePlan(t)
	a, err := RenderSVG(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderSVG(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("repeated renders differ")
	}
}

func TestRenderSVGWithoutAxes(t *testing.T) {
	out, err := RenderSVG(fixturePlan(t), WithoutAxes())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "axis") {
		t.Error("axes rendered despite WithoutAxes")
	}
}

func TestRenderSVGColours(t *testing.T) {
	out, err := RenderSVG(fixturePlan(t), WithColours("#000000", "#ffffff"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `stroke="#000000"`) {
		t.Error("first ribbon should use the start colour")
	}
	if strings.Contains(string(out), `stroke="#ffffff"`) {
		t.Error("no ribbon should reach the end colour")
	}

	if _, err := RenderSVG(fixturePlan(t), WithColours("blue", "#fff")); err == nil {
		t.Error("RenderSVG() with invalid colour: expected error")
	}
}

func TestRenderSVGTickLabels(t *testing.T) {
	p := buildPlan(t, []string{"a", "b"}, []float64{5000, 5000}, 1,
		layout.Viewport{Width: 400, Height: 300}, layout.DefaultConfig())
	out, err := RenderSVG(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{">0</text>", ">1,000</text>", ">10,000</text>"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("SVG missing tick label %q", want)
		}
	}
}

func TestRenderSVGEscapesCategories(t *testing.T) {
	p := buildPlan(t, []string{"<a&b>", "c"}, []float64{1, 1}, 1,
		layout.Viewport{Width: 400, Height: 300}, layout.DefaultConfig())
	out, err := RenderSVG(p)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<a&b>") {
		t.Error("category label not escaped")
	}
	if !strings.Contains(string(out), `data-category="&lt;a&amp;b&gt;"`) {
		t.Error("escaped category attribute missing")
	}
}

func TestRenderSVGEmptyPlan(t *testing.T) {
	p := buildPlan(t, nil, nil, 0, layout.Viewport{Width: 100, Height: 100}, layout.DefaultConfig())
	out, err := RenderSVG(p)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if strings.Contains(string(out), `class="ribbon"`) {
		t.Error("empty plan rendered ribbons")
	}
}

func TestPrecision(t *testing.T) {
	tests := []struct {
		step float64
		want int
	}{
		{0, 0},
		{1, 0},
		{10, 0},
		{0.5, 1},
		{0.1, 1},
		{0.02, 2},
	}
	for _, tt := range tests {
		if got := precision(tt.step); got != tt.want {
			t.Errorf("precision(%v) = %d, want %d", tt.step, got, tt.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	p := fixturePlan(t)
	out, err := RenderJSON(p, WithJSONColours(DefaultStartColour, DefaultEndColour))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var got jsonOutput
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.ItemCount != 5 || got.BranchCount != 3 || got.LeafCount != 2 {
		t.Errorf("counts = %d/%d/%d, want 5/3/2", got.ItemCount, got.BranchCount, got.LeafCount)
	}
	if len(got.Ribbons) != 5 {
		t.Fatalf("ribbons = %d, want 5", len(got.Ribbons))
	}
	if got.Ribbons[0].Colour != "#118dff" {
		t.Errorf("first colour = %q, want #118dff", got.Ribbons[0].Colour)
	}
	if got.Ribbons[3].Path != p.Ribbons[3].Path || !got.Ribbons[3].Leaf {
		t.Errorf("ribbon 3 = %+v", got.Ribbons[3])
	}
	wantLeaves := []jsonPoint{{Category: "D", Position: 64}, {Category: "E", Position: 192}}
	if diff := cmp.Diff(wantLeaves, got.Scales.LeafPosition); diff != "" {
		t.Errorf("leaf positions mismatch (-want +got):\n%s", diff)
	}
	if got.Scales.LeafStep != 128 {
		t.Errorf("leaf step = %v, want 128", got.Scales.LeafStep)
	}
	if got.Scales.Value.Domain != [2]float64{0, 16} || got.Scales.Value.Range != [2]float64{0, 128} {
		t.Errorf("value scale = %+v", got.Scales.Value)
	}
}

func TestRenderJSONWithoutColours(t *testing.T) {
	out, err := RenderJSON(fixturePlan(t))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), `"colour"`) {
		t.Error("colours exported without WithJSONColours")
	}
}

func TestRenderJSONNonFiniteSettings(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.TrunkHeightFraction = math.NaN()
	cfg.LeftAxisWidth = math.Inf(1)
	cfg.TopAxisHeight = -5
	p := buildPlan(t, []string{"A", "B", "C"}, []float64{1, 2, 3}, 1, layout.Viewport{Width: 400, Height: 300}, cfg)

	out, err := RenderJSON(p)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	var doc struct {
		Adjustments []struct {
			Field string
			From  string
			To    float64
		}
		Ribbons []json.RawMessage
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	got := map[string]string{}
	for _, a := range doc.Adjustments {
		got[a.Field] = a.From + " -> " + layout.FormatNumber(a.To)
	}
	want := map[string]string{
		"left_axis_width":       "+Inf -> 40",
		"top_axis_height":       "-5 -> 0",
		"trunk_height_fraction": "NaN -> 0.5",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("adjustments mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Ribbons) != 3 {
		t.Errorf("ribbons = %d, want 3", len(doc.Ribbons))
	}
}
