package sink

import (
	"encoding/json"

	"github.com/matzehuels/trunnel/pkg/render/trunnel/colour"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/scale"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	start, end string
}

// WithJSONColours records ribbon colours interpolated from start to end.
func WithJSONColours(start, end string) JSONOption {
	return func(r *jsonRenderer) { r.start, r.end = start, end }
}

type jsonOutput struct {
	Viewport    layout.Viewport  `json:"viewport"`
	Config      layout.Config    `json:"config"`
	Adjustments []jsonAdjustment `json:"adjustments,omitempty"`
	Geometry    layout.Geometry  `json:"geometry"`
	Scales      jsonScales       `json:"scales"`
	ItemCount   int              `json:"item_count"`
	BranchCount int              `json:"branch_count"`
	LeafCount   int              `json:"leaf_count"`
	Degenerate  []string         `json:"degenerate,omitempty"`
	Ribbons     []jsonRibbon     `json:"ribbons"`
}

// jsonAdjustment keeps From as text: a clamped input may be NaN or ±Inf,
// which JSON numbers cannot carry.
type jsonAdjustment struct {
	Field string  `json:"field"`
	From  string  `json:"from"`
	To    float64 `json:"to"`
}

type jsonScales struct {
	Value          jsonLinear  `json:"value"`
	BranchIndex    jsonLinear  `json:"branch_index"`
	BranchPosition []jsonPoint `json:"branch_position"`
	BranchStep     float64     `json:"branch_position_step"`
	LeafPosition   []jsonPoint `json:"leaf_position"`
	LeafStep       float64     `json:"leaf_position_step"`
}

type jsonLinear struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

type jsonPoint struct {
	Category string  `json:"category"`
	Position float64 `json:"position"`
}

type jsonRibbon struct {
	Index       int     `json:"index"`
	Category    string  `json:"category"`
	Leaf        bool    `json:"leaf,omitempty"`
	TrunkY      float64 `json:"trunk_y"`
	StrokeWidth float64 `json:"stroke_width"`
	Colour      string  `json:"colour,omitempty"`
	Path        string  `json:"path"`
	LeadIn      string  `json:"lead_in"`
}

// RenderJSON exports the plan as pretty-printed JSON for external renderers.
// Ribbon colours are included only when [WithJSONColours] is given.
func RenderJSON(p layout.Plan, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var colours *colour.Scale
	if r.start != "" || r.end != "" {
		c, err := colour.New(orDefault(r.start, DefaultStartColour), orDefault(r.end, DefaultEndColour), p.ItemCount)
		if err != nil {
			return nil, err
		}
		colours = &c
	}

	out := jsonOutput{
		Viewport:    p.Viewport,
		Config:      p.Config,
		Geometry:    p.Geometry,
		ItemCount:   p.ItemCount,
		BranchCount: p.BranchCount,
		LeafCount:   p.LeafCount,
		Scales: jsonScales{
			Value:          linearJSON(p.Scales.Value),
			BranchIndex:    linearJSON(p.Scales.BranchIndex),
			BranchPosition: pointJSON(p.Scales.BranchPosition),
			BranchStep:     p.Scales.BranchPosition.Step(),
			LeafPosition:   pointJSON(p.Scales.LeafPosition),
			LeafStep:       p.Scales.LeafPosition.Step(),
		},
		Ribbons: make([]jsonRibbon, 0, len(p.Ribbons)),
	}
	for _, a := range p.Adjustments {
		out.Adjustments = append(out.Adjustments, jsonAdjustment{Field: a.Field, From: layout.FormatNumber(a.From), To: a.To})
	}
	for _, d := range p.Degenerate {
		out.Degenerate = append(out.Degenerate, string(d))
	}
	for _, rb := range p.Ribbons {
		jr := jsonRibbon{
			Index:       rb.Index,
			Category:    string(rb.Category),
			Leaf:        rb.IsLeaf,
			TrunkY:      rb.TrunkY,
			StrokeWidth: rb.StrokeWidth,
			Path:        rb.Path,
			LeadIn:      rb.LeadIn,
		}
		if colours != nil {
			jr.Colour = colours.At(rb.Index)
		}
		out.Ribbons = append(out.Ribbons, jr)
	}

	return json.MarshalIndent(out, "", "  ")
}

func linearJSON(s scale.Linear) jsonLinear {
	var out jsonLinear
	out.Domain[0], out.Domain[1] = s.Domain()
	out.Range[0], out.Range[1] = s.Range()
	return out
}

func pointJSON(s scale.Point[extract.Category]) []jsonPoint {
	out := make([]jsonPoint, 0, s.Len())
	for _, c := range s.Domain() {
		pos, _ := s.Map(c)
		out = append(out, jsonPoint{Category: string(c), Position: pos})
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
