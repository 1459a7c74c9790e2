package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/trunnel/pkg/render/trunnel/colour"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/scale"
)

// Default colours and axis settings.
const (
	DefaultStartColour = "#118DFF"
	DefaultEndColour   = "#E66C37"
	DefaultTickCount   = 10

	tickSize    = 6
	tickPadding = 3
	fontFamily  = "sans-serif"
)

const axisCSS = `
    .axis text { font: 10px sans-serif; fill: #333; }
    .axis line, .axis path { stroke: #333; fill: none; shape-rendering: crispEdges; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	start, end string
	axes       bool
	ticks      int
	printer    *message.Printer
}

// WithColours sets the colours of the first and last ribbon.
func WithColours(start, end string) SVGOption {
	return func(r *svgRenderer) { r.start, r.end = start, end }
}

// WithoutAxes omits the value, branch and leaf axes.
func WithoutAxes() SVGOption { return func(r *svgRenderer) { r.axes = false } }

// WithTickCount sets the approximate number of value-axis ticks.
func WithTickCount(n int) SVGOption { return func(r *svgRenderer) { r.ticks = n } }

// WithLanguage formats tick labels for the given language (default English).
func WithLanguage(tag language.Tag) SVGOption {
	return func(r *svgRenderer) { r.printer = message.NewPrinter(tag) }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		start:   DefaultStartColour,
		end:     DefaultEndColour,
		axes:    true,
		ticks:   DefaultTickCount,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the plan. The chart is placed inside the axis insets; each
// item becomes a group holding its ribbon and its lead-in. It fails only if
// the configured colours do not parse.
func RenderSVG(p layout.Plan, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	colours, err := colour.New(r.start, r.end, p.ItemCount)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="trunnel" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(p.Viewport.Width), num(p.Viewport.Height), num(p.Viewport.Width), num(p.Viewport.Height))

	cfg := p.Config
	fmt.Fprintf(&buf, `  <g transform="translate(%s, %s)">`+"\n", num(cfg.LeftAxisWidth), num(cfg.TopAxisHeight))
	for _, rb := range p.Ribbons {
		renderRibbon(&buf, rb, colours.At(rb.Index))
	}
	buf.WriteString("  </g>\n")

	if r.axes {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", axisCSS)
		r.renderValueAxis(&buf, p)
		renderBranchAxis(&buf, p)
		renderLeafAxis(&buf, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderRibbon(buf *bytes.Buffer, rb layout.Ribbon, stroke string) {
	width := num(rb.StrokeWidth)
	fmt.Fprintf(buf, `    <g class="ribbon" data-category="%s">`+"\n", escapeXML(string(rb.Category)))
	fmt.Fprintf(buf, `      <path stroke="%s" stroke-width="%s" fill="none" shape-rendering="geometricPrecision" d="%s"/>`+"\n",
		stroke, width, rb.Path)
	fmt.Fprintf(buf, `      <path stroke="%s" stroke-width="%s" fill="none" shape-rendering="crispEdges" d="%s"/>`+"\n",
		stroke, width, rb.LeadIn)
	buf.WriteString("    </g>\n")
}

// renderValueAxis draws the trunk value scale to the left of the chart,
// aligned with the top of the trunk.
func (r svgRenderer) renderValueAxis(buf *bytes.Buffer, p layout.Plan) {
	s := p.Scales.Value
	fmt.Fprintf(buf, `  <g class="axis axis-value" transform="translate(%s, %s)">`+"\n",
		num(p.Config.LeftAxisWidth-10), num(p.Config.TopAxisHeight+p.Geometry.TrunkTop))
	r0, r1 := s.Range()
	fmt.Fprintf(buf, `    <path d="M-%d,%s H0 V%s H-%d"/>`+"\n", tickSize, num(r0), num(r1), tickSize)

	if !s.Degenerate() {
		decimals := precision(s.TickStep(r.ticks))
		for _, v := range s.Ticks(r.ticks) {
			y := num(s.Map(v))
			label := r.printer.Sprint(number.Decimal(v, number.Scale(decimals)))
			fmt.Fprintf(buf, `    <g class="tick" transform="translate(0, %s)"><line x2="-%d"/><text x="-%d" dy="0.32em" text-anchor="end" font-family="%s">%s</text></g>`+"\n",
				y, tickSize, tickSize+tickPadding, fontFamily, escapeXML(label))
		}
	}
	buf.WriteString("  </g>\n")
}

// renderBranchAxis labels branch positions along the top of the chart.
func renderBranchAxis(buf *bytes.Buffer, p layout.Plan) {
	fmt.Fprintf(buf, `  <g class="axis axis-branches" transform="translate(%s, %s)">`+"\n",
		num(p.Config.LeftAxisWidth), num(p.Config.TopAxisHeight-5))
	renderPointTicks(buf, p.Scales.BranchPosition, func(pos, label string) string {
		return fmt.Sprintf(`<g class="tick" transform="translate(%s, 0)"><line y2="-%d"/><text y="-%d" text-anchor="middle" font-family="%s">%s</text></g>`,
			pos, tickSize, tickSize+tickPadding, fontFamily, label)
	})
	buf.WriteString("  </g>\n")
}

// renderLeafAxis labels leaf positions along the right edge of the chart.
func renderLeafAxis(buf *bytes.Buffer, p layout.Plan) {
	fmt.Fprintf(buf, `  <g class="axis axis-leaves" transform="translate(%s, %s)">`+"\n",
		num(p.Config.LeftAxisWidth+p.Geometry.ChartWidth+5), num(p.Config.TopAxisHeight))
	renderPointTicks(buf, p.Scales.LeafPosition, func(pos, label string) string {
		return fmt.Sprintf(`<g class="tick" transform="translate(0, %s)"><line x2="%d"/><text x="%d" dy="0.32em" text-anchor="start" font-family="%s">%s</text></g>`,
			pos, tickSize, tickSize+tickPadding, fontFamily, label)
	})
	buf.WriteString("  </g>\n")
}

func renderPointTicks(buf *bytes.Buffer, s scale.Point[extract.Category], tick func(pos, label string) string) {
	for _, c := range s.Domain() {
		pos, ok := s.Map(c)
		if !ok {
			continue
		}
		buf.WriteString("    ")
		buf.WriteString(tick(num(pos), escapeXML(string(c))))
		buf.WriteByte('\n')
	}
}

// precision returns the number of decimals needed to tell ticks step apart.
func precision(step float64) int {
	if step <= 0 {
		return 0
	}
	return max(0, -int(math.Floor(math.Log10(step)+1e-9)))
}

func num(v float64) string { return layout.FormatNumber(v) }

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
