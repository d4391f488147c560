package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

// lineHeight matches the text fitter's line spacing factor.
const lineHeight = 1.2

const frameCSS = `
    .link { stroke: #999; stroke-opacity: 0.6; }
    .link.dimmed { stroke-opacity: 0.08; }
    .link.second-order { stroke: #f4a261; stroke-opacity: 0.8; stroke-width: 1.5; }
    .link.first-order { stroke: #e63946; stroke-opacity: 0.9; stroke-width: 2; }
    .node circle { stroke: #fff; stroke-width: 1.5; }
    .node.dimmed { opacity: 0.15; }
    .node.second-order circle { stroke: #f4a261; stroke-width: 2; }
    .node.first-order circle { stroke: #e63946; stroke-width: 2; }
    .node.focus circle { stroke: #e63946; stroke-width: 3; }
    .node text { fill: #fff; text-anchor: middle; font-family: sans-serif; pointer-events: none; }
    .grid line { stroke: #888; stroke-opacity: 0.4; stroke-dasharray: 4 4; }
    .grid text { fill: #888; text-anchor: middle; font-family: sans-serif; font-size: 18px; }
    .grid text.axis { font-weight: bold; font-size: 24px; }
    .tooltip text { fill: #ddd; font-family: sans-serif; font-size: 12px; text-anchor: middle; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	extraCSS   string
}

// WithBackground fills the canvas with a solid color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithCSS appends custom rules after the built-in stylesheet.
func WithCSS(css string) SVGOption {
	return func(r *svgRenderer) { r.extraCSS = css }
}

// RenderSVG renders a frame as a standalone SVG document. Elements are
// emitted in the frame's paint order, so highlighted structure stays on top
// of dimmed clutter.
func RenderSVG(f *view.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)

	buf.WriteString("<style>")
	buf.WriteString(frameCSS)
	if r.extraCSS != "" {
		buf.WriteString("\n")
		buf.WriteString(r.extraCSS)
	}
	buf.WriteString("</style>\n")

	if r.background != "" {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(r.background))
	}

	t := f.Transform
	fmt.Fprintf(&buf, `<g transform="translate(%.2f,%.2f) scale(%.4f)">`+"\n", t.TX, t.TY, t.Scale)

	if f.Grid != nil {
		renderGrid(&buf, f.Grid)
	}
	for _, l := range f.Links {
		renderLink(&buf, l)
	}
	for _, n := range f.Nodes {
		renderNode(&buf, n)
	}

	buf.WriteString("</g>\n")

	// The tooltip is anchored in screen space, outside the scene transform.
	if f.Tooltip != nil {
		renderTooltip(&buf, f.Tooltip)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, g *view.AlignmentGrid) {
	buf.WriteString(`<g class="grid">` + "\n")
	for _, l := range g.Lines {
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", l.X1, l.Y1, l.X2, l.Y2)
	}
	for _, l := range g.Labels {
		class := ""
		if l.Axis {
			class = ` class="axis"`
		}
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f"%s>%s</text>`+"\n", l.X, l.Y, class, escape(l.Text))
	}
	buf.WriteString("</g>\n")
}

func renderLink(buf *bytes.Buffer, l view.LinkView) {
	class := "link"
	if l.ClassName != "" {
		class += " " + l.ClassName
	}
	fmt.Fprintf(buf, `<line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
		class, l.X1, l.Y1, l.X2, l.Y2)
}

func renderNode(buf *bytes.Buffer, n view.NodeView) {
	class := "node"
	if n.ClassName != "" {
		class += " " + n.ClassName
	}
	fmt.Fprintf(buf, `<g class="%s" data-id="%s" transform="translate(%.2f,%.2f)">`+"\n",
		class, escape(n.ID), n.X, n.Y)
	fmt.Fprintf(buf, `<circle r="%.2f" fill="%s"/>`+"\n", n.Radius, escape(n.Color))

	// Center the text block vertically inside the circle.
	step := n.FontSize * lineHeight
	y := -step * float64(len(n.Lines)-1) / 2
	fmt.Fprintf(buf, `<text font-size="%.1f" dominant-baseline="middle">`, n.FontSize)
	for i, line := range n.Lines {
		fmt.Fprintf(buf, `<tspan x="0" y="%.2f">%s</tspan>`, y+step*float64(i), escape(line))
	}
	buf.WriteString("</text>\n</g>\n")
}

func renderTooltip(buf *bytes.Buffer, tip *view.TooltipView) {
	fmt.Fprintf(buf, `<g class="tooltip" transform="translate(%.2f,%.2f)">`+"\n", tip.X, tip.Y)
	fmt.Fprintf(buf, `<text y="14" font-weight="bold">%s</text>`+"\n", escape(tip.Title))
	y := 32.0
	for _, row := range tip.Rows {
		fmt.Fprintf(buf, `<text y="%.0f">%s</text>`+"\n", y, escape(row))
		y += 16
	}
	if tip.More > 0 {
		fmt.Fprintf(buf, `<text y="%.0f">and %d more</text>`+"\n", y, tip.More)
	}
	buf.WriteString("</g>\n")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
