package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

func testFrame() *view.Frame {
	return &view.Frame{
		Mode:      view.ModeConnection,
		Width:     800,
		Height:    600,
		Transform: view.Transform{TX: 400, TY: 300, Scale: 0.5},
		Nodes: []view.NodeView{
			{ID: "a", Title: "Dragon & Co", X: 10, Y: 20, Radius: 12,
				Color: "#69b3a2", FontSize: 8, Lines: []string{"Dragon", "& Co"}},
			{ID: "b", Title: "Keep", X: -30, Y: 5, Radius: 10,
				Color: "#118877", FontSize: 9, Lines: []string{"Keep"}, ClassName: "focus"},
		},
		Links: []view.LinkView{
			{Index: 0, X1: 10, Y1: 20, X2: -30, Y2: 5, ClassName: "first-order"},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFrame(), WithBackground("#111")))

	for _, want := range []string{
		`viewBox="0 0 800.0 600.0"`,
		`translate(400.00,300.00) scale(0.5000)`,
		`<rect width="100%" height="100%" fill="#111"/>`,
		`class="node focus"`,
		`data-id="b"`,
		`class="link first-order"`,
		`fill="#69b3a2"`,
		`<tspan x="0" y="-4.80">Dragon</tspan>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	svg := string(RenderSVG(testFrame()))

	if strings.Contains(svg, "Dragon & Co") {
		t.Error("unescaped ampersand in output")
	}
	if !strings.Contains(svg, "&amp; Co") {
		t.Error("escaped label text missing")
	}
}

func TestRenderSVGGrid(t *testing.T) {
	grid := view.NewAlignmentGrid(1000)
	f := testFrame()
	f.Mode = view.ModeAlignment
	f.Grid = &grid

	svg := string(RenderSVG(f))
	for _, want := range []string{
		`class="grid"`,
		">True Neutral</text>",
		`class="axis">CHAOTIC</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("grid SVG missing %q", want)
		}
	}
}

func TestRenderSVGTooltip(t *testing.T) {
	f := testFrame()
	f.Tooltip = &view.TooltipView{
		NodeID: "a",
		Title:  "Dragon & Co",
		X:      120,
		Y:      340,
		Rows:   []string{"ally of Keep"},
		More:   3,
	}

	svg := string(RenderSVG(f))
	for _, want := range []string{
		`class="tooltip" transform="translate(120.00,340.00)"`,
		">ally of Keep</text>",
		">and 3 more</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("tooltip SVG missing %q", want)
		}
	}
	// Screen-anchored, so it must sit after the scene transform group.
	if !strings.Contains(svg, "</g>\n<g class=\"tooltip\"") {
		t.Error("tooltip rendered inside the scene transform group")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	data, err := RenderJSON(testFrame(), WithIndent())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out view.Frame
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 800 || out.Height != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", out.Width, out.Height)
	}
	if len(out.Nodes) != 2 || len(out.Links) != 1 {
		t.Errorf("round trip lost elements: %d nodes %d links", len(out.Nodes), len(out.Links))
	}
	if out.Nodes[1].ID != "b" || out.Nodes[1].Lines[0] != "Keep" {
		t.Errorf("node b mangled: %+v", out.Nodes[1])
	}
}
