package view

import (
	"fmt"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// tooltipMaxRows caps the relationship lines shown; the remainder collapses
// into an "and N more" row.
const tooltipMaxRows = 10

// tooltipOffset is the screen-space gap between a node's bottom edge and the
// tooltip anchor.
const tooltipOffset = 8.0

// tooltipState tracks the tooltip lifecycle. A requested tooltip stays
// pending until the camera finishes its framing transition so it never
// flashes at a stale position mid-animation.
type tooltipState struct {
	nodeID  string
	pending bool
	visible bool
	fading  bool
}

// request arms the tooltip for a node. It becomes visible once the camera
// settles.
func (t *tooltipState) request(id string) {
	t.nodeID = id
	t.pending = true
	t.visible = false
	t.fading = false
}

// settle promotes a pending tooltip to visible. Called when the camera is
// idle.
func (t *tooltipState) settle() {
	if t.pending {
		t.pending = false
		t.visible = true
	}
}

// hide dismisses the tooltip. Immediate hiding is used when the anchor
// position is invalidated (pan start, pin clear); otherwise the client fades
// it out in place.
func (t *tooltipState) hide(immediate bool) {
	wasVisible := t.visible
	t.pending = false
	t.visible = false
	t.fading = !immediate && wasVisible
	if immediate {
		t.nodeID = ""
	}
}

func (t *tooltipState) clearFade() {
	if !t.visible && !t.pending {
		t.nodeID = ""
		t.fading = false
	}
}

// TooltipView is the rendered tooltip: full title plus the node's
// relationships, anchored below the node in screen space.
type TooltipView struct {
	NodeID string   `json:"nodeId"`
	Title  string   `json:"title"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Rows   []string `json:"rows,omitempty"`
	More   int      `json:"more,omitempty"`
	URLID  string   `json:"urlId,omitempty"`
}

// buildTooltip renders the tooltip for a node under the given transform.
func buildTooltip(d *graph.Dataset, n *graph.Node, t Transform) *TooltipView {
	px, py := t.Apply(n.X, n.Y)
	tip := &TooltipView{
		NodeID: n.ID,
		Title:  n.DisplayTitle(),
		X:      px,
		Y:      py + n.Radius*t.Scale + tooltipOffset,
		URLID:  n.URLID,
	}
	for _, l := range d.Links {
		if !l.Touches(n.ID) {
			continue
		}
		other := l.Other(n.ID)
		if other == nil {
			continue
		}
		if len(tip.Rows) == tooltipMaxRows {
			tip.More++
			continue
		}
		row := other.DisplayTitle()
		if l.Relationship != "" {
			row = fmt.Sprintf("%s %s", l.Relationship, row)
		}
		tip.Rows = append(tip.Rows, row)
	}
	return tip
}
