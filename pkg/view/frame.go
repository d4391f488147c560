package view

import (
	"sort"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// =============================================================================
// Frame - Rendering Snapshot
// =============================================================================

// NodeView is the rendered state of one node.
type NodeView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Radius    float64   `json:"radius"`
	Color     string    `json:"color"`
	FontSize  float64   `json:"fontSize"`
	Lines     []string  `json:"lines"`
	Truncated bool      `json:"truncated,omitempty"`
	Class     NodeClass `json:"-"`
	ClassName string    `json:"class,omitempty"`

	// Category carries the collection ID in alignment mode for baseline
	// per-category styling; empty in connection mode.
	Category string `json:"category,omitempty"`
}

// LinkView is the rendered state of one link.
type LinkView struct {
	Index     int       `json:"index"`
	X1        float64   `json:"x1"`
	Y1        float64   `json:"y1"`
	X2        float64   `json:"x2"`
	Y2        float64   `json:"y2"`
	Value     float64   `json:"value,omitempty"`
	Class     LinkClass `json:"-"`
	ClassName string    `json:"class,omitempty"`
}

// Frame is a complete rendering snapshot of the view: everything a renderer
// needs to draw one animation frame without reading mutable engine state.
//
// Nodes and links are already in paint order: dimmed elements first, then
// second-order, first-order, and the focus node last so highlighted
// structure is never occluded by unrelated clutter.
type Frame struct {
	Mode        Mode           `json:"mode"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Transform   Transform      `json:"transform"`
	Nodes       []NodeView     `json:"nodes"`
	Links       []LinkView     `json:"links"`
	Grid        *AlignmentGrid `json:"grid,omitempty"`
	Tooltip     *TooltipView   `json:"tooltip,omitempty"`
	TooltipFade bool           `json:"tooltipFade,omitempty"`
	PinnedID    string         `json:"pinnedId,omitempty"`
	Settled     bool           `json:"settled"`
}

// Frame snapshots the current visual state.
func (v *GraphView) Frame() *Frame {
	f := &Frame{
		Mode:      v.mode,
		Transform: v.camera.Transform(),
		PinnedID:  v.pinnedID,
		Settled:   !v.sim.Active() && !v.camera.Animating(),
	}
	f.Width, f.Height = v.camera.Viewport()

	for i, l := range v.dataset.Links {
		if v.mode == ModeAlignment && !v.linkEligible(l) {
			continue
		}
		class := v.linkClass[i]
		f.Links = append(f.Links, LinkView{
			Index:     i,
			X1:        l.Source.X,
			Y1:        l.Source.Y,
			X2:        l.Target.X,
			Y2:        l.Target.Y,
			Value:     l.Value,
			Class:     class,
			ClassName: class.String(),
		})
	}
	for _, n := range v.dataset.Nodes {
		if v.mode == ModeAlignment && !v.dataset.AlignmentEligible(n) {
			continue
		}
		class := v.nodeClass[n.ID]
		nv := NodeView{
			ID:        n.ID,
			Title:     n.DisplayTitle(),
			X:         n.X,
			Y:         n.Y,
			Radius:    n.Radius,
			Color:     v.colors.GetColor(n.CollectionID),
			FontSize:  n.FontSize,
			Lines:     n.Lines,
			Truncated: n.Truncated,
			Class:     class,
			ClassName: class.String(),
		}
		if v.mode == ModeAlignment {
			nv.Category = n.CollectionID
		}
		f.Nodes = append(f.Nodes, nv)
	}

	// Depth-reorder so highlighted structure paints above dimmed clutter.
	sort.SliceStable(f.Links, func(i, j int) bool { return f.Links[i].Class < f.Links[j].Class })
	sort.SliceStable(f.Nodes, func(i, j int) bool { return f.Nodes[i].Class < f.Nodes[j].Class })

	if v.mode == ModeAlignment {
		f.Grid = &v.grid
	}
	if v.tooltip.visible {
		if n := v.dataset.NodeByID(v.tooltip.nodeID); n != nil {
			f.Tooltip = buildTooltip(v.dataset, n, v.camera.Transform())
		}
	}
	// The fade flag is one-shot: the frame that carries it consumes it.
	f.TooltipFade = v.tooltip.fading
	v.tooltip.clearFade()

	return f
}

// linkEligible reports whether both endpoints of a link participate in the
// alignment view.
func (v *GraphView) linkEligible(l *graph.Link) bool {
	return v.dataset.AlignmentEligible(l.Source) && v.dataset.AlignmentEligible(l.Target)
}
