// Package view owns the interactive state of a rendered graph: the force
// simulation, the camera transform, neighborhood highlighting, and the
// connection/alignment mode machine.
//
// A GraphView is not safe for concurrent use. All mutation must be confined
// to a single goroutine; renderers receive immutable Frame snapshots.
package view

import (
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/force"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/textfit"
)

// =============================================================================
// Mode - Connection vs Alignment Projection
// =============================================================================

// Mode selects which projection the view shows. Connection is the default
// force-directed layout; alignment places eligible nodes on the law/chaos x
// good/evil plane.
type Mode string

const (
	ModeConnection Mode = "connection"
	ModeAlignment  Mode = "alignment"
)

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeConnection, ModeAlignment:
		return Mode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown view mode %q", s)
}

// =============================================================================
// GraphView - Interactive Scene State
// =============================================================================

const (
	// homeScale is the default zoom of the connection-mode home view.
	homeScale = 0.5

	// pinPadding expands the focus neighborhood bounding box when framing.
	pinPadding = 50.0

	// cameraTransition is the duration of eased camera moves.
	cameraTransition = 750 * time.Millisecond

	// dragAlphaTarget keeps the simulation warm while a node is dragged.
	dragAlphaTarget = 0.3
)

// GraphView owns all mutable visual state of one graph session: node
// positions, highlight classification, view mode, camera, and tooltip. Every
// state-changing event funnels into recomputeVisualState so classification
// is always derived fresh from {mode, pinnedID, hoverID}, never merged with
// stale state.
type GraphView struct {
	dataset *graph.Dataset
	colors  *graph.ColorTable
	tuning  force.Tuning
	logger  *charmlog.Logger
	now     func() time.Time

	sim    *force.Simulation
	camera Camera
	grid   AlignmentGrid

	mode     Mode
	pinnedID string
	hoverID  string
	dragID   string

	nodeClass map[string]NodeClass
	linkClass []LinkClass

	tooltip tooltipState
}

// Option configures a GraphView.
type Option func(*GraphView)

// WithLogger attaches a logger for degraded-interaction reporting.
func WithLogger(l *charmlog.Logger) Option {
	return func(v *GraphView) { v.logger = l }
}

// WithClock overrides the time source used for camera animation. Tests use
// this to step transitions deterministically.
func WithClock(now func() time.Time) Option {
	return func(v *GraphView) { v.now = now }
}

// New builds a GraphView over a loaded dataset. Label layout is computed
// once per node here; the simulation starts hot in connection mode with the
// camera at the home transform.
func New(d *graph.Dataset, colors *graph.ColorTable, t force.Tuning, width, height float64, opts ...Option) *GraphView {
	v := &GraphView{
		dataset: d,
		colors:  colors,
		tuning:  t,
		logger:  charmlog.Default(),
		now:     time.Now,
		mode:    ModeConnection,
		grid:    NewAlignmentGrid(t.GridSize),
		camera:  NewCamera(width, height),
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, n := range d.Nodes {
		fit := textfit.Fit(n.DisplayTitle(), n.Radius)
		n.Lines = fit.Lines
		n.FontSize = fit.FontSize
		n.Truncated = fit.Truncated
	}

	v.sim = force.New(d.Nodes)
	force.ApplyConnectionConfig(v.sim, d, t)
	v.camera.Jump(v.homeTransform())
	v.recomputeVisualState()
	return v
}

// Mode returns the active view mode.
func (v *GraphView) Mode() Mode { return v.mode }

// PinnedID returns the pinned node's ID, empty when nothing is pinned.
func (v *GraphView) PinnedID() string { return v.pinnedID }

// Dataset returns the underlying dataset.
func (v *GraphView) Dataset() *graph.Dataset { return v.dataset }

// Camera returns the camera for inspection.
func (v *GraphView) Camera() *Camera { return &v.camera }

// Simulation returns the force simulation for inspection.
func (v *GraphView) Simulation() *force.Simulation { return v.sim }

// homeTransform is the mode-appropriate default framing: centered at the
// viewport center at a fixed zoom-out in connection mode, fit to the grid
// extent in alignment mode.
func (v *GraphView) homeTransform() Transform {
	w, h := v.camera.Viewport()
	if v.mode == ModeAlignment {
		minX, minY, maxX, maxY := v.grid.Bounds()
		return FitTransform(minX, minY, maxX, maxY, 0, w, h)
	}
	return Transform{TX: w / 2, TY: h / 2, Scale: homeScale}
}

// =============================================================================
// Mode Switching
// =============================================================================

// SetMode switches between the connection and alignment projections: swaps
// the force configuration, reheats the simulation so positions migrate, and
// eases the camera to the new home framing. Pin and hover state never
// survive a mode switch.
func (v *GraphView) SetMode(m Mode) error {
	switch m {
	case ModeConnection, ModeAlignment:
	default:
		return errors.New(errors.ErrCodeInvalidMode, "unknown view mode %q", m)
	}
	if m == v.mode {
		return nil
	}

	v.pinnedID = ""
	v.hoverID = ""
	v.tooltip.hide(true)
	v.mode = m

	if m == ModeAlignment {
		force.ApplyAlignmentConfig(v.sim, v.dataset, v.tuning)
	} else {
		force.ApplyConnectionConfig(v.sim, v.dataset, v.tuning)
	}
	v.sim.Reheat()
	v.camera.TransitionTo(v.homeTransform(), cameraTransition, v.now())
	v.recomputeVisualState()
	v.logger.Debug("view mode switched", "mode", m)
	return nil
}

// =============================================================================
// Highlighting - Pin and Hover
// =============================================================================

// Pin selects a node for persistent neighborhood highlighting and frames the
// camera around the focus and its first-order neighbors. Pinning the node
// that is already pinned clears the pin instead. Replacing one pin with
// another is atomic: stale classification never coexists with the new one.
func (v *GraphView) Pin(id string) error {
	n := v.dataset.NodeByID(id)
	if n == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "pin: no node %q", id)
	}
	if v.mode == ModeAlignment && !v.dataset.AlignmentEligible(n) {
		return errors.New(errors.ErrCodeNodeNotFound, "pin: node %q is not shown in alignment mode", id)
	}
	if v.pinnedID == id {
		v.ClearPin()
		return nil
	}

	v.pinnedID = id
	v.hoverID = ""
	v.recomputeVisualState()

	nb := ComputeNeighborhood(v.dataset, id)
	framed := []*graph.Node{n}
	for fid := range nb.FirstOrder {
		if fn := v.dataset.NodeByID(fid); fn != nil {
			framed = append(framed, fn)
		}
	}
	minX, minY, maxX, maxY := boundsOf(framed)
	w, h := v.camera.Viewport()
	v.camera.TransitionTo(FitTransform(minX, minY, maxX, maxY, pinPadding, w, h), cameraTransition, v.now())

	if n.Truncated {
		v.tooltip.request(id)
	} else {
		v.tooltip.hide(true)
	}
	v.logger.Debug("node pinned", "id", id, "neighbors", len(nb.FirstOrder))
	return nil
}

// ClearPin removes the pinned highlight and eases the camera back home. Safe
// to call when nothing is pinned.
func (v *GraphView) ClearPin() {
	if v.pinnedID == "" {
		return
	}
	v.pinnedID = ""
	v.tooltip.hide(true)
	v.camera.TransitionTo(v.homeTransform(), cameraTransition, v.now())
	v.recomputeVisualState()
}

// Select behaves identically to clicking the node, used by search result
// activation.
func (v *GraphView) Select(id string) error { return v.Pin(id) }

// Hover applies a live highlight preview. Suppressed entirely while a node
// is pinned. Unknown IDs are ignored.
func (v *GraphView) Hover(id string) {
	if v.pinnedID != "" || v.hoverID == id {
		return
	}
	n := v.dataset.NodeByID(id)
	if n == nil {
		return
	}
	v.hoverID = id
	if n.Truncated {
		v.tooltip.request(id)
	}
	v.recomputeVisualState()
}

// Unhover reverts a hover preview. The tooltip fades out in place.
func (v *GraphView) Unhover() {
	if v.pinnedID != "" {
		return
	}
	if v.hoverID == "" {
		return
	}
	v.hoverID = ""
	v.tooltip.hide(false)
	v.recomputeVisualState()
}

// recomputeVisualState derives every node and link classification from the
// current {mode, pinnedID, hoverID} state. Always a full rebuild from
// scratch, so clearing is inherently idempotent and stale classes cannot
// stick.
func (v *GraphView) recomputeVisualState() {
	v.nodeClass = make(map[string]NodeClass, len(v.dataset.Nodes))
	v.linkClass = make([]LinkClass, len(v.dataset.Links))

	focus := v.pinnedID
	if focus == "" {
		focus = v.hoverID
	}
	if focus == "" {
		return
	}

	nb := ComputeNeighborhood(v.dataset, focus)
	for _, n := range v.dataset.Nodes {
		v.nodeClass[n.ID] = nb.NodeClassFor(n.ID)
	}
	for i := range v.dataset.Links {
		v.linkClass[i] = nb.LinkClassFor(i)
	}
}

// NodeClassOf returns the current classification of a node.
func (v *GraphView) NodeClassOf(id string) NodeClass { return v.nodeClass[id] }

// LinkClassOf returns the current classification of the link at index.
func (v *GraphView) LinkClassOf(index int) LinkClass {
	if index < 0 || index >= len(v.linkClass) {
		return LinkNone
	}
	return v.linkClass[index]
}

// =============================================================================
// Dragging
// =============================================================================

// DragStart pins a node to the pointer and warms the simulation so the
// layout follows the drag.
func (v *GraphView) DragStart(id string, px, py float64) error {
	n := v.dataset.NodeByID(id)
	if n == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "drag: no node %q", id)
	}
	v.dragID = id
	wx, wy := v.camera.Transform().Invert(px, py)
	n.X, n.Y = wx, wy
	n.Pin(wx, wy)
	v.sim.SetAlphaTarget(dragAlphaTarget)
	return nil
}

// Drag moves the dragged node to a new pointer position. No-op when no drag
// is in progress.
func (v *GraphView) Drag(px, py float64) {
	n := v.dataset.NodeByID(v.dragID)
	if n == nil {
		return
	}
	wx, wy := v.camera.Transform().Invert(px, py)
	n.X, n.Y = wx, wy
	n.Pin(wx, wy)
}

// DragEnd releases the dragged node and lets the simulation cool back down.
func (v *GraphView) DragEnd() {
	if n := v.dataset.NodeByID(v.dragID); n != nil {
		n.Unpin()
	}
	v.dragID = ""
	v.sim.SetAlphaTarget(0)
}

// =============================================================================
// Camera Gestures
// =============================================================================

// Wheel zooms about a screen point.
func (v *GraphView) Wheel(factor, px, py float64) {
	v.camera.ZoomAbout(factor, px, py)
}

// PanStart begins a background drag. The tooltip's anchor is invalidated, so
// it hides immediately rather than fading.
func (v *GraphView) PanStart() {
	v.tooltip.hide(true)
}

// Pan translates the camera by a screen-space delta.
func (v *GraphView) Pan(dx, dy float64) {
	v.camera.Pan(dx, dy)
}

// Resize updates the viewport dimensions. With no pin active the camera
// re-homes to the new center; with a pin active the camera holds still and
// only the tooltip repositions on the next frame.
func (v *GraphView) Resize(w, h float64) {
	v.camera.SetViewport(w, h)
	if v.pinnedID == "" {
		v.camera.Jump(v.homeTransform())
	}
}

// =============================================================================
// Search
// =============================================================================

// Search matches the query against node titles. Queries shorter than two
// characters return nothing; results keep dataset order and are capped. In
// alignment mode only nodes the projection renders are offered.
func (v *GraphView) Search(query string) []SearchResult {
	if v.mode == ModeAlignment {
		return searchNodes(v.dataset, query, v.dataset.AlignmentEligible)
	}
	return searchNodes(v.dataset, query, nil)
}

// =============================================================================
// Frame Loop
// =============================================================================

// Step advances the simulation by one tick and the camera animation to the
// current time, and reports whether anything moved. A pending tooltip
// becomes visible once the camera settles.
func (v *GraphView) Step() bool {
	simActive := v.sim.Active()
	if simActive {
		v.sim.Step()
	}
	camMoving := v.camera.Step(v.now())
	if !camMoving {
		v.tooltip.settle()
	}
	return simActive || camMoving
}

// Settle runs the simulation until it goes idle, up to limit ticks, and
// snaps any camera animation to its end state. Used by headless rendering.
func (v *GraphView) Settle(limit int) int {
	ticks := v.sim.Settle(limit)
	for v.camera.Step(v.now().Add(cameraTransition)) {
	}
	v.tooltip.settle()
	return ticks
}
