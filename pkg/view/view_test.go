package view

import (
	"fmt"
	"io"
	"math"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/force"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// =============================================================================
// Helpers
// =============================================================================

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func quietLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

// testDataset builds the A-B, B-C chain: Dragon and Drake are
// alignment-eligible characters, Castle is not.
func testDataset() *graph.Dataset {
	a := &graph.Node{ID: "a", Title: "Dragon", CollectionID: "char"}
	b := &graph.Node{ID: "b", Title: "Drake", CollectionID: "char"}
	c := &graph.Node{ID: "c", Title: "Castle", CollectionID: "place"}
	links := []*graph.Link{
		{Source: a, Target: b},
		{Source: b, Target: c},
	}
	return graph.NewDataset([]*graph.Node{a, b, c}, links, []string{"char"})
}

func newTestView(t *testing.T, d *graph.Dataset) (*GraphView, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	v := New(d, graph.NewColorTable(nil), force.DefaultTuning(), 1000, 800,
		WithLogger(quietLogger()), WithClock(clock.now))
	return v, clock
}

// settleCamera advances the clock past any transition and steps until idle.
func settleCamera(v *GraphView, clock *fakeClock) {
	clock.advance(2 * cameraTransition)
	for v.camera.Step(clock.now()) {
	}
	v.tooltip.settle()
}

// =============================================================================
// Neighborhood Highlighting
// =============================================================================

func TestComputeNeighborhoodChain(t *testing.T) {
	d := testDataset()
	nb := ComputeNeighborhood(d, "a")

	if !nb.FirstOrder["b"] || len(nb.FirstOrder) != 1 {
		t.Errorf("first order = %v, want {b}", nb.FirstOrder)
	}
	if !nb.SecondOrder["c"] || len(nb.SecondOrder) != 1 {
		t.Errorf("second order = %v, want {c}", nb.SecondOrder)
	}
	if !nb.FirstOrderLinks[0] {
		t.Error("link a-b should be first-order")
	}
	if !nb.SecondOrderLinks[1] {
		t.Error("link b-c should be second-order")
	}
}

func TestNeighborhoodExclusions(t *testing.T) {
	// Triangle a-b-c plus spoke c-d: from a, both b and c are first-order,
	// so neither may reappear in second-order, and a never appears at all.
	a := &graph.Node{ID: "a", Title: "A"}
	b := &graph.Node{ID: "b", Title: "B"}
	c := &graph.Node{ID: "c", Title: "C"}
	e := &graph.Node{ID: "d", Title: "D"}
	links := []*graph.Link{
		{Source: a, Target: b},
		{Source: b, Target: c},
		{Source: c, Target: a},
		{Source: c, Target: e},
	}
	d := graph.NewDataset([]*graph.Node{a, b, c, e}, links, nil)

	nb := ComputeNeighborhood(d, "a")
	if nb.FirstOrder["a"] || nb.SecondOrder["a"] {
		t.Error("focus node leaked into neighbor sets")
	}
	for id := range nb.SecondOrder {
		if nb.FirstOrder[id] {
			t.Errorf("node %s in both first and second order", id)
		}
	}
	if !nb.FirstOrder["b"] || !nb.FirstOrder["c"] {
		t.Errorf("first order = %v, want b and c", nb.FirstOrder)
	}
	if !nb.SecondOrder["d"] || len(nb.SecondOrder) != 1 {
		t.Errorf("second order = %v, want {d}", nb.SecondOrder)
	}
	// b-c joins two first-order nodes and stays dimmed.
	if nb.SecondOrderLinks[1] {
		t.Error("link between two first-order nodes classified second-order")
	}
}

func TestPinClassifiesNodesAndLinks(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	want := map[string]NodeClass{"a": NodeFocus, "b": NodeFirstOrder, "c": NodeSecondOrder}
	for id, class := range want {
		if got := v.NodeClassOf(id); got != class {
			t.Errorf("node %s class = %v, want %v", id, got, class)
		}
	}
	if got := v.LinkClassOf(0); got != LinkFirstOrder {
		t.Errorf("link 0 class = %v, want first-order", got)
	}
	if got := v.LinkClassOf(1); got != LinkSecondOrder {
		t.Errorf("link 1 class = %v, want second-order", got)
	}
}

func TestClearHighlightIdempotent(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	v.ClearPin()
	v.ClearPin()

	for _, id := range []string{"a", "b", "c"} {
		if got := v.NodeClassOf(id); got != NodeNone {
			t.Errorf("node %s class = %v after clear, want none", id, got)
		}
	}
	for i := 0; i < 2; i++ {
		if got := v.LinkClassOf(i); got != LinkNone {
			t.Errorf("link %d class = %v after clear, want none", i, got)
		}
	}
}

func TestPinToggleAndReplace(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin toggle: %v", err)
	}
	if v.PinnedID() != "" {
		t.Fatalf("pinned = %q after toggle, want empty", v.PinnedID())
	}

	// Replacing a pin swaps classification atomically.
	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if err := v.Pin("c"); err != nil {
		t.Fatalf("Pin replace: %v", err)
	}
	if v.PinnedID() != "c" {
		t.Fatalf("pinned = %q, want c", v.PinnedID())
	}
	if got := v.NodeClassOf("c"); got != NodeFocus {
		t.Errorf("node c class = %v, want focus", got)
	}
	if got := v.NodeClassOf("a"); got != NodeSecondOrder {
		t.Errorf("node a class = %v, want second-order", got)
	}
}

func TestHoverSuppressedWhilePinned(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	v.Hover("c")
	if got := v.NodeClassOf("c"); got != NodeSecondOrder {
		t.Errorf("hover while pinned changed classification: node c = %v", got)
	}
	v.Unhover()
	if got := v.NodeClassOf("a"); got != NodeFocus {
		t.Errorf("unhover while pinned cleared pin classification: node a = %v", got)
	}
}

func TestHoverPreviewReverts(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	v.Hover("b")
	if got := v.NodeClassOf("b"); got != NodeFocus {
		t.Fatalf("node b class = %v during hover, want focus", got)
	}
	v.Unhover()
	if got := v.NodeClassOf("b"); got != NodeNone {
		t.Errorf("node b class = %v after unhover, want none", got)
	}
}

func TestPinUnknownNode(t *testing.T) {
	v, _ := newTestView(t, testDataset())
	if err := v.Pin("nope"); err == nil {
		t.Fatal("expected error pinning unknown node")
	}
}

func TestAlignmentModePinRejectsHiddenNode(t *testing.T) {
	v, _ := newTestView(t, testDataset())
	if err := v.SetMode(ModeAlignment); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	// Castle is not alignment-eligible, so the projection never renders
	// it; pinning it would frame the camera on an invisible node.
	if err := v.Pin("c"); err == nil {
		t.Fatal("expected error pinning hidden node in alignment mode")
	}
	if v.PinnedID() != "" {
		t.Errorf("pinned = %q after rejected pin, want none", v.PinnedID())
	}

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin(a): %v", err)
	}
	if v.PinnedID() != "a" {
		t.Errorf("pinned = %q, want a", v.PinnedID())
	}
}

// =============================================================================
// Mode Switching
// =============================================================================

func TestModeRoundTrip(t *testing.T) {
	v, clock := newTestView(t, testDataset())
	home := v.camera.Transform()

	if err := v.SetMode(ModeAlignment); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if v.sim.Alpha() != 1 {
		t.Errorf("alpha = %v after mode switch, want reheated to 1", v.sim.Alpha())
	}

	f := v.Frame()
	if f.Grid == nil {
		t.Error("alignment frame missing grid")
	}
	if len(f.Nodes) != 2 {
		t.Errorf("alignment frame has %d nodes, want 2 eligible", len(f.Nodes))
	}
	for _, nv := range f.Nodes {
		if nv.ID == "c" {
			t.Error("ineligible node visible in alignment mode")
		}
		if nv.Category == "" {
			t.Errorf("node %s missing category class in alignment mode", nv.ID)
		}
	}
	if len(f.Links) != 1 || f.Links[0].Index != 0 {
		t.Errorf("alignment frame links = %+v, want only link 0", f.Links)
	}

	if err := v.SetMode(ModeConnection); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	settleCamera(v, clock)

	if got := v.camera.Transform(); got != home {
		t.Errorf("camera = %+v after round trip, want home %+v", got, home)
	}
	f = v.Frame()
	if f.Grid != nil {
		t.Error("connection frame still has grid")
	}
	if len(f.Nodes) != 3 || len(f.Links) != 2 {
		t.Errorf("connection frame has %d nodes %d links, want 3 and 2", len(f.Nodes), len(f.Links))
	}
	for _, nv := range f.Nodes {
		if nv.Category != "" {
			t.Errorf("node %s keeps category class in connection mode", nv.ID)
		}
	}
}

func TestModeSwitchCancelsPin(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if err := v.SetMode(ModeAlignment); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if v.PinnedID() != "" {
		t.Errorf("pin survived mode switch: %q", v.PinnedID())
	}
	if got := v.NodeClassOf("a"); got != NodeNone {
		t.Errorf("node a class = %v after mode switch, want none", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"connection", "alignment"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("orbit"); err == nil {
		t.Error("ParseMode accepted unknown mode")
	}
}

// =============================================================================
// Camera
// =============================================================================

func TestResizeReHomesOnlyWhenUnpinned(t *testing.T) {
	v, clock := newTestView(t, testDataset())

	v.Resize(600, 400)
	want := Transform{TX: 300, TY: 200, Scale: homeScale}
	if got := v.camera.Transform(); got != want {
		t.Fatalf("camera = %+v after unpinned resize, want %+v", got, want)
	}

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	settleCamera(v, clock)
	framed := v.camera.Transform()

	v.Resize(1200, 900)
	if got := v.camera.Transform(); got != framed {
		t.Errorf("camera moved on resize while pinned: %+v -> %+v", framed, got)
	}
}

func TestWheelZoomKeepsPointerFixed(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	px, py := 720.0, 130.0
	wx, wy := v.camera.Transform().Invert(px, py)
	v.Wheel(1.7, px, py)
	gx, gy := v.camera.Transform().Invert(px, py)

	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Errorf("world point under pointer moved: (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
	}
}

func TestZoomScaleClamped(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	for i := 0; i < 20; i++ {
		v.Wheel(10, 500, 400)
	}
	if got := v.camera.Transform().Scale; got != maxScale {
		t.Errorf("scale = %v after zooming in, want clamp at %v", got, maxScale)
	}
	for i := 0; i < 20; i++ {
		v.Wheel(0.01, 500, 400)
	}
	if got := v.camera.Transform().Scale; got != minScale {
		t.Errorf("scale = %v after zooming out, want clamp at %v", got, minScale)
	}
}

func TestFitTransform(t *testing.T) {
	got := FitTransform(-100, -100, 100, 100, 0, 1000, 500)
	if math.Abs(got.Scale-2.25) > 1e-9 {
		t.Errorf("scale = %v, want 2.25", got.Scale)
	}
	if math.Abs(got.TX-500) > 1e-9 || math.Abs(got.TY-250) > 1e-9 {
		t.Errorf("translate = (%v,%v), want viewport center", got.TX, got.TY)
	}
}

func TestTransitionInterrupted(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cam := NewCamera(1000, 800)

	cam.TransitionTo(Transform{TX: 100, TY: 0, Scale: 1}, time.Second, clock.now())
	clock.advance(500 * time.Millisecond)
	cam.Step(clock.now())

	// A new transition replaces the old one; the original target is never
	// reached.
	cam.TransitionTo(Transform{TX: -100, TY: 0, Scale: 2}, time.Second, clock.now())
	clock.advance(2 * time.Second)
	cam.Step(clock.now())

	if got := cam.Transform(); got != (Transform{TX: -100, TY: 0, Scale: 2}) {
		t.Errorf("camera = %+v, want interrupted target", got)
	}
	if cam.Animating() {
		t.Error("camera still animating after transition completed")
	}
}

// =============================================================================
// Search
// =============================================================================

func TestSearch(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	results := v.Search("dra")
	if len(results) != 2 || results[0].Title != "Dragon" || results[1].Title != "Drake" {
		t.Errorf("Search(dra) = %+v, want Dragon then Drake", results)
	}
	if got := v.Search("d"); got != nil {
		t.Errorf("single-character query returned %+v, want nothing", got)
	}
	if got := v.Search("zzz"); got != nil {
		t.Errorf("Search(zzz) = %+v, want nothing", got)
	}
}

func TestSearchCapped(t *testing.T) {
	nodes := make([]*graph.Node, 15)
	for i := range nodes {
		nodes[i] = &graph.Node{ID: fmt.Sprintf("n%d", i), Title: fmt.Sprintf("Dragon %d", i)}
	}
	v, _ := newTestView(t, graph.NewDataset(nodes, nil, nil))

	results := v.Search("dragon")
	if len(results) != searchMaxResults {
		t.Fatalf("got %d results, want cap %d", len(results), searchMaxResults)
	}
	// Dataset order is preserved up to the cap.
	for i, r := range results {
		if want := fmt.Sprintf("Dragon %d", i); r.Title != want {
			t.Errorf("result %d = %q, want %q", i, r.Title, want)
		}
	}
}

func TestSearchAlignmentModeHidesIneligible(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if got := v.Search("cas"); len(got) != 1 || got[0].Title != "Castle" {
		t.Fatalf("Search(cas) in connection mode = %+v, want Castle", got)
	}

	if err := v.SetMode(ModeAlignment); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if got := v.Search("cas"); got != nil {
		t.Errorf("Search(cas) in alignment mode = %+v, want nothing", got)
	}
	if got := v.Search("dra"); len(got) != 2 {
		t.Errorf("Search(dra) in alignment mode = %+v, want Dragon and Drake", got)
	}
}

func TestSelectActsLikeClick(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Select("b"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if v.PinnedID() != "b" {
		t.Errorf("pinned = %q after select, want b", v.PinnedID())
	}
	if got := v.NodeClassOf("b"); got != NodeFocus {
		t.Errorf("node b class = %v after select, want focus", got)
	}
}

// =============================================================================
// Dragging
// =============================================================================

func TestDragPinsAndReleases(t *testing.T) {
	v, _ := newTestView(t, testDataset())
	n := v.Dataset().NodeByID("a")

	if err := v.DragStart("a", 500, 400); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if n.FX == nil || n.FY == nil {
		t.Fatal("dragged node not pinned")
	}
	wx, wy := v.camera.Transform().Invert(500, 400)
	if *n.FX != wx || *n.FY != wy {
		t.Errorf("pinned at (%v,%v), want pointer world position (%v,%v)", *n.FX, *n.FY, wx, wy)
	}

	v.Drag(600, 450)
	if wx, _ := v.camera.Transform().Invert(600, 450); *n.FX != wx {
		t.Errorf("drag did not follow pointer")
	}

	// The warm alpha target keeps the layout adjusting under the pointer.
	v.sim.Settle(5000)
	if !v.sim.Active() {
		t.Error("simulation went idle during drag")
	}

	v.DragEnd()
	if n.FX != nil || n.FY != nil {
		t.Error("node still pinned after release")
	}
	if ticks := v.sim.Settle(5000); ticks >= 5000 {
		t.Error("simulation never cooled down after release")
	}
}

// =============================================================================
// Frames and Tooltips
// =============================================================================

func TestFramePaintOrder(t *testing.T) {
	v, _ := newTestView(t, testDataset())

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	f := v.Frame()
	wantNodes := []string{"c", "b", "a"}
	for i, id := range wantNodes {
		if f.Nodes[i].ID != id {
			t.Errorf("paint position %d = %s, want %s", i, f.Nodes[i].ID, id)
		}
	}
	if f.Links[0].Index != 1 || f.Links[1].Index != 0 {
		t.Errorf("link paint order = %d,%d, want second-order below first-order",
			f.Links[0].Index, f.Links[1].Index)
	}
}

func TestFrameNodeColors(t *testing.T) {
	teal := "#118877"
	colors := graph.NewColorTable(map[string]*string{"char": &teal})
	clock := &fakeClock{t: time.Unix(0, 0)}
	v := New(testDataset(), colors, force.DefaultTuning(), 1000, 800,
		WithLogger(quietLogger()), WithClock(clock.now))

	f := v.Frame()
	for _, nv := range f.Nodes {
		want := teal
		if nv.ID == "c" {
			want = graph.DefaultColor
		}
		if nv.Color != want {
			t.Errorf("node %s color = %q, want %q", nv.ID, nv.Color, want)
		}
	}
}

// truncatedDataset has a node whose label cannot fit untruncated, so
// tooltips activate for it.
func truncatedDataset() *graph.Dataset {
	a := &graph.Node{ID: "a", Title: "Extraordinarily Convoluted Appellation of Consequence"}
	b := &graph.Node{ID: "b", Title: "B"}
	links := []*graph.Link{{Source: a, Target: b, Relationship: "bound to"}}
	return graph.NewDataset([]*graph.Node{a, b}, links, nil)
}

func TestTooltipWaitsForCamera(t *testing.T) {
	v, clock := newTestView(t, truncatedDataset())

	if !v.Dataset().NodeByID("a").Truncated {
		t.Fatal("test label unexpectedly fits untruncated")
	}

	if err := v.Pin("a"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	v.Step()
	if f := v.Frame(); f.Tooltip != nil {
		t.Error("tooltip shown while framing transition still in flight")
	}

	settleCamera(v, clock)
	f := v.Frame()
	if f.Tooltip == nil {
		t.Fatal("tooltip missing after camera settled")
	}
	if f.Tooltip.NodeID != "a" {
		t.Errorf("tooltip node = %q, want a", f.Tooltip.NodeID)
	}
	if len(f.Tooltip.Rows) != 1 || f.Tooltip.Rows[0] != "bound to B" {
		t.Errorf("tooltip rows = %v, want [bound to B]", f.Tooltip.Rows)
	}

	// The anchor sits below the node in screen space.
	n := v.Dataset().NodeByID("a")
	_, py := v.camera.Transform().Apply(n.X, n.Y)
	if f.Tooltip.Y <= py {
		t.Errorf("tooltip y = %v, want below node center %v", f.Tooltip.Y, py)
	}
}

func TestTooltipHiddenImmediatelyOnPan(t *testing.T) {
	v, clock := newTestView(t, truncatedDataset())

	v.Hover("a")
	settleCamera(v, clock)
	if f := v.Frame(); f.Tooltip == nil {
		t.Fatal("tooltip missing after hover settled")
	}

	v.PanStart()
	f := v.Frame()
	if f.Tooltip != nil {
		t.Error("tooltip survived pan start")
	}
	if f.TooltipFade {
		t.Error("pan start should hide without fade")
	}
}

func TestTooltipFadesOnUnhover(t *testing.T) {
	v, clock := newTestView(t, truncatedDataset())

	v.Hover("a")
	settleCamera(v, clock)
	v.Frame()

	v.Unhover()
	f := v.Frame()
	if f.Tooltip != nil {
		t.Error("tooltip still anchored after unhover")
	}
	if !f.TooltipFade {
		t.Error("unhover should fade the tooltip out")
	}
	if v.Frame().TooltipFade {
		t.Error("fade flag not consumed by the frame that carried it")
	}
}

func TestStepGoesIdle(t *testing.T) {
	v, clock := newTestView(t, testDataset())

	ticks := 0
	for v.Step() && ticks < 5000 {
		clock.advance(16 * time.Millisecond)
		ticks++
	}
	if ticks >= 5000 {
		t.Fatal("view never settled")
	}
	if f := v.Frame(); !f.Settled {
		t.Error("frame not marked settled after going idle")
	}
}
