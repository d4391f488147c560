package view

import (
	"math"
	"time"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// Scale limits for the scene transform.
const (
	minScale = 0.1
	maxScale = 8.0
)

// fitFill leaves a margin when framing a bounding box.
const fitFill = 0.9

// =============================================================================
// Transform - 2D Affine Scene Transform
// =============================================================================

// Transform is a translate-plus-uniform-scale mapping from world space to
// screen space: screen = world*Scale + (TX, TY).
type Transform struct {
	TX, TY float64
	Scale  float64
}

// Apply maps a world point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// Invert maps a screen point back to world space.
func (t Transform) Invert(px, py float64) (float64, float64) {
	return (px - t.TX) / t.Scale, (py - t.TY) / t.Scale
}

func clampScale(k float64) float64 {
	return math.Max(minScale, math.Min(maxScale, k))
}

// FitTransform frames the bounding box (expanded by padding on all sides)
// inside a viewport, filling 90% of the limiting dimension and centering on
// the box centroid.
func FitTransform(minX, minY, maxX, maxY, padding, width, height float64) Transform {
	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding

	bw, bh := maxX-minX, maxY-minY
	scale := maxScale
	if bw > 0 && bh > 0 {
		scale = clampScale(math.Min(width/bw, height/bh) * fitFill)
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return Transform{
		TX:    width/2 - cx*scale,
		TY:    height/2 - cy*scale,
		Scale: scale,
	}
}

// boundsOf returns the axis-aligned bounding box of the given nodes.
func boundsOf(nodes []*graph.Node) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X-n.Radius)
		minY = math.Min(minY, n.Y-n.Radius)
		maxX = math.Max(maxX, n.X+n.Radius)
		maxY = math.Max(maxY, n.Y+n.Radius)
	}
	return
}

// =============================================================================
// Camera - Animated Viewport
// =============================================================================

// Camera owns the scene transform and its transitions. Starting a new
// transition interrupts any transition in flight; there is no animation
// queue, so rapid repeated input cannot build a backlog.
type Camera struct {
	width, height float64
	current       Transform
	anim          *cameraTween
}

type cameraTween struct {
	from, to Transform
	start    time.Time
	duration time.Duration
}

// NewCamera creates a camera over a viewport with an identity transform.
func NewCamera(width, height float64) Camera {
	return Camera{width: width, height: height, current: Transform{Scale: 1}}
}

// Viewport returns the stored viewport dimensions.
func (c *Camera) Viewport() (w, h float64) { return c.width, c.height }

// SetViewport updates the stored viewport dimensions.
func (c *Camera) SetViewport(w, h float64) { c.width, c.height = w, h }

// Transform returns the current transform.
func (c *Camera) Transform() Transform { return c.current }

// Animating reports whether a transition is in flight.
func (c *Camera) Animating() bool { return c.anim != nil }

// Jump sets the transform immediately, cancelling any transition.
func (c *Camera) Jump(t Transform) {
	t.Scale = clampScale(t.Scale)
	c.current = t
	c.anim = nil
}

// TransitionTo starts an eased transition toward t, interrupting any
// transition already in flight.
func (c *Camera) TransitionTo(t Transform, d time.Duration, now time.Time) {
	t.Scale = clampScale(t.Scale)
	if d <= 0 {
		c.Jump(t)
		return
	}
	c.anim = &cameraTween{from: c.current, to: t, start: now, duration: d}
}

// Step advances an in-flight transition and reports whether the camera is
// still animating after the step.
func (c *Camera) Step(now time.Time) bool {
	if c.anim == nil {
		return false
	}
	p := float64(now.Sub(c.anim.start)) / float64(c.anim.duration)
	if p >= 1 {
		c.current = c.anim.to
		c.anim = nil
		return false
	}
	if p < 0 {
		p = 0
	}
	e := easeCubicInOut(p)
	c.current = Transform{
		TX:    lerp(c.anim.from.TX, c.anim.to.TX, e),
		TY:    lerp(c.anim.from.TY, c.anim.to.TY, e),
		Scale: lerp(c.anim.from.Scale, c.anim.to.Scale, e),
	}
	return true
}

// ZoomAbout scales the transform by factor, keeping the screen point
// (px, py) fixed. Cancels any transition in flight.
func (c *Camera) ZoomAbout(factor, px, py float64) {
	c.anim = nil
	k := clampScale(c.current.Scale * factor)
	ratio := k / c.current.Scale
	c.current = Transform{
		TX:    px - (px-c.current.TX)*ratio,
		TY:    py - (py-c.current.TY)*ratio,
		Scale: k,
	}
}

// Pan translates the transform by a screen-space delta. Cancels any
// transition in flight.
func (c *Camera) Pan(dx, dy float64) {
	c.anim = nil
	c.current.TX += dx
	c.current.TY += dy
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// easeCubicInOut is the symmetric cubic easing used for camera transitions.
func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
