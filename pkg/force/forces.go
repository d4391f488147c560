package force

import (
	"math"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// jiggle breaks exact coincidence between two nodes so forces have a
// direction to push along.
func jiggle(i int) float64 {
	return (float64(i%7)-3.0)*1e-6 + 1e-6
}

// =============================================================================
// Link Force - Spring Attraction Along Edges
// =============================================================================

// LinkForce pulls linked nodes toward a target distance. When Strength is
// zero, each link uses 1/min(degree) of its endpoints, which keeps hub nodes
// from being yanked around by their many edges.
type LinkForce struct {
	Links    []*graph.Link
	Distance float64
	Strength float64

	degree map[string]int
}

func (f *LinkForce) Initialize(nodes []*graph.Node) {
	f.degree = make(map[string]int, len(nodes))
	for _, l := range f.Links {
		f.degree[l.Source.ID]++
		f.degree[l.Target.ID]++
	}
}

func (f *LinkForce) Apply(alpha float64) {
	for i, l := range f.Links {
		src, dst := l.Source, l.Target

		strength := f.Strength
		if strength == 0 {
			strength = 1 / float64(min(f.degree[src.ID], f.degree[dst.ID]))
		}

		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		if dx == 0 && dy == 0 {
			dx, dy = jiggle(i), jiggle(i+1)
		}
		dist := math.Hypot(dx, dy)
		k := (dist - f.Distance) / dist * alpha * strength

		// Heavier endpoints move less.
		bias := float64(f.degree[src.ID]) / float64(f.degree[src.ID]+f.degree[dst.ID])
		dst.VX -= dx * k * bias
		dst.VY -= dy * k * bias
		src.VX += dx * k * (1 - bias)
		src.VY += dy * k * (1 - bias)
	}
}

// =============================================================================
// Many-Body Force - Pairwise Repulsion
// =============================================================================

// ManyBody applies pairwise charge between all nodes. Negative strength
// repels. The O(n²) pass is pairwise-exact; at wiki-graph scale that is
// cheaper than maintaining a quadtree.
type ManyBody struct {
	Strength float64

	nodes []*graph.Node
}

func (f *ManyBody) Initialize(nodes []*graph.Node) { f.nodes = nodes }

func (f *ManyBody) Apply(alpha float64) {
	for i, a := range f.nodes {
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			if dx == 0 && dy == 0 {
				dx, dy = jiggle(i), jiggle(j)
			}
			d2 := dx*dx + dy*dy
			w := f.Strength * alpha / d2
			b.VX += dx * w
			b.VY += dy * w
			a.VX -= dx * w
			a.VY -= dy * w
		}
	}
}

// =============================================================================
// Center Force - Mean-Position Translation
// =============================================================================

// Center translates all nodes so their centroid sits at (X, Y). Unlike the
// other forces it adjusts positions directly and ignores alpha, so the graph
// never drifts off screen while cooling.
type Center struct {
	X, Y float64

	nodes []*graph.Node
}

func (f *Center) Initialize(nodes []*graph.Node) { f.nodes = nodes }

func (f *Center) Apply(float64) {
	if len(f.nodes) == 0 {
		return
	}
	var sx, sy float64
	for _, n := range f.nodes {
		sx += n.X
		sy += n.Y
	}
	sx = sx/float64(len(f.nodes)) - f.X
	sy = sy/float64(len(f.nodes)) - f.Y
	for _, n := range f.nodes {
		n.X -= sx
		n.Y -= sy
	}
}

// =============================================================================
// Collide Force - Minimum Separation
// =============================================================================

// Collide pushes overlapping nodes apart so no two circles of the given
// Radius intersect. Radius is per node, so centers end up at least 2*Radius
// apart, matching d3's forceCollide(r).
type Collide struct {
	Radius   float64
	Strength float64 // defaults to 1

	nodes []*graph.Node
}

func (f *Collide) Initialize(nodes []*graph.Node) { f.nodes = nodes }

func (f *Collide) Apply(float64) {
	strength := f.Strength
	if strength == 0 {
		strength = 1
	}
	minDist := 2 * f.Radius
	for i, a := range f.nodes {
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]
			dx := b.X + b.VX - a.X - a.VX
			dy := b.Y + b.VY - a.Y - a.VY
			if dx == 0 && dy == 0 {
				dx, dy = jiggle(i), jiggle(j)
			}
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			k := (minDist - dist) / dist * strength / 2
			b.VX += dx * k
			b.VY += dy * k
			a.VX -= dx * k
			a.VY -= dy * k
		}
	}
}

// =============================================================================
// Positional Forces - Per-Node Axis Targets
// =============================================================================

// PositionX pulls each node toward a per-node x target with a per-node
// strength. The alignment view uses it to project law/chaos scores onto the
// horizontal axis.
type PositionX struct {
	Target   func(*graph.Node) float64
	Strength func(*graph.Node) float64

	nodes []*graph.Node
}

func (f *PositionX) Initialize(nodes []*graph.Node) { f.nodes = nodes }

func (f *PositionX) Apply(alpha float64) {
	for _, n := range f.nodes {
		n.VX += (f.Target(n) - n.X) * f.Strength(n) * alpha
	}
}

// PositionY is the vertical counterpart of PositionX, used for good/evil.
type PositionY struct {
	Target   func(*graph.Node) float64
	Strength func(*graph.Node) float64

	nodes []*graph.Node
}

func (f *PositionY) Initialize(nodes []*graph.Node) { f.nodes = nodes }

func (f *PositionY) Apply(alpha float64) {
	for _, n := range f.nodes {
		n.VY += (f.Target(n) - n.Y) * f.Strength(n) * alpha
	}
}
