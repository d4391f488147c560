// Package force implements the force-directed layout engine.
//
// A Simulation integrates node positions under a set of named forces once per
// animation frame. The simulation carries a temperature ("alpha") that decays
// each tick; when it drops below the minimum the simulation idles until
// reheated by a drag, a mode switch, or a data reload.
//
// The integrator and the built-in forces follow the velocity-Verlet-with-decay
// scheme popularized by d3-force: each tick forces accumulate into node
// velocities scaled by alpha, then velocities decay and positions advance.
package force

import (
	"math"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// Simulation defaults, tuned for a few hundred wiki nodes.
const (
	alphaMin      = 0.001
	alphaInitial  = 1.0
	velocityDecay = 0.4
	decayTicks    = 300
)

// Force adjusts node velocities (or positions) each tick.
type Force interface {
	// Initialize is called whenever the force is (re)attached to nodes.
	Initialize(nodes []*graph.Node)
	// Apply accumulates the force's effect, scaled by the current alpha.
	Apply(alpha float64)
}

type namedForce struct {
	name  string
	force Force
}

// Simulation integrates node positions under named forces.
// It is not safe for concurrent use; confine it to one goroutine.
type Simulation struct {
	nodes       []*graph.Node
	forces      []namedForce
	alpha       float64
	alphaTarget float64
	alphaDecay  float64
}

// New creates a simulation over the given nodes. Nodes without a position
// are placed on a phyllotaxis spiral so the initial layout has no overlaps
// at the origin.
func New(nodes []*graph.Node) *Simulation {
	s := &Simulation{
		nodes:      nodes,
		alpha:      alphaInitial,
		alphaDecay: 1 - math.Pow(alphaMin, 1.0/decayTicks),
	}
	placeInitial(nodes)
	return s
}

// placeInitial seeds unset positions along a phyllotaxis spiral.
func placeInitial(nodes []*graph.Node) {
	const initialRadius = 10.0
	initialAngle := math.Pi * (3 - math.Sqrt(5))
	for i, n := range nodes {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		n.X = radius * math.Cos(angle)
		n.Y = radius * math.Sin(angle)
	}
}

// SetForce attaches or replaces the named force. Passing nil removes it.
func (s *Simulation) SetForce(name string, f Force) {
	for i, nf := range s.forces {
		if nf.name == name {
			if f == nil {
				s.forces = append(s.forces[:i], s.forces[i+1:]...)
			} else {
				f.Initialize(s.nodes)
				s.forces[i].force = f
			}
			return
		}
	}
	if f == nil {
		return
	}
	f.Initialize(s.nodes)
	s.forces = append(s.forces, namedForce{name: name, force: f})
}

// ClearForces detaches every force.
func (s *Simulation) ClearForces() {
	s.forces = nil
}

// Alpha returns the current simulation temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Active reports whether the next Step will move nodes.
func (s *Simulation) Active() bool {
	return s.alpha >= alphaMin || s.alphaTarget >= alphaMin
}

// Reheat resets the temperature so positions visibly migrate again.
// Called on force-config swaps and data reloads.
func (s *Simulation) Reheat() { s.alpha = alphaInitial }

// SetAlphaTarget holds the temperature near t. Dragging uses a non-zero
// target so the layout keeps adjusting under the pointer; releasing sets it
// back to zero and lets the energy decay.
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// Step advances the simulation one tick and reports whether it is still
// active. An idle simulation is a no-op until perturbed.
func (s *Simulation) Step() bool {
	if !s.Active() {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, nf := range s.forces {
		nf.force.Apply(s.alpha)
	}

	for _, n := range s.nodes {
		if n.FX != nil {
			n.X, n.VX = *n.FX, 0
		} else {
			n.VX *= 1 - velocityDecay
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y, n.VY = *n.FY, 0
		} else {
			n.VY *= 1 - velocityDecay
			n.Y += n.VY
		}
	}
	return true
}

// Settle runs the simulation until it goes idle and returns the tick count.
// The limit guards against configurations that never cool down.
func (s *Simulation) Settle(limit int) int {
	ticks := 0
	for ticks < limit && s.Step() {
		ticks++
	}
	return ticks
}
