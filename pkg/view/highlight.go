package view

import "github.com/oakbrad/dungeonchurch-oracle/pkg/graph"

// =============================================================================
// Visual Classification
// =============================================================================

// NodeClass is the exclusive visual state of a node. Paint order follows the
// numeric order: dimmed elements sink to the back, the focus node is topmost.
type NodeClass int

const (
	NodeNone NodeClass = iota
	NodeDimmed
	NodeSecondOrder
	NodeFirstOrder
	NodeFocus
)

// String returns the CSS class name, empty for the neutral state.
func (c NodeClass) String() string {
	switch c {
	case NodeDimmed:
		return "dimmed"
	case NodeSecondOrder:
		return "second-order"
	case NodeFirstOrder:
		return "first-order"
	case NodeFocus:
		return "focus"
	}
	return ""
}

// LinkClass is the exclusive visual state of a link.
type LinkClass int

const (
	LinkNone LinkClass = iota
	LinkDimmed
	LinkSecondOrder
	LinkFirstOrder
)

// String returns the CSS class name, empty for the neutral state.
func (c LinkClass) String() string {
	switch c {
	case LinkDimmed:
		return "dimmed"
	case LinkSecondOrder:
		return "second-order"
	case LinkFirstOrder:
		return "first-order"
	}
	return ""
}

// =============================================================================
// Neighborhood Computation
// =============================================================================

// Neighborhood holds the first- and second-order reach of a focus node.
// Link sets are indices into the dataset's link slice.
type Neighborhood struct {
	FocusID          string
	FirstOrder       map[string]bool
	SecondOrder      map[string]bool
	FirstOrderLinks  map[int]bool
	SecondOrderLinks map[int]bool
}

// ComputeNeighborhood classifies the dataset around a focus node.
//
// First-order nodes are directly linked to the focus in either direction.
// Second-order nodes are linked to a first-order node, excluding the focus
// and anything already first-order. A link is first-order when it touches
// the focus, second-order when it joins a first-order node to a second-order
// node and is not already first-order.
func ComputeNeighborhood(d *graph.Dataset, focusID string) Neighborhood {
	nb := Neighborhood{
		FocusID:          focusID,
		FirstOrder:       make(map[string]bool),
		SecondOrder:      make(map[string]bool),
		FirstOrderLinks:  make(map[int]bool),
		SecondOrderLinks: make(map[int]bool),
	}

	for i, l := range d.Links {
		if !l.Touches(focusID) {
			continue
		}
		nb.FirstOrderLinks[i] = true
		if other := l.Other(focusID); other != nil && other.ID != focusID {
			nb.FirstOrder[other.ID] = true
		}
	}

	for i, l := range d.Links {
		if nb.FirstOrderLinks[i] {
			continue
		}
		for _, pair := range [2][2]*graph.Node{{l.Source, l.Target}, {l.Target, l.Source}} {
			from, to := pair[0], pair[1]
			if !nb.FirstOrder[from.ID] {
				continue
			}
			if to.ID == focusID || nb.FirstOrder[to.ID] {
				continue
			}
			nb.SecondOrder[to.ID] = true
			nb.SecondOrderLinks[i] = true
		}
	}

	return nb
}

// NodeClassFor returns the classification of a node within this neighborhood.
func (nb Neighborhood) NodeClassFor(id string) NodeClass {
	switch {
	case id == nb.FocusID:
		return NodeFocus
	case nb.FirstOrder[id]:
		return NodeFirstOrder
	case nb.SecondOrder[id]:
		return NodeSecondOrder
	}
	return NodeDimmed
}

// LinkClassFor returns the classification of a link within this neighborhood.
func (nb Neighborhood) LinkClassFor(index int) LinkClass {
	switch {
	case nb.FirstOrderLinks[index]:
		return LinkFirstOrder
	case nb.SecondOrderLinks[index]:
		return LinkSecondOrder
	}
	return LinkDimmed
}
