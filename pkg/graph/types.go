package graph

import "math"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DefaultColor is used for nodes whose collection has no color table entry.
const DefaultColor = "#69b3a2"

// DefaultLabel replaces empty or whitespace-only node titles.
const DefaultLabel = "Node"

// Radius derivation constants. A node's circle grows with the square root of
// its degree so dense hubs stay legible rather than dominating the scene.
const (
	radiusBase   = 5.0
	radiusScale  = 2.0
	radiusNoData = 10.0
)

// =============================================================================
// Alignment - Law/Chaos x Good/Evil Projection Scores
// =============================================================================

// Alignment holds the behavioral alignment scores attached to eligible nodes.
// Both axes are in [-1, 1]; Confidence is in [0, 1] and scales how strongly
// the alignment forces pull the node toward its grid position.
type Alignment struct {
	LawChaos   float64 `json:"law_chaos"`
	GoodEvil   float64 `json:"good_evil"`
	Confidence float64 `json:"confidence"`
}

// =============================================================================
// Node - Wiki Page Vertex
// =============================================================================

// Node is a wiki page represented as a graph vertex.
//
// The identity fields (ID, Title, CollectionID, Connections, Alignment, URLID)
// are immutable after load. The remaining fields are runtime state mutated by
// the layout engine and the text fitter for the lifetime of the page session.
type Node struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	CollectionID string     `json:"collectionId"`
	Connections  int        `json:"connections,omitempty"`
	Alignment    *Alignment `json:"alignment,omitempty"`
	URLID        string     `json:"urlId,omitempty"`

	// Simulation state. FX/FY are non-nil only while the node is pinned to
	// the pointer during a drag.
	X, Y   float64
	VX, VY float64
	FX, FY *float64

	// Render state, computed once per node at initial layout.
	Radius    float64
	FontSize  float64
	Lines     []string
	Truncated bool
}

// DisplayTitle returns the title, or DefaultLabel when the title is empty.
func (n *Node) DisplayTitle() string {
	if n.Title == "" {
		return DefaultLabel
	}
	return n.Title
}

// Pin fixes the node at (x, y) for the duration of a drag.
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
}

// Unpin releases a dragged node back to the simulation.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// radiusFor derives a circle radius from a degree count.
func radiusFor(connections int) float64 {
	if connections <= 0 {
		return radiusNoData
	}
	return radiusBase + math.Sqrt(float64(connections))*radiusScale
}

// =============================================================================
// Link - Relationship Edge
// =============================================================================

// Link is a relationship edge between two nodes. Source and Target are
// resolved to node references when the dataset is loaded; links that name a
// missing node never survive loading.
type Link struct {
	Source *Node
	Target *Node

	// Value is the optional edge weight; Relationship is the optional label
	// shown in tooltips ("ally of", "killed", ...).
	Value        float64
	Relationship string
}

// Other returns the endpoint opposite to the node with the given ID, or nil
// if neither endpoint matches.
func (l *Link) Other(id string) *Node {
	switch id {
	case l.Source.ID:
		return l.Target
	case l.Target.ID:
		return l.Source
	}
	return nil
}

// Touches reports whether either endpoint has the given ID.
func (l *Link) Touches(id string) bool {
	return l.Source.ID == id || l.Target.ID == id
}
