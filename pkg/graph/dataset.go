package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
)

// =============================================================================
// Dataset - Immutable Graph Input
// =============================================================================

// Dataset is the graph input produced by the extraction pipeline: nodes,
// links, and the set of collection IDs eligible for the alignment view.
//
// The dataset is loaded once per page session. Node identity fields and the
// link set never change after loading; only per-node runtime state mutates.
type Dataset struct {
	Nodes                  []*Node
	Links                  []*Link
	AlignmentCollectionIDs map[string]bool

	byID      map[string]*Node
	neighbors map[string][]*Node
}

// NewDataset builds a dataset from already-resolved nodes and links, without
// going through the wire format. Links must reference nodes from the slice.
// Useful for callers that synthesize graphs in memory.
func NewDataset(nodes []*Node, links []*Link, alignmentCollectionIDs []string) *Dataset {
	d := &Dataset{
		Nodes:                  nodes,
		Links:                  links,
		AlignmentCollectionIDs: make(map[string]bool, len(alignmentCollectionIDs)),
		byID:                   make(map[string]*Node, len(nodes)),
		neighbors:              make(map[string][]*Node),
	}
	for _, id := range alignmentCollectionIDs {
		d.AlignmentCollectionIDs[id] = true
	}
	for _, n := range nodes {
		d.byID[n.ID] = n
	}
	for _, l := range links {
		d.neighbors[l.Source.ID] = append(d.neighbors[l.Source.ID], l.Target)
		d.neighbors[l.Target.ID] = append(d.neighbors[l.Target.ID], l.Source)
	}
	for _, n := range nodes {
		if n.Connections == 0 {
			n.Connections = len(d.neighbors[n.ID])
		}
		if n.Radius == 0 {
			n.Radius = radiusFor(n.Connections)
		}
	}
	return d
}

// datasetJSON is the wire format written by the extraction pipeline.
type datasetJSON struct {
	Nodes                  []*Node    `json:"nodes"`
	Links                  []linkJSON `json:"links"`
	AlignmentCollectionIDs []string   `json:"alignmentCollectionIds"`
}

type linkJSON struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Value        float64 `json:"value,omitempty"`
	Relationship string  `json:"relationship,omitempty"`
}

// =============================================================================
// Loading
// =============================================================================

// Option configures dataset decoding.
type Option func(*decoder)

// WithLogger attaches a logger used to report skipped links and other
// degraded-but-nonfatal data faults.
func WithLogger(l *charmlog.Logger) Option {
	return func(d *decoder) { d.logger = l }
}

type decoder struct {
	logger *charmlog.Logger
}

// ReadDatasetFile reads and decodes a dataset JSON file.
func ReadDatasetFile(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open dataset %s", path)
	}
	defer f.Close()
	return ReadDataset(f, opts...)
}

// ReadDataset decodes a dataset from an io.Reader.
//
// Links that reference a missing node are a data-integrity fault in the
// upstream pipeline: they are logged and skipped so the rest of the graph
// stays interactive. Decoding fails only when the JSON itself is malformed
// or the dataset contains no nodes.
func ReadDataset(r io.Reader, opts ...Option) (*Dataset, error) {
	dec := decoder{logger: charmlog.Default()}
	for _, opt := range opts {
		opt(&dec)
	}

	var wire datasetJSON
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode dataset")
	}
	if len(wire.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset contains no nodes")
	}

	d := &Dataset{
		Nodes:                  wire.Nodes,
		AlignmentCollectionIDs: make(map[string]bool, len(wire.AlignmentCollectionIDs)),
		byID:                   make(map[string]*Node, len(wire.Nodes)),
		neighbors:              make(map[string][]*Node),
	}
	for _, id := range wire.AlignmentCollectionIDs {
		d.AlignmentCollectionIDs[id] = true
	}
	for _, n := range wire.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "node with empty ID")
		}
		if prev := d.byID[n.ID]; prev != nil {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate node ID %q", n.ID)
		}
		d.byID[n.ID] = n
	}

	degrees := make(map[string]int, len(wire.Nodes))
	for _, lj := range wire.Links {
		src, dst := d.byID[lj.Source], d.byID[lj.Target]
		if src == nil || dst == nil {
			dec.logger.Warn("skipping dangling link",
				"source", lj.Source, "target", lj.Target,
				"code", errors.ErrCodeDanglingLink)
			continue
		}
		l := &Link{Source: src, Target: dst, Value: lj.Value, Relationship: lj.Relationship}
		d.Links = append(d.Links, l)
		d.neighbors[src.ID] = append(d.neighbors[src.ID], dst)
		d.neighbors[dst.ID] = append(d.neighbors[dst.ID], src)
		degrees[src.ID]++
		degrees[dst.ID]++
	}

	for _, n := range d.Nodes {
		if n.Connections == 0 {
			n.Connections = degrees[n.ID]
		}
		n.Radius = radiusFor(n.Connections)
	}

	return d, nil
}

// Clone deep-copies the dataset so independent sessions can mutate node
// positions without disturbing each other. Identity fields, link topology,
// and derived radii carry over; runtime layout state starts fresh.
func (d *Dataset) Clone() *Dataset {
	nodes := make([]*Node, len(d.Nodes))
	byID := make(map[string]*Node, len(d.Nodes))
	for i, n := range d.Nodes {
		c := &Node{
			ID:           n.ID,
			Title:        n.Title,
			CollectionID: n.CollectionID,
			Connections:  n.Connections,
			URLID:        n.URLID,
			Radius:       n.Radius,
		}
		if n.Alignment != nil {
			a := *n.Alignment
			c.Alignment = &a
		}
		nodes[i] = c
		byID[n.ID] = c
	}

	links := make([]*Link, len(d.Links))
	for i, l := range d.Links {
		links[i] = &Link{
			Source:       byID[l.Source.ID],
			Target:       byID[l.Target.ID],
			Value:        l.Value,
			Relationship: l.Relationship,
		}
	}

	ids := make([]string, 0, len(d.AlignmentCollectionIDs))
	for id := range d.AlignmentCollectionIDs {
		ids = append(ids, id)
	}
	return NewDataset(nodes, links, ids)
}

// =============================================================================
// Lookup
// =============================================================================

// NodeByID returns the node with the given ID, or nil.
func (d *Dataset) NodeByID(id string) *Node {
	return d.byID[id]
}

// Neighbors returns the nodes directly linked to id, in either direction.
// A node linked twice appears twice; callers needing a set must dedupe.
func (d *Dataset) Neighbors(id string) []*Node {
	return d.neighbors[id]
}

// Degree returns the number of links touching the node.
func (d *Dataset) Degree(id string) int {
	return len(d.neighbors[id])
}

// AlignmentEligible reports whether the node's collection participates in
// the alignment view.
func (d *Dataset) AlignmentEligible(n *Node) bool {
	return d.AlignmentCollectionIDs[n.CollectionID]
}

// String summarizes the dataset for logs.
func (d *Dataset) String() string {
	return fmt.Sprintf("dataset(%d nodes, %d links, %d alignment collections)",
		len(d.Nodes), len(d.Links), len(d.AlignmentCollectionIDs))
}
