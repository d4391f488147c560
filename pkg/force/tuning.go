package force

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// =============================================================================
// Tuning - Force Configuration Constants
// =============================================================================

// Tuning holds the numeric constants behind the two force configurations.
// Deployments can override them with a TOML file; the zero value is not
// usable, start from DefaultTuning.
type Tuning struct {
	// Connection view. CollideRadius is the per-node collision radius, so
	// two node centers never sit closer than twice its value.
	LinkDistance   float64 `toml:"link_distance"`
	ChargeStrength float64 `toml:"charge_strength"`
	CollideRadius  float64 `toml:"collide_radius"`

	// Alignment view
	AlignLinkDistance   float64 `toml:"align_link_distance"`
	AlignLinkStrength   float64 `toml:"align_link_strength"`
	AlignChargeStrength float64 `toml:"align_charge_strength"`
	AlignCollideRadius  float64 `toml:"align_collide_radius"`
	AlignStrengthScale  float64 `toml:"align_strength_scale"`
	AlignWeakStrength   float64 `toml:"align_weak_strength"`
	GridSize            float64 `toml:"grid_size"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		LinkDistance:   100,
		ChargeStrength: -300,
		CollideRadius:  30,

		AlignLinkDistance:   80,
		AlignLinkStrength:   0.05,
		AlignChargeStrength: -200,
		AlignCollideRadius:  25,
		AlignStrengthScale:  0.3,
		AlignWeakStrength:   0.1,
		GridSize:            1000,
	}
}

// LoadTuning reads TOML overrides over the defaults. Fields absent from the
// file keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrap(errors.ErrCodeFileNotFound, err, "read tuning %s", path)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return t, errors.Wrap(errors.ErrCodeInvalidTuning, err, "parse tuning %s", path)
	}
	return t, nil
}

// =============================================================================
// Named Configurations
// =============================================================================

// Force names shared by both configurations. Swapping a configuration
// replaces forces by name, so stale ones must be removed explicitly.
const (
	forceLink    = "link"
	forceCharge  = "charge"
	forceCenter  = "center"
	forceCollide = "collide"
	forceAlignX  = "alignX"
	forceAlignY  = "alignY"
)

// ApplyConnectionConfig installs the connection-view forces: link springs,
// strong repulsion, centering, and wide collision padding.
func ApplyConnectionConfig(s *Simulation, d *graph.Dataset, t Tuning) {
	s.SetForce(forceLink, &LinkForce{Links: d.Links, Distance: t.LinkDistance})
	s.SetForce(forceCharge, &ManyBody{Strength: t.ChargeStrength})
	s.SetForce(forceCenter, &Center{})
	s.SetForce(forceCollide, &Collide{Radius: t.CollideRadius})
	s.SetForce(forceAlignX, nil)
	s.SetForce(forceAlignY, nil)
}

// ApplyAlignmentConfig installs the alignment-view forces: links weakened to
// near-irrelevance, no centering, and per-node positional pulls toward the
// law/chaos x good/evil grid position scaled by classification confidence.
// Nodes without alignment data drift weakly toward the origin.
func ApplyAlignmentConfig(s *Simulation, d *graph.Dataset, t Tuning) {
	half := t.GridSize / 2

	targetX := func(n *graph.Node) float64 {
		if n.Alignment == nil {
			return 0
		}
		return -n.Alignment.LawChaos * half
	}
	targetY := func(n *graph.Node) float64 {
		if n.Alignment == nil {
			return 0
		}
		return -n.Alignment.GoodEvil * half
	}
	strength := func(n *graph.Node) float64 {
		if n.Alignment == nil {
			return t.AlignWeakStrength
		}
		return n.Alignment.Confidence * t.AlignStrengthScale
	}

	s.SetForce(forceLink, &LinkForce{Links: d.Links, Distance: t.AlignLinkDistance, Strength: t.AlignLinkStrength})
	s.SetForce(forceCharge, &ManyBody{Strength: t.AlignChargeStrength})
	s.SetForce(forceCenter, nil)
	s.SetForce(forceCollide, &Collide{Radius: t.AlignCollideRadius})
	s.SetForce(forceAlignX, &PositionX{Target: targetX, Strength: strength})
	s.SetForce(forceAlignY, &PositionY{Target: targetY, Strength: strength})
}
