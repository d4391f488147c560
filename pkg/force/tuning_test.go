package force

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

func TestDefaultTuning(t *testing.T) {
	tun := DefaultTuning()
	if tun.LinkDistance != 100 || tun.ChargeStrength != -300 || tun.CollideRadius != 30 {
		t.Errorf("connection defaults = %+v", tun)
	}
	if tun.AlignLinkDistance != 80 || tun.AlignLinkStrength != 0.05 {
		t.Errorf("alignment link defaults = %+v", tun)
	}
	if tun.AlignChargeStrength != -200 || tun.AlignCollideRadius != 25 {
		t.Errorf("alignment charge/collide defaults = %+v", tun)
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	content := "link_distance = 150\ngrid_size = 2000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tun.LinkDistance != 150 {
		t.Errorf("LinkDistance = %.0f, want override 150", tun.LinkDistance)
	}
	if tun.GridSize != 2000 {
		t.Errorf("GridSize = %.0f, want override 2000", tun.GridSize)
	}
	if tun.ChargeStrength != -300 {
		t.Errorf("ChargeStrength = %.0f, want untouched default -300", tun.ChargeStrength)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadTuningMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("link_distance = [nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); !errors.Is(err, errors.ErrCodeInvalidTuning) {
		t.Errorf("err = %v, want INVALID_TUNING", err)
	}
}

func alignmentTestDataset() *graph.Dataset {
	a := &graph.Node{ID: "a", CollectionID: "chars",
		Alignment: &graph.Alignment{LawChaos: 1, GoodEvil: 1, Confidence: 1}}
	b := &graph.Node{ID: "b", CollectionID: "chars",
		Alignment: &graph.Alignment{LawChaos: -1, GoodEvil: -1, Confidence: 0.5}}
	c := &graph.Node{ID: "c", CollectionID: "places"}
	return graph.NewDataset(
		[]*graph.Node{a, b, c},
		[]*graph.Link{{Source: a, Target: b}},
		[]string{"chars"},
	)
}

func TestApplyConnectionConfig(t *testing.T) {
	d := alignmentTestDataset()
	s := New(d.Nodes)
	ApplyConnectionConfig(s, d, DefaultTuning())

	names := forceNames(s)
	for _, want := range []string{forceLink, forceCharge, forceCenter, forceCollide} {
		if !names[want] {
			t.Errorf("connection config missing force %q", want)
		}
	}
	if names[forceAlignX] || names[forceAlignY] {
		t.Error("connection config must not carry alignment forces")
	}
}

func TestApplyAlignmentConfig(t *testing.T) {
	d := alignmentTestDataset()
	s := New(d.Nodes)
	ApplyConnectionConfig(s, d, DefaultTuning())
	ApplyAlignmentConfig(s, d, DefaultTuning())

	names := forceNames(s)
	if names[forceCenter] {
		t.Error("alignment config must remove the centering force")
	}
	for _, want := range []string{forceLink, forceCharge, forceCollide, forceAlignX, forceAlignY} {
		if !names[want] {
			t.Errorf("alignment config missing force %q", want)
		}
	}
}

func TestAlignmentConfigProjectsScores(t *testing.T) {
	d := alignmentTestDataset()
	s := New(d.Nodes)
	ApplyAlignmentConfig(s, d, DefaultTuning())
	s.Settle(10000)

	// Lawful-good a: x = -1*500 = -500, y = -1*500 = -500 (up-left quadrant).
	a := d.NodeByID("a")
	if a.X > -200 || a.Y > -200 {
		t.Errorf("lawful-good node at (%.0f, %.0f), want up-left quadrant", a.X, a.Y)
	}
	// Chaotic-evil b: pulled toward (+500, +500).
	b := d.NodeByID("b")
	if b.X < 200 || b.Y < 200 {
		t.Errorf("chaotic-evil node at (%.0f, %.0f), want down-right quadrant", b.X, b.Y)
	}
}

func forceNames(s *Simulation) map[string]bool {
	names := make(map[string]bool, len(s.forces))
	for _, nf := range s.forces {
		names[nf.name] = true
	}
	return names
}
