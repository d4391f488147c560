package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

const testDatasetJSON = `{
  "nodes": [
    {"id": "a", "title": "Dragon", "collectionId": "characters",
     "alignment": {"law_chaos": -0.5, "good_evil": -0.8, "confidence": 0.9}},
    {"id": "b", "title": "Drake", "collectionId": "characters"},
    {"id": "c", "title": "Castle", "collectionId": "places"}
  ],
  "links": [
    {"source": "a", "target": "b", "relationship": "sire of"},
    {"source": "b", "target": "c"}
  ],
  "alignmentCollectionIds": ["characters"]
}`

func writeTestDataset(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(testDatasetJSON), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestRunRenderSVG(t *testing.T) {
	dataset := writeTestDataset(t)
	out := filepath.Join(t.TempDir(), "frame.svg")

	opts := renderOpts{
		output:     out,
		format:     formatSVG,
		mode:       "connection",
		width:      800,
		height:     600,
		ticks:      2000,
		background: "#101014",
	}
	if err := runRender(testCmd(), dataset, opts); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") {
		t.Error("output should contain an svg element")
	}
	if !strings.Contains(svg, `data-id="a"`) {
		t.Error("output should contain node a")
	}
}

func TestRunRenderJSONWithFocus(t *testing.T) {
	dataset := writeTestDataset(t)
	out := filepath.Join(t.TempDir(), "frame.json")

	opts := renderOpts{
		output: out,
		format: formatJSON,
		mode:   "connection",
		focus:  "a",
		width:  800,
		height: 600,
		ticks:  2000,
	}
	if err := runRender(testCmd(), dataset, opts); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"pinnedId": "a"`) {
		t.Error("focused render should carry the pinned node")
	}
}

func TestRunRenderUnknownFormat(t *testing.T) {
	dataset := writeTestDataset(t)

	err := runRender(testCmd(), dataset, renderOpts{format: "png", mode: "connection", width: 800, height: 600, ticks: 10})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestRunRenderRefusesOverwritingDataset(t *testing.T) {
	dataset := writeTestDataset(t)

	opts := renderOpts{
		format: formatSVG,
		mode:   "connection",
		width:  800,
		height: 600,
		ticks:  10,
	}
	err := runRender(testCmd(), dataset, opts)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected overwrite refusal, got %v", err)
	}
}
