package cli

import (
	charmlog "github.com/charmbracelet/log"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/force"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// artifacts bundles the loaded pipeline outputs every command starts from.
type artifacts struct {
	dataset *graph.Dataset
	colors  *graph.ColorTable
	tuning  force.Tuning
}

// loadArtifacts reads the dataset and the optional color table and force
// tuning files. The color table and tuning fall back to defaults when no
// path is given.
func loadArtifacts(logger *charmlog.Logger, datasetPath, colorsPath, tuningPath string) (*artifacts, error) {
	d, err := graph.ReadDatasetFile(datasetPath, graph.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", "summary", d.String())

	colors := graph.NewColorTable(nil)
	if colorsPath != "" {
		colors, err = graph.ReadColorTableFile(colorsPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("color table loaded", "entries", colors.Len())
	}

	tuning := force.DefaultTuning()
	if tuningPath != "" {
		tuning, err = force.LoadTuning(tuningPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("tuning overrides loaded", "path", tuningPath)
	}

	return &artifacts{dataset: d, colors: colors, tuning: tuning}, nil
}
