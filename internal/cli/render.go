package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/observability"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/render"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

const (
	formatSVG  = "svg"
	formatJSON = "json"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file path
	format     string  // output format: "svg" or "json"
	mode       string  // view mode: "connection" or "alignment"
	focus      string  // node ID to pin before rendering
	colors     string  // color table JSON path
	tuning     string  // force tuning TOML path
	width      float64 // viewport width in pixels
	height     float64 // viewport height in pixels
	ticks      int     // maximum simulation ticks
	background string  // background fill color
}

// newRenderCmd creates the render command for static snapshots.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		format:     formatSVG,
		mode:       "connection",
		width:      1280,
		height:     800,
		ticks:      5000,
		background: "#101014",
	}

	cmd := &cobra.Command{
		Use:   "render <dataset>",
		Short: "Settle a dataset and write a static snapshot",
		Long:  `Render loads a dataset, settles the force simulation, and writes a single frame as SVG or JSON. With --focus the named node is pinned first so the snapshot carries its neighborhood highlight.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default <dataset>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, json")
	cmd.Flags().StringVar(&opts.mode, "mode", "connection", "view mode: connection, alignment")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "node ID to pin before rendering")
	cmd.Flags().StringVar(&opts.colors, "colors", "", "color table JSON path")
	cmd.Flags().StringVar(&opts.tuning, "tuning", "", "force tuning TOML path")
	cmd.Flags().Float64Var(&opts.width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&opts.height, "height", 800, "viewport height")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 5000, "maximum simulation ticks")
	cmd.Flags().StringVar(&opts.background, "background", "#101014", "background fill color")

	return cmd
}

func runRender(cmd *cobra.Command, datasetPath string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	if opts.format != formatSVG && opts.format != formatJSON {
		return errors.New(errors.ErrCodeUnsupported, "unknown format %q, expected svg or json", opts.format)
	}

	art, err := loadArtifacts(logger, datasetPath, opts.colors, opts.tuning)
	if err != nil {
		return err
	}

	v := view.New(art.dataset, art.colors, art.tuning, opts.width, opts.height)
	m, err := view.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if m != v.Mode() {
		if err := v.SetMode(m); err != nil {
			return err
		}
	}

	sp := newSpinner("Settling layout")
	sp.Start()
	ran := v.Settle(opts.ticks)
	if opts.focus != "" {
		if err := v.Pin(opts.focus); err != nil {
			sp.Stop()
			return err
		}
		ran += v.Settle(opts.ticks)
	}
	sp.Stop()
	logger.Debug("simulation settled", "ticks", ran)

	start := time.Now()
	var data []byte
	switch opts.format {
	case formatSVG:
		data = render.RenderSVG(v.Frame(), render.WithBackground(opts.background))
	case formatJSON:
		data, err = render.RenderJSON(v.Frame(), render.WithIndent())
		if err != nil {
			return err
		}
	}
	observability.Render().OnRender(cmd.Context(), opts.format, len(data), time.Since(start))

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(datasetPath, ".json") + "." + opts.format
	}
	if out == datasetPath {
		return errors.New(errors.ErrCodeInvalidConfig, "output %s would overwrite the dataset, use --output", out)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", out)
	}

	printSuccess("Snapshot rendered")
	printFile(out)
	d := v.Dataset()
	printStats(len(d.Nodes), len(d.Links), len(d.AlignmentCollectionIDs))
	printNextStep("Serve interactively", "oracle serve --dataset "+datasetPath)
	return nil
}
