package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/observability"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

const (
	settleBatch    = 50
	settleBarWidth = 30
)

// layoutEntry is one node position in the layout output file.
type layoutEntry struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// newSettleCmd creates the settle command.
func newSettleCmd() *cobra.Command {
	var (
		output string
		mode   string
		tuning string
		width  float64
		height float64
		ticks  int
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "settle <dataset>",
		Short: "Run the force simulation headless and write node positions",
		Long:  `Settle loads a dataset, runs the force simulation until the energy decays below the activity threshold, and writes the resulting node positions as a layout JSON file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			art, err := loadArtifacts(logger, args[0], "", tuning)
			if err != nil {
				return err
			}

			v := view.New(art.dataset, art.colors, art.tuning, width, height)
			m, err := view.ParseMode(mode)
			if err != nil {
				return err
			}
			if m != v.Mode() {
				if err := v.SetMode(m); err != nil {
					return err
				}
			}

			prog := newProgress(logger)
			observability.Simulation().OnSettleStart(cmd.Context(), len(art.dataset.Nodes))
			start := time.Now()
			ran, err := runSettle(v, ticks, plain)
			if err != nil {
				return err
			}
			observability.Simulation().OnSettleComplete(cmd.Context(), len(art.dataset.Nodes), ran, time.Since(start))
			prog.done(fmt.Sprintf("Settled in %d ticks", ran))

			if err := writeLayout(output, v); err != nil {
				return err
			}

			printSuccess("Layout written")
			printFile(output)
			d := v.Dataset()
			printStats(len(d.Nodes), len(d.Links), len(d.AlignmentCollectionIDs))
			printNextStep("Render a snapshot", "oracle render "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "layout output path")
	cmd.Flags().StringVar(&mode, "mode", "connection", "view mode: connection, alignment")
	cmd.Flags().StringVar(&tuning, "tuning", "", "force tuning TOML path")
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 800, "viewport height")
	cmd.Flags().IntVar(&ticks, "ticks", 5000, "maximum simulation ticks")
	cmd.Flags().BoolVar(&plain, "plain", false, "plain spinner output instead of the progress bar")

	return cmd
}

// runSettle drives the simulation to rest, either behind a plain spinner or
// the interactive progress model.
func runSettle(v *view.GraphView, limit int, plain bool) (int, error) {
	if plain {
		sp := newSpinner("Settling layout")
		sp.Start()
		ran := v.Settle(limit)
		sp.Stop()
		return ran, nil
	}

	model := settleModel{view: v, limit: limit}
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "settle progress UI failed")
	}
	m := final.(settleModel)
	if m.aborted {
		return m.ticks, errors.New(errors.ErrCodeInternal, "settle aborted")
	}
	return m.ticks, nil
}

// writeLayout dumps the settled node positions to path.
func writeLayout(path string, v *view.GraphView) error {
	d := v.Dataset()
	entries := make([]layoutEntry, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		entries = append(entries, layoutEntry{ID: n.ID, X: n.X, Y: n.Y})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode layout")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write layout to %s", path)
	}
	return nil
}

// =============================================================================
// SettleModel - Simulation progress display
// =============================================================================

type settleTickMsg struct{}

func settleTick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(time.Time) tea.Msg {
		return settleTickMsg{}
	})
}

// settleModel is the bubbletea model driving the simulation in batches
// between frames so the terminal stays responsive on large datasets.
type settleModel struct {
	view    *view.GraphView
	limit   int
	ticks   int
	done    bool
	aborted bool
}

func (m settleModel) Init() tea.Cmd {
	return settleTick()
}

func (m settleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case settleTickMsg:
		for i := 0; i < settleBatch && m.ticks < m.limit; i++ {
			if !m.view.Simulation().Step() {
				m.done = true
				return m, tea.Quit
			}
			m.ticks++
		}
		if m.ticks >= m.limit {
			m.done = true
			return m, tea.Quit
		}
		return m, settleTick()
	}
	return m, nil
}

func (m settleModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	p := settleProgressFor(m.view.Simulation().Alpha())
	filled := int(p * settleBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", settleBarWidth-filled)

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Settling layout"))
	b.WriteString("\n")
	b.WriteString(styleIconSpinner.Render(bar))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" %3.0f%%  %d ticks", p*100, m.ticks)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q to abort"))
	b.WriteString("\n")
	return b.String()
}

// settleProgressFor maps the exponentially decaying alpha onto a linear
// progress fraction.
func settleProgressFor(alpha float64) float64 {
	if alpha >= 1 {
		return 0
	}
	if alpha <= 0.001 {
		return 1
	}
	return math.Log(alpha) / math.Log(0.001)
}
