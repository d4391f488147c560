package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var (
		colors string
		top    int
	)

	cmd := &cobra.Command{
		Use:   "inspect <dataset>",
		Short: "Summarize a dataset without rendering it",
		Long:  `Inspect prints per-collection counts, alignment eligibility, and the most connected nodes of a dataset.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			art, err := loadArtifacts(logger, args[0], colors, "")
			if err != nil {
				return err
			}

			printInspect(art.dataset, art.colors, top)
			return nil
		},
	}

	cmd.Flags().StringVar(&colors, "colors", "", "color table JSON path")
	cmd.Flags().IntVar(&top, "top", 10, "number of hub nodes to list")

	return cmd
}

// collectionRow aggregates per-collection stats for the summary table.
type collectionRow struct {
	id       string
	nodes    int
	aligned  int
	eligible bool
}

func printInspect(d *graph.Dataset, colors *graph.ColorTable, top int) {
	fmt.Println(StyleTitle.Render("Dataset Summary"))
	fmt.Println()
	printKeyValue("Nodes", fmt.Sprintf("%d", len(d.Nodes)))
	printKeyValue("Links", fmt.Sprintf("%d", len(d.Links)))
	printKeyValue("Collections", fmt.Sprintf("%d", len(collectionRows(d))))
	fmt.Println()

	printCollectionTable(d, colors)
	fmt.Println()
	printHubTable(d, top)
}

// collectionRows groups the dataset's nodes by collection, sorted by node
// count descending.
func collectionRows(d *graph.Dataset) []collectionRow {
	byID := map[string]*collectionRow{}
	for _, n := range d.Nodes {
		row, ok := byID[n.CollectionID]
		if !ok {
			row = &collectionRow{id: n.CollectionID, eligible: d.AlignmentCollectionIDs[n.CollectionID]}
			byID[n.CollectionID] = row
		}
		row.nodes++
		if n.Alignment != nil {
			row.aligned++
		}
	}

	rows := make([]collectionRow, 0, len(byID))
	for _, row := range byID {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].nodes != rows[j].nodes {
			return rows[i].nodes > rows[j].nodes
		}
		return rows[i].id < rows[j].id
	})
	return rows
}

func printCollectionTable(d *graph.Dataset, colors *graph.ColorTable) {
	rows := [][]string{}
	for _, c := range collectionRows(d) {
		aligned := "-"
		if c.eligible {
			aligned = fmt.Sprintf("%d/%d", c.aligned, c.nodes)
		}
		rows = append(rows, []string{
			swatch(colors.GetColor(c.id)),
			c.id,
			fmt.Sprintf("%d", c.nodes),
			aligned,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Collection", "Nodes", "Aligned").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleValue
			}
			return StyleDim
		})

	fmt.Println(t.Render())
}

func printHubTable(d *graph.Dataset, top int) {
	nodes := make([]*graph.Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		return d.Degree(nodes[i].ID) > d.Degree(nodes[j].ID)
	})
	if top > len(nodes) {
		top = len(nodes)
	}

	rows := [][]string{}
	for _, n := range nodes[:top] {
		rows = append(rows, []string{
			n.DisplayTitle(),
			n.CollectionID,
			fmt.Sprintf("%d", d.Degree(n.ID)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Collection", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleDim
		})

	fmt.Println(t.Render())
}
