package view

// axisLabelPad offsets axis-end labels from the grid edge.
const axisLabelPad = 40.0

// GridLine is a world-space line segment of the alignment grid.
type GridLine struct {
	X1, Y1, X2, Y2 float64
}

// GridLabel is a world-space text anchor of the alignment grid. Axis labels
// sit at the axis ends; cell labels sit at the centers of the nine cells.
type GridLabel struct {
	X, Y float64
	Text string
	Axis bool
}

// AlignmentGrid is the static backdrop drawn behind nodes in alignment mode.
// The grid spans [-size/2, size/2] on both axes: lawful nodes are pulled
// left, chaotic right, good up, evil down.
type AlignmentGrid struct {
	Lines  []GridLine
	Labels []GridLabel

	half float64
}

var cellNames = [3][3]string{
	{"Lawful Good", "Neutral Good", "Chaotic Good"},
	{"Lawful Neutral", "True Neutral", "Chaotic Neutral"},
	{"Lawful Evil", "Neutral Evil", "Chaotic Evil"},
}

// NewAlignmentGrid builds a 3x3 alignment grid of the given side length:
// four interior lines, a label at the center of each cell, and the four
// axis-end labels.
func NewAlignmentGrid(size float64) AlignmentGrid {
	h := size / 2
	third := 2 * h / 3

	g := AlignmentGrid{half: h}
	for i := 1; i < 3; i++ {
		p := -h + float64(i)*third
		g.Lines = append(g.Lines,
			GridLine{X1: p, Y1: -h, X2: p, Y2: h},
			GridLine{X1: -h, Y1: p, X2: h, Y2: p},
		)
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			g.Labels = append(g.Labels, GridLabel{
				X:    -h + third/2 + float64(col)*third,
				Y:    -h + third/2 + float64(row)*third,
				Text: cellNames[row][col],
			})
		}
	}
	g.Labels = append(g.Labels,
		GridLabel{X: 0, Y: -h - axisLabelPad, Text: "GOOD", Axis: true},
		GridLabel{X: 0, Y: h + axisLabelPad, Text: "EVIL", Axis: true},
		GridLabel{X: -h - axisLabelPad, Y: 0, Text: "LAWFUL", Axis: true},
		GridLabel{X: h + axisLabelPad, Y: 0, Text: "CHAOTIC", Axis: true},
	)
	return g
}

// Bounds returns the world-space extent of the grid including axis labels,
// used to frame the home view in alignment mode.
func (g AlignmentGrid) Bounds() (minX, minY, maxX, maxY float64) {
	e := g.half + axisLabelPad
	return -e, -e, e, e
}
