package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/saxonthune/flowgrid/pkg/flow"
	"github.com/saxonthune/flowgrid/pkg/graph"
	"github.com/saxonthune/flowgrid/pkg/pipeline"
)

// previewCommand creates the preview command: an interactive terminal view
// of the laid-out diagram.
func (c *CLI) previewCommand() *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a diagram layout in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := graph.ReadDocumentFile(args[0])
			if err != nil {
				return err
			}
			doc.EnsureEdgeIDs()

			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.pipelineOptions(direction, 0, 0, 0, 0)
			model := newPreviewModel(doc, runner, opts)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "", "flow direction: TB (default), BT, LR, RL")

	return cmd
}

// directionCycle is the order the "d" key steps through.
var directionCycle = []flow.Direction{
	flow.DirectionTB, flow.DirectionLR, flow.DirectionBT, flow.DirectionRL,
}

// previewModel is the bubbletea model for the diagram preview.
type previewModel struct {
	doc    graph.Document
	runner *pipeline.Runner
	opts   pipeline.Options

	layout graph.Layout
	err    error

	width      int
	height     int
	showRoutes bool
}

func newPreviewModel(doc graph.Document, runner *pipeline.Runner, opts pipeline.Options) previewModel {
	m := previewModel{
		doc:        doc,
		runner:     runner,
		opts:       opts,
		width:      80,
		height:     24,
		showRoutes: true,
	}
	m.recompute()
	return m
}

// recompute runs the layout synchronously. Bubbletea's Update has no context
// plumbing and the computation is local, so a background context is fine.
func (m *previewModel) recompute() {
	m.opts.SkipRoute = !m.showRoutes
	layout, err := m.runner.ComputeLayout(context.Background(), m.doc, m.opts)
	m.layout, m.err = layout, err
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "d":
			m.opts.Direction = string(nextDirection(flow.Direction(m.opts.Direction)))
			m.recompute()
		case "r":
			m.showRoutes = !m.showRoutes
			m.recompute()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func nextDirection(d flow.Direction) flow.Direction {
	for i, cur := range directionCycle {
		if cur == d {
			return directionCycle[(i+1)%len(directionCycle)]
		}
	}
	return directionCycle[0]
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("FlowGrid Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("direction %s · %d nodes · %d edges",
		m.layout.Direction, len(m.doc.Nodes), len(m.doc.Edges))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("d direction  r routes  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render("layout failed: " + m.err.Error()))
		return b.String()
	}

	rows := m.height - 5
	if rows < 8 {
		rows = 8
	}
	cols := m.width
	if cols < 20 {
		cols = 20
	}
	b.WriteString(renderASCII(m.doc, m.layout, cols, rows))
	return b.String()
}

// renderASCII draws the layout into a character cell grid: node boxes with
// box-drawing characters and routes as line segments.
func renderASCII(doc graph.Document, layout graph.Layout, cols, rows int) string {
	minX, minY, maxX, maxY := layoutBounds(doc, layout)
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	sx := float64(cols-1) / w
	sy := float64(rows-1) / h

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	toCell := func(x, y float64) (int, int) {
		cx := int((x - minX) * sx)
		cy := int((y - minY) * sy)
		return clampInt(cx, 0, cols-1), clampInt(cy, 0, rows-1)
	}

	// Routes first so node boxes paint over their endpoints.
	for _, points := range layout.Routes {
		for i := 1; i < len(points); i++ {
			x0, y0 := toCell(points[i-1].X, points[i-1].Y)
			x1, y1 := toCell(points[i].X, points[i].Y)
			drawSegment(grid, x0, y0, x1, y1)
		}
	}

	for _, n := range doc.Nodes {
		rect := n.Rect()
		if p, ok := layout.Positions[n.ID]; ok {
			rect.X, rect.Y = p.X, p.Y
		}
		x0, y0 := toCell(rect.X, rect.Y)
		x1, y1 := toCell(rect.Right(), rect.Bottom())
		label := n.Label
		if label == "" {
			label = n.ID
		}
		drawBox(grid, x0, y0, x1, y1, label)
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lipgloss.NewStyle().Render(strings.Join(lines, "\n"))
}

func layoutBounds(doc graph.Document, layout graph.Layout) (minX, minY, maxX, maxY float64) {
	first := true
	expand := func(x0, y0, x1, y1 float64) {
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			return
		}
		minX = minFloat(minX, x0)
		minY = minFloat(minY, y0)
		maxX = maxFloat(maxX, x1)
		maxY = maxFloat(maxY, y1)
	}

	for _, n := range doc.Nodes {
		rect := n.Rect()
		if p, ok := layout.Positions[n.ID]; ok {
			rect.X, rect.Y = p.X, p.Y
		}
		expand(rect.X, rect.Y, rect.Right(), rect.Bottom())
	}
	for _, points := range layout.Routes {
		for _, p := range points {
			expand(p.X, p.Y, p.X, p.Y)
		}
	}
	if first {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}

// drawSegment draws an axis-aligned run of line characters. Bends get a '+'.
func drawSegment(grid [][]rune, x0, y0, x1, y1 int) {
	if y0 == y1 {
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			setLineCell(grid, x, y0, '─')
		}
		return
	}
	if x0 == x1 {
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			setLineCell(grid, x0, y, '│')
		}
		return
	}
	// Non-orthogonal segment (straight-line fallback): draw endpoints only.
	setLineCell(grid, x0, y0, '·')
	setLineCell(grid, x1, y1, '·')
}

func setLineCell(grid [][]rune, x, y int, ch rune) {
	cur := grid[y][x]
	if (cur == '─' && ch == '│') || (cur == '│' && ch == '─') || cur == '+' {
		grid[y][x] = '+'
		return
	}
	grid[y][x] = ch
}

// drawBox draws a node rectangle with its label centered on the first
// interior row. Degenerate cells collapse to a single '▪'.
func drawBox(grid [][]rune, x0, y0, x1, y1 int, label string) {
	if x1-x0 < 2 || y1-y0 < 2 {
		grid[y0][x0] = '▪'
		return
	}
	for x := x0; x <= x1; x++ {
		grid[y0][x] = '─'
		grid[y1][x] = '─'
	}
	for y := y0; y <= y1; y++ {
		grid[y][x0] = '│'
		grid[y][x1] = '│'
	}
	grid[y0][x0], grid[y0][x1] = '┌', '┐'
	grid[y1][x0], grid[y1][x1] = '└', '┘'

	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			grid[y][x] = ' '
		}
	}

	runes := []rune(label)
	inner := x1 - x0 - 1
	if len(runes) > inner {
		runes = runes[:inner]
	}
	ly := y0 + (y1-y0)/2
	lx := x0 + 1 + (inner-len(runes))/2
	for i, ch := range runes {
		grid[ly][lx+i] = ch
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
