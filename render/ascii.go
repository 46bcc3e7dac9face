package render

import (
	"strings"
	"time"

	"github.com/TFMV/orbitgraph/models"
)

const (
	mainSymbol    = '@'
	nodeSymbol    = 'O'
	hoveredSymbol = '#'
	linkSymbol    = '.'
)

// ASCIIRenderer outputs ASCII art format
type ASCIIRenderer struct{}

// Name returns the name of the renderer
func (r *ASCIIRenderer) Name() string {
	return "ASCII Renderer"
}

// Description returns a description of the renderer
func (r *ASCIIRenderer) Description() string {
	return "Renders the graph snapshot as ASCII art for terminals"
}

// asciiGrid maps graph coordinates onto a bordered character grid
type asciiGrid struct {
	cells         [][]rune
	width, height int
	minX, minY    float64
	scaleX        float64
	scaleY        float64
}

func newASCIIGrid(g *models.Graph, width, height int) *asciiGrid {
	grid := &asciiGrid{width: width, height: height}
	grid.cells = make([][]rune, height)
	for i := range grid.cells {
		grid.cells[i] = []rune(strings.Repeat(" ", width))
	}

	for i := 0; i < width; i++ {
		grid.cells[0][i] = '-'
		grid.cells[height-1][i] = '-'
	}
	for i := 0; i < height; i++ {
		grid.cells[i][0] = '|'
		grid.cells[i][width-1] = '|'
	}
	grid.cells[0][0] = '+'
	grid.cells[0][width-1] = '+'
	grid.cells[height-1][0] = '+'
	grid.cells[height-1][width-1] = '+'

	// fit the node bounding box into the interior
	minX, minY, maxX, maxY := g.Bounds()
	grid.minX, grid.minY = minX, minY
	grid.scaleX = float64(width-3) / max(maxX-minX, 1)
	grid.scaleY = float64(height-3) / max(maxY-minY, 1)
	return grid
}

func (a *asciiGrid) cell(x, y float64) (int, int) {
	col := int((x-a.minX)*a.scaleX+0.5) + 1
	row := int((y-a.minY)*a.scaleY+0.5) + 1
	return clamp(col, 1, a.width-2), clamp(row, 1, a.height-2)
}

func (a *asciiGrid) String() string {
	var result strings.Builder
	for _, row := range a.cells {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}
	return result.String()
}

// Render creates an ASCII representation of the graph
func (r *ASCIIRenderer) Render(scene Scene, options *OutputOptions) ([]byte, error) {
	g := scene.Graph
	if g == nil {
		g = models.NewGraph("")
	}

	// Scale down with adjustment for the aspect ratio of terminal cells
	width := max(int(options.Width/10), 40)
	height := max(int(options.Height/20), 20)
	grid := newASCIIGrid(g, width, height)

	for _, edge := range g.Edges {
		source, target, ok := findEndpoints(g, edge)
		if !ok {
			continue
		}
		x1, y1 := grid.cell(source.X, source.Y)
		x2, y2 := grid.cell(target.X, target.Y)
		drawLine(grid.cells, x1, y1, x2, y2)
	}

	for _, node := range g.Nodes {
		x, y := grid.cell(node.X, node.Y)
		switch {
		case node.Hovered:
			grid.cells[y][x] = hoveredSymbol
		case node.Main:
			grid.cells[y][x] = mainSymbol
		default:
			grid.cells[y][x] = nodeSymbol
		}

		if !options.ShowLabels || node.Label == "" || y+1 >= height-1 {
			continue
		}
		label := []rune(node.Label)
		for i := 0; i < len(label) && x+i < width-1; i++ {
			if grid.cells[y+1][x+i] == ' ' || grid.cells[y+1][x+i] == linkSymbol {
				grid.cells[y+1][x+i] = label[i]
			}
		}
	}

	if title := []rune(g.Name); g.Name != "" && len(title) < width-4 {
		copy(grid.cells[0][2:], title)
	}

	if options.Timestamp {
		timeStr := []rune(time.Now().Format("2006-01-02 15:04"))
		if len(timeStr) < width-4 {
			copy(grid.cells[height-1][2:], timeStr)
		}
	}

	return []byte(grid.String()), nil
}

func clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}

// drawLine plots a link on the grid using Bresenham's algorithm, leaving
// node symbols in place
func drawLine(grid [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	for {
		if y1 >= 0 && y1 < len(grid) && x1 >= 0 && x1 < len(grid[y1]) {
			switch grid[y1][x1] {
			case mainSymbol, nodeSymbol, hoveredSymbol:
			default:
				grid[y1][x1] = linkSymbol
			}
		}

		if x1 == x2 && y1 == y2 {
			return
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
