package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

// cellKind selects the style a grid cell is drawn with.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLink
	cellRubber
	cellNode
	cellPinned
	cellSelected
	cellMenu
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellEmpty:    lipgloss.NewStyle(),
	cellLink:     lipgloss.NewStyle().Foreground(colorGray),
	cellRubber:   lipgloss.NewStyle().Foreground(colorYellow),
	cellNode:     lipgloss.NewStyle().Foreground(colorBlue),
	cellPinned:   lipgloss.NewStyle().Foreground(colorCyan),
	cellSelected: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	cellMenu:     lipgloss.NewStyle().Foreground(colorWhite).Background(colorDim),
}

// cellSize maps terminal cells to canvas pixels.
type cellSize struct {
	w, h float64
}

// toCell returns the cell containing canvas point p.
func (cs cellSize) toCell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X / cs.w)), int(math.Floor(p.Y / cs.h))
}

// toCanvas returns the canvas point at the centre of a cell.
func (cs cellSize) toCanvas(col, row int) geometry.Point {
	return geometry.Point{X: (float64(col) + 0.5) * cs.w, Y: (float64(row) + 0.5) * cs.h}
}

// grid is a fixed-size character canvas. Cells outside the grid are
// silently dropped, so shapes may be drawn partly off screen.
type grid struct {
	cols, rows int
	runes      [][]rune
	kinds      [][]cellKind
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: max(0, cols), rows: max(0, rows)}
	g.runes = make([][]rune, g.rows)
	g.kinds = make([][]cellKind, g.rows)
	for r := range g.rows {
		g.runes[r] = []rune(strings.Repeat(" ", g.cols))
		g.kinds[r] = make([]cellKind, g.cols)
	}
	return g
}

func (g *grid) set(col, row int, ch rune, k cellKind) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.runes[row][col] = ch
	g.kinds[row][col] = k
}

func (g *grid) at(col, row int) rune {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return 0
	}
	return g.runes[row][col]
}

func (g *grid) text(col, row int, s string, k cellKind) {
	for i, ch := range []rune(s) {
		g.set(col+i, row, ch, k)
	}
}

// line draws from (c0,r0) to (c1,r1) with Bresenham's algorithm.
func (g *grid) line(c0, r0, c1, r1 int, ch rune, k cellKind) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		g.set(c0, r0, ch, k)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// box draws a rounded box with its top-left corner at (col,row) and clears
// the interior.
func (g *grid) box(col, row, w, h int, k cellKind) {
	if w < 2 || h < 2 {
		return
	}
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			var ch rune
			switch {
			case r == row && c == col:
				ch = '╭'
			case r == row && c == col+w-1:
				ch = '╮'
			case r == row+h-1 && c == col:
				ch = '╰'
			case r == row+h-1 && c == col+w-1:
				ch = '╯'
			case r == row || r == row+h-1:
				ch = '─'
			case c == col || c == col+w-1:
				ch = '│'
			default:
				ch = ' '
			}
			g.set(c, r, ch, k)
		}
	}
}

// String renders the grid, styling runs of equal kind together.
func (g *grid) String() string {
	var b strings.Builder
	for r := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for c := 1; c <= g.cols; c++ {
			if c < g.cols && g.kinds[r][c] == g.kinds[r][start] {
				continue
			}
			run := string(g.runes[r][start:c])
			if k := g.kinds[r][start]; k == cellEmpty {
				b.WriteString(run)
			} else {
				b.WriteString(cellStyles[k].Render(run))
			}
			start = c
		}
	}
	return b.String()
}

// plain returns the grid without styling.
func (g *grid) plain() string {
	lines := make([]string, g.rows)
	for r := range g.rows {
		lines[r] = string(g.runes[r])
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Scene drawing
// =============================================================================

// drawScene draws links first, then the rubber band, nodes and the open
// context menu, so later layers cover earlier ones.
func drawScene(s editor.Scene, cs cellSize, cols, rows int) *grid {
	g := newGrid(cols, rows)

	for _, l := range s.Links {
		if l.Segment.Degenerate() {
			continue
		}
		c0, r0 := cs.toCell(l.Segment.From)
		c1, r1 := cs.toCell(l.Segment.To)
		g.line(c0, r0, c1, r1, '·', cellLink)
		g.set(c1, r1, arrowRune(l.Segment.To.Sub(l.Segment.From)), cellLink)
	}

	if s.RubberBand != nil {
		c0, r0 := cs.toCell(s.RubberBand.From)
		c1, r1 := cs.toCell(s.RubberBand.To)
		g.line(c0, r0, c1, r1, '∙', cellRubber)
	}

	bw := max(3, int(math.Round(s.NodeWidth/cs.w)))
	bh := max(3, int(math.Round(s.NodeHeight/cs.h)))
	for _, n := range s.Nodes {
		k := cellNode
		switch {
		case n.Selected || n.Source:
			k = cellSelected
		case n.Pinned:
			k = cellPinned
		}
		cc, cr := cs.toCell(n.Pos)
		col, row := cc-bw/2, cr-bh/2
		g.box(col, row, bw, bh, k)

		label := truncate(n.Label, bw-2)
		g.text(col+1+(bw-2-len([]rune(label)))/2, row+bh/2, label, k)
	}

	if s.Menu != editor.MenuNone {
		drawMenu(g, s, cs)
	}
	return g
}

var menuItems = map[editor.Menu][]string{
	editor.MenuCanvas: {" a  Add node "},
	editor.MenuNode:   {" l  Link     ", " x  Delete   "},
}

func drawMenu(g *grid, s editor.Scene, cs cellSize) {
	items := menuItems[s.Menu]
	col, row := cs.toCell(s.MenuPos)
	w := 0
	for _, it := range items {
		w = max(w, len([]rune(it)))
	}
	g.box(col, row, w+2, len(items)+2, cellMenu)
	for i, it := range items {
		g.text(col+1, row+1+i, it, cellMenu)
	}
}

// arrowRune picks the arrow closest to direction d. Canvas y grows
// downwards.
func arrowRune(d geometry.Point) rune {
	arrows := [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	angle := math.Atan2(d.Y, d.X)
	sector := int(math.Round(angle/(math.Pi/4))+8) % 8
	return arrows[sector]
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:max(0, n)])
	}
	return string(runes[:n-1]) + "…"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
