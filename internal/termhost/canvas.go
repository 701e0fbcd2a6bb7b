// Package termhost hosts a collectionview.Controller in a terminal. A
// bubbletea model drives frames and input, elements draw into a cell
// canvas, and one content point maps to one terminal cell.
package termhost

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style is the appearance of one cell. It is comparable so that runs of
// equal cells render with a single lipgloss call.
type Style struct {
	FG      lipgloss.Color
	BG      lipgloss.Color
	Bold    bool
	Reverse bool
}

func (s Style) render(text string) string {
	if s == (Style{}) {
		return text
	}
	st := lipgloss.NewStyle().Bold(s.Bold).Reverse(s.Reverse)
	if s.FG != "" {
		st = st.Foreground(s.FG)
	}
	if s.BG != "" {
		st = st.Background(s.BG)
	}
	return st.Render(text)
}

// Cell is one terminal cell. A zero Rune marks the trailing half of a
// wide rune.
type Cell struct {
	Rune  rune
	Style Style
}

func emptyCell() Cell { return Cell{Rune: ' '} }

// Canvas is a 2D grid of cells the content node draws into.
type Canvas struct {
	cells  []Cell
	width  int
	height int
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// InBounds reports whether (x, y) is on the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the cell at (x, y), or an empty cell when out of bounds.
func (c *Canvas) Get(x, y int) Cell {
	if !c.InBounds(x, y) {
		return emptyCell()
	}
	return c.cells[y*c.width+x]
}

// Set writes one cell. Out of bounds writes are dropped.
func (c *Canvas) Set(x, y int, cell Cell) {
	if !c.InBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = cell
}

// Clear resets every cell to a blank space.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = emptyCell()
	}
}

// FillRect fills the intersection of the rectangle with the canvas.
func (c *Canvas) FillRect(x, y, width, height int, cell Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.Set(x+dx, y+dy, cell)
		}
	}
}

// WriteString writes s starting at (x, y) and returns the number of
// columns used. Columns left of the canvas are skipped. Wide runes take
// two columns; a wide rune that does not fit before the right edge is
// dropped along with the rest of s.
func (c *Canvas) WriteString(x, y int, s string, style Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+used < 0 {
			used += w
			continue
		}
		if !c.InBounds(x+used+w-1, y) || !c.InBounds(x+used, y) {
			break
		}
		c.Set(x+used, y, Cell{Rune: r, Style: style})
		for i := 1; i < w; i++ {
			c.Set(x+used+i, y, Cell{Style: style})
		}
		used += w
	}
	return used
}

// GetLine returns row y as plain text with trailing spaces trimmed.
func (c *Canvas) GetLine(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < c.width; x++ {
		if r := c.cells[y*c.width+x].Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.GetLine(y)
	}
	return strings.Join(lines, "\n")
}

// Render returns the canvas as styled terminal output.
func (c *Canvas) Render() string {
	if c.width == 0 {
		return ""
	}
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		style := c.cells[y*c.width].Style
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.Style != style {
				out.WriteString(style.render(run.String()))
				run.Reset()
				style = cell.Style
			}
			if cell.Rune != 0 {
				run.WriteRune(cell.Rune)
			}
		}
		out.WriteString(style.render(run.String()))
		run.Reset()
	}
	return out.String()
}

// Resize changes the canvas dimensions, keeping content where it fits.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == c.width && height == c.height && c.cells != nil {
		return
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = emptyCell()
	}
	for y := 0; y < min(height, c.height); y++ {
		for x := 0; x < min(width, c.width); x++ {
			cells[y*width+x] = c.cells[y*c.width+x]
		}
	}
	c.cells, c.width, c.height = cells, width, height
}
