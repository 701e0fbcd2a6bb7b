package termhost

import "github.com/charmbracelet/lipgloss"

var (
	trackStyle = Style{FG: lipgloss.Color("240")}
	thumbStyle = Style{FG: lipgloss.Color("255")}
)

// thumb returns the position and length of a scrollbar thumb on a track
// of the given length.
func thumb(track int, viewport, content, offset float64) (pos, size int) {
	if track < 1 || content <= 0 {
		return 0, 0
	}
	size = max(1, min(track, int(float64(track)*viewport/content)))
	if maxScroll := content - viewport; maxScroll > 0 {
		pos = int(float64(track-size) * min(max(offset/maxScroll, 0), 1))
	}
	return pos, size
}

// drawVScrollbar draws a vertical scrollbar in column x, rows [top, top+h).
func drawVScrollbar(c *Canvas, x, top, h int, viewport, content, offset float64) {
	if content <= viewport {
		return
	}
	pos, size := thumb(h, viewport, content, offset)
	for i := 0; i < h; i++ {
		c.Set(x, top+i, Cell{Rune: '│', Style: trackStyle})
	}
	for i := 0; i < size; i++ {
		c.Set(x, top+pos+i, Cell{Rune: '┃', Style: thumbStyle})
	}
}

// drawHScrollbar draws a horizontal scrollbar in row y, columns [left, left+w).
func drawHScrollbar(c *Canvas, left, y, w int, viewport, content, offset float64) {
	if content <= viewport {
		return
	}
	pos, size := thumb(w, viewport, content, offset)
	for i := 0; i < w; i++ {
		c.Set(left+i, y, Cell{Rune: '─', Style: trackStyle})
	}
	for i := 0; i < size; i++ {
		c.Set(left+pos+i, y, Cell{Rune: '━', Style: thumbStyle})
	}
}
