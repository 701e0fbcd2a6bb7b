package termhost

import (
	"math"

	"github.com/charmbracelet/x/ansi"

	cv "github.com/568071718/creator-collection-view"
)

// Drawer is implemented by elements that can paint themselves. r is the
// element's frame in canvas coordinates.
type Drawer interface {
	Draw(c *Canvas, r cv.Rect)
}

// TextElement is a filled box with a single line of text, the terminal
// stand-in for a cell or header node.
type TextElement struct {
	pos      cv.Vec3
	size     cv.Size
	scale    cv.Vec3
	rotation cv.Vec3
	opacity  float64

	destroyed bool
	reuses    int

	Label string
	Style Style
	// Center centres the label instead of padding it from the left.
	Center bool
}

// NewTextElement creates an opaque, empty element.
func NewTextElement() *TextElement {
	return &TextElement{opacity: 1, scale: cv.Vec3{X: 1, Y: 1, Z: 1}}
}

func (e *TextElement) Position() cv.Vec3     { return e.pos }
func (e *TextElement) SetPosition(p cv.Vec3) { e.pos = p }
func (e *TextElement) Size() cv.Size         { return e.size }
func (e *TextElement) SetSize(s cv.Size)     { e.size = s }
func (e *TextElement) Scale() cv.Vec3        { return e.scale }
func (e *TextElement) SetScale(s cv.Vec3)    { e.scale = s }
func (e *TextElement) SetRotation(r cv.Vec3) { e.rotation = r }
func (e *TextElement) Opacity() float64      { return e.opacity }
func (e *TextElement) SetOpacity(o float64)  { e.opacity = o }
func (e *TextElement) Destroy()              { e.destroyed = true }
func (e *TextElement) Destroyed() bool       { return e.destroyed }
func (e *TextElement) Reuses() int           { return e.reuses }
func (e *TextElement) Unuse()                { e.Label = "" }
func (e *TextElement) Reuse()                { e.reuses++ }

// Draw fills r and writes the label on its middle row. Transparent
// elements draw nothing.
func (e *TextElement) Draw(c *Canvas, r cv.Rect) {
	if e.opacity <= 0 || e.destroyed {
		return
	}
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	w, h := int(math.Round(r.Width)), int(math.Round(r.Height))
	if w <= 0 || h <= 0 {
		return
	}
	c.FillRect(x, y, w, h, Cell{Rune: ' ', Style: e.Style})

	avail := w - 2
	if avail <= 0 {
		return
	}
	label := ansi.Truncate(e.Label, avail, "…")
	lx := x + 1
	if e.Center {
		lx = x + (w-ansi.StringWidth(label))/2
	}
	// clip against the canvas top edge so pinned rows stay readable
	ly := y + (h-1)/2
	if ly < 0 && y+h > 0 {
		ly = 0
	}
	c.WriteString(lx, ly, label, e.Style)
}
