package termhost

import (
	"slices"

	cv "github.com/568071718/creator-collection-view"
)

// Content is the scrolled node holding the controller's elements. Later
// children draw over earlier ones.
type Content struct {
	children []cv.Element
	size     cv.Size
}

func (c *Content) Attach(e cv.Element) {
	if !c.Contains(e) {
		c.children = append(c.children, e)
	}
}

func (c *Content) Detach(e cv.Element) {
	if i := slices.Index(c.children, e); i >= 0 {
		c.children = slices.Delete(c.children, i, i+1)
	}
}

func (c *Content) Contains(e cv.Element) bool {
	return slices.Contains(c.children, e)
}

// BringToFront moves e to the end of the draw order.
func (c *Content) BringToFront(e cv.Element) {
	if i := slices.Index(c.children, e); i >= 0 && i < len(c.children)-1 {
		c.children = append(slices.Delete(c.children, i, i+1), e)
	}
}

// Children returns the attached elements in draw order.
func (c *Content) Children() []cv.Element { return c.children }

// Size is the content size last set by the viewport.
func (c *Content) Size() cv.Size { return c.size }

// frameOf recovers an element's content-space bounding box from its
// transform.
func (c *Content) frameOf(e cv.Element) cv.Rect {
	return cv.FrameFromPosition(e.Position(), cv.BoundingSize(e.Size(), e.Scale()), c.size)
}

// Draw paints every drawable child, translated by -offset.
func (c *Content) Draw(canvas *Canvas, offset cv.Point) {
	for _, e := range c.children {
		d, ok := e.(Drawer)
		if !ok {
			continue
		}
		r := c.frameOf(e)
		r.X -= offset.X
		r.Y -= offset.Y
		d.Draw(canvas, r)
	}
}

// ElementAt returns the frontmost visible element under the content-space
// point p, or nil.
func (c *Content) ElementAt(p cv.Point) cv.Element {
	for i := len(c.children) - 1; i >= 0; i-- {
		e := c.children[i]
		if e.Opacity() <= 0 {
			continue
		}
		r := c.frameOf(e)
		// half-open so adjacent rows never both claim a cell
		if p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY() {
			return e
		}
	}
	return nil
}
