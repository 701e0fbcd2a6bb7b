package collectionview

import (
	"cmp"
	"fmt"
	"slices"
)

// reconcile makes every attribute intersecting rect visible. It only adds
// to the visible set; reclaim removes.
func (c *Controller) reconcile(rect Rect) error {
	c.pendingVisible = false

	attrs := c.layout.AttributesInRect(rect, c)
	caps := capabilitiesOf(c.layout)
	if caps.ZOrder {
		attrs = slices.Clone(attrs)
		slices.SortStableFunc(attrs, func(a, b *LayoutAttributes) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
	}

	content := c.viewport.Content()
	for _, a := range attrs {
		if !rect.Intersects(a.Frame) {
			continue
		}
		key := a.Key()

		e, wasVisible, err := c.resolve(a, key)
		if err != nil {
			return err
		}

		restored := c.restore(e, wasVisible)
		if restored || caps.ContinuousBounds {
			c.apply(e, a, caps)
		}
		if caps.ZOrder {
			content.BringToFront(e)
		}
		c.visible[key] = e
		if restored {
			c.notifyDisplay(e, a)
		}
	}
	return nil
}

// resolve finds the element for key: preloaded, then visible, then made
// through the data source.
func (c *Controller) resolve(a *LayoutAttributes, key ElementKey) (e Element, wasVisible bool, err error) {
	v, visible := c.visible[key]
	if p, ok := c.preloaded[key]; ok {
		return p, visible && v == p, nil
	}
	if visible {
		return v, true, nil
	}
	e, err = c.make(a)
	return e, false, err
}

func (c *Controller) make(a *LayoutAttributes) (Element, error) {
	var (
		e   Element
		err error
	)
	switch a.Category() {
	case CategoryCell:
		e, err = c.data.CellFor(c, a.IndexPath())
	case CategorySupplementary:
		e, err = c.data.SupplementaryFor(c, a.IndexPath(), a.Kind())
	}
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, configError("reconcile", fmt.Errorf("%w: %s at %v %q", ErrNilElement, a.Category(), a.IndexPath(), a.Kind()))
	}
	return e, nil
}

// restore parents e under the content node and, in preload mode, makes it
// opaque. It reports whether e went from hidden to visible.
func (c *Controller) restore(e Element, wasVisible bool) bool {
	restored := false
	content := c.viewport.Content()
	if !content.Contains(e) {
		content.Attach(e)
		restored = true
	}
	if c.cfg.Mode == ModePreload && !wasVisible {
		e.SetOpacity(1)
		restored = true
	}
	return restored
}

// apply binds a to e and pushes its geometry into the element.
func (c *Controller) apply(e Element, a *LayoutAttributes, caps Capabilities) {
	b := c.bindings[e]
	if b == nil {
		b = &binding{}
		c.bindings[e] = b
	}
	b.attrs = a

	e.SetSize(a.Frame.Size())
	pos := ContentPosition(a.Frame, c.layout.ContentSize())
	pos.Z = e.Position().Z
	if a.Offset != nil {
		pos.X += a.Offset.X
		pos.Y += a.Offset.Y
		pos.Z += a.Offset.Z
	}
	e.SetPosition(pos)
	if a.Scale != nil {
		e.SetScale(*a.Scale)
	}
	if a.Rotation != nil {
		e.SetRotation(*a.Rotation)
	}
	if caps.Opacity && a.Opacity != nil {
		e.SetOpacity(*a.Opacity)
	}
}

// reclaim removes elements whose live bounding box no longer intersects
// rect. The box comes from the element's position, size and scale rather
// than its stored attributes.
func (c *Controller) reclaim(rect Rect) {
	c.pendingRecycle = false
	content := c.layout.ContentSize()
	for key, e := range c.visible {
		frame := FrameFromPosition(e.Position(), BoundingSize(e.Size(), e.Scale()), content)
		if rect.Intersects(frame) {
			continue
		}
		delete(c.visible, key)
		attrs := c.ElementAttributes(e)
		if c.cfg.Mode == ModePreload {
			e.SetOpacity(0)
			c.preloaded[key] = e
		} else {
			c.enqueue(e)
		}
		c.notifyEndDisplay(e, attrs)
	}
}

// preloadStep materializes up to PreloadLimitPerFrame elements in layout
// order. Elements inside the viewport become visible immediately, the rest
// are parented but transparent.
func (c *Controller) preloadStep() error {
	if c.cfg.Mode != ModePreload || !c.ready() || c.preloadIdx < 0 || c.cfg.PreloadLimitPerFrame <= 0 {
		return nil
	}
	attrs := c.layout.Attributes()
	if c.preloadIdx >= len(attrs) {
		return nil
	}

	caps := capabilitiesOf(c.layout)
	rect := c.VisibleRect()
	for n := 0; n < c.cfg.PreloadLimitPerFrame && c.preloadIdx < len(attrs); n++ {
		a := attrs[c.preloadIdx]
		key := a.Key()
		e, ok := c.visible[key]
		if !ok {
			e, ok = c.preloaded[key]
		}
		if !ok {
			var err error
			if e, err = c.make(a); err != nil {
				return err
			}
			c.viewport.Content().Attach(e)
			c.apply(e, a, caps)
			if rect.Intersects(a.Frame) {
				e.SetOpacity(1)
				c.visible[key] = e
				c.notifyDisplay(e, a)
			} else {
				e.SetOpacity(0)
			}
		}
		c.preloaded[key] = e
		c.preloadIdx++
		if c.onPreloadProgress != nil {
			c.onPreloadProgress(c.preloadIdx, len(attrs))
		}
	}
	if c.preloadIdx >= len(attrs) {
		c.log.Debug("preload complete", "elements", len(attrs))
	}
	return nil
}
