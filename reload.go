package collectionview

import (
	"fmt"
	"time"
)

func (c *Controller) active() bool {
	if a, ok := c.viewport.(Activator); ok {
		return a.Active()
	}
	return true
}

// ReloadData recomputes the layout and rebinds the visible elements. When
// the viewport is not active the reload is deferred until Attach or the
// next active Update.
func (c *Controller) ReloadData() error {
	if c.layout == nil {
		return configError("reload", ErrNoLayout)
	}
	if !c.active() {
		c.pendingReload = true
		return nil
	}
	return c.reload()
}

// Attach runs a reload that was deferred while the viewport was inactive.
func (c *Controller) Attach() error {
	if !c.pendingReload {
		return nil
	}
	return c.reload()
}

func (c *Controller) reload() error {
	c.pendingReload = false
	if c.layout == nil {
		return configError("reload", ErrNoLayout)
	}
	if c.data == nil {
		return configError("reload", ErrNoDataSource)
	}

	c.viewport.StopScroll()

	// Flush first so pools hold at most the elements reclaimed below.
	c.clearPools()

	switch c.cfg.Mode {
	case ModeRecycle:
		for key, e := range c.visible {
			attrs := c.ElementAttributes(e)
			c.enqueue(e)
			delete(c.visible, key)
			c.notifyEndDisplay(e, attrs)
		}
	case ModePreload:
		for _, e := range c.visible {
			c.notifyEndDisplay(e, c.ElementAttributes(e))
		}
		seen := make(map[Element]bool, len(c.preloaded))
		for _, m := range []map[ElementKey]Element{c.visible, c.preloaded} {
			for _, e := range m {
				if !seen[e] {
					seen[e] = true
					c.destroy(e)
				}
			}
			clear(m)
		}
		c.preloadIdx = 0
	}

	offset := c.viewport.ScrollOffset()

	if err := c.layout.Prepare(c); err != nil {
		return fmt.Errorf("collectionview: prepare layout: %w", err)
	}
	size := c.layout.ContentSize()
	if !size.Valid() {
		return configError("reload", fmt.Errorf("%w: %v", ErrInvalidContentSize, size))
	}
	c.viewport.SetContentSize(size)
	if ar, ok := c.layout.(AxisReporter); ok {
		axis := ar.ScrollAxis()
		c.viewport.SetScrollAxes(axis == Horizontal, axis == Vertical)
	}

	if c.reloads == 0 {
		if io, ok := c.layout.(InitialOffsetter); ok {
			c.viewport.SetScrollOffset(io.InitialOffset(c))
		}
	} else {
		c.viewport.SetScrollOffset(offset.Min(c.viewport.MaxScrollOffset()).Max(Point{}))
	}

	c.log.Debug("reloaded",
		"reload", c.reloads,
		"attributes", len(c.layout.Attributes()),
		"content", size,
		"mode", c.cfg.Mode)

	if err := c.refresh(); err != nil {
		return err
	}
	c.reloads++
	return nil
}

// refresh reconciles and reclaims against the current viewport rect.
func (c *Controller) refresh() error {
	rect := c.VisibleRect()
	if err := c.reconcile(rect); err != nil {
		return err
	}
	c.reclaim(rect)
	return nil
}

func (c *Controller) ready() bool {
	return c.layout != nil && c.reloads > 0
}

// MarkNeedsVisibleUpdate schedules reconciliation and reclamation for the
// next eligible frame, or runs both now when immediate is set.
func (c *Controller) MarkNeedsVisibleUpdate(immediate bool) error {
	if immediate {
		if !c.ready() {
			return nil
		}
		return c.refresh()
	}
	c.pendingVisible = true
	c.pendingRecycle = true
	return nil
}

// Update is the per-frame tick. Within a frame reconciliation runs before
// reclamation, which runs before a deferred reload, which runs before the
// preload step.
func (c *Controller) Update() error {
	c.frame++

	if c.ready() && c.pendingVisible &&
		(c.cfg.FrameInterval <= 1 || c.frame%c.cfg.FrameInterval == 0) {
		if err := c.reconcile(c.VisibleRect()); err != nil {
			return err
		}
	}

	if c.ready() && c.pendingRecycle &&
		c.cfg.RecycleInterval >= 1 && c.frame%c.cfg.RecycleInterval == 0 {
		c.reclaim(c.VisibleRect())
	}

	if c.pendingReload && c.active() {
		if err := c.reload(); err != nil {
			return err
		}
	}

	return c.preloadStep()
}

// ScrollTo scrolls so that the cell at ip is at the layout's preferred
// position. Unknown index paths are ignored.
func (c *Controller) ScrollTo(ip IndexPath, duration time.Duration, attenuated bool) error {
	if !c.ready() {
		return nil
	}
	var target Point
	resolved := false
	if r, ok := c.layout.(ScrollTargetResolver); ok {
		target, resolved = r.ScrollTarget(ip, c)
	}
	if !resolved {
		a := c.layout.AttributeFor(CellKey(ip), c)
		if a == nil {
			return nil
		}
		target = a.Frame.Origin()
	}
	c.viewport.StopScroll()
	c.viewport.ScrollToOffset(target, duration, attenuated)
	return c.MarkNeedsVisibleUpdate(false)
}
