package collectionview

import "time"

// The methods below are the event stream the host viewport feeds into the
// controller.

// DragBegan records the offset a gesture started from.
func (c *Controller) DragBegan() {
	c.dragStart = c.viewport.ScrollOffset()
}

// Scrolled is called whenever the scroll offset changes, whether from a
// drag or an animation.
func (c *Controller) Scrolled() error {
	if !c.ready() {
		return nil
	}
	if capabilitiesOf(c.layout).ContinuousBounds {
		if err := c.reconcile(c.VisibleRect()); err != nil {
			return err
		}
	} else {
		c.pendingVisible = true
	}
	if c.cfg.RecycleInterval > 0 {
		c.pendingRecycle = true
	}
	return nil
}

// TouchReleased is called when the finger lifts, before any inertial scroll.
func (c *Controller) TouchReleased() {
	if c.ready() {
		c.reclaim(c.VisibleRect())
	}
}

// ScrollSettled is called once per completed gesture or animation.
func (c *Controller) ScrollSettled() error {
	if !c.ready() {
		return nil
	}
	c.reclaim(c.VisibleRect())
	s, ok := c.layout.(ScrollSettler)
	if !ok {
		return nil
	}
	if offset, jump := s.ScrollSettled(c); jump {
		c.viewport.SetScrollOffset(offset)
		// A direct offset change emits no scroll events.
		return c.refresh()
	}
	return nil
}

// ResolveInertialTarget lets the layout override where a fling settles.
// The viewport calls it when a drag is released with momentum; false means
// keep the proposed physics target.
func (c *Controller) ResolveInertialTarget(velocity, proposed Point, duration time.Duration) (InertialTarget, bool) {
	if !c.ready() {
		return InertialTarget{}, false
	}
	r, ok := c.layout.(InertialTargetResolver)
	if !ok {
		return InertialTarget{}, false
	}
	t, ok := r.InertialTarget(c, velocity, c.dragStart, proposed, duration)
	if !ok {
		return InertialTarget{}, false
	}
	if t.Duration <= 0 {
		t.Duration = duration
	}
	return t, true
}

// ElementTouched dispatches a touch-end on e to the cell or supplementary
// touch callback.
func (c *Controller) ElementTouched(e Element) {
	a := c.ElementAttributes(e)
	if a == nil {
		return
	}
	switch a.Category() {
	case CategoryCell:
		if c.onCellTouched != nil {
			c.onCellTouched(a.IndexPath())
		}
	case CategorySupplementary:
		if c.onSupplementaryTouched != nil {
			c.onSupplementaryTouched(a.IndexPath(), a.Kind())
		}
	}
}

// SizeChanged is called when the viewport is resized.
func (c *Controller) SizeChanged() error {
	if c.cfg.AutoReloadOnSizeChange {
		return c.ReloadData()
	}
	return nil
}
