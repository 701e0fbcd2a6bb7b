package collectionview

import (
	"time"

	"github.com/charmbracelet/log"
)

// Context is the read-only view of the data source and viewport that a
// layout sees while preparing and answering queries.
type Context interface {
	Sections() int
	Items(section int) int
	ViewportSize() Size
	ScrollOffset() Point
	Direction() Direction
	Logger() *log.Logger
}

// Layout computes element geometry. Implementations must populate the full
// attribute set and the content size in Prepare, and must answer range and
// point queries against what Prepare produced.
type Layout interface {
	// Prepare recomputes every attribute for the current data shape.
	// It runs once per reload.
	Prepare(ctx Context) error

	// ContentSize is the total scrollable extent computed by Prepare.
	ContentSize() Size

	// Attributes returns every attribute in layout order.
	Attributes() []*LayoutAttributes

	// AttributesInRect returns at least every attribute whose frame
	// intersects rect. Extras are allowed; omissions leave elements unshown.
	AttributesInRect(rect Rect, ctx Context) []*LayoutAttributes

	// AttributeFor looks up one element. It returns nil when absent.
	AttributeFor(key ElementKey, ctx Context) *LayoutAttributes
}

// Capabilities opt a layout into controller work that is otherwise skipped.
type Capabilities struct {
	// ZOrder sorts each query result by ZIndex and reorders siblings.
	ZOrder bool
	// Opacity applies LayoutAttributes.Opacity to elements.
	Opacity bool
	// ContinuousBounds reapplies attributes on every scroll event.
	ContinuousBounds bool
}

// CapabilityReporter is implemented by layouts that need any Capabilities.
type CapabilityReporter interface {
	Capabilities() Capabilities
}

// InitialOffsetter chooses the scroll offset applied after the first reload.
type InitialOffsetter interface {
	InitialOffset(ctx Context) Point
}

// ScrollTargetResolver overrides the offset used by Controller.ScrollTo.
// Returning false falls back to the attribute's frame origin.
type ScrollTargetResolver interface {
	ScrollTarget(ip IndexPath, ctx Context) (Point, bool)
}

// InertialTarget is a layout's override for where a fling settles.
type InertialTarget struct {
	Offset Point
	// Duration of the animation. Zero keeps the proposed duration.
	Duration time.Duration
	// Linear disables deceleration for the animation.
	Linear bool
}

// InertialTargetResolver gets the final say over where an inertial scroll
// settles. velocity is the gesture velocity in viewport points per second,
// positive x meaning the finger moved right.
type InertialTargetResolver interface {
	InertialTarget(ctx Context, velocity Point, dragStart, proposed Point, duration time.Duration) (InertialTarget, bool)
}

// ScrollSettler is notified once per completed gesture or animation. It may
// return an offset to jump to without animation.
type ScrollSettler interface {
	ScrollSettled(ctx Context) (Point, bool)
}

// AxisReporter is implemented by layouts bound to one scroll axis. The
// controller restricts the viewport's gesture axes to it after Prepare.
type AxisReporter interface {
	ScrollAxis() Direction
}

// Releaser is called when the controller owning the layout is destroyed.
type Releaser interface {
	Release()
}

func capabilitiesOf(l Layout) Capabilities {
	if cr, ok := l.(CapabilityReporter); ok {
		return cr.Capabilities()
	}
	return Capabilities{}
}

// ScanRect returns the attributes intersecting rect by linear scan.
// It is the O(n) reference behaviour every optimized query must agree with.
func ScanRect(attrs []*LayoutAttributes, rect Rect) []*LayoutAttributes {
	var out []*LayoutAttributes
	for _, a := range attrs {
		if rect.Intersects(a.Frame) {
			out = append(out, a)
		}
	}
	return out
}

// FindAttributes is the linear-search point lookup.
func FindAttributes(attrs []*LayoutAttributes, key ElementKey) *LayoutAttributes {
	for _, a := range attrs {
		if a.indexPath == key.IndexPath && a.category == key.Category && a.kind == key.Kind {
			return a
		}
	}
	return nil
}

// BinarySearchRect finds the attributes intersecting rect in attrs, which
// must be ordered along the scroll axis. A binary search locates one hit,
// then the result grows outwards while frames keep intersecting. extra adds
// that many over-scan probes on each side to tolerate rows whose size
// diverged from the ordering assumption.
//
// ok is false when no attribute intersects rect.
func BinarySearchRect(attrs []*LayoutAttributes, rect Rect, extra int) (out []*LayoutAttributes, ok bool) {
	mid := -1
	lo, hi := 0, len(attrs)-1
	for lo <= hi {
		m := lo + (hi-lo)/2
		f := attrs[m].Frame
		if rect.Intersects(f) {
			mid = m
			break
		}
		if rect.MaxY() < f.MinY() || rect.MaxX() < f.MinX() {
			hi = m - 1
		} else {
			lo = m + 1
		}
	}
	if mid < 0 {
		return nil, false
	}

	out = append(out, attrs[mid])

	start := mid
	for start > 0 && rect.Intersects(attrs[start-1].Frame) {
		start--
		out = append(out, attrs[start])
	}
	for n := extra; n > 0 && start > 0; n-- {
		start--
		if rect.Intersects(attrs[start].Frame) {
			out = append(out, attrs[start])
		}
	}

	end := mid
	for end < len(attrs)-1 && rect.Intersects(attrs[end+1].Frame) {
		end++
		out = append(out, attrs[end])
	}
	for n := extra; n > 0 && end < len(attrs)-1; n-- {
		end++
		if rect.Intersects(attrs[end].Frame) {
			out = append(out, attrs[end])
		}
	}
	return out, true
}
