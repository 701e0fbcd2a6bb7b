package collectionview

import "time"

// Element is a live visual instance owned by the host UI layer. Elements
// must be comparable (pointer types in practice): the controller keys its
// side tables by element identity.
type Element interface {
	Position() Vec3
	SetPosition(Vec3)
	// Size is the element's bounding size.
	Size() Size
	SetSize(Size)
	Scale() Vec3
	SetScale(Vec3)
	SetRotation(Vec3)
	// Opacity is in [0, 1].
	Opacity() float64
	SetOpacity(float64)
	Destroy()
}

// Reusable elements are told when they enter and leave a pool.
type Reusable interface {
	Unuse()
	Reuse()
}

// Content is the node visible elements are parented under.
type Content interface {
	Attach(e Element)
	Detach(e Element)
	Contains(e Element) bool
	// BringToFront moves e to the end of the child order.
	BringToFront(e Element)
}

// Viewport is the scrollable window onto the content.
type Viewport interface {
	Content() Content
	ScrollOffset() Point
	// SetScrollOffset jumps without animation.
	SetScrollOffset(Point)
	MaxScrollOffset() Point
	Size() Size
	SetContentSize(Size)
	// SetScrollAxes restricts which axes respond to gestures.
	SetScrollAxes(horizontal, vertical bool)
	// StopScroll cancels any in-flight animation or inertial scroll.
	StopScroll()
	ScrollToOffset(offset Point, duration time.Duration, attenuated bool)
}

// Activator is implemented by viewports that can be detached from the
// scene. Reloads requested while inactive are deferred until Attach.
type Activator interface {
	Active() bool
}

// DataSource supplies counts and elements. CellFor and SupplementaryFor
// normally call Controller.DequeueReusableCell and friends.
type DataSource interface {
	Sections() int
	Items(section int) int
	CellFor(c *Controller, ip IndexPath) (Element, error)
	SupplementaryFor(c *Controller, ip IndexPath, kind string) (Element, error)
}
