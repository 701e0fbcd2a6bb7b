package termhost

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	cv "github.com/568071718/creator-collection-view"
)

// Listener receives the viewport's gesture and scroll events.
// *collectionview.Controller satisfies it.
type Listener interface {
	DragBegan()
	Scrolled() error
	TouchReleased()
	ScrollSettled() error
	ResolveInertialTarget(velocity, proposed cv.Point, duration time.Duration) (cv.InertialTarget, bool)
}

type animation struct {
	from, to   cv.Point
	start      time.Time
	duration   time.Duration
	attenuated bool
}

// at returns the animated offset at now and whether the animation is done.
// Attenuated animations ease out with a cubic curve.
func (a *animation) at(now time.Time) (cv.Point, bool) {
	if a.duration <= 0 {
		return a.to, true
	}
	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		return a.to, true
	}
	t = max(t, 0)
	if a.attenuated {
		t = 1 - math.Pow(1-t, 3)
	}
	return cv.Point{
		X: a.from.X + (a.to.X-a.from.X)*t,
		Y: a.from.Y + (a.to.Y-a.from.Y)*t,
	}, false
}

// Viewport is a scrollable window over a Content node. Offsets are
// clamped to [0, content-viewport] on each axis.
type Viewport struct {
	content  *Content
	listener Listener
	log      *log.Logger

	offset      cv.Point
	size        cv.Size
	horizontal  bool
	vertical    bool
	active      bool
	dragging    bool
	anim        *animation
	now         func() time.Time
	flingFactor float64
	flingTime   time.Duration
}

// NewViewport creates an inactive viewport of the given size. It becomes
// active once SetActive is called, typically after the first window size
// is known.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		content:     &Content{},
		log:         log.Default(),
		size:        cv.Size{Width: width, Height: height},
		horizontal:  true,
		vertical:    true,
		now:         time.Now,
		flingFactor: 0.5,
		flingTime:   600 * time.Millisecond,
	}
}

// SetListener routes scroll events to l.
func (v *Viewport) SetListener(l Listener) *Viewport {
	v.listener = l
	return v
}

func (v *Viewport) SetLogger(l *log.Logger) *Viewport {
	if l != nil {
		v.log = l
	}
	return v
}

// SetClock replaces time.Now for animation timing.
func (v *Viewport) SetClock(now func() time.Time) *Viewport {
	v.now = now
	return v
}

// Fling sets how far an inertial scroll travels, as seconds of the release
// velocity, and how long it animates.
func (v *Viewport) Fling(factor float64, d time.Duration) *Viewport {
	v.flingFactor, v.flingTime = factor, d
	return v
}

func (v *Viewport) Content() cv.Content      { return v.content }
func (v *Viewport) ContentNode() *Content    { return v.content }
func (v *Viewport) ScrollOffset() cv.Point   { return v.offset }
func (v *Viewport) Size() cv.Size            { return v.size }
func (v *Viewport) Active() bool             { return v.active }
func (v *Viewport) SetActive(on bool)        { v.active = on }
func (v *Viewport) SetSize(s cv.Size)        { v.size = s }
func (v *Viewport) SetContentSize(s cv.Size) { v.content.size = s }
func (v *Viewport) Animating() bool          { return v.anim != nil }

// SetScrollOffset jumps without emitting scroll events.
func (v *Viewport) SetScrollOffset(p cv.Point) { v.offset = p }

func (v *Viewport) SetScrollAxes(horizontal, vertical bool) {
	v.horizontal, v.vertical = horizontal, vertical
}

func (v *Viewport) MaxScrollOffset() cv.Point {
	return cv.Point{
		X: max(0, v.content.size.Width-v.size.Width),
		Y: max(0, v.content.size.Height-v.size.Height),
	}
}

func (v *Viewport) StopScroll() { v.anim = nil }

func (v *Viewport) clamp(p cv.Point) cv.Point {
	return p.Min(v.MaxScrollOffset()).Max(cv.Point{})
}

// constrain drops movement along disabled axes.
func (v *Viewport) constrain(p cv.Point) cv.Point {
	if !v.horizontal {
		p.X = v.offset.X
	}
	if !v.vertical {
		p.Y = v.offset.Y
	}
	return p
}

// ScrollToOffset animates to p over d. A non-positive d jumps without
// emitting events; the caller refreshes.
func (v *Viewport) ScrollToOffset(p cv.Point, d time.Duration, attenuated bool) {
	p = v.clamp(p)
	v.anim = nil
	if d <= 0 {
		v.offset = p
		return
	}
	v.anim = &animation{from: v.offset, to: p, start: v.now(), duration: d, attenuated: attenuated}
}

// Drag moves the offset by delta as part of a gesture. The first call of a
// gesture reports DragBegan.
func (v *Viewport) Drag(delta cv.Point) error {
	v.anim = nil
	if !v.dragging {
		v.dragging = true
		if v.listener != nil {
			v.listener.DragBegan()
		}
	}
	return v.moveTo(v.offset.Add(delta))
}

func (v *Viewport) moveTo(p cv.Point) error {
	p = v.clamp(v.constrain(p))
	if p == v.offset {
		return nil
	}
	v.offset = p
	if v.listener != nil {
		return v.listener.Scrolled()
	}
	return nil
}

// Release ends a gesture. velocity is the finger velocity in points per
// second; positive y means the finger moved down, scrolling towards the
// top. The listener may replace the inertial target.
func (v *Viewport) Release(velocity cv.Point) error {
	v.dragging = false
	if v.listener != nil {
		v.listener.TouchReleased()
	}

	proposed := v.clamp(v.constrain(cv.Point{
		X: v.offset.X - velocity.X*v.flingFactor,
		Y: v.offset.Y - velocity.Y*v.flingFactor,
	}))
	target := cv.InertialTarget{Offset: proposed, Duration: v.flingTime}
	if v.listener != nil {
		if t, ok := v.listener.ResolveInertialTarget(velocity, proposed, v.flingTime); ok {
			target = t
			target.Offset = v.clamp(t.Offset)
		}
	}

	if target.Offset == v.offset {
		return v.settle()
	}
	v.log.Debug("fling", "from", v.offset, "to", target.Offset, "duration", target.Duration)
	v.anim = &animation{
		from:       v.offset,
		to:         target.Offset,
		start:      v.now(),
		duration:   target.Duration,
		attenuated: !target.Linear,
	}
	return nil
}

func (v *Viewport) settle() error {
	if v.listener != nil {
		return v.listener.ScrollSettled()
	}
	return nil
}

// Tick advances a running animation. It reports Scrolled for every change
// and ScrollSettled once the animation completes.
func (v *Viewport) Tick(now time.Time) error {
	if v.anim == nil {
		return nil
	}
	p, done := v.anim.at(now)
	if done {
		v.anim = nil
	}
	if p != v.offset {
		v.offset = p
		if v.listener != nil {
			if err := v.listener.Scrolled(); err != nil {
				return err
			}
		}
	}
	if done {
		return v.settle()
	}
	return nil
}
