package collectionview

import (
	"math"
	"time"
)

// PagerLayout shows one viewport-sized page per item, scrolling
// horizontally. With looping enabled it lays out 3*multiplier copies of
// the pages and re-centres on the middle copy whenever scrolling settles.
type PagerLayout struct {
	paging     bool
	duration   time.Duration
	loop       bool
	multiplier int

	pageSize    Size
	contentSize Size
	attrs       []*LayoutAttributes
}

// NewPagerLayout creates a non-looping pager that snaps to pages.
func NewPagerLayout() *PagerLayout {
	return &PagerLayout{
		paging:     true,
		duration:   500 * time.Millisecond,
		multiplier: 5,
	}
}

// Paging toggles snapping flings to page boundaries.
func (p *PagerLayout) Paging(on bool) *PagerLayout {
	p.paging = on
	return p
}

// AnimationDuration sets the snap animation length.
func (p *PagerLayout) AnimationDuration(d time.Duration) *PagerLayout {
	p.duration = d
	return p
}

// Loop makes the pages appear to wrap around.
func (p *PagerLayout) Loop(on bool) *PagerLayout {
	p.loop = on
	return p
}

// Multiplier sets how many copies of the pages sit on each side of the
// middle copy when looping. Values below 1 are treated as 1.
func (p *PagerLayout) Multiplier(n int) *PagerLayout {
	p.multiplier = n
	return p
}

func (p *PagerLayout) safeMultiplier() int { return max(1, p.multiplier) }

func pageCount(ctx Context) int {
	if ctx.Sections() == 0 {
		return 0
	}
	return ctx.Items(0)
}

func (p *PagerLayout) Prepare(ctx Context) error {
	warnDirection(ctx, "pager", Horizontal)
	warnSections(ctx, "pager")

	p.pageSize = ctx.ViewportSize()
	n := pageCount(ctx)
	if p.loop {
		n *= 3 * p.safeMultiplier()
	}

	p.attrs = make([]*LayoutAttributes, 0, n)
	size := p.pageSize
	for i := 0; i < n; i++ {
		a := NewCellAttributes(IP(0, i))
		a.Frame = Rect{X: p.pageSize.Width * float64(i), Width: p.pageSize.Width, Height: p.pageSize.Height}
		p.attrs = append(p.attrs, a)
		size.Width = math.Max(size.Width, a.Frame.MaxX())
	}
	p.contentSize = size
	return nil
}

func (p *PagerLayout) ContentSize() Size               { return p.contentSize }
func (p *PagerLayout) Attributes() []*LayoutAttributes { return p.attrs }
func (p *PagerLayout) ScrollAxis() Direction           { return Horizontal }

// LogicalPage maps a laid-out page index back to the data item it shows.
func (p *PagerLayout) LogicalPage(index int, ctx Context) int {
	n := pageCount(ctx)
	if !p.loop || n == 0 {
		return index
	}
	return ((index % n) + n) % n
}

// InitialOffset starts on the first page of the middle copy when looping.
func (p *PagerLayout) InitialOffset(ctx Context) Point {
	if !p.loop {
		return Point{}
	}
	return Point{X: float64(pageCount(ctx)*p.safeMultiplier()) * p.pageSize.Width}
}

func (p *PagerLayout) AttributeFor(key ElementKey, ctx Context) *LayoutAttributes {
	if key.Category != CategoryCell || key.IndexPath.Section != 0 {
		return nil
	}
	if i := key.IndexPath.Item; i >= 0 && i < len(p.attrs) {
		return p.attrs[i]
	}
	return nil
}

// ScrollTarget maps a logical page into the middle copy when looping.
func (p *PagerLayout) ScrollTarget(ip IndexPath, ctx Context) (Point, bool) {
	if !p.loop {
		return Point{}, false
	}
	n := pageCount(ctx)
	if n == 0 {
		return Point{}, false
	}
	page := n*p.safeMultiplier() + p.LogicalPage(ip.Item, ctx)
	return Point{X: float64(page) * p.pageSize.Width}, true
}

// AttributesInRect returns the page under rect plus its neighbours.
func (p *PagerLayout) AttributesInRect(rect Rect, ctx Context) []*LayoutAttributes {
	w := p.pageSize.Width
	if w <= 0 || len(p.attrs) == 0 {
		return p.attrs
	}
	idx := int(math.Round(rect.X / w))
	out := make([]*LayoutAttributes, 0, 3)
	for _, i := range []int{idx, idx - 1, idx + 1} {
		if i >= 0 && i < len(p.attrs) {
			out = append(out, p.attrs[i])
		}
	}
	return out
}

// InertialTarget snaps to the nearest page. A fast enough fling moves one
// page from where the drag started, in the direction of the gesture.
func (p *PagerLayout) InertialTarget(ctx Context, velocity Point, dragStart, proposed Point, duration time.Duration) (InertialTarget, bool) {
	w := p.pageSize.Width
	if !p.paging || w <= 0 {
		return InertialTarget{}, false
	}
	const threshold = 0.2

	offset := ctx.ScrollOffset()
	idx := int(math.Round(offset.X / w))
	if r := velocity.X / w; math.Abs(r) >= threshold {
		idx = int(math.Round(dragStart.X / w))
		if r > 0 {
			idx--
		} else {
			idx++
		}
	}
	idx = min(max(idx, 0), max(len(p.attrs)-1, 0))
	return InertialTarget{
		Offset:   Point{X: float64(idx) * w, Y: offset.Y},
		Duration: p.duration,
	}, true
}

// ScrollSettled re-centres a looping pager on the middle copy.
func (p *PagerLayout) ScrollSettled(ctx Context) (Point, bool) {
	n := pageCount(ctx)
	w := p.pageSize.Width
	if !p.loop || n == 0 || w <= 0 {
		return Point{}, false
	}
	offset := ctx.ScrollOffset()
	idx := int(math.Round(offset.X/w)) % n
	return Point{X: w * float64(n*p.safeMultiplier()+idx), Y: offset.Y}, true
}
