package collectionview

import (
	"io"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// In-memory host used by the controller tests.

type fakeElement struct {
	id        int
	pos       Vec3
	size      Size
	scale     Vec3
	rotation  Vec3
	opacity   float64
	destroyed bool
	unused    int
	reused    int
}

func (e *fakeElement) Position() Vec3       { return e.pos }
func (e *fakeElement) SetPosition(p Vec3)   { e.pos = p }
func (e *fakeElement) Size() Size           { return e.size }
func (e *fakeElement) SetSize(s Size)       { e.size = s }
func (e *fakeElement) Scale() Vec3          { return e.scale }
func (e *fakeElement) SetScale(s Vec3)      { e.scale = s }
func (e *fakeElement) SetRotation(r Vec3)   { e.rotation = r }
func (e *fakeElement) Opacity() float64     { return e.opacity }
func (e *fakeElement) SetOpacity(o float64) { e.opacity = o }
func (e *fakeElement) Destroy()             { e.destroyed = true }
func (e *fakeElement) Unuse()               { e.unused++ }
func (e *fakeElement) Reuse()               { e.reused++ }

type fakeContent struct {
	children []Element
}

func (c *fakeContent) Attach(e Element) {
	if !c.Contains(e) {
		c.children = append(c.children, e)
	}
}

func (c *fakeContent) Detach(e Element) {
	if i := slices.Index(c.children, e); i >= 0 {
		c.children = slices.Delete(c.children, i, i+1)
	}
}

func (c *fakeContent) Contains(e Element) bool {
	return slices.Contains(c.children, e)
}

func (c *fakeContent) BringToFront(e Element) {
	c.Detach(e)
	c.children = append(c.children, e)
}

type scrollCall struct {
	offset     Point
	duration   time.Duration
	attenuated bool
}

type fakeViewport struct {
	content     *fakeContent
	offset      Point
	size        Size
	contentSize Size
	horizontal  bool
	vertical    bool
	stops       int
	inactive    bool
	scrolls     []scrollCall
}

func newFakeViewport(w, h float64) *fakeViewport {
	return &fakeViewport{content: &fakeContent{}, size: Size{w, h}}
}

func (v *fakeViewport) Content() Content        { return v.content }
func (v *fakeViewport) ScrollOffset() Point     { return v.offset }
func (v *fakeViewport) SetScrollOffset(p Point) { v.offset = p }
func (v *fakeViewport) Size() Size              { return v.size }
func (v *fakeViewport) SetContentSize(s Size)   { v.contentSize = s }
func (v *fakeViewport) StopScroll()             { v.stops++ }
func (v *fakeViewport) Active() bool            { return !v.inactive }

func (v *fakeViewport) SetScrollAxes(h, vert bool) {
	v.horizontal, v.vertical = h, vert
}

func (v *fakeViewport) MaxScrollOffset() Point {
	return Point{
		X: max(0, v.contentSize.Width-v.size.Width),
		Y: max(0, v.contentSize.Height-v.size.Height),
	}
}

func (v *fakeViewport) ScrollToOffset(p Point, d time.Duration, attenuated bool) {
	v.scrolls = append(v.scrolls, scrollCall{p, d, attenuated})
	v.offset = p
}

type fakeSource struct {
	items   []int
	made    int
	nilCell bool
}

func (s *fakeSource) Sections() int { return len(s.items) }

func (s *fakeSource) Items(section int) int { return s.items[section] }

func (s *fakeSource) CellFor(c *Controller, ip IndexPath) (Element, error) {
	if s.nilCell {
		return nil, nil
	}
	return c.DequeueReusableCell("cell", ip)
}

func (s *fakeSource) SupplementaryFor(c *Controller, ip IndexPath, kind string) (Element, error) {
	return c.DequeueReusableSupplementary(kind, ip)
}

// displayTracker asserts display and end-display alternate per key.
type displayTracker struct {
	t        *testing.T
	shown    map[ElementKey]bool
	displays int
	ends     int
}

func (d *displayTracker) display(k ElementKey) {
	d.t.Helper()
	if d.shown[k] {
		d.t.Errorf("duplicate display for %v without end-display", k)
	}
	d.shown[k] = true
	d.displays++
}

func (d *displayTracker) end(k ElementKey) {
	d.t.Helper()
	if !d.shown[k] {
		d.t.Errorf("end-display for %v that was never displayed", k)
	}
	delete(d.shown, k)
	d.ends++
}

type harness struct {
	c     *Controller
	vp    *fakeViewport
	src   *fakeSource
	tr    *displayTracker
	elems []*fakeElement
}

func newHarness(t *testing.T, cfg Config, layout Layout, vp *fakeViewport, items ...int) *harness {
	t.Helper()
	h := &harness{
		vp:  vp,
		src: &fakeSource{items: items},
		tr:  &displayTracker{t: t, shown: make(map[ElementKey]bool)},
	}
	maker := func() Element {
		h.src.made++
		e := &fakeElement{id: h.src.made, opacity: 1, scale: Vec3{X: 1, Y: 1, Z: 1}}
		h.elems = append(h.elems, e)
		return e
	}
	h.c = NewController(vp, cfg).
		SetLogger(log.New(io.Discard)).
		SetLayout(layout).
		SetDataSource(h.src).
		RegisterCell("cell", maker).
		RegisterSupplementary(KindHeader, maker).
		RegisterSupplementary(KindFooter, maker).
		OnCellDisplay(func(_ Element, ip IndexPath) { h.tr.display(CellKey(ip)) }).
		OnCellEndDisplay(func(_ Element, ip IndexPath) { h.tr.end(CellKey(ip)) }).
		OnSupplementaryDisplay(func(_ Element, ip IndexPath, k string) { h.tr.display(SupplementaryKey(ip, k)) }).
		OnSupplementaryEndDisplay(func(_ Element, ip IndexPath, k string) { h.tr.end(SupplementaryKey(ip, k)) })
	return h
}

func (h *harness) reload(t *testing.T) {
	t.Helper()
	if err := h.c.ReloadData(); err != nil {
		t.Fatalf("ReloadData: %v", err)
	}
}

// scrollTo moves the fake viewport and runs one frame.
func (h *harness) scrollTo(t *testing.T, p Point) {
	t.Helper()
	h.vp.offset = p
	if err := h.c.Scrolled(); err != nil {
		t.Fatalf("Scrolled: %v", err)
	}
	if err := h.c.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

// expectedKeys is the linear-scan oracle for the current viewport.
func (h *harness) expectedKeys() map[ElementKey]bool {
	rect := h.c.VisibleRect()
	out := make(map[ElementKey]bool)
	for _, a := range h.c.Layout().AttributesInRect(rect, h.c) {
		if rect.Intersects(a.Frame) {
			out[a.Key()] = true
		}
	}
	return out
}

func keySet(keys []ElementKey) map[ElementKey]bool {
	out := make(map[ElementKey]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

func sameKeys(a, b map[ElementKey]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// testContext is a Context for exercising layouts without a controller.
type testContext struct {
	items     []int
	viewport  Size
	offset    Point
	direction Direction
	logger    *log.Logger
}

func newTestContext(w, h float64, items ...int) *testContext {
	return &testContext{items: items, viewport: Size{w, h}, logger: log.New(io.Discard)}
}

func (c *testContext) Sections() int         { return len(c.items) }
func (c *testContext) Items(section int) int { return c.items[section] }
func (c *testContext) ViewportSize() Size    { return c.viewport }
func (c *testContext) ScrollOffset() Point   { return c.offset }
func (c *testContext) Direction() Direction  { return c.direction }
func (c *testContext) Logger() *log.Logger   { return c.logger }

func (c *testContext) rect() Rect { return NewRect(c.offset, c.viewport) }

// intersectingKeys filters a query result down to what truly intersects.
func intersectingKeys(attrs []*LayoutAttributes, rect Rect) map[ElementKey]bool {
	out := make(map[ElementKey]bool)
	for _, a := range attrs {
		if rect.Intersects(a.Frame) {
			out[a.Key()] = true
		}
	}
	return out
}
