package collectionview

// Supplementary kinds produced by TableLayout.
const (
	KindHeader = "header"
	KindFooter = "footer"
)

// TableLayout stacks rows in a single vertical column with optional
// per-section headers and footers, which can pin to the visible bounds.
type TableLayout struct {
	rowHeight     float64
	rowHeightFunc func(ip IndexPath) float64

	top, bottom float64
	spacing     float64

	headerHeight     float64
	headerHeightFunc func(section int) float64
	footerHeight     float64
	footerHeightFunc func(section int) float64
	pinHeaders       bool
	pinFooters       bool

	extraVisible  int
	scanThreshold int

	contentSize Size
	attrs       []*LayoutAttributes
	cells       []*LayoutAttributes
	headers     []*LayoutAttributes
	footers     []*LayoutAttributes

	headerFrames map[int]Rect
	footerFrames map[int]Rect
}

// NewTableLayout creates a table with 100-point rows.
func NewTableLayout() *TableLayout {
	return &TableLayout{
		rowHeight:     100,
		scanThreshold: 100,
		headerFrames:  make(map[int]Rect),
		footerFrames:  make(map[int]Rect),
	}
}

// RowHeight sets a fixed row height.
func (t *TableLayout) RowHeight(h float64) *TableLayout {
	t.rowHeight = h
	t.rowHeightFunc = nil
	return t
}

// RowHeightFunc sets a per-row height.
func (t *TableLayout) RowHeightFunc(fn func(ip IndexPath) float64) *TableLayout {
	t.rowHeightFunc = fn
	return t
}

// Insets sets the space added before the first and after the last row of
// every section.
func (t *TableLayout) Insets(top, bottom float64) *TableLayout {
	t.top, t.bottom = top, bottom
	return t
}

// Spacing sets the gap between consecutive rows of a section.
func (t *TableLayout) Spacing(s float64) *TableLayout {
	t.spacing = s
	return t
}

// HeaderHeight sets a fixed section header height. Zero disables headers.
func (t *TableLayout) HeaderHeight(h float64) *TableLayout {
	t.headerHeight = h
	t.headerHeightFunc = nil
	return t
}

// HeaderHeightFunc sizes each section's header, overriding HeaderHeight.
func (t *TableLayout) HeaderHeightFunc(fn func(section int) float64) *TableLayout {
	t.headerHeightFunc = fn
	return t
}

// FooterHeight sets a fixed section footer height. Zero disables footers.
func (t *TableLayout) FooterHeight(h float64) *TableLayout {
	t.footerHeight = h
	t.footerHeightFunc = nil
	return t
}

// FooterHeightFunc sizes each section's footer, overriding FooterHeight.
func (t *TableLayout) FooterHeightFunc(fn func(section int) float64) *TableLayout {
	t.footerHeightFunc = fn
	return t
}

// PinHeaders keeps each section's header inside the viewport while the
// section is on screen.
func (t *TableLayout) PinHeaders(on bool) *TableLayout {
	t.pinHeaders = on
	return t
}

// PinFooters is PinHeaders for footers, clamped to the trailing edge.
func (t *TableLayout) PinFooters(on bool) *TableLayout {
	t.pinFooters = on
	return t
}

// ExtraVisible adds n over-scan probes on each side of the binary-search
// window. Raise it when row heights vary wildly. A negative n disables the
// search and returns every attribute.
func (t *TableLayout) ExtraVisible(n int) *TableLayout {
	t.extraVisible = n
	return t
}

// ScanThreshold sets the element count at or below which range queries
// return every attribute without searching.
func (t *TableLayout) ScanThreshold(n int) *TableLayout {
	t.scanThreshold = n
	return t
}

func (t *TableLayout) heightFor(ip IndexPath) float64 {
	if t.rowHeightFunc != nil {
		return t.rowHeightFunc(ip)
	}
	return t.rowHeight
}

func (t *TableLayout) headerFor(section int) float64 {
	if t.headerHeightFunc != nil {
		return t.headerHeightFunc(section)
	}
	return t.headerHeight
}

func (t *TableLayout) footerFor(section int) float64 {
	if t.footerHeightFunc != nil {
		return t.footerHeightFunc(section)
	}
	return t.footerHeight
}

func (t *TableLayout) Prepare(ctx Context) error {
	warnDirection(ctx, "table", Vertical)

	t.attrs, t.cells, t.headers, t.footers = nil, nil, nil, nil
	clear(t.headerFrames)
	clear(t.footerFrames)

	width := ctx.ViewportSize().Width
	y := 0.0

	sections := ctx.Sections()
	for section := 0; section < sections; section++ {
		sectionPath := IP(section, 0)

		if h := t.headerFor(section); h > 0 {
			a := NewSupplementaryAttributes(sectionPath, KindHeader)
			a.Frame = Rect{X: 0, Y: y, Width: width, Height: h}
			a.ZIndex = 1
			t.attrs = append(t.attrs, a)
			t.headers = append(t.headers, a)
			t.headerFrames[section] = a.Frame
			y = a.Frame.MaxY()
		}

		y += t.top

		items := ctx.Items(section)
		for item := 0; item < items; item++ {
			ip := IP(section, item)
			a := NewCellAttributes(ip)
			a.Frame = Rect{X: 0, Y: y, Width: width, Height: t.heightFor(ip)}
			if item > 0 {
				a.Frame.Y += t.spacing
			}
			t.attrs = append(t.attrs, a)
			t.cells = append(t.cells, a)
			y = a.Frame.MaxY()
		}

		y += t.bottom

		if h := t.footerFor(section); h > 0 {
			a := NewSupplementaryAttributes(sectionPath, KindFooter)
			a.Frame = Rect{X: 0, Y: y, Width: width, Height: h}
			a.ZIndex = 1
			t.attrs = append(t.attrs, a)
			t.footers = append(t.footers, a)
			t.footerFrames[section] = a.Frame
			y = a.Frame.MaxY()
		}
	}

	t.contentSize = Size{Width: width, Height: y}
	return nil
}

func (t *TableLayout) ContentSize() Size               { return t.contentSize }
func (t *TableLayout) Attributes() []*LayoutAttributes { return t.attrs }
func (t *TableLayout) ScrollAxis() Direction           { return Vertical }

func (t *TableLayout) InitialOffset(ctx Context) Point { return Point{} }

func (t *TableLayout) AttributeFor(key ElementKey, ctx Context) *LayoutAttributes {
	switch key.Category {
	case CategoryCell:
		return FindAttributes(t.cells, key)
	case CategorySupplementary:
		if key.Kind == KindHeader {
			return FindAttributes(t.headers, key)
		}
		return FindAttributes(t.footers, key)
	}
	return nil
}

func (t *TableLayout) Capabilities() Capabilities {
	pinned := t.pinHeaders || t.pinFooters
	return Capabilities{ZOrder: pinned, ContinuousBounds: pinned}
}

func (t *TableLayout) AttributesInRect(rect Rect, ctx Context) []*LayoutAttributes {
	result := t.inRect(rect)
	if !t.pinHeaders && !t.pinFooters {
		return result
	}

	pinned := make([]*LayoutAttributes, len(result))
	offset := ctx.ScrollOffset()
	viewport := ctx.ViewportSize()
	sections := ctx.Sections()
	for i, a := range result {
		pinned[i] = a
		if a.Category() != CategorySupplementary {
			continue
		}
		section := a.IndexPath().Section
		switch {
		case t.pinHeaders && a.Kind() == KindHeader:
			p := a.Clone()
			orig := t.headerFrames[section]
			p.Frame.Y = max(orig.Y, offset.Y)
			if next, ok := t.nextFrame(section, KindFooter, sections); ok && p.Frame.MaxY() > next.Y {
				p.Frame.Y = next.Y - p.Frame.Height
			}
			pinned[i] = p
		case t.pinFooters && a.Kind() == KindFooter:
			p := a.Clone()
			orig := t.footerFrames[section]
			bottom := offset.Y + viewport.Height
			if bottom < orig.MaxY() {
				p.Frame.Y = bottom - p.Frame.Height
				if prev, ok := t.previousFrame(section, KindHeader); ok && p.Frame.Y < prev.MaxY() {
					p.Frame.Y = prev.MaxY()
				}
			}
			pinned[i] = p
		}
	}
	return pinned
}

// inRect returns all headers and footers plus the cells found by binary
// search. Small tables skip the search.
func (t *TableLayout) inRect(rect Rect) []*LayoutAttributes {
	if t.extraVisible < 0 || len(t.attrs) <= t.scanThreshold {
		return t.attrs
	}
	cells, ok := BinarySearchRect(t.cells, rect, t.extraVisible)
	if !ok {
		return t.attrs
	}
	out := make([]*LayoutAttributes, 0, len(t.headers)+len(t.footers)+len(cells))
	out = append(out, t.headers...)
	out = append(out, t.footers...)
	return append(out, cells...)
}

// nextFrame returns the stored frame of the first supplementary at or
// after (section, kind) in layout order.
func (t *TableLayout) nextFrame(section int, kind string, sections int) (Rect, bool) {
	for section < sections {
		if kind == KindHeader {
			if f, ok := t.headerFrames[section]; ok {
				return f, true
			}
			kind = KindFooter
			continue
		}
		if f, ok := t.footerFrames[section]; ok {
			return f, true
		}
		section++
		kind = KindHeader
	}
	return Rect{}, false
}

// previousFrame walks backwards from (section, kind).
func (t *TableLayout) previousFrame(section int, kind string) (Rect, bool) {
	for section >= 0 {
		if kind == KindFooter {
			if f, ok := t.footerFrames[section]; ok {
				return f, true
			}
			kind = KindHeader
			continue
		}
		if f, ok := t.headerFrames[section]; ok {
			return f, true
		}
		section--
		kind = KindFooter
	}
	return Rect{}, false
}
