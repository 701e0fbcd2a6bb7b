package collectionview

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// binding is the controller's side record for an element it created.
type binding struct {
	identifier string
	attrs      *LayoutAttributes
}

// Controller turns a layout's geometry into a minimal set of live elements.
// It owns the data source callbacks, one layout, the reuse pools and the
// visible-set bookkeeping. All methods must be called from the host's frame
// thread.
type Controller struct {
	cfg      Config
	viewport Viewport
	data     DataSource
	layout   Layout
	log      *log.Logger

	pools    map[string]*Pool
	bindings map[Element]*binding

	visible    map[ElementKey]Element
	preloaded  map[ElementKey]Element
	preloadIdx int

	reloads int
	frame   int

	pendingReload  bool
	pendingVisible bool
	pendingRecycle bool

	dragStart Point

	onCellDisplay             func(e Element, ip IndexPath)
	onCellEndDisplay          func(e Element, ip IndexPath)
	onSupplementaryDisplay    func(e Element, ip IndexPath, kind string)
	onSupplementaryEndDisplay func(e Element, ip IndexPath, kind string)
	onCellTouched             func(ip IndexPath)
	onSupplementaryTouched    func(ip IndexPath, kind string)
	onPreloadProgress         func(current, total int)
}

// NewController creates a controller driving the given viewport.
func NewController(vp Viewport, cfg Config) *Controller {
	return &Controller{
		cfg:        cfg,
		viewport:   vp,
		log:        logger,
		pools:      make(map[string]*Pool),
		bindings:   make(map[Element]*binding),
		visible:    make(map[ElementKey]Element),
		preloaded:  make(map[ElementKey]Element),
		preloadIdx: -1,
	}
}

// SetLayout assigns the layout used by the next reload.
func (c *Controller) SetLayout(l Layout) *Controller {
	c.layout = l
	return c
}

// Layout returns the assigned layout.
func (c *Controller) Layout() Layout { return c.layout }

// SetDataSource assigns the data source.
func (c *Controller) SetDataSource(ds DataSource) *Controller {
	c.data = ds
	return c
}

// SetLogger overrides the logger for this controller and its layouts.
func (c *Controller) SetLogger(l *log.Logger) *Controller {
	if l != nil {
		c.log = l
	}
	return c
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Viewport returns the host viewport.
func (c *Controller) Viewport() Viewport { return c.viewport }

// ScrollEnabled reports whether gestures should scroll the viewport.
func (c *Controller) ScrollEnabled() bool { return c.cfg.ScrollEnabled }

// SetScrollEnabled toggles gesture scrolling.
func (c *Controller) SetScrollEnabled(on bool) *Controller {
	c.cfg.ScrollEnabled = on
	return c
}

// OnCellDisplay is called when a cell becomes visible.
func (c *Controller) OnCellDisplay(fn func(e Element, ip IndexPath)) *Controller {
	c.onCellDisplay = fn
	return c
}

// OnCellEndDisplay is called when a visible cell is reclaimed.
func (c *Controller) OnCellEndDisplay(fn func(e Element, ip IndexPath)) *Controller {
	c.onCellEndDisplay = fn
	return c
}

// OnSupplementaryDisplay is called when a header, footer or other
// supplementary element becomes visible.
func (c *Controller) OnSupplementaryDisplay(fn func(e Element, ip IndexPath, kind string)) *Controller {
	c.onSupplementaryDisplay = fn
	return c
}

// OnSupplementaryEndDisplay is called when a supplementary element is reclaimed.
func (c *Controller) OnSupplementaryEndDisplay(fn func(e Element, ip IndexPath, kind string)) *Controller {
	c.onSupplementaryEndDisplay = fn
	return c
}

// OnCellTouched is called with the index path of a touched cell.
func (c *Controller) OnCellTouched(fn func(ip IndexPath)) *Controller {
	c.onCellTouched = fn
	return c
}

// OnSupplementaryTouched is called when a supplementary element is touched.
func (c *Controller) OnSupplementaryTouched(fn func(ip IndexPath, kind string)) *Controller {
	c.onSupplementaryTouched = fn
	return c
}

// OnPreloadProgress reports (materialized, total) after each preloaded element.
func (c *Controller) OnPreloadProgress(fn func(current, total int)) *Controller {
	c.onPreloadProgress = fn
	return c
}

func (c *Controller) notifyDisplay(e Element, a *LayoutAttributes) {
	switch a.Category() {
	case CategoryCell:
		if c.onCellDisplay != nil {
			c.onCellDisplay(e, a.IndexPath())
		}
	case CategorySupplementary:
		if c.onSupplementaryDisplay != nil {
			c.onSupplementaryDisplay(e, a.IndexPath(), a.Kind())
		}
	}
}

func (c *Controller) notifyEndDisplay(e Element, a *LayoutAttributes) {
	if a == nil {
		return
	}
	switch a.Category() {
	case CategoryCell:
		if c.onCellEndDisplay != nil {
			c.onCellEndDisplay(e, a.IndexPath())
		}
	case CategorySupplementary:
		if c.onSupplementaryEndDisplay != nil {
			c.onSupplementaryEndDisplay(e, a.IndexPath(), a.Kind())
		}
	}
}

func poolID(cat Category, identifier string) string {
	return cat.String() + ":" + identifier
}

// RegisterCell registers a cell reuse identifier. maker builds a new
// element when the pool has none to hand out.
func (c *Controller) RegisterCell(identifier string, maker func() Element) *Controller {
	id := poolID(CategoryCell, identifier)
	c.pools[id] = newPool(id, maker)
	return c
}

// RegisterSupplementary registers a supplementary reuse identifier.
func (c *Controller) RegisterSupplementary(identifier string, maker func() Element) *Controller {
	id := poolID(CategorySupplementary, identifier)
	c.pools[id] = newPool(id, maker)
	return c
}

// DequeueReusableCell returns a cell for ip, preferring the pooled element
// that showed ip before the last reload, then any pooled element, then a
// newly made one.
func (c *Controller) DequeueReusableCell(identifier string, ip IndexPath) (Element, error) {
	return c.dequeue(CategoryCell, identifier, ip)
}

// DequeueReusableSupplementary is DequeueReusableCell for supplementary elements.
func (c *Controller) DequeueReusableSupplementary(identifier string, ip IndexPath) (Element, error) {
	return c.dequeue(CategorySupplementary, identifier, ip)
}

func (c *Controller) dequeue(cat Category, identifier string, ip IndexPath) (Element, error) {
	id := poolID(cat, identifier)
	p, ok := c.pools[id]
	if !ok {
		return nil, configError("dequeue "+cat.String(), fmt.Errorf("%w %q", ErrUnregisteredIdentifier, identifier))
	}
	if e := p.GetAt(ip); e != nil {
		return e, nil
	}
	if e := p.Get(); e != nil {
		return e, nil
	}
	e := p.maker()
	if e == nil {
		return nil, configError("dequeue "+cat.String(), fmt.Errorf("%w for identifier %q", ErrNilElement, identifier))
	}
	c.bindings[e] = &binding{identifier: id}
	return e, nil
}

// enqueue detaches e and returns it to its pool. Elements the controller
// did not make are destroyed instead.
func (c *Controller) enqueue(e Element) {
	c.viewport.Content().Detach(e)
	b := c.bindings[e]
	var p *Pool
	if b != nil {
		p = c.pools[b.identifier]
	}
	if p == nil || b.attrs == nil {
		e.Destroy()
		delete(c.bindings, e)
		return
	}
	p.Put(e, b.attrs.IndexPath())
	b.attrs = nil
}

func (c *Controller) destroy(e Element) {
	c.viewport.Content().Detach(e)
	e.Destroy()
	delete(c.bindings, e)
}

func (c *Controller) clearPools() {
	for _, p := range c.pools {
		for _, e := range p.free {
			delete(c.bindings, e)
		}
		p.Clear()
	}
}

// VisibleRect is the viewport rectangle in content coordinates.
func (c *Controller) VisibleRect() Rect {
	return NewRect(c.viewport.ScrollOffset(), c.viewport.Size())
}

// VisibleCell returns the element showing the cell at ip, or nil.
func (c *Controller) VisibleCell(ip IndexPath) Element {
	return c.visible[CellKey(ip)]
}

// VisibleSupplementary returns the element showing the supplementary of
// kind at ip, or nil.
func (c *Controller) VisibleSupplementary(ip IndexPath, kind string) Element {
	return c.visible[SupplementaryKey(ip, kind)]
}

// VisibleCells returns every visible cell element.
func (c *Controller) VisibleCells() []Element {
	var out []Element
	for k, e := range c.visible {
		if k.Category == CategoryCell {
			out = append(out, e)
		}
	}
	return out
}

// VisibleSupplementaries returns visible supplementary elements of kind,
// or of every kind when kind is empty.
func (c *Controller) VisibleSupplementaries(kind string) []Element {
	var out []Element
	for k, e := range c.visible {
		if k.Category == CategorySupplementary && (kind == "" || k.Kind == kind) {
			out = append(out, e)
		}
	}
	return out
}

// VisibleKeys returns the keys of every visible element.
func (c *Controller) VisibleKeys() []ElementKey {
	out := make([]ElementKey, 0, len(c.visible))
	for k := range c.visible {
		out = append(out, k)
	}
	return out
}

// ElementAttributes returns the attributes currently bound to e, or nil.
func (c *Controller) ElementAttributes(e Element) *LayoutAttributes {
	if b := c.bindings[e]; b != nil {
		return b.attrs
	}
	return nil
}

// ReloadCount is the number of completed reloads.
func (c *Controller) ReloadCount() int { return c.reloads }

// Sections and the accessors below let the controller serve as a layout
// Context.
func (c *Controller) Sections() int {
	if c.data == nil {
		return 0
	}
	return c.data.Sections()
}

func (c *Controller) Items(section int) int {
	if c.data == nil {
		return 0
	}
	return c.data.Items(section)
}

func (c *Controller) ViewportSize() Size   { return c.viewport.Size() }
func (c *Controller) ScrollOffset() Point  { return c.viewport.ScrollOffset() }
func (c *Controller) Direction() Direction { return c.cfg.Direction }
func (c *Controller) Logger() *log.Logger  { return c.log }

// Destroy releases every element the controller knows about and the layout.
func (c *Controller) Destroy() {
	seen := make(map[Element]bool)
	for _, m := range []map[ElementKey]Element{c.visible, c.preloaded} {
		for _, e := range m {
			if !seen[e] {
				seen[e] = true
				c.destroy(e)
			}
		}
		clear(m)
	}
	c.clearPools()
	clear(c.pools)
	clear(c.bindings)
	if r, ok := c.layout.(Releaser); ok {
		r.Release()
	}
}
