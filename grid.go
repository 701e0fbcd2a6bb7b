package collectionview

import (
	"fmt"
	"math"
)

// Alignment positions a grid row horizontally within the viewport.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Alignment) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left", "":
		*a = AlignLeft
	case "center":
		*a = AlignCenter
	case "right":
		*a = AlignRight
	default:
		return fmt.Errorf("collectionview: unknown alignment %q", b)
	}
	return nil
}

// GridLayout wraps fixed-size cells into rows as wide as the viewport.
// Only section 0 is laid out.
type GridLayout struct {
	itemSize Size
	hSpacing float64
	vSpacing float64

	alignment    Alignment
	lastRowAlign *Alignment

	scanThreshold int

	perRow      int
	contentSize Size
	attrs       []*LayoutAttributes
}

// NewGridLayout creates a grid of 100x100 cells.
func NewGridLayout() *GridLayout {
	return &GridLayout{
		itemSize:      Size{100, 100},
		scanThreshold: 100,
		perRow:        1,
	}
}

// ItemSize sets the size shared by every cell.
func (g *GridLayout) ItemSize(s Size) *GridLayout {
	g.itemSize = s
	return g
}

// Spacing sets the horizontal gap between columns and the vertical gap
// between rows.
func (g *GridLayout) Spacing(horizontal, vertical float64) *GridLayout {
	g.hSpacing, g.vSpacing = horizontal, vertical
	return g
}

// Align positions the whole block of columns.
func (g *GridLayout) Align(a Alignment) *GridLayout {
	g.alignment = a
	return g
}

// AlignLastRow positions the (possibly partial) last row independently,
// within the block of columns.
func (g *GridLayout) AlignLastRow(a Alignment) *GridLayout {
	g.lastRowAlign = &a
	return g
}

// ScanThreshold sets the cell count at or below which range queries
// return every attribute.
func (g *GridLayout) ScanThreshold(n int) *GridLayout {
	g.scanThreshold = n
	return g
}

// ItemsPerRow is the column count computed by the last Prepare.
func (g *GridLayout) ItemsPerRow() int { return g.perRow }

func (g *GridLayout) rowExtent() float64 { return g.itemSize.Height + g.vSpacing }

func itemsPerRow(width, item, spacing float64) int {
	if item <= 0 {
		return 1
	}
	n := int(math.Floor((width + spacing) / (item + spacing)))
	return max(1, n)
}

func alignOffset(a Alignment, available, used float64) float64 {
	switch a {
	case AlignCenter:
		return (available - used) * 0.5
	case AlignRight:
		return available - used
	}
	return 0
}

func (g *GridLayout) Prepare(ctx Context) error {
	warnDirection(ctx, "grid", Vertical)
	warnSections(ctx, "grid")

	viewport := ctx.ViewportSize()
	width := viewport.Width

	g.perRow = itemsPerRow(width, g.itemSize.Width, g.hSpacing)
	n := g.perRow
	blockWidth := float64(n)*g.itemSize.Width + float64(n-1)*g.hSpacing
	left := alignOffset(g.alignment, width, blockWidth)

	items := 0
	if ctx.Sections() > 0 {
		items = ctx.Items(0)
	}
	rows := (items + n - 1) / n

	g.attrs = make([]*LayoutAttributes, 0, items)
	size := viewport
	for i := 0; i < items; i++ {
		row, col := i/n, i%n
		a := NewCellAttributes(IP(0, i))
		a.Frame = Rect{
			X:      left + (g.itemSize.Width+g.hSpacing)*float64(col),
			Y:      g.rowExtent() * float64(row),
			Width:  g.itemSize.Width,
			Height: g.itemSize.Height,
		}
		g.attrs = append(g.attrs, a)
		size.Height = math.Max(size.Height, a.Frame.MaxY())
	}

	if g.lastRowAlign != nil && rows > 0 {
		last := g.attrs[(rows-1)*n:]
		used := float64(len(last))*g.itemSize.Width + float64(len(last)-1)*g.hSpacing
		x := left + alignOffset(*g.lastRowAlign, blockWidth, used)
		for _, a := range last {
			a.Frame.X = x
			x = a.Frame.MaxX() + g.hSpacing
		}
	}

	g.contentSize = size
	return nil
}

func (g *GridLayout) ContentSize() Size               { return g.contentSize }
func (g *GridLayout) Attributes() []*LayoutAttributes { return g.attrs }
func (g *GridLayout) ScrollAxis() Direction           { return Vertical }

func (g *GridLayout) InitialOffset(ctx Context) Point { return Point{} }

// AttributeFor indexes directly by item.
func (g *GridLayout) AttributeFor(key ElementKey, ctx Context) *LayoutAttributes {
	if key.Category != CategoryCell || key.IndexPath.Section != 0 {
		return nil
	}
	if i := key.IndexPath.Item; i >= 0 && i < len(g.attrs) {
		return g.attrs[i]
	}
	return nil
}

// AttributesInRect computes the row window covering rect and returns the
// items in it, without scanning.
func (g *GridLayout) AttributesInRect(rect Rect, ctx Context) []*LayoutAttributes {
	if len(g.attrs) <= g.scanThreshold || g.rowExtent() <= 0 {
		return g.attrs
	}
	// Row r spans [r*extent, r*extent+height]; edges touch inclusively.
	ext := g.rowExtent()
	startRow := int(math.Ceil((rect.MinY() - g.itemSize.Height) / ext))
	endRow := int(math.Floor(rect.MaxY()/ext)) + 1

	start := max(startRow*g.perRow, 0)
	end := min(endRow*g.perRow, len(g.attrs))
	if start >= end {
		return nil
	}
	return g.attrs[start:end]
}
