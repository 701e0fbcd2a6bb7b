package collectionview

import (
	"fmt"
	"math"
)

// Point is a 2D position or offset in content coordinates.
// Content coordinates have a top-left origin with y growing downwards.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Min returns the component-wise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{math.Min(p.X, q.X), math.Min(p.Y, q.Y)}
}

// Max returns the component-wise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{math.Max(p.X, q.X), math.Max(p.Y, q.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Valid reports whether both dimensions are finite and non-negative.
func (s Size) Valid() bool {
	return validDim(s.Width) && validDim(s.Height)
}

func validDim(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Vec3 carries the optional transform overrides of a LayoutAttributes
// (translation, scale, rotation in degrees).
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect builds a Rect from an origin and a size.
func NewRect(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

func (r Rect) Origin() Point { return Point{r.X, r.Y} }
func (r Rect) Size() Size    { return Size{r.Width, r.Height} }
func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Intersects reports whether r and o overlap. Edges are inclusive, so two
// rectangles that merely touch are considered intersecting. A row sitting
// exactly on the trailing edge of the viewport is therefore reported visible.
func (r Rect) Intersects(o Rect) bool {
	return r.MaxX() >= o.MinX() && o.MaxX() >= r.MinX() &&
		r.MaxY() >= o.MinY() && o.MaxY() >= r.MinY()
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r.X, r.Y, r.Width, r.Height)
}

// EdgeInsets describes padding on each side of a rectangle.
type EdgeInsets struct {
	Top, Left, Bottom, Right float64
}

// IndexPath is the stable (section, item) address of a data element.
type IndexPath struct {
	Section int
	Item    int
}

// IP is shorthand for IndexPath{section, item}.
func IP(section, item int) IndexPath {
	return IndexPath{Section: section, Item: item}
}

// Row is an alias for Item, for table-shaped data.
func (ip IndexPath) Row() int { return ip.Item }

func (ip IndexPath) String() string {
	return fmt.Sprintf("%d - %d", ip.Section, ip.Item)
}

// ContentPosition converts a frame in top-left content coordinates into the
// centre-anchored, y-up position hosts use to place an element inside a
// content node of the given size.
func ContentPosition(frame Rect, content Size) Vec3 {
	return Vec3{
		X: -(content.Width-frame.Width)*0.5 + frame.X,
		Y: (content.Height-frame.Height)*0.5 - frame.Y,
	}
}

// BoundingSize is size under scale. Negative factors mirror without
// shrinking the box.
func BoundingSize(size Size, scale Vec3) Size {
	return Size{Width: size.Width * math.Abs(scale.X), Height: size.Height * math.Abs(scale.Y)}
}

// FrameFromPosition is the inverse of ContentPosition: it recovers the
// top-left content frame of an element from its live position and size.
func FrameFromPosition(pos Vec3, size Size, content Size) Rect {
	return Rect{
		X:      (content.Width-size.Width)*0.5 + pos.X,
		Y:      (content.Height-size.Height)*0.5 - pos.Y,
		Width:  size.Width,
		Height: size.Height,
	}
}
