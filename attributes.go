package collectionview

// Category distinguishes primary cells from supplementary decorations.
type Category uint8

const (
	CategoryCell Category = iota
	CategorySupplementary
)

func (c Category) String() string {
	switch c {
	case CategoryCell:
		return "cell"
	case CategorySupplementary:
		return "supplementary"
	}
	return "unknown"
}

// LayoutAttributes is the computed geometry, transform and ordering of one
// logical element for one layout pass.
//
// Attributes are created by Layout.Prepare and are not mutated afterwards.
// Layouts that adjust geometry per query (pinned headers) hand out copies.
type LayoutAttributes struct {
	indexPath IndexPath
	category  Category
	kind      string

	// Frame is the element's position and size in content coordinates.
	Frame Rect

	// ZIndex orders siblings when the layout reports ZOrder capability.
	ZIndex int

	// Optional overrides. Nil leaves the element untouched.
	Opacity  *float64
	Scale    *Vec3
	Offset   *Vec3
	Rotation *Vec3
}

// NewCellAttributes creates attributes for a cell at ip.
func NewCellAttributes(ip IndexPath) *LayoutAttributes {
	return &LayoutAttributes{indexPath: ip, category: CategoryCell}
}

// NewSupplementaryAttributes creates attributes for a supplementary element of
// the given kind at ip. The kind is meaningful only to the producing layout.
func NewSupplementaryAttributes(ip IndexPath, kind string) *LayoutAttributes {
	return &LayoutAttributes{indexPath: ip, category: CategorySupplementary, kind: kind}
}

func (a *LayoutAttributes) IndexPath() IndexPath { return a.indexPath }
func (a *LayoutAttributes) Category() Category   { return a.category }

// Kind returns the supplementary kind, empty for cells.
func (a *LayoutAttributes) Kind() string { return a.kind }

// Clone returns a shallow copy whose frame may be adjusted independently.
func (a *LayoutAttributes) Clone() *LayoutAttributes {
	c := *a
	return &c
}

// Key returns the identity of the element these attributes describe.
func (a *LayoutAttributes) Key() ElementKey {
	return ElementKey{IndexPath: a.indexPath, Category: a.category, Kind: a.kind}
}

// ElementKey is the (indexPath, category, kind) tuple that is unique within
// one layout pass.
type ElementKey struct {
	IndexPath IndexPath
	Category  Category
	Kind      string
}

// CellKey returns the key of the cell at ip.
func CellKey(ip IndexPath) ElementKey {
	return ElementKey{IndexPath: ip, Category: CategoryCell}
}

// SupplementaryKey returns the key of the supplementary element of kind at ip.
func SupplementaryKey(ip IndexPath, kind string) ElementKey {
	return ElementKey{IndexPath: ip, Category: CategorySupplementary, Kind: kind}
}

// Float returns a pointer to v, for the optional attribute overrides.
func Float(v float64) *float64 { return &v }
