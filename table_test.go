package collectionview

import (
	"testing"
)

func TestTableLayout_Prepare(t *testing.T) {
	type tc struct {
		items   []int
		row     float64
		spacing float64
		top     float64
		bottom  float64
		header  float64
		footer  float64
		height  float64
	}

	tests := map[string]tc{
		"single section": {
			items:  []int{10},
			row:    100,
			height: 1000,
		},
		"spacing between rows only": {
			items:   []int{3},
			row:     50,
			spacing: 10,
			height:  170,
		},
		"insets apply per section": {
			items:  []int{2, 2},
			row:    10,
			top:    5,
			bottom: 7,
			height: 2*(5+20+7),
		},
		"headers and footers": {
			items:  []int{1, 2},
			row:    10,
			header: 4,
			footer: 6,
			height: (4 + 10 + 6) + (4 + 20 + 6),
		},
		"empty": {
			items:  []int{0},
			row:    10,
			height: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(320, 500, tt.items...)
			l := NewTableLayout().
				RowHeight(tt.row).
				Spacing(tt.spacing).
				Insets(tt.top, tt.bottom).
				HeaderHeight(tt.header).
				FooterHeight(tt.footer)
			if err := l.Prepare(ctx); err != nil {
				t.Fatalf("Prepare: %v", err)
			}

			if got := l.ContentSize(); got.Height != tt.height || got.Width != 320 {
				t.Errorf("expected content 320x%g, got %v", tt.height, got)
			}

			seen := make(map[ElementKey]bool)
			for _, a := range l.Attributes() {
				if seen[a.Key()] {
					t.Errorf("duplicate attributes for %v", a.Key())
				}
				seen[a.Key()] = true

				got := l.AttributeFor(a.Key(), ctx)
				if got == nil || got.Frame != a.Frame {
					t.Errorf("AttributeFor(%v) = %v, want frame %v", a.Key(), got, a.Frame)
				}
			}
		})
	}
}

func TestTableLayout_RowHeightFunc(t *testing.T) {
	ctx := newTestContext(100, 100, 4)
	l := NewTableLayout().RowHeightFunc(func(ip IndexPath) float64 {
		if ip.Row()%2 == 0 {
			return 120
		}
		return 200
	}).Spacing(10)
	if err := l.Prepare(ctx); err != nil {
		t.Fatal(err)
	}

	wantY := []float64{0, 130, 340, 470}
	for i, a := range l.Attributes() {
		if a.Frame.Y != wantY[i] {
			t.Errorf("row %d: expected y %g, got %g", i, wantY[i], a.Frame.Y)
		}
	}
	if h := l.ContentSize().Height; h != 670 {
		t.Errorf("expected height 670, got %g", h)
	}
}

func TestTableLayout_VisibleRowsAtTop(t *testing.T) {
	ctx := newTestContext(320, 500, 1000)
	l := NewTableLayout().RowHeight(100)
	if err := l.Prepare(ctx); err != nil {
		t.Fatal(err)
	}

	got := intersectingKeys(l.AttributesInRect(ctx.rect(), ctx), ctx.rect())
	// rows 0-4 are fully visible, row 5 touches the trailing edge
	if len(got) != 6 {
		t.Errorf("expected 6 visible rows, got %d", len(got))
	}
	for i := 0; i < 6; i++ {
		if !got[CellKey(IP(0, i))] {
			t.Errorf("expected row %d visible", i)
		}
	}
}

func TestTableLayout_MatchesLinearScan(t *testing.T) {
	heights := func(ip IndexPath) float64 { return float64(20 + (ip.Item*37)%90) }

	for name, l := range map[string]*TableLayout{
		"fixed":            NewTableLayout().RowHeight(44).Spacing(3),
		"variable":         NewTableLayout().RowHeightFunc(heights),
		"sections":         NewTableLayout().RowHeight(30).HeaderHeight(20).FooterHeight(10).Insets(5, 5),
		"small threshold":  NewTableLayout().RowHeight(30).ScanThreshold(0),
		"overscan":         NewTableLayout().RowHeightFunc(heights).ExtraVisible(3),
		"no binary search": NewTableLayout().RowHeight(30).ScanThreshold(1 << 30),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := newTestContext(300, 480, 150, 80, 300)
			if err := l.Prepare(ctx); err != nil {
				t.Fatal(err)
			}
			for y := -200.0; y < l.ContentSize().Height+200; y += 97 {
				ctx.offset = Point{0, y}
				rect := ctx.rect()
				got := intersectingKeys(l.AttributesInRect(rect, ctx), rect)
				want := intersectingKeys(ScanRect(l.Attributes(), rect), rect)
				if !sameKeys(got, want) {
					t.Fatalf("offset %g: optimized query returned %d keys, scan %d", y, len(got), len(want))
				}

				again := intersectingKeys(l.AttributesInRect(rect, ctx), rect)
				if !sameKeys(got, again) {
					t.Fatalf("offset %g: query not idempotent", y)
				}
			}
		})
	}
}

func TestTableLayout_NegativeExtraVisibleReturnsAll(t *testing.T) {
	ctx := newTestContext(300, 480, 300)
	l := NewTableLayout().RowHeight(30).ExtraVisible(-1)
	if err := l.Prepare(ctx); err != nil {
		t.Fatal(err)
	}
	ctx.offset = Point{0, 3000}
	if got, want := len(l.AttributesInRect(ctx.rect(), ctx)), len(l.Attributes()); got != want {
		t.Errorf("expected all %d attributes, got %d", want, got)
	}
}

func TestTableLayout_PinnedHeader(t *testing.T) {
	ctx := newTestContext(100, 200, 10, 10)
	l := NewTableLayout().RowHeight(50).HeaderHeight(20).PinHeaders(true)
	if err := l.Prepare(ctx); err != nil {
		t.Fatal(err)
	}

	caps := l.Capabilities()
	if !caps.ZOrder || !caps.ContinuousBounds {
		t.Fatalf("pinned table must request z-order and continuous bounds, got %+v", caps)
	}

	headerAt := func(offset float64, section int) *LayoutAttributes {
		ctx.offset = Point{0, offset}
		for _, a := range l.AttributesInRect(ctx.rect(), ctx) {
			if a.Key() == SupplementaryKey(IP(section, 0), KindHeader) {
				return a
			}
		}
		return nil
	}

	// section 0 spans [0, 520), section 1 header starts at 520
	tests := map[string]struct {
		offset float64
		wantY  float64
	}{
		"not scrolled":       {offset: 0, wantY: 0},
		"pinned to offset":   {offset: 150, wantY: 150},
		"pushed by next":     {offset: 510, wantY: 500},
		"next section start": {offset: 520, wantY: 500},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := headerAt(tt.offset, 0)
			if a == nil {
				t.Fatal("header missing from query")
			}
			if a.Frame.Y != tt.wantY {
				t.Errorf("expected header y %g, got %g", tt.wantY, a.Frame.Y)
			}
		})
	}

	stored := l.AttributeFor(SupplementaryKey(IP(0, 0), KindHeader), ctx)
	if stored.Frame.Y != 0 {
		t.Errorf("pinning must not change stored frame, got y %g", stored.Frame.Y)
	}
}

func TestTableLayout_PinnedFooter(t *testing.T) {
	ctx := newTestContext(100, 200, 10, 10)
	l := NewTableLayout().RowHeight(50).HeaderHeight(20).FooterHeight(20).PinFooters(true)
	if err := l.Prepare(ctx); err != nil {
		t.Fatal(err)
	}

	footer := func(offset float64) Rect {
		ctx.offset = Point{0, offset}
		for _, a := range l.AttributesInRect(ctx.rect(), ctx) {
			if a.Key() == SupplementaryKey(IP(0, 0), KindFooter) {
				return a.Frame
			}
		}
		t.Fatal("footer missing")
		return Rect{}
	}

	// section 0: header [0,20), rows [20,520), footer [520,540)
	if f := footer(0); f.Y != 180 {
		t.Errorf("expected footer pinned to bottom edge at 180, got %g", f.Y)
	}
	if f := footer(400); f.Y != 520 {
		t.Errorf("expected footer at its own frame 520, got %g", f.Y)
	}
}

func TestTableLayout_WarnsOnHorizontal(t *testing.T) {
	ctx := newTestContext(100, 100, 3)
	ctx.direction = Horizontal
	l := NewTableLayout()
	if err := l.Prepare(ctx); err != nil {
		t.Fatal(err)
	}
	if l.ScrollAxis() != Vertical {
		t.Error("table must stay vertical")
	}
	if len(l.Attributes()) != 3 {
		t.Errorf("expected 3 attributes, got %d", len(l.Attributes()))
	}
}

func BenchmarkTableLayout_AttributesInRect(b *testing.B) {
	ctx := newTestContext(320, 800, 100000)
	l := NewTableLayout().RowHeight(44)
	if err := l.Prepare(ctx); err != nil {
		b.Fatal(err)
	}
	ctx.offset = Point{0, 44 * 50000}
	rect := ctx.rect()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.AttributesInRect(rect, ctx)
	}
}
