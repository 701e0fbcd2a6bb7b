package collectionview

import "testing"

func column(heights ...float64) []*LayoutAttributes {
	var out []*LayoutAttributes
	y := 0.0
	for i, h := range heights {
		a := NewCellAttributes(IP(0, i))
		a.Frame = Rect{0, y, 10, h}
		out = append(out, a)
		y += h
	}
	return out
}

func TestBinarySearchRect(t *testing.T) {
	attrs := column(10, 10, 10, 10, 10, 10, 10, 10, 10, 10)

	tests := map[string]struct {
		rect  Rect
		extra int
		want  []int
		ok    bool
	}{
		"middle":        {rect: Rect{0, 35, 10, 10}, want: []int{3, 4}, ok: true},
		"edge touching": {rect: Rect{0, 40, 10, 10}, want: []int{3, 4, 5}, ok: true},
		"first":         {rect: Rect{0, -5, 10, 5}, want: []int{0}, ok: true},
		"last":          {rect: Rect{0, 95, 10, 50}, want: []int{9}, ok: true},
		"miss":          {rect: Rect{0, 200, 10, 10}, ok: false},
		"with extra":    {rect: Rect{0, 35, 10, 10}, extra: 2, want: []int{3, 4}, ok: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := BinarySearchRect(attrs, tt.rect, tt.extra)
			if ok != tt.ok {
				t.Fatalf("expected ok %v, got %v", tt.ok, ok)
			}
			items := make(map[int]bool)
			for _, a := range got {
				items[a.IndexPath().Item] = true
			}
			if len(items) != len(tt.want) {
				t.Errorf("expected items %v, got %v", tt.want, items)
			}
			for _, i := range tt.want {
				if !items[i] {
					t.Errorf("expected item %d in result", i)
				}
			}
		})
	}
}

func TestScanRect(t *testing.T) {
	attrs := column(50, 50, 50)
	if got := ScanRect(attrs, Rect{0, 60, 10, 10}); len(got) != 1 || got[0].IndexPath().Item != 1 {
		t.Errorf("expected only item 1, got %d attributes", len(got))
	}
	if got := FindAttributes(attrs, CellKey(IP(0, 2))); got != attrs[2] {
		t.Errorf("expected item 2, got %v", got)
	}
	if got := FindAttributes(attrs, SupplementaryKey(IP(0, 2), KindHeader)); got != nil {
		t.Errorf("expected no header, got %v", got)
	}
}
