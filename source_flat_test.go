package scroll

import "testing"

func TestFlatSource_ScrollRecycles(t *testing.T) {
	v, _ := newTestViewport(t)
	created := 0
	src := newTestFlatSource("rows", &created)
	v.AttachSource(src)

	// One item height down: index 0 leaves, index 3 enters and must reuse
	// the record index 0 just gave up.
	v.ScrollTo(Vec2{Y: 100}, false)

	if src.VisibleRange() != (Range{Lo: 1, Hi: 4}) {
		t.Errorf("Expected visible range [1,4), got %v", src.VisibleRange())
	}
	if created != 3 {
		t.Errorf("Expected no new creations, got %d total", created)
	}
	if src.QueuedLen() != 0 {
		t.Errorf("Expected empty queue after reuse, got %d", src.QueuedLen())
	}
	if src.VisibleItem(0) != nil {
		t.Error("Expected index 0 to no longer be visible")
	}
	if it := src.VisibleItem(3); it == nil || !it.Visible {
		t.Error("Expected index 3 to be visible")
	}
}

func TestFlatSource_RecycledRecordIdentity(t *testing.T) {
	v, _ := newTestViewport(t)
	src := newTestFlatSource("rows", nil)
	v.AttachSource(src)

	leaving := src.VisibleItem(0)
	v.ScrollTo(Vec2{Y: 100}, false)

	if entering := src.VisibleItem(3); entering != leaving {
		t.Error("Expected index 3 to reuse the record of index 0")
	}
	if leaving.Index != 3 {
		t.Errorf("Expected recycled record rebound to index 3, got %d", leaving.Index)
	}
	layout := leaving.Layout
	if layout.Offset.Y != 300 || layout.Size.Y != 100 {
		t.Errorf("Expected layout at Y=300 height 100, got %+v", layout)
	}
}

func TestFlatSource_BoundedCount(t *testing.T) {
	v, _ := newTestViewport(t)
	src := NewFlatSource("rows", FlatConfig{
		ItemSize: Vec2{X: 300, Y: 100},
		Count:    5,
	})
	v.AttachSource(src)

	// Scrolling past the end clamps to the bound, then runs out entirely.
	v.ScrollTo(Vec2{Y: 350}, false)
	if src.VisibleRange() != (Range{Lo: 3, Hi: 5}) {
		t.Errorf("Expected clamped range [3,5), got %v", src.VisibleRange())
	}

	v.ScrollTo(Vec2{Y: 1000}, false)
	if !src.VisibleRange().IsEmpty() {
		t.Errorf("Expected empty range past the end, got %v", src.VisibleRange())
	}
	if src.VisibleLen() != 0 {
		t.Errorf("Expected no visible items, got %d", src.VisibleLen())
	}

	// Negative indices are clamped too.
	v.ScrollTo(Vec2{Y: -150}, false)
	if src.VisibleRange() != (Range{Lo: 0, Hi: 2}) {
		t.Errorf("Expected clamped range [0,2), got %v", src.VisibleRange())
	}
}

func TestFlatSource_Horizontal(t *testing.T) {
	v, _ := newTestViewport(t)
	src := NewFlatSource("cols", FlatConfig{
		ItemSize:    Vec2{X: 100, Y: 300},
		Orientation: Horizontal,
		Count:       -1,
	})
	v.AttachSource(src)

	v.ScrollTo(Vec2{X: 150}, false)
	if src.VisibleRange() != (Range{Lo: 1, Hi: 5}) {
		t.Errorf("Expected visible range [1,5), got %v", src.VisibleRange())
	}
	if l := src.ItemLayout(2); l.Offset != (Vec2{X: 200}) {
		t.Errorf("Expected layout offset (200,0), got %v", l.Offset)
	}
}

func TestFlatSource_ReuseClassOptOut(t *testing.T) {
	v, _ := newTestViewport(t)
	created := 0
	src := NewFlatSource("rows", FlatConfig{
		ItemSize: Vec2{X: 300, Y: 100},
		Count:    -1,
		ReuseClass: func(int) string {
			return "" // every record is destroyed instead of queued
		},
		DidCreate: func(n int) { created += n },
	})
	v.AttachSource(src)

	v.ScrollTo(Vec2{Y: 300}, false)

	if src.QueuedLen() != 0 {
		t.Errorf("Expected nothing queued when opted out, got %d", src.QueuedLen())
	}
	if created != 6 {
		t.Errorf("Expected 6 creations without recycling, got %d", created)
	}
}

func TestFlatSource_ReuseClassesAreSeparate(t *testing.T) {
	v, _ := newTestViewport(t)
	src := NewFlatSource("rows", FlatConfig{
		ItemSize: Vec2{X: 300, Y: 100},
		Count:    -1,
		ReuseClass: func(i int) string {
			if i%2 == 0 {
				return "even"
			}
			return "odd"
		},
	})
	v.AttachSource(src)

	// Indices 0..2 leave two "even" records and one "odd" behind. The
	// incoming 3..5 must draw from the matching class only.
	v.ScrollTo(Vec2{Y: 300}, false)

	for i := 3; i < 6; i++ {
		it := src.VisibleItem(i)
		if it == nil {
			t.Fatalf("Expected index %d visible", i)
		}
		want := "odd"
		if i%2 == 0 {
			want = "even"
		}
		if it.ReuseClass != want {
			t.Errorf("Expected index %d in class %q, got %q", i, want, it.ReuseClass)
		}
	}
}

func TestFlatSource_EndUpdateWithoutBeginPanics(t *testing.T) {
	v, _ := newTestViewport(t)
	src := newTestFlatSource("rows", nil)
	v.AttachSource(src)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unbalanced EndUpdate")
		}
	}()
	src.EndUpdate()
}

func TestFlatSource_UnconfiguredUsePanics(t *testing.T) {
	src := newTestFlatSource("rows", nil)
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when used without a viewport")
		}
	}()
	src.BeginUpdate()
	src.EndUpdate()
}

func TestFlatSource_ManualQueueDequeue(t *testing.T) {
	v, _ := newTestViewport(t)
	src := newTestFlatSource("rows", nil)
	v.AttachSource(src)

	if !src.QueueItem(1) {
		t.Fatal("Expected index 1 to be queueable")
	}
	if src.QueueItem(1) {
		t.Error("Expected second queue of the same index to fail")
	}
	if src.VisibleLen() != 2 || src.QueuedLen() != 1 {
		t.Errorf("Expected 2 visible and 1 queued, got %d/%d", src.VisibleLen(), src.QueuedLen())
	}

	it := src.DequeueItem(10)
	if it == nil {
		t.Fatal("Expected a recycled record for index 10")
	}
	if it.Index != 10 || !it.Visible {
		t.Errorf("Expected record rebound to index 10 and visible, got %+v", it)
	}

	// Queue drained; the next dequeue misses and the caller must create.
	if src.DequeueItem(11) != nil {
		t.Error("Expected dequeue miss on an empty queue")
	}
	if created := src.CreateItem(11); created == nil || created.Index != 11 {
		t.Error("Expected a brand-new record for index 11")
	}
}

func TestFlatSource_WillHideRuns(t *testing.T) {
	v, _ := newTestViewport(t)
	var hidden []int
	src := NewFlatSource("rows", FlatConfig{
		ItemSize: Vec2{X: 300, Y: 100},
		Count:    -1,
		WillHide: func(it *Item[int]) { hidden = append(hidden, it.Index) },
	})
	v.AttachSource(src)

	v.ScrollTo(Vec2{Y: 100}, false)
	if len(hidden) != 1 || hidden[0] != 0 {
		t.Errorf("Expected will-hide for index 0, got %v", hidden)
	}

	v.DetachSource("rows")
	if len(hidden) != 4 {
		t.Errorf("Expected will-hide for every visible item on detach, got %v", hidden)
	}
}

func TestFlatSource_MakeViewPanicContained(t *testing.T) {
	v, _ := newTestViewport(t)
	src := NewFlatSource("rows", FlatConfig{
		ItemSize: Vec2{X: 300, Y: 100},
		Count:    -1,
		MakeView: func(it *Item[int]) any {
			if it.Index == 1 {
				panic("boom")
			}
			return it.Index
		},
	})

	// The failing item still materializes, just without a view.
	v.AttachSource(src)

	if src.VisibleLen() != 3 {
		t.Fatalf("Expected 3 visible items despite the panic, got %d", src.VisibleLen())
	}
	if src.VisibleItem(1).View != nil {
		t.Error("Expected nil view for the failed item")
	}
	if src.VisibleItem(2).View != 2 {
		t.Errorf("Expected view 2 for index 2, got %v", src.VisibleItem(2).View)
	}
}

func TestNewFlatSource_InvalidConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero item size on the scroll axis")
		}
	}()
	NewFlatSource("rows", FlatConfig{ItemSize: Vec2{X: 300}})
}
