package scroll

import "testing"

func TestCell_SetNotifiesListeners(t *testing.T) {
	c := NewCell(Vec2{X: 1})

	var gotOld, gotCur Vec2
	calls := 0
	sub := c.Subscribe(func(old, cur Vec2) {
		gotOld, gotCur = old, cur
		calls++
	})
	defer sub.Release()

	c.Set(Vec2{X: 2, Y: 3})

	if calls != 1 {
		t.Fatalf("Expected 1 notification, got %d", calls)
	}
	if gotOld != (Vec2{X: 1}) || gotCur != (Vec2{X: 2, Y: 3}) {
		t.Errorf("Expected old (1,0) cur (2,3), got %v %v", gotOld, gotCur)
	}
	if c.Get() != (Vec2{X: 2, Y: 3}) {
		t.Errorf("Expected stored value (2,3), got %v", c.Get())
	}
}

func TestCell_ReleaseStopsNotifications(t *testing.T) {
	c := NewCell(0)
	calls := 0
	sub := c.Subscribe(func(_, _ int) { calls++ })

	c.Set(1)
	sub.Release()
	sub.Release() // releasing twice is a no-op
	c.Set(2)

	if calls != 1 {
		t.Errorf("Expected 1 notification, got %d", calls)
	}
}

func TestCell_ReleaseDuringNotification(t *testing.T) {
	c := NewCell(0)

	var subB Subscription
	callsA, callsB := 0, 0
	subA := c.Subscribe(func(_, _ int) {
		callsA++
		subB.Release()
	})
	defer subA.Release()
	subB = c.Subscribe(func(_, _ int) { callsB++ })

	// The snapshot keeps the current notification intact; B still fires
	// this round and stops receiving afterwards.
	c.Set(1)
	c.Set(2)

	if callsA != 2 {
		t.Errorf("Expected A called twice, got %d", callsA)
	}
	if callsB != 1 {
		t.Errorf("Expected B called once, got %d", callsB)
	}
}

func TestCombineVec2_DerivedCellTracksInputs(t *testing.T) {
	a := NewCell(Vec2{X: 1, Y: 2})
	b := NewCell(Vec2{X: 10, Y: 20})

	sum, sub := AddVec2(a, b)
	defer sub.Release()

	if sum.Get() != (Vec2{X: 11, Y: 22}) {
		t.Errorf("Expected initial sum (11,22), got %v", sum.Get())
	}

	a.Set(Vec2{X: 5, Y: 5})
	if sum.Get() != (Vec2{X: 15, Y: 25}) {
		t.Errorf("Expected sum (15,25) after input change, got %v", sum.Get())
	}

	sub.Release()
	b.Set(Vec2{})
	if sum.Get() != (Vec2{X: 15, Y: 25}) {
		t.Errorf("Expected sum frozen after release, got %v", sum.Get())
	}
}

func TestCombineVec2_Chained(t *testing.T) {
	base := NewCell(Vec2{X: 2, Y: 3})
	scale := NewCell(Vec2{X: 10, Y: 10})
	pan := NewCell(Vec2{X: 1, Y: 1})

	scaled, sub1 := MulVec2(base, scale)
	offset, sub2 := AddVec2(scaled, pan)
	defer sub1.Release()
	defer sub2.Release()

	if offset.Get() != (Vec2{X: 21, Y: 31}) {
		t.Errorf("Expected (21,31), got %v", offset.Get())
	}

	// A change at the bottom of the chain propagates through both levels.
	scale.Set(Vec2{X: 1, Y: 1})
	if offset.Get() != (Vec2{X: 3, Y: 4}) {
		t.Errorf("Expected (3,4) after scale change, got %v", offset.Get())
	}
}

func TestSubVec2(t *testing.T) {
	a := NewCell(Vec2{X: 5, Y: 5})
	b := NewCell(Vec2{X: 2, Y: 1})
	diff, sub := SubVec2(a, b)
	defer sub.Release()

	if diff.Get() != (Vec2{X: 3, Y: 4}) {
		t.Errorf("Expected (3,4), got %v", diff.Get())
	}
}

func TestDivVec2_ZeroComponentPanics(t *testing.T) {
	a := NewCell(Vec2{X: 1, Y: 1})
	b := NewCell(Vec2{X: 1, Y: 1})
	_, sub := DivVec2(a, b)
	defer sub.Release()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on zero divisor component")
		}
	}()
	b.Set(Vec2{X: 1, Y: 0})
}

func TestCombineSubscriptions(t *testing.T) {
	c := NewCell(0)
	calls := 0
	subA := c.Subscribe(func(_, _ int) { calls++ })
	subB := c.Subscribe(func(_, _ int) { calls++ })

	all := CombineSubscriptions(subA, subB)
	all.Release()
	c.Set(1)

	if calls != 0 {
		t.Errorf("Expected no notifications after combined release, got %d", calls)
	}
}
