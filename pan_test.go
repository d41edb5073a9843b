package scroll

import "testing"

// drag feeds a straight-line gesture of n steps into the viewport, moving by
// delta every 16ms.
func drag(v *Viewport, start Vec2, delta Vec2, n int) GestureEvent {
	e := GestureEvent{Pos: start, Time: 1}
	v.DragStart(e)
	for i := 0; i < n; i++ {
		e.Pos = e.Pos.Add(delta)
		e.Time += 0.016
		v.DragMove(e)
	}
	return e
}

func TestPan_DragMovesContent(t *testing.T) {
	v, _ := newTestViewport(t)
	src := newTestFlatSource("rows", nil)
	v.AttachSource(src)

	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{Y: -40}, 3)

	if v.Offset() != (Vec2{Y: -120}) {
		t.Errorf("Expected offset (0,-120) mid-drag, got %v", v.Offset())
	}
	if src.VisibleRange() != (Range{Lo: 1, Hi: 5}) {
		t.Errorf("Expected visible range [1,5) mid-drag, got %v", src.VisibleRange())
	}

	v.DragEnd(e)
}

func TestPan_SlowReleaseRestsInPlace(t *testing.T) {
	v, _ := newTestViewport(t)

	// A barely-moving finger releases below the fling threshold.
	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{Y: -0.001}, 2)
	before := v.Offset()
	v.DragEnd(e)

	if v.Animating() {
		t.Error("Expected no animation after a slow release")
	}
	if v.Offset() != before {
		t.Errorf("Expected offset unchanged by the release, got %v", v.Offset())
	}
}

func TestPan_FoldPreservesOffset(t *testing.T) {
	v, _ := newTestViewport(t)
	v.SetScale(Vec2{X: 2, Y: 2})

	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{Y: -0.001}, 2)
	before := v.Offset()
	v.DragEnd(e)

	// The pan displacement moved into the base offset; the composed offset
	// must not jump, even at non-unit scale.
	after := v.Offset()
	if !almostEqual(after.X, before.X) || !almostEqual(after.Y, before.Y) {
		t.Errorf("Expected offset %v preserved across the fold, got %v", before, after)
	}
}

func TestPan_FlingDecaysBeyondRelease(t *testing.T) {
	v, _ := newTestViewport(t)
	src := newTestFlatSource("rows", nil)
	v.AttachSource(src)

	e := drag(v, Vec2{X: 150, Y: 250}, Vec2{Y: -10}, 5)
	atRelease := v.Offset()
	v.DragEnd(e)

	if !v.Animating() {
		t.Fatal("Expected a decay animation after a fast release")
	}
	steps := 0
	for v.Step(1.0/60) && steps < 10000 {
		steps++
	}

	// Inertia carries the content further in the gesture direction.
	if v.Offset().Y >= atRelease.Y {
		t.Errorf("Expected decay to continue past %v, got %v", atRelease.Y, v.Offset().Y)
	}
	if v.Animating() {
		t.Error("Expected animation finished")
	}
}

func TestPan_SnapHookRedirectsSettle(t *testing.T) {
	v, _ := newTestViewport(t)

	var proposed Vec2
	target := Vec2{Y: 400}
	v.SetPanHooks(PanHooks{
		Snap: func(p, _ Vec2) (Vec2, bool) {
			proposed = p
			return target, true
		},
	})

	e := drag(v, Vec2{X: 150, Y: 250}, Vec2{Y: -10}, 5)
	v.DragEnd(e)

	if !v.Animating() {
		t.Fatal("Expected a snap animation")
	}
	for v.Step(1.0 / 60) {
	}

	// The snap target ends up at the anchor.
	if v.Offset() != target.Neg() {
		t.Errorf("Expected offset %v at the snap target, got %v", target.Neg(), v.Offset())
	}
	// The hook saw the projected decay rest position, which lies past the
	// 50px the finger travelled.
	if proposed.Y <= 50 {
		t.Errorf("Expected proposed rest past the drag distance, got %v", proposed.Y)
	}
}

func TestPan_SnapHookOnSlowRelease(t *testing.T) {
	v, _ := newTestViewport(t)
	target := Vec2{X: 100}
	v.SetPanHooks(PanHooks{
		Snap: func(_, _ Vec2) (Vec2, bool) { return target, true },
	})

	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{X: -0.001}, 2)
	v.DragEnd(e)

	if !v.Animating() {
		t.Fatal("Expected a snap animation even without a fling")
	}
	for v.Step(1.0 / 60) {
	}
	if v.Offset() != target.Neg() {
		t.Errorf("Expected offset %v, got %v", target.Neg(), v.Offset())
	}
}

func TestPan_PreventDefaultRevertsPan(t *testing.T) {
	v, _ := newTestViewport(t)

	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{Y: -20}, 3)
	if v.Offset() == (Vec2{}) {
		t.Fatal("Expected the drag to have moved the content")
	}

	v.PreventDefault()
	if v.Offset() != (Vec2{}) {
		t.Errorf("Expected offset reverted to zero, got %v", v.Offset())
	}

	// Further moves are ignored and the release starts no animation.
	e.Pos = e.Pos.Add(Vec2{Y: -50})
	e.Time += 0.016
	v.DragMove(e)
	if v.Offset() != (Vec2{}) {
		t.Errorf("Expected moves ignored after prevent, got %v", v.Offset())
	}

	v.DragEnd(e)
	if v.Animating() {
		t.Error("Expected no animation after a prevented gesture")
	}
}

func TestPan_NewDragInterruptsSettle(t *testing.T) {
	v, _ := newTestViewport(t)

	e := drag(v, Vec2{X: 150, Y: 250}, Vec2{Y: -10}, 5)
	v.DragEnd(e)
	if !v.Animating() {
		t.Fatal("Expected a decay animation")
	}

	v.DragStart(GestureEvent{Pos: Vec2{X: 150, Y: 150}, Time: 2})
	if v.Animating() {
		t.Error("Expected the new drag to stop the animation")
	}
}

func TestPan_LongPressFiresOnce(t *testing.T) {
	v, _ := newTestViewport(t)
	fired := 0
	var firedAt Vec2
	v.SetPanHooks(PanHooks{
		LongPress: func(pos Vec2) {
			fired++
			firedAt = pos
		},
	})

	v.DragStart(GestureEvent{Pos: Vec2{X: 120, Y: 80}, Time: 1})
	v.Step(0.3)
	if fired != 0 {
		t.Fatal("Expected no long press before the tuned duration")
	}
	v.Step(0.3)
	v.Step(0.3)

	if fired != 1 {
		t.Errorf("Expected exactly one long press, got %d", fired)
	}
	if firedAt != (Vec2{X: 120, Y: 80}) {
		t.Errorf("Expected long press at the press position, got %v", firedAt)
	}
	v.DragEnd(GestureEvent{Pos: Vec2{X: 120, Y: 80}, Time: 2})
}

func TestPan_LongPressCancelledBySlop(t *testing.T) {
	v, _ := newTestViewport(t)
	fired := 0
	v.SetPanHooks(PanHooks{
		LongPress: func(Vec2) { fired++ },
	})

	// Travel beyond the slop radius before the deadline.
	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{Y: -20}, 2)
	v.Step(1.0)

	if fired != 0 {
		t.Errorf("Expected no long press after moving beyond the slop, got %d", fired)
	}
	v.DragEnd(e)
}

func TestPan_InteractionChangedTransitions(t *testing.T) {
	v, _ := newTestViewport(t)
	var states []bool
	v.SetPanHooks(PanHooks{
		InteractionChanged: func(active bool) { states = append(states, active) },
	})

	e := drag(v, Vec2{X: 150, Y: 250}, Vec2{Y: -10}, 5)
	v.DragEnd(e)
	for v.Step(1.0 / 60) {
	}

	// One activation at drag start, one deactivation when the decay rests.
	want := []bool{true, false}
	if len(states) != 2 || states[0] != want[0] || states[1] != want[1] {
		t.Errorf("Expected transitions %v, got %v", want, states)
	}
}

func TestPan_LockAncestorsBracketsGesture(t *testing.T) {
	v, _ := newTestViewport(t)
	var locks []bool
	v.SetPanHooks(PanHooks{
		LockAncestors: func(locked bool) { locks = append(locks, locked) },
	})

	e := drag(v, Vec2{X: 150, Y: 150}, Vec2{Y: -0.001}, 2)
	v.DragEnd(e)

	if len(locks) != 2 || !locks[0] || locks[1] {
		t.Errorf("Expected lock then unlock, got %v", locks)
	}
}
