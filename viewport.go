package scroll

// RenderHost is the surface a viewport draws into. The viewport never renders
// on its own; it tells the host when the materialized item set or the
// transform changed, and the host schedules a frame.
type RenderHost interface {
	SetNeedsRender()
}

// Viewport composes the scroll offset from reactive cells, owns the
// content/container transform, and coordinates visibility updates across its
// attached layout sources.
//
// The offset is a derived value:
//
//	offset = base*scale + pan
//
// base is the settled scroll position in content units (animations drive it),
// scale carries zoom and axis flips, and pan accumulates the in-flight finger
// displacement in view pixels. Any write to the three inputs recomputes the
// composed offset, which in turn moves the transform and triggers a
// visibility update on every source.
//
// A Viewport is single-threaded: all methods must be called from the host
// frame loop.
type Viewport struct {
	host      RenderHost
	tuning    Tuning
	transform Transform

	sources map[string]Source
	order   []string
	depth   int

	base      *Cell[Vec2] // content units
	scaleCell *Cell[Vec2]
	panOffset *Cell[Vec2] // view pixels
	offset    *Cell[Vec2] // derived, view pixels
	subs      Subscription

	pan       panController
	animation Animation
	released  bool
}

// New creates a viewport drawing into host. The tuning decay rate must be in
// (0, 1); start from DefaultTuning or LoadTuning.
func New(host RenderHost, tuning Tuning) *Viewport {
	if host == nil {
		fatalf("viewport requires a render host")
	}
	if tuning.DecayRate <= 0 || tuning.DecayRate >= 1 {
		fatalf("tuning decay rate must be in (0, 1), got %v", tuning.DecayRate)
	}

	v := &Viewport{
		host:      host,
		tuning:    tuning,
		transform: NewTransform(),
		sources:   make(map[string]Source),
		base:      NewCell(Vec2{}),
		scaleCell: NewCell(Vec2{X: 1, Y: 1}),
		panOffset: NewCell(Vec2{}),
	}
	v.pan.vp = v

	scaled, subScaled := MulVec2(v.base, v.scaleCell)
	offset, subOffset := AddVec2(scaled, v.panOffset)
	v.offset = offset

	// Every recomputation of the composed offset moves the transform inside
	// an update bracket, so a burst of input writes commits as one diff.
	subApply := offset.Subscribe(func(old, cur Vec2) {
		if old == cur {
			return
		}
		v.Update(func() {
			v.transform.Offset = cur
		})
	})
	v.subs = CombineSubscriptions(subScaled, subOffset, subApply)
	return v
}

// Release tears the viewport down: the running animation stops, every source
// is detached, and the derived cells are disconnected. The viewport must not
// be used afterwards.
func (v *Viewport) Release() {
	if v.released {
		return
	}
	v.released = true
	v.setAnimation(nil)
	for _, name := range v.order {
		v.sources[name].Unconfigure()
	}
	v.sources = make(map[string]Source)
	v.order = nil
	v.subs.Release()
}

// Transform returns the viewport's transform for reading and conversions.
// Mutate it only through the viewport's setters so sources stay in sync.
func (v *Viewport) Transform() *Transform {
	return &v.transform
}

// Offset returns the composed scroll offset in view pixels.
func (v *Viewport) Offset() Vec2 { return v.offset.Get() }

// Scale returns the current scale, including axis-flip signs.
func (v *Viewport) Scale() Vec2 { return v.scaleCell.Get() }

// Animating reports whether an inertial or timed animation is running.
func (v *Viewport) Animating() bool { return v.animation != nil }

// AttachSource configures and registers a layout source. The source's name
// must be unique within the viewport; a duplicate stops the program. The
// source materializes its visible items immediately.
func (v *Viewport) AttachSource(src Source) {
	name := src.Name()
	if _, ok := v.sources[name]; ok {
		fatalf("source %q is already attached", name)
	}
	src.Configure(v)
	v.sources[name] = src
	v.order = append(v.order, name)

	if v.depth > 0 {
		// Joins the open transaction; commits with everyone else.
		src.BeginUpdate()
		return
	}
	v.Update(nil)
}

// DetachSource unconfigures and removes a source by name. Unknown names stop
// the program.
func (v *Viewport) DetachSource(name string) {
	src, ok := v.sources[name]
	if !ok {
		fatalf("source %q is not attached", name)
	}
	src.Unconfigure()
	delete(v.sources, name)
	for i, n := range v.order {
		if n == name {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// Source returns an attached source by name, or nil.
func (v *Viewport) Source(name string) Source { return v.sources[name] }

// Update brackets fn in a visibility transaction across all attached
// sources. Brackets nest; the diff is computed and committed once, when the
// outermost bracket closes. Update(nil) forces a recomputation without
// mutating anything.
func (v *Viewport) Update(fn func()) {
	v.beginUpdate()
	if fn != nil {
		fn()
	}
	v.endUpdate()
}

func (v *Viewport) beginUpdate() {
	v.depth++
	if v.depth > 1 {
		return
	}
	for _, name := range v.order {
		v.sources[name].BeginUpdate()
	}
}

func (v *Viewport) endUpdate() {
	if v.depth == 0 {
		fatalf("viewport EndUpdate without matching BeginUpdate")
	}
	v.depth--
	if v.depth > 0 {
		return
	}
	for _, name := range v.order {
		v.sources[name].EndUpdate()
	}
}

// SetScale changes the zoom. Zero components are a configuration defect and
// stop the program. A sign flip on either axis reverses that axis's
// coordinate ordering, which invalidates incremental diffing, so every
// source hides its items and re-materializes inside the same transaction.
func (v *Viewport) SetScale(scale Vec2) {
	if scale.X == 0 || scale.Y == 0 {
		fatalf("scale components must be non-zero, got %+v", scale)
	}
	old := v.scaleCell.Get()
	flip := old.X*scale.X < 0 || old.Y*scale.Y < 0

	v.Update(func() {
		if flip {
			for _, name := range v.order {
				v.sources[name].reload()
			}
		}
		v.transform.Scale = scale
		v.scaleCell.Set(scale)
	})
}

// SetAnchor sets the container-space fraction the content origin is placed
// at when the offset is zero (e.g. {0.5, 0.5} centers it).
func (v *Viewport) SetAnchor(anchor Vec2) {
	v.Update(func() { v.transform.Anchor = anchor })
}

// SetInsets shrinks the visible region by the given edge paddings.
func (v *Viewport) SetInsets(insets Insets) {
	v.Update(func() { v.transform.Insets = insets })
}

// SetContainerSize updates the container dimensions in view pixels. Call on
// every host resize.
func (v *Viewport) SetContainerSize(size Vec2) {
	v.Update(func() { v.transform.ContainerSize = size })
}

// SetSticky pins content to a container edge per axis, overriding the scroll
// offset on that axis.
func (v *Viewport) SetSticky(x, y StickyEdge) {
	v.Update(func() {
		v.transform.StickyX = x
		v.transform.StickyY = y
	})
}

// ScrollTo places the content point p at the anchor, immediately or with a
// timed animation. Any in-flight animation is interrupted.
func (v *Viewport) ScrollTo(p Vec2, animated bool) {
	v.scrollBase(p.Neg(), animated)
}

// ScrollBy shifts the settled position by a content-space delta, immediately
// or with a timed animation. Used for wheel and keyboard scrolling.
func (v *Viewport) ScrollBy(delta Vec2, animated bool) {
	v.scrollBase(v.base.Get().Add(delta), animated)
}

// ScrollToRange centers the midpoint of the content rectangle [min, max) in
// the inset container area. min must be strictly below max on both axes.
func (v *Viewport) ScrollToRange(min, max Vec2, animated bool) {
	if min.X >= max.X || min.Y >= max.Y {
		fatalf("scroll range min %+v must be below max %+v", min, max)
	}
	mid := min.Add(max).Mul(0.5)
	t := &v.transform
	center := Vec2{
		X: t.Insets.Left + (t.ContainerSize.X-t.Insets.Left-t.Insets.Right)/2,
		Y: t.Insets.Top + (t.ContainerSize.Y-t.Insets.Top-t.Insets.Bottom)/2,
	}
	scale := v.scaleCell.Get()
	target := center.Sub(t.origin()).Div2(scale).Sub(mid)
	v.scrollBase(target, animated)
}

func (v *Viewport) scrollBase(target Vec2, animated bool) {
	v.setAnimation(nil)
	if animated && v.tuning.SnapDuration > 0 {
		v.Update(func() { v.panOffset.Set(Vec2{}) })
		v.setAnimation(NewTimedAnimation(v.base, target, v.tuning.SnapDuration, nil, nil))
		return
	}
	v.Update(func() {
		v.panOffset.Set(Vec2{})
		v.base.Set(target)
	})
}

// SetPanHooks installs the gesture customization hooks.
func (v *Viewport) SetPanHooks(hooks PanHooks) {
	v.pan.hooks = hooks
}

// DragStart begins a pan gesture, interrupting any running animation.
func (v *Viewport) DragStart(e GestureEvent) { v.pan.dragStart(e) }

// DragMove feeds a pointer sample into the active gesture.
func (v *Viewport) DragMove(e GestureEvent) { v.pan.dragMove(e) }

// DragEnd releases the gesture. Depending on release speed and the snap
// hook, the content decays, animates to a snap target, or rests in place.
func (v *Viewport) DragEnd(e GestureEvent) { v.pan.dragEnd(e) }

// PreventDefault cancels scrolling for the remainder of the current gesture;
// the accumulated pan snaps back.
func (v *Viewport) PreventDefault() { v.pan.preventDefault() }

// Step advances animations and gesture timers by dt seconds. Call once per
// frame; returns true while an animation is still running and the host
// should keep scheduling frames.
func (v *Viewport) Step(dt float32) bool {
	v.pan.step(dt)
	if v.animation == nil {
		return false
	}
	if !v.animation.Step(dt) {
		v.animation = nil
		return false
	}
	return true
}

// setAnimation replaces the running animation, stopping the previous one.
// The interrupted animation's completion callback fires with finished=false.
func (v *Viewport) setAnimation(a Animation) {
	if prev := v.animation; prev != nil {
		v.animation = nil
		prev.Stop()
	}
	v.animation = a
}

// ClearQueues discards every source's recycling queues. Call under memory
// pressure; visible items are unaffected.
func (v *Viewport) ClearQueues() {
	for _, name := range v.order {
		v.sources[name].ClearQueue()
	}
}

// RenderPass invokes the render callbacks of every attached source in
// attachment order.
func (v *Viewport) RenderPass() {
	for _, name := range v.order {
		v.sources[name].renderPass()
	}
}

func (v *Viewport) setNeedsRender() {
	if v.host != nil {
		v.host.SetNeedsRender()
	}
}
