package scroll

// GestureEvent is one pointer sample, in view pixels, with a monotonic
// timestamp in seconds (e.g. glfw.GetTime).
type GestureEvent struct {
	Pos  Vec2
	Time float64
}

// PanHooks customize the pan interaction. All hooks are optional.
type PanHooks struct {
	// Snap proposes a rest location after a drag ends. proposed is the
	// content-space point that would sit at the anchor once inertia runs
	// out (or the current point, for a slow release); velocity is in
	// content units per millisecond. Returning a target with ok=true
	// replaces the decay with a timed animation to that point.
	Snap func(proposed, velocity Vec2) (target Vec2, ok bool)

	// LongPress fires once per gesture when the pointer has been held for
	// the tuned duration without travelling beyond the slop radius. pos is
	// the latest pointer position in view pixels.
	LongPress func(pos Vec2)

	// LockAncestors is told when this viewport claims the gesture, so
	// enclosing scrollable surfaces can stop reacting to it.
	LockAncestors func(locked bool)

	// InteractionChanged fires on transitions between rest and any form of
	// user-driven motion (dragging or settling).
	InteractionChanged func(active bool)
}

type panState int

const (
	panIdle panState = iota
	panActive
	panSettling
)

// Weight of the newest sample in the velocity smoothing filter.
const velocitySmoothing = 0.8

// panController tracks one pan gesture at a time. During a drag the finger
// displacement accumulates in the viewport's pan cell (view pixels); on
// release it is folded into the base offset and inertia takes over.
type panController struct {
	vp    *Viewport
	hooks PanHooks
	state panState

	startPos  Vec2
	lastPos   Vec2
	lastTime  float64
	velocity  Vec2 // view px per millisecond
	prevented bool

	pressElapsed float32
	pressArmed   bool
}

func (p *panController) setState(next panState) {
	prev := p.state
	p.state = next
	if p.hooks.InteractionChanged == nil {
		return
	}
	wasActive := prev != panIdle
	isActive := next != panIdle
	if wasActive != isActive {
		p.hooks.InteractionChanged(isActive)
	}
}

func (p *panController) dragStart(e GestureEvent) {
	p.vp.setAnimation(nil)

	p.setState(panActive)
	p.startPos = e.Pos
	p.lastPos = e.Pos
	p.lastTime = e.Time
	p.velocity = Vec2{}
	p.prevented = false
	p.pressElapsed = 0
	p.pressArmed = p.hooks.LongPress != nil

	if p.hooks.LockAncestors != nil {
		p.hooks.LockAncestors(true)
	}
	logger.Debug("drag started", "pos", e.Pos)
}

func (p *panController) dragMove(e GestureEvent) {
	if p.state != panActive {
		return
	}
	delta := e.Pos.Sub(p.lastPos)
	dtMs := float32(e.Time-p.lastTime) * 1000
	p.lastPos = e.Pos
	p.lastTime = e.Time

	if p.pressArmed && e.Pos.Sub(p.startPos).Len() > p.vp.tuning.LongPressSlop {
		p.pressArmed = false
	}
	if p.prevented {
		return
	}

	p.vp.Update(func() {
		p.vp.panOffset.Set(p.vp.panOffset.Get().Add(delta))
	})

	if dtMs > 0 {
		inst := delta.Mul(1 / dtMs)
		p.velocity = inst.Mul(velocitySmoothing).Add(p.velocity.Mul(1 - velocitySmoothing))
	}
}

func (p *panController) dragEnd(e GestureEvent) {
	if p.state != panActive {
		return
	}
	p.pressArmed = false
	if p.hooks.LockAncestors != nil {
		p.hooks.LockAncestors(false)
	}

	p.foldIntoBase()

	if p.prevented {
		p.setState(panIdle)
		return
	}

	tuning := p.vp.tuning
	scale := p.vp.scaleCell.Get()

	if p.velocity.Len() < tuning.MinFlingVelocity {
		// Too slow to fling; give the snap hook one chance to pull the
		// content into place, otherwise rest where released.
		if target, ok := p.snapTarget(p.vp.base.Get().Neg(), Vec2{}); ok {
			p.settleTo(target)
			return
		}
		p.setState(panIdle)
		logger.Debug("drag ended at rest", "pos", e.Pos)
		return
	}

	contentVel := p.velocity.Div2(scale)
	restBase := DecayTarget(p.vp.base.Get(), contentVel, tuning.DecayRate)
	if target, ok := p.snapTarget(restBase.Neg(), contentVel); ok {
		p.settleTo(target)
		return
	}

	p.setState(panSettling)
	p.vp.setAnimation(NewDecayAnimation(
		p.vp.base, contentVel, tuning.DecayRate, tuning.MinRestingVelocity,
		p.animationDone))
	logger.Debug("drag flung", "velocity", p.velocity)
}

// preventDefault cancels scrolling for the remainder of the current gesture.
// The pan accumulated so far snaps back and further moves are ignored, while
// long-press tracking continues.
func (p *panController) preventDefault() {
	if p.state != panActive || p.prevented {
		return
	}
	p.prevented = true
	p.velocity = Vec2{}
	p.vp.Update(func() {
		p.vp.panOffset.Set(Vec2{})
	})
}

// step advances the long-press deadline. Driven by the host frame loop so
// the whole interaction stays on one thread.
func (p *panController) step(dt float32) {
	if p.state != panActive || !p.pressArmed {
		return
	}
	p.pressElapsed += dt
	if p.pressElapsed >= p.vp.tuning.LongPressDuration {
		p.pressArmed = false
		p.hooks.LongPress(p.lastPos)
	}
}

// foldIntoBase transfers the accumulated pan displacement into the base
// offset, converting from view pixels to content units. The composed offset
// is unchanged, so the fold commits as an empty diff.
func (p *panController) foldIntoBase() {
	pan := p.vp.panOffset.Get()
	if (pan == Vec2{}) {
		return
	}
	scale := p.vp.scaleCell.Get()
	p.vp.Update(func() {
		p.vp.base.Set(p.vp.base.Get().Add(pan.Div2(scale)))
		p.vp.panOffset.Set(Vec2{})
	})
}

func (p *panController) snapTarget(proposed, velocity Vec2) (Vec2, bool) {
	if p.hooks.Snap == nil {
		return Vec2{}, false
	}
	return p.hooks.Snap(proposed, velocity)
}

func (p *panController) settleTo(target Vec2) {
	p.setState(panSettling)
	p.vp.setAnimation(NewTimedAnimation(
		p.vp.base, target.Neg(), p.vp.tuning.SnapDuration, nil,
		p.animationDone))
}

// animationDone runs whether the settle animation finished naturally or was
// interrupted (new drag, explicit scroll); either way the interaction is
// over.
func (p *panController) animationDone(finished bool) {
	p.settled()
}

func (p *panController) settled() {
	if p.state == panSettling {
		p.setState(panIdle)
	}
}
