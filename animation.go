package scroll

import "math"

// Animation drives a reactive cell toward rest. Animations are stepped by
// the host frame loop (Viewport.Step); they never own a timer or goroutine.
type Animation interface {
	// Step advances the animation by dt seconds. Returns false once the
	// animation has completed; the completion callback fires with
	// finished=true before Step returns false.
	Step(dt float32) bool

	// Stop interrupts the animation. The completion callback fires with
	// finished=false. Stopping a completed or stopped animation is a no-op.
	Stop()
}

// DecayAnimation simulates inertial scrolling: the cell's value keeps moving
// with an exponentially decaying velocity until the speed drops below a
// resting threshold.
type DecayAnimation struct {
	cell     *Cell[Vec2]
	velocity Vec2    // units per millisecond
	rate     float32 // velocity retained per millisecond, in (0, 1)
	resting  float32 // stop once |velocity| falls below this
	done     func(finished bool)
	finished bool
}

// NewDecayAnimation creates a decay animation over cell with the given
// initial velocity (units/ms). rate must be in (0, 1).
func NewDecayAnimation(cell *Cell[Vec2], velocity Vec2, rate, restingVelocity float32, done func(finished bool)) *DecayAnimation {
	if rate <= 0 || rate >= 1 {
		fatalf("decay rate must be in (0, 1), got %v", rate)
	}
	return &DecayAnimation{
		cell:     cell,
		velocity: velocity,
		rate:     rate,
		resting:  restingVelocity,
		done:     done,
	}
}

// DecayTarget returns the position an exponential decay starting at pos with
// the given velocity (units/ms) would come to rest at. Used to propose a
// settle location to snap hooks before the animation starts.
func DecayTarget(pos, velocity Vec2, rate float32) Vec2 {
	if rate <= 0 || rate >= 1 {
		fatalf("decay rate must be in (0, 1), got %v", rate)
	}
	// Total distance of v0*rate^t integrated over t in [0, inf).
	lnr := float32(math.Log(float64(rate)))
	return pos.Add(velocity.Mul(-1 / lnr))
}

// Step advances the decay by dt seconds using the closed-form integral of
// the velocity over the frame, which keeps the motion frame-rate independent.
func (a *DecayAnimation) Step(dt float32) bool {
	if a.finished {
		return false
	}
	ms := dt * 1000
	if ms <= 0 {
		return true
	}

	k := float32(math.Pow(float64(a.rate), float64(ms)))
	lnr := float32(math.Log(float64(a.rate)))
	distance := a.velocity.Mul((k - 1) / lnr)

	a.cell.Set(a.cell.Get().Add(distance))
	a.velocity = a.velocity.Mul(k)

	if a.velocity.Len() < a.resting {
		a.finish(true)
		return false
	}
	return true
}

// Stop interrupts the decay.
func (a *DecayAnimation) Stop() {
	a.finish(false)
}

func (a *DecayAnimation) finish(finished bool) {
	if a.finished {
		return
	}
	a.finished = true
	if a.done != nil {
		a.done(finished)
	}
}

// EaseFunc maps normalized elapsed time [0, 1] to interpolation progress.
type EaseFunc func(t float32) float32

// EaseOutCubic decelerates toward the target, matching the feel of a scroll
// settling into place.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseLinear interpolates at constant speed.
func EaseLinear(t float32) float32 {
	return t
}

// TimedAnimation interpolates a cell from its current value to a target over
// a fixed duration with an easing curve. Used for snap targets and animated
// scroll-to calls.
type TimedAnimation struct {
	cell     *Cell[Vec2]
	from     Vec2
	to       Vec2
	duration float32 // seconds
	elapsed  float32
	ease     EaseFunc
	done     func(finished bool)
	finished bool
}

// NewTimedAnimation creates a timed animation toward target. A nil ease
// defaults to EaseOutCubic; a non-positive duration completes on the first
// step.
func NewTimedAnimation(cell *Cell[Vec2], target Vec2, duration float32, ease EaseFunc, done func(finished bool)) *TimedAnimation {
	if ease == nil {
		ease = EaseOutCubic
	}
	return &TimedAnimation{
		cell:     cell,
		from:     cell.Get(),
		to:       target,
		duration: duration,
		ease:     ease,
		done:     done,
	}
}

// Step advances the interpolation by dt seconds.
func (a *TimedAnimation) Step(dt float32) bool {
	if a.finished {
		return false
	}
	a.elapsed += dt
	if a.duration <= 0 || a.elapsed >= a.duration {
		a.cell.Set(a.to)
		a.finish(true)
		return false
	}

	t := a.ease(a.elapsed / a.duration)
	a.cell.Set(a.from.Add(a.to.Sub(a.from).Mul(t)))
	return true
}

// Stop interrupts the interpolation, leaving the cell at its current value.
func (a *TimedAnimation) Stop() {
	a.finish(false)
}

func (a *TimedAnimation) finish(finished bool) {
	if a.finished {
		return
	}
	a.finished = true
	if a.done != nil {
		a.done(finished)
	}
}
