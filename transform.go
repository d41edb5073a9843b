package scroll

import "math"

// RoundMode selects how a continuous grid coordinate maps to an integer index.
type RoundMode int

const (
	RoundFloor RoundMode = iota
	RoundCeil
	RoundNearest
)

// StickyEdge pins content to one container edge irrespective of scroll offset.
type StickyEdge int

const (
	StickyNone StickyEdge = iota
	StickyMin             // content origin pinned to the top/left inset edge
	StickyMax             // content origin pinned to the bottom/right inset edge
)

// Transform maps between content coordinates (the continuous coordinate
// system item indices are laid out in) and container coordinates (view
// pixels):
//
//	container = content*Scale + Offset + Anchor*ContainerSize
//
// Scale components encode an axis flip through their sign and are never zero
// while the transform is configured. Transient invalid values (zero container
// size before layout, zero scale before configuration) make VisibleContentRect
// return the empty rectangle rather than an error.
type Transform struct {
	Offset        Vec2
	Scale         Vec2
	Anchor        Vec2 // unit-interval fraction of ContainerSize
	ContainerSize Vec2
	Insets        Insets

	// StickyX/StickyY override Offset on their axis, pinning content to a
	// container edge.
	StickyX, StickyY StickyEdge
}

// NewTransform returns a transform with identity scale and zero offset.
func NewTransform() Transform {
	return Transform{Scale: Vec2{X: 1, Y: 1}}
}

// Configured reports whether both scale components are non-zero.
func (t *Transform) Configured() bool {
	return t.Scale.X != 0 && t.Scale.Y != 0
}

// origin returns the container-space position the content origin maps to
// when Offset is zero.
func (t *Transform) origin() Vec2 {
	return t.Anchor.Mul2(t.ContainerSize)
}

// effectiveOffset resolves sticky edges: a sticky axis ignores Offset and
// pins the content origin to the requested inset edge.
func (t *Transform) effectiveOffset() Vec2 {
	eff := t.Offset
	o := t.origin()
	switch t.StickyX {
	case StickyMin:
		eff.X = t.Insets.Left - o.X
	case StickyMax:
		eff.X = t.ContainerSize.X - t.Insets.Right - o.X
	}
	switch t.StickyY {
	case StickyMin:
		eff.Y = t.Insets.Top - o.Y
	case StickyMax:
		eff.Y = t.ContainerSize.Y - t.Insets.Bottom - o.Y
	}
	return eff
}

// ContentToContainer converts a content-space point to container pixels.
func (t *Transform) ContentToContainer(p Vec2) Vec2 {
	return p.Mul2(t.Scale).Add(t.effectiveOffset()).Add(t.origin())
}

// ContainerToContent converts a container-pixel point to content space.
// The transform must be configured (non-zero scale).
func (t *Transform) ContainerToContent(p Vec2) Vec2 {
	return p.Sub(t.origin()).Sub(t.effectiveOffset()).Div2(t.Scale)
}

// VisibleContentRect returns the content-space rectangle currently visible
// inside the container, after applying insets. A negative scale reverses
// coordinate ordering, so min/max are swapped per axis where needed. Returns
// the empty rectangle while the transform is in a transient invalid state.
func (t *Transform) VisibleContentRect() Rect {
	if !t.Configured() {
		return Rect{}
	}
	w := t.ContainerSize.X - t.Insets.Left - t.Insets.Right
	h := t.ContainerSize.Y - t.Insets.Top - t.Insets.Bottom
	if w <= 0 || h <= 0 {
		return Rect{}
	}

	lo := t.ContainerToContent(Vec2{X: t.Insets.Left, Y: t.Insets.Top})
	hi := t.ContainerToContent(Vec2{
		X: t.ContainerSize.X - t.Insets.Right,
		Y: t.ContainerSize.Y - t.Insets.Bottom,
	})

	if t.Scale.X < 0 {
		lo.X, hi.X = hi.X, lo.X
	}
	if t.Scale.Y < 0 {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	if lo.X >= hi.X || lo.Y >= hi.Y {
		return Rect{}
	}
	return RectFromMinMax(lo, hi)
}

// GridIndex maps a content-space coordinate to a grid index by dividing by
// the item size, shifting by the item-origin fraction, and rounding with the
// given mode. Use RoundFloor for an inclusive low bound and RoundCeil for an
// exclusive high bound so partially visible edge items are included.
func GridIndex(v, itemSize, originFrac float32, mode RoundMode) int {
	if itemSize <= 0 {
		fatalf("grid index requires a positive item size, got %v", itemSize)
	}
	u := float64(v/itemSize - originFrac)
	switch mode {
	case RoundCeil:
		return int(math.Ceil(u))
	case RoundNearest:
		return int(math.Round(u))
	default:
		return int(math.Floor(u))
	}
}
