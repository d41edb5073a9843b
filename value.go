package scroll

// Cell is a mutable reactive value. Listeners are invoked synchronously on
// Set, in subscription order. Cells are single-threaded by design: the whole
// package runs cooperatively on the host's frame loop, so there is no
// locking (see the package documentation).
//
// Usage:
//
//	offset := scroll.NewCell(scroll.Vec2{})
//	sub := offset.Subscribe(func(old, cur scroll.Vec2) { ... })
//	offset.Set(scroll.Vec2{X: 10})
//	sub.Release()
type Cell[T any] struct {
	value     T
	nextID    int
	listeners []cellListener[T]
}

type cellListener[T any] struct {
	id int
	fn func(old, cur T)
}

// NewCell creates a cell holding the given initial value.
func NewCell[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores a new value and notifies all listeners synchronously.
func (c *Cell[T]) Set(value T) {
	old := c.value
	c.value = value

	// Snapshot so a listener can subscribe/release during notification
	// without corrupting the iteration.
	snapshot := make([]cellListener[T], len(c.listeners))
	copy(snapshot, c.listeners)
	for _, l := range snapshot {
		l.fn(old, value)
	}
}

// Subscribe registers a change listener and returns its subscription handle.
// The listener receives the previous and the current value.
func (c *Cell[T]) Subscribe(fn func(old, cur T)) Subscription {
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, cellListener[T]{id: id, fn: fn})

	released := false
	return Subscription{release: func() {
		if released {
			return
		}
		released = true
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}}
}

// Subscription is a handle for a registered listener. Release removes the
// listener; releasing twice is a no-op.
type Subscription struct {
	release func()
}

// Release removes the listener from its cell.
func (s Subscription) Release() {
	if s.release != nil {
		s.release()
	}
}

// CombineSubscriptions bundles several subscriptions into one handle that
// releases them all.
func CombineSubscriptions(subs ...Subscription) Subscription {
	return Subscription{release: func() {
		for _, s := range subs {
			s.Release()
		}
	}}
}

// CombineVec2 returns a derived cell kept in sync with op(a, b). The returned
// subscription detaches the derived cell from its inputs.
func CombineVec2(a, b *Cell[Vec2], op func(Vec2, Vec2) Vec2) (*Cell[Vec2], Subscription) {
	out := NewCell(op(a.Get(), b.Get()))
	recompute := func(_, _ Vec2) {
		out.Set(op(a.Get(), b.Get()))
	}
	subA := a.Subscribe(recompute)
	subB := b.Subscribe(recompute)
	return out, CombineSubscriptions(subA, subB)
}

// AddVec2 returns a derived cell holding a + b.
func AddVec2(a, b *Cell[Vec2]) (*Cell[Vec2], Subscription) {
	return CombineVec2(a, b, Vec2.Add)
}

// SubVec2 returns a derived cell holding a - b.
func SubVec2(a, b *Cell[Vec2]) (*Cell[Vec2], Subscription) {
	return CombineVec2(a, b, Vec2.Sub)
}

// MulVec2 returns a derived cell holding the component-wise product a * b.
func MulVec2(a, b *Cell[Vec2]) (*Cell[Vec2], Subscription) {
	return CombineVec2(a, b, Vec2.Mul2)
}

// DivVec2 returns a derived cell holding the component-wise quotient a / b.
// A zero component in b is a configuration defect and stops the program.
func DivVec2(a, b *Cell[Vec2]) (*Cell[Vec2], Subscription) {
	return CombineVec2(a, b, func(x, y Vec2) Vec2 {
		if y.X == 0 || y.Y == 0 {
			fatalf("derived cell division by zero component: %+v", y)
		}
		return x.Div2(y)
	})
}
