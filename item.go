package scroll

// ItemLayout is an item's position and size in content coordinates.
type ItemLayout struct {
	Offset Vec2
	Size   Vec2
}

// Item is a materialized item record. A record is created when its index
// first becomes visible and no recyclable instance is available; it is only
// destroyed when evicted from a recycling queue, never while visible.
type Item[T comparable] struct {
	// Index is the item's current key. Rebinding happens on dequeue.
	Index T

	// ReuseClass is the equivalence class under which this record may be
	// handed back out for a different index. Empty means the record is
	// excluded from recycling.
	ReuseClass string

	// Layout is the item's content-space placement, recomputed on rebind.
	Layout ItemLayout

	// ZIndex orders items within a render pass.
	ZIndex int

	// View is the opaque handle to the materialized view, owned by the
	// render host.
	View any

	// Visible is true while the item's index is in the committed visible
	// description, false while the record sits in a recycling queue.
	Visible bool
}
