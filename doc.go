// Package scroll implements a recycling 2D scroll viewport: only the items
// intersecting the visible region are materialized, and records scrolled out
// of view are queued per reuse class and rebound to incoming indices instead
// of being recreated.
//
// # Architecture
//
// A Viewport owns the content/container transform and a set of layout
// sources. The scroll offset is composed from three reactive cells,
//
//	offset = base*scale + pan
//
// where base is the settled position in content units, scale carries zoom
// and axis flips, and pan accumulates the in-flight finger displacement in
// view pixels. Writing any input recomputes the composed offset, moves the
// transform, and triggers a visibility update.
//
// Three source shapes cover the common layouts:
//
//   - FlatSource virtualizes a one-dimensional list; its visible description
//     is a half-open integer range.
//   - GridSource virtualizes a regular two-dimensional grid; its visible
//     description is a half-open rectangle of integer pairs.
//   - SetSource virtualizes an arbitrary caller-defined index set for
//     irregular layouts.
//
// Each update diffs the pending visible description against the committed
// one and touches only the difference. Removed indices queue their records
// first, so an incoming index on the same frame reuses a record that just
// left instead of allocating a view.
//
// # Transactions
//
// Mutations are bracketed in update transactions:
//
//	vp.Update(func() {
//	    vp.SetContainerSize(scroll.Vec2{X: w, Y: h})
//	    vp.ScrollTo(scroll.Vec2{}, false)
//	})
//
// Brackets nest freely; the diff is computed and committed exactly once,
// when the outermost bracket closes. The viewport's own setters open a
// bracket internally, so single mutations need no explicit Update call.
//
// # Gestures and animation
//
// The host feeds pointer samples through DragStart, DragMove, and DragEnd.
// On release the content decays with frame-rate independent exponential
// inertia, animates to a target proposed by the snap hook, or rests in
// place, depending on the release velocity. Animations are stepped by the
// host frame loop through Viewport.Step; the package owns no timers or
// goroutines.
//
// # Threading
//
// The package is single-threaded by design. Viewports, sources, and cells
// must only be touched from the host frame loop, the same model a windowing
// main thread imposes. Misuse that would corrupt the recycling invariants
// (unbalanced brackets, zero scale, duplicate source names) stops the
// program with a descriptive panic rather than limping on.
//
// Set SCROLL_DEBUG=1 to log commits, recycling activity, and gesture state
// transitions to stderr.
package scroll
