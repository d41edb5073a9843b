package scroll

import "iter"

// The diff functions compute which indices become visible when the visible
// description changes from A to B. They return only the inserted side; the
// removed side is the symmetric call with the arguments swapped.

// Range is a half-open integer interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// IsEmpty returns true if the range contains no indices.
func (r Range) IsEmpty() bool {
	return r.Hi <= r.Lo
}

// Length returns the number of indices in the range.
func (r Range) Length() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Hi - r.Lo
}

// Contains returns true if i is inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Lo && i < r.Hi
}

// Indexes returns the indices of the range in ascending order.
// The sequence is restartable: each call to range over it starts fresh.
func (r Range) Indexes() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := r.Lo; i < r.Hi; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// RangeDiff returns the parts of b not covered by a, as at most two
// sub-ranges in ascending order (the head of b before a, and the tail of b
// after a). An empty b yields nothing; if a is empty or the ranges are
// disjoint, all of b is returned.
func RangeDiff(a, b Range) []Range {
	if b.IsEmpty() {
		return nil
	}
	if a.IsEmpty() || a.Hi <= b.Lo || b.Hi <= a.Lo {
		return []Range{b}
	}

	var out []Range
	if b.Lo < a.Lo {
		out = append(out, Range{Lo: b.Lo, Hi: a.Lo})
	}
	if a.Hi < b.Hi {
		out = append(out, Range{Lo: a.Hi, Hi: b.Hi})
	}
	return out
}

// rangeDiffSeq yields the indices of RangeDiff(a, b) in ascending order.
func rangeDiffSeq(a, b Range) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, piece := range RangeDiff(a, b) {
			for i := piece.Lo; i < piece.Hi; i++ {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// IndexPair is a 2D integer index (column X, row Y).
type IndexPair struct {
	X, Y int
}

// IndexRect is a half-open rectangle of integer pairs [Min, Max).
type IndexRect struct {
	Min, Max IndexPair
}

// IsEmpty returns true if the rectangle contains no pairs.
func (r IndexRect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains returns true if p is inside the rectangle.
func (r IndexRect) Contains(p IndexPair) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Pairs returns every pair of the rectangle in row-major ascending order.
func (r IndexRect) Pairs() iter.Seq[IndexPair] {
	return func(yield func(IndexPair) bool) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if !yield(IndexPair{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// RectDiff yields the pairs of b not covered by a, scanning the Y axis in
// three bands: rows of b strictly below a (every X of b), rows overlapping
// a's band (X computed with the 1-D range diff), and rows strictly above a.
// This stays proportional to the output size instead of enumerating both
// rectangles.
func RectDiff(a, b IndexRect) iter.Seq[IndexPair] {
	return func(yield func(IndexPair) bool) {
		if b.IsEmpty() {
			return
		}
		if a.IsEmpty() {
			for p := range b.Pairs() {
				if !yield(p) {
					return
				}
			}
			return
		}

		bx := Range{Lo: b.Min.X, Hi: b.Max.X}
		ax := Range{Lo: a.Min.X, Hi: a.Max.X}

		// Rows of b below a's band.
		for y := b.Min.Y; y < min(b.Max.Y, a.Min.Y); y++ {
			for x := bx.Lo; x < bx.Hi; x++ {
				if !yield(IndexPair{X: x, Y: y}) {
					return
				}
			}
		}

		// Rows overlapping a's band: only the X head/tail outside a.
		for y := max(b.Min.Y, a.Min.Y); y < min(b.Max.Y, a.Max.Y); y++ {
			for x := range rangeDiffSeq(ax, bx) {
				if !yield(IndexPair{X: x, Y: y}) {
					return
				}
			}
		}

		// Rows of b above a's band.
		for y := max(b.Min.Y, a.Max.Y); y < b.Max.Y; y++ {
			for x := bx.Lo; x < bx.Hi; x++ {
				if !yield(IndexPair{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// KeySet is a finite set of arbitrary comparable indices.
type KeySet[T comparable] map[T]struct{}

// SetDiff yields the members of b absent from a. No ordering guarantee.
func SetDiff[T comparable](a, b KeySet[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range b {
			if _, ok := a[k]; !ok {
				if !yield(k) {
					return
				}
			}
		}
	}
}
