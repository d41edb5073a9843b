package scroll

// Orientation selects the scrolling axis of a FlatSource.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// FlatConfig configures a FlatSource.
type FlatConfig struct {
	// ItemSize is the content-space size of every item. The component on
	// the scrolling axis must be positive.
	ItemSize Vec2

	// Orientation is the scrolling axis. Items are laid out along it.
	Orientation Orientation

	// Count limits the index range to [0, Count). Negative means unbounded
	// in both directions.
	Count int

	// OriginFrac shifts the item grid by a fraction of one item, letting
	// item centers (0.5) rather than edges align with content coordinates.
	OriginFrac float32

	// ReuseClass classifies an index for recycling. Nil means all items of
	// this source share one class; returning "" opts an index out.
	ReuseClass func(index int) string

	// ZIndex orders items within the render pass. Nil means zero.
	ZIndex func(index int) int

	// MakeView produces the opaque view handle for a brand-new record.
	MakeView func(item *Item[int]) any

	// WillHide runs just before a visible record is hidden or the source
	// is unconfigured.
	WillHide func(item *Item[int])

	// DidCreate runs at commit when n brand-new (non-recycled) records
	// were materialized.
	DidCreate func(n int)

	// Render runs once per mounted item during a render pass.
	Render func(item *Item[int], src Source)
}

// FlatSource virtualizes a one-dimensional list. Its visible description is
// a single half-open integer range.
type FlatSource struct {
	store[int]
	cfg       FlatConfig
	committed Range
}

// NewFlatSource creates a flat layout source. A non-positive item size on
// the scrolling axis is a configuration defect and stops the program.
func NewFlatSource(name string, cfg FlatConfig) *FlatSource {
	extent := cfg.ItemSize.Y
	if cfg.Orientation == Horizontal {
		extent = cfg.ItemSize.X
	}
	if extent <= 0 {
		fatalf("flat source %q requires a positive item size on its axis, got %v", name, extent)
	}

	f := &FlatSource{store: newStore[int](name), cfg: cfg}
	f.reuseClass = cfg.ReuseClass
	f.zIndex = cfg.ZIndex
	f.makeView = cfg.MakeView
	f.willHide = cfg.WillHide
	f.didCreate = cfg.DidCreate
	return f
}

// Name returns the source identifier.
func (f *FlatSource) Name() string { return f.name }

// Configure attaches the source to a viewport.
func (f *FlatSource) Configure(vp *Viewport) { f.configure(vp) }

// Unconfigure detaches the source, hiding all items and dropping queues.
func (f *FlatSource) Unconfigure() {
	f.unconfigure()
	f.committed = Range{}
}

// BeginUpdate opens a (reentrant) update transaction.
func (f *FlatSource) BeginUpdate() { f.beginUpdate() }

// EndUpdate closes an update transaction. The outermost call recomputes the
// visible range from the viewport transform, diffs it against the committed
// range, queues the removed indices, dequeues-or-creates the inserted ones
// (removals first so their records are recyclable), and commits.
func (f *FlatSource) EndUpdate() {
	if !f.endUpdateOutermost() {
		return
	}
	pending := f.visibleRange()
	removed := rangeDiffSeq(pending, f.committed)
	inserted := rangeDiffSeq(f.committed, pending)

	nR, nI := f.apply(removed, inserted, f.itemLayout)
	f.committed = pending
	f.finishCommit(nR, nI)
}

// VisibleRange returns the committed visible index range.
func (f *FlatSource) VisibleRange() Range { return f.committed }

// VisibleLen returns the number of visible items.
func (f *FlatSource) VisibleLen() int { return len(f.visible) }

// QueuedLen returns the number of queued records.
func (f *FlatSource) QueuedLen() int { return f.queuedLen() }

// ClearQueue discards all queued records.
func (f *FlatSource) ClearQueue() { f.clearQueue() }

// VisibleItem returns the visible record for an index, or nil.
func (f *FlatSource) VisibleItem(index int) *Item[int] { return f.visible[index] }

// QueueItem hides a visible record into its recycling queue. Returns false
// if the index is not visible.
func (f *FlatSource) QueueItem(index int) bool { return f.queueItem(index) }

// DequeueItem rebinds a recycled record of the index's class to the index,
// or returns nil when none is queued.
func (f *FlatSource) DequeueItem(index int) *Item[int] {
	return f.dequeueItem(index, f.itemLayout(index))
}

// CreateItem materializes a brand-new record for the index.
func (f *FlatSource) CreateItem(index int) *Item[int] {
	return f.createItem(index, f.itemLayout(index))
}

// ItemLayout returns the content-space placement for an index.
func (f *FlatSource) ItemLayout(index int) ItemLayout { return f.itemLayout(index) }

func (f *FlatSource) itemLayout(index int) ItemLayout {
	offset := Vec2{Y: float32(index) * f.cfg.ItemSize.Y}
	if f.cfg.Orientation == Horizontal {
		offset = Vec2{X: float32(index) * f.cfg.ItemSize.X}
	}
	return ItemLayout{Offset: offset, Size: f.cfg.ItemSize}
}

// visibleRange converts the viewport's visible content rectangle into an
// inclusive-low/exclusive-high index range. Floor on the low edge and ceil
// on the high edge keep partially visible edge items included.
func (f *FlatSource) visibleRange() Range {
	rect := f.viewport().Transform().VisibleContentRect()
	if rect.IsEmpty() {
		return Range{}
	}

	var lo, hi int
	if f.cfg.Orientation == Horizontal {
		lo = GridIndex(rect.X, f.cfg.ItemSize.X, f.cfg.OriginFrac, RoundFloor)
		hi = GridIndex(rect.X+rect.W, f.cfg.ItemSize.X, f.cfg.OriginFrac, RoundCeil)
	} else {
		lo = GridIndex(rect.Y, f.cfg.ItemSize.Y, f.cfg.OriginFrac, RoundFloor)
		hi = GridIndex(rect.Y+rect.H, f.cfg.ItemSize.Y, f.cfg.OriginFrac, RoundCeil)
	}
	if f.cfg.Count >= 0 {
		lo = max(lo, 0)
		hi = min(hi, f.cfg.Count)
	}
	if lo >= hi {
		return Range{}
	}
	return Range{Lo: lo, Hi: hi}
}

func (f *FlatSource) renderPass() {
	items := f.sortedVisible(func(a, b int) int { return a - b })
	f.renderItems(f, f.cfg.Render, items)
}

func (f *FlatSource) reload() {
	f.reloadVisible()
	f.committed = Range{}
}
