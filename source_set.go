package scroll

// SetConfig configures a SetSource. VisibleSet and Layout are mandatory; the
// others mirror FlatConfig.
type SetConfig[T comparable] struct {
	// VisibleSet returns the finite set of indices visible inside the
	// given content rectangle. The returned set is owned by the source
	// until the next call.
	VisibleSet func(content Rect) KeySet[T]

	// Layout returns the content-space placement for an index.
	Layout func(index T) ItemLayout

	// Less orders indices for the render pass. Nil leaves render order
	// unspecified, matching the key-set diff's lack of ordering.
	Less func(a, b T) bool

	ReuseClass func(index T) string
	ZIndex     func(index T) int
	MakeView   func(item *Item[T]) any
	WillHide   func(item *Item[T])
	DidCreate  func(n int)
	Render     func(item *Item[T], src Source)
}

// SetSource virtualizes an arbitrary finite index set supplied by the
// caller, for layouts that are neither a list nor a regular grid. Its
// visible description is a key set.
type SetSource[T comparable] struct {
	store[T]
	cfg       SetConfig[T]
	committed KeySet[T]
}

// NewSetSource creates a set-backed layout source. Missing VisibleSet or
// Layout callbacks are configuration defects and stop the program.
func NewSetSource[T comparable](name string, cfg SetConfig[T]) *SetSource[T] {
	if cfg.VisibleSet == nil {
		fatalf("set source %q requires a VisibleSet callback", name)
	}
	if cfg.Layout == nil {
		fatalf("set source %q requires a Layout callback", name)
	}

	s := &SetSource[T]{
		store:     newStore[T](name),
		cfg:       cfg,
		committed: make(KeySet[T]),
	}
	s.reuseClass = cfg.ReuseClass
	s.zIndex = cfg.ZIndex
	s.makeView = cfg.MakeView
	s.willHide = cfg.WillHide
	s.didCreate = cfg.DidCreate
	return s
}

// Name returns the source identifier.
func (s *SetSource[T]) Name() string { return s.name }

// Configure attaches the source to a viewport.
func (s *SetSource[T]) Configure(vp *Viewport) { s.configure(vp) }

// Unconfigure detaches the source, hiding all items and dropping queues.
func (s *SetSource[T]) Unconfigure() {
	s.unconfigure()
	s.committed = make(KeySet[T])
}

// BeginUpdate opens a (reentrant) update transaction.
func (s *SetSource[T]) BeginUpdate() { s.beginUpdate() }

// EndUpdate closes an update transaction; see FlatSource.EndUpdate.
func (s *SetSource[T]) EndUpdate() {
	if !s.endUpdateOutermost() {
		return
	}
	pending := s.visibleSet()
	removed := SetDiff(pending, s.committed)
	inserted := SetDiff(s.committed, pending)

	nR, nI := s.apply(removed, inserted, s.cfg.Layout)
	s.committed = pending
	s.finishCommit(nR, nI)
}

// VisibleSet returns the committed visible key set. The caller must not
// mutate it.
func (s *SetSource[T]) VisibleSet() KeySet[T] { return s.committed }

// VisibleLen returns the number of visible items.
func (s *SetSource[T]) VisibleLen() int { return len(s.visible) }

// QueuedLen returns the number of queued records.
func (s *SetSource[T]) QueuedLen() int { return s.queuedLen() }

// ClearQueue discards all queued records.
func (s *SetSource[T]) ClearQueue() { s.clearQueue() }

// VisibleItem returns the visible record for an index, or nil.
func (s *SetSource[T]) VisibleItem(index T) *Item[T] { return s.visible[index] }

// QueueItem hides a visible record into its recycling queue. Returns false
// if the index is not visible.
func (s *SetSource[T]) QueueItem(index T) bool { return s.queueItem(index) }

// DequeueItem rebinds a recycled record of the index's class to the index,
// or returns nil when none is queued.
func (s *SetSource[T]) DequeueItem(index T) *Item[T] {
	return s.dequeueItem(index, s.cfg.Layout(index))
}

// CreateItem materializes a brand-new record for the index.
func (s *SetSource[T]) CreateItem(index T) *Item[T] {
	return s.createItem(index, s.cfg.Layout(index))
}

func (s *SetSource[T]) visibleSet() KeySet[T] {
	rect := s.viewport().Transform().VisibleContentRect()
	if rect.IsEmpty() {
		return make(KeySet[T])
	}
	set := s.cfg.VisibleSet(rect)
	if set == nil {
		set = make(KeySet[T])
	}
	return set
}

func (s *SetSource[T]) renderPass() {
	items := s.sortedVisible(func(a, b T) int {
		if s.cfg.Less == nil {
			return 0
		}
		switch {
		case s.cfg.Less(a, b):
			return -1
		case s.cfg.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	s.renderItems(s, s.cfg.Render, items)
}

func (s *SetSource[T]) reload() {
	s.reloadVisible()
	s.committed = make(KeySet[T])
}
