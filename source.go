package scroll

import (
	"iter"
	"slices"
)

// Source is a layout source: it owns the currently visible item records for
// one layout strategy and recycles hidden records by reuse class. Three
// implementations exist, selected at construction: FlatSource (1-D integer
// indices), GridSource (integer-pair indices), and SetSource (arbitrary
// caller-defined indices).
type Source interface {
	// Name returns the source's identifier, unique within its viewport.
	Name() string

	// Configure attaches the source to a viewport. The viewport reference
	// is non-owning; dereferencing it after Unconfigure is a programmer
	// error.
	Configure(vp *Viewport)

	// Unconfigure detaches from the viewport, hiding every visible item
	// (invoking the will-hide hook) and discarding all recycling queues.
	Unconfigure()

	// BeginUpdate and EndUpdate bracket a visibility update transaction.
	// Brackets are reentrant; the diff is computed and committed exactly
	// once, at the outermost EndUpdate. An EndUpdate without a matching
	// BeginUpdate stops the program.
	BeginUpdate()
	EndUpdate()

	// ClearQueue discards all queued (non-visible) records. Queued records
	// are never pruned automatically; call this under memory pressure.
	ClearQueue()

	// VisibleLen returns the number of currently visible items.
	VisibleLen() int

	// QueuedLen returns the number of records waiting in recycling queues.
	QueuedLen() int

	// renderPass invokes the configured render callback once per visible
	// item (and per queued item that still holds a mounted view).
	renderPass()

	// reload hides every visible item and resets the committed description
	// so the next commit re-materializes everything. Used when a scale
	// sign flip invalidates all incremental diffing.
	reload()
}

// store is the recycling core shared by the three Source implementations.
// It owns the visible records, the per-reuse-class LIFO queues, and the
// transaction depth counter.
type store[T comparable] struct {
	name    string
	vp      *Viewport
	visible map[T]*Item[T]
	queues  map[string][]*Item[T]
	depth   int
	created int // brand-new records materialized in the current transaction

	reuseClass func(T) string
	zIndex     func(T) int
	makeView   func(*Item[T]) any
	willHide   func(*Item[T])
	didCreate  func(n int)
}

func newStore[T comparable](name string) store[T] {
	if name == "" {
		fatalf("layout source requires a non-empty name")
	}
	return store[T]{
		name:    name,
		visible: make(map[T]*Item[T]),
		queues:  make(map[string][]*Item[T]),
	}
}

// viewport returns the owning viewport or stops the program if the source
// is not configured. The reference is deliberately non-owning; using a
// source after its viewport detached is a hosting-code defect.
func (s *store[T]) viewport() *Viewport {
	if s.vp == nil {
		fatalf("source %q used without a configured viewport", s.name)
	}
	return s.vp
}

func (s *store[T]) configure(vp *Viewport) {
	if vp == nil {
		fatalf("source %q configured with a nil viewport", s.name)
	}
	if s.vp != nil {
		fatalf("source %q is already configured", s.name)
	}
	s.vp = vp
}

func (s *store[T]) unconfigure() {
	// The will-hide hook may touch the visible map; iterate a key copy.
	keys := make([]T, 0, len(s.visible))
	for k := range s.visible {
		keys = append(keys, k)
	}
	for _, k := range keys {
		it := s.visible[k]
		s.notifyWillHide(it)
		it.Visible = false
		delete(s.visible, k)
	}
	s.queues = make(map[string][]*Item[T])
	s.vp = nil
	s.depth = 0
	s.created = 0
}

// classFor computes the reuse class for an index. Without a classifier the
// store-wide name is used, which makes every record interchangeable within
// the source; an empty string from the classifier opts the index out of
// recycling entirely.
func (s *store[T]) classFor(index T) string {
	if s.reuseClass != nil {
		return s.reuseClass(index)
	}
	return s.name
}

func (s *store[T]) beginUpdate() {
	s.depth++
}

// endUpdateOutermost decrements the transaction depth and reports whether
// this call closes the outermost bracket. Unbalanced calls stop the program.
func (s *store[T]) endUpdateOutermost() bool {
	if s.depth == 0 {
		fatalf("EndUpdate without matching BeginUpdate on source %q", s.name)
	}
	s.depth--
	return s.depth == 0
}

// queueItem moves a visible record to its reuse-class queue. Returns false
// if the index is not currently visible. Records with an empty reuse class
// are destroyed instead of queued.
func (s *store[T]) queueItem(index T) bool {
	it, ok := s.visible[index]
	if !ok {
		return false
	}
	s.notifyWillHide(it)
	it.Visible = false
	delete(s.visible, index)

	if it.ReuseClass == "" {
		logger.Debug("item dropped (no reuse class)", "source", s.name, "index", index)
		return true
	}
	s.queues[it.ReuseClass] = append(s.queues[it.ReuseClass], it)
	return true
}

// dequeueItem pops the most-recently-queued record of the index's reuse
// class, rebinds it to the new index, and marks it visible. Returns nil if
// no record of that class is queued; the caller must then create one.
func (s *store[T]) dequeueItem(index T, layout ItemLayout) *Item[T] {
	class := s.classFor(index)
	if class == "" {
		return nil
	}
	q := s.queues[class]
	if len(q) == 0 {
		return nil
	}
	it := q[len(q)-1]
	s.queues[class] = q[:len(q)-1]

	if it.ReuseClass != class {
		fatalf("source %q dequeued a record of class %q from queue %q", s.name, it.ReuseClass, class)
	}

	it.Index = index
	it.Layout = layout
	if s.zIndex != nil {
		it.ZIndex = s.zIndex(index)
	}
	it.Visible = true
	s.visible[index] = it
	return it
}

// createItem materializes a brand-new record for an index. Used when
// dequeueItem finds no recyclable instance.
func (s *store[T]) createItem(index T, layout ItemLayout) *Item[T] {
	it := &Item[T]{
		Index:      index,
		ReuseClass: s.classFor(index),
		Layout:     layout,
		Visible:    true,
	}
	if s.zIndex != nil {
		it.ZIndex = s.zIndex(index)
	}
	if s.makeView != nil {
		it.View = s.guardedMakeView(it)
	}
	s.visible[index] = it
	s.created++
	return it
}

func (s *store[T]) clearQueue() {
	n := 0
	for _, q := range s.queues {
		n += len(q)
	}
	s.queues = make(map[string][]*Item[T])
	if n > 0 {
		logger.Debug("recycling queues cleared", "source", s.name, "discarded", n)
	}
}

func (s *store[T]) queuedLen() int {
	n := 0
	for _, q := range s.queues {
		n += len(q)
	}
	return n
}

// apply commits a visibility diff: removed indices are queued first so their
// records can satisfy the inserted indices, which are then dequeued or
// created. Each sequence is consumed exactly once.
func (s *store[T]) apply(removed, inserted iter.Seq[T], layoutOf func(T) ItemLayout) (nRemoved, nInserted int) {
	for index := range removed {
		if s.queueItem(index) {
			nRemoved++
		}
	}
	for index := range inserted {
		layout := layoutOf(index)
		if it := s.dequeueItem(index, layout); it == nil {
			s.createItem(index, layout)
		}
		nInserted++
	}
	return nRemoved, nInserted
}

// finishCommit fires post-commit notifications: the render host learns that
// materialized items changed, and the did-create hook fires when brand-new
// records were needed.
func (s *store[T]) finishCommit(nRemoved, nInserted int) {
	if nRemoved == 0 && nInserted == 0 && s.created == 0 {
		return
	}
	logger.Debug("visibility committed",
		"source", s.name,
		"removed", nRemoved,
		"inserted", nInserted,
		"created", s.created,
		"visible", len(s.visible))

	if s.created > 0 && s.didCreate != nil {
		s.didCreate(s.created)
	}
	s.created = 0
	s.viewport().setNeedsRender()
}

// reloadVisible hides every visible record into the queues so the next
// commit starts from an empty description.
func (s *store[T]) reloadVisible() {
	keys := make([]T, 0, len(s.visible))
	for k := range s.visible {
		keys = append(keys, k)
	}
	for _, k := range keys {
		s.queueItem(k)
	}
}

// renderItems runs the render callback over the given items, then over any
// queued records still holding a mounted view. A panic in the callback is
// contained at the per-item boundary and logged; remaining items still
// render.
func (s *store[T]) renderItems(src Source, render func(*Item[T], Source), items []*Item[T]) {
	if render == nil {
		return
	}
	for _, it := range items {
		s.renderOne(src, render, it)
	}
	for _, q := range s.queues {
		for _, it := range q {
			if it.View != nil {
				s.renderOne(src, render, it)
			}
		}
	}
}

func (s *store[T]) renderOne(src Source, render func(*Item[T], Source), it *Item[T]) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("render callback failed", "source", s.name, "index", it.Index, "err", r)
		}
	}()
	render(it, src)
}

func (s *store[T]) notifyWillHide(it *Item[T]) {
	if s.willHide == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("will-hide callback failed", "source", s.name, "index", it.Index, "err", r)
		}
	}()
	s.willHide(it)
}

func (s *store[T]) guardedMakeView(it *Item[T]) (view any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("make-view callback failed", "source", s.name, "index", it.Index, "err", r)
			view = nil
		}
	}()
	return s.makeView(it)
}

// sortedVisible returns the visible records ordered by z-index, then by the
// variant-supplied index comparison, for a stable render order.
func (s *store[T]) sortedVisible(cmpIndex func(a, b T) int) []*Item[T] {
	items := make([]*Item[T], 0, len(s.visible))
	for _, it := range s.visible {
		items = append(items, it)
	}
	slices.SortFunc(items, func(a, b *Item[T]) int {
		if a.ZIndex != b.ZIndex {
			return a.ZIndex - b.ZIndex
		}
		return cmpIndex(a.Index, b.Index)
	})
	return items
}
