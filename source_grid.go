package scroll

// GridConfig configures a GridSource.
type GridConfig struct {
	// ItemSize is the content-space size of every cell; both components
	// must be positive.
	ItemSize Vec2

	// CountX and CountY bound the index ranges to [0, Count) per axis.
	// Negative means unbounded in both directions on that axis.
	CountX, CountY int

	// OriginFrac shifts the cell grid by a fraction of one cell per axis.
	OriginFrac Vec2

	// ReuseClass classifies an index for recycling. Nil means all cells of
	// this source share one class; returning "" opts an index out.
	ReuseClass func(index IndexPair) string

	// ZIndex orders items within the render pass. Nil means zero.
	ZIndex func(index IndexPair) int

	// MakeView produces the opaque view handle for a brand-new record.
	MakeView func(item *Item[IndexPair]) any

	// WillHide runs just before a visible record is hidden or the source
	// is unconfigured.
	WillHide func(item *Item[IndexPair])

	// DidCreate runs at commit when n brand-new records were materialized.
	DidCreate func(n int)

	// Render runs once per mounted item during a render pass.
	Render func(item *Item[IndexPair], src Source)
}

// GridSource virtualizes a two-dimensional grid (e.g. a tile map). Its
// visible description is a half-open rectangle of integer pairs.
type GridSource struct {
	store[IndexPair]
	cfg       GridConfig
	committed IndexRect
}

// NewGridSource creates a grid layout source. Non-positive cell sizes are a
// configuration defect and stop the program.
func NewGridSource(name string, cfg GridConfig) *GridSource {
	if cfg.ItemSize.X <= 0 || cfg.ItemSize.Y <= 0 {
		fatalf("grid source %q requires positive cell sizes, got %+v", name, cfg.ItemSize)
	}

	g := &GridSource{store: newStore[IndexPair](name), cfg: cfg}
	g.reuseClass = cfg.ReuseClass
	g.zIndex = cfg.ZIndex
	g.makeView = cfg.MakeView
	g.willHide = cfg.WillHide
	g.didCreate = cfg.DidCreate
	return g
}

// Name returns the source identifier.
func (g *GridSource) Name() string { return g.name }

// Configure attaches the source to a viewport.
func (g *GridSource) Configure(vp *Viewport) { g.configure(vp) }

// Unconfigure detaches the source, hiding all items and dropping queues.
func (g *GridSource) Unconfigure() {
	g.unconfigure()
	g.committed = IndexRect{}
}

// BeginUpdate opens a (reentrant) update transaction.
func (g *GridSource) BeginUpdate() { g.beginUpdate() }

// EndUpdate closes an update transaction; see FlatSource.EndUpdate. The
// rectangle diff scans the Y axis in bands rather than enumerating cells of
// both rectangles.
func (g *GridSource) EndUpdate() {
	if !g.endUpdateOutermost() {
		return
	}
	pending := g.visibleRect()
	removed := RectDiff(pending, g.committed)
	inserted := RectDiff(g.committed, pending)

	nR, nI := g.apply(removed, inserted, g.itemLayout)
	g.committed = pending
	g.finishCommit(nR, nI)
}

// VisibleRect returns the committed visible index rectangle.
func (g *GridSource) VisibleRect() IndexRect { return g.committed }

// VisibleLen returns the number of visible items.
func (g *GridSource) VisibleLen() int { return len(g.visible) }

// QueuedLen returns the number of queued records.
func (g *GridSource) QueuedLen() int { return g.queuedLen() }

// ClearQueue discards all queued records.
func (g *GridSource) ClearQueue() { g.clearQueue() }

// VisibleItem returns the visible record for an index, or nil.
func (g *GridSource) VisibleItem(index IndexPair) *Item[IndexPair] { return g.visible[index] }

// QueueItem hides a visible record into its recycling queue. Returns false
// if the index is not visible.
func (g *GridSource) QueueItem(index IndexPair) bool { return g.queueItem(index) }

// DequeueItem rebinds a recycled record of the index's class to the index,
// or returns nil when none is queued.
func (g *GridSource) DequeueItem(index IndexPair) *Item[IndexPair] {
	return g.dequeueItem(index, g.itemLayout(index))
}

// CreateItem materializes a brand-new record for the index.
func (g *GridSource) CreateItem(index IndexPair) *Item[IndexPair] {
	return g.createItem(index, g.itemLayout(index))
}

// ItemLayout returns the content-space placement for a cell index.
func (g *GridSource) ItemLayout(index IndexPair) ItemLayout { return g.itemLayout(index) }

func (g *GridSource) itemLayout(index IndexPair) ItemLayout {
	return ItemLayout{
		Offset: Vec2{
			X: float32(index.X) * g.cfg.ItemSize.X,
			Y: float32(index.Y) * g.cfg.ItemSize.Y,
		},
		Size: g.cfg.ItemSize,
	}
}

// visibleRect converts the viewport's visible content rectangle into a
// half-open cell index rectangle, floor/ceil per edge so partially visible
// cells are included.
func (g *GridSource) visibleRect() IndexRect {
	rect := g.viewport().Transform().VisibleContentRect()
	if rect.IsEmpty() {
		return IndexRect{}
	}

	r := IndexRect{
		Min: IndexPair{
			X: GridIndex(rect.X, g.cfg.ItemSize.X, g.cfg.OriginFrac.X, RoundFloor),
			Y: GridIndex(rect.Y, g.cfg.ItemSize.Y, g.cfg.OriginFrac.Y, RoundFloor),
		},
		Max: IndexPair{
			X: GridIndex(rect.X+rect.W, g.cfg.ItemSize.X, g.cfg.OriginFrac.X, RoundCeil),
			Y: GridIndex(rect.Y+rect.H, g.cfg.ItemSize.Y, g.cfg.OriginFrac.Y, RoundCeil),
		},
	}
	if g.cfg.CountX >= 0 {
		r.Min.X = max(r.Min.X, 0)
		r.Max.X = min(r.Max.X, g.cfg.CountX)
	}
	if g.cfg.CountY >= 0 {
		r.Min.Y = max(r.Min.Y, 0)
		r.Max.Y = min(r.Max.Y, g.cfg.CountY)
	}
	if r.IsEmpty() {
		return IndexRect{}
	}
	return r
}

func (g *GridSource) renderPass() {
	items := g.sortedVisible(func(a, b IndexPair) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	g.renderItems(g, g.cfg.Render, items)
}

func (g *GridSource) reload() {
	g.reloadVisible()
	g.committed = IndexRect{}
}
