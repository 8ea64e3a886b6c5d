// Package selection tracks which cells, rows and columns of a grid are
// selected.
//
// Cell selections are kept as a list of rectangles so large areas stay cheap
// to store and to test against. Alongside each rectangle the model keeps two
// flattened copies, one with no width and one with no height, which answer
// "is anything selected in this row/column" for header highlighting. Row and
// column selections made from the headers live in their own interval sets.
//
// Every rectangle is grown so it never cuts through a merged cell; see
// ResolveSpans.
//
// A Model is not safe for concurrent use. It is meant to be driven from a
// single UI loop.
package selection

import (
	"math"
	"slices"

	"github.com/xonecas/gridsel/internal/intervalset"
)

// Kind identifies what the most recent mutation selected.
type Kind int

const (
	KindNone Kind = iota
	KindCell
	KindRow
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	default:
		return "none"
	}
}

// Geometry reports the size of the grid.
type Geometry interface {
	RowCount() int
	ColumnCount() int
}

// IntervalSet is the one-dimensional range store used for row and column
// selections.
type IntervalSet interface {
	Select(a, b int)
	Deselect(a, b int)
	IsSelected(i int) bool
	Selections() []intervalset.Range
	IsEmpty() bool
	Clear()
}

// Options configures selection behavior.
type Options struct {
	// MultiSelect keeps every region; when false a new selection replaces
	// the previous one.
	MultiSelect bool
	// AutoSelectRows projects cell regions onto the row set after each
	// cell selection.
	AutoSelectRows bool
	// AutoSelectColumns projects cell regions onto the column set after
	// each cell selection.
	AutoSelectColumns bool
	// CheckboxOnlyRowSelections keeps rows out of cell-driven updates:
	// rows survive Clear and are never projected from cells.
	CheckboxOnlyRowSelections bool
	// SingleRowSelectionMode limits projected rows to the most recent
	// region's focus row.
	SingleRowSelectionMode bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{MultiSelect: true}
}

// Model owns the selection state of one grid.
type Model struct {
	opts  Options
	geom  Geometry
	spans SpanProvider

	regions    []Region
	flattenedX []Region
	flattenedY []Region

	rows    IntervalSet
	columns IntervalSet

	allRowsSelected bool
	lastKind        Kind
	copyArea        *Region

	listeners []func()
}

// New returns an empty model. geom and spans may be nil: a nil geometry is a
// 0x0 grid and nil spans means no merged cells.
func New(geom Geometry, spans SpanProvider, opts Options) *Model {
	if spans == nil {
		spans = NoSpans{}
	}
	return &Model{
		opts:    opts,
		geom:    geom,
		spans:   spans,
		rows:    intervalset.New(),
		columns: intervalset.New(),
	}
}

// SetSource swaps the grid geometry and span provider, for example after the
// underlying sheet was reloaded. Existing selections are kept as-is.
func (m *Model) SetSource(geom Geometry, spans SpanProvider) {
	if spans == nil {
		spans = NoSpans{}
	}
	m.geom = geom
	m.spans = spans
}

// Options returns the active options.
func (m *Model) Options() Options { return m.opts }

// SetOptions replaces the options. Switching MultiSelect off truncates the
// region list to its most recent entry.
func (m *Model) SetOptions(opts Options) {
	m.opts = opts
	if !opts.MultiSelect && len(m.regions) > 1 {
		last := len(m.regions) - 1
		m.regions[0] = m.regions[last]
		m.flattenedX[0] = m.flattenedX[last]
		m.flattenedY[0] = m.flattenedY[last]
		m.truncate(1)
	}
}

// OnChange registers a listener called synchronously after every mutation
// that notifies. Listeners re-read state through the query methods.
func (m *Model) OnChange(fn func()) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// Reset drops every selection, the copy area and the last kind. Listeners
// stay registered and are not called.
func (m *Model) Reset() {
	m.truncate(0)
	m.rows.Clear()
	m.columns.Clear()
	m.allRowsSelected = false
	m.lastKind = KindNone
	m.copyArea = nil
}

// CoerceExtent converts an untyped extent to a cell count. NaN and infinite
// values become 0; finite values beyond the range of int saturate.
func CoerceExtent(v float64) int {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	}
	return int(v)
}

// ---------------------------------------------------------------------------
// Cell selections
// ---------------------------------------------------------------------------

// Select adds the region (ox, oy) + (ex, ey), grown to whole merged cells.
// Without MultiSelect it replaces the current region. notify controls whether
// listeners are called.
func (m *Model) Select(ox, oy, ex, ey int, notify bool) {
	m.push(m.resolve(ox, oy, ex, ey, Point{X: ox, Y: oy}))
	m.lastKind = KindCell
	m.changed(notify)
}

// SelectCell selects the single cell (x, y), or the merge that contains it.
func (m *Model) SelectCell(x, y int, notify bool) {
	m.Select(x, y, 0, 0, notify)
}

// ToggleSelect removes a region covering exactly the same cells as
// (ox, oy) + (ex, ey) if one exists, otherwise selects it.
func (m *Model) ToggleSelect(ox, oy, ex, ey int) {
	candidate := m.resolve(ox, oy, ex, ey, Point{X: ox, Y: oy})
	idx := slices.IndexFunc(m.regions, candidate.SameBounds)
	if idx < 0 {
		m.push(candidate)
		m.lastKind = KindCell
		m.changed(true)
		return
	}
	m.regions = slices.Delete(m.regions, idx, idx+1)
	m.flattenedX = slices.Delete(m.flattenedX, idx, idx+1)
	m.flattenedY = slices.Delete(m.flattenedY, idx, idx+1)
	m.lastKind = KindCell
	m.changed(true)
}

// Extend replaces the most recent region with one running from anchor to
// corner. With no regions it behaves like a select from anchor to corner.
func (m *Model) Extend(anchor, corner Point, notify bool) {
	r := m.resolve(anchor.X, anchor.Y, subSat(corner.X, anchor.X), subSat(corner.Y, anchor.Y), anchor)
	if n := len(m.regions); n > 0 {
		m.set(n-1, r)
	} else {
		m.push(r)
	}
	m.lastKind = KindCell
	m.changed(notify)
}

// ExtendTo moves the corner of the most recent region, keeping its anchor.
func (m *Model) ExtendTo(corner Point, notify bool) {
	last, ok := m.LastSelection()
	if !ok {
		m.SelectCell(corner.X, corner.Y, notify)
		return
	}
	m.Extend(last.Anchor, corner, notify)
}

// Clear drops every region and the column selection. Rows and the all-rows
// flag are kept when keepRows is set.
func (m *Model) Clear(keepRows bool) {
	m.truncate(0)
	m.columns.Clear()
	if !keepRows {
		m.rows.Clear()
		m.allRowsSelected = false
		m.lastKind = KindNone
	} else if m.lastKind != KindRow {
		m.lastKind = KindNone
	}
	m.notify()
}

// ClearMostRecentSelection drops the newest region, if any. Rows are
// handled as in Clear: without keepRows the row set and the all-rows flag
// are emptied too.
func (m *Model) ClearMostRecentSelection(keepRows bool) {
	if !keepRows {
		m.rows.Clear()
		m.allRowsSelected = false
	}
	m.popRegion()
	m.lastKind = KindCell
	if len(m.regions) == 0 {
		m.lastKind = KindNone
	}
	m.notify()
}

// ---------------------------------------------------------------------------
// Row and column selections
// ---------------------------------------------------------------------------

// SelectRow selects rows y1 through y2 (inclusive, either order), snapped to
// merges in the first column, and the full-width cell region over them.
func (m *Model) SelectRow(y1, y2 int) {
	y1, y2 = resolveRowRange(m.spans, m.geom, y1, y2)
	m.rows.Select(y1, y2)
	m.push(m.resolve(0, y1, max(m.columnCount()-1, 0), subSat(y2, y1), Point{X: 0, Y: y1}))
	m.lastKind = KindRow
	m.changed(true)
}

// SelectColumn selects columns x1 through x2 (inclusive, either order),
// snapped to merges in the first row, and the full-height cell region.
func (m *Model) SelectColumn(x1, x2 int) {
	x1, x2 = resolveColumnRange(m.spans, m.geom, x1, x2)
	m.columns.Select(x1, x2)
	m.push(m.resolve(x1, 0, subSat(x2, x1), max(m.rowCount()-1, 0), Point{X: x1, Y: 0}))
	m.lastKind = KindColumn
	m.changed(true)
}

// DeselectRow removes rows y1 through y2. If every row was selected through
// the all-rows flag, the flag is first turned into an explicit range.
func (m *Model) DeselectRow(y1, y2 int) {
	if m.allRowsSelected {
		m.allRowsSelected = false
		if n := m.rowCount(); n > 0 {
			m.rows.Select(0, n-1)
		}
	}
	m.rows.Deselect(y1, y2)
	m.lastKind = KindRow
	m.notify()
}

// DeselectColumn removes columns x1 through x2.
func (m *Model) DeselectColumn(x1, x2 int) {
	m.columns.Deselect(x1, x2)
	m.lastKind = KindColumn
	m.notify()
}

// ClearRowSelection empties the row set and the all-rows flag.
func (m *Model) ClearRowSelection() {
	m.rows.Clear()
	m.allRowsSelected = false
	m.lastKind = KindRow
	m.notify()
}

// ClearColumnSelection empties the column set.
func (m *Model) ClearColumnSelection() {
	m.columns.Clear()
	m.lastKind = KindColumn
	m.notify()
}

// ClearMostRecentRowSelection drops the newest region and the rows it spans
// from the row set.
func (m *Model) ClearMostRecentRowSelection() {
	if r, ok := m.popRegion(); ok {
		lo, hi := r.Bounds()
		m.rows.Deselect(lo.Y, hi.Y)
	}
	m.allRowsSelected = false
	m.lastKind = KindRow
	m.notify()
}

// ClearMostRecentColumnSelection drops the newest region and the columns it
// spans from the column set.
func (m *Model) ClearMostRecentColumnSelection() {
	if r, ok := m.popRegion(); ok {
		lo, hi := r.Bounds()
		m.columns.Deselect(lo.X, hi.X)
	}
	m.lastKind = KindColumn
	m.notify()
}

// SetAllRowsSelected sets the all-rows flag. Turning it on also selects the
// whole grid as a cell region.
func (m *Model) SetAllRowsSelected(all bool) {
	m.allRowsSelected = all
	if !all {
		return
	}
	m.push(m.resolve(0, 0, max(m.columnCount()-1, 0), max(m.rowCount()-1, 0), Point{}))
	m.lastKind = KindRow
	m.changed(true)
}

// SelectAllRows clears everything and selects every row.
func (m *Model) SelectAllRows() {
	m.truncate(0)
	m.columns.Clear()
	m.rows.Clear()
	m.SetAllRowsSelected(true)
}

// ---------------------------------------------------------------------------
// Copy area
// ---------------------------------------------------------------------------

// SetCopyArea snapshots the most recent region as the copy area.
func (m *Model) SetCopyArea() {
	if last, ok := m.LastSelection(); ok {
		m.copyArea = &last
	}
}

// ClearCopyArea forgets the copy area.
func (m *Model) ClearCopyArea() { m.copyArea = nil }

// CopyArea returns the region last marked for copying.
func (m *Model) CopyArea() (Region, bool) {
	if m.copyArea == nil {
		return Region{}, false
	}
	return *m.copyArea, true
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (m *Model) resolve(ox, oy, ex, ey int, anchor Point) Region {
	ox, oy, ex, ey = ResolveSpans(m.spans, m.geom, ox, oy, ex, ey)
	return NewRegion(ox, oy, ex, ey, anchor)
}

// push appends r, or overwrites slot 0 when multi-select is off.
func (m *Model) push(r Region) {
	if !m.opts.MultiSelect && len(m.regions) > 0 {
		m.set(0, r)
		m.truncate(1)
		return
	}
	m.regions = append(m.regions, r)
	m.flattenedX = append(m.flattenedX, r.flattenX())
	m.flattenedY = append(m.flattenedY, r.flattenY())
}

func (m *Model) set(i int, r Region) {
	m.regions[i] = r
	m.flattenedX[i] = r.flattenX()
	m.flattenedY[i] = r.flattenY()
}

func (m *Model) truncate(n int) {
	m.regions = m.regions[:n]
	m.flattenedX = m.flattenedX[:n]
	m.flattenedY = m.flattenedY[:n]
}

func (m *Model) popRegion() (Region, bool) {
	n := len(m.regions)
	if n == 0 {
		return Region{}, false
	}
	r := m.regions[n-1]
	m.truncate(n - 1)
	return r, true
}

// changed runs the row/column projection for cell mutations, then notifies.
func (m *Model) changed(notify bool) {
	m.syncFromCells()
	if notify {
		m.notify()
	}
}

func (m *Model) notify() {
	for _, fn := range m.listeners {
		fn()
	}
}

func (m *Model) rowCount() int {
	if m.geom == nil {
		return 0
	}
	return m.geom.RowCount()
}

func (m *Model) columnCount() int {
	if m.geom == nil {
		return 0
	}
	return m.geom.ColumnCount()
}
