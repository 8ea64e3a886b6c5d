package tui

import (
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/gridsel/internal/constants"
	"github.com/xonecas/gridsel/internal/selection"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events.
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < constants.MouseThrottle {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling: hit-test against the layout rects, then dispatch by zone.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)

	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return m, nil
		}
		shift, ctrl := ev.Mod.Contains(tea.ModShift), ev.Mod.Contains(tea.ModCtrl)
		switch {
		case inRect(x, y, m.layout.corner):
			m.clickCorner()
		case inRect(x, y, m.layout.colHeader):
			if col, ok := m.columnAt(x); ok {
				m.clickColumnHeader(col, shift, ctrl)
			}
		case inRect(x, y, m.layout.rowHeader):
			if row, ok := m.rowAt(y); ok {
				m.clickRowHeader(row, shift, ctrl)
			}
		case inRect(x, y, m.layout.grid):
			if p, ok := m.cellAt(x, y); ok {
				m.clickCell(p, shift, ctrl)
			}
		}

	case tea.MouseMotionMsg:
		if m.dragging {
			m.dragTo(m.clampedCellAt(x, y))
		}

	case tea.MouseReleaseMsg:
		m.dragging = false

	case tea.MouseWheelMsg:
		m.handleWheel(ev)
	}
	return m, nil
}

func (m *Model) clickCell(p selection.Point, shift, ctrl bool) {
	m.sel.ClearCopyArea()
	switch {
	case shift:
		m.sel.Extend(m.anchor, p, true)
		m.dragging = true
	case ctrl:
		m.sel.ToggleSelect(p.X, p.Y, 0, 0)
		m.anchor = p
	default:
		m.sel.Clear(m.sel.Options().CheckboxOnlyRowSelections)
		m.sel.SelectCell(p.X, p.Y, true)
		m.anchor = p
		m.dragging = true
	}
	m.cursor = p
}

// dragTo extends the current region to p while the button is held.
func (m *Model) dragTo(p selection.Point) {
	if p == m.cursor {
		return
	}
	m.sel.Extend(m.anchor, p, true)
	m.cursor = p
	m.scrollToCursor()
}

// clickColumnHeader toggles a column. ctrl adds to or removes from the
// existing selection; shift selects the range from the previous header click.
func (m *Model) clickColumnHeader(col int, shift, ctrl bool) {
	m.sel.ClearCopyArea()
	switch {
	case shift:
		if !ctrl {
			m.sel.Clear(false)
		}
		m.sel.SelectColumn(m.headerAnchor, col)
		m.cursor = selection.Point{X: col, Y: m.cursor.Y}
		return
	case ctrl:
		if m.sel.IsColumnSelected(col) {
			m.deselectColumn(col)
		} else {
			m.sel.SelectColumn(col, col)
		}
	default:
		was := m.sel.IsColumnSelected(col)
		m.sel.Clear(false)
		if !was {
			m.sel.SelectColumn(col, col)
		}
	}
	m.headerAnchor = col
	m.cursor = selection.Point{X: col, Y: m.cursor.Y}
}

// clickRowHeader selects a row. ctrl adds or removes it; shift selects the
// range from the previous header click.
func (m *Model) clickRowHeader(row int, shift, ctrl bool) {
	m.sel.ClearCopyArea()
	switch {
	case shift:
		if !ctrl {
			m.sel.Clear(false)
		}
		m.sel.SelectRow(m.headerAnchor, row)
		m.cursor = selection.Point{X: m.cursor.X, Y: row}
		return
	case ctrl:
		if m.sel.IsRowSelected(row) {
			m.deselectRow(row)
		} else {
			m.sel.SelectRow(row, row)
		}
	default:
		m.sel.Clear(false)
		m.sel.SelectRow(row, row)
	}
	m.headerAnchor = row
	m.cursor = selection.Point{X: m.cursor.X, Y: row}
}

// clickCorner toggles every row.
func (m *Model) clickCorner() {
	m.sel.ClearCopyArea()
	if m.sel.AreAllRowsSelected() {
		m.sel.Clear(false)
		return
	}
	m.sel.SelectAllRows()
}

// deselectColumn removes col from the column set together with the
// full-height region a header click created for it.
func (m *Model) deselectColumn(col int) {
	ox, oy, ex, ey := selection.ResolveSpans(m.sheet, m.sheet, col, 0, 0, max(m.sheet.RowCount()-1, 0))
	if m.hasRegion(selection.NewRegion(ox, oy, ex, ey, selection.Point{})) {
		m.sel.ToggleSelect(ox, oy, ex, ey)
	}
	m.sel.DeselectColumn(col, col)
}

// deselectRow removes row from the row set together with the full-width
// region a header click created for it.
func (m *Model) deselectRow(row int) {
	ox, oy, ex, ey := selection.ResolveSpans(m.sheet, m.sheet, 0, row, max(m.sheet.ColumnCount()-1, 0), 0)
	if m.hasRegion(selection.NewRegion(ox, oy, ex, ey, selection.Point{})) {
		m.sel.ToggleSelect(ox, oy, ex, ey)
	}
	m.sel.DeselectRow(row, row)
}

func (m *Model) hasRegion(r selection.Region) bool {
	return slices.ContainsFunc(m.sel.Regions(), r.SameBounds)
}

func (m *Model) handleWheel(ev tea.MouseWheelMsg) {
	const step = 3
	switch ev.Button {
	case tea.MouseWheelUp:
		if ev.Mod.Contains(tea.ModShift) {
			m.scrollBy(0, -1)
		} else {
			m.scrollBy(-step, 0)
		}
	case tea.MouseWheelDown:
		if ev.Mod.Contains(tea.ModShift) {
			m.scrollBy(0, 1)
		} else {
			m.scrollBy(step, 0)
		}
	case tea.MouseWheelLeft:
		m.scrollBy(0, -1)
	case tea.MouseWheelRight:
		m.scrollBy(0, 1)
	}
}

// ---------------------------------------------------------------------------
// Hit testing
// ---------------------------------------------------------------------------

// columnAt maps a screen x to a sheet column.
func (m Model) columnAt(x int) (int, bool) {
	rel := x - m.layout.grid.Min.X
	for _, s := range m.visibleColumns() {
		if rel >= s.start && rel < s.start+s.width+1 {
			return s.x, true
		}
	}
	return 0, false
}

// rowAt maps a screen y to a sheet row.
func (m Model) rowAt(y int) (int, bool) {
	row := m.rowOff + y - m.layout.grid.Min.Y
	if row < 0 || row >= m.sheet.RowCount() {
		return 0, false
	}
	return row, true
}

// cellAt maps a screen position inside the grid to a sheet cell.
func (m Model) cellAt(x, y int) (selection.Point, bool) {
	col, ok := m.columnAt(x)
	if !ok {
		return selection.Point{}, false
	}
	row, ok := m.rowAt(y)
	if !ok {
		return selection.Point{}, false
	}
	return selection.Point{X: col, Y: row}, true
}

// clampedCellAt is cellAt for drags: positions outside the grid snap to the
// nearest cell one step beyond the viewport, so dragging past an edge
// scrolls.
func (m Model) clampedCellAt(x, y int) selection.Point {
	g := m.layout.grid
	row := m.rowOff + y - g.Min.Y
	if y >= g.Max.Y {
		row = m.rowOff + m.visibleRows()
	}
	row = min(max(row, 0), max(m.sheet.RowCount()-1, 0))

	col := m.cursor.X
	slots := m.visibleColumns()
	switch {
	case x < g.Min.X:
		col = m.colOff - 1
	case len(slots) > 0:
		col = slots[len(slots)-1].x + 1
		if c, ok := m.columnAt(x); ok {
			col = c
		}
	}
	col = min(max(col, 0), max(m.sheet.ColumnCount()-1, 0))
	return selection.Point{X: col, Y: row}
}
