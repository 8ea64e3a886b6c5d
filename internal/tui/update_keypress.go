package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/gridsel/internal/selection"
)

// handleKeyPress processes key events.
func (m Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, k.Up):
		m.moveBy(0, -1)
	case key.Matches(msg, k.Down):
		m.moveBy(0, 1)
	case key.Matches(msg, k.Left):
		m.moveBy(-1, 0)
	case key.Matches(msg, k.Right):
		m.moveBy(1, 0)
	case key.Matches(msg, k.PageUp):
		m.moveBy(0, -max(m.visibleRows(), 1))
	case key.Matches(msg, k.PageDn):
		m.moveBy(0, max(m.visibleRows(), 1))
	case key.Matches(msg, k.Home):
		m.moveTo(selection.Point{X: 0, Y: m.cursor.Y})
	case key.Matches(msg, k.End):
		m.moveTo(selection.Point{X: m.sheet.ColumnCount() - 1, Y: m.cursor.Y})

	case key.Matches(msg, k.ExtendUp):
		m.extendBy(0, -1)
	case key.Matches(msg, k.ExtendDown):
		m.extendBy(0, 1)
	case key.Matches(msg, k.ExtendLeft):
		m.extendBy(-1, 0)
	case key.Matches(msg, k.ExtendRight):
		m.extendBy(1, 0)

	case key.Matches(msg, k.SelectAll):
		m.sel.ClearCopyArea()
		m.sel.SelectAllRows()
	case key.Matches(msg, k.PopRegion):
		m.sel.ClearMostRecentSelection(m.sel.Options().CheckboxOnlyRowSelections)
	case key.Matches(msg, k.Clear):
		m.sel.ClearCopyArea()
		m.sel.Clear(false)
		m.help.ShowAll = false
		m.status = ""
	case key.Matches(msg, k.Copy):
		cmd := m.copySelection()
		return m, cmd
	}
	return m, nil
}

// moveBy moves the cursor and makes its cell the only selection.
func (m *Model) moveBy(dx, dy int) {
	m.moveTo(m.step(m.cursor, dx, dy))
}

func (m *Model) moveTo(p selection.Point) {
	if m.empty() {
		return
	}
	p = m.clamp(p)
	m.sel.ClearCopyArea()
	m.sel.Clear(m.sel.Options().CheckboxOnlyRowSelections)
	m.sel.SelectCell(p.X, p.Y, true)
	m.cursor, m.anchor = p, p
	m.scrollToCursor()
}

// extendBy moves the cursor and stretches the current region to it.
func (m *Model) extendBy(dx, dy int) {
	if m.empty() {
		return
	}
	m.cursor = m.clamp(m.step(m.cursor, dx, dy))
	m.sel.ClearCopyArea()
	m.sel.Extend(m.anchor, m.cursor, true)
	m.scrollToCursor()
}

// step moves from p by (dx, dy), leaving a merged cell from its far edge.
func (m *Model) step(p selection.Point, dx, dy int) selection.Point {
	if mg, ok := m.sheet.MergeAt(p.X, p.Y); ok {
		switch {
		case dx > 0:
			p.X = mg.X2
		case dx < 0:
			p.X = mg.X1
		}
		switch {
		case dy > 0:
			p.Y = mg.Y2
		case dy < 0:
			p.Y = mg.Y1
		}
	}
	return m.clamp(p.Add(selection.Point{X: dx, Y: dy}))
}

func (m *Model) clamp(p selection.Point) selection.Point {
	p.X = min(max(p.X, 0), max(m.sheet.ColumnCount()-1, 0))
	p.Y = min(max(p.Y, 0), max(m.sheet.RowCount()-1, 0))
	return p
}

func (m *Model) empty() bool {
	return m.sheet.RowCount() == 0 || m.sheet.ColumnCount() == 0
}
