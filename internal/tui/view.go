package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/gridsel/internal/sheet"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	lines := m.renderGrid()
	if m.help.ShowAll {
		lines = m.overlayHelp(lines)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	m.renderStatusBar(&b)
	return b.String()
}

// renderGrid returns the column header followed by one line per visible
// row. Every line is exactly m.width cells wide.
func (m Model) renderGrid() []string {
	slots := m.visibleColumns()
	lines := make([]string, 0, headerRows+m.visibleRows())
	lines = append(lines, m.renderColumnHeader(slots))
	for i := range m.visibleRows() {
		y := m.rowOff + i
		if y >= m.sheet.RowCount() {
			lines = append(lines, m.fill(""))
			continue
		}
		lines = append(lines, m.renderRow(y, slots))
	}
	return lines
}

func (m Model) renderColumnHeader(slots []colSlot) string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(strings.Repeat(" ", m.layout.corner.Dx())))
	for _, s := range slots {
		b.WriteString(m.columnHeaderStyle(s.x).Render(pad(sheet.ColumnName(s.x), s.width)))
		b.WriteString(m.styles.Border.Render("│"))
	}
	return m.fill(b.String())
}

func (m Model) renderRow(y int, slots []colSlot) string {
	var b strings.Builder
	gutter := m.layout.rowHeader.Dx()
	num := fmt.Sprintf("%*d ", max(gutter-1, 0), y+1)
	b.WriteString(m.rowHeaderStyle(y).Render(ansi.Truncate(num, gutter, "")))

	for i := 0; i < len(slots); i++ {
		x, width := slots[i].x, slots[i].width
		vx, vy := x, y
		if mg, ok := m.sheet.MergeAt(x, y); ok {
			for i+1 < len(slots) && slots[i+1].x <= mg.X2 {
				i++
				width += slots[i].width + 1
			}
			vx, vy = mg.X1, mg.Y1
		}
		b.WriteString(m.renderCell(x, y, vx, vy, width))
		b.WriteString(m.styles.Border.Render("│"))
	}
	return m.fill(b.String())
}

// renderCell draws the block starting at (x, y) whose value and state come
// from (vx, vy), the primary cell when the block is part of a merge. Rows
// below a merge's first row are drawn blank.
func (m Model) renderCell(x, y, vx, vy, width int) string {
	var v string
	if vy == y {
		v = cellText.Replace(m.sheet.Value(vx, vy))
	}
	st := m.cellStyle(v, m.sel.IsSelected(vx, vy))
	if m.isCursor(x, y) {
		st = m.styles.Cursor.Inherit(st)
	}
	if area, ok := m.sel.CopyArea(); ok && area.Contains(vx, vy) {
		st = m.styles.CopyArea.Inherit(st)
	}
	return st.Render(pad(v, width))
}

// isCursor reports whether (x, y) shows the cursor, which covers the whole
// merge the cursor sits in.
func (m Model) isCursor(x, y int) bool {
	if !m.sel.HasSelections() {
		return false
	}
	if mg, ok := m.sheet.MergeAt(m.cursor.X, m.cursor.Y); ok {
		return mg.Contains(x, y)
	}
	return m.cursor.X == x && m.cursor.Y == y
}

func (m Model) columnHeaderStyle(x int) lipgloss.Style {
	switch {
	case m.sel.IsColumnSelected(x):
		return m.styles.HeaderSelected
	case m.sel.IsCellSelectedInColumn(x):
		return m.styles.HeaderTouched
	}
	return m.styles.Header
}

func (m Model) rowHeaderStyle(y int) lipgloss.Style {
	switch {
	case m.sel.IsRowSelected(y):
		return m.styles.HeaderSelected
	case m.sel.IsCellSelectedInRow(y):
		return m.styles.HeaderTouched
	}
	return m.styles.Header
}

// overlayHelp replaces the bottom grid lines with the full key help.
func (m Model) overlayHelp(lines []string) []string {
	full := strings.Split(m.help.View(m.keys), "\n")
	start := len(lines) - len(full)
	if start < headerRows {
		return lines
	}
	for i, l := range full {
		lines[start+i] = m.fill(m.styles.BgFill.Render(" ") + l)
	}
	return lines
}

// fill truncates or pads a rendered line to the full width.
func (m Model) fill(line string) string {
	line = ansi.Truncate(line, m.width, "")
	if gap := m.width - ansi.StringWidth(line); gap > 0 {
		line += m.styles.BgFill.Render(strings.Repeat(" ", gap))
	}
	return line
}

var cellText = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// pad truncates s to w cells, marking the cut with an ellipsis, and pads it
// with spaces to exactly w.
func pad(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	if gap := w - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
