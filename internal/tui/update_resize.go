package tui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/gridsel/internal/constants"
)

const (
	headerRows = 1
	statusRows = 2 // separator + status bar
)

// layout holds the screen rectangles of the viewer.
type layout struct {
	corner    image.Rectangle
	colHeader image.Rectangle
	rowHeader image.Rectangle
	grid      image.Rectangle
	status    image.Rectangle
}

func generateLayout(width, height int) layout {
	gutter := min(constants.RowHeaderWidth, width)
	gridBottom := max(height-statusRows, headerRows)
	return layout{
		corner:    image.Rect(0, 0, gutter, headerRows),
		colHeader: image.Rect(gutter, 0, width, headerRows),
		rowHeader: image.Rect(0, headerRows, gutter, gridBottom),
		grid:      image.Rect(gutter, headerRows, width, gridBottom),
		status:    image.Rect(0, gridBottom, width, height),
	}
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height)
	m.help.SetWidth(m.width)
	m.scrollToCursor()
}

// visibleRows is the number of sheet rows that fit in the grid.
func (m Model) visibleRows() int {
	return m.layout.grid.Dy()
}

// colSlot is one rendered column: its sheet index, its offset from the grid's
// left edge and its width without the separator.
type colSlot struct {
	x, start, width int
}

// visibleColumns lays out columns from colOff until the grid is full. The
// first column is always included, clipped if it does not fit.
func (m Model) visibleColumns() []colSlot {
	avail := m.layout.grid.Dx()
	var slots []colSlot
	pos := 0
	for x := m.colOff; x < len(m.colWidths); x++ {
		w := m.colWidths[x]
		if pos+w+1 > avail && len(slots) > 0 {
			break
		}
		slots = append(slots, colSlot{x: x, start: pos, width: w})
		pos += w + 1
	}
	return slots
}

// scrollToCursor moves the viewport so the cursor cell is on screen.
func (m *Model) scrollToCursor() {
	if h := m.visibleRows(); h > 0 {
		if m.cursor.Y < m.rowOff {
			m.rowOff = m.cursor.Y
		} else if m.cursor.Y >= m.rowOff+h {
			m.rowOff = m.cursor.Y - h + 1
		}
	}
	if m.cursor.X < m.colOff {
		m.colOff = m.cursor.X
	}
	for m.colOff < m.cursor.X {
		slots := m.visibleColumns()
		if len(slots) == 0 || slots[len(slots)-1].x >= m.cursor.X {
			break
		}
		m.colOff++
	}
	m.rowOff, m.colOff = max(m.rowOff, 0), max(m.colOff, 0)
}

// scrollBy moves the viewport without touching the cursor.
func (m *Model) scrollBy(rows, cols int) {
	maxRow := max(m.sheet.RowCount()-m.visibleRows(), 0)
	m.rowOff = min(max(m.rowOff+rows, 0), maxRow)
	m.colOff = min(max(m.colOff+cols, 0), max(len(m.colWidths)-1, 0))
}
