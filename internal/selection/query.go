package selection

import (
	"slices"

	"github.com/xonecas/gridsel/internal/intervalset"
)

// IsSelected reports whether (x, y) is highlighted by a column, a row or a
// cell region.
func (m *Model) IsSelected(x, y int) bool {
	return m.IsColumnSelected(x) || m.IsRowSelected(y) || m.IsCellSelected(x, y)
}

// IsCellSelected reports whether a cell region contains (x, y).
func (m *Model) IsCellSelected(x, y int) bool {
	return anyContains(m.regions, x, y)
}

// IsCellSelectedInRow reports whether any cell region touches row y.
func (m *Model) IsCellSelectedInRow(y int) bool {
	return anyContains(m.flattenedX, 0, y)
}

// IsCellSelectedInColumn reports whether any cell region touches column x.
func (m *Model) IsCellSelectedInColumn(x int) bool {
	return anyContains(m.flattenedY, x, 0)
}

// IsInCurrentSelectionRectangle reports whether the most recent region
// contains (x, y).
func (m *Model) IsInCurrentSelectionRectangle(x, y int) bool {
	last, ok := m.LastSelection()
	return ok && last.Contains(x, y)
}

// IsRowSelected reports whether row y is in the row set.
func (m *Model) IsRowSelected(y int) bool {
	return m.allRowsSelected || m.rows.IsSelected(y)
}

// IsColumnSelected reports whether column x is in the column set.
func (m *Model) IsColumnSelected(x int) bool {
	return m.columns.IsSelected(x)
}

// IsRectangleSelected reports whether a region covers exactly the cells of
// (ox, oy) + (ex, ey).
func (m *Model) IsRectangleSelected(ox, oy, ex, ey int) bool {
	r := NewRegion(ox, oy, ex, ey, Point{X: ox, Y: oy})
	return slices.ContainsFunc(m.regions, r.SameBounds)
}

// SelectedRows returns the selected row ranges in ascending order.
func (m *Model) SelectedRows() []intervalset.Range {
	if m.allRowsSelected {
		if n := m.rowCount(); n > 0 {
			return []intervalset.Range{{Start: 0, End: n - 1}}
		}
		return nil
	}
	return m.rows.Selections()
}

// SelectedColumns returns the selected column ranges in ascending order.
func (m *Model) SelectedColumns() []intervalset.Range {
	return m.columns.Selections()
}

// SelectedRowIndexes expands SelectedRows into individual row indexes.
// Rows outside the grid are left out.
func (m *Model) SelectedRowIndexes() []int {
	n := m.rowCount()
	var out []int
	for _, r := range m.SelectedRows() {
		for y := max(r.Start, 0); y <= min(r.End, n-1); y++ {
			out = append(out, y)
		}
	}
	return out
}

// HasSelections reports whether any cell region exists.
func (m *Model) HasSelections() bool { return len(m.regions) > 0 }

// HasRowSelections reports whether any row is selected.
func (m *Model) HasRowSelections() bool {
	return m.allRowsSelected || !m.rows.IsEmpty()
}

// HasColumnSelections reports whether any column is selected.
func (m *Model) HasColumnSelections() bool { return !m.columns.IsEmpty() }

// IsColumnOrRowSelected reports whether either header set is non-empty.
func (m *Model) IsColumnOrRowSelected() bool {
	return m.HasColumnSelections() || m.HasRowSelections()
}

// AreAllRowsSelected reports the all-rows flag.
func (m *Model) AreAllRowsSelected() bool { return m.allRowsSelected }

// Regions returns a copy of the cell regions, oldest first.
func (m *Model) Regions() []Region { return slices.Clone(m.regions) }

// LastSelection returns the most recent region.
func (m *Model) LastSelection() (Region, bool) {
	if len(m.regions) == 0 {
		return Region{}, false
	}
	return m.regions[len(m.regions)-1], true
}

// LastKind reports what the most recent mutation selected.
func (m *Model) LastKind() Kind { return m.lastKind }

// IsAnchorCell reports whether (x, y) is the anchor of the most recent
// region.
func (m *Model) IsAnchorCell(x, y int) bool {
	last, ok := m.LastSelection()
	return ok && last.Anchor == Point{X: x, Y: y}
}

// FlattenedRows returns the sorted, de-duplicated rows of the grid touched
// by any cell region.
func (m *Model) FlattenedRows() []int {
	n := m.rowCount()
	set := intervalset.New()
	for _, r := range m.flattenedX {
		lo, hi := r.Bounds()
		top, bottom := max(lo.Y, 0), min(hi.Y, n-1)
		if top <= bottom {
			set.Select(top, bottom)
		}
	}
	return set.Indexes()
}

func anyContains(regions []Region, x, y int) bool {
	for _, r := range regions {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
