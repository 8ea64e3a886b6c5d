package selection

// ProjectRowsFromCells selects, in the row set, every row covered by a cell
// region, shifted by offset. Unless keep is set the row set and the all-rows
// flag are cleared first.
func (m *Model) ProjectRowsFromCells(offset int, keep bool) {
	if !keep {
		m.rows.Clear()
		m.allRowsSelected = false
	}
	for _, r := range m.regions {
		lo, hi := r.Bounds()
		m.rows.Select(addSat(lo.Y, offset), addSat(hi.Y, offset))
	}
}

// ProjectColumnsFromCells replaces the column set with every column covered
// by a cell region, shifted by offset.
func (m *Model) ProjectColumnsFromCells(offset int) {
	m.columns.Clear()
	for _, r := range m.regions {
		lo, hi := r.Bounds()
		m.columns.Select(addSat(lo.X, offset), addSat(hi.X, offset))
	}
}

// syncFromCells applies the auto-select options after a cell mutation.
func (m *Model) syncFromCells() {
	if m.opts.AutoSelectRows && !m.opts.CheckboxOnlyRowSelections {
		if m.opts.SingleRowSelectionMode {
			m.rows.Clear()
			m.allRowsSelected = false
			if last, ok := m.LastSelection(); ok {
				y := last.Corner().Y
				m.rows.Select(y, y)
			}
		} else {
			m.ProjectRowsFromCells(0, true)
		}
	}
	if m.opts.AutoSelectColumns {
		m.ProjectColumnsFromCells(0)
	}
}
