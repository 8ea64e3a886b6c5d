package sheet

import (
	"errors"
	"strings"

	"github.com/xonecas/gridsel/internal/selection"
)

// MaxExportCells caps how many cells a single copy may serialize.
const MaxExportCells = 20_000_000

// ErrSelectionTooLarge is returned when an export would exceed MaxExportCells.
var ErrSelectionTooLarge = errors.New("selection too large to copy")

var cellEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// SelectionTSV renders the current selection of m as tab-separated text.
//
// The most recent cell region wins. Without regions the selected rows are
// exported across every column, and failing that the selected columns
// across every row. Continuation cells of a merge are written empty so the
// merged value appears once. An empty selection yields "".
func SelectionTSV(s *Sheet, m *selection.Model) (string, error) {
	if last, ok := m.LastSelection(); ok {
		lo, hi := last.Bounds()
		return s.RectTSV(lo.X, lo.Y, hi.X, hi.Y)
	}
	if rows := m.SelectedRowIndexes(); len(rows) > 0 {
		cols := make([]int, s.ColumnCount())
		for i := range cols {
			cols[i] = i
		}
		return s.matrixTSV(cols, rows)
	}
	if ranges := m.SelectedColumns(); len(ranges) > 0 {
		var n uint64
		for _, r := range ranges {
			n += span(r.Start, r.End)
			if n > MaxExportCells {
				return "", ErrSelectionTooLarge
			}
		}
		cols := make([]int, 0, n)
		for _, r := range ranges {
			cols = append(cols, indexes(r.Start, r.End)...)
		}
		rows := make([]int, s.RowCount())
		for i := range rows {
			rows[i] = i
		}
		return s.matrixTSV(cols, rows)
	}
	return "", nil
}

// RectTSV renders the inclusive rectangle (x1, y1)-(x2, y2).
func (s *Sheet) RectTSV(x1, y1, x2, y2 int) (string, error) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	w, h := span(x1, x2), span(y1, y2)
	if w > MaxExportCells || h > MaxExportCells || w*h > MaxExportCells {
		return "", ErrSelectionTooLarge
	}
	return s.matrixTSV(indexes(x1, x2), indexes(y1, y2))
}

// indexes lists lo through hi inclusive; lo <= hi.
func indexes(lo, hi int) []int {
	out := make([]int, 0, span(lo, hi))
	for i := lo; ; i++ {
		out = append(out, i)
		if i == hi {
			return out
		}
	}
}

// span counts the indexes in [lo, hi] without overflowing; lo <= hi.
func span(lo, hi int) uint64 {
	return uint64(hi) - uint64(lo) + 1
}

func (s *Sheet) matrixTSV(cols, rows []int) (string, error) {
	if len(cols) == 0 || len(rows) == 0 {
		return "", nil
	}
	if len(cols)*len(rows) > MaxExportCells {
		return "", ErrSelectionTooLarge
	}

	var b strings.Builder
	for i, y := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, x := range cols {
			if j > 0 {
				b.WriteByte('\t')
			}
			if s.IsSpanContinuation(x, y) {
				continue
			}
			b.WriteString(cellEscaper.Replace(s.Value(x, y)))
		}
	}
	return b.String(), nil
}
