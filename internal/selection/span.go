package selection

import "github.com/rs/zerolog/log"

// SpanProvider answers merged-cell questions for the grid. Spans are
// reported at the primary (top-left) cell of a merge as the number of extra
// rows or columns it covers; every other cell of the merge is a
// continuation. Cells outside any merge report 0 and false.
type SpanProvider interface {
	RowSpan(x, y int) int
	ColSpan(x, y int) int
	IsSpanContinuation(x, y int) bool
}

// NoSpans is a SpanProvider for grids without merged cells.
type NoSpans struct{}

func (NoSpans) RowSpan(int, int) int             { return 0 }
func (NoSpans) ColSpan(int, int) int             { return 0 }
func (NoSpans) IsSpanContinuation(int, int) bool { return false }

// maxSpanPasses bounds the fixed-point loop in ResolveSpans. Each pass that
// changes the rectangle grows it, so a well-formed provider converges long
// before this.
const maxSpanPasses = 256

// ResolveSpans grows the rectangle (ox, oy) + (ex, ey) until no merged cell
// straddles its edges. The result keeps the caller's orientation: if the
// input extent was negative on an axis, so is the output.
//
// Merges only exist inside geom, so edges are only examined where they
// cross the grid; parts of the rectangle outside it are left alone. A nil
// geom is a 0x0 grid and leaves every rectangle unchanged.
func ResolveSpans(sp SpanProvider, geom Geometry, ox, oy, ex, ey int) (int, int, int, int) {
	if sp == nil || geom == nil {
		return ox, oy, ex, ey
	}
	if _, ok := sp.(NoSpans); ok {
		return ox, oy, ex, ey
	}
	cols, rows := geom.ColumnCount(), geom.RowCount()
	if cols <= 0 || rows <= 0 {
		return ox, oy, ex, ey
	}
	for pass := 0; pass < maxSpanPasses; pass++ {
		nox, noy, nex, ney, moved := resolvePass(sp, cols, rows, ox, oy, ex, ey)
		if !moved {
			return ox, oy, ex, ey
		}
		ox, oy, ex, ey = nox, noy, nex, ney
	}
	log.Error().
		Int("ox", ox).Int("oy", oy).Int("ex", ex).Int("ey", ey).
		Int("passes", maxSpanPasses).
		Msg("selection: span resolution did not converge")
	return ox, oy, ex, ey
}

// resolvePass runs one top/bottom/left/right sweep over the edges that lie
// inside a cols x rows grid. moved reports whether any edge changed.
func resolvePass(sp SpanProvider, cols, rows, ox, oy, ex, ey int) (int, int, int, int, bool) {
	x1, x2 := ox, addSat(ox, ex)
	swapX := x1 > x2
	if swapX {
		x1, x2 = x2, x1
	}
	y1, y2 := oy, addSat(oy, ey)
	swapY := y1 > y2
	if swapY {
		y1, y2 = y2, y1
	}
	inCols := func(x int) bool { return x >= 0 && x < cols }
	inRows := func(y int) bool { return y >= 0 && y < rows }
	ox1, oy1, ox2, oy2 := x1, y1, x2, y2

	// Columns of the rectangle that exist in the grid.
	cx1, cx2 := max(x1, 0), min(x2, cols-1)

	// Top edge.
	if inRows(y1) {
		for x := cx1; x <= cx2; x++ {
			if sp.IsSpanContinuation(x, y1) {
				if _, py := primaryOf(sp, x, y1); py < y1 {
					y1 = py
				}
			}
		}
	}

	// Bottom edge.
	if inRows(y2) {
		for x := cx1; x <= cx2; x++ {
			px, py := primaryOf(sp, x, y2)
			if bottom := addSat(py, sp.RowSpan(px, py)); bottom > y2 {
				y2 = bottom
			}
		}
	}

	// Rows of the rectangle that exist in the grid, after the vertical sweep.
	cy1, cy2 := max(y1, 0), min(y2, rows-1)

	// Left edge.
	if inCols(x1) {
		for y := cy1; y <= cy2; y++ {
			if sp.IsSpanContinuation(x1, y) {
				if px, _ := primaryOf(sp, x1, y); px < x1 {
					x1 = px
				}
			}
		}
	}

	// Right edge.
	if inCols(x2) {
		for y := cy1; y <= cy2; y++ {
			px, py := primaryOf(sp, x2, y)
			if right := addSat(px, sp.ColSpan(px, py)); right > x2 {
				x2 = right
			}
		}
	}

	if x1 == ox1 && x2 == ox2 && y1 == oy1 && y2 == oy2 {
		return ox, oy, ex, ey, false
	}
	if swapX {
		x1, x2 = x2, x1
	}
	if swapY {
		y1, y2 = y2, y1
	}
	return x1, y1, subSat(x2, x1), subSat(y2, y1), true
}

// primaryOf returns the primary cell of the merge covering (x, y), or (x, y)
// itself when the cell is not a continuation or no owner can be found.
//
// Scanning each row upward from y, the first non-continuation cell to the
// left of x is the only cell in that row that can own (x, y). Once a row has
// a non-continuation cell at column x the owner cannot lie further up.
func primaryOf(sp SpanProvider, x, y int) (int, int) {
	if !sp.IsSpanContinuation(x, y) {
		return x, y
	}
	for py := y; py >= 0; py-- {
		for px := x; px >= 0; px-- {
			if sp.IsSpanContinuation(px, py) {
				continue
			}
			if px+sp.ColSpan(px, py) >= x && py+sp.RowSpan(px, py) >= y {
				return px, py
			}
			break
		}
		if py < y && !sp.IsSpanContinuation(x, py) {
			break
		}
	}
	return x, y
}

// resolveRowRange snaps [y1, y2] to merge boundaries along column 0,
// keeping the direction of the input. Ends outside the grid are kept as-is.
func resolveRowRange(sp SpanProvider, geom Geometry, y1, y2 int) (int, int) {
	if sp == nil || geom == nil || geom.ColumnCount() <= 0 {
		return y1, y2
	}
	rows := geom.RowCount()
	top, bottom := y1, y2
	if top > bottom {
		top, bottom = bottom, top
	}
	if top >= 0 && top < rows {
		_, top = primaryOf(sp, 0, top)
	}
	if bottom >= 0 && bottom < rows {
		px, py := primaryOf(sp, 0, bottom)
		bottom = max(bottom, addSat(py, sp.RowSpan(px, py)))
	}
	if y1 > y2 {
		return bottom, top
	}
	return top, bottom
}

// resolveColumnRange snaps [x1, x2] to merge boundaries along row 0.
func resolveColumnRange(sp SpanProvider, geom Geometry, x1, x2 int) (int, int) {
	if sp == nil || geom == nil || geom.RowCount() <= 0 {
		return x1, x2
	}
	cols := geom.ColumnCount()
	left, right := x1, x2
	if left > right {
		left, right = right, left
	}
	if left >= 0 && left < cols {
		left, _ = primaryOf(sp, left, 0)
	}
	if right >= 0 && right < cols {
		px, py := primaryOf(sp, right, 0)
		right = max(right, addSat(px, sp.ColSpan(px, py)))
	}
	if x1 > x2 {
		return right, left
	}
	return left, right
}
