package selection

import "math"

// Point is a cell coordinate: X is the column, Y is the row.
type Point struct {
	X, Y int
}

// Add returns p translated by d. Coordinates saturate at the ends of int.
func (p Point) Add(d Point) Point { return Point{X: addSat(p.X, d.X), Y: addSat(p.Y, d.Y)} }

// Region is one rectangular cell selection. Extent may be negative when the
// region was drawn right-to-left or bottom-to-top; bounds are inclusive.
type Region struct {
	Origin Point
	Extent Point
	// Anchor is the cell the gesture started on, before span expansion.
	Anchor Point
}

// NewRegion builds a region from origin/extent coordinates.
func NewRegion(ox, oy, ex, ey int, anchor Point) Region {
	return Region{
		Origin: Point{X: ox, Y: oy},
		Extent: Point{X: ex, Y: ey},
		Anchor: anchor,
	}
}

// Corner is the cell diagonally opposite the origin.
func (r Region) Corner() Point { return r.Origin.Add(r.Extent) }

// Focus is the end of the region away from the anchor.
func (r Region) Focus() Point {
	if r.Anchor == r.Corner() {
		return r.Origin
	}
	return r.Corner()
}

// Bounds returns the normalized top-left and bottom-right cells.
func (r Region) Bounds() (lo, hi Point) {
	c := r.Corner()
	lo = Point{X: min(r.Origin.X, c.X), Y: min(r.Origin.Y, c.Y)}
	hi = Point{X: max(r.Origin.X, c.X), Y: max(r.Origin.Y, c.Y)}
	return lo, hi
}

// Width is the number of columns covered.
func (r Region) Width() int { return addSat(absInt(r.Extent.X), 1) }

// Height is the number of rows covered.
func (r Region) Height() int { return addSat(absInt(r.Extent.Y), 1) }

// Contains reports whether (x, y) lies inside the region, edges included.
func (r Region) Contains(x, y int) bool {
	lo, hi := r.Bounds()
	return x >= lo.X && x <= hi.X && y >= lo.Y && y <= hi.Y
}

// SameBounds reports whether both regions cover the same cells,
// regardless of drawing direction or anchor.
func (r Region) SameBounds(o Region) bool {
	a1, a2 := r.Bounds()
	b1, b2 := o.Bounds()
	return a1 == b1 && a2 == b2
}

// flattenX collapses the column axis to zero width at x=0.
func (r Region) flattenX() Region {
	return Region{
		Origin: Point{X: 0, Y: r.Origin.Y},
		Extent: Point{X: 0, Y: r.Extent.Y},
		Anchor: r.Anchor,
	}
}

// flattenY collapses the row axis to zero height at y=0.
func (r Region) flattenY() Region {
	return Region{
		Origin: Point{X: r.Origin.X, Y: 0},
		Extent: Point{X: r.Extent.X, Y: 0},
		Anchor: r.Anchor,
	}
}

func absInt(a int) int {
	switch {
	case a == math.MinInt:
		return math.MaxInt
	case a < 0:
		return -a
	}
	return a
}

// addSat returns a+b clamped to [math.MinInt, math.MaxInt].
func addSat(a, b int) int {
	s := a + b
	switch {
	case b > 0 && s < a:
		return math.MaxInt
	case b < 0 && s > a:
		return math.MinInt
	}
	return s
}

// subSat returns a-b clamped to [math.MinInt, math.MaxInt].
func subSat(a, b int) int {
	if b == math.MinInt {
		if a >= 0 {
			return math.MaxInt
		}
		return a - b
	}
	return addSat(a, -b)
}
