// Package intervalset stores a sorted set of disjoint, inclusive integer
// ranges over one axis. It backs the independent row and column selections
// of a grid.
package intervalset

import "math"

// Range is an inclusive [Start, End] span.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indexes covered by the range, saturating at
// math.MaxInt.
func (r Range) Len() int {
	d := uint64(r.End) - uint64(r.Start)
	if d >= math.MaxInt {
		return math.MaxInt
	}
	return int(d) + 1
}

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// Set is a sorted list of disjoint, non-adjacent ranges.
// The zero value is an empty set ready to use.
type Set struct {
	ranges []Range
}

// New returns an empty set.
func New() *Set { return &Set{} }

// Select adds [a, b] to the set. Order of a and b does not matter.
// Overlapping and adjacent ranges are merged.
func (s *Set) Select(a, b int) {
	if a > b {
		a, b = b, a
	}

	// Ranges touching [a, b] end at a-1 or later and start at b+1 or
	// earlier. At the ends of int there is no neighbor to touch.
	before, after := a, b
	if a > math.MinInt {
		before = a - 1
	}
	if b < math.MaxInt {
		after = b + 1
	}

	lo := s.search(before)
	hi := lo
	for hi < len(s.ranges) && s.ranges[hi].Start <= after {
		if s.ranges[hi].Start < a {
			a = s.ranges[hi].Start
		}
		if s.ranges[hi].End > b {
			b = s.ranges[hi].End
		}
		hi++
	}

	merged := Range{Start: a, End: b}
	switch {
	case hi == lo:
		s.ranges = append(s.ranges, Range{})
		copy(s.ranges[lo+1:], s.ranges[lo:])
		s.ranges[lo] = merged
	default:
		s.ranges[lo] = merged
		s.ranges = append(s.ranges[:lo+1], s.ranges[hi:]...)
	}
}

// Deselect removes [a, b] from the set, splitting ranges as needed.
func (s *Set) Deselect(a, b int) {
	if a > b {
		a, b = b, a
	}

	lo := s.search(a)
	if lo == len(s.ranges) {
		return
	}

	var keep []Range
	hi := lo
	for hi < len(s.ranges) && s.ranges[hi].Start <= b {
		r := s.ranges[hi]
		if r.Start < a {
			keep = append(keep, Range{Start: r.Start, End: a - 1})
		}
		if r.End > b {
			keep = append(keep, Range{Start: b + 1, End: r.End})
		}
		hi++
	}
	if hi == lo {
		return
	}

	tail := append(keep, s.ranges[hi:]...)
	s.ranges = append(s.ranges[:lo], tail...)
}

// IsSelected reports whether index i is inside any range.
func (s *Set) IsSelected(i int) bool {
	idx := s.search(i)
	return idx < len(s.ranges) && s.ranges[idx].Start <= i
}

// Selections returns a copy of the ranges in ascending order.
func (s *Set) Selections() []Range {
	if len(s.ranges) == 0 {
		return nil
	}
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Indexes expands the set into individual indexes in ascending order.
func (s *Set) Indexes() []int {
	var out []int
	for _, r := range s.ranges {
		for i := r.Start; ; i++ {
			out = append(out, i)
			if i == r.End {
				break
			}
		}
	}
	return out
}

// IsEmpty reports whether the set holds no ranges.
func (s *Set) IsEmpty() bool { return len(s.ranges) == 0 }

// Clear removes every range.
func (s *Set) Clear() { s.ranges = s.ranges[:0] }

// search returns the index of the first range whose End >= i.
func (s *Set) search(i int) int {
	lo, hi := 0, len(s.ranges)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.ranges[mid].End < i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
