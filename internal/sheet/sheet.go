// Package sheet holds one worksheet's cell text and merged ranges and answers
// the geometry and span questions the selection engine asks.
package sheet

import (
	"encoding/json"

	"github.com/mattn/go-runewidth"

	"github.com/xonecas/gridsel/internal/constants"
)

// Merge is an inclusive merged range. (X1, Y1) is the primary cell.
type Merge struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether (x, y) lies inside the merge.
func (m Merge) Contains(x, y int) bool {
	return x >= m.X1 && x <= m.X2 && y >= m.Y1 && y <= m.Y2
}

func (m Merge) normalized() Merge {
	if m.X1 > m.X2 {
		m.X1, m.X2 = m.X2, m.X1
	}
	if m.Y1 > m.Y2 {
		m.Y1, m.Y2 = m.Y2, m.Y1
	}
	return m
}

type cell struct{ x, y int }

// Sheet is an immutable, rectangular grid of cell text.
type Sheet struct {
	Name string

	cells  [][]string
	merges []Merge
	cols   int

	// owner maps every covered cell to its merge index.
	owner map[cell]int
}

// New builds a sheet. Rows may be ragged; missing cells read as "".
// Merges that overlap an earlier merge or cover a single cell are dropped.
func New(name string, rows [][]string, merges []Merge) *Sheet {
	s := &Sheet{Name: name, cells: rows, owner: make(map[cell]int)}
	for _, r := range rows {
		s.cols = max(s.cols, len(r))
	}
	for _, m := range merges {
		s.addMerge(m.normalized())
	}
	return s
}

func (s *Sheet) addMerge(m Merge) {
	if m.X1 < 0 || m.Y1 < 0 || (m.X1 == m.X2 && m.Y1 == m.Y2) {
		return
	}
	for y := m.Y1; y <= m.Y2; y++ {
		for x := m.X1; x <= m.X2; x++ {
			if _, taken := s.owner[cell{x, y}]; taken {
				return
			}
		}
	}
	idx := len(s.merges)
	s.merges = append(s.merges, m)
	for y := m.Y1; y <= m.Y2; y++ {
		for x := m.X1; x <= m.X2; x++ {
			s.owner[cell{x, y}] = idx
		}
	}
	s.cols = max(s.cols, m.X2+1)
}

// RowCount is the number of rows, including rows only reached by a merge.
func (s *Sheet) RowCount() int {
	n := len(s.cells)
	for _, m := range s.merges {
		n = max(n, m.Y2+1)
	}
	return n
}

// ColumnCount is the width of the widest row.
func (s *Sheet) ColumnCount() int { return s.cols }

// Merges returns a copy of the merged ranges.
func (s *Sheet) Merges() []Merge {
	out := make([]Merge, len(s.merges))
	copy(out, s.merges)
	return out
}

// Value returns the text of (x, y), or "" outside the grid.
func (s *Sheet) Value(x, y int) string {
	if y < 0 || y >= len(s.cells) || x < 0 || x >= len(s.cells[y]) {
		return ""
	}
	return s.cells[y][x]
}

// MergeAt returns the merge covering (x, y).
func (s *Sheet) MergeAt(x, y int) (Merge, bool) {
	idx, ok := s.owner[cell{x, y}]
	if !ok {
		return Merge{}, false
	}
	return s.merges[idx], true
}

// RowSpan reports the extra rows covered by a merge whose primary is (x, y).
func (s *Sheet) RowSpan(x, y int) int {
	if m, ok := s.MergeAt(x, y); ok && m.X1 == x && m.Y1 == y {
		return m.Y2 - m.Y1
	}
	return 0
}

// ColSpan reports the extra columns covered by a merge whose primary is (x, y).
func (s *Sheet) ColSpan(x, y int) int {
	if m, ok := s.MergeAt(x, y); ok && m.X1 == x && m.Y1 == y {
		return m.X2 - m.X1
	}
	return 0
}

// IsSpanContinuation reports whether (x, y) is a non-primary merge cell.
func (s *Sheet) IsSpanContinuation(x, y int) bool {
	m, ok := s.MergeAt(x, y)
	return ok && (m.X1 != x || m.Y1 != y)
}

// ColumnWidth is the display width of column x, clamped to
// [constants.MinColumnWidth, limit]. limit <= 0 means
// constants.MaxColumnWidth.
func (s *Sheet) ColumnWidth(x, limit int) int {
	if limit <= 0 {
		limit = constants.MaxColumnWidth
	}
	w := runewidth.StringWidth(ColumnName(x))
	for y := range s.cells {
		if s.IsSpanContinuation(x, y) || s.ColSpan(x, y) > 0 {
			continue
		}
		w = max(w, runewidth.StringWidth(s.Value(x, y)))
		if w >= limit {
			return limit
		}
	}
	return max(w, constants.MinColumnWidth)
}

// ColumnName returns the spreadsheet letter name of a zero-based column.
func ColumnName(x int) string {
	if x < 0 {
		return ""
	}
	var b []byte
	for x >= 0 {
		b = append([]byte{byte('A' + x%26)}, b...)
		x = x/26 - 1
	}
	return string(b)
}

type sheetJSON struct {
	Name   string     `json:"name"`
	Cells  [][]string `json:"cells"`
	Merges []Merge    `json:"merges,omitempty"`
}

// MarshalJSON encodes the sheet for the on-disk cache.
func (s *Sheet) MarshalJSON() ([]byte, error) {
	return json.Marshal(sheetJSON{Name: s.Name, Cells: s.cells, Merges: s.merges})
}

// UnmarshalJSON rebuilds the sheet and its merge index.
func (s *Sheet) UnmarshalJSON(data []byte) error {
	var raw sheetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *New(raw.Name, raw.Cells, raw.Merges)
	return nil
}
