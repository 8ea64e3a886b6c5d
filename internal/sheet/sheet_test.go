package sheet

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/xonecas/gridsel/internal/constants"
	"github.com/xonecas/gridsel/internal/selection"
)

var _ selection.SpanProvider = (*Sheet)(nil)
var _ selection.Geometry = (*Sheet)(nil)

func testSheet(t *testing.T) *Sheet {
	t.Helper()
	rows := [][]string{
		{"Region", "Q1", "", "Q2"},
		{"North", "10", "11", "12"},
		{"", "20", "21", "22"},
		{"South", "30"},
	}
	// A1:A1 is a no-op merge, B1:C1 is a header merge, A2:A3 a row merge.
	merges := []Merge{
		{0, 0, 0, 0},
		{1, 0, 2, 0},
		{0, 2, 0, 1},
		{1, 0, 1, 1}, // overlaps B1:C1
	}
	return New("Sales", rows, merges)
}

func TestNewIndexesMerges(t *testing.T) {
	s := testSheet(t)

	want := []Merge{{1, 0, 2, 0}, {0, 1, 0, 2}}
	if got := s.Merges(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Merges() = %v, want %v", got, want)
	}
	if s.RowCount() != 4 || s.ColumnCount() != 4 {
		t.Errorf("size = %dx%d, want 4x4", s.ColumnCount(), s.RowCount())
	}
}

func TestSpanProvider(t *testing.T) {
	s := testSheet(t)
	tests := []struct {
		name         string
		x, y         int
		rowSpan      int
		colSpan      int
		continuation bool
	}{
		{"header primary", 1, 0, 0, 1, false},
		{"header continuation", 2, 0, 0, 0, true},
		{"row primary", 0, 1, 1, 0, false},
		{"row continuation", 0, 2, 0, 0, true},
		{"plain cell", 3, 3, 0, 0, false},
		{"outside", -1, 9, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.RowSpan(tt.x, tt.y); got != tt.rowSpan {
				t.Errorf("RowSpan = %d, want %d", got, tt.rowSpan)
			}
			if got := s.ColSpan(tt.x, tt.y); got != tt.colSpan {
				t.Errorf("ColSpan = %d, want %d", got, tt.colSpan)
			}
			if got := s.IsSpanContinuation(tt.x, tt.y); got != tt.continuation {
				t.Errorf("IsSpanContinuation = %v, want %v", got, tt.continuation)
			}
		})
	}
}

func TestSelectionSnapsToSheetMerges(t *testing.T) {
	s := testSheet(t)
	m := selection.New(s, s, selection.DefaultOptions())
	m.SelectCell(2, 0, false)

	last, _ := m.LastSelection()
	lo, hi := last.Bounds()
	if lo != (selection.Point{X: 1, Y: 0}) || hi != (selection.Point{X: 2, Y: 0}) {
		t.Errorf("bounds = %v..%v, want {1 0}..{2 0}", lo, hi)
	}
}

func TestValue(t *testing.T) {
	s := testSheet(t)
	if got := s.Value(1, 3); got != "30" {
		t.Errorf("Value(1, 3) = %q", got)
	}
	for _, c := range [][2]int{{3, 3}, {-1, 0}, {0, 10}} {
		if got := s.Value(c[0], c[1]); got != "" {
			t.Errorf("Value(%d, %d) = %q, want empty", c[0], c[1], got)
		}
	}
}

func TestColumnWidth(t *testing.T) {
	s := New("w", [][]string{
		{"a", "日本語テキスト", "this value is rather long"},
		{"bb", "", "x"},
	}, nil)

	tests := []struct {
		x, limit int
		want     int
	}{
		{0, 0, constants.MinColumnWidth},
		{1, 0, 14},
		{2, 0, 25},
		{2, 10, 10},
	}
	for _, tt := range tests {
		if got := s.ColumnWidth(tt.x, tt.limit); got != tt.want {
			t.Errorf("ColumnWidth(%d, %d) = %d, want %d", tt.x, tt.limit, got, tt.want)
		}
	}
}

func TestColumnName(t *testing.T) {
	tests := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA", -1: ""}
	for x, want := range tests {
		if got := ColumnName(x); got != want {
			t.Errorf("ColumnName(%d) = %q, want %q", x, got, want)
		}
	}
}

func TestJSONRebuildsMergeIndex(t *testing.T) {
	s := testSheet(t)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Sheet
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Name != "Sales" || !got.IsSpanContinuation(0, 2) || got.ColSpan(1, 0) != 1 {
		t.Errorf("decoded sheet lost merges: %+v", got.Merges())
	}
	if got.Value(3, 2) != "22" {
		t.Errorf("Value(3, 2) = %q", got.Value(3, 2))
	}
}
