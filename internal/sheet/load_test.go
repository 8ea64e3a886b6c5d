package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a two-sheet workbook with merges on the first sheet.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	const name = "Sheet1"
	f.SetCellValue(name, "A1", "Region")
	f.SetCellValue(name, "B1", "H1")
	f.SetCellValue(name, "A2", "North")
	f.SetCellValue(name, "B2", 10)
	f.SetCellValue(name, "C2", 11)
	f.SetCellValue(name, "B3", 20)
	f.SetCellValue(name, "C3", 21)
	if err := f.MergeCell(name, "B1", "C1"); err != nil {
		t.Fatalf("MergeCell: %v", err)
	}
	if err := f.MergeCell(name, "A2", "A3"); err != nil {
		t.Fatalf("MergeCell: %v", err)
	}

	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	f.SetCellValue("Notes", "A1", "hello")

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t)

	s, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "Sheet1" {
		t.Errorf("Name = %q, want first sheet", s.Name)
	}
	if got := s.Value(2, 2); got != "21" {
		t.Errorf("Value(2, 2) = %q, want 21", got)
	}
	got := s.Merges()
	for _, want := range []Merge{{1, 0, 2, 0}, {0, 1, 0, 2}} {
		if !slices.Contains(got, want) {
			t.Errorf("Merges() = %v, missing %v", got, want)
		}
	}
	if !s.IsSpanContinuation(2, 0) || s.RowSpan(0, 1) != 1 {
		t.Error("merge index not built from workbook")
	}
}

func TestLoadXLSXNamedSheet(t *testing.T) {
	path := writeWorkbook(t)

	s, err := LoadXLSX(path, "Notes")
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if s.Value(0, 0) != "hello" || len(s.Merges()) != 0 {
		t.Errorf("unexpected Notes sheet: %q %v", s.Value(0, 0), s.Merges())
	}

	names, err := SheetNames(path)
	if err != nil {
		t.Fatalf("SheetNames: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Sheet1", "Notes"}) {
		t.Errorf("SheetNames() = %v", names)
	}
}

func TestLoadErrors(t *testing.T) {
	path := writeWorkbook(t)

	_, err := LoadXLSX(path, "Missing")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("missing sheet: err = %v, want ErrSheetNotFound", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Sheet != "Missing" || le.Path != path {
		t.Errorf("expected *LoadError with path and sheet, got %#v", err)
	}

	_, err = Load(filepath.Join(t.TempDir(), "notes.txt"), "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("txt: err = %v, want ErrUnsupportedFormat", err)
	}

	_, err = Load(filepath.Join(t.TempDir(), "absent.xlsx"), "")
	if err == nil || !errors.As(err, &le) {
		t.Errorf("absent file: err = %v, want *LoadError", err)
	}
}

func TestLoadDelimited(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		content string
		want    [][]string
	}{
		{"a.csv", "x,y\n1,\"2,5\"\n3\n", [][]string{{"x", "y"}, {"1", "2,5"}, {"3"}}},
		{"b.TSV", "x\ty\n1\t2\n", [][]string{{"x", "y"}, {"1", "2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			s, err := Load(path, "ignored")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if s.Name != tt.file {
				t.Errorf("Name = %q", s.Name)
			}
			for y, row := range tt.want {
				for x, v := range row {
					if got := s.Value(x, y); got != v {
						t.Errorf("Value(%d, %d) = %q, want %q", x, y, got, v)
					}
				}
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref     string
		want    Merge
		wantErr bool
	}{
		{"B2:D4", Merge{X1: 1, Y1: 1, X2: 3, Y2: 3}, false},
		{"D4:B2", Merge{X1: 1, Y1: 1, X2: 3, Y2: 3}, false},
		{" C7 ", Merge{X1: 2, Y1: 6, X2: 2, Y2: 6}, false},
		{"AA1:AB2", Merge{X1: 26, Y1: 0, X2: 27, Y2: 1}, false},
		{"B2:", Merge{}, true},
		{"nope", Merge{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRange(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRange(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseRange(%q) = %+v, want %+v", tt.ref, got, tt.want)
		}
	}
}

func TestSheetNamesDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	names, err := SheetNames(path)
	if err != nil || !slices.Equal(names, []string{"people.tsv"}) {
		t.Errorf("SheetNames() = %v, %v", names, err)
	}

	_, err = SheetNames(filepath.Join(t.TempDir(), "missing.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("missing file: err = %v, want *LoadError", err)
	}
}
