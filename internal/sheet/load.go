package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Load reads one sheet from path, choosing the reader by file extension.
// An empty sheetName selects the first sheet of a workbook; it is ignored
// for delimited text files.
func Load(path, sheetName string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return LoadXLSX(path, sheetName)
	case ".csv":
		return LoadDelimited(path, ',')
	case ".tsv", ".tab":
		return LoadDelimited(path, '\t')
	default:
		return nil, newLoadError(path, sheetName, ErrUnsupportedFormat)
	}
}

// SheetNames lists the sheets of a workbook in tab order. A delimited text
// file has a single sheet named after the file.
func SheetNames(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".tab":
		if _, err := os.Stat(path); err != nil {
			return nil, newLoadError(path, "", err)
		}
		return []string{filepath.Base(path)}, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newLoadError(path, "", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// LoadXLSX reads cell text and merged ranges from an Excel workbook.
func LoadXLSX(path, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newLoadError(path, sheetName, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if sheetName == "" {
		if len(names) == 0 {
			return nil, newLoadError(path, sheetName, ErrSheetNotFound)
		}
		sheetName = names[0]
	} else if !slices.Contains(names, sheetName) {
		return nil, newLoadError(path, sheetName, ErrSheetNotFound)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, newLoadError(path, sheetName, fmt.Errorf("read rows: %w", err))
	}

	mcs, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, newLoadError(path, sheetName, fmt.Errorf("read merged cells: %w", err))
	}
	merges := make([]Merge, 0, len(mcs))
	for _, mc := range mcs {
		m, err := parseMergeRange(mc.GetStartAxis(), mc.GetEndAxis())
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheetName).Msg("skipping malformed merge")
			continue
		}
		merges = append(merges, m)
	}

	log.Debug().
		Str("path", path).
		Str("sheet", sheetName).
		Int("rows", len(rows)).
		Int("merges", len(merges)).
		Msg("loaded workbook sheet")
	return New(sheetName, rows, merges), nil
}

// parseMergeRange converts A1-style corners to a zero-based Merge.
func parseMergeRange(start, end string) (Merge, error) {
	x1, y1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return Merge{}, fmt.Errorf("merge start %q: %w", start, err)
	}
	x2, y2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return Merge{}, fmt.Errorf("merge end %q: %w", end, err)
	}
	return Merge{X1: x1 - 1, Y1: y1 - 1, X2: x2 - 1, Y2: y2 - 1}.normalized(), nil
}

// ParseRange parses an A1-style reference such as "B2:D4" or "C7" into a
// zero-based inclusive range.
func ParseRange(ref string) (Merge, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		end = start
	}
	return parseMergeRange(start, end)
}

// LoadDelimited reads a CSV or TSV file. Delimited text has no merges.
func LoadDelimited(path string, comma rune) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(path, "", err)
	}
	defer f.Close()

	rows, err := readDelimited(f, comma)
	if err != nil {
		return nil, newLoadError(path, "", err)
	}
	return New(filepath.Base(path), rows, nil), nil
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse delimited: %w", err)
		}
		rows = append(rows, rec)
	}
}
